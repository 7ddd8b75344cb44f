package qubo

import (
	"fmt"
	"strings"
)

// Bitstring is a binary assignment over N items. Entries are 0 or 1.
type Bitstring []uint8

// OneHot returns the length-n bitstring with only bit i set.
// i outside [0,n) yields the all-zero bitstring.
func OneHot(n, i int) Bitstring {
	x := make(Bitstring, n)
	if i >= 0 && i < n {
		x[i] = 1
	}

	return x
}

// FromIndex decodes the integer k into a length-n bitstring, most
// significant bit first (x[0] ↔ 2^{n-1}).
func FromIndex(k uint64, n int) Bitstring {
	x := make(Bitstring, n)
	FromIndexInto(x, k)

	return x
}

// FromIndexInto decodes k into dst in place; len(dst) fixes the width.
// Complexity: O(len(dst)), no allocation.
func FromIndexInto(dst Bitstring, k uint64) {
	n := len(dst)
	for i := 0; i < n; i++ {
		dst[i] = uint8((k >> uint(n-1-i)) & 1)
	}
}

// Parse reads a string of '0'/'1' characters, x[0] first.
func Parse(s string) (Bitstring, error) {
	x := make(Bitstring, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '0':
		case '1':
			x[i] = 1
		default:
			return nil, fmt.Errorf("Parse: %q at %d: %w", s[i], i, ErrNonBinary)
		}
	}

	return x, nil
}

// Index encodes x as an integer, most significant bit first. Entries other
// than 0 count as 1.
func (x Bitstring) Index() uint64 {
	var k uint64
	for _, b := range x {
		k <<= 1
		if b != 0 {
			k |= 1
		}
	}

	return k
}

// OnesCount returns the number of set entries.
func (x Bitstring) OnesCount() int {
	c := 0
	for _, b := range x {
		if b != 0 {
			c++
		}
	}

	return c
}

// IsOneHot reports whether exactly one entry is set.
func (x Bitstring) IsOneHot() bool { return x.OnesCount() == 1 }

// Selected returns the index of the single set bit, or -1 when x is not one-hot.
func (x Bitstring) Selected() int {
	if !x.IsOneHot() {
		return -1
	}
	for i, b := range x {
		if b != 0 {
			return i
		}
	}

	return -1
}

// Clone returns an independent copy of x.
func (x Bitstring) Clone() Bitstring {
	if x == nil {
		return nil
	}

	return append(Bitstring(nil), x...)
}

// String renders x as "0101", x[0] first.
func (x Bitstring) String() string {
	var sb strings.Builder
	sb.Grow(len(x))
	for _, b := range x {
		if b != 0 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}

	return sb.String()
}

// MarshalText encodes x as String does, so JSON and YAML carry "0101"
// rather than a byte array.
func (x Bitstring) MarshalText() ([]byte, error) { return []byte(x.String()), nil }

// UnmarshalText decodes the String form. Errors: ErrNonBinary.
func (x *Bitstring) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*x = v

	return nil
}

// Counts is an outcome-frequency table keyed by Bitstring.String().
type Counts map[string]int

// Total returns the sum of all counts.
func (c Counts) Total() int {
	t := 0
	for _, v := range c {
		t += v
	}

	return t
}

// MostFrequent returns the key with the highest count. Ties go to the
// lexicographically smallest key so the result does not depend on map order.
// ok is false for an empty table.
func (c Counts) MostFrequent() (key string, count int, ok bool) {
	for k, v := range c {
		if !ok || v > count || (v == count && k < key) {
			key, count, ok = k, v, true
		}
	}

	return key, count, ok
}
