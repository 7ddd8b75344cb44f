package backend

import "github.com/katalvlaran/aegis/ising"

// CachedDiagonal exposes the cached Hamiltonian and the length of its diagonal.
func CachedDiagonal(s *Simulator) (*ising.Hamiltonian, int) {
	s.diagMu.Lock()
	defer s.diagMu.Unlock()

	return s.diagH, len(s.diag)
}
