// Command aegis solves the tactical target-selection problem from the shell.
//
// Usage:
//
//	aegis solve -n 4 --methods brute_force,qaoa -o json
//	aegis hamiltonian --risk 0.2,0.5,0.9 --distance 0.9,0.5,0.1
//	aegis bench scaling --sizes 2,3,4,5 --methods brute_force,vqe
//	aegis bench noise -n 3 --rates 0,0.01,0.05 --noise depolarizing
//
// Every command accepts --config with a YAML file; flags set on the command
// line override it.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// Exit codes.
const (
	ExitSuccess = 0
	ExitError   = 1
	ExitConfig  = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := execute(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, "aegis:", err)
		if errors.Is(err, ErrInvalidConfig) {
			os.Exit(ExitConfig)
		}
		os.Exit(ExitError)
	}
	os.Exit(ExitSuccess)
}
