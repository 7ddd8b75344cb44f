package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/aegis/ising"
)

func newHamiltonianCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "hamiltonian",
		Aliases: []string{"ham"},
		Short:   "Print the Ising Hamiltonian of an instance",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runHamiltonian(cmd)
		},
	}
	a.problemFlags(cmd.Flags())

	return cmd
}

type termReport struct {
	Pauli string  `json:"pauli" yaml:"pauli"`
	Coeff float64 `json:"coeff" yaml:"coeff"`
}

type hamiltonianReport struct {
	RunID  string       `json:"run_id" yaml:"run_id"`
	Spins  int          `json:"spins" yaml:"spins"`
	Offset float64      `json:"offset" yaml:"offset"`
	Terms  []termReport `json:"terms" yaml:"terms"`
}

func (a *app) runHamiltonian(cmd *cobra.Command) error {
	p, err := problemOf(a.cfg.Problem)
	if err != nil {
		return err
	}
	h, err := ising.FromQUBO(p)
	if err != nil {
		return err
	}

	n := h.NumSpins()
	report := hamiltonianReport{RunID: a.runID, Spins: n, Offset: h.Offset()}
	for _, t := range h.Terms() {
		report.Terms = append(report.Terms, termReport{Pauli: t.Label(n), Coeff: t.Coeff})
	}

	return render(cmd.OutOrStdout(), a.cfg.Output, report, func(tw *tabwriter.Writer) {
		fmt.Fprintln(tw, h.String())
	})
}
