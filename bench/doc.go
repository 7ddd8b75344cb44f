// Package bench produces the data behind scaling and noise studies.
//
// Scaling solves one seeded tactical instance per size with a fixed set of
// solvers and records time, energy and agreement with the exhaustive optimum.
// NoiseSweep rebuilds each solver under a noise model per error rate and
// reports the mean probability mass landing on the optimum. Convergence
// extracts the energy series a variational Result recorded.
//
// Cells run concurrently through an errgroup bounded by WithConcurrency;
// output order always follows input order.
package bench
