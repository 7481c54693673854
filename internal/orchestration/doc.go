// Package orchestration runs a parameter sweep: it sizes dispatch chunks,
// evaluates every combination on a bounded worker pool, reassembles results
// in input order and reports progress. It decouples the run from its
// presentation through the ProgressReporter and ResultPresenter interfaces.
package orchestration
