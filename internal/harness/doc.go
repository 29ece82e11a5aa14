// Package harness provides a conformance testing framework for the match
// session engine.
//
// A scenario is a YAML file describing one play session: an inline deck, a
// match configuration, a scripted sequence of steps (select, process,
// clear, new_round, pause, resume, save, load, end) and assertions over the
// final session record.
//
// Scenarios run fully deterministically: an in-memory key-value store, a
// frozen fake wall clock, sequential tile ids and the identity shuffler.
// With those injected, the grid a scenario sees is exactly the emission
// order of the generator - all tiles of the first side config in pool
// order, then the second - which makes step scripts and golden traces
// writable by hand.
//
// Every step appends one trace event describing the engine's observable
// outcome. Traces are compared against golden files with goldie; run
//
//	go test ./internal/harness -update
//
// to regenerate them after an intentional behavior change.
package harness
