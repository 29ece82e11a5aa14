// Package grid turns a card pool and a match configuration into a playable
// grid of tiles.
//
// Generate is a pure function up to its injected randomness: the same pool,
// configuration, shuffler and id generator always produce the same grid.
// Production callers use the default math/rand shuffler and UUIDv7 tile
// ids; the conformance harness injects FixedOrder and Sequential to get
// byte-identical grids for golden comparison.
//
// The generator never validates the configuration. Side config counts that
// do not sum to rows*cols produce a short or long grid; unequal counts
// produce groups no other tile can complete. Both are caller configuration
// errors, documented preconditions rather than detected failures.
package grid
