// Package deck defines the data model shared by every layer of matchgrid:
// cards and their named sides, the match configuration that shapes a grid,
// and the tiles a grid is made of.
//
// Everything in this package is plain data. Tiles and configurations are
// serialized verbatim when a session is persisted, so the JSON shape of
// these types is part of the stored-state contract.
//
// INVARIANT: tile content is derived from card sides at grid-generation
// time and is never recomputed afterwards. Match validity is defined purely
// by group-key equality, never by comparing content.
package deck
