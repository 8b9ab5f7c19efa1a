// Package export writes grown clusters to tabular formats and storage.
//
// The tabular format is CSV with the header
//
//	index,parent,x,y,z
//
// and one row per point in insertion order. Coordinates are written with four
// decimal digits; planar clusters have z fixed at 0. Output can be compressed
// (zstd, lz4), persisted through any blobstore.Store, or loaded into SQLite.
package export
