// Package hash provides the CRC32-Castagnoli checksum shared by snapshots
// and object uploads.
//
// Snapshots store the checksum of their body in the header line; the S3
// store sends it with every single-part upload so the service can verify it.
//
//	checksum := hash.CRC32C(data)
package hash
