// Package s3 provides an S3 implementation of the blobstore.Store interface.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("clusters/"),
//	    s3.WithRegion("us-east-1"),
//	)
//
//	err = export.Save(ctx, store, "run-000.csv.zst", records, export.Zstd)
//
// # Features
//
//   - Range reads for efficient partial fetches
//   - Multipart uploads for large exports
//   - CRC32C integrity checks on uploads
//   - Automatic pagination for listing
//   - Configurable prefix for multi-tenant isolation
package s3
