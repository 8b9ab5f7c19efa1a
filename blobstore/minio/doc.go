// Package minio provides a blobstore.Store implementation using the MinIO client.
//
// It works with MinIO and other S3-compatible storage systems like Ceph,
// SeaweedFS and Garage, without pulling in the AWS SDK configuration chain.
//
// # Basic Usage
//
//	store, err := minioblob.Dial("localhost:9000", "clusters", "runs/",
//	    minioblob.WithStaticCredentials("minioadmin", "minioadmin"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	err = export.Save(ctx, store, "run-000.csv.lz4", records, export.LZ4)
package minio
