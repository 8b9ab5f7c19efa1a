package export

import (
	"context"
	"errors"

	"github.com/hupe1980/dla/blobstore"
)

// Save writes records as a CSV table named name into store.
// The compression is applied on the fly; name is used verbatim.
func Save(ctx context.Context, store blobstore.Store, name string, records []Record, c Compression) (err error) {
	blob, err := store.Create(ctx, name)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			err = errors.Join(err, blob.Abort())
			return
		}
		err = blob.Close()
	}()

	zw, err := c.NewWriter(blob)
	if err != nil {
		return err
	}
	if err := WriteCSV(zw, records); err != nil {
		_ = zw.Close()
		return err
	}
	return zw.Close()
}

// Load reads the table named name from store.
// The compression is detected from the name.
func Load(ctx context.Context, store blobstore.Store, name string) ([]Record, error) {
	blob, err := store.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer blob.Close()

	raw, err := blobstore.NewReader(ctx, blob)
	if err != nil {
		return nil, err
	}
	defer raw.Close()

	zr, err := DetectCompression(name).NewReader(raw)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	return ReadCSV(zr)
}
