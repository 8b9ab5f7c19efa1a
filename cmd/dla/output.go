package main

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/hupe1980/dla/blobstore"
	"github.com/hupe1980/dla/blobstore/minio"
	"github.com/hupe1980/dla/blobstore/s3"
)

type target struct {
	scheme   string
	endpoint string
	bucket   string
	prefix   string
	query    url.Values
	user     *url.Userinfo
}

// parseTarget splits an output URL. Anything without a known scheme is a
// local directory.
func parseTarget(raw string) (target, error) {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "s3" && u.Scheme != "minio" && u.Scheme != "file") {
		return target{scheme: "file", prefix: raw}, nil
	}

	t := target{scheme: u.Scheme, query: u.Query(), user: u.User}
	p := strings.Trim(u.Path, "/")

	switch u.Scheme {
	case "file":
		t.prefix = u.Path
		if u.Host != "" {
			t.prefix = u.Host + u.Path
		}
	case "s3":
		t.bucket = u.Host
		t.prefix = p
		t.endpoint = t.query.Get("endpoint")
	case "minio":
		t.endpoint = u.Host
		t.bucket, t.prefix, _ = strings.Cut(p, "/")
	}

	if t.scheme != "file" && t.bucket == "" {
		return target{}, fmt.Errorf("output %q: missing bucket", raw)
	}
	return t, nil
}

func openStore(ctx context.Context, raw string) (blobstore.Store, error) {
	t, err := parseTarget(raw)
	if err != nil {
		return nil, err
	}
	return t.open(ctx)
}

func (t target) open(ctx context.Context) (blobstore.Store, error) {
	switch t.scheme {
	case "s3":
		opts := []s3.Option{s3.WithPrefix(t.prefix)}
		if region := t.query.Get("region"); region != "" {
			opts = append(opts, s3.WithRegion(region))
		}
		if t.endpoint != "" {
			opts = append(opts, s3.WithEndpoint(t.endpoint))
		}
		store, err := s3.New(ctx, t.bucket, opts...)
		if err != nil {
			return nil, err
		}
		return store, nil
	case "minio":
		var opts []func(*minio.DialOptions)
		if t.user != nil {
			secret, _ := t.user.Password()
			opts = append(opts, minio.WithStaticCredentials(t.user.Username(), secret))
		}
		if t.query.Get("tls") == "true" {
			opts = append(opts, minio.WithTLS())
		}
		store, err := minio.Dial(t.endpoint, t.bucket, t.prefix, opts...)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return blobstore.NewLocalStore(t.prefix), nil
	}
}
