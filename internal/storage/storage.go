// Package storage reads source images and writes results to local files or
// S3 objects.
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// Store opens and writes named objects.
type Store interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	Put(ctx context.Context, name string, r io.Reader) error
}

// Resolver maps a location such as "out.txt" or "s3://bucket/key" to a
// store and the object name inside it.
type Resolver func(ctx context.Context, location string) (Store, string, error)

const s3Scheme = "s3://"

// For resolves location with the default stores. S3 clients are created from
// the default AWS configuration on first use.
func For(ctx context.Context, location string) (Store, string, error) {
	if !strings.HasPrefix(location, s3Scheme) {
		return NewFileStore(), location, nil
	}

	bucket, key, err := ParseS3(location)
	if err != nil {
		return nil, "", err
	}
	client, err := NewS3Client(ctx)
	if err != nil {
		return nil, "", err
	}
	return NewS3Store(client, bucket), key, nil
}

// ParseS3 splits "s3://bucket/key" into bucket and key.
func ParseS3(location string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(location, s3Scheme)
	if !ok {
		return "", "", fmt.Errorf("not an s3 location: %s", location)
	}
	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("invalid s3 location %q: want s3://bucket/key", location)
	}
	return bucket, key, nil
}
