// Package gcs fetches objects from Google Cloud Storage. The bot uses it to
// load the service-account credentials file when the configured path is a
// gs:// URI instead of a local path.
package gcs

import (
	"context"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
)

// IsURI reports whether path addresses a GCS object.
func IsURI(path string) bool {
	return strings.HasPrefix(path, "gs://")
}

// FetchObject downloads the object bytes from the given gs:// URI.
func FetchObject(ctx context.Context, uri string) ([]byte, error) {
	bucket, object, err := parseURI(uri)
	if err != nil {
		return nil, err
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("FetchObject: creating storage client: %w", err)
	}
	defer client.Close()

	rc, err := client.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("FetchObject: reading object %s/%s: %w", bucket, object, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("FetchObject: reading bytes: %w", err)
	}

	return data, nil
}

// parseURI splits "gs://bucket/path/to/object" into bucket and object path.
func parseURI(uri string) (bucket, object string, err error) {
	if !IsURI(uri) {
		return "", "", fmt.Errorf("parseURI: invalid GCS URI: %s", uri)
	}

	trimmed := strings.TrimPrefix(uri, "gs://")
	parts := strings.SplitN(trimmed, "/", 2)
	if len(parts) != 2 || parts[1] == "" {
		return "", "", fmt.Errorf("parseURI: invalid GCS URI (no object path): %s", uri)
	}

	return parts[0], parts[1], nil
}
