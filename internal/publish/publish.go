// Package publish copies a finished table to object storage.
package publish

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	log "github.com/sirupsen/logrus"
)

// Location is a parsed gs://bucket/object URL.
type Location struct {
	Bucket string
	Object string
}

func (l Location) String() string { return "gs://" + l.Bucket + "/" + l.Object }

// ParseURL parses gs://bucket/object. An object ending in "/" is treated as a
// prefix and gets filename appended.
func ParseURL(raw, filename string) (Location, error) {
	rest, ok := strings.CutPrefix(raw, "gs://")
	if !ok {
		return Location{}, fmt.Errorf("upload url %q: expected gs://bucket/object", raw)
	}
	bucket, object, _ := strings.Cut(rest, "/")
	if bucket == "" {
		return Location{}, fmt.Errorf("upload url %q: missing bucket", raw)
	}
	if object == "" || strings.HasSuffix(object, "/") {
		object = path.Join(object, filename)
	}
	return Location{Bucket: bucket, Object: object}, nil
}

// Uploader opens a writer for an object. Close on the writer commits it.
type Uploader interface {
	NewWriter(ctx context.Context, loc Location, contentType string) io.WriteCloser
}

// GCS uploads through a Cloud Storage client.
type GCS struct {
	client *storage.Client
}

// NewGCS creates a client using application default credentials.
func NewGCS(ctx context.Context) (*GCS, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating storage client: %w", err)
	}
	return &GCS{client: client}, nil
}

func (g *GCS) NewWriter(ctx context.Context, loc Location, contentType string) io.WriteCloser {
	w := g.client.Bucket(loc.Bucket).Object(loc.Object).NewWriter(ctx)
	w.ContentType = contentType
	return w
}

func (g *GCS) Close() error { return g.client.Close() }

// ContentType picks a MIME type from the table file's extension.
func ContentType(file string) string {
	switch filepath.Ext(file) {
	case ".tsv":
		return "text/tab-separated-values"
	case ".md":
		return "text/markdown"
	case ".json":
		return "application/json"
	default:
		return "text/csv"
	}
}

// UploadFile streams the local file at src to loc.
func UploadFile(ctx context.Context, up Uploader, src string, loc Location) error {
	f, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer f.Close()

	w := up.NewWriter(ctx, loc, ContentType(src))
	n, err := io.Copy(w, f)
	if err != nil {
		w.Close()
		return fmt.Errorf("uploading to %s: %w", loc, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finalizing %s: %w", loc, err)
	}
	log.WithFields(log.Fields{"dest": loc.String(), "bytes": n}).Info("uploaded table")
	return nil
}
