package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/goccy/go-json"

	"github.com/nexoventlabs/business-tracker/internal/business"
)

const contentType = "application/x-ndjson"

// Source lists the records to export.
type Source interface {
	List(ctx context.Context) ([]business.Record, error)
}

// Uploader stores an object. *storage.MinIOStorage implements it.
type Uploader interface {
	UploadFile(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
}

// Result describes a completed snapshot.
type Result struct {
	Key     string
	Records int
	Bytes   int64
}

// Key returns the object key for a snapshot taken at t.
func Key(prefix string, t time.Time) string {
	return fmt.Sprintf("%sbusinesses-%s.ndjson", prefix, t.UTC().Format("20060102T150405Z"))
}

// WriteNDJSON writes one JSON object per line.
func WriteNDJSON(w io.Writer, records []business.Record) error {
	enc := json.NewEncoder(w)
	for i, r := range records {
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encode record %d: %w", i, err)
		}
	}
	return nil
}

// Snapshot reads every record from src and uploads them as NDJSON under key.
func Snapshot(ctx context.Context, src Source, dst Uploader, key string) (*Result, error) {
	records, err := src.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list businesses: %w", err)
	}
	var buf bytes.Buffer
	if err := WriteNDJSON(&buf, records); err != nil {
		return nil, err
	}
	size := int64(buf.Len())
	if err := dst.UploadFile(ctx, key, &buf, size, contentType); err != nil {
		return nil, fmt.Errorf("upload snapshot: %w", err)
	}
	return &Result{Key: key, Records: len(records), Bytes: size}, nil
}
