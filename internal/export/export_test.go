package export

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nexoventlabs/business-tracker/internal/business"
	"github.com/nexoventlabs/business-tracker/internal/business/repository"
)

type memUploader struct {
	key         string
	body        string
	size        int64
	contentType string
	err         error
}

func (m *memUploader) UploadFile(ctx context.Context, key string, r io.Reader, size int64, ct string) error {
	if m.err != nil {
		return m.err
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.key, m.body, m.size, m.contentType = key, string(b), size, ct
	return nil
}

func TestKey(t *testing.T) {
	ts := time.Date(2026, 10, 17, 9, 30, 5, 0, time.UTC)
	require.Equal(t, "exports/businesses-20261017T093005Z.ndjson", Key("exports/", ts))
}

func TestSnapshot(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryRepo()
	_, err := repo.Create(ctx, business.Record{"id": int64(1), "name": "Acme"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, business.Record{"id": int64(2), "name": "Globex"})
	require.NoError(t, err)

	up := &memUploader{}
	res, err := Snapshot(ctx, repo, up, "snap.ndjson")
	require.NoError(t, err)
	require.Equal(t, 2, res.Records)
	require.Equal(t, "snap.ndjson", up.key)
	require.Equal(t, "application/x-ndjson", up.contentType)
	require.Equal(t, int64(len(up.body)), up.size)

	lines := strings.Split(strings.TrimSpace(up.body), "\n")
	require.Len(t, lines, 2)
	require.JSONEq(t, `{"id":1,"name":"Acme"}`, lines[0])
	require.JSONEq(t, `{"id":2,"name":"Globex"}`, lines[1])
}

func TestSnapshot_UploadError(t *testing.T) {
	up := &memUploader{err: errors.New("bucket gone")}
	_, err := Snapshot(context.Background(), repository.NewMemoryRepo(), up, "k")
	require.ErrorContains(t, err, "bucket gone")
}
