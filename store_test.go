package spindle

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)
import "github.com/stretchr/testify/require"

var slogger = slog.New(slog.NewTextHandler(os.Stdout, nil))

func newTestStore(t *testing.T) *Sqlite {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "spindle.db")

	s, err := NewSqlite(dbPath, slogger)
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, s.Close()) })

	return s
}

func sampleRecord(path string, status int) *RequestRecord {
	req := &Request{Method: "GET", Path: path, Proto: "HTTP/1.1"}
	return NewRequestRecord(req, NewResponse(status, nil), 12*time.Millisecond)
}

func TestSqlite_RecordOne(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.Record(ctx, sampleRecord("/", 200)))

	require.NoError(t, s.Truncate(ctx))
}

func TestSqlite_RecordConcurrently(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	wg := &sync.WaitGroup{}

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			require.NoError(t, s.Record(ctx, sampleRecord("/", 200)))
		}()
	}
	wg.Wait()

	records, err := s.Recent(ctx, 20)
	require.NoError(t, err)
	require.Len(t, records, 10)

	require.NoError(t, s.Truncate(ctx))
}

func TestSqlite_RecentRoundTrips(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.Record(ctx, sampleRecord("/", 200)))
	require.NoError(t, s.Record(ctx, sampleRecord("/sleep", 200)))
	require.NoError(t, s.Record(ctx, sampleRecord("/missing", 404)))

	records, err := s.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// newest first; ulids order by creation
	require.Equal(t, "/missing", records[0].Path)
	require.Equal(t, 404, records[0].Status)
	require.Equal(t, "GET", records[0].Method)
	require.Equal(t, int64(12), records[0].DurationMs)
	require.False(t, records[0].CreatedTime().IsZero())

	require.Equal(t, "/sleep", records[1].Path)

	require.NoError(t, s.Truncate(ctx))

	records, err = s.Recent(ctx, 10)
	require.NoError(t, err)
	require.Empty(t, records)
}
