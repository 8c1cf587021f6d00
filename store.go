package spindle

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

var createRequests = `create table if not exists requests (
		id TEXT not null primary key,
		record BLOB,
		method TEXT not null,
		path TEXT not null,
		status INTEGER not null,
		created_at TEXT not null default (strftime('%Y-%m-%dT%H:%M:%fZ'))
	) strict;`

// Sqlite persists request records. A single append-mostly table; reads
// exist for inspection and tests.
type Sqlite struct {
	logger *slog.Logger
	db     *sqlx.DB
}

func NewSqlite(dbPath string, logger *slog.Logger) (*Sqlite, error) {
	db, err := sqlx.Open("sqlite3", fmt.Sprintf("%s?cache=shared&mode=rwc&_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000", dbPath))
	if err != nil {
		return nil, err
	}

	_, err = db.Exec("PRAGMA journal_size_limit = 67108864;")
	if err != nil {
		return nil, err
	}

	s := &Sqlite{db: db, logger: logger}

	ctx := context.Background()
	err = s.inTx(ctx, func(tx *sqlx.Tx) error {
		// create the request log table
		_, err = tx.ExecContext(ctx, createRequests)
		if err != nil {
			return err
		}

		return nil
	})

	return s, err
}

// Record writes one access-log entry.
func (s *Sqlite) Record(ctx context.Context, rec *RequestRecord) error {
	raw, err := rec.Marshal()
	if err != nil {
		return err
	}

	return s.inTx(ctx, func(tx *sqlx.Tx) error {
		_, innerErr := tx.ExecContext(ctx,
			`insert into requests (id, record, method, path, status, created_at) values ($1, $2, $3, $4, $5, $6)`,
			rec.Id, raw, rec.Method, rec.Path, rec.Status, rec.CreatedAt)
		return innerErr
	})
}

// Recent returns the latest limit records, newest first. Record ids are
// ulids, so lexicographic order is creation order.
func (s *Sqlite) Recent(ctx context.Context, limit int) ([]RequestRecord, error) {
	rows, err := s.db.QueryxContext(ctx, `select record from requests order by id desc limit $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []RequestRecord
	for rows.Next() {
		var raw []byte
		if err = rows.Scan(&raw); err != nil {
			return nil, err
		}

		rec := RequestRecord{}
		if err = rec.Unmarshal(raw); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// Truncate removes every record.
func (s *Sqlite) Truncate(ctx context.Context) error {
	return s.inTx(ctx, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, `delete from requests`)
		return err
	})
}

func (s *Sqlite) Close() error {
	return s.db.Close()
}

func (s *Sqlite) inTx(ctx context.Context, cb func(*sqlx.Tx) error) (err error) {
	tx, beginErr := s.db.BeginTxx(ctx, nil)
	if beginErr != nil {
		return fmt.Errorf("cannot start tx: %w", beginErr)
	}

	defer func() {
		if rec := recover(); rec != nil {
			err = rollback(tx, nil)
			panic(rec)
		}
	}()

	if err = cb(tx); err != nil {
		return rollback(tx, err)
	}

	if commitErr := tx.Commit(); commitErr != nil {
		return fmt.Errorf("cannot commit tx: %w", commitErr)
	}

	return nil
}

func rollback(tx *sqlx.Tx, err error) error {
	if rollbackErr := tx.Rollback(); rollbackErr != nil {
		return fmt.Errorf("cannot roll back tx after error (tx error: %v), original error: %w", rollbackErr, err)
	}
	return err
}
