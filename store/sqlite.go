package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"synthetic_data_generator/apperrors"
)

const schema = `
CREATE TABLE IF NOT EXISTS jobs (
	id          TEXT PRIMARY KEY,
	format      TEXT NOT NULL,
	kind        TEXT NOT NULL,
	subject     TEXT NOT NULL DEFAULT '',
	size        INTEGER NOT NULL DEFAULT 0,
	secondary   TEXT NOT NULL DEFAULT '',
	path        TEXT NOT NULL DEFAULT '',
	url         TEXT NOT NULL DEFAULT '',
	status      TEXT NOT NULL,
	ok          INTEGER NOT NULL DEFAULT 0,
	summary     TEXT NOT NULL DEFAULT '',
	bytes       INTEGER NOT NULL DEFAULT 0,
	created_at  INTEGER NOT NULL,
	duration_ns INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_jobs_created ON jobs(created_at DESC);
`

var pragmas = []string{
	"PRAGMA journal_mode=WAL",
	"PRAGMA busy_timeout=10000",
	"PRAGMA synchronous=NORMAL",
}

const jobColumns = `id, format, kind, subject, size, secondary, path, url, status, ok, summary, bytes, created_at, duration_ns`

// SQLiteStore 基于 modernc sqlite 的持久化历史。
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at path. ":memory:" is accepted.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, apperrors.Wrap(err, apperrors.CodeStorageFailed, "sqlite: mkdir")
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeStorageFailed, "sqlite: open")
	}
	// one writer; also keeps a :memory: database on a single connection
	db.SetMaxOpenConns(1)

	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, apperrors.Wrap(err, apperrors.CodeStorageFailed, fmt.Sprintf("sqlite: %s", p))
		}
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, apperrors.Wrap(err, apperrors.CodeStorageFailed, "sqlite: schema")
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Save(ctx context.Context, job Job) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO jobs (`+jobColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		job.ID, job.Format, job.Kind, job.Subject, job.Size, job.Secondary, job.Path, job.URL,
		job.Status, job.OK, job.Summary, job.Bytes, job.CreatedAt.UnixNano(), int64(job.Duration),
	)
	if err != nil {
		return apperrors.Wrap(err, apperrors.CodeStorageFailed, "sqlite: save job")
	}
	return nil
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (Job, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = ?`, id)
	job, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Job{}, notFound(id)
	}
	if err != nil {
		return Job{}, apperrors.Wrap(err, apperrors.CodeStorageFailed, "sqlite: get job")
	}
	return job, nil
}

func (s *SQLiteStore) List(ctx context.Context, limit int) ([]Job, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+jobColumns+` FROM jobs ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeStorageFailed, "sqlite: list jobs")
	}
	defer rows.Close()

	var out []Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.CodeStorageFailed, "sqlite: scan job")
		}
		out = append(out, job)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeStorageFailed, "sqlite: list jobs")
	}
	return out, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanJob(sc scanner) (Job, error) {
	var (
		job       Job
		createdAt int64
		duration  int64
	)
	err := sc.Scan(&job.ID, &job.Format, &job.Kind, &job.Subject, &job.Size, &job.Secondary,
		&job.Path, &job.URL, &job.Status, &job.OK, &job.Summary, &job.Bytes, &createdAt, &duration)
	if err != nil {
		return Job{}, err
	}
	job.CreatedAt = time.Unix(0, createdAt)
	job.Duration = time.Duration(duration)
	return job, nil
}
