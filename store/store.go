// Package store keeps the history of generation jobs.
package store

import (
	"context"
	"fmt"
	"time"

	"synthetic_data_generator/apperrors"
)

// Job 一次生成请求的结果记录。
type Job struct {
	ID        string        `json:"id"`
	Format    string        `json:"format"`
	Kind      string        `json:"kind"`
	Subject   string        `json:"subject"`
	Size      int           `json:"size"`
	Secondary string        `json:"secondary"`
	Path      string        `json:"path,omitempty"`
	URL       string        `json:"url,omitempty"`
	Status    string        `json:"status"`
	OK        bool          `json:"ok"`
	Summary   string        `json:"summary,omitempty"`
	Bytes     int           `json:"bytes"`
	CreatedAt time.Time     `json:"created_at"`
	Duration  time.Duration `json:"duration_ns"`
}

// JobStore persists jobs. List returns the newest first.
type JobStore interface {
	Save(ctx context.Context, job Job) error
	Get(ctx context.Context, id string) (Job, error)
	List(ctx context.Context, limit int) ([]Job, error)
	Close() error
}

// Open builds the store named by driver ("memory" or "sqlite").
func Open(driver, path string) (JobStore, error) {
	switch driver {
	case "", "memory":
		return NewMemoryStore(), nil
	case "sqlite":
		s, err := OpenSQLite(path)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, apperrors.Newf(apperrors.CodeInvalidParam, "unknown store driver: %s", driver)
	}
}

func notFound(id string) error {
	return apperrors.New(apperrors.CodeNotFound, fmt.Sprintf("job %s not found", id))
}
