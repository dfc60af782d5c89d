package repository

import (
	"context"

	"horta/pkg/records"
)

// RecordRepository persists whole snapshots. Load makes it a records.Source.
type RecordRepository interface {
	ReplaceAll(ctx context.Context, s *records.Snapshot) error
	Load(ctx context.Context) (*records.Snapshot, []records.Warning, error)
	Counts(ctx context.Context) (map[string]int64, error)
}
