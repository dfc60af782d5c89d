package service

import (
	"context"
	"errors"
	"time"

	"horta/pkg/records"
	"horta/pkg/relations"
	"horta/pkg/report"
	"horta/pkg/selection"
)

// ErrNotReady is returned while no snapshot has been loaded yet.
var ErrNotReady = errors.New("report data not loaded")

type ReportService interface {
	Reload(ctx context.Context) (*LoadStatus, error)
	Ready() bool
	Build(c selection.Criteria) (*report.Bundle, error)
	BedReport(c selection.Criteria, bed string) (*report.BedReport, error)
	Filters() (relations.Options, error)
	Warnings() []records.Warning
	// HasPlanting reports whether the current snapshot knows planting id.
	HasPlanting(id int64) bool
}

type LoadStatus struct {
	LoadedAt time.Time      `json:"loaded_at"`
	Counts   map[string]int `json:"counts"`
	Warnings int            `json:"warnings"`
}
