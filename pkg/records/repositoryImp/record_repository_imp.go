package repositoryImp

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"horta/entities"
	"horta/pkg/records"
	"horta/pkg/records/repository"
)

const batchSize = 200

type recordRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.RecordRepository { return &recordRepo{db} }

// ReplaceAll swaps the stored tables for the snapshot in one transaction.
func (r *recordRepo) ReplaceAll(ctx context.Context, s *records.Snapshot) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, m := range []any{
			&entities.Bed{}, &entities.Species{}, &entities.Planting{},
			&entities.Observation{}, &entities.Harvest{}, &entities.ManagementEvent{},
		} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(m).Error; err != nil {
				return fmt.Errorf("clear %T: %w", m, err)
			}
		}
		// RowID is assigned by sqlite; copies keep the snapshot untouched.
		if err := insert(tx, clearRowIDs(s.Beds, func(b *entities.Bed) { b.RowID = 0 })); err != nil {
			return fmt.Errorf("insert beds: %w", err)
		}
		if err := insert(tx, clearRowIDs(s.Species, func(v *entities.Species) { v.RowID = 0 })); err != nil {
			return fmt.Errorf("insert species: %w", err)
		}
		if err := insert(tx, clearRowIDs(s.Plantings, func(p *entities.Planting) { p.RowID = 0 })); err != nil {
			return fmt.Errorf("insert plantings: %w", err)
		}
		if err := insert(tx, clearRowIDs(s.Observations, func(o *entities.Observation) { o.RowID = 0 })); err != nil {
			return fmt.Errorf("insert observations: %w", err)
		}
		if err := insert(tx, clearRowIDs(s.Harvests, func(h *entities.Harvest) { h.RowID = 0 })); err != nil {
			return fmt.Errorf("insert harvests: %w", err)
		}
		if err := insert(tx, clearRowIDs(s.Events, func(e *entities.ManagementEvent) { e.RowID = 0 })); err != nil {
			return fmt.Errorf("insert events: %w", err)
		}
		return nil
	})
}

func clearRowIDs[T any](in []T, reset func(*T)) []T {
	out := make([]T, len(in))
	copy(out, in)
	for i := range out {
		reset(&out[i])
	}
	return out
}

func insert[T any](tx *gorm.DB, rows []T) error {
	if len(rows) == 0 {
		return nil
	}
	return tx.CreateInBatches(&rows, batchSize).Error
}

func (r *recordRepo) Load(ctx context.Context) (*records.Snapshot, []records.Warning, error) {
	db := r.db.WithContext(ctx)
	s := &records.Snapshot{}
	steps := []struct {
		table string
		dest  any
	}{
		{records.TableBeds, &s.Beds},
		{records.TableSpecies, &s.Species},
		{records.TablePlantings, &s.Plantings},
		{records.TableObservations, &s.Observations},
		{records.TableHarvests, &s.Harvests},
		{records.TableEvents, &s.Events},
	}
	for _, st := range steps {
		if err := db.Order("row_id ASC").Find(st.dest).Error; err != nil {
			return nil, nil, &records.LoadError{Source: st.table, Err: err}
		}
	}
	var warns []records.Warning
	counts := s.Counts()
	for _, st := range steps {
		if counts[st.table] == 0 {
			warns = append(warns, records.Warning{Source: st.table, Kind: records.SourceMissing, Message: "table is empty"})
		}
	}
	s.LoadedAt = time.Now()
	return s, warns, nil
}

func (r *recordRepo) Counts(ctx context.Context) (map[string]int64, error) {
	db := r.db.WithContext(ctx)
	out := map[string]int64{}
	for table, m := range map[string]any{
		records.TableBeds:         &entities.Bed{},
		records.TableSpecies:      &entities.Species{},
		records.TablePlantings:    &entities.Planting{},
		records.TableObservations: &entities.Observation{},
		records.TableHarvests:     &entities.Harvest{},
		records.TableEvents:       &entities.ManagementEvent{},
	} {
		var n int64
		if err := db.Model(m).Count(&n).Error; err != nil {
			return nil, fmt.Errorf("count %s: %w", table, err)
		}
		out[table] = n
	}
	return out, nil
}
