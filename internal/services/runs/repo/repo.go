// Package repo provides the clickhouse sink for run telemetry
package repo

import (
	"context"

	"brewprints/internal/platform/store"
	"brewprints/internal/services/runs/domain"
)

// Insert targets carry the column list so row order in WriteRuns cannot
// silently drift from the table definition
const (
	runsTarget = `calc_runs (
		run_id, at, source, recipe_id, content_hash, recipe_name,
		batch_size_l, display_unit,
		uses_sparge, sparge_method, sparge_confidence,
		evap_method, boil_off_rate_l_hr,
		was_adjusted, adjustment_l,
		flag_count, error_count, elapsed_ms
	)`
	flagsTarget = `calc_run_flags (run_id, at, flag)`
)

// Storage is the persistence surface for run telemetry
type Storage interface {
	WriteRuns(ctx context.Context, runs []domain.Run) error
}

// CH writes runs through the store clickhouse seam
type CH struct {
	db store.Clickhouse
}

// NewCH constructs the clickhouse storage
func NewCH(db store.Clickhouse) *CH {
	if db == nil {
		panic("runs.repo requires a non nil Clickhouse")
	}
	return &CH{db: db}
}

// WriteRuns appends run rows and their flag rows in batch order
func (s *CH) WriteRuns(ctx context.Context, runs []domain.Run) error {
	if len(runs) == 0 {
		return nil
	}

	rows := make([][]any, 0, len(runs))
	var flagRows [][]any
	for _, r := range runs {
		rows = append(rows, []any{
			r.RunID, r.At, r.Source, r.RecipeID, r.ContentHash, r.RecipeName,
			r.BatchSizeL, r.DisplayUnit,
			r.UsesSparge, r.SpargeMethod, r.SpargeConfidence,
			r.EvapMethod, r.BoilOffRateLHr,
			r.WasAdjusted, r.AdjustmentL,
			uint32(len(r.Flags)), uint32(r.ErrorCount), r.ElapsedMS,
		})
		for _, f := range r.Flags {
			flagRows = append(flagRows, []any{r.RunID, r.At, f})
		}
	}

	if err := s.db.Insert(ctx, runsTarget, rows); err != nil {
		return err
	}
	if len(flagRows) == 0 {
		return nil
	}
	return s.db.Insert(ctx, flagsTarget, flagRows)
}
