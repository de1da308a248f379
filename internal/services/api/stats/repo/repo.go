// Package repo provides clickhouse access for stats
package repo

import (
	"context"
	"time"

	perr "brewprints/internal/platform/errors"
	"brewprints/internal/platform/store"
)

// Repo is the minimal persistence surface for stats. Windows are half-open:
// start inclusive, end exclusive
type Repo interface {
	Flags(ctx context.Context, start, end time.Time, limit int) ([]RowFlag, error)
	SpargeMethods(ctx context.Context, start, end time.Time) ([]RowSpargeMethod, error)
	Adjustments(ctx context.Context, start, end time.Time) ([]RowAdjustment, error)
	EvapMethods(ctx context.Context, start, end time.Time) ([]RowEvapMethod, error)
}

// RowFlag is a flag frequency row
type RowFlag struct {
	Flag string
	Runs uint64
}

// RowSpargeMethod is a sparge decision bucket
type RowSpargeMethod struct {
	Method     string
	Confidence string
	Runs       uint64
	Sparging   uint64
}

// RowAdjustment is one day of reconciliation activity
type RowAdjustment struct {
	Day            string
	Runs           uint64
	Adjusted       uint64
	AvgAdjustmentL float64
}

// RowEvapMethod is an evaporation resolution bucket
type RowEvapMethod struct {
	Method        string
	Runs          uint64
	AvgBoilOffLHr float64
}

// CH implements Repo against the run telemetry tables
type CH struct {
	db store.Clickhouse
}

// NewCH wires the clickhouse seam
func NewCH(db store.Clickhouse) *CH {
	if db == nil {
		panic("stats.Repo requires a non nil clickhouse")
	}
	return &CH{db: db}
}

func (r *CH) Flags(ctx context.Context, start, end time.Time, limit int) ([]RowFlag, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	const sql = `
select flag, count() as runs
from calc_run_flags
where at >= ? and at < ?
group by flag
order by runs desc
limit ?
`
	rows, err := r.db.Query(ctx, sql, start, end, limit)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeDB, "flag stats failed")
	}
	defer rows.Close()
	var out []RowFlag
	for rows.Next() {
		var rr RowFlag
		if err := rows.Scan(&rr.Flag, &rr.Runs); err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeDB, "flag stats scan failed")
		}
		out = append(out, rr)
	}
	return out, rows.Err()
}

func (r *CH) SpargeMethods(ctx context.Context, start, end time.Time) ([]RowSpargeMethod, error) {
	const sql = `
select sparge_method, sparge_confidence, count() as runs, countIf(uses_sparge) as sparging
from calc_runs
where at >= ? and at < ?
group by sparge_method, sparge_confidence
order by runs desc
`
	rows, err := r.db.Query(ctx, sql, start, end)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeDB, "sparge stats failed")
	}
	defer rows.Close()
	var out []RowSpargeMethod
	for rows.Next() {
		var rr RowSpargeMethod
		if err := rows.Scan(&rr.Method, &rr.Confidence, &rr.Runs, &rr.Sparging); err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeDB, "sparge stats scan failed")
		}
		out = append(out, rr)
	}
	return out, rows.Err()
}

func (r *CH) Adjustments(ctx context.Context, start, end time.Time) ([]RowAdjustment, error) {
	// avgIf over zero rows is NaN, so guard with the matching countIf
	const sql = `
select toString(toDate(at)) as day,
count() as runs,
countIf(was_adjusted) as adjusted,
if(countIf(was_adjusted) = 0, 0., avgIf(abs(adjustment_l), was_adjusted)) as avg_adjustment_l
from calc_runs
where at >= ? and at < ?
group by day
order by day asc
`
	rows, err := r.db.Query(ctx, sql, start, end)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeDB, "adjustment stats failed")
	}
	defer rows.Close()
	var out []RowAdjustment
	for rows.Next() {
		var rr RowAdjustment
		if err := rows.Scan(&rr.Day, &rr.Runs, &rr.Adjusted, &rr.AvgAdjustmentL); err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeDB, "adjustment stats scan failed")
		}
		out = append(out, rr)
	}
	return out, rows.Err()
}

func (r *CH) EvapMethods(ctx context.Context, start, end time.Time) ([]RowEvapMethod, error) {
	// methods that never resolve a rate store zero, keep them out of the avg
	const sql = `
select evap_method,
count() as runs,
if(countIf(boil_off_rate_l_hr > 0) = 0, 0., avgIf(boil_off_rate_l_hr, boil_off_rate_l_hr > 0)) as avg_rate
from calc_runs
where at >= ? and at < ?
group by evap_method
order by runs desc
`
	rows, err := r.db.Query(ctx, sql, start, end)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeDB, "evaporation stats failed")
	}
	defer rows.Close()
	var out []RowEvapMethod
	for rows.Next() {
		var rr RowEvapMethod
		if err := rows.Scan(&rr.Method, &rr.Runs, &rr.AvgBoilOffLHr); err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeDB, "evaporation stats scan failed")
		}
		out = append(out, rr)
	}
	return out, rows.Err()
}
