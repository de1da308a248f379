// Package service contains the stateless calculation workflows
package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"brewprints/internal/core/carbonation"
	"brewprints/internal/core/color"
	"brewprints/internal/core/gravity"
	"brewprints/internal/core/ibu"
	"brewprints/internal/core/recipe"
	"brewprints/internal/core/units"
	"brewprints/internal/core/water"
	perr "brewprints/internal/platform/errors"
	"brewprints/internal/services/api/calc/domain"
	runsdomain "brewprints/internal/services/runs/domain"
)

// Service defines the calc service contract
type Service interface {
	domain.ServicePort
}

// Options tune the calc service
type Options struct {
	// CacheCap bounds the water report memo; zero disables caching
	CacheCap int
	// Recorder receives run telemetry; nil disables recording
	Recorder runsdomain.RecorderPort
}

// Svc implements the calc service. One engine per display unit; both share
// the compiled term pack
type Svc struct {
	engines  map[units.Unit]*water.Engine
	cache    *reportCache
	recorder runsdomain.RecorderPort
}

// New constructs a calc service around a compiled term pack
func New(terms *water.Terms, opts Options) *Svc {
	if terms == nil {
		panic("calc.Service requires a non nil term pack")
	}
	return &Svc{
		engines: map[units.Unit]*water.Engine{
			units.Liters:  water.New(terms, water.WithRounder(units.NewRounder(units.Liters))),
			units.Gallons: water.New(terms, water.WithRounder(units.NewRounder(units.Gallons))),
		},
		cache:    newReportCache(opts.CacheCap),
		recorder: opts.Recorder,
	}
}

// Water runs the full pipeline. Reports are memoized by the content hash of
// the normalized inputs, so repeat submissions of equivalent recipes are
// answered without recomputation
func (s *Svc) Water(ctx context.Context, in domain.WaterInput) (domain.WaterReport, error) {
	started := time.Now()

	unit := units.Unit(in.DisplayUnit)
	if !unit.Valid() {
		unit = units.Liters
	}
	engine := s.engines[unit]

	rec := in.Recipe
	if err := recipe.Validate(rec); err != nil {
		return domain.WaterReport{}, perr.Wrap(err, perr.ErrorCodeValidation, "recipe rejected")
	}
	clampWarnings := recipe.Clamp(&rec)

	norm, err := engine.Normalize(rec)
	if err != nil {
		return domain.WaterReport{}, perr.Wrap(err, perr.ErrorCodeValidation, "recipe rejected")
	}

	hash, err := contentHash(norm)
	if err != nil {
		return domain.WaterReport{}, err
	}
	key := hash + "|" + string(unit)

	if rep, ok := s.cache.get(key); ok {
		s.record(ctx, in.SourceRecipeID, rec, rep, started)
		return rep, nil
	}

	res := engine.ResolveInputs(norm)
	rep := domain.WaterReport{
		DisplayUnit:   string(unit),
		ContentHash:   hash,
		Result:        res,
		Flags:         res.Flags(),
		ClampWarnings: clampWarnings,
	}
	s.cache.put(key, rep)
	s.record(ctx, in.SourceRecipeID, rec, rep, started)
	return rep, nil
}

// Gravity estimates OG/FG/ABV
func (s *Svc) Gravity(_ context.Context, in domain.GravityInput) (gravity.Result, error) {
	rec := in.Recipe
	if err := recipe.Validate(rec); err != nil {
		return gravity.Result{}, perr.Wrap(err, perr.ErrorCodeValidation, "recipe rejected")
	}
	warns := recipe.Clamp(&rec)

	res, err := gravity.Calc(rec)
	if err != nil {
		return gravity.Result{}, perr.Wrap(err, perr.ErrorCodeValidation, "gravity inputs rejected")
	}
	res.Flags = append(warns, res.Flags...)
	return res, nil
}

// IBU estimates total bitterness. A missing OG is estimated from the grain
// bill first and flagged
func (s *Svc) IBU(_ context.Context, in domain.IBUInput) (ibu.Result, error) {
	rec := in.Recipe
	if err := recipe.Validate(rec); err != nil {
		return ibu.Result{}, perr.Wrap(err, perr.ErrorCodeValidation, "recipe rejected")
	}
	warns := recipe.Clamp(&rec)

	og := in.OG
	if og <= 1 {
		g, err := gravity.Calc(rec)
		if err != nil {
			return ibu.Result{}, perr.Wrap(err, perr.ErrorCodeValidation, "gravity inputs rejected")
		}
		og = g.OG
		warns = append(warns, fmt.Sprintf("Estimated OG %.3f from the grain bill for hop utilization", og))
	}

	res, err := ibu.Calc(rec, og)
	if err != nil {
		return ibu.Result{}, perr.Wrap(err, perr.ErrorCodeValidation, "hop schedule rejected")
	}
	res.Flags = append(warns, res.Flags...)
	return res, nil
}

// Color estimates MCU/SRM/EBC
func (s *Svc) Color(_ context.Context, in domain.ColorInput) (color.Result, error) {
	rec := in.Recipe
	if err := recipe.Validate(rec); err != nil {
		return color.Result{}, perr.Wrap(err, perr.ErrorCodeValidation, "recipe rejected")
	}
	warns := recipe.Clamp(&rec)

	res, err := color.Calc(rec)
	if err != nil {
		return color.Result{}, perr.Wrap(err, perr.ErrorCodeValidation, "grain bill rejected")
	}
	res.Flags = append(warns, res.Flags...)
	return res, nil
}

// Carbonation sizes a priming addition
func (s *Svc) Carbonation(_ context.Context, in domain.CarbonationInput) (carbonation.Result, error) {
	res, err := carbonation.Calc(carbonation.Inputs{
		VolumeL:    in.VolumeL,
		TempC:      in.TempC,
		TargetVols: in.TargetVols,
		Sugar:      in.Sugar,
	})
	if err != nil {
		return carbonation.Result{}, perr.Wrap(err, perr.ErrorCodeValidation, "carbonation inputs rejected")
	}
	return res, nil
}

// contentHash is the sha256 of the normalized inputs in their canonical
// JSON form. Struct field order is fixed, so the encoding is deterministic
func contentHash(norm water.NormalizedInputs) (string, error) {
	payload, err := json.Marshal(norm)
	if err != nil {
		return "", perr.Wrap(err, perr.ErrorCodeUnknown, "normalized inputs not hashable")
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}

func (s *Svc) record(ctx context.Context, recipeID string, rec recipe.Recipe, rep domain.WaterReport, started time.Time) {
	if s.recorder == nil {
		return
	}
	source := runsdomain.SourceCalc
	if recipeID != "" {
		source = runsdomain.SourceRecipes
	}
	s.recorder.Record(ctx, runsdomain.Run{
		Source:           source,
		RecipeID:         recipeID,
		ContentHash:      rep.ContentHash,
		RecipeName:       rec.Name,
		BatchSizeL:       rec.BatchSizeL,
		DisplayUnit:      rep.DisplayUnit,
		UsesSparge:       rep.Result.Sparge.UsesSparge,
		SpargeMethod:     rep.Result.Sparge.Method,
		SpargeConfidence: string(rep.Result.Sparge.Confidence),
		EvapMethod:       rep.Result.Evaporation.Method,
		BoilOffRateLHr:   rep.Result.Evaporation.BoilOffRateLHr,
		WasAdjusted:      rep.Result.Flow.WasAdjusted,
		AdjustmentL:      rep.Result.Flow.AdjustmentL,
		Flags:            rep.Flags,
		ErrorCount:       len(rep.Result.Validation.Errors),
		ElapsedMS:        time.Since(started).Milliseconds(),
	})
}
