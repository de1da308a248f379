// Package service contains recipe storage workflows
package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"brewprints/internal/adapters/ingest"
	"brewprints/internal/core/recipe"
	"brewprints/internal/modkit/repokit"
	perr "brewprints/internal/platform/errors"
	pnet "brewprints/internal/platform/net"
	"brewprints/internal/platform/store"
	calcdomain "brewprints/internal/services/api/calc/domain"
	"brewprints/internal/services/api/recipes/domain"

	"github.com/google/uuid"
)

// Service defines the service contract for recipes
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	Repo   domain.Repo
	binder repokit.Binder[domain.Repo]
	db     repokit.TxRunner
	calc   calcdomain.ServicePort
}

// New creates a new recipes service
func New(db repokit.TxRunner, binder repokit.Binder[domain.Repo], calc calcdomain.ServicePort) *Svc {
	if db == nil {
		panic("recipes.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("recipes.Service requires a non nil Repo binder")
	}
	if calc == nil {
		panic("recipes.Service requires a non nil calc port")
	}
	return &Svc{Repo: binder.Bind(db), binder: binder, db: db, calc: calc}
}

// Upload parses a recipe document, verifies it, and stores the canonical
// payload. Duplicate documents are detected by content hash, so renaming a
// file and uploading it again still conflicts
func (s *Svc) Upload(ctx context.Context, in domain.UploadInput) (domain.StoredRecipe, error) {
	rec, format, err := ingest.Parse(ingest.Format(in.Format), []byte(in.Content))
	if err != nil {
		return domain.StoredRecipe{}, err
	}
	if err := recipe.Validate(rec); err != nil {
		return domain.StoredRecipe{}, perr.Wrap(err, perr.ErrorCodeValidation, "recipe rejected")
	}

	payload, err := json.Marshal(rec)
	if err != nil {
		return domain.StoredRecipe{}, perr.Wrap(err, perr.ErrorCodeUnknown, "recipe not storable")
	}
	sum := sha256.Sum256(payload)

	row := domain.Row{
		ID:          uuid.NewString(),
		ContentHash: hex.EncodeToString(sum[:]),
		Format:      string(format),
		Name:        rec.Name,
		Style:       rec.StyleName,
		BatchSizeL:  rec.BatchSizeL,
		Payload:     payload,
	}

	err = store.RunTraced(ctx, s.db, pnet.RequestID(ctx), func(ctx context.Context, q store.RowQuerier) error {
		return s.binder.Bind(q).Insert(ctx, row)
	})
	if err != nil {
		return domain.StoredRecipe{}, err
	}

	return domain.StoredRecipe{
		ID:          row.ID,
		ContentHash: row.ContentHash,
		Format:      row.Format,
		Name:        row.Name,
		Style:       row.Style,
		BatchSizeL:  row.BatchSizeL,
		Recipe:      rec,
	}, nil
}

// List pages the recipe index, newest first
func (s *Svc) List(ctx context.Context, in domain.ListInput) ([]domain.ListItem, error) {
	rows, err := s.Repo.List(ctx, in.Name, in.Style, in.Limit, in.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]domain.ListItem, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.ListItem{
			ID:          r.ID,
			ContentHash: r.ContentHash,
			Format:      r.Format,
			Name:        r.Name,
			Style:       r.Style,
			BatchSizeL:  r.BatchSizeL,
			CreatedAt:   r.CreatedAt,
		})
	}
	return out, nil
}

// Get loads one stored recipe with its full payload
func (s *Svc) Get(ctx context.Context, id string) (domain.StoredRecipe, error) {
	row, err := s.load(ctx, id)
	if err != nil {
		return domain.StoredRecipe{}, err
	}
	var rec recipe.Recipe
	if err := json.Unmarshal(row.Payload, &rec); err != nil {
		return domain.StoredRecipe{}, perr.Wrap(err, perr.ErrorCodeUnknown, "stored payload unreadable")
	}
	return domain.StoredRecipe{
		ID:          row.ID,
		ContentHash: row.ContentHash,
		Format:      row.Format,
		Name:        row.Name,
		Style:       row.Style,
		BatchSizeL:  row.BatchSizeL,
		Recipe:      rec,
		CreatedAt:   row.CreatedAt,
	}, nil
}

// Delete removes a stored recipe
func (s *Svc) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	return s.Repo.Delete(ctx, id)
}

// Water runs the water pipeline against a stored recipe. The run is recorded
// against the recipe id
func (s *Svc) Water(ctx context.Context, id, displayUnit string) (calcdomain.WaterReport, error) {
	row, err := s.load(ctx, id)
	if err != nil {
		return calcdomain.WaterReport{}, err
	}
	var rec recipe.Recipe
	if err := json.Unmarshal(row.Payload, &rec); err != nil {
		return calcdomain.WaterReport{}, perr.Wrap(err, perr.ErrorCodeUnknown, "stored payload unreadable")
	}
	return s.calc.Water(ctx, calcdomain.WaterInput{
		Recipe:         rec,
		DisplayUnit:    displayUnit,
		SourceRecipeID: row.ID,
	})
}

func (s *Svc) load(ctx context.Context, id string) (domain.Row, error) {
	if err := checkID(id); err != nil {
		return domain.Row{}, err
	}
	return s.Repo.Get(ctx, id)
}

// checkID rejects malformed ids before they reach the uuid column
func checkID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return perr.Newf(perr.ErrorCodeInvalidArgument, "malformed recipe id %q", id)
	}
	return nil
}
