package domain

import (
	"context"

	calcdomain "brewprints/internal/services/api/calc/domain"
)

// ServicePort defines the service contract for recipes
type ServicePort interface {
	Upload(ctx context.Context, in UploadInput) (StoredRecipe, error)
	List(ctx context.Context, in ListInput) ([]ListItem, error)
	Get(ctx context.Context, id string) (StoredRecipe, error)
	Delete(ctx context.Context, id string) error
	// Water runs the water pipeline against a stored recipe. displayUnit may
	// be empty
	Water(ctx context.Context, id, displayUnit string) (calcdomain.WaterReport, error)
}

// Row is a recipe record as stored. Payload is the canonical recipe JSON
type Row struct {
	ID          string
	ContentHash string
	Format      string
	Name        string
	Style       string
	BatchSizeL  float64
	Payload     []byte
	CreatedAt   string
}

// Repo is the storage contract for recipes
type Repo interface {
	// Insert stores a recipe. Inserting a content hash that already exists
	// reports a duplicate key error
	Insert(ctx context.Context, row Row) error
	List(ctx context.Context, name, style string, limit, offset int) ([]Row, error)
	Get(ctx context.Context, id string) (Row, error)
	Delete(ctx context.Context, id string) error
}
