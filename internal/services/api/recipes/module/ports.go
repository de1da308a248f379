package module

import (
	"context"

	calcdomain "brewprints/internal/services/api/calc/domain"
	recipesdom "brewprints/internal/services/api/recipes/domain"
	recipessvc "brewprints/internal/services/api/recipes/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// adaptRecipesPort adapts the recipes service to the domain port interface
type adaptRecipesPort struct{ svc recipessvc.Service }

// Upload implements the domain ServicePort interface
func (a adaptRecipesPort) Upload(ctx context.Context, in recipesdom.UploadInput) (recipesdom.StoredRecipe, error) {
	return a.svc.Upload(ctx, in)
}

// List implements the domain ServicePort interface
func (a adaptRecipesPort) List(ctx context.Context, in recipesdom.ListInput) ([]recipesdom.ListItem, error) {
	return a.svc.List(ctx, in)
}

// Get implements the domain ServicePort interface
func (a adaptRecipesPort) Get(ctx context.Context, id string) (recipesdom.StoredRecipe, error) {
	return a.svc.Get(ctx, id)
}

// Delete implements the domain ServicePort interface
func (a adaptRecipesPort) Delete(ctx context.Context, id string) error {
	return a.svc.Delete(ctx, id)
}

// Water implements the domain ServicePort interface
func (a adaptRecipesPort) Water(ctx context.Context, id, displayUnit string) (calcdomain.WaterReport, error) {
	return a.svc.Water(ctx, id, displayUnit)
}
