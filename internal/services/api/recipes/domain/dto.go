// Package domain holds DTOs and contracts for the recipes service
package domain

import "brewprints/internal/core/recipe"

// UploadInput is a recipe document upload. Format is optional; an empty
// format means sniff the payload
type UploadInput struct {
	Format  string `json:"format,omitempty" validate:"omitempty,oneof=beerxml beerjson" example:"beerxml"`
	Content string `json:"content" validate:"required" example:"<RECIPES><RECIPE>...</RECIPE></RECIPES>"`
}

// ListInput filters and pages the recipe index
type ListInput struct {
	Name   string `json:"name,omitempty" validate:"omitempty,max=200" example:"pale"`
	Style  string `json:"style,omitempty" validate:"omitempty,max=100" example:"IPA"`
	Limit  int    `json:"limit,omitempty" validate:"omitempty,min=1,max=200" example:"50"`
	Offset int    `json:"offset,omitempty" validate:"omitempty,min=0" example:"0"`
}

// ListItem is one row of the recipe index
type ListItem struct {
	ID          string  `json:"id"`
	ContentHash string  `json:"content_hash"`
	Format      string  `json:"format"`
	Name        string  `json:"name"`
	Style       string  `json:"style,omitempty"`
	BatchSizeL  float64 `json:"batch_size_l"`
	CreatedAt   string  `json:"created_at"`
}

// StoredRecipe is a saved recipe with its full canonical payload
type StoredRecipe struct {
	ID          string        `json:"id"`
	ContentHash string        `json:"content_hash"`
	Format      string        `json:"format"`
	Name        string        `json:"name"`
	Style       string        `json:"style,omitempty"`
	BatchSizeL  float64       `json:"batch_size_l"`
	Recipe      recipe.Recipe `json:"recipe"`
	CreatedAt   string        `json:"created_at"`
}
