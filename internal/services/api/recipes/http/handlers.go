// Package http provides http transport for recipes
package http

import (
	stdhttp "net/http"

	"brewprints/internal/modkit/httpkit"
	"brewprints/internal/platform/net/middleware"
	"brewprints/internal/services/api/recipes/domain"
	svc "brewprints/internal/services/api/recipes/service"

	"github.com/go-chi/chi/v5"
)

// Register mounts recipe endpoints on the given router. Deletion sits behind
// the auth port; a nil port leaves it open for local development
func Register(r httpkit.Router, s svc.Service, auth middleware.AuthPort) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.UploadInput](r, "/", h.upload)
	httpkit.PostJSON[domain.ListInput](r, "/search", h.search)
	httpkit.Get(r, "/{id}", h.get)
	httpkit.Get(r, "/{id}/water", h.water)
	httpkit.Protected(r, auth, func(pr httpkit.Router) {
		httpkit.Delete(pr, "/{id}", h.remove)
	})
}

type handlers struct{ svc svc.Service }

// @Summary Upload a recipe document
// @Description Parses BeerXML or BeerJSON, stores the canonical recipe, and rejects duplicates by content hash
// @Tags Recipes
// @Accept json
// @Produce json
// @Param payload body domain.UploadInput true "Recipe document"
// @Success 201 {object} domain.StoredRecipe "created"
// @Failure 409 "duplicate content"
// @Router /recipes [post]
func (h *handlers) upload(r *stdhttp.Request, in domain.UploadInput) (any, error) {
	stored, err := h.svc.Upload(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(stored), nil
}

// @Summary List stored recipes
// @Tags Recipes
// @Accept json
// @Produce json
// @Param payload body domain.ListInput true "Filters"
// @Success 200 {array} domain.ListItem "ok"
// @Router /recipes/search [post]
func (h *handlers) search(r *stdhttp.Request, in domain.ListInput) (any, error) {
	return h.svc.List(r.Context(), in)
}

// @Summary Fetch one stored recipe
// @Tags Recipes
// @Produce json
// @Param id path string true "Recipe id"
// @Success 200 {object} domain.StoredRecipe "ok"
// @Failure 404 "not found"
// @Router /recipes/{id} [get]
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	return h.svc.Get(r.Context(), chi.URLParam(r, "id"))
}

// @Summary Run the water pipeline against a stored recipe
// @Tags Recipes
// @Produce json
// @Param id path string true "Recipe id"
// @Param unit query string false "Display unit (l or gal)"
// @Success 200 {object} calcdomain.WaterReport "ok"
// @Failure 404 "not found"
// @Router /recipes/{id}/water [get]
func (h *handlers) water(r *stdhttp.Request) (any, error) {
	return h.svc.Water(r.Context(), chi.URLParam(r, "id"), r.URL.Query().Get("unit"))
}

// @Summary Delete a stored recipe
// @Tags Recipes
// @Param id path string true "Recipe id"
// @Success 204 "deleted"
// @Failure 404 "not found"
// @Security BearerAuth
// @Router /recipes/{id} [delete]
func (h *handlers) remove(r *stdhttp.Request) (any, error) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		return nil, err
	}
	return httpkit.NoContent(), nil
}
