// Package repo provides postgres access for recipes
package repo

import (
	"context"
	"errors"

	"brewprints/internal/modkit/repokit"
	perr "brewprints/internal/platform/errors"
	"brewprints/internal/platform/store"
	"brewprints/internal/services/api/recipes/domain"
)

type (
	// PG is a Postgres binder for domain.Repo
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

// Compile-time assertion: queries implements domain.Repo
var _ domain.Repo = (*queries)(nil)

// NewPG returns a Postgres binder for Repo
func NewPG() repokit.Binder[domain.Repo] { return PG{} }

// Bind implements repokit.Binder
func (PG) Bind(q repokit.Queryer) domain.Repo { return &queries{q: q} }

// Insert stores a recipe row. The content hash carries a unique index, so a
// duplicate upload inserts nothing and reports ErrorCodeDuplicateKey
func (r *queries) Insert(ctx context.Context, row domain.Row) error {
	tag, err := r.q.Exec(ctx, `
		insert into recipes (id, content_hash, format, name, style, batch_size_l, payload, created_at)
		values ($1, $2, $3, $4, $5, $6, $7::jsonb, now())
		on conflict (content_hash) do nothing
	`, row.ID, row.ContentHash, row.Format, row.Name, row.Style, row.BatchSizeL, row.Payload)
	if err != nil {
		return perr.FromPostgresWithField(err, "recipe insert failed")
	}
	if tag.RowsAffected() == 0 {
		return perr.New(perr.ErrorCodeDuplicateKey, "recipe already uploaded")
	}
	return nil
}

func (r *queries) List(ctx context.Context, name, style string, limit, offset int) ([]domain.Row, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	const sql = `
select id::text, content_hash, format, name, style, batch_size_l, created_at::text
from recipes
where ($1 = '' or name ilike '%' || $1 || '%')
and ($2 = '' or style ilike '%' || $2 || '%')
order by created_at desc
limit $3 offset $4
`
	out, err := store.Many(ctx, r.q, scanIndexRow, sql, name, style, limit, offset)
	if err != nil {
		return nil, perr.FromPostgres(err, "recipe list failed")
	}
	return out, nil
}

func (r *queries) Get(ctx context.Context, id string) (domain.Row, error) {
	const sql = `
select id::text, content_hash, format, name, style, batch_size_l, payload, created_at::text
from recipes
where id = $1
`
	rr, err := store.One(ctx, r.q, scanFullRow, sql, id)
	if err != nil {
		if errors.Is(err, perr.ErrNotFound) {
			return domain.Row{}, perr.Newf(perr.ErrorCodeNotFound, "recipe %s not found", id)
		}
		return domain.Row{}, perr.FromPostgres(err, "recipe get failed")
	}
	return rr, nil
}

func (r *queries) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `delete from recipes where id = $1`, id)
	if err != nil {
		return perr.FromPostgres(err, "recipe delete failed")
	}
	if tag.RowsAffected() == 0 {
		return perr.Newf(perr.ErrorCodeNotFound, "recipe %s not found", id)
	}
	return nil
}

// scanIndexRow maps a listing row (no payload)
func scanIndexRow(sr store.Row) (domain.Row, error) {
	var rr domain.Row
	err := sr.Scan(
		&rr.ID,
		&rr.ContentHash,
		&rr.Format,
		&rr.Name,
		&rr.Style,
		&rr.BatchSizeL,
		&rr.CreatedAt,
	)
	return rr, err
}

// scanFullRow maps a full row including the canonical payload
func scanFullRow(sr store.Row) (domain.Row, error) {
	var rr domain.Row
	err := sr.Scan(
		&rr.ID,
		&rr.ContentHash,
		&rr.Format,
		&rr.Name,
		&rr.Style,
		&rr.BatchSizeL,
		&rr.Payload,
		&rr.CreatedAt,
	)
	return rr, err
}
