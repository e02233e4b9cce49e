package itemrequest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

type Repository interface {
	Create(ctx context.Context, req *ItemRequest) error
	GetByID(ctx context.Context, id string) (*ItemRequest, error)
	ListByRequestor(ctx context.Context, requestorID string) ([]*ItemRequest, error)
	// ListOthers returns requests posted by everyone except the given user,
	// newest first, paginated.
	ListOthers(ctx context.Context, requestorID string, from, size int) ([]*ItemRequest, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

// Offered items are fetched as a JSON array via a correlated subquery so one
// round-trip covers the whole listing.
const requestSelect = `
	SELECT
		r.id,
		r.description,
		r.requestor_id,
		r.created_at,
		COALESCE(
			(
				SELECT json_agg(json_build_object(
					'id', i.id,
					'name', i.name,
					'description', i.description,
					'available', i.available,
					'ownerId', i.owner_id
				) ORDER BY i.created_at)
				FROM public.items i
				WHERE i.request_id = r.id
			),
			'[]'::json
		) AS items
	FROM public.item_requests r
`

func (r *pgxRepository) Create(ctx context.Context, req *ItemRequest) error {
	const query = `
		INSERT INTO public.item_requests (description, requestor_id)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	if err := r.pool.QueryRow(ctx, query, req.Description, req.RequestorID).
		Scan(&req.ID, &req.CreatedAt); err != nil {
		return fmt.Errorf("create item request failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*ItemRequest, error) {
	query := requestSelect + ` WHERE r.id = $1`

	req, err := scanRequest(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get item request failed: %w", err)
	}
	return req, nil
}

func (r *pgxRepository) ListByRequestor(ctx context.Context, requestorID string) ([]*ItemRequest, error) {
	query := requestSelect + ` WHERE r.requestor_id = $1 ORDER BY r.created_at DESC`
	return r.queryRequests(ctx, query, requestorID)
}

func (r *pgxRepository) ListOthers(ctx context.Context, requestorID string, from, size int) ([]*ItemRequest, error) {
	query := requestSelect + ` WHERE r.requestor_id <> $1 ORDER BY r.created_at DESC OFFSET $2 LIMIT $3`
	return r.queryRequests(ctx, query, requestorID, from, size)
}

func (r *pgxRepository) queryRequests(ctx context.Context, query string, args ...any) ([]*ItemRequest, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list item requests failed: %w", err)
	}
	defer rows.Close()

	var requests []*ItemRequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item request failed: %w", err)
		}
		requests = append(requests, req)
	}
	return requests, nil
}

func scanRequest(row pgx.Row) (*ItemRequest, error) {
	var req ItemRequest
	var itemsJSON []byte

	if err := row.Scan(&req.ID, &req.Description, &req.RequestorID, &req.CreatedAt, &itemsJSON); err != nil {
		return nil, err
	}

	if len(itemsJSON) > 0 {
		if err := json.Unmarshal(itemsJSON, &req.Items); err != nil {
			// One bad record should not fail the whole listing.
			log.Warn().Err(err).Str("request_id", req.ID).Msg("failed to unmarshal offered items")
		}
	}
	return &req, nil
}
