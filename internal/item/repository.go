package item

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, it *Item) error
	GetByID(ctx context.Context, id string) (*Item, error)
	ListByOwner(ctx context.Context, ownerID string, from, size int) ([]*Item, error)
	IDsByOwner(ctx context.Context, ownerID string) ([]string, error)
	Search(ctx context.Context, text string, from, size int) ([]*Item, error)
	Update(ctx context.Context, it *Item) error
	Delete(ctx context.Context, id string) error

	// LastBooking returns the latest approved booking of the item started at or
	// before the instant; NextBooking the earliest approved one starting after
	// it. Both return (nil, nil) when no such booking exists.
	LastBooking(ctx context.Context, itemID string, at time.Time) (*BookingRef, error)
	NextBooking(ctx context.Context, itemID string, at time.Time) (*BookingRef, error)

	// HasFinishedBooking reports whether the user holds an approved booking of
	// the item that already started; this is the comment-eligibility rule.
	HasFinishedBooking(ctx context.Context, itemID, userID string, at time.Time) (bool, error)

	CreateComment(ctx context.Context, c *Comment) error
	CommentsByItem(ctx context.Context, itemID string) ([]Comment, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var itemColumns = []string{
	"i.id", "i.name", "i.description", "i.available",
	"i.owner_id", "u.name", "i.request_id", "i.created_at",
}

func scanItem(row pgx.Row) (*Item, error) {
	var it Item
	if err := row.Scan(
		&it.ID, &it.Name, &it.Description, &it.Available,
		&it.OwnerID, &it.OwnerName, &it.RequestID, &it.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *pgxRepository) Create(ctx context.Context, it *Item) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.items").
		Columns("name", "description", "available", "owner_id", "request_id").
		Values(it.Name, it.Description, it.Available, it.OwnerID, it.RequestID).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create item query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).Scan(&it.ID, &it.CreatedAt)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Item, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(itemColumns...).
		From("public.items i").
		Join("public.users u ON i.owner_id = u.id").
		Where(squirrel.Eq{"i.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get item query failed: %w", err)
	}

	it, err := scanItem(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get item failed: %w", err)
	}
	return it, nil
}

func (r *pgxRepository) ListByOwner(ctx context.Context, ownerID string, from, size int) ([]*Item, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(itemColumns...).
		From("public.items i").
		Join("public.users u ON i.owner_id = u.id").
		Where(squirrel.Eq{"i.owner_id": ownerID}).
		OrderBy("i.created_at ASC", "i.id ASC")

	if from > 0 {
		query = query.Offset(uint64(from))
	}
	if size > 0 {
		query = query.Limit(uint64(size))
	}

	return r.queryItems(ctx, query, "list items by owner")
}

func (r *pgxRepository) IDsByOwner(ctx context.Context, ownerID string) ([]string, error) {
	const query = `
		SELECT id
		FROM public.items
		WHERE owner_id = $1
	`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list item ids by owner failed: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan item id failed: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (r *pgxRepository) Search(ctx context.Context, text string, from, size int) ([]*Item, error) {
	pattern := "%" + text + "%"

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(itemColumns...).
		From("public.items i").
		Join("public.users u ON i.owner_id = u.id").
		Where(squirrel.Eq{"i.available": true}).
		Where(squirrel.Or{
			squirrel.ILike{"i.name": pattern},
			squirrel.ILike{"i.description": pattern},
		}).
		OrderBy("i.created_at ASC", "i.id ASC")

	if from > 0 {
		query = query.Offset(uint64(from))
	}
	if size > 0 {
		query = query.Limit(uint64(size))
	}

	return r.queryItems(ctx, query, "search items")
}

func (r *pgxRepository) queryItems(ctx context.Context, query squirrel.SelectBuilder, op string) ([]*Item, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build %s query failed: %w", op, err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%s failed: %w", op, err)
	}
	defer rows.Close()

	var items []*Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item failed: %w", err)
		}
		items = append(items, it)
	}
	return items, nil
}

func (r *pgxRepository) Update(ctx context.Context, it *Item) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.items").
		Set("name", it.Name).
		Set("description", it.Description).
		Set("available", it.Available).
		Where(squirrel.Eq{"id": it.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update item query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update item failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.items").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete item query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete item failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) LastBooking(ctx context.Context, itemID string, at time.Time) (*BookingRef, error) {
	const query = `
		SELECT id, booker_id
		FROM public.bookings
		WHERE item_id = $1 AND status = 'APPROVED' AND start_time <= $2
		ORDER BY start_time DESC
		LIMIT 1
	`
	return r.queryBookingRef(ctx, query, itemID, at)
}

func (r *pgxRepository) NextBooking(ctx context.Context, itemID string, at time.Time) (*BookingRef, error) {
	const query = `
		SELECT id, booker_id
		FROM public.bookings
		WHERE item_id = $1 AND status = 'APPROVED' AND start_time > $2
		ORDER BY start_time ASC
		LIMIT 1
	`
	return r.queryBookingRef(ctx, query, itemID, at)
}

func (r *pgxRepository) queryBookingRef(ctx context.Context, query, itemID string, at time.Time) (*BookingRef, error) {
	var ref BookingRef
	if err := r.pool.QueryRow(ctx, query, itemID, at).Scan(&ref.ID, &ref.BookerID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get booking ref failed: %w", err)
	}
	return &ref, nil
}

func (r *pgxRepository) HasFinishedBooking(ctx context.Context, itemID, userID string, at time.Time) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1
			FROM public.bookings
			WHERE item_id = $1 AND booker_id = $2 AND status = 'APPROVED' AND start_time < $3
		)
	`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, itemID, userID, at).Scan(&exists); err != nil {
		return false, fmt.Errorf("check finished booking failed: %w", err)
	}
	return exists, nil
}

func (r *pgxRepository) CreateComment(ctx context.Context, c *Comment) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.comments").
		Columns("item_id", "author_id", "text").
		Values(c.ItemID, c.AuthorID, c.Text).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create comment query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).Scan(&c.ID, &c.CreatedAt)
}

func (r *pgxRepository) CommentsByItem(ctx context.Context, itemID string) ([]Comment, error) {
	const query = `
		SELECT c.id, c.item_id, c.author_id, u.name, c.text, c.created_at
		FROM public.comments c
		JOIN public.users u ON c.author_id = u.id
		WHERE c.item_id = $1
		ORDER BY c.created_at ASC
	`

	rows, err := r.pool.Query(ctx, query, itemID)
	if err != nil {
		return nil, fmt.Errorf("list comments failed: %w", err)
	}
	defer rows.Close()

	var comments []Comment
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.ItemID, &c.AuthorID, &c.AuthorName, &c.Text, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan comment failed: %w", err)
		}
		comments = append(comments, c)
	}
	return comments, nil
}
