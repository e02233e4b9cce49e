package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, q Query) ([]*Booking, error)

	// UpdateStatus persists a status change guarded by the terminal-state rule:
	// the row is only written while its status is not APPROVED, so two racing
	// approvals cannot both succeed. Returns ErrStatusAlreadySet when the guard
	// rejects the write and ErrNotFound when the booking does not exist.
	UpdateStatus(ctx context.Context, id string, status Status) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var bookingColumns = []string{
	"b.id", "b.item_id", "i.name", "i.owner_id",
	"b.booker_id", "u.name",
	"b.start_time", "b.end_time", "b.status", "b.created_at",
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.bookings").
		Columns("item_id", "booker_id", "start_time", "end_time", "status").
		Values(b.ItemID, b.BookerID, b.Start, b.End, b.Status).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).Scan(&b.ID, &b.CreatedAt)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(bookingColumns...).
		From("public.bookings b").
		Join("public.items i ON b.item_id = i.id").
		Join("public.users u ON b.booker_id = u.id").
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	row := r.pool.QueryRow(ctx, query, args...)

	var b Booking
	if err := row.Scan(
		&b.ID, &b.ItemID, &b.ItemName, &b.ItemOwnerID,
		&b.BookerID, &b.BookerName,
		&b.Start, &b.End, &b.Status, &b.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return &b, nil
}

// listQuery renders a Query into the select statement List executes. The
// boundary semantics live in the operators: an interval containing the instant
// is start <= t AND end > t, so a booking starting exactly now is already
// CURRENT and one ending exactly now is already PAST.
func listQuery(q Query) squirrel.SelectBuilder {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(bookingColumns...).
		From("public.bookings b").
		Join("public.items i ON b.item_id = i.id").
		Join("public.users u ON b.booker_id = u.id")

	if q.Scope.BookerID != "" {
		query = query.Where(squirrel.Eq{"b.booker_id": q.Scope.BookerID})
	} else {
		query = query.Where(squirrel.Eq{"b.item_id": q.Scope.ItemIDs})
	}

	switch {
	case q.Status != "":
		query = query.Where(squirrel.Eq{"b.status": q.Status})
	case q.CurrentAt != nil:
		query = query.
			Where(squirrel.LtOrEq{"b.start_time": *q.CurrentAt}).
			Where(squirrel.Gt{"b.end_time": *q.CurrentAt})
	case q.EndBefore != nil:
		query = query.Where(squirrel.LtOrEq{"b.end_time": *q.EndBefore})
	case q.StartAfter != nil:
		query = query.Where(squirrel.Gt{"b.start_time": *q.StartAfter})
	}

	// Most recently started first; id breaks ties so pages stay stable.
	query = query.OrderBy("b.start_time DESC", "b.id ASC")

	if q.Offset > 0 {
		query = query.Offset(uint64(q.Offset))
	}
	if q.Limit > LimitAll {
		query = query.Limit(uint64(q.Limit))
	}

	return query
}

func (r *pgxRepository) List(ctx context.Context, q Query) ([]*Booking, error) {
	sql, args, err := listQuery(q).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		var b Booking
		if err := rows.Scan(
			&b.ID, &b.ItemID, &b.ItemName, &b.ItemOwnerID,
			&b.BookerID, &b.BookerName,
			&b.Start, &b.End, &b.Status, &b.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}

	return bookings, nil
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id string, status Status) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("status", status).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.NotEq{"status": StatusApproved}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update booking status query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update booking status failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		// Either the row vanished or a concurrent approval won the race.
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return ErrStatusAlreadySet
	}
	return nil
}
