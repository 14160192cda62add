// Package booking is the best-effort Postgres mirror of the in-memory booking
// collection. Writes are fired after a successful commit and their failure
// never rolls back or delays the commit; the mirror may lag or miss rows.
// On startup the mirror is read once to restore upcoming bookings.
package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/bookathing/bookathing/internal/domain"
	"github.com/bookathing/bookathing/pkg/psqlbuilder"
)

// DBExecutor is the subset of *sql.DB the repository needs.
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

// Repository mirrors bookings into the bookings table.
type Repository struct {
	db DBExecutor
}

// NewRepository creates a mirror repository.
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Save upserts the booking's current state, keyed by its id. The same call
// covers creation, cancellation and status updates, so a lost earlier write is
// repaired by any later one.
func (r *Repository) Save(ctx context.Context, b *domain.Booking) error {
	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"id",
			"resource_id",
			"start_time",
			"end_time",
			"user_name",
			"user_email",
			"user_phone",
			"notes",
			"status",
			"created_at",
			"cancelled_at",
			"updated_at",
		).
		Values(
			b.ID,
			b.ResourceID,
			b.StartTime,
			b.EndTime,
			b.UserName,
			b.UserEmail,
			b.UserPhone,
			b.Notes,
			b.Status,
			b.CreatedAt,
			b.CancelledAt,
			b.UpdatedAt,
		).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			cancelled_at = EXCLUDED.cancelled_at,
			updated_at = EXCLUDED.updated_at`).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Save - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Save - execute upsert: %v", ErrExecQuery, err)
	}

	return nil
}

// ListByResource loads mirrored bookings of a resource starting inside
// [from, to), ascending by start time. Used to restore the in-memory
// collection on startup.
func (r *Repository) ListByResource(ctx context.Context, resourceID string, from, to time.Time) ([]*domain.Booking, error) {
	query, args, err := psqlbuilder.Select(
		"id",
		"resource_id",
		"start_time",
		"end_time",
		"user_name",
		"user_email",
		"user_phone",
		"notes",
		"status",
		"created_at",
		"cancelled_at",
		"updated_at",
	).
		From("bookings").
		Where(squirrel.Eq{"resource_id": resourceID}).
		Where(squirrel.GtOrEq{"start_time": from}).
		Where(squirrel.Lt{"start_time": to}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByResource - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByResource - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var result []*domain.Booking
	for rows.Next() {
		var b domain.Booking
		var cancelledAt, updatedAt sql.NullTime

		err := rows.Scan(
			&b.ID,
			&b.ResourceID,
			&b.StartTime,
			&b.EndTime,
			&b.UserName,
			&b.UserEmail,
			&b.UserPhone,
			&b.Notes,
			&b.Status,
			&b.CreatedAt,
			&cancelledAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByResource - scan row: %v", ErrScanRow, err)
		}

		if cancelledAt.Valid {
			t := cancelledAt.Time
			b.CancelledAt = &t
		}
		if updatedAt.Valid {
			t := updatedAt.Time
			b.UpdatedAt = &t
		}

		result = append(result, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByResource - iterate rows: %v", ErrScanRow, err)
	}

	return result, nil
}
