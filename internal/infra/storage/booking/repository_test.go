package booking

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookathing/bookathing/internal/domain"
	"github.com/bookathing/bookathing/pkg/ptr"
)

type fakeExecutor struct {
	gotQuery string
	gotArgs  []interface{}
	execErr  error
	queryErr error
}

func (f *fakeExecutor) ExecContext(_ context.Context, query string, args ...interface{}) (sql.Result, error) {
	f.gotQuery = query
	f.gotArgs = args
	return nil, f.execErr
}

func (f *fakeExecutor) QueryContext(_ context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	f.gotQuery = query
	f.gotArgs = args
	return nil, f.queryErr
}

func TestSave_UpsertQueryAndArgs(t *testing.T) {
	db := &fakeExecutor{}
	repo := NewRepository(db)

	cancelledAt := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	b := &domain.Booking{
		ID:          "b1",
		ResourceID:  "w1",
		StartTime:   time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
		EndTime:     time.Date(2026, 3, 2, 10, 30, 0, 0, time.UTC),
		UserName:    "Alice",
		UserEmail:   ptr.Ptr("alice@example.test"),
		Status:      domain.StatusCancelled,
		CreatedAt:   time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC),
		CancelledAt: &cancelledAt,
	}

	require.NoError(t, repo.Save(context.Background(), b))

	assert.Contains(t, db.gotQuery, "INSERT INTO bookings")
	assert.Contains(t, db.gotQuery, "ON CONFLICT (id) DO UPDATE SET")
	assert.Contains(t, db.gotQuery, "status = EXCLUDED.status")
	assert.Contains(t, db.gotQuery, "$12")

	require.Len(t, db.gotArgs, 12)
	assert.Equal(t, "b1", db.gotArgs[0])
	assert.Equal(t, "w1", db.gotArgs[1])
	assert.Equal(t, b.StartTime, db.gotArgs[2])
	assert.Equal(t, b.EndTime, db.gotArgs[3])
	assert.Equal(t, "Alice", db.gotArgs[4])
	assert.Equal(t, b.UserEmail, db.gotArgs[5])
	assert.Equal(t, domain.StatusCancelled, db.gotArgs[8])
	assert.Equal(t, &cancelledAt, db.gotArgs[10])
}

func TestSave_ExecError(t *testing.T) {
	repo := NewRepository(&fakeExecutor{execErr: errors.New("connection reset")})

	err := repo.Save(context.Background(), &domain.Booking{ID: "b1"})
	assert.ErrorIs(t, err, ErrExecQuery)
}

func TestListByResource_QueryAndArgs(t *testing.T) {
	db := &fakeExecutor{queryErr: errors.New("connection reset")}
	repo := NewRepository(db)

	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2027, 3, 1, 0, 0, 0, 0, time.UTC)

	_, err := repo.ListByResource(context.Background(), "w1", from, to)
	assert.ErrorIs(t, err, ErrExecQuery)

	assert.Contains(t, db.gotQuery, "FROM bookings")
	assert.Contains(t, db.gotQuery, "resource_id = $1")
	assert.Contains(t, db.gotQuery, "start_time >= $2")
	assert.Contains(t, db.gotQuery, "start_time < $3")
	assert.Contains(t, db.gotQuery, "ORDER BY start_time ASC")
	assert.Equal(t, []interface{}{"w1", from, to}, db.gotArgs)
}
