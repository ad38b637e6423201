package sqlstore

import (
	"context"
	"regexp"
	"testing"

	"car-rental-backend/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var rentalColumns = []string{"rental_id", "customer_username", "car_id", "start_date", "end_date", "total_cost", "additional_fees", "status", "return_date"}

func TestRentalRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rt := domain.NewRental("R-001", "alice", "Car-001", "2026-08-30", "2026-09-02", 150.0, 0)
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO rentals`)).
		WithArgs("R-001", "alice", "Car-001", "2026-08-30", "2026-09-02", 150.0, 0.0, domain.RentalStatusPending, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewRentalRepository(db)
	assert.NoError(t, repo.Create(context.Background(), rt))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRentalRepository_GetByID(t *testing.T) {
	t.Run("Pending", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		rows := sqlmock.NewRows(rentalColumns).
			AddRow("R-001", "alice", "Car-001", "2026-08-30", "2026-09-02", 150.0, 0.0, "pending", nil)
		mock.ExpectQuery(regexp.QuoteMeta(`FROM rentals WHERE rental_id = $1`)).
			WithArgs("R-001").
			WillReturnRows(rows)

		repo := NewRentalRepository(db)
		rt, err := repo.GetByID(context.Background(), "R-001")
		require.NoError(t, err)
		assert.Equal(t, domain.RentalStatusPending, rt.Status)
		assert.Nil(t, rt.ReturnDate)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Returned", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		rows := sqlmock.NewRows(rentalColumns).
			AddRow("R-001", "alice", "Car-001", "2026-08-30", "2026-09-02", 150.0, 0.0, "returned", "2026-09-01")
		mock.ExpectQuery(regexp.QuoteMeta(`FROM rentals WHERE rental_id = $1`)).
			WithArgs("R-001").
			WillReturnRows(rows)

		repo := NewRentalRepository(db)
		rt, err := repo.GetByID(context.Background(), "R-001")
		require.NoError(t, err)
		assert.Equal(t, domain.RentalStatusReturned, rt.Status)
		if assert.NotNil(t, rt.ReturnDate) {
			assert.Equal(t, "2026-09-01", *rt.ReturnDate)
		}
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(regexp.QuoteMeta(`FROM rentals WHERE rental_id = $1`)).
			WithArgs("R-999").
			WillReturnRows(sqlmock.NewRows(rentalColumns))

		repo := NewRentalRepository(db)
		_, err = repo.GetByID(context.Background(), "R-999")
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRentalRepository_UpdateStatus(t *testing.T) {
	t.Run("Approve", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(regexp.QuoteMeta(`UPDATE rentals SET status=$1, return_date=$2 WHERE rental_id=$3`)).
			WithArgs(domain.RentalStatusApproved, nil, "R-001").
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewRentalRepository(db)
		assert.NoError(t, repo.UpdateStatus(context.Background(), "R-001", domain.RentalStatusApproved, nil))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Return", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		date := "2026-09-01"
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE rentals SET status=$1, return_date=$2 WHERE rental_id=$3`)).
			WithArgs(domain.RentalStatusReturned, date, "R-001").
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewRentalRepository(db)
		assert.NoError(t, repo.UpdateStatus(context.Background(), "R-001", domain.RentalStatusReturned, &date))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRentalRepository_ListByCustomer(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows(rentalColumns).
		AddRow("R-001", "alice", "Car-001", "2026-08-30", "2026-09-02", 150.0, 0.0, "pending", nil).
		AddRow("R-003", "alice", "Car-002", "2026-08-30", "2026-09-04", 275.0, 25.0, "returned", "2026-09-03")
	mock.ExpectQuery(regexp.QuoteMeta(`FROM rentals WHERE customer_username = $1 ORDER BY rental_id`)).
		WithArgs("alice").
		WillReturnRows(rows)

	repo := NewRentalRepository(db)
	rentals, err := repo.ListByCustomer(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, rentals, 2)
	assert.Equal(t, "R-001", rentals[0].RentalID)
	assert.Nil(t, rentals[0].ReturnDate)
	assert.NotNil(t, rentals[1].ReturnDate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRentalRepository_ListByStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows(rentalColumns).
		AddRow("R-002", "bob", "Car-002", "2026-08-30", "2026-09-01", 100.0, 0.0, "approved", nil)
	mock.ExpectQuery(regexp.QuoteMeta(`FROM rentals WHERE status = $1 ORDER BY rental_id`)).
		WithArgs(domain.RentalStatusApproved).
		WillReturnRows(rows)

	repo := NewRentalRepository(db)
	rentals, err := repo.ListByStatus(context.Background(), domain.RentalStatusApproved)
	require.NoError(t, err)
	require.Len(t, rentals, 1)
	assert.Equal(t, "R-002", rentals[0].RentalID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
