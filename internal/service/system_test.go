package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"car-rental-backend/internal/domain"
	"car-rental-backend/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSystem(t *testing.T) (*System, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	system, err := NewSystem(context.Background(), store.UserRepository, store.CarRepository, store.RentalRepository, store.SequenceRepository)
	require.NoError(t, err)
	return system, store
}

func testCar(id string) *domain.Car {
	return &domain.Car{
		CarID:        id,
		Make:         "Toyota",
		Model:        "Corolla",
		Year:         2021,
		Mileage:      35000,
		AvailableNow: true,
		MinRentDays:  2,
		MaxRentDays:  10,
		DailyRate:    50.0,
		FuelType:     "Petrol",
	}
}

func TestNewSystem_DefaultAdmin(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	system, err := NewSystem(ctx, store.UserRepository, store.CarRepository, store.RentalRepository, store.SequenceRepository)
	require.NoError(t, err)

	admin := system.Authenticate("admin", "password")
	require.NotNil(t, admin)
	assert.Equal(t, domain.RoleAdmin, admin.Role)

	// The admin is persisted, not just held in memory
	persisted, err := store.UserRepository.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, persisted.Role)
}

func TestNewSystem_KeepsExistingAdmin(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, store.UserRepository.Create(ctx, domain.NewAdmin("boss", "secret")))

	system, err := NewSystem(ctx, store.UserRepository, store.CarRepository, store.RentalRepository, store.SequenceRepository)
	require.NoError(t, err)

	assert.NotNil(t, system.Authenticate("boss", "secret"))
	// No default admin was added alongside the existing one
	assert.Nil(t, system.Authenticate("admin", "password"))
}

func TestSystem_RegisterCustomer(t *testing.T) {
	system, _ := newTestSystem(t)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		assert.NoError(t, system.RegisterCustomer(ctx, "alice", "pw"))
		assert.NotNil(t, system.Authenticate("alice", "pw"))
	})

	t.Run("Duplicate", func(t *testing.T) {
		err := system.RegisterCustomer(ctx, "alice", "other")
		assert.ErrorIs(t, err, domain.ErrDuplicateUsername)
		// The first registration is untouched
		assert.NotNil(t, system.Authenticate("alice", "pw"))
		assert.Nil(t, system.Authenticate("alice", "other"))
	})

	t.Run("DuplicateOfAdmin", func(t *testing.T) {
		err := system.RegisterCustomer(ctx, "admin", "pw")
		assert.ErrorIs(t, err, domain.ErrDuplicateUsername)
	})

	t.Run("EmptyCredentials", func(t *testing.T) {
		assert.ErrorIs(t, system.RegisterCustomer(ctx, "", "pw"), domain.ErrValidation)
		assert.ErrorIs(t, system.RegisterCustomer(ctx, "bob", ""), domain.ErrValidation)
	})
}

func TestSystem_Authenticate(t *testing.T) {
	system, _ := newTestSystem(t)
	require.NoError(t, system.RegisterCustomer(context.Background(), "alice", "pw"))

	t.Run("Success", func(t *testing.T) {
		u := system.Authenticate("alice", "pw")
		require.NotNil(t, u)
		assert.Equal(t, domain.RoleCustomer, u.Role)
	})

	// Unknown username and wrong password are indistinguishable
	t.Run("WrongPassword", func(t *testing.T) {
		assert.Nil(t, system.Authenticate("alice", "nope"))
	})
	t.Run("UnknownUser", func(t *testing.T) {
		assert.Nil(t, system.Authenticate("nobody", "pw"))
	})
}

func TestSystem_AddCar(t *testing.T) {
	system, _ := newTestSystem(t)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		require.NoError(t, system.AddCar(ctx, testCar("Car-001")))
		car, err := system.FindCarByID(ctx, "Car-001")
		require.NoError(t, err)
		assert.True(t, car.AvailableNow)
	})

	t.Run("DuplicateID", func(t *testing.T) {
		err := system.AddCar(ctx, testCar("Car-001"))
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("MinGreaterThanMax", func(t *testing.T) {
		car := testCar("Car-002")
		car.MinRentDays = 20
		assert.ErrorIs(t, system.AddCar(ctx, car), domain.ErrValidation)
	})
}

func TestSystem_UpdateCar(t *testing.T) {
	system, _ := newTestSystem(t)
	ctx := context.Background()
	require.NoError(t, system.AddCar(ctx, testCar("Car-001")))

	t.Run("Success", func(t *testing.T) {
		require.NoError(t, system.UpdateCar(ctx, "Car-001", 36000, 60.0))
		car, err := system.FindCarByID(ctx, "Car-001")
		require.NoError(t, err)
		assert.Equal(t, int32(36000), car.Mileage)
		assert.Equal(t, 60.0, car.DailyRate)
	})

	t.Run("MileageNeverDecreases", func(t *testing.T) {
		require.NoError(t, system.UpdateCar(ctx, "Car-001", 1000, 65.0))
		car, err := system.FindCarByID(ctx, "Car-001")
		require.NoError(t, err)
		// The lower reading was silently ignored, the rate still applied
		assert.Equal(t, int32(36000), car.Mileage)
		assert.Equal(t, 65.0, car.DailyRate)
	})

	t.Run("UnknownCar", func(t *testing.T) {
		assert.ErrorIs(t, system.UpdateCar(ctx, "Car-999", 1, 1), domain.ErrNotFound)
	})

	t.Run("NegativeRate", func(t *testing.T) {
		assert.ErrorIs(t, system.UpdateCar(ctx, "Car-001", 37000, -1), domain.ErrValidation)
	})
}

func TestSystem_BookCar(t *testing.T) {
	system, _ := newTestSystem(t)
	ctx := context.Background()
	require.NoError(t, system.RegisterCustomer(ctx, "alice", "pw"))
	require.NoError(t, system.AddCar(ctx, testCar("Car-001")))

	t.Run("ScenarioA", func(t *testing.T) {
		rental, err := system.BookCar(ctx, "alice", "Car-001", 3, 0)
		require.NoError(t, err)

		assert.Equal(t, "R-001", rental.RentalID)
		assert.Equal(t, domain.RentalStatusPending, rental.Status)
		assert.Equal(t, 150.0, rental.TotalCost)
		assert.Equal(t, time.Now().Format("2006-01-02"), rental.StartDate)
		assert.Equal(t, time.Now().AddDate(0, 0, 3).Format("2006-01-02"), rental.EndDate)

		car, err := system.FindCarByID(ctx, "Car-001")
		require.NoError(t, err)
		assert.False(t, car.AvailableNow)
	})

	t.Run("ScenarioD_Unavailable", func(t *testing.T) {
		before := len(system.AllRentals())
		_, err := system.BookCar(ctx, "alice", "Car-001", 3, 0)
		assert.ErrorIs(t, err, domain.ErrConflict)
		// No rental created, no state change
		assert.Len(t, system.AllRentals(), before)
	})

	t.Run("UnknownCar", func(t *testing.T) {
		_, err := system.BookCar(ctx, "alice", "Car-999", 3, 0)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("DaysOutOfRange", func(t *testing.T) {
		require.NoError(t, system.AddCar(ctx, testCar("Car-002")))
		_, err := system.BookCar(ctx, "alice", "Car-002", 1, 0)
		assert.ErrorIs(t, err, domain.ErrValidation)
		_, err = system.BookCar(ctx, "alice", "Car-002", 11, 0)
		assert.ErrorIs(t, err, domain.ErrValidation)

		car, cerr := system.FindCarByID(ctx, "Car-002")
		require.NoError(t, cerr)
		assert.True(t, car.AvailableNow)
	})

	t.Run("AdditionalFees", func(t *testing.T) {
		rental, err := system.BookCar(ctx, "alice", "Car-002", 4, 25.0)
		require.NoError(t, err)
		assert.Equal(t, 4*50.0+25.0, rental.TotalCost)
		assert.Equal(t, 25.0, rental.AdditionalFees)
	})
}

func TestSystem_ManageRentalRequest(t *testing.T) {
	system, _ := newTestSystem(t)
	ctx := context.Background()
	require.NoError(t, system.RegisterCustomer(ctx, "alice", "pw"))
	require.NoError(t, system.AddCar(ctx, testCar("Car-001")))

	rental, err := system.BookCar(ctx, "alice", "Car-001", 3, 0)
	require.NoError(t, err)

	t.Run("ScenarioB_Approve", func(t *testing.T) {
		require.NoError(t, system.ManageRentalRequest(ctx, rental.RentalID, ActionApprove))

		got, err := system.FindRentalByID(rental.RentalID)
		require.NoError(t, err)
		assert.Equal(t, domain.RentalStatusApproved, got.Status)

		// Approval leaves the car unavailable; it was held since booking
		car, err := system.FindCarByID(ctx, "Car-001")
		require.NoError(t, err)
		assert.False(t, car.AvailableNow)
	})

	t.Run("AlreadyProcessed", func(t *testing.T) {
		err := system.ManageRentalRequest(ctx, rental.RentalID, ActionApprove)
		assert.ErrorIs(t, err, domain.ErrInvalidState)
		err = system.ManageRentalRequest(ctx, rental.RentalID, ActionReject)
		assert.ErrorIs(t, err, domain.ErrInvalidState)
	})

	t.Run("RejectFreesCar", func(t *testing.T) {
		require.NoError(t, system.AddCar(ctx, testCar("Car-002")))
		r2, err := system.BookCar(ctx, "alice", "Car-002", 3, 0)
		require.NoError(t, err)

		require.NoError(t, system.ManageRentalRequest(ctx, r2.RentalID, ActionReject))

		got, err := system.FindRentalByID(r2.RentalID)
		require.NoError(t, err)
		assert.Equal(t, domain.RentalStatusRejected, got.Status)

		car, err := system.FindCarByID(ctx, "Car-002")
		require.NoError(t, err)
		assert.True(t, car.AvailableNow)
	})

	t.Run("UnknownRental", func(t *testing.T) {
		assert.ErrorIs(t, system.ManageRentalRequest(ctx, "R-999", ActionApprove), domain.ErrNotFound)
	})

	t.Run("UnknownAction", func(t *testing.T) {
		require.NoError(t, system.AddCar(ctx, testCar("Car-003")))
		r3, err := system.BookCar(ctx, "alice", "Car-003", 3, 0)
		require.NoError(t, err)
		assert.ErrorIs(t, system.ManageRentalRequest(ctx, r3.RentalID, "destroy"), domain.ErrValidation)
		// The rental stays pending
		got, err := system.FindRentalByID(r3.RentalID)
		require.NoError(t, err)
		assert.Equal(t, domain.RentalStatusPending, got.Status)
	})
}

func TestSystem_ReturnCar(t *testing.T) {
	system, _ := newTestSystem(t)
	ctx := context.Background()
	require.NoError(t, system.RegisterCustomer(ctx, "alice", "pw"))
	require.NoError(t, system.AddCar(ctx, testCar("Car-001")))

	rental, err := system.BookCar(ctx, "alice", "Car-001", 3, 0)
	require.NoError(t, err)

	t.Run("NotApprovedYet", func(t *testing.T) {
		_, err := system.ReturnCar(ctx, rental.RentalID)
		assert.ErrorIs(t, err, domain.ErrInvalidState)
	})

	t.Run("ScenarioC", func(t *testing.T) {
		require.NoError(t, system.ManageRentalRequest(ctx, rental.RentalID, ActionApprove))

		returned, err := system.ReturnCar(ctx, rental.RentalID)
		require.NoError(t, err)
		assert.Equal(t, domain.RentalStatusReturned, returned.Status)
		if assert.NotNil(t, returned.ReturnDate) {
			assert.Equal(t, time.Now().Format("2006-01-02"), *returned.ReturnDate)
		}

		car, err := system.FindCarByID(ctx, "Car-001")
		require.NoError(t, err)
		assert.True(t, car.AvailableNow)
	})

	t.Run("ReturnedIsTerminal", func(t *testing.T) {
		_, err := system.ReturnCar(ctx, rental.RentalID)
		assert.ErrorIs(t, err, domain.ErrInvalidState)
	})

	t.Run("UnknownRental", func(t *testing.T) {
		_, err := system.ReturnCar(ctx, "R-999")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestSystem_RemoveCar(t *testing.T) {
	system, _ := newTestSystem(t)
	ctx := context.Background()
	require.NoError(t, system.RegisterCustomer(ctx, "alice", "pw"))
	require.NoError(t, system.AddCar(ctx, testCar("Car-001")))

	rental, err := system.BookCar(ctx, "alice", "Car-001", 3, 0)
	require.NoError(t, err)

	t.Run("ScenarioE_BlockedWhilePending", func(t *testing.T) {
		assert.ErrorIs(t, system.RemoveCar(ctx, "Car-001"), domain.ErrConflict)
	})

	t.Run("BlockedWhileApproved", func(t *testing.T) {
		require.NoError(t, system.ManageRentalRequest(ctx, rental.RentalID, ActionApprove))
		assert.ErrorIs(t, system.RemoveCar(ctx, "Car-001"), domain.ErrConflict)
	})

	t.Run("ScenarioE_AllowedAfterReturn", func(t *testing.T) {
		_, err := system.ReturnCar(ctx, rental.RentalID)
		require.NoError(t, err)

		require.NoError(t, system.RemoveCar(ctx, "Car-001"))
		_, err = system.FindCarByID(ctx, "Car-001")
		assert.ErrorIs(t, err, domain.ErrNotFound)

		// The historical rental record survives the car
		got, err := system.FindRentalByID(rental.RentalID)
		require.NoError(t, err)
		assert.Equal(t, domain.RentalStatusReturned, got.Status)
	})

	t.Run("UnknownCar", func(t *testing.T) {
		assert.ErrorIs(t, system.RemoveCar(ctx, "Car-999"), domain.ErrNotFound)
	})
}

func TestSystem_RentalIDsMonotonicAcrossRestart(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	system, err := NewSystem(ctx, store.UserRepository, store.CarRepository, store.RentalRepository, store.SequenceRepository)
	require.NoError(t, err)
	require.NoError(t, system.RegisterCustomer(ctx, "alice", "pw"))

	for i := 1; i <= 3; i++ {
		require.NoError(t, system.AddCar(ctx, testCar(fmt.Sprintf("Car-%03d", i))))
		rental, err := system.BookCar(ctx, "alice", fmt.Sprintf("Car-%03d", i), 3, 0)
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("R-%03d", i), rental.RentalID)
	}

	// Restart: a fresh system over the same store must keep minting past
	// the ids it loaded.
	restarted, err := NewSystem(ctx, store.UserRepository, store.CarRepository, store.RentalRepository, store.SequenceRepository)
	require.NoError(t, err)
	require.NoError(t, restarted.AddCar(ctx, testCar("Car-004")))

	rental, err := restarted.BookCar(ctx, "alice", "Car-004", 3, 0)
	require.NoError(t, err)
	assert.Equal(t, "R-004", rental.RentalID)
}

func TestSystem_RentalListings(t *testing.T) {
	system, _ := newTestSystem(t)
	ctx := context.Background()
	require.NoError(t, system.RegisterCustomer(ctx, "alice", "pw"))
	require.NoError(t, system.RegisterCustomer(ctx, "bob", "pw"))
	require.NoError(t, system.AddCar(ctx, testCar("Car-001")))
	require.NoError(t, system.AddCar(ctx, testCar("Car-002")))

	r1, err := system.BookCar(ctx, "alice", "Car-001", 3, 0)
	require.NoError(t, err)
	r2, err := system.BookCar(ctx, "bob", "Car-002", 2, 0)
	require.NoError(t, err)
	require.NoError(t, system.ManageRentalRequest(ctx, r2.RentalID, ActionApprove))

	alice := system.CustomerRentals("alice")
	require.Len(t, alice, 1)
	assert.Equal(t, r1.RentalID, alice[0].RentalID)

	pending := system.RentalsByStatus(domain.RentalStatusPending)
	require.Len(t, pending, 1)
	assert.Equal(t, r1.RentalID, pending[0].RentalID)

	approved := system.RentalsByStatus(domain.RentalStatusApproved)
	require.Len(t, approved, 1)
	assert.Equal(t, r2.RentalID, approved[0].RentalID)

	all := system.AllRentals()
	require.Len(t, all, 2)
	assert.Equal(t, r1.RentalID, all[0].RentalID)
	assert.Equal(t, r2.RentalID, all[1].RentalID)

	available, err := system.AvailableCars(ctx)
	require.NoError(t, err)
	assert.Empty(t, available)
}

func TestSystem_ReconcileAvailability(t *testing.T) {
	system, store := newTestSystem(t)
	ctx := context.Background()
	require.NoError(t, system.RegisterCustomer(ctx, "alice", "pw"))
	require.NoError(t, system.AddCar(ctx, testCar("Car-001")))
	require.NoError(t, system.AddCar(ctx, testCar("Car-002")))

	_, err := system.BookCar(ctx, "alice", "Car-001", 3, 0)
	require.NoError(t, err)

	// Simulate drift: Car-001 flagged available despite its pending
	// rental, Car-002 flagged unavailable with no rental holding it.
	require.NoError(t, store.CarRepository.SetAvailability(ctx, "Car-001", true))
	require.NoError(t, store.CarRepository.SetAvailability(ctx, "Car-002", false))

	repaired, err := system.ReconcileAvailability(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, repaired)

	car1, err := store.CarRepository.GetByID(ctx, "Car-001")
	require.NoError(t, err)
	assert.False(t, car1.AvailableNow)
	car2, err := store.CarRepository.GetByID(ctx, "Car-002")
	require.NoError(t, err)
	assert.True(t, car2.AvailableNow)

	// A second pass finds nothing to repair
	repaired, err = system.ReconcileAvailability(ctx)
	require.NoError(t, err)
	assert.Zero(t, repaired)
}
