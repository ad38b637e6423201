package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"car-rental-backend/internal/domain"
	"car-rental-backend/internal/logger"
	"car-rental-backend/internal/repository"
)

const dateLayout = "2006-01-02"

// Name of the persisted counter that mints rental ids.
const rentalSequence = "rental_id"

// Default admin account guaranteed to exist after hydration. Front ends may
// rely on these credentials for first login.
const (
	defaultAdminUsername = "admin"
	defaultAdminPassword = "password"
)

// System is the coordinating authority over users, cars, and rentals.
// Exactly one instance exists per process; it is the only component allowed
// to mutate cross-entity state. Users and rentals are hydrated into memory
// at startup, cars are always read through the store. Every operation runs
// under one coarse lock, so multi-step transitions appear atomic to callers.
type System struct {
	mu sync.Mutex

	userRepo   repository.UserRepository
	carRepo    repository.CarRepository
	rentalRepo repository.RentalRepository
	seqRepo    repository.SequenceRepository

	users   map[string]*domain.User
	rentals map[string]*domain.Rental
}

// NewSystem hydrates the system from the store: loads users (creating the
// default admin if none exists), loads the rental history, and raises the
// rental-id counter above the highest id seen, so newly minted ids never
// collide with historical ones even when the persisted counter is stale.
func NewSystem(
	ctx context.Context,
	userRepo repository.UserRepository,
	carRepo repository.CarRepository,
	rentalRepo repository.RentalRepository,
	seqRepo repository.SequenceRepository,
) (*System, error) {
	s := &System{
		userRepo:   userRepo,
		carRepo:    carRepo,
		rentalRepo: rentalRepo,
		seqRepo:    seqRepo,
		users:      make(map[string]*domain.User),
		rentals:    make(map[string]*domain.Rental),
	}

	users, err := userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading users: %w", err)
	}
	hasAdmin := false
	for i := range users {
		u := users[i]
		s.users[u.Username] = &u
		if u.IsAdmin() {
			hasAdmin = true
		}
	}
	if !hasAdmin {
		admin := domain.NewAdmin(defaultAdminUsername, defaultAdminPassword)
		if err := userRepo.Create(ctx, admin); err != nil {
			return nil, fmt.Errorf("creating default admin: %w", err)
		}
		s.users[admin.Username] = admin
		logger.Info("Created default admin account", "username", admin.Username)
	}

	rentals, err := rentalRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading rentals: %w", err)
	}
	var maxID int64
	for i := range rentals {
		rt := rentals[i]
		s.rentals[rt.RentalID] = &rt
		if n, ok := rentalIDSuffix(rt.RentalID); ok && n > maxID {
			maxID = n
		}
	}
	if maxID > 0 {
		if err := seqRepo.EnsureAtLeast(ctx, rentalSequence, maxID); err != nil {
			return nil, fmt.Errorf("raising rental sequence: %w", err)
		}
	}

	logger.Info("System hydrated", "users", len(s.users), "rentals", len(s.rentals))
	return s, nil
}

// rentalIDSuffix extracts the numeric part of an id like "R-042".
func rentalIDSuffix(id string) (int64, bool) {
	rest, ok := strings.CutPrefix(id, "R-")
	if !ok {
		return 0, false
	}
	n, err := strconv.ParseInt(rest, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func today() string {
	return time.Now().Format(dateLayout)
}

// ReconcileAvailability re-derives every car's availability flag from the
// rental history and repairs drift, e.g. after a crash between the rental
// write and the car write of a booking. It compares no date ranges; the
// availability model stays a single boolean per car.
func (s *System) ReconcileAvailability(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	held := make(map[string]bool)
	for _, rt := range s.rentals {
		if rt.Active() {
			held[rt.CarID] = true
		}
	}

	cars, err := s.carRepo.List(ctx)
	if err != nil {
		return 0, err
	}

	repaired := 0
	for _, car := range cars {
		want := !held[car.CarID]
		if car.AvailableNow == want {
			continue
		}
		if err := s.carRepo.SetAvailability(ctx, car.CarID, want); err != nil {
			return repaired, err
		}
		repaired++
		logger.Warn("Repaired availability drift", "car_id", car.CarID, "available_now", want)
	}
	return repaired, nil
}

func sortRentals(rentals []domain.Rental) {
	sort.Slice(rentals, func(i, j int) bool {
		a, aok := rentalIDSuffix(rentals[i].RentalID)
		b, bok := rentalIDSuffix(rentals[j].RentalID)
		if aok && bok {
			return a < b
		}
		return rentals[i].RentalID < rentals[j].RentalID
	})
}
