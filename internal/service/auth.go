package service

import (
	"context"
	"fmt"

	"car-rental-backend/internal/domain"
	"car-rental-backend/internal/logger"
)

// RegisterCustomer creates a customer account. Usernames are unique across
// both roles.
func (s *System) RegisterCustomer(ctx context.Context, username, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if username == "" || password == "" {
		return fmt.Errorf("username and password are required: %w", domain.ErrValidation)
	}
	if _, ok := s.users[username]; ok {
		return fmt.Errorf("username %q: %w", username, domain.ErrDuplicateUsername)
	}

	customer := domain.NewCustomer(username, password)
	if err := s.userRepo.Create(ctx, customer); err != nil {
		return err
	}
	s.users[username] = customer
	logger.Info("Registered customer", "username", username)
	return nil
}

// Authenticate looks the user up by username and compares the password by
// equality. It returns nil on any mismatch, with no distinction between an
// unknown username and a wrong password.
func (s *System) Authenticate(username, password string) *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[username]
	if !ok || !u.CheckPassword(password) {
		return nil
	}
	copied := *u
	return &copied
}
