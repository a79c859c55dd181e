package services

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// AuthService guards the whole application behind a single shared club
// password. An empty configured password disables the gate entirely, which is
// handy for local use.
type AuthService interface {
	Enabled() bool
	VerifyPassword(password string) error
}

type authService struct {
	passwordHash []byte
}

func NewAuthService(clubPassword string) (AuthService, error) {
	if clubPassword == "" {
		return &authService{}, nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(clubPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash club password: %w", err)
	}
	return &authService{passwordHash: hash}, nil
}

func (s *authService) Enabled() bool {
	return len(s.passwordHash) > 0
}

func (s *authService) VerifyPassword(password string) error {
	if !s.Enabled() {
		return ErrAuthDisabled
	}
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrInvalidPassword
		}
		return fmt.Errorf("failed to compare password hash: %w", err)
	}
	return nil
}
