package services

import (
	"errors"
	"testing"
)

func TestAuthServiceDisabledWithoutPassword(t *testing.T) {
	svc, err := NewAuthService("")
	if err != nil {
		t.Fatalf("NewAuthService() error = %v", err)
	}
	if svc.Enabled() {
		t.Error("auth enabled with empty club password")
	}
	if err := svc.VerifyPassword("anything"); !errors.Is(err, ErrAuthDisabled) {
		t.Errorf("VerifyPassword() error = %v, want %v", err, ErrAuthDisabled)
	}
}

func TestAuthServiceVerifiesPassword(t *testing.T) {
	svc, err := NewAuthService("club-secret")
	if err != nil {
		t.Fatalf("NewAuthService() error = %v", err)
	}
	if !svc.Enabled() {
		t.Fatal("auth disabled despite configured password")
	}
	if err := svc.VerifyPassword("club-secret"); err != nil {
		t.Errorf("correct password rejected: %v", err)
	}
	if err := svc.VerifyPassword("wrong"); !errors.Is(err, ErrInvalidPassword) {
		t.Errorf("wrong password error = %v, want %v", err, ErrInvalidPassword)
	}
}
