package utils

import (
	"errors"
	"testing"
	"time"
)

func TestHashPassword(t *testing.T) {
	password := "secret-password"
	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !CheckPassword(password, hash) {
		t.Errorf("Expected password check to pass")
	}

	if CheckPassword("wrongpassword", hash) {
		t.Errorf("Expected password check to fail")
	}
}

func TestJWT(t *testing.T) {
	secret := "supersecret"
	userID := "7d3c1f0e-5a8b-4c1e-9f7a-2b6d8e4c0a11"
	email := "sarah@example.com"

	token, expiresAt, err := GenerateToken(userID, email, secret)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if time.Until(expiresAt) <= 0 {
		t.Errorf("Expected expiry in the future, got %v", expiresAt)
	}

	claims, err := ValidateToken(token, secret)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if claims.UserID != userID {
		t.Errorf("Expected UserID %s, got %s", userID, claims.UserID)
	}
	if claims.Email != email {
		t.Errorf("Expected Email %s, got %s", email, claims.Email)
	}
	if claims.Role != AuthenticatedRole {
		t.Errorf("Expected Role %s, got %s", AuthenticatedRole, claims.Role)
	}

	_, err = ValidateToken(token, "wrongsecret")
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Expected ErrInvalidToken with wrong secret, got %v", err)
	}
}
