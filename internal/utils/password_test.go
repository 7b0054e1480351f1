package utils

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("user123", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if !VerifyPassword(hash, "user123") {
		t.Errorf("expected hash to verify against its password")
	}
	if VerifyPassword(hash, "wrong") {
		t.Errorf("expected wrong password to fail verification")
	}
}

func TestHashPasswordClampsBadCost(t *testing.T) {
	hash, err := HashPassword("user123", -1)
	if err != nil {
		t.Fatalf("hash with out-of-range cost failed: %v", err)
	}
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		t.Fatalf("read cost: %v", err)
	}
	if cost != bcrypt.DefaultCost {
		t.Errorf("cost = %d, want bcrypt default %d", cost, bcrypt.DefaultCost)
	}
}
