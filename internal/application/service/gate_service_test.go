package service

import (
	"errors"
	"testing"

	"github.com/glowdesk/salonpos-api/pkg/apperror"
)

func TestGateWithoutPassword(t *testing.T) {
	gate := NewGateService(newFakeStore())

	if gate.IsLocked() {
		t.Error("gate must be open when no password is configured")
	}
	if err := gate.AttemptUnlock("anything"); err != nil {
		t.Errorf("unlock with no password configured: %v", err)
	}
}

func TestGateUnlockFlow(t *testing.T) {
	store := newFakeStore()
	hash := HashPassword("hunter2")
	store.settings.SettingsPassword = hash
	gate := NewGateService(store)

	if !gate.IsLocked() {
		t.Fatal("gate must start locked when a password is set")
	}

	if err := gate.AttemptUnlock("wrong"); !errors.Is(err, apperror.ErrIncorrectPassword) {
		t.Fatalf("wrong password: got %v, want ErrIncorrectPassword", err)
	}
	if !gate.IsLocked() {
		t.Error("failed attempt must not unlock")
	}

	if err := gate.AttemptUnlock("hunter2"); err != nil {
		t.Fatalf("correct password rejected: %v", err)
	}
	if gate.IsLocked() {
		t.Error("gate still locked after correct password")
	}

	gate.Lock()
	if !gate.IsLocked() {
		t.Error("Lock did not re-lock the gate")
	}
}

func TestGateRateLimit(t *testing.T) {
	store := newFakeStore()
	store.settings.SettingsPassword = HashPassword("hunter2")
	gate := NewGateService(store)

	// Burn through the burst; at some point attempts must be refused
	// before the hash is even checked.
	limited := false
	for i := 0; i < 20; i++ {
		if err := gate.AttemptUnlock("wrong"); errors.Is(err, apperror.ErrTooManyAttempts) {
			limited = true
			break
		}
	}
	if !limited {
		t.Error("rapid attempts never hit the rate limit")
	}
}

func TestResetProtection(t *testing.T) {
	store := newFakeStore()
	store.settings.SettingsPassword = HashPassword("hunter2")
	store.settings.SalonName = "Glow Studio"
	gate := NewGateService(store)

	if err := gate.ResetProtection(); err != nil {
		t.Fatalf("ResetProtection: %v", err)
	}
	if store.LoadSettings().SettingsPassword != "" {
		t.Error("stored hash not cleared")
	}
	if store.LoadSettings().SalonName != "Glow Studio" {
		t.Error("reset must not touch other settings")
	}
	if gate.IsLocked() {
		t.Error("gate must be open after reset")
	}
}

func TestHashPasswordDeterministic(t *testing.T) {
	if HashPassword("abc") != HashPassword("abc") {
		t.Error("same input must hash identically")
	}
	if HashPassword("abc") == HashPassword("abd") {
		t.Error("different inputs must not collide here")
	}
	if got := HashPassword(""); len(got) != 64 {
		t.Errorf("digest length = %d, want 64 hex chars", len(got))
	}
}
