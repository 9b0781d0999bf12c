package service

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"golang.org/x/time/rate"

	"github.com/glowdesk/salonpos-api/internal/domain/entity"
	"github.com/glowdesk/salonpos-api/internal/domain/repository"
	"github.com/glowdesk/salonpos-api/pkg/apperror"
)

// GateService guards settings mutation behind the stored password
// hash. The unlocked flag is per-service-instance session state; it is
// never persisted, so a restart re-locks.
type GateService struct {
	store   repository.Store
	limiter *rate.Limiter

	mu       sync.Mutex
	unlocked bool
}

// NewGateService creates a new access gate. Unlock attempts are rate
// limited to blunt local brute-forcing of short passwords.
func NewGateService(store repository.Store) *GateService {
	return &GateService{
		store:   store,
		limiter: rate.NewLimiter(rate.Limit(1), 5), // 1/s sustained, burst of 5
	}
}

// HashPassword returns the SHA-256 hex digest stored for a settings
// password. The plaintext is never persisted.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// IsLocked reports whether settings mutation currently requires an
// unlock. With no password configured the gate is always open.
func (g *GateService) IsLocked() bool {
	if g.store.LoadSettings().SettingsPassword == "" {
		return false
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return !g.unlocked
}

// AttemptUnlock verifies the candidate against the stored hash. The
// failure message is generic on purpose: it never distinguishes "no
// password set" from "wrong password" once protection exists.
func (g *GateService) AttemptUnlock(candidate string) error {
	if !g.limiter.Allow() {
		return apperror.ErrTooManyAttempts
	}

	stored := g.store.LoadSettings().SettingsPassword
	if stored == "" {
		g.mu.Lock()
		g.unlocked = true
		g.mu.Unlock()
		return nil
	}

	if HashPassword(candidate) != stored {
		return apperror.ErrIncorrectPassword
	}

	g.mu.Lock()
	g.unlocked = true
	g.mu.Unlock()
	return nil
}

// Lock ends the current unlocked session.
func (g *GateService) Lock() {
	g.mu.Lock()
	g.unlocked = false
	g.mu.Unlock()
}

// ResetProtection clears the stored password hash directly. It is the
// recovery path for a forgotten password and deliberately requires no
// proof of identity beyond explicit confirmation; the tradeoff is
// recovery over security on a single-operator device.
func (g *GateService) ResetProtection() error {
	empty := ""
	if _, err := g.store.UpdateSettings(entity.SettingsPatch{SettingsPassword: &empty}); err != nil {
		return err
	}
	g.Lock()
	return nil
}
