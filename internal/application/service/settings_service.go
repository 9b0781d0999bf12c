package service

import (
	"strings"

	"github.com/google/uuid"

	"github.com/glowdesk/salonpos-api/internal/domain/entity"
	"github.com/glowdesk/salonpos-api/internal/domain/repository"
	"github.com/glowdesk/salonpos-api/pkg/apperror"
)

// SettingsService handles salon configuration. All mutation paths run
// through the access gate; reads are unrestricted.
type SettingsService struct {
	store repository.Store
	gate  *GateService
	sync  *SyncService // nil when remote sync is disabled
}

// NewSettingsService creates a new settings service. sync may be nil.
func NewSettingsService(store repository.Store, gate *GateService, sync *SyncService) *SettingsService {
	return &SettingsService{store: store, gate: gate, sync: sync}
}

// Snapshot returns the current settings.
func (s *SettingsService) Snapshot() entity.SalonSettings {
	return s.store.LoadSettings()
}

// UpdateSettings applies a partial update. A non-nil SettingsPassword
// in the patch carries plaintext and is hashed before storage; an
// empty string removes protection. Service-menu changes are diffed and
// pushed to the remote replica.
func (s *SettingsService) UpdateSettings(patch entity.SettingsPatch) (entity.SalonSettings, error) {
	if s.gate.IsLocked() {
		return entity.SalonSettings{}, apperror.ErrSettingsLocked
	}

	if patch.SettingsPassword != nil && *patch.SettingsPassword != "" {
		hashed := HashPassword(*patch.SettingsPassword)
		patch.SettingsPassword = &hashed
	}

	before := s.store.LoadSettings()
	updated, err := s.store.UpdateSettings(patch)
	if err != nil {
		return entity.SalonSettings{}, err
	}

	if s.sync != nil && patch.PredefinedServices != nil {
		changed, deleted := diffServices(before.PredefinedServices, updated.PredefinedServices)
		if len(changed) > 0 || len(deleted) > 0 {
			s.sync.PushServices(changed, deleted)
		}
	}
	return updated, nil
}

// AddService appends a menu entry, generating its id.
func (s *SettingsService) AddService(name string, price float64) (entity.PredefinedService, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return entity.PredefinedService{}, apperror.NewBadRequestError("Service name is required")
	}

	svc := entity.PredefinedService{ID: uuid.New().String(), Name: name, Price: price}
	menu := append(s.store.LoadSettings().PredefinedServices, svc)
	if _, err := s.UpdateSettings(entity.SettingsPatch{PredefinedServices: &menu}); err != nil {
		return entity.PredefinedService{}, err
	}
	return svc, nil
}

// RemoveService deletes a menu entry by id.
func (s *SettingsService) RemoveService(id string) error {
	current := s.store.LoadSettings().PredefinedServices
	menu := make([]entity.PredefinedService, 0, len(current))
	found := false
	for _, svc := range current {
		if svc.ID == id {
			found = true
			continue
		}
		menu = append(menu, svc)
	}
	if !found {
		return apperror.NewNotFoundError("Service")
	}
	_, err := s.UpdateSettings(entity.SettingsPatch{PredefinedServices: &menu})
	return err
}

// diffServices returns the entries added or modified between two menu
// snapshots and the ids removed.
func diffServices(before, after []entity.PredefinedService) (changed []entity.PredefinedService, deleted []string) {
	prev := make(map[string]entity.PredefinedService, len(before))
	for _, svc := range before {
		prev[svc.ID] = svc
	}
	seen := make(map[string]bool, len(after))
	for _, svc := range after {
		seen[svc.ID] = true
		if old, ok := prev[svc.ID]; !ok || old != svc {
			changed = append(changed, svc)
		}
	}
	for _, svc := range before {
		if !seen[svc.ID] {
			deleted = append(deleted, svc.ID)
		}
	}
	return changed, deleted
}
