package service

import (
	"context"
	"log"

	"github.com/glowdesk/salonpos-api/internal/domain/entity"
	"github.com/glowdesk/salonpos-api/internal/domain/repository"
)

// SyncService reconciles the local store against the remote replica.
// The local store is the write-through cache and stays authoritative
// for this device; the remote set, once non-empty, replaces local
// state wholesale. No field-level merge is attempted.
type SyncService struct {
	store   repository.Store
	remote  repository.RemoteStore
	cancels []func()
}

// NewSyncService creates the merger.
func NewSyncService(store repository.Store, remote repository.RemoteStore) *SyncService {
	return &SyncService{store: store, remote: remote}
}

// Start subscribes to both remote collections.
func (s *SyncService) Start() {
	s.cancels = append(s.cancels, s.remote.SubscribeBills(s.onRemoteBills))
	s.cancels = append(s.cancels, s.remote.SubscribeServices(s.onRemoteServices))
}

// Stop cancels the subscriptions.
func (s *SyncService) Stop() {
	for _, cancel := range s.cancels {
		cancel()
	}
	s.cancels = nil
}

// onRemoteBills replaces local history when the remote set is
// populated. An empty remote set is ignored so a fresh replica never
// wipes an established device.
func (s *SyncService) onRemoteBills(bills []entity.Bill) {
	if len(bills) == 0 {
		return
	}
	if err := s.store.ReplaceBills(bills); err != nil {
		log.Printf("Remote bill sync could not replace local history: %v", err)
	}
}

// onRemoteServices replaces the local service menu wholesale when the
// remote set is populated.
func (s *SyncService) onRemoteServices(services []entity.PredefinedService) {
	if len(services) == 0 {
		return
	}
	if _, err := s.store.UpdateSettings(entity.SettingsPatch{PredefinedServices: &services}); err != nil {
		log.Printf("Remote service sync could not update settings: %v", err)
	}
}

// PushServices pushes changed service-menu entries to the remote
// collection, each independently and detached from the caller's
// critical path. deleted ids are removed remotely the same way.
func (s *SyncService) PushServices(changed []entity.PredefinedService, deleted []string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), remotePushWait)
		defer cancel()
		for _, svc := range changed {
			if err := s.remote.SaveService(ctx, svc); err != nil {
				log.Printf("Remote push of service %s failed: %v", svc.ID, err)
			}
		}
		for _, id := range deleted {
			if err := s.remote.DeleteService(ctx, id); err != nil {
				log.Printf("Remote delete of service %s failed: %v", id, err)
			}
		}
	}()
}
