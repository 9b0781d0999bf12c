package service

import (
	"errors"
	"testing"
	"time"

	"github.com/glowdesk/salonpos-api/internal/domain/entity"
	"github.com/glowdesk/salonpos-api/pkg/apperror"
)

func newSettingsFixture() (*SettingsService, *fakeStore, *fakeRemote) {
	store := newFakeStore()
	remote := newFakeRemote()
	gate := NewGateService(store)
	sync := NewSyncService(store, remote)
	return NewSettingsService(store, gate, sync), store, remote
}

func TestUpdateSettingsHashesPassword(t *testing.T) {
	svc, store, _ := newSettingsFixture()

	plain := "hunter2"
	updated, err := svc.UpdateSettings(entity.SettingsPatch{SettingsPassword: &plain})
	if err != nil {
		t.Fatalf("UpdateSettings: %v", err)
	}
	if updated.SettingsPassword == plain {
		t.Fatal("plaintext must never be stored")
	}
	if updated.SettingsPassword != HashPassword(plain) {
		t.Error("stored value must be the digest of the plaintext")
	}
	if store.LoadSettings().SettingsPassword != updated.SettingsPassword {
		t.Error("digest not persisted")
	}
}

func TestUpdateSettingsBlockedWhenLocked(t *testing.T) {
	svc, store, _ := newSettingsFixture()
	store.settings.SettingsPassword = HashPassword("hunter2")

	name := "New Name"
	if _, err := svc.UpdateSettings(entity.SettingsPatch{SalonName: &name}); !errors.Is(err, apperror.ErrSettingsLocked) {
		t.Fatalf("locked update: got %v, want ErrSettingsLocked", err)
	}
	if store.LoadSettings().SalonName == name {
		t.Error("locked update must not persist")
	}
}

func TestUpdateSettingsShallowMerge(t *testing.T) {
	svc, store, _ := newSettingsFixture()

	name := "Glow Studio"
	if _, err := svc.UpdateSettings(entity.SettingsPatch{SalonName: &name}); err != nil {
		t.Fatalf("UpdateSettings: %v", err)
	}

	got := store.LoadSettings()
	if got.SalonName != "Glow Studio" {
		t.Errorf("SalonName = %q", got.SalonName)
	}
	if got.CurrencySymbol != "₹" {
		t.Errorf("untouched field changed: CurrencySymbol = %q", got.CurrencySymbol)
	}
}

func TestServiceMenuLifecycle(t *testing.T) {
	svc, store, remote := newSettingsFixture()

	added, err := svc.AddService("Haircut", 250)
	if err != nil {
		t.Fatalf("AddService: %v", err)
	}
	if added.ID == "" {
		t.Fatal("service id must be assigned")
	}

	select {
	case <-remote.saved:
	case <-time.After(3 * time.Second):
		t.Fatal("added service never pushed to remote")
	}
	remote.mu.Lock()
	if len(remote.savedServices) != 1 || remote.savedServices[0].Name != "Haircut" {
		t.Fatalf("remote services = %+v", remote.savedServices)
	}
	remote.mu.Unlock()

	if err := svc.RemoveService(added.ID); err != nil {
		t.Fatalf("RemoveService: %v", err)
	}
	if len(store.LoadSettings().PredefinedServices) != 0 {
		t.Error("menu entry not removed")
	}

	select {
	case <-remote.saved:
	case <-time.After(3 * time.Second):
		t.Fatal("deletion never pushed to remote")
	}
	remote.mu.Lock()
	if len(remote.deletedIDs) != 1 || remote.deletedIDs[0] != added.ID {
		t.Errorf("remote deletions = %v", remote.deletedIDs)
	}
	remote.mu.Unlock()

	if err := svc.RemoveService("missing"); err == nil {
		t.Error("expected not-found removing unknown id")
	}
	if _, err := svc.AddService("  ", 10); err == nil {
		t.Error("expected error adding a blank name")
	}
}

func TestDiffServices(t *testing.T) {
	before := []entity.PredefinedService{
		{ID: "a", Name: "Haircut", Price: 250},
		{ID: "b", Name: "Facial", Price: 800},
	}
	after := []entity.PredefinedService{
		{ID: "a", Name: "Haircut", Price: 300},
		{ID: "c", Name: "Shave", Price: 100},
	}

	changed, deleted := diffServices(before, after)
	if len(changed) != 2 {
		t.Fatalf("changed = %+v, want price change and new entry", changed)
	}
	if changed[0].ID != "a" || changed[1].ID != "c" {
		t.Errorf("changed ids = %s, %s", changed[0].ID, changed[1].ID)
	}
	if len(deleted) != 1 || deleted[0] != "b" {
		t.Errorf("deleted = %v, want [b]", deleted)
	}
}
