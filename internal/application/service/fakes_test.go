package service

import (
	"context"
	"errors"
	"sync"

	"github.com/glowdesk/salonpos-api/internal/domain/entity"
	"github.com/glowdesk/salonpos-api/internal/domain/repository"
)

// fakeStore is an in-memory repository.Store for service tests.
type fakeStore struct {
	mu       sync.Mutex
	bills    []entity.Bill
	settings entity.SalonSettings
	markers  map[string]string
	clearErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		settings: entity.DefaultSettings(),
		markers:  make(map[string]string),
	}
}

func (f *fakeStore) LoadBills() []entity.Bill {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]entity.Bill, len(f.bills))
	copy(out, f.bills)
	return out
}

func (f *fakeStore) AddBill(bill entity.Bill) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bills = append([]entity.Bill{bill}, f.bills...)
	return nil
}

func (f *fakeStore) ReplaceBills(bills []entity.Bill) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bills = append([]entity.Bill(nil), bills...)
	return nil
}

func (f *fakeStore) ClearHistory() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.clearErr != nil {
		return f.clearErr
	}
	f.bills = nil
	return nil
}

func (f *fakeStore) LoadSettings() entity.SalonSettings {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.settings
}

func (f *fakeStore) UpdateSettings(patch entity.SettingsPatch) (entity.SalonSettings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.settings = patch.Apply(f.settings)
	return f.settings, nil
}

func (f *fakeStore) GetMarker(key string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.markers[key]
}

func (f *fakeStore) SetMarker(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.markers[key] = value
	return nil
}

func (f *fakeStore) OnExternalChange(key string, handler func()) {}

// fakeRemote records saves and lets tests drive subscription callbacks.
type fakeRemote struct {
	mu            sync.Mutex
	savedBills    []entity.Bill
	savedServices []entity.PredefinedService
	deletedIDs    []string
	billsCB       func([]entity.Bill)
	servicesCB    func([]entity.PredefinedService)
	saved         chan struct{}
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{saved: make(chan struct{}, 16)}
}

func (f *fakeRemote) SubscribeBills(cb func([]entity.Bill)) func() {
	f.mu.Lock()
	f.billsCB = cb
	f.mu.Unlock()
	return func() {}
}

func (f *fakeRemote) SubscribeServices(cb func([]entity.PredefinedService)) func() {
	f.mu.Lock()
	f.servicesCB = cb
	f.mu.Unlock()
	return func() {}
}

func (f *fakeRemote) SaveBill(ctx context.Context, bill entity.Bill) error {
	f.mu.Lock()
	f.savedBills = append(f.savedBills, bill)
	f.mu.Unlock()
	f.saved <- struct{}{}
	return nil
}

func (f *fakeRemote) SaveService(ctx context.Context, svc entity.PredefinedService) error {
	f.mu.Lock()
	f.savedServices = append(f.savedServices, svc)
	f.mu.Unlock()
	f.saved <- struct{}{}
	return nil
}

func (f *fakeRemote) DeleteService(ctx context.Context, id string) error {
	f.mu.Lock()
	f.deletedIDs = append(f.deletedIDs, id)
	f.mu.Unlock()
	f.saved <- struct{}{}
	return nil
}

// fakeSink records export calls; failing can be toggled.
type fakeSink struct {
	mu        sync.Mutex
	exports   []string
	rowCounts []int
	fail      bool
}

func (f *fakeSink) Path(filename string) string {
	return "/tmp/" + filename
}

func (f *fakeSink) Export(rows []repository.ArchiveRow, filename string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("disk full")
	}
	f.exports = append(f.exports, filename)
	f.rowCounts = append(f.rowCounts, len(rows))
	return nil
}
