// Package remote implements the optional document-collection replica
// the device syncs against. The backend is a shared database (a synced
// SQLite file or a hosted Postgres); subscriptions are poll-based.
// Everything here is best-effort: the local store stays authoritative.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/glowdesk/salonpos-api/internal/domain/entity"
)

// billDoc is the stored shape of one bill document. The full bill is
// kept as an opaque JSON payload; only id and date are promoted to
// columns for ordering.
type billDoc struct {
	ID      string    `gorm:"primaryKey;size:64"`
	Date    time.Time `gorm:"index"`
	Payload []byte
}

func (billDoc) TableName() string { return "bills" }

// serviceDoc is the stored shape of one predefined-service document.
type serviceDoc struct {
	ID      string `gorm:"primaryKey;size:64"`
	Payload []byte
}

func (serviceDoc) TableName() string { return "services" }

// Config selects the replica backend.
type Config struct {
	Driver       string // "sqlite" or "postgres"
	DSN          string
	PollInterval time.Duration
}

// Store implements repository.RemoteStore.
type Store struct {
	db           *gorm.DB
	pollInterval time.Duration

	mu   sync.Mutex
	done chan struct{}
}

// Open connects to the replica and migrates its two collections.
func Open(cfg Config) (*Store, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "sqlite", "":
		dialector = sqlite.Open(cfg.DSN)
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("remote: unknown driver %q (use sqlite or postgres)", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("remote: connect: %w", err)
	}
	if err := db.AutoMigrate(&billDoc{}, &serviceDoc{}); err != nil {
		return nil, fmt.Errorf("remote: migrate: %w", err)
	}

	interval := cfg.PollInterval
	if interval <= 0 {
		interval = 30 * time.Second
	}

	return &Store{
		db:           db,
		pollInterval: interval,
		done:         make(chan struct{}),
	}, nil
}

// Close cancels all subscriptions.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	select {
	case <-s.done:
	default:
		close(s.done)
	}
	return nil
}

// SaveBill upserts one bill by id.
func (s *Store) SaveBill(ctx context.Context, bill entity.Bill) error {
	payload, err := json.Marshal(bill)
	if err != nil {
		return fmt.Errorf("remote: encode bill %s: %w", bill.ID, err)
	}
	doc := billDoc{ID: bill.ID, Date: bill.Date, Payload: payload}
	err = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&doc).Error
	if err != nil {
		return fmt.Errorf("remote: save bill %s: %w", bill.ID, err)
	}
	return nil
}

// SubscribeBills polls the bill collection and invokes the callback
// with the full set, ordered by date descending, once immediately and
// then whenever the stored content changes.
func (s *Store) SubscribeBills(callback func(bills []entity.Bill)) (cancel func()) {
	return s.subscribe(func(last []byte) []byte {
		bills, raw, err := s.listBills()
		if err != nil {
			log.Printf("remote: list bills: %v", err)
			return last
		}
		if bytes.Equal(raw, last) {
			return last
		}
		callback(bills)
		return raw
	})
}

// SaveService upserts one predefined service by id.
func (s *Store) SaveService(ctx context.Context, service entity.PredefinedService) error {
	payload, err := json.Marshal(service)
	if err != nil {
		return fmt.Errorf("remote: encode service %s: %w", service.ID, err)
	}
	doc := serviceDoc{ID: service.ID, Payload: payload}
	err = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&doc).Error
	if err != nil {
		return fmt.Errorf("remote: save service %s: %w", service.ID, err)
	}
	return nil
}

// DeleteService removes one predefined service by id.
func (s *Store) DeleteService(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Delete(&serviceDoc{}, "id = ?", id).Error
	if err != nil {
		return fmt.Errorf("remote: delete service %s: %w", id, err)
	}
	return nil
}

// SubscribeServices polls the services collection like SubscribeBills.
func (s *Store) SubscribeServices(callback func(services []entity.PredefinedService)) (cancel func()) {
	return s.subscribe(func(last []byte) []byte {
		services, raw, err := s.listServices()
		if err != nil {
			log.Printf("remote: list services: %v", err)
			return last
		}
		if bytes.Equal(raw, last) {
			return last
		}
		callback(services)
		return raw
	})
}

// subscribe runs check on its own goroutine: once right away, then on
// every poll tick. check receives the previous snapshot fingerprint
// and returns the new one.
func (s *Store) subscribe(check func(last []byte) []byte) (cancel func()) {
	stop := make(chan struct{})
	go func() {
		var last []byte
		last = check(last)
		ticker := time.NewTicker(s.pollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-s.done:
				return
			case <-ticker.C:
				last = check(last)
			}
		}
	}()

	var once sync.Once
	return func() { once.Do(func() { close(stop) }) }
}

func (s *Store) listBills() ([]entity.Bill, []byte, error) {
	var docs []billDoc
	if err := s.db.Order("date desc").Find(&docs).Error; err != nil {
		return nil, nil, err
	}
	bills := make([]entity.Bill, 0, len(docs))
	var fingerprint bytes.Buffer
	for _, doc := range docs {
		var bill entity.Bill
		if err := json.Unmarshal(doc.Payload, &bill); err != nil {
			log.Printf("remote: corrupt bill document %s skipped: %v", doc.ID, err)
			continue
		}
		bill.ID = doc.ID
		bills = append(bills, bill)
		fingerprint.Write(doc.Payload)
	}
	return bills, fingerprint.Bytes(), nil
}

func (s *Store) listServices() ([]entity.PredefinedService, []byte, error) {
	var docs []serviceDoc
	if err := s.db.Order("id").Find(&docs).Error; err != nil {
		return nil, nil, err
	}
	services := make([]entity.PredefinedService, 0, len(docs))
	var fingerprint bytes.Buffer
	for _, doc := range docs {
		var service entity.PredefinedService
		if err := json.Unmarshal(doc.Payload, &service); err != nil {
			log.Printf("remote: corrupt service document %s skipped: %v", doc.ID, err)
			continue
		}
		service.ID = doc.ID
		services = append(services, service)
		fingerprint.Write(doc.Payload)
	}
	return services, fingerprint.Bytes(), nil
}
