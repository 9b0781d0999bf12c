// Package localstore is the durable, single-owner persistence layer.
// State lives as JSON files in one data directory, readable by any
// process on the device; fsnotify supplies the cross-process change
// notifications.
package localstore

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/glowdesk/salonpos-api/internal/domain/entity"
	"github.com/glowdesk/salonpos-api/internal/domain/repository"
)

// fileNames maps store keys onto their on-disk file names.
var fileNames = map[string]string{
	repository.KeyBillHistory:   "bill_history.json",
	repository.KeySettings:      "salon_settings.json",
	repository.KeyLastAutoClear: "last_auto_clear_date",
	repository.KeySharePending:  "share_pending",
}

// Store implements repository.Store over a directory of JSON files.
// All access goes through a single mutex; writes are synchronous
// (temp file + rename) so a reload after AddBill observes the bill.
type Store struct {
	dir string

	mu       sync.Mutex
	bills    []entity.Bill
	settings entity.SalonSettings
	markers  map[string]string
	raw      map[string][]byte // last content written or observed, per key

	handlers map[string][]func()
	watcher  *fsnotify.Watcher
	done     chan struct{}
}

// New opens (creating if needed) the store at dir and starts the
// external-change watcher.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("localstore: create data dir: %w", err)
	}

	s := &Store{
		dir:      dir,
		markers:  make(map[string]string),
		raw:      make(map[string][]byte),
		handlers: make(map[string][]func()),
		done:     make(chan struct{}),
	}
	s.bills = s.readBills()
	s.settings = s.readSettings()
	s.markers[repository.KeyLastAutoClear] = s.readMarker(repository.KeyLastAutoClear)
	s.markers[repository.KeySharePending] = s.readMarker(repository.KeySharePending)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("localstore: start watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("localstore: watch data dir: %w", err)
	}
	s.watcher = watcher
	go s.watchLoop()

	return s, nil
}

// Close stops the external-change watcher.
func (s *Store) Close() error {
	close(s.done)
	return s.watcher.Close()
}

// LoadBills returns the stored history, most recent first.
func (s *Store) LoadBills() []entity.Bill {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.Bill, len(s.bills))
	copy(out, s.bills)
	return out
}

// AddBill prepends the bill and persists the full sequence.
func (s *Store) AddBill(bill entity.Bill) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	bills := make([]entity.Bill, 0, len(s.bills)+1)
	bills = append(bills, bill)
	bills = append(bills, s.bills...)
	if err := s.writeJSON(repository.KeyBillHistory, bills); err != nil {
		return err
	}
	s.bills = bills
	return nil
}

// ReplaceBills swaps the whole history wholesale.
func (s *Store) ReplaceBills(bills []entity.Bill) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.writeJSON(repository.KeyBillHistory, bills); err != nil {
		return err
	}
	s.bills = make([]entity.Bill, len(bills))
	copy(s.bills, bills)
	return nil
}

// ClearHistory replaces the stored sequence with empty.
func (s *Store) ClearHistory() error {
	return s.ReplaceBills([]entity.Bill{})
}

// LoadSettings returns the stored settings merged over defaults.
func (s *Store) LoadSettings() entity.SalonSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// UpdateSettings shallow-merges the patch, persists and returns the
// result.
func (s *Store) UpdateSettings(patch entity.SettingsPatch) (entity.SalonSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	merged := patch.Apply(s.settings)
	if err := s.writeJSON(repository.KeySettings, merged); err != nil {
		return s.settings, err
	}
	s.settings = merged
	return merged, nil
}

// GetMarker returns the stored scalar marker, or "" if absent.
func (s *Store) GetMarker(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.markers[key]
}

// SetMarker persists a scalar marker.
func (s *Store) SetMarker(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.writeFile(key, []byte(value)); err != nil {
		return err
	}
	s.markers[key] = value
	return nil
}

// OnExternalChange registers a handler for writes to key that
// originate from other processes. The in-memory state is already
// reconciled (whole-value replace) before the handler runs.
func (s *Store) OnExternalChange(key string, handler func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[key] = append(s.handlers[key], handler)
}

// --- persistence internals ---

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, fileNames[key])
}

func keyForFile(name string) string {
	for key, file := range fileNames {
		if file == name {
			return key
		}
	}
	return ""
}

// writeFile persists content via temp file + rename so readers never
// observe a partial write.
func (s *Store) writeFile(key string, content []byte) error {
	tmp, err := os.CreateTemp(s.dir, fileNames[key]+".tmp-*")
	if err != nil {
		return fmt.Errorf("localstore: write %s: %w", key, err)
	}
	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("localstore: write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("localstore: write %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), s.path(key)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("localstore: write %s: %w", key, err)
	}
	s.raw[key] = content
	return nil
}

func (s *Store) writeJSON(key string, v interface{}) error {
	content, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("localstore: encode %s: %w", key, err)
	}
	return s.writeFile(key, content)
}

// readBills loads the history file. A missing or corrupt payload
// degrades to an empty sequence.
func (s *Store) readBills() []entity.Bill {
	content, err := os.ReadFile(s.path(repository.KeyBillHistory))
	if err != nil {
		return []entity.Bill{}
	}
	s.raw[repository.KeyBillHistory] = content
	var bills []entity.Bill
	if err := json.Unmarshal(content, &bills); err != nil {
		log.Printf("localstore: corrupt bill history, starting empty: %v", err)
		return []entity.Bill{}
	}
	return bills
}

// readSettings loads the settings file merged over defaults, so fields
// added after the file was written pick up their default values.
func (s *Store) readSettings() entity.SalonSettings {
	settings := entity.DefaultSettings()
	content, err := os.ReadFile(s.path(repository.KeySettings))
	if err != nil {
		return settings
	}
	s.raw[repository.KeySettings] = content
	if err := json.Unmarshal(content, &settings); err != nil {
		log.Printf("localstore: corrupt settings, using defaults: %v", err)
		return entity.DefaultSettings()
	}
	return settings
}

func (s *Store) readMarker(key string) string {
	content, err := os.ReadFile(s.path(key))
	if err != nil {
		return ""
	}
	s.raw[key] = content
	return string(content)
}

// --- external change handling ---

func (s *Store) watchLoop() {
	for {
		select {
		case <-s.done:
			return
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			key := keyForFile(filepath.Base(event.Name))
			if key == "" {
				continue
			}
			s.reconcile(key)
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("localstore: watcher error: %v", err)
		}
	}
}

// reconcile reloads key from disk and, when the content differs from
// what this process last wrote or observed, replaces the in-memory
// value and notifies handlers. Own writes are filtered out by the
// content comparison; whichever write lands last on disk wins.
func (s *Store) reconcile(key string) {
	content, err := os.ReadFile(s.path(key))
	if err != nil {
		return
	}

	s.mu.Lock()
	if string(content) == string(s.raw[key]) {
		s.mu.Unlock()
		return
	}
	s.raw[key] = content

	switch key {
	case repository.KeyBillHistory:
		var bills []entity.Bill
		if err := json.Unmarshal(content, &bills); err != nil {
			log.Printf("localstore: corrupt synced bill history ignored: %v", err)
			s.mu.Unlock()
			return
		}
		s.bills = bills
	case repository.KeySettings:
		settings := entity.DefaultSettings()
		if err := json.Unmarshal(content, &settings); err != nil {
			log.Printf("localstore: corrupt synced settings ignored: %v", err)
			s.mu.Unlock()
			return
		}
		s.settings = settings
	default:
		s.markers[key] = string(content)
	}
	handlers := append([]func(){}, s.handlers[key]...)
	s.mu.Unlock()

	for _, handler := range handlers {
		handler()
	}
}
