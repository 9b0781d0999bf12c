package repository

import "github.com/glowdesk/salonpos-api/internal/domain/entity"

// Store keys for the persisted state layout.
const (
	KeyBillHistory   = "bill_history"
	KeySettings      = "salon_settings"
	KeyLastAutoClear = "last_auto_clear_date"
	KeySharePending  = "share_pending"
)

// BillStore owns the persisted bill history. Reads after a write in
// the same process observe that write; all mutation of history goes
// through these entry points.
type BillStore interface {
	// LoadBills returns the stored history, most recent first. A
	// missing or corrupt payload degrades to an empty sequence and
	// never surfaces an error.
	LoadBills() []entity.Bill
	// AddBill prepends the bill and persists the full sequence
	// synchronously.
	AddBill(bill entity.Bill) error
	// ReplaceBills swaps the whole history for the given sequence.
	// Used by remote reconciliation; no merge is attempted.
	ReplaceBills(bills []entity.Bill) error
	// ClearHistory replaces the stored sequence with empty. Irreversible.
	ClearHistory() error
}

// SettingsStore owns the persisted singleton settings.
type SettingsStore interface {
	// LoadSettings returns the stored settings merged over defaults.
	LoadSettings() entity.SalonSettings
	// UpdateSettings shallow-merges the patch onto current settings,
	// persists the result and returns it.
	UpdateSettings(patch entity.SettingsPatch) (entity.SalonSettings, error)
}

// MarkerStore holds the scalar markers: the last auto-clear calendar
// date and the share-pending flag.
type MarkerStore interface {
	GetMarker(key string) string
	SetMarker(key, value string) error
}

// Watcher delivers change notifications that originate from other
// processes writing the same key. Handlers run on the watcher's
// goroutine; the local in-memory view should be reconciled by a whole
// value reload, last writer wins.
type Watcher interface {
	OnExternalChange(key string, handler func())
}

// Store is the full local persistence contract.
type Store interface {
	BillStore
	SettingsStore
	MarkerStore
	Watcher
}
