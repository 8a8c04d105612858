package cache

import "sync"

// Kind identifies a cached view by the entity kind it holds.
type Kind string

const (
	KindDocuments     Kind = "documents"
	KindReceipts      Kind = "receipts"
	KindNotifications Kind = "notifications"
	KindProfiles      Kind = "profiles"
	KindApplications  Kind = "applications"
	KindPayments      Kind = "payments"
)

// Views holds the most recent result of each list view, keyed by kind and a
// per-request fingerprint (caller + filter). A mutation invalidates the whole
// kind so the next read re-queries the store; unrelated kinds are untouched.
type Views struct {
	mu      sync.RWMutex
	entries map[Kind]map[string]any
}

func New() *Views {
	return &Views{entries: make(map[Kind]map[string]any)}
}

// Invalidate drops every entry of the given kinds.
func (v *Views) Invalidate(kinds ...Kind) {
	v.mu.Lock()
	defer v.mu.Unlock()

	for _, k := range kinds {
		delete(v.entries, k)
	}
}

// Get returns the cached value for (kind, key), if present.
func Get[T any](v *Views, kind Kind, key string) (T, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	var zero T

	byKey, ok := v.entries[kind]
	if !ok {
		return zero, false
	}

	value, ok := byKey[key]
	if !ok {
		return zero, false
	}

	typed, ok := value.(T)
	if !ok {
		return zero, false
	}

	return typed, true
}

// Put stores a value for (kind, key).
func Put[T any](v *Views, kind Kind, key string, value T) {
	v.mu.Lock()
	defer v.mu.Unlock()

	byKey, ok := v.entries[kind]
	if !ok {
		byKey = make(map[string]any)
		v.entries[kind] = byKey
	}

	byKey[key] = value
}
