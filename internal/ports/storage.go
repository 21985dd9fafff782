// Package ports defines the interfaces (driven and driving ports)
// for focusday following hexagonal architecture principles.
// These interfaces define the contracts between the domain layer and
// external infrastructure.
package ports

import (
	"context"
)

// Logical keys used in the key-value store.
const (
	KeySettings = "timerSettings"
	KeySessions = "timerSessions"
)

// KeyValueStore is a string key-value store.
// This is a driven port (implemented by adapters).
type KeyValueStore interface {
	// Get returns the value stored under key. The bool is false when the key
	// is absent.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error

	// Close closes the underlying connection.
	Close() error
}
