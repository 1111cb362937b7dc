// Package kvstore provides the small persistent key-value store used to keep
// the session and the chosen theme across restarts.
//
// Three backends exist: an in-memory map, the OS keychain and a SQLite
// table next to the config file. All of them satisfy Store.
package kvstore

import (
	"errors"
	"fmt"

	"bakehouse/zipporder/internal/util"
)

// ServiceName namespaces keychain entries and on-disk files.
const ServiceName = "zipporder"

// ErrNotFound is returned by Get when the key has no value.
var ErrNotFound = errors.New("key not found")

// Store is a string-to-string persistent map.
type Store interface {
	Get(key string) (string, error)
	Set(key string, value string) error
	// Remove deletes key. Removing a missing key is not an error.
	Remove(key string) error
	// Clear deletes every key owned by the store.
	Clear() error
}

// Backend names accepted by Open.
const (
	BackendMemory  = "memory"
	BackendKeyring = "keyring"
	BackendSQLite  = "sqlite"
)

// Open returns the store for the named backend. sqlitePath is only used by
// the sqlite backend; an empty path selects DefaultPath.
func Open(backend string, sqlitePath string) (Store, error) {
	switch util.NormalizeKey(backend) {
	case BackendMemory:
		return NewMemoryStore(), nil
	case BackendKeyring:
		return NewKeyringStore(ServiceName), nil
	case BackendSQLite, "":
		if sqlitePath == "" {
			p, err := DefaultPath()
			if err != nil {
				return nil, err
			}
			sqlitePath = p
		}
		return OpenSQLite(sqlitePath)
	default:
		return nil, fmt.Errorf("kvstore: unknown backend %q", backend)
	}
}

// Close releases resources held by s, if it holds any.
func Close(s Store) error {
	if c, ok := s.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
