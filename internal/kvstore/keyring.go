package kvstore

import (
	"encoding/json"
	"errors"
	"slices"
	"sync"

	"github.com/zalando/go-keyring"
)

// indexKey holds the JSON list of keys written through a KeyringStore so
// that Clear can find them; the keychain API has no enumeration.
const indexKey = "__index"

// KeyringStore keeps values in the OS keychain under a single service name.
type KeyringStore struct {
	serviceName string
	mu          sync.Mutex
}

func NewKeyringStore(serviceName string) *KeyringStore {
	if serviceName == "" {
		serviceName = ServiceName
	}
	return &KeyringStore{serviceName: serviceName}
}

func (k *KeyringStore) Get(key string) (string, error) {
	v, err := keyring.Get(k.serviceName, key)
	if err == nil {
		return v, nil
	}
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrNotFound
	}
	return "", err
}

func (k *KeyringStore) Set(key string, value string) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if err := keyring.Set(k.serviceName, key, value); err != nil {
		return err
	}

	keys, err := k.readIndex()
	if err != nil {
		return err
	}
	if slices.Contains(keys, key) {
		return nil
	}
	return k.writeIndex(append(keys, key))
}

func (k *KeyringStore) Remove(key string) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if err := keyring.Delete(k.serviceName, key); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return err
	}

	keys, err := k.readIndex()
	if err != nil {
		return err
	}
	idx := slices.Index(keys, key)
	if idx < 0 {
		return nil
	}
	return k.writeIndex(slices.Delete(keys, idx, idx+1))
}

func (k *KeyringStore) Clear() error {
	k.mu.Lock()
	defer k.mu.Unlock()

	keys, err := k.readIndex()
	if err != nil {
		return err
	}
	for _, key := range keys {
		if err := keyring.Delete(k.serviceName, key); err != nil && !errors.Is(err, keyring.ErrNotFound) {
			return err
		}
	}
	err = keyring.Delete(k.serviceName, indexKey)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}

func (k *KeyringStore) readIndex() ([]string, error) {
	raw, err := keyring.Get(k.serviceName, indexKey)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var keys []string
	if err := json.Unmarshal([]byte(raw), &keys); err != nil {
		// A corrupt index only loses Clear coverage; start over.
		return nil, nil
	}
	return keys, nil
}

func (k *KeyringStore) writeIndex(keys []string) error {
	data, err := json.Marshal(keys)
	if err != nil {
		return err
	}
	return keyring.Set(k.serviceName, indexKey, string(data))
}
