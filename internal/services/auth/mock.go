package auth

import (
	"context"
	"sync"
	"time"

	"bakehouse/zipporder/internal/util"

	"github.com/google/uuid"
)

// Default latencies of the stand-in service.
const (
	DefaultMockDelay   = time.Second
	DefaultResetDelay  = 2 * time.Second
	defaultDisplayName = "John Doe"
)

// MockAuthenticator is a stand-in for the real service: it waits a fixed
// delay and then accepts every request. Accounts created through it are
// remembered so a later login returns the registered name.
type MockAuthenticator struct {
	Delay      time.Duration
	ResetDelay time.Duration

	mu       sync.Mutex
	accounts map[string]Identity
}

// NewMockAuthenticator returns a mock with the given exchange delay.
func NewMockAuthenticator(delay time.Duration) *MockAuthenticator {
	return &MockAuthenticator{
		Delay:      delay,
		ResetDelay: DefaultResetDelay,
		accounts:   make(map[string]Identity),
	}
}

func (m *MockAuthenticator) Authenticate(ctx context.Context, email, _ string) (Identity, error) {
	if err := wait(ctx, m.Delay); err != nil {
		return Identity{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if id, ok := m.accounts[util.NormalizeKey(email)]; ok {
		return id, nil
	}
	return Identity{UserID: uuid.NewString(), Name: defaultDisplayName, Email: email}, nil
}

func (m *MockAuthenticator) CreateAccount(ctx context.Context, name, email, _ string) (Identity, error) {
	if err := wait(ctx, m.Delay); err != nil {
		return Identity{}, err
	}

	id := Identity{UserID: uuid.NewString(), Name: name, Email: email}
	m.mu.Lock()
	m.accounts[util.NormalizeKey(email)] = id
	m.mu.Unlock()
	return id, nil
}

func (m *MockAuthenticator) RequestReset(ctx context.Context, _ string) error {
	return wait(ctx, m.ResetDelay)
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
