package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"bakehouse/zipporder/internal/domain"
	"bakehouse/zipporder/internal/kvstore"
	"bakehouse/zipporder/internal/log"
	"bakehouse/zipporder/internal/retry"

	"github.com/sirupsen/logrus"
)

// userKey is the kvstore key holding the persisted user as JSON.
const userKey = "session.user"

// Session is the process-wide session store.
//
// Transitions follow "latest wins": every Login, Register and Logout takes
// a new generation number, and a suspended exchange only applies its result
// if no other transition started in the meantime. A Logout issued while a
// Login is pending therefore sticks, and of two overlapping logins the one
// invoked last decides the final user.
type Session struct {
	mu    sync.Mutex
	state domain.SessionState
	gen   uint64

	authn   Authenticator
	persist kvstore.Store
	retry   retry.Config
}

// Option configures a Session.
type Option func(*Session)

// WithPersistence saves the user on sign-in and removes it on sign-out.
func WithPersistence(kv kvstore.Store) Option {
	return func(s *Session) { s.persist = kv }
}

// WithRetry overrides the retry policy for transient exchange failures.
func WithRetry(cfg retry.Config) Option {
	return func(s *Session) { s.retry = cfg }
}

// NewSession returns a signed-out session using authn for exchanges.
func NewSession(authn Authenticator, opts ...Option) *Session {
	s := &Session{
		state: domain.Anonymous(),
		authn: authn,
		retry: retry.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns a snapshot of the session. The returned User is a copy.
func (s *Session) State() domain.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.User == nil {
		return domain.Anonymous()
	}
	return domain.Authenticated(*s.state.User)
}

// Login authenticates email/password and signs the user in.
//
// On failure the state is unchanged and an *domain.AuthError is returned.
// If ctx is cancelled, or a newer transition started while the exchange
// was in flight, the result is discarded and the error wraps ctx.Err() or
// domain.ErrSuperseded respectively.
func (s *Session) Login(ctx context.Context, email, password string) error {
	return s.transition(ctx, "login", email, func(ctx context.Context) (Identity, error) {
		return s.authn.Authenticate(ctx, email, password)
	})
}

// Register creates an account and signs the new user in. Error semantics
// match Login.
func (s *Session) Register(ctx context.Context, name, email, password string) error {
	return s.transition(ctx, "register", email, func(ctx context.Context) (Identity, error) {
		return s.authn.CreateAccount(ctx, name, email, password)
	})
}

// Logout signs the user out. It always succeeds and supersedes any pending
// Login or Register.
func (s *Session) Logout() {
	entry := log.WithComponent("session").WithField("op", "logout")

	// The entry is removed under mu so a later commit cannot be undone.
	s.mu.Lock()
	s.gen++
	s.state = domain.Anonymous()
	if s.persist != nil {
		if err := s.persist.Remove(userKey); err != nil {
			entry.WithError(err).Warn("failed to remove persisted session")
		}
	}
	s.mu.Unlock()

	entry.Info("signed out")
}

// RequestPasswordReset asks the service to send a reset link. The session
// state is not touched.
func (s *Session) RequestPasswordReset(ctx context.Context, email string) error {
	entry := log.WithComponent("session").WithFields(logrus.Fields{"op": "reset", "email": email})
	err := retry.Do(ctx, s.policy(entry), isTransient, func() error {
		return s.authn.RequestReset(ctx, email)
	})
	if err != nil {
		entry.WithError(err).Warn("password reset request failed")
		if ctx.Err() != nil {
			return fmt.Errorf("reset: %w", ctx.Err())
		}
		return &domain.AuthError{Op: "reset", Err: err}
	}
	entry.Info("password reset requested")
	return nil
}

// Restore loads a persisted user, if any, and signs them in. A corrupt
// entry is removed and the session stays signed out.
func (s *Session) Restore() error {
	if s.persist == nil {
		return nil
	}
	raw, err := s.persist.Get(userKey)
	if errors.Is(err, kvstore.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("session: failed to read persisted user: %w", err)
	}

	var u domain.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil || u.ID == "" {
		log.WithComponent("session").Warn("discarding unreadable persisted session")
		return s.persist.Remove(userKey)
	}

	s.mu.Lock()
	s.gen++
	s.state = domain.Authenticated(u)
	s.mu.Unlock()

	log.WithComponent("session").WithField("email", u.Email).Info("session restored")
	return nil
}

func (s *Session) transition(ctx context.Context, op, email string, exchange func(context.Context) (Identity, error)) error {
	entry := log.WithComponent("session").WithFields(logrus.Fields{"op": op, "email": email})

	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	entry.Debug("exchange started")

	var id Identity
	err := retry.Do(ctx, s.policy(entry), isTransient, func() error {
		var err error
		id, err = exchange(ctx)
		return err
	})

	if ctx.Err() != nil {
		entry.Info("exchange abandoned by caller")
		return fmt.Errorf("%s: %w", op, ctx.Err())
	}
	if err != nil {
		entry.WithError(err).Warn("exchange failed")
		return &domain.AuthError{Op: op, Err: err}
	}

	u := domain.User{ID: id.UserID, Name: id.Name, Email: id.Email}
	if !s.commit(gen, u) {
		entry.Info("exchange superseded by a newer transition")
		return fmt.Errorf("%s: %w", op, domain.ErrSuperseded)
	}

	entry.WithField("user_id", u.ID).Info("signed in")
	return nil
}

// commit applies u if gen is still the latest transition.
func (s *Session) commit(gen uint64, u domain.User) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return false
	}
	s.state = domain.Authenticated(u)

	if s.persist != nil {
		data, err := json.Marshal(u)
		if err == nil {
			err = s.persist.Set(userKey, string(data))
		}
		if err != nil {
			log.WithComponent("session").WithError(err).Warn("failed to persist session")
		}
	}
	return true
}

var isTransient = retry.Any(retry.Matching(domain.ErrAuthUnavailable), retry.IsRetryable)

// policy returns the retry config with a hook that logs each retry on entry.
func (s *Session) policy(entry *logrus.Entry) retry.Config {
	cfg := s.retry
	cfg.OnRetry = func(attempt int, err error) {
		entry.WithError(err).WithField("attempt", attempt).Debug("retrying exchange")
	}
	return cfg
}
