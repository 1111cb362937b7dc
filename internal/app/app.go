// Package app wires the stores behind the ZippOrder client from the user's
// configuration.
package app

import (
	"context"
	"fmt"

	"bakehouse/zipporder/internal/config"
	"bakehouse/zipporder/internal/kvstore"
	"bakehouse/zipporder/internal/log"
	"bakehouse/zipporder/internal/orders"
	"bakehouse/zipporder/internal/services/auth"
	"bakehouse/zipporder/internal/theme"
	"bakehouse/zipporder/internal/tui"
	"bakehouse/zipporder/internal/validation"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// App holds the process-wide stores for one run.
type App struct {
	Session *auth.Session
	Theme   *theme.Store
	Orders  orders.Repository
	Policy  validation.PasswordPolicy

	kv    kvstore.Store
	cache *orders.CachedRepository
}

// ordersKeyPrefix namespaces cached order history per user.
const ordersKeyPrefix = "orders:"

// Options overrides pieces of the wiring, mainly for tests.
type Options struct {
	// Host is the appearance signal. Defaults to theme.DetectHost().
	Host theme.Host
	// Store replaces the backend named in the config.
	Store kvstore.Store
	// Authenticator replaces the mock service.
	Authenticator auth.Authenticator
}

// Open builds the stores described by cfg and restores the persisted
// session and theme concurrently.
func Open(ctx context.Context, cfg *config.Config, opts Options) (*App, error) {
	policy, err := validation.ParsePolicy(cfg.PasswordPolicyOrDefault())
	if err != nil {
		return nil, err
	}
	mode, err := theme.ParseMode(cfg.ThemeModeOrDefault())
	if err != nil {
		return nil, err
	}

	kv := opts.Store
	if kv == nil {
		kv, err = kvstore.Open(cfg.StorageBackendOrDefault(), "")
		if err != nil {
			return nil, fmt.Errorf("failed to open %s store: %w", cfg.StorageBackendOrDefault(), err)
		}
	}

	host := opts.Host
	if host == nil {
		host = theme.DetectHost()
	}
	authn := opts.Authenticator
	if authn == nil {
		authn = auth.NewMockAuthenticator(cfg.AuthDelayOrDefault())
	}

	session := auth.NewSession(authn, auth.WithPersistence(kv))
	cache := orders.NewCachedRepository(orders.NewStaticRepository(), kv, func() string {
		if st := session.State(); st.IsAuthenticated {
			return ordersKeyPrefix + st.User.ID
		}
		return ""
	})

	a := &App{
		Session: session,
		Theme:   theme.NewStore(host, theme.WithMode(mode), theme.WithPersistence(kv)),
		Orders:  cache,
		Policy:  policy,
		kv:      kv,
		cache:   cache,
	}

	if err := a.restore(ctx); err != nil {
		a.Close()
		return nil, err
	}

	log.WithComponent("app").WithFields(logrus.Fields{
		"backend":       cfg.StorageBackendOrDefault(),
		"theme":         a.Theme.Mode().String(),
		"authenticated": a.Session.State().IsAuthenticated,
	}).Info("stores ready")
	return a, nil
}

func (a *App) restore(ctx context.Context) error {
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := a.Session.Restore(); err != nil {
			return fmt.Errorf("failed to restore session: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := a.Theme.Restore(); err != nil {
			// An unreadable preference is not fatal; keep the configured mode.
			log.WithComponent("app").WithError(err).Warn("ignoring persisted theme")
		}
		return nil
	})
	return g.Wait()
}

// Deps returns the stores in the shape the TUI expects.
func (a *App) Deps() tui.Deps {
	return tui.Deps{Session: a.Session, Theme: a.Theme, Orders: a.Orders, Policy: a.Policy}
}

// Store returns the key-value store backing the session and theme.
func (a *App) Store() kvstore.Store { return a.kv }

// Close detaches the theme from its host, waits for background order
// refreshes and releases the store.
func (a *App) Close() error {
	a.Theme.Close()
	a.cache.Wait()
	return kvstore.Close(a.kv)
}

// Load reads the user's configuration and opens the app from it.
func Load(ctx context.Context, opts Options) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return Open(ctx, cfg, opts)
}
