// Package app is the composition root: it owns the storage, request layer
// and the session/cart/catalog services, and injects them into consumers.
// State is mutated only through the services' methods.
package app

import (
	"context"

	"go.uber.org/zap"

	"storefront-client/internal/api"
	"storefront-client/internal/cart"
	"storefront-client/internal/catalog"
	"storefront-client/internal/config"
	"storefront-client/internal/session"
	"storefront-client/internal/storage"
)

// App bundles the wired services of the storefront client.
type App struct {
	Session *session.Manager
	Cart    *cart.Engine
	Catalog *catalog.Service

	store storage.Store
}

// New opens the local store and wires all services.
func New(cfg config.Config, logger *zap.Logger) (*App, error) {
	store, err := storage.OpenBolt(cfg.StorePath)
	if err != nil {
		return nil, err
	}
	app := NewWithStore(cfg, store, logger)
	app.store = store
	return app, nil
}

// NewWithStore wires all services on top of an existing store. The caller
// keeps ownership of the store's lifecycle.
func NewWithStore(cfg config.Config, store storage.Store, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	builder := &api.Builder{
		AuthBaseURL:  cfg.AuthBaseURL,
		APIBaseURL:   cfg.APIBaseURL,
		ProjectKey:   cfg.ProjectKey,
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
	}
	exec := api.NewExecutor(cfg.HTTPTimeout, logger)
	cache := session.NewTokenCache(store)
	sess := session.NewManager(builder, exec, cache, logger)
	return &App{
		Session: sess,
		Cart:    cart.NewEngine(builder, exec, sess, cfg.Currency, cfg.Country, logger),
		Catalog: catalog.New(builder, exec, sess),
	}
}

// Bootstrap establishes the anonymous session. Failures are non-fatal for
// app start; the session is simply left without a token.
func (a *App) Bootstrap(ctx context.Context) error {
	return a.Session.Bootstrap(ctx)
}

// Logout ends the authenticated session, drops the local cart mirror and
// re-establishes an anonymous identity.
func (a *App) Logout(ctx context.Context) error {
	a.Cart.Reset()
	return a.Session.Logout(ctx)
}

// Close releases the local store if this App opened it.
func (a *App) Close() error {
	if a.store == nil {
		return nil
	}
	return a.store.Close()
}
