// Package session owns the access-token lifecycle: anonymous bootstrap,
// credential login, registration and logout. It is the only writer of the
// process-wide token state; consumers read it through accessors.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"storefront-client/internal/api"
	"storefront-client/internal/domain"
)

// State is the session lifecycle phase.
type State int

const (
	StateBootstrapping State = iota
	StateAnonymous
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateBootstrapping:
		return "bootstrapping"
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// CredentialError is a login failure routed to form fields. Structured
// field errors from the server take precedence; otherwise the message is
// routed by substring match, and a message matching neither field blames
// both.
type CredentialError struct {
	EmailMessage    string
	PasswordMessage string
}

func (e *CredentialError) Error() string {
	switch {
	case e.EmailMessage != "" && e.PasswordMessage != "" && e.EmailMessage == e.PasswordMessage:
		return e.EmailMessage
	case e.EmailMessage != "" && e.PasswordMessage != "":
		return e.EmailMessage + "; " + e.PasswordMessage
	case e.EmailMessage != "":
		return e.EmailMessage
	case e.PasswordMessage != "":
		return e.PasswordMessage
	default:
		return "invalid credentials"
	}
}

// Manager drives the state machine Bootstrapping -> Anonymous <-> Authenticated.
// All operations serialize on an internal mutex; the manager is safe for use
// from multiple goroutines.
type Manager struct {
	builder *api.Builder
	exec    *api.Executor
	cache   *TokenCache
	log     *zap.Logger

	mu          sync.Mutex
	state       State
	accessToken string
	customer    *domain.Customer
}

// NewManager wires the session manager. A nil logger is replaced with a nop
// logger.
func NewManager(builder *api.Builder, exec *api.Executor, cache *TokenCache, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		builder: builder,
		exec:    exec,
		cache:   cache,
		log:     log,
		state:   StateBootstrapping,
	}
}

// State returns the current lifecycle phase.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// AccessToken returns the current access token, or "" when none is held.
func (m *Manager) AccessToken() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.accessToken
}

// IsAuthenticated reports whether a password-credential exchange succeeded.
// An anonymous token alone never sets this.
func (m *Manager) IsAuthenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state == StateAuthenticated
}

// Customer returns a copy of the loaded customer, or nil.
func (m *Manager) Customer() *domain.Customer {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.customer == nil {
		return nil
	}
	c := *m.customer
	return &c
}

// Bootstrap establishes an anonymous session: a valid cached token is used
// as-is, otherwise a fresh token is fetched and cached. Failure leaves the
// session in the anonymous state with no token; callers may treat that as
// non-fatal.
func (m *Manager) Bootstrap(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bootstrapLocked(ctx)
}

func (m *Manager) bootstrapLocked(ctx context.Context) error {
	m.state = StateAnonymous
	if cached := m.cache.CachedToken(); cached != "" {
		m.accessToken = cached
		return nil
	}

	anonymousID, err := m.cache.AnonymousID()
	if err != nil {
		m.accessToken = ""
		return fmt.Errorf("bootstrap: anonymous id: %w", err)
	}
	var token domain.Token
	if err := m.exec.Do(ctx, m.builder.AnonymousToken(anonymousID), &token); err != nil {
		m.accessToken = ""
		m.log.Warn("anonymous token fetch failed", zap.Error(err))
		return fmt.Errorf("bootstrap: %w", err)
	}
	m.accessToken = token.AccessToken
	if err := m.cache.CacheToken(token.AccessToken, token.ExpiresIn); err != nil {
		m.log.Warn("token cache write failed", zap.Error(err))
	}
	return nil
}

// Login exchanges credentials for a user token. On failure the session state
// is left unchanged and a *CredentialError is returned for server-rejected
// credentials.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loginLocked(ctx, email, password)
}

func (m *Manager) loginLocked(ctx context.Context, email, password string) error {
	var token domain.Token
	if err := m.exec.Do(ctx, m.builder.PasswordToken(email, password), &token); err != nil {
		return routeCredentialError(err)
	}
	m.accessToken = token.AccessToken
	m.state = StateAuthenticated
	m.customer = nil

	// Best-effort profile load; the token is already valid.
	var customer domain.Customer
	if err := m.exec.Do(ctx, m.builder.Me(m.accessToken), &customer); err != nil {
		m.log.Warn("profile load failed", zap.Error(err))
		return nil
	}
	m.customer = &customer
	return nil
}

// Register creates the customer resource and immediately logs in with the
// same credentials. An existing (anonymous) access token is required; there
// is no partial "registered but not logged in" success.
func (m *Manager) Register(ctx context.Context, data domain.RegistrationData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.accessToken == "" {
		return domain.ErrMissingToken
	}
	var result domain.CustomerSignInResult
	if err := m.exec.Do(ctx, m.builder.CreateCustomer(m.accessToken, data), &result); err != nil {
		return fmt.Errorf("register: %w", err)
	}
	return m.loginLocked(ctx, data.Email, data.Password)
}

// Logout drops the in-memory user token and immediately re-establishes an
// anonymous session, so the app is never left without any access token.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accessToken = ""
	m.customer = nil
	m.state = StateBootstrapping
	return m.bootstrapLocked(ctx)
}

// UpdateProfile applies version-checked customer update actions. It requires
// an authenticated session.
func (m *Manager) UpdateProfile(ctx context.Context, actions ...api.CustomerAction) (*domain.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	customer, err := m.currentCustomerLocked(ctx)
	if err != nil {
		return nil, err
	}
	var updated domain.Customer
	if err := m.exec.Do(ctx, m.builder.UpdateMe(m.accessToken, customer.Version, actions), &updated); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	m.customer = &updated
	out := updated
	return &out, nil
}

// UpdatePassword changes the customer password with a version check. The
// platform invalidates the user token on success, so the manager logs in
// again with the new credentials.
func (m *Manager) UpdatePassword(ctx context.Context, current, next string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	customer, err := m.currentCustomerLocked(ctx)
	if err != nil {
		return err
	}
	var updated domain.Customer
	if err := m.exec.Do(ctx, m.builder.ChangePassword(m.accessToken, customer.Version, current, next), &updated); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	m.customer = &updated
	return m.loginLocked(ctx, updated.Email, next)
}

func (m *Manager) currentCustomerLocked(ctx context.Context) (*domain.Customer, error) {
	if m.accessToken == "" {
		return nil, domain.ErrMissingToken
	}
	if m.state != StateAuthenticated {
		return nil, domain.ErrNotAuthenticated
	}
	if m.customer != nil {
		return m.customer, nil
	}
	var customer domain.Customer
	if err := m.exec.Do(ctx, m.builder.Me(m.accessToken), &customer); err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	m.customer = &customer
	return m.customer, nil
}

// routeCredentialError maps a server-rejected login to form fields.
// Structured field errors win; the substring heuristic is the documented
// fallback. Transport errors and server faults pass through unchanged.
func routeCredentialError(err error) error {
	var reqErr *api.RequestError
	if !errors.As(err, &reqErr) || reqErr.StatusCode >= 500 {
		return err
	}

	ce := &CredentialError{}
	structured := false
	for _, detail := range reqErr.Errors {
		switch detail.Field {
		case "email", "username":
			ce.EmailMessage = detail.Message
			structured = true
		case "password":
			ce.PasswordMessage = detail.Message
			structured = true
		}
	}
	if structured {
		return ce
	}

	message := reqErr.Message
	lower := strings.ToLower(message)
	hasEmail := strings.Contains(lower, "email")
	hasPassword := strings.Contains(lower, "password")
	if hasEmail {
		ce.EmailMessage = message
	}
	if hasPassword {
		ce.PasswordMessage = message
	}
	if !hasEmail && !hasPassword {
		ce.EmailMessage = message
		ce.PasswordMessage = message
	}
	return ce
}
