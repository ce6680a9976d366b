// Package stubapi is an in-process, in-memory replica of the slice of the
// commerce platform's REST API this client depends on. Tests drive the real
// session and cart engines against it through httptest; cmd/stubapi serves it
// standalone for local development.
package stubapi

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"storefront-client/internal/domain"
)

// Options configures the stub server.
type Options struct {
	ProjectKey   string
	ClientID     string
	ClientSecret string
	TokenTTL     time.Duration
	Logger       *zap.Logger
}

type tokenMeta struct {
	customerID  string
	anonymousID string
	expiresAt   time.Time
}

type customerRecord struct {
	customer     domain.Customer
	passwordHash []byte
}

// Server holds all stub state behind a single mutex.
type Server struct {
	opts   Options
	log    *zap.Logger
	router *gin.Engine

	mu          sync.Mutex
	tokens      map[string]tokenMeta
	customers   map[string]*customerRecord
	byEmail     map[string]string
	carts       map[string]*domain.Cart
	activeCarts map[string]string
	products    []domain.ProductProjection
	categories  []domain.Category

	// UpdateCalls counts cart update requests, letting tests assert that
	// batched mutations arrive as a single call.
	updateCalls int
}

// New builds a stub server seeded with the default fixture catalog.
func New(opts Options) *Server {
	if opts.ProjectKey == "" {
		opts.ProjectKey = "storefront"
	}
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = 3 * time.Hour
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		opts:        opts,
		log:         log,
		tokens:      make(map[string]tokenMeta),
		customers:   make(map[string]*customerRecord),
		byEmail:     make(map[string]string),
		carts:       make(map[string]*domain.Cart),
		activeCarts: make(map[string]string),
		products:    fixtureProducts(),
		categories:  fixtureCategories(),
	}
	s.router = s.buildRouter()
	return s
}

// Router exposes the gin engine for httptest and the standalone binary.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// SeedProducts replaces the catalog fixture.
func (s *Server) SeedProducts(products []domain.ProductProjection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = products
}

// SeedCategories replaces the category fixture.
func (s *Server) SeedCategories(categories []domain.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories = categories
}

// UpdateCallCount returns how many cart update requests were received.
func (s *Server) UpdateCallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateCalls
}

// TouchCart applies a server-side modification to the cart, bumping its
// version as another client would. It simulates concurrent modification.
func (s *Server) TouchCart(cartID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart, ok := s.carts[cartID]
	if !ok {
		return false
	}
	cart.Version++
	return true
}

func (s *Server) issueToken(customerID, anonymousID string) (string, int) {
	token := uuid.NewString()
	s.mu.Lock()
	s.tokens[token] = tokenMeta{
		customerID:  customerID,
		anonymousID: anonymousID,
		expiresAt:   time.Now().Add(s.opts.TokenTTL),
	}
	s.mu.Unlock()
	return token, int(s.opts.TokenTTL.Seconds())
}

func (s *Server) validateToken(token string) (tokenMeta, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	meta, ok := s.tokens[token]
	if !ok {
		return tokenMeta{}, false
	}
	if time.Now().After(meta.expiresAt) {
		delete(s.tokens, token)
		return tokenMeta{}, false
	}
	return meta, true
}

// revokeCustomerTokens drops every token bound to the customer, e.g. after a
// password change.
func (s *Server) revokeCustomerTokens(customerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for token, meta := range s.tokens {
		if meta.customerID == customerID {
			delete(s.tokens, token)
		}
	}
}

func ownerKey(meta tokenMeta) string {
	if meta.customerID != "" {
		return "c:" + meta.customerID
	}
	return "a:" + meta.anonymousID
}
