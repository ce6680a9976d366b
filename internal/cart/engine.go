// Package cart maintains a client-side mirror of the server-owned cart,
// serializing every mutation through the cart's version check.
package cart

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"storefront-client/internal/api"
	"storefront-client/internal/domain"
)

// ErrUnknownCode is returned for promo codes outside the allow-list.
var ErrUnknownCode = errors.New("unknown promo code")

// discountRates is the fixed promo-code allow-list. Discounts are a local
// display estimate only; the server total stays authoritative.
var discountRates = map[string]float64{
	"WELCOME5": 0.05,
	"SAVE10":   0.10,
	"SAVE15":   0.15,
}

// TokenSource provides the current access token. *session.Manager satisfies it.
type TokenSource interface {
	AccessToken() string
}

// Engine owns the remote cart resource: lazy creation, version-checked
// mutation and local promo-code application. The mutex is the per-cart
// single-flight queue: exactly one mutation is in flight at a time and later
// calls wait their turn, operating against the then-current cart state, so an
// out-of-order response can never overwrite a newer one.
type Engine struct {
	builder  *api.Builder
	exec     *api.Executor
	tokens   TokenSource
	log      *zap.Logger
	currency string
	country  string

	mu          sync.Mutex
	cart        *domain.Cart
	appliedCode string

	inflight atomic.Int32
}

// NewEngine wires the cart engine with the draft currency/country used when a
// cart has to be created. A nil logger is replaced with a nop logger.
func NewEngine(builder *api.Builder, exec *api.Executor, tokens TokenSource, currency, country string, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{
		builder:  builder,
		exec:     exec,
		tokens:   tokens,
		log:      log,
		currency: currency,
		country:  country,
	}
}

// Loading reports whether a cart operation is currently in flight.
func (e *Engine) Loading() bool {
	return e.inflight.Load() > 0
}

// Cart returns a copy of the local cart mirror, or nil when none is loaded.
func (e *Engine) Cart() *domain.Cart {
	e.mu.Lock()
	defer e.mu.Unlock()
	return copyCart(e.cart)
}

// EnsureCart returns the in-memory cart if present; otherwise it fetches the
// active cart and, when none exists server-side, creates one. This is the
// single cart-creation point.
func (e *Engine) EnsureCart(ctx context.Context) (*domain.Cart, error) {
	e.inflight.Add(1)
	defer e.inflight.Add(-1)
	e.mu.Lock()
	defer e.mu.Unlock()
	cart, err := e.ensureCartLocked(ctx)
	if err != nil {
		return nil, err
	}
	return copyCart(cart), nil
}

func (e *Engine) ensureCartLocked(ctx context.Context) (*domain.Cart, error) {
	if e.cart != nil {
		return e.cart, nil
	}
	token := e.tokens.AccessToken()
	if token == "" {
		return nil, domain.ErrMissingToken
	}

	var active domain.Cart
	err := e.exec.Do(ctx, e.builder.ActiveCart(token), &active)
	if err == nil {
		e.cart = &active
		return e.cart, nil
	}
	if !api.IsNotFound(err) {
		return nil, fmt.Errorf("fetch active cart: %w", err)
	}

	var created domain.Cart
	if err := e.exec.Do(ctx, e.builder.CreateCart(token, e.currency, e.country), &created); err != nil {
		return nil, fmt.Errorf("create cart: %w", err)
	}
	e.log.Info("cart created", zap.String("cartId", created.ID))
	e.cart = &created
	return e.cart, nil
}

// AddToCart adds quantity units of the product variant, creating the cart
// first if needed. The local mirror is replaced with the server's response.
func (e *Engine) AddToCart(ctx context.Context, productID string, variantID, quantity int) (*domain.Cart, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("add to cart: quantity must be positive, got %d", quantity)
	}
	e.inflight.Add(1)
	defer e.inflight.Add(-1)
	e.mu.Lock()
	defer e.mu.Unlock()
	cart, err := e.ensureCartLocked(ctx)
	if err != nil {
		return nil, err
	}
	return e.applyLocked(ctx, cart, []api.CartAction{api.AddLineItem(productID, variantID, quantity)})
}

// RemoveFromCart removes the line item. It is a no-op when no cart is loaded.
func (e *Engine) RemoveFromCart(ctx context.Context, lineItemID string) (*domain.Cart, error) {
	e.inflight.Add(1)
	defer e.inflight.Add(-1)
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cart == nil {
		return nil, nil
	}
	return e.applyLocked(ctx, e.cart, []api.CartAction{api.RemoveLineItem(lineItemID)})
}

// UpdateLineItemQuantity sets the line item's quantity; zero or less removes
// the line. It is a no-op when no cart is loaded.
func (e *Engine) UpdateLineItemQuantity(ctx context.Context, lineItemID string, quantity int) (*domain.Cart, error) {
	e.inflight.Add(1)
	defer e.inflight.Add(-1)
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cart == nil {
		return nil, nil
	}
	action := api.ChangeLineItemQuantity(lineItemID, quantity)
	if quantity <= 0 {
		action = api.RemoveLineItem(lineItemID)
	}
	return e.applyLocked(ctx, e.cart, []api.CartAction{action})
}

// ClearCart removes every line item in a single batched update call.
func (e *Engine) ClearCart(ctx context.Context) (*domain.Cart, error) {
	e.inflight.Add(1)
	defer e.inflight.Add(-1)
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cart == nil || len(e.cart.LineItems) == 0 {
		return copyCart(e.cart), nil
	}
	actions := make([]api.CartAction, 0, len(e.cart.LineItems))
	for _, line := range e.cart.LineItems {
		actions = append(actions, api.RemoveLineItem(line.ID))
	}
	return e.applyLocked(ctx, e.cart, actions)
}

// applyLocked issues a version-checked update against the current cart
// snapshot. On failure (stale version included) the local mirror is left
// untouched; on success it is replaced with the server's authoritative
// response.
func (e *Engine) applyLocked(ctx context.Context, cart *domain.Cart, actions []api.CartAction) (*domain.Cart, error) {
	token := e.tokens.AccessToken()
	if token == "" {
		return nil, domain.ErrMissingToken
	}
	var updated domain.Cart
	if err := e.exec.Do(ctx, e.builder.UpdateCart(token, cart.ID, cart.Version, actions), &updated); err != nil {
		if api.IsConflict(err) {
			e.log.Warn("cart version conflict",
				zap.String("cartId", cart.ID),
				zap.Int("version", cart.Version),
			)
		}
		return nil, fmt.Errorf("update cart: %w", err)
	}
	e.cart = &updated
	return copyCart(e.cart), nil
}

// ApplyDiscountCode validates the code against the allow-list and records it
// as applied. At most one code is applied; a later code replaces the earlier
// one, and re-applying the same code is a no-op. No remote call is made.
func (e *Engine) ApplyDiscountCode(code string) error {
	canonical := strings.ToUpper(strings.TrimSpace(code))
	if _, ok := discountRates[canonical]; !ok {
		return ErrUnknownCode
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.appliedCode = canonical
	return nil
}

// RemoveDiscountCode drops the applied code, if any.
func (e *Engine) RemoveDiscountCode() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.appliedCode = ""
}

// AppliedCode returns the currently applied promo code, or "".
func (e *Engine) AppliedCode() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.appliedCode
}

// DiscountedTotalCents is the locally estimated display total: the
// server-reported subtotal minus the discount rounded to the nearest cent.
// The server's cart total remains authoritative.
func (e *Engine) DiscountedTotalCents() int64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cart == nil {
		return 0
	}
	subtotal := e.cart.TotalPrice.CentAmount
	rate, ok := discountRates[e.appliedCode]
	if !ok {
		return subtotal
	}
	discount := int64(math.Round(float64(subtotal) * rate))
	return subtotal - discount
}

// Reset drops the local mirror and applied code, e.g. after the session
// identity changes. The next EnsureCart refetches from the server.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cart = nil
	e.appliedCode = ""
}

func copyCart(c *domain.Cart) *domain.Cart {
	if c == nil {
		return nil
	}
	out := *c
	if c.LineItems != nil {
		out.LineItems = make([]domain.LineItem, len(c.LineItems))
		copy(out.LineItems, c.LineItems)
	}
	return &out
}
