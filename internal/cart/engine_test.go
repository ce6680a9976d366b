package cart

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"storefront-client/internal/api"
	"storefront-client/internal/domain"
	"storefront-client/internal/session"
	"storefront-client/internal/storage"
	"storefront-client/internal/stubapi"
)

func newTestEngine(t *testing.T) (*Engine, *stubapi.Server) {
	t.Helper()
	stub := stubapi.New(stubapi.Options{
		ProjectKey:   "demo",
		ClientID:     "client-id",
		ClientSecret: "client-secret",
	})
	ts := httptest.NewServer(stub.Router())
	t.Cleanup(ts.Close)

	builder := &api.Builder{
		AuthBaseURL:  ts.URL,
		APIBaseURL:   ts.URL,
		ProjectKey:   "demo",
		ClientID:     "client-id",
		ClientSecret: "client-secret",
	}
	exec := api.NewExecutor(5*time.Second, nil)
	sess := session.NewManager(builder, exec, session.NewTokenCache(storage.NewMemory()), nil)
	if err := sess.Bootstrap(context.Background()); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	return NewEngine(builder, exec, sess, "EUR", "DE", nil), stub
}

type emptyTokenSource struct{}

func (emptyTokenSource) AccessToken() string { return "" }

func TestEnsureCartIsSingleCreationPoint(t *testing.T) {
	engine, _ := newTestEngine(t)
	first, err := engine.EnsureCart(context.Background())
	if err != nil {
		t.Fatalf("ensure cart: %v", err)
	}
	if first.ID == "" || first.Version != 1 {
		t.Fatalf("unexpected cart %+v", first)
	}
	second, err := engine.EnsureCart(context.Background())
	if err != nil {
		t.Fatalf("ensure cart again: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("second EnsureCart created a new cart: %q vs %q", second.ID, first.ID)
	}
}

func TestEnsureCartRequiresToken(t *testing.T) {
	engine := NewEngine(&api.Builder{}, api.NewExecutor(time.Second, nil), emptyTokenSource{}, "EUR", "DE", nil)
	_, err := engine.EnsureCart(context.Background())
	if !errors.Is(err, domain.ErrMissingToken) {
		t.Fatalf("expected missing token error, got %v", err)
	}
}

func TestAddToCartTrustsServerTotals(t *testing.T) {
	engine, _ := newTestEngine(t)
	// Espresso Cup: 1250 cents each.
	cart, err := engine.AddToCart(context.Background(), "prod-espresso", 1, 2)
	if err != nil {
		t.Fatalf("add to cart: %v", err)
	}
	if len(cart.LineItems) != 1 {
		t.Fatalf("expected 1 line item, got %d", len(cart.LineItems))
	}
	line := cart.LineItems[0]
	if line.Quantity != 2 {
		t.Fatalf("unexpected quantity %d", line.Quantity)
	}
	if line.TotalPrice.CentAmount != 2500 {
		t.Fatalf("unexpected line total %d", line.TotalPrice.CentAmount)
	}
	if cart.TotalPrice.CentAmount != 2500 {
		t.Fatalf("unexpected cart total %d", cart.TotalPrice.CentAmount)
	}
}

func TestAddToCartRejectsNonPositiveQuantity(t *testing.T) {
	engine, _ := newTestEngine(t)
	if _, err := engine.AddToCart(context.Background(), "prod-espresso", 1, 0); err == nil {
		t.Fatal("expected error for zero quantity")
	}
}

func TestFailedMutationLeavesCartUnchanged(t *testing.T) {
	engine, _ := newTestEngine(t)
	before, err := engine.AddToCart(context.Background(), "prod-espresso", 1, 1)
	if err != nil {
		t.Fatalf("add to cart: %v", err)
	}

	if _, err := engine.AddToCart(context.Background(), "prod-unknown", 1, 1); err == nil {
		t.Fatal("expected error for unknown product")
	}
	after := engine.Cart()
	if after.Version != before.Version || len(after.LineItems) != len(before.LineItems) {
		t.Fatalf("cart changed after failed mutation: before=%+v after=%+v", before, after)
	}
}

func TestRemoveFromCartWithoutCartIsNoop(t *testing.T) {
	engine, stub := newTestEngine(t)
	cart, err := engine.RemoveFromCart(context.Background(), "line-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cart != nil {
		t.Fatalf("expected nil cart, got %+v", cart)
	}
	if stub.UpdateCallCount() != 0 {
		t.Fatal("no update call expected without a cart")
	}
}

func TestUpdateLineItemQuantityZeroRemovesLine(t *testing.T) {
	engine, _ := newTestEngine(t)
	cart, err := engine.AddToCart(context.Background(), "prod-espresso", 1, 2)
	if err != nil {
		t.Fatalf("add to cart: %v", err)
	}
	updated, err := engine.UpdateLineItemQuantity(context.Background(), cart.LineItems[0].ID, 0)
	if err != nil {
		t.Fatalf("update quantity: %v", err)
	}
	if len(updated.LineItems) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(updated.LineItems))
	}
}

func TestClearCartBatchesRemovalsInOneCall(t *testing.T) {
	engine, stub := newTestEngine(t)
	for _, productID := range []string{"prod-espresso", "prod-grinder", "prod-kettle"} {
		if _, err := engine.AddToCart(context.Background(), productID, 1, 1); err != nil {
			t.Fatalf("add %s: %v", productID, err)
		}
	}
	if got := len(engine.Cart().LineItems); got != 3 {
		t.Fatalf("expected 3 line items, got %d", got)
	}

	before := stub.UpdateCallCount()
	cleared, err := engine.ClearCart(context.Background())
	if err != nil {
		t.Fatalf("clear cart: %v", err)
	}
	if len(cleared.LineItems) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(cleared.LineItems))
	}
	if got := stub.UpdateCallCount(); got != before+1 {
		t.Fatalf("clear cart must be one batched call, got %d extra calls", got-before)
	}
}

func TestStaleVersionRejectedAndLocalCartUntouched(t *testing.T) {
	engine, stub := newTestEngine(t)
	cart, err := engine.AddToCart(context.Background(), "prod-espresso", 1, 1)
	if err != nil {
		t.Fatalf("add to cart: %v", err)
	}
	// Another client modifies the cart server-side.
	if !stub.TouchCart(cart.ID) {
		t.Fatal("touch cart failed")
	}

	_, err = engine.RemoveFromCart(context.Background(), cart.LineItems[0].ID)
	if !api.IsConflict(err) {
		t.Fatalf("expected version conflict, got %v", err)
	}
	after := engine.Cart()
	if after.Version != cart.Version {
		t.Fatalf("local version changed: %d vs %d", after.Version, cart.Version)
	}
	if len(after.LineItems) != 1 {
		t.Fatalf("local line items changed: %d", len(after.LineItems))
	}
}

func TestApplyDiscountCodeUnknownRejected(t *testing.T) {
	engine, _ := newTestEngine(t)
	if err := engine.ApplyDiscountCode("NOPE"); !errors.Is(err, ErrUnknownCode) {
		t.Fatalf("expected unknown code error, got %v", err)
	}
	if engine.AppliedCode() != "" {
		t.Fatalf("code applied despite rejection: %q", engine.AppliedCode())
	}
}

func TestApplyDiscountCodeIdempotent(t *testing.T) {
	engine, _ := newTestEngine(t)
	if _, err := engine.AddToCart(context.Background(), "prod-espresso", 1, 2); err != nil {
		t.Fatalf("add to cart: %v", err)
	}
	if err := engine.ApplyDiscountCode("save10"); err != nil {
		t.Fatalf("apply: %v", err)
	}
	firstTotal := engine.DiscountedTotalCents()
	if err := engine.ApplyDiscountCode("SAVE10"); err != nil {
		t.Fatalf("re-apply: %v", err)
	}
	if engine.AppliedCode() != "SAVE10" {
		t.Fatalf("unexpected applied code %q", engine.AppliedCode())
	}
	if got := engine.DiscountedTotalCents(); got != firstTotal {
		t.Fatalf("discount compounded: %d vs %d", got, firstTotal)
	}
	// 2500 - round(2500*0.10) = 2250.
	if firstTotal != 2250 {
		t.Fatalf("unexpected discounted total %d", firstTotal)
	}
}

func TestDiscountRoundsToNearestCent(t *testing.T) {
	engine, _ := newTestEngine(t)
	// One Espresso Cup: 1250 cents; 15% = 187.5, rounded to 188.
	if _, err := engine.AddToCart(context.Background(), "prod-espresso", 1, 1); err != nil {
		t.Fatalf("add to cart: %v", err)
	}
	if err := engine.ApplyDiscountCode("SAVE15"); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if got := engine.DiscountedTotalCents(); got != 1250-188 {
		t.Fatalf("unexpected discounted total %d", got)
	}
}

func TestLaterCodeReplacesEarlier(t *testing.T) {
	engine, _ := newTestEngine(t)
	if err := engine.ApplyDiscountCode("SAVE10"); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if err := engine.ApplyDiscountCode("WELCOME5"); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if engine.AppliedCode() != "WELCOME5" {
		t.Fatalf("unexpected applied code %q", engine.AppliedCode())
	}
}

func TestResetDropsLocalMirror(t *testing.T) {
	engine, _ := newTestEngine(t)
	if _, err := engine.AddToCart(context.Background(), "prod-espresso", 1, 1); err != nil {
		t.Fatalf("add to cart: %v", err)
	}
	if err := engine.ApplyDiscountCode("SAVE10"); err != nil {
		t.Fatalf("apply: %v", err)
	}
	engine.Reset()
	if engine.Cart() != nil {
		t.Fatal("expected local mirror dropped")
	}
	if engine.AppliedCode() != "" {
		t.Fatal("expected applied code dropped")
	}
}
