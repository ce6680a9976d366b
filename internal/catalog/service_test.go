package catalog

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

func newTestService(t *testing.T) *Service {
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
	return New(builder, exec, sess)
}

type emptyTokenSource struct{}

func (emptyTokenSource) AccessToken() string { return "" }

func TestProductsPagination(t *testing.T) {
	svc := newTestService(t)
	page, err := svc.Products(context.Background(), api.ProductQuery{Limit: 2})
	if err != nil {
		t.Fatalf("products: %v", err)
	}
	if page.Count != 2 || len(page.Results) != 2 {
		t.Fatalf("unexpected page %+v", page)
	}
	if page.Total != 3 {
		t.Fatalf("unexpected total %d", page.Total)
	}

	rest, err := svc.Products(context.Background(), api.ProductQuery{Limit: 2, Offset: 2})
	if err != nil {
		t.Fatalf("products offset: %v", err)
	}
	if rest.Count != 1 {
		t.Fatalf("unexpected remainder %+v", rest)
	}
}

func TestProductsFreeTextSearch(t *testing.T) {
	svc := newTestService(t)
	page, err := svc.Products(context.Background(), api.ProductQuery{Text: "kettle"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if page.Count != 1 {
		t.Fatalf("expected one match, got %d", page.Count)
	}
	if got := page.Results[0].Name.Get("en"); got != "Gooseneck Kettle" {
		t.Fatalf("unexpected match %q", got)
	}
}

func TestCategoriesListing(t *testing.T) {
	svc := newTestService(t)
	page, err := svc.Categories(context.Background(), 10, 0)
	if err != nil {
		t.Fatalf("categories: %v", err)
	}
	if page.Count != 2 {
		t.Fatalf("unexpected count %d", page.Count)
	}
}

func TestQueriesRequireToken(t *testing.T) {
	svc := New(&api.Builder{}, api.NewExecutor(time.Second, nil), emptyTokenSource{})
	if _, err := svc.Products(context.Background(), api.ProductQuery{}); !errors.Is(err, domain.ErrMissingToken) {
		t.Fatalf("expected missing token error, got %v", err)
	}
	if _, err := svc.Categories(context.Background(), 10, 0); !errors.Is(err, domain.ErrMissingToken) {
		t.Fatalf("expected missing token error, got %v", err)
	}
}
