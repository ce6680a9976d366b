package api

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"storefront-client/internal/domain"
)

func testBuilder() *Builder {
	return &Builder{
		AuthBaseURL:  "https://auth.example.com",
		APIBaseURL:   "https://api.example.com",
		ProjectKey:   "demo",
		ClientID:     "client-id",
		ClientSecret: "client-secret",
	}
}

func TestPermissionScopeJoinsProjectKey(t *testing.T) {
	scope := PermissionGuest.Scope("demo")
	if !strings.Contains(scope, "view_published_products:demo") {
		t.Fatalf("scope missing guest permission: %q", scope)
	}
	if !strings.Contains(scope, "create_anonymous_token:demo") {
		t.Fatalf("scope missing anonymous permission: %q", scope)
	}
	for _, part := range strings.Split(scope, " ") {
		if !strings.HasSuffix(part, ":demo") {
			t.Fatalf("scope entry %q not bound to project", part)
		}
	}
}

func TestAnonymousTokenRequest(t *testing.T) {
	req := testBuilder().AnonymousToken("anon-1")
	if req.Method != http.MethodPost {
		t.Fatalf("unexpected method %s", req.Method)
	}
	if req.URL != "https://auth.example.com/oauth/demo/anonymous/token" {
		t.Fatalf("unexpected url %s", req.URL)
	}
	wantAuth := "Basic " + base64.StdEncoding.EncodeToString([]byte("client-id:client-secret"))
	if got := req.Header.Get("Authorization"); got != wantAuth {
		t.Fatalf("unexpected auth header %q", got)
	}
	form, err := url.ParseQuery(string(req.Body))
	if err != nil {
		t.Fatalf("parse body: %v", err)
	}
	if form.Get("grant_type") != "client_credentials" {
		t.Fatalf("unexpected grant_type %q", form.Get("grant_type"))
	}
	if form.Get("anonymous_id") != "anon-1" {
		t.Fatalf("unexpected anonymous_id %q", form.Get("anonymous_id"))
	}
	if !strings.Contains(form.Get("scope"), "create_anonymous_token:demo") {
		t.Fatalf("unexpected scope %q", form.Get("scope"))
	}
}

func TestPasswordTokenRequest(t *testing.T) {
	req := testBuilder().PasswordToken("user@example.com", "Secret1a")
	if req.URL != "https://auth.example.com/oauth/demo/customers/token" {
		t.Fatalf("unexpected url %s", req.URL)
	}
	form, err := url.ParseQuery(string(req.Body))
	if err != nil {
		t.Fatalf("parse body: %v", err)
	}
	if form.Get("grant_type") != "password" {
		t.Fatalf("unexpected grant_type %q", form.Get("grant_type"))
	}
	if form.Get("username") != "user@example.com" || form.Get("password") != "Secret1a" {
		t.Fatal("credentials not carried in form body")
	}
	if !strings.Contains(form.Get("scope"), "manage_my_shopping_lists:demo") {
		t.Fatalf("expected user scope, got %q", form.Get("scope"))
	}
}

func TestProductProjectionsRequest(t *testing.T) {
	req := testBuilder().ProductProjections("tok", ProductQuery{
		Limit:  10,
		Offset: 20,
		Filter: []string{"categories.id:\"cat-1\""},
		Sort:   []string{"name.en asc"},
	})
	u, err := url.Parse(req.URL)
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}
	if u.Path != "/demo/product-projections" {
		t.Fatalf("unexpected path %s", u.Path)
	}
	q := u.Query()
	if q.Get("limit") != "10" || q.Get("offset") != "20" {
		t.Fatalf("pagination not encoded: %v", q)
	}
	if q.Get("filter") != "categories.id:\"cat-1\"" {
		t.Fatalf("filter not encoded: %v", q)
	}
	if got := req.Header.Get("Authorization"); got != "Bearer tok" {
		t.Fatalf("unexpected auth header %q", got)
	}
}

func TestProductProjectionsSearchPath(t *testing.T) {
	req := testBuilder().ProductProjections("tok", ProductQuery{Text: "kettle"})
	u, err := url.Parse(req.URL)
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}
	if u.Path != "/demo/product-projections/search" {
		t.Fatalf("expected search path, got %s", u.Path)
	}
	if u.Query().Get("text.en") != "kettle" {
		t.Fatalf("text param not encoded: %v", u.Query())
	}
}

func TestUpdateCartRequestBody(t *testing.T) {
	actions := []CartAction{
		AddLineItem("prod-1", 1, 2),
		RemoveLineItem("line-1"),
		ChangeLineItemQuantity("line-2", 3),
	}
	req := testBuilder().UpdateCart("tok", "cart-1", 5, actions)
	if req.URL != "https://api.example.com/demo/me/carts/cart-1" {
		t.Fatalf("unexpected url %s", req.URL)
	}
	var body struct {
		Version int          `json:"version"`
		Actions []CartAction `json:"actions"`
	}
	if err := json.Unmarshal(req.Body, &body); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if body.Version != 5 {
		t.Fatalf("unexpected version %d", body.Version)
	}
	if len(body.Actions) != 3 {
		t.Fatalf("expected 3 actions, got %d", len(body.Actions))
	}
	if body.Actions[0].Action != "addLineItem" || body.Actions[0].Quantity != 2 {
		t.Fatalf("unexpected first action %+v", body.Actions[0])
	}
	if body.Actions[1].Action != "removeLineItem" || body.Actions[1].LineItemID != "line-1" {
		t.Fatalf("unexpected second action %+v", body.Actions[1])
	}
}

func TestCreateCustomerRequest(t *testing.T) {
	draft := domain.RegistrationData{Email: "a@b.co", Password: "Abcdefg1"}
	req := testBuilder().CreateCustomer("tok", draft)
	if req.URL != "https://api.example.com/demo/customers" {
		t.Fatalf("unexpected url %s", req.URL)
	}
	if got := req.Header.Get("Content-Type"); got != "application/json" {
		t.Fatalf("unexpected content type %q", got)
	}
	var parsed domain.RegistrationData
	if err := json.Unmarshal(req.Body, &parsed); err != nil {
		t.Fatalf("unmarshal body: %v", err)
	}
	if parsed.Email != draft.Email {
		t.Fatalf("unexpected email %q", parsed.Email)
	}
}
