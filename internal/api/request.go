package api

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"storefront-client/internal/domain"
)

// Request is a fully formed outbound request descriptor. Builders produce
// these without performing any I/O; the Executor sends them.
type Request struct {
	Method string
	URL    string
	Header http.Header
	Body   []byte
}

// Builder constructs request descriptors for every remote operation.
type Builder struct {
	AuthBaseURL  string
	APIBaseURL   string
	ProjectKey   string
	ClientID     string
	ClientSecret string
}

// AnonymousToken builds the client-credentials token request tied to the
// device's anonymous id.
func (b *Builder) AnonymousToken(anonymousID string) *Request {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("scope", PermissionGuest.Scope(b.ProjectKey))
	form.Set("anonymous_id", anonymousID)
	return b.tokenRequest("/oauth/"+b.ProjectKey+"/anonymous/token", form)
}

// PasswordToken builds the password-grant token request.
func (b *Builder) PasswordToken(email, password string) *Request {
	form := url.Values{}
	form.Set("grant_type", "password")
	form.Set("username", email)
	form.Set("password", password)
	form.Set("scope", PermissionUser.Scope(b.ProjectKey))
	return b.tokenRequest("/oauth/"+b.ProjectKey+"/customers/token", form)
}

func (b *Builder) tokenRequest(path string, form url.Values) *Request {
	header := http.Header{}
	header.Set("Content-Type", "application/x-www-form-urlencoded")
	header.Set("Authorization", "Basic "+basicAuth(b.ClientID, b.ClientSecret))
	return &Request{
		Method: http.MethodPost,
		URL:    b.AuthBaseURL + path,
		Header: header,
		Body:   []byte(form.Encode()),
	}
}

// ProductQuery holds pagination, filtering and search parameters for
// product-projection queries.
type ProductQuery struct {
	Limit  int
	Offset int
	Filter []string
	Sort   []string
	Text   string
	Locale string
}

// ProductProjections builds a paged catalog query.
func (b *Builder) ProductProjections(token string, q ProductQuery) *Request {
	params := url.Values{}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Offset > 0 {
		params.Set("offset", strconv.Itoa(q.Offset))
	}
	for _, f := range q.Filter {
		params.Add("filter", f)
	}
	for _, s := range q.Sort {
		params.Add("sort", s)
	}
	if q.Text != "" {
		locale := q.Locale
		if locale == "" {
			locale = "en"
		}
		params.Set("text."+locale, q.Text)
	}
	u := b.APIBaseURL + "/" + b.ProjectKey + "/product-projections"
	if q.Text != "" {
		u += "/search"
	}
	if enc := params.Encode(); enc != "" {
		u += "?" + enc
	}
	return &Request{Method: http.MethodGet, URL: u, Header: bearer(token)}
}

// Categories builds a paged category query.
func (b *Builder) Categories(token string, limit, offset int) *Request {
	params := url.Values{}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		params.Set("offset", strconv.Itoa(offset))
	}
	u := b.APIBaseURL + "/" + b.ProjectKey + "/categories"
	if enc := params.Encode(); enc != "" {
		u += "?" + enc
	}
	return &Request{Method: http.MethodGet, URL: u, Header: bearer(token)}
}

// CreateCustomer builds the signup request; token is the current (anonymous)
// access token.
func (b *Builder) CreateCustomer(token string, draft domain.RegistrationData) *Request {
	return b.jsonRequest(http.MethodPost, "/"+b.ProjectKey+"/customers", token, draft)
}

// Me builds the current-customer read.
func (b *Builder) Me(token string) *Request {
	return &Request{
		Method: http.MethodGet,
		URL:    b.APIBaseURL + "/" + b.ProjectKey + "/me",
		Header: bearer(token),
	}
}

// UpdateMe builds a version-checked customer update.
func (b *Builder) UpdateMe(token string, version int, actions []CustomerAction) *Request {
	body := struct {
		Version int              `json:"version"`
		Actions []CustomerAction `json:"actions"`
	}{Version: version, Actions: actions}
	return b.jsonRequest(http.MethodPost, "/"+b.ProjectKey+"/me", token, body)
}

// ChangePassword builds a version-checked password change.
func (b *Builder) ChangePassword(token string, version int, current, next string) *Request {
	body := struct {
		Version         int    `json:"version"`
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}{Version: version, CurrentPassword: current, NewPassword: next}
	return b.jsonRequest(http.MethodPost, "/"+b.ProjectKey+"/me/password", token, body)
}

// ActiveCart builds the active-cart read.
func (b *Builder) ActiveCart(token string) *Request {
	return &Request{
		Method: http.MethodGet,
		URL:    b.APIBaseURL + "/" + b.ProjectKey + "/me/active-cart",
		Header: bearer(token),
	}
}

// CreateCart builds the cart-creation request with a fixed currency/country
// draft.
func (b *Builder) CreateCart(token, currency, country string) *Request {
	body := struct {
		Currency string `json:"currency"`
		Country  string `json:"country,omitempty"`
	}{Currency: currency, Country: country}
	return b.jsonRequest(http.MethodPost, "/"+b.ProjectKey+"/me/carts", token, body)
}

// UpdateCart builds a version-checked cart update carrying the given actions.
func (b *Builder) UpdateCart(token, cartID string, version int, actions []CartAction) *Request {
	body := struct {
		Version int          `json:"version"`
		Actions []CartAction `json:"actions"`
	}{Version: version, Actions: actions}
	return b.jsonRequest(http.MethodPost, "/"+b.ProjectKey+"/me/carts/"+cartID, token, body)
}

func (b *Builder) jsonRequest(method, path, token string, body interface{}) *Request {
	raw, err := json.Marshal(body)
	if err != nil {
		// All body types above are plain structs; this cannot fail at runtime.
		panic(fmt.Sprintf("api: marshal request body: %v", err))
	}
	header := bearer(token)
	header.Set("Content-Type", "application/json")
	return &Request{
		Method: method,
		URL:    b.APIBaseURL + path,
		Header: header,
		Body:   raw,
	}
}

func bearer(token string) http.Header {
	header := http.Header{}
	if token != "" {
		header.Set("Authorization", "Bearer "+token)
	}
	return header
}

func basicAuth(id, secret string) string {
	return base64.StdEncoding.EncodeToString([]byte(id + ":" + secret))
}
