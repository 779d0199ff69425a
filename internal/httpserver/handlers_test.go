package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"storefront-gateway/internal/commerce"
	"storefront-gateway/internal/domain"
	"storefront-gateway/internal/session"
)

type stubCommerce struct {
	pingErr     error
	products    []domain.Product
	listErr     error
	product     *domain.Product
	productErr  error
	orders      []domain.Order
	order       *domain.Order
	orderErr    error
	customer    *domain.Customer
	registerErr error
	login       *commerce.LoginResult
	loginErr    error
}

func (s *stubCommerce) Ping(_ context.Context) error { return s.pingErr }

func (s *stubCommerce) ListProducts(_ context.Context, _, _ string) ([]domain.Product, error) {
	return s.products, s.listErr
}

func (s *stubCommerce) GetProduct(_ context.Context, _, _ string) (*domain.Product, error) {
	return s.product, s.productErr
}

func (s *stubCommerce) ListOrders(_ context.Context, _, _ string) []domain.Order {
	if s.orders == nil {
		return []domain.Order{}
	}
	return s.orders
}

func (s *stubCommerce) GetOrder(_ context.Context, _, _ string) (*domain.Order, error) {
	return s.order, s.orderErr
}

func (s *stubCommerce) RegisterCustomer(_ context.Context, _ commerce.RegisterInput) (*domain.Customer, error) {
	return s.customer, s.registerErr
}

func (s *stubCommerce) Login(_ context.Context, _, _ string) (*commerce.LoginResult, error) {
	return s.login, s.loginErr
}

func (s *stubCommerce) GetCustomer(_ context.Context, _ string) (*domain.Customer, error) {
	return s.customer, nil
}

type stubPlacer struct {
	err   error
	order *domain.Order
}

func (s *stubPlacer) CreateOrder(_ context.Context, _ commerce.CreateOrderInput) (*domain.Order, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.order, nil
}

func headphonesProduct() *domain.Product {
	return &domain.Product{
		ID:    "p1",
		Title: "Premium Wireless Headphones",
		Variants: []domain.Variant{
			{ID: "v1", Prices: []domain.Price{{AmountCents: 2999, CurrencyCode: "USD"}}},
		},
	}
}

func newTestRouter(t *testing.T, api *stubCommerce, placer *stubPlacer) (*gin.Engine, *session.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := log.New(io.Discard, "", 0)
	sessions := session.NewManager(placer, nil, logger, session.Options{})
	router, err := buildRouter(logger, Deps{Sessions: sessions, Commerce: api})
	if err != nil {
		t.Fatalf("build router: %v", err)
	}
	return router, sessions
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(buf)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func issueToken(t *testing.T, router *gin.Engine) string {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/sessions", "", nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 from /sessions, got %d", rec.Code)
	}
	var out struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil || out.Token == "" {
		t.Fatalf("bad session response: %s", rec.Body.String())
	}
	return out.Token
}

type cartBody struct {
	Cart cartResponse `json:"cart"`
}

func decodeCart(t *testing.T, rec *httptest.ResponseRecorder) cartResponse {
	t.Helper()
	var out cartBody
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode cart response: %v (%s)", err, rec.Body.String())
	}
	return out.Cart
}

func TestSessionRequired(t *testing.T) {
	router, _ := newTestRouter(t, &stubCommerce{}, &stubPlacer{})

	rec := doJSON(t, router, http.MethodGet, "/cart", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without session, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/cart", "bogus-token", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with bogus session, got %d", rec.Code)
	}
}

func TestCartFlow(t *testing.T) {
	api := &stubCommerce{product: headphonesProduct()}
	router, _ := newTestRouter(t, api, &stubPlacer{})
	token := issueToken(t, router)

	rec := doJSON(t, router, http.MethodPost, "/cart/items", token, gin.H{"productId": "p1", "variantId": "v1", "quantity": 2})
	if rec.Code != http.StatusOK {
		t.Fatalf("add item: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodPost, "/cart/items", token, gin.H{"productId": "p1", "variantId": "v1", "quantity": 1})
	cart := decodeCart(t, rec)
	if len(cart.Items) != 1 || cart.Items[0].Quantity != 3 || cart.TotalCents != 8997 {
		t.Fatalf("expected coalesced line qty 3 total 8997, got %+v", cart)
	}

	lineID := cart.Items[0].ID
	rec = doJSON(t, router, http.MethodPatch, "/cart/items/"+lineID, token, gin.H{"quantity": 0})
	cart = decodeCart(t, rec)
	if len(cart.Items) != 0 || cart.TotalCents != 0 {
		t.Fatalf("zero-quantity update must remove the line, got %+v", cart)
	}

	rec = doJSON(t, router, http.MethodDelete, "/cart/items/never-existed", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("removing an unknown line must be a no-op, got %d", rec.Code)
	}
}

func TestAddCartItemInvalidQuantity(t *testing.T) {
	api := &stubCommerce{product: headphonesProduct()}
	router, _ := newTestRouter(t, api, &stubPlacer{})
	token := issueToken(t, router)

	rec := doJSON(t, router, http.MethodPost, "/cart/items", token, gin.H{"productId": "p1", "variantId": "v1", "quantity": 0})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for non-positive quantity, got %d", rec.Code)
	}
}

func TestAddCartItemNoPriceForCurrency(t *testing.T) {
	product := headphonesProduct()
	product.Variants[0].Prices = []domain.Price{{AmountCents: 2599, CurrencyCode: "EUR"}}
	router, _ := newTestRouter(t, &stubCommerce{product: product}, &stubPlacer{})
	token := issueToken(t, router)

	rec := doJSON(t, router, http.MethodPost, "/cart/items", token, gin.H{"productId": "p1", "variantId": "v1", "quantity": 1})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 when the variant has no price in the session currency, got %d", rec.Code)
	}
}

func TestCheckoutOverHTTP(t *testing.T) {
	api := &stubCommerce{product: headphonesProduct()}
	placer := &stubPlacer{order: &domain.Order{ID: "o1", Status: domain.OrderPending, TotalCents: 8997}}
	router, _ := newTestRouter(t, api, placer)
	token := issueToken(t, router)

	doJSON(t, router, http.MethodPost, "/cart/items", token, gin.H{"productId": "p1", "variantId": "v1", "quantity": 3})

	// Missing required fields: refused with the full list, step unchanged.
	rec := doJSON(t, router, http.MethodPost, "/checkout/shipping", token, gin.H{"lastName": "Lovelace"})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d (%s)", rec.Code, rec.Body.String())
	}
	var gating struct {
		MissingFields []string `json:"missingFields"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &gating); err != nil || len(gating.MissingFields) != 3 {
		t.Fatalf("expected three missing fields, got %s", rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodPost, "/checkout/shipping", token, gin.H{
		"firstName": "Ada", "address": "1 Main St", "city": "Springfield",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("shipping: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodPost, "/checkout/payment", token, gin.H{
		"cardName": "Ada Lovelace", "cardNumber": "4242424242424242", "expiry": "12/30",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("payment: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodPost, "/checkout/submit", token, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("submit: expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	var submitted struct {
		Order domain.Order `json:"order"`
		Cart  cartResponse `json:"cart"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &submitted); err != nil {
		t.Fatalf("decode submit response: %v", err)
	}
	if submitted.Order.ID != "o1" {
		t.Fatalf("unexpected order: %+v", submitted.Order)
	}
	if len(submitted.Cart.Items) != 0 {
		t.Fatalf("cart must be empty after a successful order, got %+v", submitted.Cart)
	}
}

func TestCheckoutSubmitFailureKeepsCart(t *testing.T) {
	api := &stubCommerce{product: headphonesProduct()}
	placer := &stubPlacer{err: &commerce.APIError{Status: http.StatusBadGateway}}
	router, _ := newTestRouter(t, api, placer)
	token := issueToken(t, router)

	doJSON(t, router, http.MethodPost, "/cart/items", token, gin.H{"productId": "p1", "variantId": "v1", "quantity": 2})
	doJSON(t, router, http.MethodPost, "/checkout/shipping", token, gin.H{"firstName": "Ada", "address": "1 Main St", "city": "Springfield"})
	doJSON(t, router, http.MethodPost, "/checkout/payment", token, gin.H{"cardName": "Ada", "cardNumber": "4242", "expiry": "12/30"})

	rec := doJSON(t, router, http.MethodPost, "/checkout/submit", token, nil)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502 on upstream failure, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/cart", token, nil)
	cart := decodeCart(t, rec)
	if len(cart.Items) != 1 || cart.TotalCents != 5998 {
		t.Fatalf("cart must be untouched after failed submission, got %+v", cart)
	}
}

func TestListOrdersAlwaysSucceeds(t *testing.T) {
	router, _ := newTestRouter(t, &stubCommerce{}, &stubPlacer{})
	token := issueToken(t, router)

	rec := doJSON(t, router, http.MethodGet, "/orders", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var out struct {
		Orders []domain.Order `json:"orders"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil || out.Orders == nil {
		t.Fatalf("expected an empty order list, got %s", rec.Body.String())
	}
}

func TestGetProductNotFoundRendersEmptyState(t *testing.T) {
	router, _ := newTestRouter(t, &stubCommerce{productErr: domain.ErrNotFound}, &stubPlacer{})
	token := issueToken(t, router)

	rec := doJSON(t, router, http.MethodGet, "/store/products/missing", token, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	var out map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := out["product"]; !ok {
		t.Fatalf("expected explicit empty product payload, got %s", rec.Body.String())
	}
}

func TestLoginStoresUpstreamToken(t *testing.T) {
	api := &stubCommerce{
		login: &commerce.LoginResult{
			Customer:    domain.Customer{ID: "cust-1", Email: "ada@example.com"},
			AccessToken: "jwt-abc",
		},
	}
	router, sessions := newTestRouter(t, api, &stubPlacer{})
	token := issueToken(t, router)

	rec := doJSON(t, router, http.MethodPost, "/auth/login", token, gin.H{"email": "ada@example.com", "password": "secret"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	sess, ok := sessions.Get(token)
	if !ok {
		t.Fatalf("session disappeared")
	}
	if sess.AuthToken() != "jwt-abc" {
		t.Fatalf("expected upstream token stored, got %q", sess.AuthToken())
	}

	rec = doJSON(t, router, http.MethodPost, "/auth/logout", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if sess.AuthToken() != "" {
		t.Fatalf("logout must drop the upstream token")
	}
}

func TestReadyz(t *testing.T) {
	router, _ := newTestRouter(t, &stubCommerce{}, &stubPlacer{})
	rec := doJSON(t, router, http.MethodGet, "/readyz", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected ready, got %d", rec.Code)
	}

	router, _ = newTestRouter(t, &stubCommerce{pingErr: errors.New("down")}, &stubPlacer{})
	rec = doJSON(t, router, http.MethodGet, "/readyz", "", nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 when upstream is down, got %d", rec.Code)
	}
}
