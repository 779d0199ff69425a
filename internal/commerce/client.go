package commerce

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"storefront-gateway/internal/domain"
)

// Client calls the external commerce API. All persistence, pricing,
// inventory, and order fulfillment live upstream; the client is a plain
// JSON-over-HTTP boundary with a bounded per-request timeout and no retries.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *log.Logger
}

// APIError is a non-2xx response from the commerce API.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("commerce api: %d %s", e.Status, e.Message)
	}
	return fmt.Sprintf("commerce api: status %d", e.Status)
}

// New builds a Client against the given base URL.
func New(baseURL string, timeout time.Duration, logger *log.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Ping checks that the upstream API is reachable.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", "", nil, nil)
}

// ListProducts fetches the catalog, optionally filtered by a search query.
func (c *Client) ListProducts(ctx context.Context, token, query string) ([]domain.Product, error) {
	path := "/store/products"
	if query != "" {
		path += "?q=" + url.QueryEscape(query)
	}
	var out struct {
		Products []domain.Product `json:"products"`
	}
	if err := c.do(ctx, http.MethodGet, path, token, nil, &out); err != nil {
		return nil, err
	}
	return out.Products, nil
}

// GetProduct fetches one product by id.
func (c *Client) GetProduct(ctx context.Context, token, id string) (*domain.Product, error) {
	var out struct {
		Product domain.Product `json:"product"`
	}
	if err := c.do(ctx, http.MethodGet, "/store/products/"+url.PathEscape(id), token, nil, &out); err != nil {
		return nil, err
	}
	return &out.Product, nil
}

// CreateCart creates an upstream cart for mirroring.
func (c *Client) CreateCart(ctx context.Context) (*Cart, error) {
	var out struct {
		Cart Cart `json:"cart"`
	}
	if err := c.do(ctx, http.MethodPost, "/store/carts", "", nil, &out); err != nil {
		return nil, err
	}
	return &out.Cart, nil
}

// GetCart fetches an upstream cart snapshot.
func (c *Client) GetCart(ctx context.Context, cartID string) (*Cart, error) {
	var out struct {
		Cart Cart `json:"cart"`
	}
	if err := c.do(ctx, http.MethodGet, "/store/carts/"+url.PathEscape(cartID), "", nil, &out); err != nil {
		return nil, err
	}
	return &out.Cart, nil
}

// AddLineItem adds a variant to an upstream cart.
func (c *Client) AddLineItem(ctx context.Context, cartID, variantID string, quantity int) (*Cart, error) {
	body := map[string]interface{}{"variant_id": variantID, "quantity": quantity}
	var out struct {
		Cart Cart `json:"cart"`
	}
	path := "/store/carts/" + url.PathEscape(cartID) + "/line-items"
	if err := c.do(ctx, http.MethodPost, path, "", body, &out); err != nil {
		return nil, err
	}
	return &out.Cart, nil
}

// UpdateLineItem changes a line's quantity in an upstream cart.
func (c *Client) UpdateLineItem(ctx context.Context, cartID, lineItemID string, quantity int) (*Cart, error) {
	body := map[string]interface{}{"quantity": quantity}
	var out struct {
		Cart Cart `json:"cart"`
	}
	path := "/store/carts/" + url.PathEscape(cartID) + "/line-items/" + url.PathEscape(lineItemID)
	if err := c.do(ctx, http.MethodPost, path, "", body, &out); err != nil {
		return nil, err
	}
	return &out.Cart, nil
}

// RemoveLineItem deletes a line from an upstream cart.
func (c *Client) RemoveLineItem(ctx context.Context, cartID, lineItemID string) (*Cart, error) {
	var out struct {
		Cart Cart `json:"cart"`
	}
	path := "/store/carts/" + url.PathEscape(cartID) + "/line-items/" + url.PathEscape(lineItemID)
	if err := c.do(ctx, http.MethodDelete, path, "", nil, &out); err != nil {
		return nil, err
	}
	return &out.Cart, nil
}

// ListOrders fetches the customer's order history. Failures are swallowed:
// the order list renders as empty rather than erroring.
func (c *Client) ListOrders(ctx context.Context, token, customerID string) []domain.Order {
	path := "/store/orders"
	if customerID != "" {
		path += "?customer_id=" + url.QueryEscape(customerID)
	}
	var out struct {
		Orders []orderPayload `json:"orders"`
	}
	if err := c.do(ctx, http.MethodGet, path, token, nil, &out); err != nil {
		c.logger.Printf("list orders: %v", err)
		return []domain.Order{}
	}
	orders := make([]domain.Order, 0, len(out.Orders))
	for _, p := range out.Orders {
		orders = append(orders, p.toDomain())
	}
	return orders
}

// GetOrder fetches one order by id.
func (c *Client) GetOrder(ctx context.Context, token, id string) (*domain.Order, error) {
	var out struct {
		Order orderPayload `json:"order"`
	}
	if err := c.do(ctx, http.MethodGet, "/store/orders/"+url.PathEscape(id), token, nil, &out); err != nil {
		return nil, err
	}
	order := out.Order.toDomain()
	return &order, nil
}

// CreateOrder submits the checkout payload. There is no automatic retry;
// a failed attempt is surfaced to the caller, who may resubmit.
func (c *Client) CreateOrder(ctx context.Context, in CreateOrderInput) (*domain.Order, error) {
	var out struct {
		Order orderPayload `json:"order"`
	}
	if err := c.do(ctx, http.MethodPost, "/store/orders", "", in, &out); err != nil {
		return nil, err
	}
	order := out.Order.toDomain()
	return &order, nil
}

// RegisterCustomer creates an upstream customer account.
func (c *Client) RegisterCustomer(ctx context.Context, in RegisterInput) (*domain.Customer, error) {
	var out struct {
		Customer domain.Customer `json:"customer"`
	}
	if err := c.do(ctx, http.MethodPost, "/store/customers", "", in, &out); err != nil {
		return nil, err
	}
	return &out.Customer, nil
}

// Login authenticates a customer and returns the upstream bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body := map[string]string{"email": email, "password": password}
	var out struct {
		Customer    domain.Customer `json:"customer"`
		AccessToken string          `json:"access_token"`
	}
	if err := c.do(ctx, http.MethodPost, "/store/auth", "", body, &out); err != nil {
		return nil, err
	}
	return &LoginResult{Customer: out.Customer, AccessToken: out.AccessToken}, nil
}

// GetCustomer fetches the customer bound to the bearer token.
func (c *Client) GetCustomer(ctx context.Context, token string) (*domain.Customer, error) {
	var out struct {
		Customer domain.Customer `json:"customer"`
	}
	if err := c.do(ctx, http.MethodGet, "/store/customers/me", token, nil, &out); err != nil {
		return nil, err
	}
	return &out.Customer, nil
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%s %s: %w", method, path, domain.ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var payload struct {
			Code    string `json:"code"`
			Type    string `json:"type"`
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
			apiErr.Message = payload.Message
			apiErr.Code = payload.Code
			if apiErr.Code == "" {
				apiErr.Code = payload.Type
			}
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
