package session

import (
	"context"
	"sync"
	"time"

	"storefront-gateway/internal/cart"
	"storefront-gateway/internal/checkout"
	"storefront-gateway/internal/domain"
)

// Session owns the per-shopper state: one cart aggregate, at most one
// checkout flow, and the upstream bearer token once the shopper logs in.
// The cart aggregate itself is not synchronized; the session mutex
// serializes every mutation and snapshot, so mutation and total
// recomputation appear atomic to readers.
type Session struct {
	mu sync.Mutex

	cart   *cart.Cart
	mirror *cart.Mirror
	flow   *checkout.Flow
	orders checkout.OrderPlacer

	authToken string
	customer  *domain.Customer
	expiresAt time.Time
}

// AddItem adds to the cart and replays the mutation to the upstream mirror
// when mirroring is enabled.
func (s *Session) AddItem(ctx context.Context, productID, variantID, title string, quantity int, unitPriceCents int64) (domain.LineItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	line, err := s.cart.AddItem(productID, variantID, title, quantity, unitPriceCents)
	if err != nil {
		return domain.LineItem{}, err
	}
	if s.mirror != nil {
		s.mirror.Upsert(ctx, line)
	}
	return line, nil
}

// SetQuantity updates a line's quantity; zero or less removes the line.
func (s *Session) SetQuantity(ctx context.Context, lineItemID string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.SetQuantity(lineItemID, quantity)
	if s.mirror == nil {
		return
	}
	if line, ok := s.cart.Line(lineItemID); ok {
		s.mirror.Upsert(ctx, line)
	} else {
		s.mirror.Removed(ctx, lineItemID)
	}
}

// RemoveItem deletes a line. Unknown ids are a no-op.
func (s *Session) RemoveItem(ctx context.Context, lineItemID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.RemoveItem(lineItemID)
	if s.mirror != nil {
		s.mirror.Removed(ctx, lineItemID)
	}
}

// ClearCart empties the cart.
func (s *Session) ClearCart(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Clear()
	if s.mirror != nil {
		s.mirror.Cleared(ctx)
	}
}

// Snapshot returns the current lines and total under one lock acquisition.
func (s *Session) Snapshot() ([]domain.LineItem, int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Lines(), s.cart.TotalCents()
}

func (s *Session) Currency() string {
	return s.cart.Currency()
}

// SubmitShipping starts a fresh checkout flow when none is active (or the
// previous one was submitted) and gates the shipping stage.
func (s *Session) SubmitShipping(in checkout.ShippingDetails) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.flow == nil || s.flow.Step() == checkout.StepSubmitted {
		s.flow = checkout.NewFlow(s.cart, s.orders)
	}
	return s.flow.SubmitShipping(in)
}

// SubmitPayment gates the payment stage.
func (s *Session) SubmitPayment(in checkout.PaymentDetails) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.flow == nil {
		return checkout.ErrWrongStep
	}
	return s.flow.SubmitPayment(in)
}

// CheckoutBack steps the flow backward, preserving entered data.
func (s *Session) CheckoutBack() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.flow != nil {
		s.flow.Back()
	}
}

// PlaceOrder submits the active flow. The order email is the logged-in
// customer's when available, else the fallback.
func (s *Session) PlaceOrder(ctx context.Context, fallbackEmail string) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.flow == nil {
		return nil, checkout.ErrWrongStep
	}
	email := fallbackEmail
	if s.customer != nil && s.customer.Email != "" {
		email = s.customer.Email
	}
	order, err := s.flow.PlaceOrder(ctx, email)
	if err != nil {
		return nil, err
	}
	if s.mirror != nil {
		s.mirror.Cleared(ctx)
	}
	return order, nil
}

// CheckoutView reports the flow state for rendering: current step, entered
// data, and the created order once submitted.
func (s *Session) CheckoutView() (checkout.Step, checkout.ShippingDetails, checkout.PaymentDetails, *domain.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.flow == nil {
		return checkout.StepShipping, checkout.ShippingDetails{}, checkout.PaymentDetails{}, nil
	}
	return s.flow.Step(), s.flow.Shipping(), s.flow.Payment(), s.flow.Order()
}

// SetAuth stores the upstream bearer token and customer after login.
func (s *Session) SetAuth(token string, customer domain.Customer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authToken = token
	c := customer
	s.customer = &c
}

// AuthToken returns the upstream bearer token, empty when anonymous.
// Requests proceed unauthenticated without it.
func (s *Session) AuthToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authToken
}

// Customer returns the logged-in customer, if any.
func (s *Session) Customer() (domain.Customer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.customer == nil {
		return domain.Customer{}, false
	}
	return *s.customer, true
}

// Logout drops the upstream credentials, abandons any checkout in progress,
// and clears the cart.
func (s *Session) Logout(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.authToken = ""
	s.customer = nil
	s.flow = nil
	s.cart.Clear()
	if s.mirror != nil {
		s.mirror.Cleared(ctx)
	}
}
