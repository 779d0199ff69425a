package checkout

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"storefront-gateway/internal/cart"
	"storefront-gateway/internal/commerce"
	"storefront-gateway/internal/domain"
)

// Step is a checkout wizard stage. The flow is linear:
// shipping -> payment -> review -> submitted.
type Step string

const (
	StepShipping  Step = "shipping"
	StepPayment   Step = "payment"
	StepReview    Step = "review"
	StepSubmitted Step = "submitted"
)

var (
	// ErrWrongStep indicates a stage submission out of order.
	ErrWrongStep = errors.New("not on this checkout step")

	// ErrCompleted indicates the flow already reached its terminal state.
	ErrCompleted = errors.New("checkout already submitted")

	// ErrEmptyCart indicates an order submission with no line items.
	ErrEmptyCart = errors.New("cart is empty")
)

// ValidationError reports the full set of required fields missing from a
// stage submission. It is resolved locally and never sent upstream.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Missing, ", "))
}

// ShippingDetails is the shipping stage form data.
type ShippingDetails struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName"`
	Address   string `json:"address" validate:"required"`
	City      string `json:"city" validate:"required"`
	State     string `json:"state"`
	ZipCode   string `json:"zipCode"`
	Country   string `json:"country"`
}

// PaymentDetails is the payment stage form data. The gateway never forwards
// card data upstream; it is collected for the review step only.
type PaymentDetails struct {
	CardName   string `json:"cardName" validate:"required"`
	CardNumber string `json:"cardNumber" validate:"required"`
	Expiry     string `json:"expiry" validate:"required"`
	CVV        string `json:"cvv"`
}

// OrderPlacer submits the order-creation request.
type OrderPlacer interface {
	CreateOrder(ctx context.Context, in commerce.CreateOrderInput) (*domain.Order, error)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func missingFields(v interface{}) []string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return fields
}

// Flow is one checkout attempt over a cart. Forward transitions are gated;
// navigating back preserves entered data. Failed submissions keep the flow
// on review with the cart untouched; the user retries explicitly.
type Flow struct {
	cart *cart.Cart
	api  OrderPlacer

	step     Step
	shipping ShippingDetails
	payment  PaymentDetails
	order    *domain.Order
}

// NewFlow starts a checkout at the shipping stage.
func NewFlow(c *cart.Cart, api OrderPlacer) *Flow {
	return &Flow{cart: c, api: api, step: StepShipping}
}

func (f *Flow) Step() Step {
	return f.step
}

// Shipping returns the entered shipping data, preserved across navigation.
func (f *Flow) Shipping() ShippingDetails {
	return f.shipping
}

// Payment returns the entered payment data, preserved across navigation.
func (f *Flow) Payment() PaymentDetails {
	return f.payment
}

// Order returns the created order once the flow is submitted.
func (f *Flow) Order() *domain.Order {
	return f.order
}

// SubmitShipping validates the shipping stage and advances to payment.
// On a gating failure the step does not advance and the caller gets the
// complete list of missing fields.
func (f *Flow) SubmitShipping(in ShippingDetails) error {
	if f.step == StepSubmitted {
		return ErrCompleted
	}
	if f.step != StepShipping {
		return ErrWrongStep
	}
	if missing := missingFields(in); len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	f.shipping = in
	f.step = StepPayment
	return nil
}

// SubmitPayment validates the payment stage and advances to review.
func (f *Flow) SubmitPayment(in PaymentDetails) error {
	if f.step == StepSubmitted {
		return ErrCompleted
	}
	if f.step != StepPayment {
		return ErrWrongStep
	}
	if missing := missingFields(in); len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	f.payment = in
	f.step = StepReview
	return nil
}

// Back moves one stage backward. Entered data is kept.
func (f *Flow) Back() {
	switch f.step {
	case StepPayment:
		f.step = StepShipping
	case StepReview:
		f.step = StepPayment
	}
}

// PlaceOrder snapshots the cart plus the collected shipping data, submits
// the order-creation request, and on success clears the cart and terminates
// the flow. On failure the flow stays on review and the cart is untouched;
// clearing is strictly a post-success effect.
func (f *Flow) PlaceOrder(ctx context.Context, email string) (*domain.Order, error) {
	if f.step == StepSubmitted {
		return nil, ErrCompleted
	}
	if f.step != StepReview {
		return nil, ErrWrongStep
	}
	if f.cart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	lines := f.cart.Lines()
	items := make([]commerce.OrderLine, 0, len(lines))
	for _, l := range lines {
		items = append(items, commerce.OrderLine{
			ID:             l.ID,
			ProductID:      l.ProductID,
			VariantID:      l.VariantID,
			Title:          l.Title,
			Quantity:       l.Quantity,
			UnitPriceCents: l.UnitPriceCents,
		})
	}
	in := commerce.CreateOrderInput{
		Customer: commerce.OrderCustomer{
			FirstName: f.shipping.FirstName,
			LastName:  f.shipping.LastName,
			Email:     email,
		},
		ShippingAddress: commerce.OrderAddress{
			FirstName:   f.shipping.FirstName,
			LastName:    f.shipping.LastName,
			Address1:    f.shipping.Address,
			City:        f.shipping.City,
			Province:    f.shipping.State,
			PostalCode:  f.shipping.ZipCode,
			CountryCode: f.shipping.Country,
		},
		Items: items,
	}

	order, err := f.api.CreateOrder(ctx, in)
	if err != nil {
		return nil, err
	}
	f.cart.Clear()
	f.order = order
	f.step = StepSubmitted
	return order, nil
}
