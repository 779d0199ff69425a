package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-gateway/internal/checkout"
	"storefront-gateway/internal/commerce"
	"storefront-gateway/internal/domain"
	"storefront-gateway/internal/session"
)

type cartResponse struct {
	Items      []domain.LineItem `json:"items"`
	TotalCents int64             `json:"totalCents"`
	Currency   string            `json:"currency"`
}

func cartPayload(sess *session.Session) cartResponse {
	lines, total := sess.Snapshot()
	return cartResponse{Items: lines, TotalCents: total, Currency: sess.Currency()}
}

type checkoutResponse struct {
	Step     checkout.Step            `json:"step"`
	Shipping checkout.ShippingDetails `json:"shipping"`
	Payment  checkoutPaymentView      `json:"payment"`
	Order    *domain.Order            `json:"order,omitempty"`
}

// checkoutPaymentView echoes which payment fields were captured without
// replaying card data to the client.
type checkoutPaymentView struct {
	CardName   string `json:"cardName"`
	CardNumber string `json:"cardNumber"`
	Expiry     string `json:"expiry"`
}

func checkoutPayload(sess *session.Session) checkoutResponse {
	step, shipping, payment, order := sess.CheckoutView()
	return checkoutResponse{
		Step:     step,
		Shipping: shipping,
		Payment: checkoutPaymentView{
			CardName:   payment.CardName,
			CardNumber: maskCardNumber(payment.CardNumber),
			Expiry:     payment.Expiry,
		},
		Order: order,
	}
}

func maskCardNumber(number string) string {
	if len(number) <= 4 {
		return number
	}
	return "**** " + number[len(number)-4:]
}

// respondError maps domain, checkout, and upstream errors onto the
// gateway's status codes. Nothing here terminates the process; gin.Recovery
// is the backstop for the rest.
func respondError(c *gin.Context, err error) {
	var verr *checkout.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"message":       verr.Error(),
			"missingFields": verr.Missing,
		})
		return
	}

	switch {
	case errors.Is(err, domain.ErrInvalidQuantity), errors.Is(err, checkout.ErrEmptyCart):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
	case errors.Is(err, checkout.ErrWrongStep), errors.Is(err, checkout.ErrCompleted):
		c.JSON(http.StatusConflict, gin.H{"message": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "not found"})
	default:
		var apiErr *commerce.APIError
		if errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500 {
			c.JSON(apiErr.Status, gin.H{"message": apiErr.Message, "code": apiErr.Code})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"message": "commerce api unavailable, please retry"})
	}
}
