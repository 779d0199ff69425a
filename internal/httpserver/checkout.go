package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-gateway/internal/checkout"
)

// fallbackEmail is used for guest checkout when no customer is logged in.
const fallbackEmail = "customer@example.com"

func checkoutViewHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"checkout": checkoutPayload(currentSession(c))})
	}
}

func checkoutShippingHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var in checkout.ShippingDetails
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
			return
		}
		sess := currentSession(c)
		if err := sess.SubmitShipping(in); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"checkout": checkoutPayload(sess)})
	}
}

func checkoutPaymentHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var in checkout.PaymentDetails
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
			return
		}
		sess := currentSession(c)
		if err := sess.SubmitPayment(in); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"checkout": checkoutPayload(sess)})
	}
}

func checkoutBackHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := currentSession(c)
		sess.CheckoutBack()
		c.JSON(http.StatusOK, gin.H{"checkout": checkoutPayload(sess)})
	}
}

func checkoutSubmitHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := currentSession(c)
		order, err := sess.PlaceOrder(c.Request.Context(), fallbackEmail)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"order": order, "cart": cartPayload(sess)})
	}
}
