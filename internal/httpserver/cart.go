package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type addItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	VariantID string `json:"variantId"`
	Quantity  int    `json:"quantity"`
}

type updateItemRequest struct {
	Quantity int `json:"quantity"`
}

func getCartHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"cart": cartPayload(currentSession(c))})
	}
}

// addCartItemHandler resolves the product upstream, captures the variant's
// price in the session currency at add-time, and adds to the local cart.
func addCartItemHandler(api commerceAPI) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "productId is required"})
			return
		}
		sess := currentSession(c)

		product, err := api.GetProduct(c.Request.Context(), sess.AuthToken(), req.ProductID)
		if err != nil {
			respondError(c, err)
			return
		}

		variant := product.VariantByID(req.VariantID)
		if variant == nil && req.VariantID == "" && len(product.Variants) > 0 {
			variant = &product.Variants[0]
		}
		if variant == nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "variant not found"})
			return
		}
		price, ok := variant.PriceFor(sess.Currency())
		if !ok {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "variant has no price in " + sess.Currency()})
			return
		}

		line, err := sess.AddItem(c.Request.Context(), product.ID, variant.ID, product.Title, req.Quantity, price)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"cart": cartPayload(sess), "lineItem": line})
	}
}

func updateCartItemHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
			return
		}
		sess := currentSession(c)
		sess.SetQuantity(c.Request.Context(), c.Param("lineItemID"), req.Quantity)
		c.JSON(http.StatusOK, gin.H{"cart": cartPayload(sess)})
	}
}

func removeCartItemHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := currentSession(c)
		sess.RemoveItem(c.Request.Context(), c.Param("lineItemID"))
		c.JSON(http.StatusOK, gin.H{"cart": cartPayload(sess)})
	}
}

func clearCartHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := currentSession(c)
		sess.ClearCart(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"cart": cartPayload(sess)})
	}
}
