package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-gateway/internal/domain"
)

func listProductsHandler(api commerceAPI) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := currentSession(c)
		products, err := api.ListProducts(c.Request.Context(), sess.AuthToken(), c.Query("q"))
		if err != nil {
			respondError(c, err)
			return
		}
		if products == nil {
			products = []domain.Product{}
		}
		c.JSON(http.StatusOK, gin.H{"products": products})
	}
}

func getProductHandler(api commerceAPI) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := currentSession(c)
		product, err := api.GetProduct(c.Request.Context(), sess.AuthToken(), c.Param("id"))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				// Missing products render as an empty state, not a crash.
				c.JSON(http.StatusNotFound, gin.H{"message": "product not found", "product": nil})
				return
			}
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"product": product})
	}
}
