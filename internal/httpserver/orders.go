package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// listOrdersHandler renders order history. Upstream failures surface as an
// empty list, never an error.
func listOrdersHandler(api commerceAPI) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := currentSession(c)
		customerID := ""
		if customer, ok := sess.Customer(); ok {
			customerID = customer.ID
		}
		orders := api.ListOrders(c.Request.Context(), sess.AuthToken(), customerID)
		c.JSON(http.StatusOK, gin.H{"orders": orders})
	}
}

func getOrderHandler(api commerceAPI) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := currentSession(c)
		order, err := api.GetOrder(c.Request.Context(), sess.AuthToken(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"order": order})
	}
}
