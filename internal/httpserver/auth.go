package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront-gateway/internal/commerce"
)

type registerRequest struct {
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func registerHandler(api commerceAPI) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req registerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "email and password are required"})
			return
		}
		customer, err := api.RegisterCustomer(c.Request.Context(), commerce.RegisterInput{
			Email:     req.Email,
			Password:  req.Password,
			FirstName: req.FirstName,
			LastName:  req.LastName,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"customer": customer})
	}
}

func loginHandler(api commerceAPI) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "email and password are required"})
			return
		}
		sess := currentSession(c)
		result, err := api.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			respondError(c, err)
			return
		}
		sess.SetAuth(result.AccessToken, result.Customer)
		c.JSON(http.StatusOK, gin.H{"customer": result.Customer})
	}
}

// logoutHandler drops the upstream credentials and clears the cart; the
// session token itself stays valid for anonymous browsing.
func logoutHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := currentSession(c)
		sess.Logout(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"cart": cartPayload(sess)})
	}
}

func meHandler(api commerceAPI) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := currentSession(c)
		token := sess.AuthToken()
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "not logged in"})
			return
		}
		customer, err := api.GetCustomer(c.Request.Context(), token)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"customer": customer})
	}
}
