package main

import (
	"errors"
	"net/http"

	"finapi/models"
	"finapi/store"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// API bundles the handlers' dependencies. The storage handle is threaded in
// explicitly; handlers never touch a package-level connection.
type API struct {
	store     *store.Store
	jwtSecret []byte
}

func newAPI(s *store.Store, jwtSecret []byte) *API {
	return &API{store: s, jwtSecret: jwtSecret}
}

func setupRoutes(r *gin.Engine, api *API) {
	r.POST("/register", api.registerHandler)
	r.POST("/login", api.loginHandler)
	r.POST("/refresh", api.refreshHandler)
	r.POST("/revoke_refresh", api.revokeRefreshHandler)
	r.POST("/forgot-password", api.forgotPasswordHandler)
	r.POST("/reset-password", api.resetPasswordHandler)

	authGroup := r.Group("")
	authGroup.Use(api.jwtAuthMiddleware())
	authGroup.GET("/me", api.meHandler)
	authGroup.PUT("/me/change-password", api.changePasswordHandler)

	authGroup.POST("/accounts", api.createAccountHandler)
	authGroup.GET("/accounts", api.listAccountsHandler)
	authGroup.GET("/accounts/:id", api.getAccountHandler)
	authGroup.PUT("/accounts/:id", api.updateAccountHandler)
	authGroup.DELETE("/accounts/:id", api.deleteAccountHandler)

	authGroup.POST("/categories", api.createCategoryHandler)
	authGroup.GET("/categories", api.listCategoriesHandler)
	authGroup.PUT("/categories/:id", api.updateCategoryHandler)
	authGroup.DELETE("/categories/:id", api.deleteCategoryHandler)

	authGroup.POST("/transactions", api.createTransactionHandler)
	authGroup.GET("/transactions", api.listTransactionsHandler)
	authGroup.PUT("/transactions/:id", api.updateTransactionHandler)
	authGroup.PATCH("/transactions/:id/paid", api.setTransactionPaidHandler)
	authGroup.DELETE("/transactions/:id", api.deleteTransactionHandler)
	authGroup.POST("/transactions/:id/proof", api.uploadProofHandler)

	authGroup.POST("/budgets", api.upsertBudgetHandler)
	authGroup.GET("/budgets", api.listBudgetsHandler)
	authGroup.GET("/budgets/lookup", api.getBudgetHandler)
	authGroup.DELETE("/budgets", api.deleteBudgetHandler)

	authGroup.GET("/proofs", api.listProofsHandler)
	authGroup.GET("/proofs/:id", api.getProofHandler)
}

func (api *API) jwtAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || len(authHeader) < 8 || authHeader[:7] != "Bearer " {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid Authorization header"})
			c.Abort()
			return
		}
		tokenString := authHeader[7:]
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrInvalidKeyType
			}
			return api.jwtSecret, nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid claims"})
			c.Abort()
			return
		}
		email, _ := claims["sub"].(string)
		if email == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid claims"})
			c.Abort()
			return
		}
		c.Set("email", email)
		c.Next()
	}
}

// currentUser fetches the authenticated user from the email set by
// jwtAuthMiddleware.
func (api *API) currentUser(c *gin.Context) (*models.User, bool) {
	emailVal, _ := c.Get("email")
	if emailVal == nil {
		return nil, false
	}
	user, err := api.store.UserByEmail(emailVal.(string))
	if err != nil || !user.Active {
		return nil, false
	}
	return user, true
}

// abortStoreError translates store error kinds into HTTP statuses.
func abortStoreError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func (api *API) meHandler(c *gin.Context) {
	user, ok := api.currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}
