package main

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type accountRequest struct {
	Name           string  `json:"name" binding:"required"`
	Type           string  `json:"type" binding:"required"`
	InitialBalance float64 `json:"initial_balance"`
}

func (api *API) createAccountHandler(c *gin.Context) {
	user, ok := api.currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	var req accountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	account, err := api.store.CreateAccount(user.ID, req.Name, req.Type, req.InitialBalance)
	if err != nil {
		abortStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, account)
}

func (api *API) listAccountsHandler(c *gin.Context) {
	user, ok := api.currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	accounts, err := api.store.AccountsByOwner(user.ID)
	if err != nil {
		abortStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, accounts)
}

func (api *API) getAccountHandler(c *gin.Context) {
	user, ok := api.currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	id, err := parseIDParam(c)
	if err != nil {
		return
	}
	account, err := api.store.Account(user.ID, id)
	if err != nil {
		abortStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, account)
}

// updateAccountHandler replaces all mutable fields (full-replace semantics).
func (api *API) updateAccountHandler(c *gin.Context) {
	user, ok := api.currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	id, err := parseIDParam(c)
	if err != nil {
		return
	}
	var req accountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	account, err := api.store.UpdateAccount(user.ID, id, req.Name, req.Type, req.InitialBalance)
	if err != nil {
		abortStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, account)
}

func (api *API) deleteAccountHandler(c *gin.Context) {
	user, ok := api.currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	id, err := parseIDParam(c)
	if err != nil {
		return
	}
	if err := api.store.DeleteAccount(user.ID, id); err != nil {
		abortStoreError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// parseIDParam reads the :id path segment; on failure it writes the 400
// response itself and returns a non-nil error.
func parseIDParam(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, err
	}
	return uint(id), nil
}
