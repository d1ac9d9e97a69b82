package main

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// upsertBudgetHandler sets the limit for (caller, category, month); an
// existing row for the same key is overwritten in place. Month is an opaque
// "YYYY-MM"-style string and deliberately not validated.
func (api *API) upsertBudgetHandler(c *gin.Context) {
	user, ok := api.currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	var req struct {
		CategoryID uint     `json:"category_id" binding:"required"`
		Limit      *float64 `json:"limit" binding:"required"`
		Month      *string  `json:"month"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	budget, err := api.store.UpsertBudget(user.ID, req.CategoryID, *req.Limit, req.Month)
	if err != nil {
		abortStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, budget)
}

func (api *API) listBudgetsHandler(c *gin.Context) {
	user, ok := api.currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	budgets, err := api.store.BudgetsByUser(user.ID)
	if err != nil {
		abortStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, budgets)
}

// getBudgetHandler fetches the row for the exact (category, month) key. An
// absent month only matches the standing budget, never a monthly override.
func (api *API) getBudgetHandler(c *gin.Context) {
	user, ok := api.currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	categoryID, month, ok := budgetKeyFromQuery(c)
	if !ok {
		return
	}
	budget, err := api.store.Budget(user.ID, categoryID, month)
	if err != nil {
		abortStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, budget)
}

func (api *API) deleteBudgetHandler(c *gin.Context) {
	user, ok := api.currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	categoryID, month, ok := budgetKeyFromQuery(c)
	if !ok {
		return
	}
	removed, err := api.store.DeleteBudget(user.ID, categoryID, month)
	if err != nil {
		abortStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": removed})
}

// budgetKeyFromQuery reads category_id and the optional month from the query
// string; on a bad category_id it writes the 400 response itself.
func budgetKeyFromQuery(c *gin.Context) (uint, *string, bool) {
	categoryID, err := strconv.ParseUint(c.Query("category_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "category_id required"})
		return 0, nil, false
	}
	var month *string
	if m := c.Query("month"); m != "" {
		month = &m
	}
	return uint(categoryID), month, true
}
