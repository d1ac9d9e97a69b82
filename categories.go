package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// createCategoryHandler adds a private category for the caller. No collision
// check against global or other users' category names is performed.
func (api *API) createCategoryHandler(c *gin.Context) {
	user, ok := api.currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	category, err := api.store.CreateCategory(user.ID, req.Name)
	if err != nil {
		abortStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

// listCategoriesHandler returns global categories plus the caller's own.
func (api *API) listCategoriesHandler(c *gin.Context) {
	user, ok := api.currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	categories, err := api.store.CategoriesVisibleTo(user.ID)
	if err != nil {
		abortStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (api *API) updateCategoryHandler(c *gin.Context) {
	user, ok := api.currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	id, err := parseIDParam(c)
	if err != nil {
		return
	}
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	category, err := api.store.RenameCategory(user.ID, id, req.Name)
	if err != nil {
		abortStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (api *API) deleteCategoryHandler(c *gin.Context) {
	user, ok := api.currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	id, err := parseIDParam(c)
	if err != nil {
		return
	}
	if err := api.store.DeleteCategory(user.ID, id); err != nil {
		abortStoreError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
