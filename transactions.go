package main

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"finapi/models"
	"finapi/pkg/ocr"
	"finapi/store"

	"github.com/gin-gonic/gin"
)

// parseDateTime accepts an RFC3339 timestamp or a bare ISO-8601 date.
func parseDateTime(s string) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func (api *API) createTransactionHandler(c *gin.Context) {
	user, ok := api.currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	var req struct {
		AccountID   uint    `json:"account_id" binding:"required"`
		Description string  `json:"description" binding:"required"`
		Value       float64 `json:"value" binding:"required"`
		Type        string  `json:"type" binding:"required,oneof=income expense"`
		Date        string  `json:"date" binding:"required"`
		Paid        bool    `json:"paid"`
		CategoryID  *uint   `json:"category_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	date, ok := parseDateTime(req.Date)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
		return
	}
	tx, err := api.store.RecordTransaction(user.ID, req.AccountID, store.TransactionInput{
		Description: req.Description,
		Value:       req.Value,
		Type:        req.Type,
		Date:        date,
		Paid:        req.Paid,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		abortStoreError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tx)
}

func (api *API) listTransactionsHandler(c *gin.Context) {
	user, ok := api.currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	accountID, err := strconv.ParseUint(c.Query("account_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "account_id required"})
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	filters := store.TransactionFilters{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		DateFrom: c.Query("date_from"),
		DateTo:   c.Query("date_to"),
		Page:     page,
		PageSize: size,
	}
	items, total, err := api.store.ListTransactions(user.ID, uint(accountID), filters)
	if err != nil {
		abortStoreError(c, err)
		return
	}
	if items == nil {
		items = []models.Transaction{}
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "total": total, "page": page, "size": size})
}

// updateTransactionHandler applies partial-update semantics: only fields
// present in the body are changed.
func (api *API) updateTransactionHandler(c *gin.Context) {
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
		Description *string  `json:"description"`
		Value       *float64 `json:"value"`
		Type        *string  `json:"type"`
		Date        *string  `json:"date"`
		Paid        *bool    `json:"paid"`
		CategoryID  *uint    `json:"category_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Type != nil && *req.Type != models.TransactionIncome && *req.Type != models.TransactionExpense {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid type"})
		return
	}
	upd := store.TransactionUpdate{
		Description: req.Description,
		Value:       req.Value,
		Type:        req.Type,
		Paid:        req.Paid,
		CategoryID:  req.CategoryID,
	}
	if req.Date != nil {
		date, ok := parseDateTime(*req.Date)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date"})
			return
		}
		upd.Date = &date
	}
	tx, err := api.store.UpdateTransaction(user.ID, id, upd)
	if err != nil {
		abortStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, tx)
}

func (api *API) setTransactionPaidHandler(c *gin.Context) {
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
		Paid *bool `json:"paid" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tx, err := api.store.SetTransactionPaid(user.ID, id, *req.Paid)
	if err != nil {
		abortStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, tx)
}

func (api *API) deleteTransactionHandler(c *gin.Context) {
	user, ok := api.currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	id, err := parseIDParam(c)
	if err != nil {
		return
	}
	if err := api.store.DeleteTransaction(user.ID, id); err != nil {
		abortStoreError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// uploadProofHandler stores a payment proof file, records it against the
// transaction and runs a best-effort OCR pass for an amount suggestion. OCR
// failure never fails the upload.
func (api *API) uploadProofHandler(c *gin.Context) {
	user, ok := api.currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	id, err := parseIDParam(c)
	if err != nil {
		return
	}
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file missing"})
		return
	}
	if file.Size > 5*1024*1024 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file too large (max 5MB)"})
		return
	}
	// Ownership check happens before anything touches disk.
	if _, err := api.store.Transaction(user.ID, id); err != nil {
		abortStoreError(c, err)
		return
	}
	storedName, err := randomFileName(file.Filename)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to name file"})
		return
	}
	relPath := "proofs/" + storedName
	fullPath := filepath.Join(uploadBaseDir(), relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "mkdir failed"})
		return
	}
	if err := c.SaveUploadedFile(file, fullPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}
	txID := id
	proof := models.Proof{
		OwnerID:       user.ID,
		TransactionID: &txID,
		FileName:      file.Filename,
		StorePath:     relPath,
		ContentType:   file.Header.Get("Content-Type"),
	}
	if err := api.store.CreateProof(&proof); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "db save failed"})
		return
	}
	tx, err := api.store.AttachProofPath(user.ID, id, "/static/"+relPath)
	if err != nil {
		abortStoreError(c, err)
		return
	}
	// Suggestion only: the recorded value is never touched.
	if amt, _, err := ocr.SuggestAmount(fullPath); err == nil {
		_ = api.store.SetProofSuggestion(proof.ID, &amt, "")
		proof.SuggestedValue = &amt
	} else {
		_ = api.store.SetProofSuggestion(proof.ID, nil, err.Error())
	}
	c.JSON(http.StatusOK, gin.H{"proof": proof, "transaction": tx})
}

func (api *API) listProofsHandler(c *gin.Context) {
	user, ok := api.currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	proofs, err := api.store.ProofsByOwner(user.ID)
	if err != nil {
		abortStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, proofs)
}

func (api *API) getProofHandler(c *gin.Context) {
	user, ok := api.currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	id, err := parseIDParam(c)
	if err != nil {
		return
	}
	proof, err := api.store.Proof(user.ID, id)
	if err != nil {
		abortStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, proof)
}

// randomFileName keeps the original extension on a random stored name so
// uploads never collide or leak the caller's file names.
func randomFileName(original string) (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b) + filepath.Ext(original), nil
}
