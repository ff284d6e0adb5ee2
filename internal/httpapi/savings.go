package httpapi

import (
	"net/http"

	"fintrack-platform/internal/savings"

	"github.com/gin-gonic/gin"
)

/* ===================== SAVINGS ===================== */

type createSavingRequest struct {
	UserID      string `json:"user_id"`
	AmountMinor int64  `json:"amount_minor"`
	Currency    string `json:"currency"`
	Note        string `json:"note"`
}

func (h Handlers) CreateSaving(c *gin.Context) {
	_, orgID, ok := identity(c)
	if !ok {
		return
	}
	var req createSavingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_ARGUMENT", "invalid json")
		return
	}
	e, err := h.Savings.Create(c.Request.Context(), orgID, savings.CreateInput{
		UserID:      req.UserID,
		AmountMinor: req.AmountMinor,
		Currency:    req.Currency,
		Note:        req.Note,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, e)
}

func (h Handlers) ListSavings(c *gin.Context) {
	_, orgID, ok := identity(c)
	if !ok {
		return
	}
	entries, err := h.Savings.ListByOrg(c.Request.Context(), orgID)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"savings": entries})
}

// ListMySavings returns the authenticated user's own entries.
func (h Handlers) ListMySavings(c *gin.Context) {
	userID, orgID, ok := identity(c)
	if !ok {
		return
	}
	entries, err := h.Savings.ListByUser(c.Request.Context(), orgID, userID)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"savings": entries})
}

type updateSavingRequest struct {
	AmountMinor int64  `json:"amount_minor"`
	Note        string `json:"note"`
}

func (h Handlers) UpdateSaving(c *gin.Context) {
	_, orgID, ok := identity(c)
	if !ok {
		return
	}
	var req updateSavingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_ARGUMENT", "invalid json")
		return
	}
	e, err := h.Savings.Update(c.Request.Context(), orgID, c.Param("id"), savings.UpdateInput{
		AmountMinor: req.AmountMinor,
		Note:        req.Note,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func (h Handlers) DeleteSaving(c *gin.Context) {
	_, orgID, ok := identity(c)
	if !ok {
		return
	}
	if err := h.Savings.Delete(c.Request.Context(), orgID, c.Param("id")); err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
