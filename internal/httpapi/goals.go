package httpapi

import (
	"net/http"
	"time"

	"fintrack-platform/internal/goals"

	"github.com/gin-gonic/gin"
)

/* ===================== PERSONAL GOALS ===================== */

// Goals are self-service: every handler scopes to the authenticated user,
// and admins get no cross-user access.

type createGoalRequest struct {
	Title       string     `json:"title"`
	TargetMinor int64      `json:"target_minor"`
	Currency    string     `json:"currency"`
	Deadline    *time.Time `json:"deadline"`
}

func (h Handlers) CreateGoal(c *gin.Context) {
	userID, orgID, ok := identity(c)
	if !ok {
		return
	}
	var req createGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_ARGUMENT", "invalid json")
		return
	}
	g, err := h.Goals.Create(c.Request.Context(), orgID, userID, goals.CreateInput{
		Title:       req.Title,
		TargetMinor: req.TargetMinor,
		Currency:    req.Currency,
		Deadline:    req.Deadline,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, g)
}

func (h Handlers) ListMyGoals(c *gin.Context) {
	userID, orgID, ok := identity(c)
	if !ok {
		return
	}
	list, err := h.Goals.ListByUser(c.Request.Context(), orgID, userID)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"goals": list})
}

func (h Handlers) GetGoal(c *gin.Context) {
	userID, orgID, ok := identity(c)
	if !ok {
		return
	}
	g, err := h.Goals.Get(c.Request.Context(), orgID, userID, c.Param("id"))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, g)
}

type updateGoalRequest struct {
	Title       string     `json:"title"`
	TargetMinor int64      `json:"target_minor"`
	SavedMinor  int64      `json:"saved_minor"`
	Deadline    *time.Time `json:"deadline"`
}

func (h Handlers) UpdateGoal(c *gin.Context) {
	userID, orgID, ok := identity(c)
	if !ok {
		return
	}
	var req updateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_ARGUMENT", "invalid json")
		return
	}
	g, err := h.Goals.Update(c.Request.Context(), orgID, userID, c.Param("id"), goals.UpdateInput{
		Title:       req.Title,
		TargetMinor: req.TargetMinor,
		SavedMinor:  req.SavedMinor,
		Deadline:    req.Deadline,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, g)
}

func (h Handlers) DeleteGoal(c *gin.Context) {
	userID, orgID, ok := identity(c)
	if !ok {
		return
	}
	if err := h.Goals.Delete(c.Request.Context(), orgID, userID, c.Param("id")); err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
