package httpapi

import (
	"net/http"

	"fintrack-platform/internal/auth"
	"fintrack-platform/internal/loans"
	"fintrack-platform/internal/rbac"
	"fintrack-platform/internal/repayments"
	"fintrack-platform/pkg/logger"

	"github.com/gin-gonic/gin"
)

/* ===================== LOANS ===================== */

type createLoanRequest struct {
	UserID         string `json:"user_id"`
	PrincipalMinor int64  `json:"principal_minor"`
	Currency       string `json:"currency"`
	Purpose        string `json:"purpose"`
}

func (h Handlers) CreateLoan(c *gin.Context) {
	_, orgID, ok := identity(c)
	if !ok {
		return
	}
	var req createLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_ARGUMENT", "invalid json")
		return
	}
	l, err := h.Loans.Create(c.Request.Context(), orgID, loans.CreateInput{
		UserID:         req.UserID,
		PrincipalMinor: req.PrincipalMinor,
		Currency:       req.Currency,
		Purpose:        req.Purpose,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, l)
}

// RequestLoan lets an employee open a loan request for themselves.
func (h Handlers) RequestLoan(c *gin.Context) {
	userID, orgID, ok := identity(c)
	if !ok {
		return
	}
	var req createLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_ARGUMENT", "invalid json")
		return
	}
	l, err := h.Loans.Create(c.Request.Context(), orgID, loans.CreateInput{
		UserID:         userID,
		PrincipalMinor: req.PrincipalMinor,
		Currency:       req.Currency,
		Purpose:        req.Purpose,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, l)
}

func (h Handlers) ListLoans(c *gin.Context) {
	_, orgID, ok := identity(c)
	if !ok {
		return
	}
	list, err := h.Loans.ListByOrg(c.Request.Context(), orgID)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"loans": list})
}

func (h Handlers) ListMyLoans(c *gin.Context) {
	userID, orgID, ok := identity(c)
	if !ok {
		return
	}
	list, err := h.Loans.ListByUser(c.Request.Context(), orgID, userID)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"loans": list})
}

func (h Handlers) GetLoan(c *gin.Context) {
	_, orgID, ok := identity(c)
	if !ok {
		return
	}
	l, err := h.Loans.Get(c.Request.Context(), orgID, c.Param("id"))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, l)
}

type updateLoanStatusRequest struct {
	Status string `json:"status"`
}

func (h Handlers) UpdateLoanStatus(c *gin.Context) {
	_, orgID, ok := identity(c)
	if !ok {
		return
	}
	var req updateLoanStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_ARGUMENT", "invalid json")
		return
	}

	ctx := c.Request.Context()
	before, err := h.Loans.Get(ctx, orgID, c.Param("id"))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	l, err := h.Loans.UpdateStatus(ctx, orgID, before.ID, loans.Status(req.Status))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	if h.Audit != nil {
		actor, _ := auth.UserID(ctx)
		role, _ := auth.Role(ctx)
		if err := h.Audit.LogLoanStatusChange(ctx, orgID, actor, role, c.ClientIP(), l.ID, string(before.Status), string(l.Status)); err != nil {
			logger.FromGin(c).Warn("audit append failed", "err", err)
		}
	}
	c.JSON(http.StatusOK, l)
}

func (h Handlers) DeleteLoan(c *gin.Context) {
	_, orgID, ok := identity(c)
	if !ok {
		return
	}
	if err := h.Loans.Delete(c.Request.Context(), orgID, c.Param("id")); err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

/* ===================== REPAYMENTS ===================== */

type createRepaymentRequest struct {
	LoanID      string `json:"loan_id"`
	AmountMinor int64  `json:"amount_minor"`
	Note        string `json:"note"`
}

// CreateRepayment posts an installment. Admins may repay any loan in the
// organization; employees only their own.
func (h Handlers) CreateRepayment(c *gin.Context) {
	userID, orgID, ok := identity(c)
	if !ok {
		return
	}
	var req createRepaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_ARGUMENT", "invalid json")
		return
	}

	role, _ := auth.Role(c.Request.Context())
	if rbac.Normalize(role) != rbac.RoleAdmin {
		l, err := h.Loans.Get(c.Request.Context(), orgID, req.LoanID)
		if err != nil {
			writeDomainError(c, err)
			return
		}
		if l.UserID != userID {
			writeError(c, http.StatusForbidden, "FORBIDDEN", "cannot repay another user's loan")
			return
		}
	}

	rp, err := h.Repayments.Create(c.Request.Context(), orgID, repayments.CreateInput{
		LoanID:      req.LoanID,
		AmountMinor: req.AmountMinor,
		Note:        req.Note,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rp)
}

func (h Handlers) ListRepayments(c *gin.Context) {
	_, orgID, ok := identity(c)
	if !ok {
		return
	}
	list, err := h.Repayments.ListByOrg(c.Request.Context(), orgID)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"repayments": list})
}

// ListLoanRepayments returns the installment history of one loan.
func (h Handlers) ListLoanRepayments(c *gin.Context) {
	_, orgID, ok := identity(c)
	if !ok {
		return
	}
	list, err := h.Repayments.ListByLoan(c.Request.Context(), orgID, c.Param("id"))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"repayments": list})
}

func (h Handlers) ListMyRepayments(c *gin.Context) {
	userID, orgID, ok := identity(c)
	if !ok {
		return
	}
	list, err := h.Repayments.ListByUser(c.Request.Context(), orgID, userID)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"repayments": list})
}
