package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "budgetbook/internal/errors"
	"budgetbook/internal/services"
)

// BudgetHandler handles budget-related requests.
type BudgetHandler struct {
	budgetService services.BudgetServicer
	auditService  services.AuditServicer
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetService services.BudgetServicer, auditService services.AuditServicer) *BudgetHandler {
	return &BudgetHandler{budgetService: budgetService, auditService: auditService}
}

// SetBudgetRequest represents the request payload for setting a budget.
// Setting a budget for a period that already has one replaces the amount.
type SetBudgetRequest struct {
	CategoryID uint     `json:"category_id" binding:"required"`
	Month      int      `json:"month" binding:"required,min=1,max=12"`
	Year       int      `json:"year" binding:"required,min=2000,max=2100"`
	Amount     *float64 `json:"budget_amount" binding:"required,gte=0"`
}

// SetBudget upserts a monthly budget for an expense category.
func (h *BudgetHandler) SetBudget(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SetBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	budget, err := h.budgetService.Set(userID, req.CategoryID, req.Month, req.Year, *req.Amount)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "SET_BUDGET", "budget", budget.ID, c.ClientIP(),
		map[string]interface{}{"month": req.Month, "year": req.Year, "budget_amount": *req.Amount})

	c.JSON(http.StatusOK, gin.H{"budget": budget})
}

// parsePeriod reads the month/year query parameters common to the budget
// listing endpoints.
func parsePeriod(c *gin.Context) (int, int, error) {
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		return 0, 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "month must be an integer between 1 and 12")
	}
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		return 0, 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "year must be an integer")
	}
	return month, year, nil
}

// GetBudgets lists the budgets for a given month and year.
func (h *BudgetHandler) GetBudgets(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	month, year, err := parsePeriod(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	budgets, err := h.budgetService.ForMonth(userID, month, year)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budgets": budgets})
}

// GetSpentPerCategory reports expense totals per category for a month.
// Categories without expense transactions in the month are absent; clients
// treat missing entries as zero spend.
func (h *BudgetHandler) GetSpentPerCategory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	month, year, err := parsePeriod(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	spent, err := h.budgetService.SpentPerCategory(userID, month, year)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"spent": spent})
}
