package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "budgetbook/internal/errors"
	"budgetbook/internal/models"
	"budgetbook/internal/services"
)

// DashboardHandler serves aggregate report views.
type DashboardHandler struct {
	reportService services.ReportServicer
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(reportService services.ReportServicer) *DashboardHandler {
	return &DashboardHandler{reportService: reportService}
}

// GetSummary totals the user's transactions per category type over
// [start_date, end_date) and derives the net balance. Balance and the
// rupee-formatted display strings belong to this boundary; the report
// service only returns raw totals per type.
func (h *DashboardHandler) GetSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	startDate := c.Query("start_date")
	endDate := c.Query("end_date")
	if startDate == "" || endDate == "" {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "start_date and end_date are required"))
		return
	}

	totals, err := h.reportService.Summary(userID, startDate, endDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	income := totals[models.CategoryTypeIncome]
	expense := totals[models.CategoryTypeExpense]
	savings := totals[models.CategoryTypeSavings]
	balance := income - expense - savings

	c.JSON(http.StatusOK, gin.H{
		"summary": gin.H{
			"income":  income,
			"expense": expense,
			"savings": savings,
			"balance": balance,
		},
		"display": gin.H{
			"income":  formatINR(income),
			"expense": formatINR(expense),
			"savings": formatINR(savings),
			"balance": formatINR(balance),
		},
	})
}
