package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "budgetbook/internal/errors"
	"budgetbook/internal/logger"
	"budgetbook/internal/services"
)

// getUserID extracts the authenticated user ID from the Gin context.
// Returns ErrUnauthorized if not present.
func getUserID(c *gin.Context) (uint, error) {
	userID, exists := c.Get("userID")
	if !exists {
		return 0, apperrors.ErrUnauthorized
	}
	return userID.(uint), nil
}

// parsePathID parses a uint path parameter.
// Returns ErrInvalidInput if the parameter is not a valid positive integer.
func parsePathID(c *gin.Context, param string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	return uint(id), nil
}

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code, code, and message. Otherwise it
// logs the unexpected error and returns a generic internal server error.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		c.JSON(appErr.StatusCode, gin.H{
			"error": gin.H{
				"code":    appErr.Code,
				"message": appErr.Message,
			},
		})
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, gin.H{
		"error": gin.H{
			"code":    apperrors.ErrInternalServer.Code,
			"message": apperrors.ErrInternalServer.Message,
		},
	})
}

// BatchItemResult is the wire form of one row's outcome in a bulk edit.
type BatchItemResult struct {
	ID    uint         `json:"id"`
	OK    bool         `json:"ok"`
	Error *ErrorDetail `json:"error,omitempty"`
}

// batchResponse converts service-level batch results into their wire form.
func batchResponse(results []services.BatchResult) []BatchItemResult {
	items := make([]BatchItemResult, 0, len(results))
	for _, r := range results {
		item := BatchItemResult{ID: r.ID, OK: r.Err == nil}
		if r.Err != nil {
			var appErr *apperrors.AppError
			if errors.As(r.Err, &appErr) {
				item.Error = &ErrorDetail{Code: appErr.Code, Message: appErr.Message}
			} else {
				item.Error = &ErrorDetail{
					Code:    apperrors.ErrInternalServer.Code,
					Message: apperrors.ErrInternalServer.Message,
				}
			}
		}
		items = append(items, item)
	}
	return items
}

// formatINR renders an amount for display with the rupee sign, thousands
// separators, and two decimal places. Stored amounts are plain numbers;
// currency formatting exists only at this boundary.
func formatINR(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}

	s := strconv.FormatFloat(amount, 'f', 2, 64)
	intPart, fracPart := s[:len(s)-3], s[len(s)-2:]

	var groups []string
	for len(intPart) > 3 {
		groups = append([]string{intPart[len(intPart)-3:]}, groups...)
		intPart = intPart[:len(intPart)-3]
	}
	groups = append([]string{intPart}, groups...)

	return sign + "₹" + strings.Join(groups, ",") + "." + fracPart
}

// formatAmount renders an amount with two decimal places and no currency
// symbol, as used in CSV exports.
func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', 2, 64)
}

// ErrorDetail represents the inner error object in an error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}
