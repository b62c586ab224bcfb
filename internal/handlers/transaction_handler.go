package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "budgetbook/internal/errors"
	"budgetbook/internal/services"
)

// TransactionHandler handles transaction-related requests.
type TransactionHandler struct {
	transactionService services.TransactionServicer
	auditService       services.AuditServicer
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(transactionService services.TransactionServicer, auditService services.AuditServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService, auditService: auditService}
}

// CreateTransactionRequest represents the request payload for recording a transaction.
type CreateTransactionRequest struct {
	CategoryID uint    `json:"category_id" binding:"required"`
	Amount     float64 `json:"amount" binding:"required,gt=0"`
	Date       string  `json:"transaction_date" binding:"required,iso_date"`
	Note       string  `json:"note" binding:"max=500"`
}

// UpdateTransactionRequest represents the request payload for overwriting a transaction.
type UpdateTransactionRequest struct {
	CategoryID uint    `json:"category_id" binding:"required"`
	Amount     float64 `json:"amount" binding:"required,gt=0"`
	Date       string  `json:"transaction_date" binding:"required,iso_date"`
	Note       string  `json:"note" binding:"max=500"`
}

// CreateTransaction records a new transaction.
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	transaction, err := h.transactionService.Add(userID, req.CategoryID, req.Amount, req.Date, req.Note)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_TRANSACTION", "transaction", transaction.ID, c.ClientIP(),
		map[string]interface{}{"amount": req.Amount, "transaction_date": req.Date})

	c.JSON(http.StatusCreated, gin.H{"transaction": transaction})
}

// UpdateTransaction overwrites a transaction's content in full.
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	transaction, err := h.transactionService.Update(userID, transactionID, req.CategoryID, req.Amount, req.Date, req.Note)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_TRANSACTION", "transaction", transaction.ID, c.ClientIP(),
		map[string]interface{}{"amount": req.Amount, "transaction_date": req.Date})

	c.JSON(http.StatusOK, gin.H{"transaction": transaction})
}

// BatchUpdateTransactions applies a bulk transaction edit row by row.
func (h *TransactionHandler) BatchUpdateTransactions(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req struct {
		Transactions []services.TransactionUpdate `json:"transactions" binding:"required,dive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	results := h.transactionService.BatchUpdate(userID, req.Transactions)

	h.auditService.Log(userID, "BATCH_UPDATE_TRANSACTIONS", "transaction", 0, c.ClientIP(),
		map[string]interface{}{"count": len(req.Transactions)})

	c.JSON(http.StatusOK, gin.H{"results": batchResponse(results)})
}

// DeleteTransaction removes a transaction.
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.transactionService.Delete(userID, transactionID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_TRANSACTION", "transaction", transactionID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted"})
}

// GetHistory returns the user's transaction history, optionally filtered by
// the start_date/end_date query parameters. The end date is exclusive. An
// empty window is a valid result, not an error.
func (h *TransactionHandler) GetHistory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	entries, err := h.transactionService.History(userID, c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": entries})
}

// ExportTransactionsCSV streams the history window as a CSV download.
// Amounts are written with two decimal places; the header row matches the
// displayed column names.
func (h *TransactionHandler) ExportTransactionsCSV(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	startDate := c.Query("start_date")
	endDate := c.Query("end_date")

	entries, err := h.transactionService.History(userID, startDate, endDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	filename := "transactions.csv"
	if startDate != "" && endDate != "" {
		filename = fmt.Sprintf("transactions_%s_to_%s.csv", startDate, endDate)
	}
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	_ = writer.Write([]string{"ID", "Date", "Category", "Type", "Amount", "Note"})
	for _, e := range entries {
		_ = writer.Write([]string{
			strconv.FormatUint(uint64(e.ID), 10),
			e.Date,
			e.CategoryName,
			string(e.CategoryType),
			formatAmount(e.Amount),
			e.Note,
		})
	}
}
