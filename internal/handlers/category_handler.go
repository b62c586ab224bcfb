package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "budgetbook/internal/errors"
	"budgetbook/internal/models"
	"budgetbook/internal/services"
)

// CategoryHandler handles category-related requests.
type CategoryHandler struct {
	categoryService services.CategoryServicer
	auditService    services.AuditServicer
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryService services.CategoryServicer, auditService services.AuditServicer) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService, auditService: auditService}
}

// CreateCategoryRequest represents the request payload for creating a category.
type CreateCategoryRequest struct {
	Name string `json:"category_name" binding:"required,min=1,max=100"`
	Type string `json:"category_type" binding:"required,category_type"`
}

// UpdateCategoryRequest represents the request payload for updating a category.
type UpdateCategoryRequest struct {
	Name string `json:"category_name" binding:"required,min=1,max=100"`
	Type string `json:"category_type" binding:"required,category_type"`
}

// CreateCategory handles the creation of a new category.
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	category, err := h.categoryService.Create(userID, req.Name, models.CategoryType(req.Type))
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_CATEGORY", "category", category.ID, c.ClientIP(),
		map[string]interface{}{"category_name": req.Name, "category_type": req.Type})

	c.JSON(http.StatusCreated, gin.H{"category": category})
}

// GetCategories lists the user's categories sorted by name.
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	categories, err := h.categoryService.ListForUser(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// UpdateCategory renames and retypes a category.
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	categoryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	category, err := h.categoryService.Update(userID, categoryID, req.Name, models.CategoryType(req.Type))
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_CATEGORY", "category", category.ID, c.ClientIP(),
		map[string]interface{}{"category_name": req.Name, "category_type": req.Type})

	c.JSON(http.StatusOK, gin.H{"category": category})
}

// BatchUpdateCategories applies a bulk category edit. Rows succeed or fail
// independently; the response carries one result per submitted row.
func (h *CategoryHandler) BatchUpdateCategories(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req struct {
		Categories []services.CategoryUpdate `json:"categories" binding:"required,dive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	results := h.categoryService.BatchUpdate(userID, req.Categories)

	h.auditService.Log(userID, "BATCH_UPDATE_CATEGORIES", "category", 0, c.ClientIP(),
		map[string]interface{}{"count": len(req.Categories)})

	c.JSON(http.StatusOK, gin.H{"results": batchResponse(results)})
}

// DeleteCategory removes a category and every transaction referencing it.
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	categoryID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.categoryService.Delete(userID, categoryID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_CATEGORY", "category", categoryID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Category and all related transactions deleted"})
}

// ExportCategoriesCSV streams the user's categories as a CSV download with
// a header row matching the displayed column names.
func (h *CategoryHandler) ExportCategoriesCSV(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	categories, err := h.categoryService.ListForUser(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	username := c.GetString("username")
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "categories_"+username+".csv"))

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	_ = writer.Write([]string{"ID", "Category Name", "Category Type"})
	for _, category := range categories {
		_ = writer.Write([]string{
			strconv.FormatUint(uint64(category.ID), 10),
			category.Name,
			string(category.Type),
		})
	}
}
