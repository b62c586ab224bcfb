package services

import (
	"gorm.io/gorm"

	apperrors "budgetbook/internal/errors"
	"budgetbook/internal/models"
)

// reportService aggregates transaction data for dashboards.
type reportService struct {
	db *gorm.DB
}

// NewReportService creates a new ReportServicer.
func NewReportService(db *gorm.DB) ReportServicer {
	return &reportService{db: db}
}

// Summary sums transaction amounts per category type over
// [startDate, endDate). Types without transactions in the window are absent
// from the map. The aggregator never computes a net balance; that is
// derived at the presentation boundary.
func (s *reportService) Summary(userID uint, startDate, endDate string) (map[models.CategoryType]float64, error) {
	if err := validateDate(startDate); err != nil {
		return nil, err
	}
	if err := validateDate(endDate); err != nil {
		return nil, err
	}
	if startDate > endDate {
		return nil, apperrors.ErrInvalidDateRange
	}

	var rows []struct {
		CategoryType models.CategoryType
		Total        float64
	}
	err := s.db.Table("transactions t").
		Select("c.category_type, SUM(t.amount) AS total").
		Joins("JOIN categories c ON t.category_id = c.id").
		Where("t.user_id = ? AND t.transaction_date >= ? AND t.transaction_date < ?", userID, startDate, endDate).
		Group("c.category_type").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	totals := make(map[models.CategoryType]float64, len(rows))
	for _, row := range rows {
		totals[row.CategoryType] = row.Total
	}
	return totals, nil
}
