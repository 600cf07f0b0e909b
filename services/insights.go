package services

import (
	"playstore-insights/models"
	"playstore-insights/utils"
)

// ReportService derives every report table from the cleaned dataset.
type ReportService struct {
	logger *utils.Logger
	topN   int
}

// NewReportService creates a ReportService keeping topN rows per ranking.
func NewReportService(logger *utils.Logger, topN int) *ReportService {
	return &ReportService{logger: logger, topN: topN}
}

// Generate runs the five report queries over apps. apps is not modified.
func (s *ReportService) Generate(apps []*models.App) *models.Report {
	report := &models.Report{
		TotalApps:          len(apps),
		TopN:               s.topN,
		TopByReviews:       TopByReviews(apps, s.topN),
		TopByInstalls:      TopByInstalls(apps, s.topN),
		TypeDistribution:   TypeDistribution(apps),
		InstallsByCategory: InstallsByCategory(apps),
		TopPaidByPrice:     TopPaidByPrice(apps, s.topN),
		TopPaidByRating:    TopPaidByRating(apps, s.topN),
	}

	s.logger.Info("[reports] Generated reports over %d apps (%d categories, %d paid in top-price)",
		report.TotalApps, len(report.InstallsByCategory), len(report.TopPaidByPrice))
	return report
}
