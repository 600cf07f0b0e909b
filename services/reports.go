package services

import (
	"cmp"
	"slices"

	"github.com/samber/lo"

	"playstore-insights/models"
)

// TopByReviews returns the n apps with the most reviews.
func TopByReviews(apps []*models.App, n int) []*models.App {
	return topBy(apps, n, func(a, b *models.App) int {
		return cmp.Compare(b.Reviews, a.Reviews)
	})
}

// TopByInstalls returns the n apps with the most installs.
func TopByInstalls(apps []*models.App, n int) []*models.App {
	return topBy(apps, n, func(a, b *models.App) int {
		return cmp.Compare(b.Installs, a.Installs)
	})
}

// TypeDistribution counts apps per Type, ordered by type name.
func TypeDistribution(apps []*models.App) []models.TypeCount {
	counts := lo.CountValuesBy(apps, func(a *models.App) string {
		return a.Type
	})

	dist := lo.MapToSlice(counts, func(t string, n int) models.TypeCount {
		return models.TypeCount{Type: t, Count: n}
	})
	slices.SortFunc(dist, func(a, b models.TypeCount) int {
		return cmp.Compare(a.Type, b.Type)
	})
	return dist
}

// InstallsByCategory sums installs per category, largest total first.
// Equal totals are ordered by category name.
func InstallsByCategory(apps []*models.App) []models.CategoryInstalls {
	groups := lo.GroupBy(apps, func(a *models.App) string {
		return a.Category
	})

	totals := lo.MapToSlice(groups, func(category string, group []*models.App) models.CategoryInstalls {
		return models.CategoryInstalls{
			Category: category,
			Installs: lo.SumBy(group, func(a *models.App) int64 { return a.Installs }),
		}
	})
	slices.SortFunc(totals, func(a, b models.CategoryInstalls) int {
		if c := cmp.Compare(b.Installs, a.Installs); c != 0 {
			return c
		}
		return cmp.Compare(a.Category, b.Category)
	})
	return totals
}

// TopPaidByPrice returns the n most expensive paid apps.
func TopPaidByPrice(apps []*models.App, n int) []*models.App {
	return topBy(paid(apps), n, func(a, b *models.App) int {
		return cmp.Compare(b.Price, a.Price)
	})
}

// TopPaidByRating returns the n best-rated paid apps.
func TopPaidByRating(apps []*models.App, n int) []*models.App {
	return topBy(paid(apps), n, func(a, b *models.App) int {
		return cmp.Compare(b.Rating, a.Rating)
	})
}

func paid(apps []*models.App) []*models.App {
	return lo.Filter(apps, func(a *models.App, _ int) bool {
		return a.IsPaid()
	})
}

// topBy stable-sorts a copy of apps and keeps the first n, so ties keep
// their input order and the caller's slice is left untouched.
func topBy(apps []*models.App, n int, compare func(a, b *models.App) int) []*models.App {
	if n <= 0 {
		return []*models.App{}
	}
	sorted := slices.Clone(apps)
	slices.SortStableFunc(sorted, compare)
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	if sorted == nil {
		return []*models.App{}
	}
	return sorted
}
