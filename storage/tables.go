package storage

import (
	"strconv"

	"playstore-insights/models"
)

// table is one report flattened into a header and typed cells.
type table struct {
	name   string
	header []string
	rows   [][]any
}

var appHeader = []string{"rank", "app", "category", "rating", "reviews", "size", "installs", "type", "price"}

// reportTables flattens r into the tables every export writes, in task order.
func reportTables(r *models.Report) []table {
	types := table{name: "type_distribution", header: []string{"type", "count"}}
	for _, tc := range r.TypeDistribution {
		types.rows = append(types.rows, []any{tc.Type, tc.Count})
	}

	categories := table{name: "category_installs", header: []string{"category", "installs"}}
	for _, ci := range r.InstallsByCategory {
		categories.rows = append(categories.rows, []any{ci.Category, ci.Installs})
	}

	return []table{
		appTable("top_reviews", r.TopByReviews),
		appTable("top_installs", r.TopByInstalls),
		types,
		categories,
		appTable("top_paid_price", r.TopPaidByPrice),
		appTable("top_paid_rating", r.TopPaidByRating),
	}
}

func appTable(name string, apps []*models.App) table {
	t := table{name: name, header: appHeader}
	for i, a := range apps {
		t.rows = append(t.rows, []any{
			i + 1, a.Name, a.Category, a.Rating, a.Reviews, a.Size, a.Installs, a.Type, a.Price,
		})
	}
	return t
}

// formatCell renders a cell the same way on every run.
func formatCell(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return ""
	}
}
