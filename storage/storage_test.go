package storage

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"playstore-insights/models"
)

func sampleReport() *models.Report {
	appB := &models.App{Name: "AppB", Category: "GAME", Rating: 4.7, Reviews: 900, Size: "25M", Installs: 500000, Type: "Paid", Price: 2.99}
	appA := &models.App{Name: "AppA", Category: "TOOLS", Rating: 4.1, Reviews: 500, Size: "19M", Installs: 1000, Type: "Free"}
	return &models.Report{
		TotalApps:          2,
		TopN:               10,
		TopByReviews:       []*models.App{appB, appA},
		TopByInstalls:      []*models.App{appB, appA},
		TypeDistribution:   []models.TypeCount{{Type: "Free", Count: 1}, {Type: "Paid", Count: 1}},
		InstallsByCategory: []models.CategoryInstalls{{Category: "GAME", Installs: 500000}, {Category: "TOOLS", Installs: 1000}},
		TopPaidByPrice:     []*models.App{appB},
		TopPaidByRating:    []*models.App{appB},
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func TestCSVWriterWritesOneFilePerTable(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "reports")
	w, err := NewCSVWriter(dir)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.WriteReport(sampleReport()))

	for _, name := range []string{
		"top_reviews", "top_installs", "type_distribution",
		"category_installs", "top_paid_price", "top_paid_rating",
	} {
		assert.FileExists(t, filepath.Join(dir, name+".csv"))
	}

	reviews := readCSV(t, filepath.Join(dir, "top_reviews.csv"))
	require.Len(t, reviews, 3)
	assert.Equal(t, appHeader, reviews[0])
	assert.Equal(t, []string{"1", "AppB", "GAME", "4.7", "900", "25M", "500000", "Paid", "2.99"}, reviews[1])

	categories := readCSV(t, filepath.Join(dir, "category_installs.csv"))
	assert.Equal(t, [][]string{
		{"category", "installs"},
		{"GAME", "500000"},
		{"TOOLS", "1000"},
	}, categories)
}

func TestCSVWriterOverwritesPreviousExport(t *testing.T) {
	dir := t.TempDir()
	w, err := NewCSVWriter(dir)
	require.NoError(t, err)

	require.NoError(t, w.WriteReport(sampleReport()))
	empty := &models.Report{}
	require.NoError(t, w.WriteReport(empty))

	reviews := readCSV(t, filepath.Join(dir, "top_reviews.csv"))
	assert.Len(t, reviews, 1, "only the header should remain")
}

func TestXLSXWriterCreatesSheetPerTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "insights.xlsx")
	w, err := NewXLSXWriter(path)
	require.NoError(t, err)

	require.NoError(t, w.WriteReport(sampleReport()))
	require.NoError(t, w.Close())

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{
		"top_reviews", "top_installs", "type_distribution",
		"category_installs", "top_paid_price", "top_paid_rating",
	}, f.GetSheetList())

	rows, err := f.GetRows("type_distribution")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"type", "count"}, {"Free", "1"}, {"Paid", "1"}}, rows)

	name, err := f.GetCellValue("top_paid_price", "B2")
	require.NoError(t, err)
	assert.Equal(t, "AppB", name)
}

func TestBuildInsert(t *testing.T) {
	report := sampleReport()
	query, args := buildInsert(report.TopByReviews)

	assert.Equal(t,
		"INSERT INTO apps (name, category, rating, reviews, size, installs, type, price) VALUES "+
			"($1,$2,$3,$4,$5,$6,$7,$8),($9,$10,$11,$12,$13,$14,$15,$16)",
		query)
	require.Len(t, args, 16)
	assert.Equal(t, "AppB", args[0])
	assert.Equal(t, "AppA", args[8])
	assert.Equal(t, int64(1000), args[13])
}

func TestAppRowToModel(t *testing.T) {
	row := appRow{ID: 7, Name: "AppB", Category: "GAME", Rating: 4.7, Reviews: 900, Size: "25M", Installs: 500000, Type: "Paid", Price: 2.99}
	assert.Equal(t, sampleReport().TopByReviews[0], row.toModel())
}

func TestFormatCell(t *testing.T) {
	assert.Equal(t, "abc", formatCell("abc"))
	assert.Equal(t, "3", formatCell(3))
	assert.Equal(t, "9000000000", formatCell(int64(9000000000)))
	assert.Equal(t, "0.99", formatCell(0.99))
	assert.Equal(t, "0", formatCell(0.0))
	assert.Equal(t, "", formatCell(nil))
}

func TestWritersSatisfyInterfaces(t *testing.T) {
	var _ ReportWriter = (*CSVWriter)(nil)
	var _ ReportWriter = (*XLSXWriter)(nil)
	var _ AppWriter = (*PostgresWriter)(nil)
}
