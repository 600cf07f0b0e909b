package services

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresenterPrintsSectionsInOrder(t *testing.T) {
	r := NewReportService(newTestLogger(), 10).Generate(sampleApps())

	var buf bytes.Buffer
	require.NoError(t, NewPresenter(false).Print(&buf, r))
	out := buf.String()

	titles := []string{
		"1. Top 10 Apps by Reviews",
		"2. Top 10 Apps by Installs",
		"2. App Type Distribution",
		"3. Installs by Category",
		"4. Top 10 Paid Apps by Price",
		"5. Top 10 Paid Apps by Rating",
	}
	last := -1
	for _, title := range titles {
		pos := strings.Index(out, title)
		require.GreaterOrEqual(t, pos, 0, "missing section %q", title)
		assert.Greater(t, pos, last, "section %q out of order", title)
		last = pos
	}

	assert.Contains(t, out, "AppB")
	assert.Contains(t, out, "500000")
	assert.NotContains(t, out, "\033[", "colour disabled")
}

func TestPresenterEmptyReport(t *testing.T) {
	r := NewReportService(newTestLogger(), 10).Generate(nil)

	var buf bytes.Buffer
	require.NoError(t, NewPresenter(true).Print(&buf, r))
	assert.Equal(t, 6, strings.Count(buf.String(), "(no rows)"))
}

func TestPresenterIsDeterministic(t *testing.T) {
	r := NewReportService(newTestLogger(), 10).Generate(manyApps(30))
	p := NewPresenter(true)

	var first, second bytes.Buffer
	require.NoError(t, p.Print(&first, r))
	require.NoError(t, p.Print(&second, r))
	assert.Equal(t, first.String(), second.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestPresenterReportsWriteError(t *testing.T) {
	r := NewReportService(newTestLogger(), 10).Generate(sampleApps())
	err := NewPresenter(false).Print(failingWriter{}, r)
	assert.ErrorContains(t, err, "disk full")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd...", truncate("abcdefghij", 7))
	assert.Equal(t, "ab", truncate("abcdef", 2))
	assert.Equal(t, "Ünïc...", truncate("Ünïcödé text", 7))
}
