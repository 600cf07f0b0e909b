package services

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"playstore-insights/models"
	"playstore-insights/utils"
)

var (
	errNegative  = errors.New("value is negative")
	errNotFinite = errors.New("value is not finite")

	installFormatting = strings.NewReplacer("+", "", ",", "")
)

// Cleaner transforms RawApps into clean, validated Apps.
type Cleaner struct {
	logger                 *utils.Logger
	stripInstallFormatting bool
}

// NewCleaner creates a Cleaner with the given logger.
func NewCleaner(logger *utils.Logger) *Cleaner {
	return &Cleaner{logger: logger}
}

// WithInstallFormattingStripped makes the Installs cast drop "+" and ","
// first, so values such as "10,000+" become 10000.
func (c *Cleaner) WithInstallFormattingStripped(strip bool) *Cleaner {
	c.stripInstallFormatting = strip
	return c
}

// Clean drops rows with a missing required field and normalises the rest.
// The first field that cannot be converted aborts the whole run.
func (c *Cleaner) Clean(raw []*models.RawApp) ([]*models.App, error) {
	result := make([]*models.App, 0, len(raw))

	for _, r := range raw {
		if col := missingField(r); col != "" {
			c.logger.Debug("[cleaner] Dropping line %d (%q): missing %s", r.Line, r.Name, col)
			continue
		}

		app, err := c.normalise(r)
		if err != nil {
			return nil, err
		}
		result = append(result, app)
	}

	c.logger.Info("[cleaner] Cleaned %d → %d apps (dropped %d)",
		len(raw), len(result), len(raw)-len(result))
	return result, nil
}

func (c *Cleaner) normalise(r *models.RawApp) (*models.App, error) {
	rating, err := parseRating(r.Rating)
	if err != nil {
		return nil, &ParseError{Line: r.Line, Column: models.ColRating, Value: r.Rating, Err: err}
	}

	reviews, err := parseCount(r.Reviews)
	if err != nil {
		return nil, &ParseError{Line: r.Line, Column: models.ColReviews, Value: r.Reviews, Err: err}
	}

	installs, err := c.parseInstalls(r.Installs)
	if err != nil {
		return nil, &ParseError{Line: r.Line, Column: models.ColInstalls, Value: r.Installs, Err: err}
	}

	price, err := parsePrice(r.Price)
	if err != nil {
		return nil, &ParseError{Line: r.Line, Column: models.ColPrice, Value: r.Price, Err: err}
	}

	return &models.App{
		Name:     strings.TrimSpace(r.Name),
		Category: strings.TrimSpace(r.Category),
		Rating:   rating,
		Reviews:  reviews,
		Size:     strings.TrimSpace(r.Size),
		Installs: installs,
		Type:     strings.TrimSpace(r.Type),
		Price:    price,
	}, nil
}

// parseInstalls casts the install count to an integer. Formatting characters
// are only removed when the cleaner was told to strip them.
func (c *Cleaner) parseInstalls(raw string) (int64, error) {
	s := strings.TrimSpace(raw)
	if c.stripInstallFormatting {
		s = installFormatting.Replace(s)
	}
	return parseCount(s)
}

// missingField returns the name of the first required field that is empty,
// or "" when the row is complete. NaN only counts as missing in the numeric
// columns; in text columns it is an ordinary value.
func missingField(r *models.RawApp) string {
	fields := []struct {
		col     string
		val     string
		numeric bool
	}{
		{models.ColApp, r.Name, false},
		{models.ColCategory, r.Category, false},
		{models.ColRating, r.Rating, true},
		{models.ColReviews, r.Reviews, true},
		{models.ColSize, r.Size, false},
		{models.ColInstalls, r.Installs, true},
		{models.ColType, r.Type, false},
		{models.ColPrice, r.Price, false},
	}
	for _, f := range fields {
		if isMissing(f.val, f.numeric) {
			return f.col
		}
	}
	return ""
}

func isMissing(s string, numeric bool) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return true
	}
	return numeric && strings.EqualFold(s, "nan")
}

func parseRating(raw string) (float64, error) {
	return parseFloat(strings.TrimSpace(raw))
}

// parseCount reads a non-negative integer.
func parseCount(raw string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, errNegative
	}
	return n, nil
}

// parsePrice discards the first character (the currency symbol) and parses
// the remainder. A bare single character such as "0" leaves nothing to parse
// and is read as a zero price.
// Examples:
//
//	"$4.99" → 4.99
//	"0"     → 0
//	"$"     → 0
func parsePrice(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	_, size := utf8.DecodeRuneInString(s)
	rest := strings.TrimSpace(s[size:])
	if rest == "" {
		return 0, nil
	}

	price, err := parseFloat(rest)
	if err != nil {
		return 0, err
	}
	if price < 0 {
		return 0, errNegative
	}
	return price, nil
}

func parseFloat(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errNotFinite
	}
	return f, nil
}
