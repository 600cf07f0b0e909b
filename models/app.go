package models

// Column names expected in the input header.
const (
	ColApp      = "App"
	ColCategory = "Category"
	ColRating   = "Rating"
	ColReviews  = "Reviews"
	ColSize     = "Size"
	ColInstalls = "Installs"
	ColType     = "Type"
	ColPrice    = "Price"
)

// RequiredColumns lists the header fields every input file must carry.
var RequiredColumns = []string{
	ColApp, ColCategory, ColRating, ColReviews, ColSize, ColInstalls, ColType, ColPrice,
}

// RawApp holds one input row exactly as it was read from the file.
// Line is the 1-based line number in the source, header included.
type RawApp struct {
	Line     int
	Name     string
	Category string
	Rating   string
	Reviews  string
	Size     string
	Installs string
	Type     string
	Price    string
}

// App is the cleaned, normalised record every report reads from.
type App struct {
	Name     string
	Category string
	Rating   float64
	Reviews  int64
	Size     string
	Installs int64
	Type     string
	Price    float64
}

// IsPaid reports whether the app has a positive price.
func (a *App) IsPaid() bool {
	return a.Price > 0
}
