package models

// CategoryInstalls is one row of the installs-by-category report.
type CategoryInstalls struct {
	Category string
	Installs int64
}

// TypeCount is one row of the Free/Paid distribution.
type TypeCount struct {
	Type  string
	Count int
}

// Report bundles every table derived from a cleaned dataset.
type Report struct {
	TotalApps          int
	TopN               int
	TopByReviews       []*App
	TopByInstalls      []*App
	TypeDistribution   []TypeCount
	InstallsByCategory []CategoryInstalls
	TopPaidByPrice     []*App
	TopPaidByRating    []*App
}
