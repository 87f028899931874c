package settings

import "time"

// Well-known setting categories.
const (
	CategoryFees = "FEES"
)

// Setting is one configurable key/value pair grouped by category.
type Setting struct {
	ID        string
	Category  string
	Key       string
	Value     string
	UpdatedAt time.Time
}
