package filters

// Sort options accepted from the store and admin query strings.
const (
	SortByName   = "name"
	SortByRating = "rating"
	SortByDate   = "date"
)

// Catalog carries the browse parameters for a movie listing.
type Catalog struct {
	Search string
	Genre  string
	Sort   string
}

// SortKey maps the requested sort to a document field and direction.
// Name sorts ascending, rating and date descending, matching the store UI.
// An unknown or empty sort means no explicit ordering.
func (f Catalog) SortKey() (field string, descending bool) {
	switch f.Sort {
	case SortByName:
		return "name", false
	case SortByRating:
		return "rating", true
	case SortByDate:
		return "date", true
	}
	return "", false
}
