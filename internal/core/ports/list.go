package ports

// Default page window applied when the client sends no pagination params.
const (
	DefaultPage  = 1
	DefaultLimit = 25
)

// ListQuery carries the query-string options every collection read accepts:
// field projection, sort order and page/limit pagination.
type ListQuery struct {
	// Select lists the fields to project; empty means every field.
	Select []string
	// Sort lists sort keys in priority order; a leading '-' marks a key as
	// descending. Empty falls back to newest-first.
	Sort []string
	// Page is 1-based.
	Page  int
	Limit int
}

// Normalize floors page and limit to their defaults so repositories never see
// a zero or negative window.
func (q ListQuery) Normalize() ListQuery {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.Limit < 1 {
		q.Limit = DefaultLimit
	}
	return q
}

// Skip returns the number of documents preceding the requested page.
func (q ListQuery) Skip() int {
	return (q.Page - 1) * q.Limit
}
