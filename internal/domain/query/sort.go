package query

// Sort selects an ordering for article listings.
type Sort string

const (
	SortLatest   Sort = "latest"
	SortPopular  Sort = "popular"
	SortReadTime Sort = "read-time"
)

// ParseSort maps a raw sort value onto the enum; anything unrecognized
// (including empty) falls back to latest.
func ParseSort(s string) Sort {
	switch Sort(s) {
	case SortPopular:
		return SortPopular
	case SortReadTime:
		return SortReadTime
	default:
		return SortLatest
	}
}

// ArticleOrder returns the ORDER BY expression for the sort. Popularity and
// reading-time orderings break ties on creation time descending so paging
// stays stable.
func (s Sort) ArticleOrder() string {
	switch s {
	case SortPopular:
		return "a.views DESC, a.created_at DESC"
	case SortReadTime:
		return "a.read_time ASC, a.created_at DESC"
	default:
		return "a.created_at DESC"
	}
}
