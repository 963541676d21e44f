package query

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Page is a 1-based page request with a bounded size.
type Page struct {
	Number int
	Size   int
}

// NewPage clamps the requested page and size into valid bounds: page numbers
// start at 1, size defaults to DefaultPageSize and never exceeds MaxPageSize.
func NewPage(number, size int) Page {
	if number < 1 {
		number = 1
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return Page{Number: number, Size: size}
}

func (p Page) Limit() int  { return p.Size }
func (p Page) Offset() int { return (p.Number - 1) * p.Size }
