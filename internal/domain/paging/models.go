// paging holds the list-query models shared by every resource: page/size
// normalisation and the page-of-results envelope.
package paging

const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Query is a list request as received from a caller, before normalisation.
//
// Sort carries the raw wire sort key; each resource resolves it against its
// own closed set of orderings and silently falls back to its default ordering
// for keys it does not recognise.
type Query struct {
	Page     int
	PageSize int
	Sort     string
	Search   string
}

// Normalized clamps the page and page size into their allowed ranges: a page
// below 1 becomes 1, a non-positive page size becomes the default, and a page
// size above the maximum is clamped down to it.
func (q Query) Normalized() Query {
	if q.Page < DefaultPage {
		q.Page = DefaultPage
	}
	if q.PageSize <= 0 {
		q.PageSize = DefaultPageSize
	}
	if q.PageSize > MaxPageSize {
		q.PageSize = MaxPageSize
	}
	return q
}

// Offset returns the number of records to skip for this page. Only meaningful
// on a normalised Query.
func (q Query) Offset() int {
	return (q.Page - 1) * q.PageSize
}

// Result is one page of matching records. Total is the count of all records
// matching the query's filters, independent of pagination, so a page past the
// end has empty Items but still reports the true Total.
type Result[T any] struct {
	Items    []T
	Page     int
	PageSize int
	Total    int
}

// Window clips the half-open interval [offset, offset+size) to a collection
// of length total, returning slice bounds that are always in range.
func Window(offset, size, total int) (int, int) {
	if offset > total {
		offset = total
	}
	end := offset + size
	if end > total {
		end = total
	}
	return offset, end
}
