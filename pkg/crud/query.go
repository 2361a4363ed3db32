package crud

import (
	"net/url"
	"strconv"
)

// maxLimit caps the page size a client may request.
const maxLimit = 100

// ParseQuery reads list-query options from URL query parameters. Absent or
// malformed numbers leave pagination disabled; limit is capped at 100.
func ParseQuery(values url.Values) Query {
	q := Query{
		Search:    values.Get("search"),
		SortBy:    values.Get("sortBy"),
		SortOrder: values.Get("sortOrder"),
	}
	if page, err := strconv.Atoi(values.Get("page")); err == nil && page > 0 {
		q.Page = page
	}
	if limit, err := strconv.Atoi(values.Get("limit")); err == nil && limit > 0 {
		q.Limit = min(limit, maxLimit)
	}
	// ?page without ?limit implies a default page size.
	if q.Page > 0 && q.Limit == 0 {
		q.Limit = 10
	}
	return q.Normalize()
}
