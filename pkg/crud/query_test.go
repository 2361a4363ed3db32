package crud

import (
	"net/url"
	"testing"
)

func TestParseQuery(t *testing.T) {
	t.Run("empty values disable pagination", func(t *testing.T) {
		q := ParseQuery(url.Values{})
		if q.Limit != 0 {
			t.Errorf("expected limit 0, got %d", q.Limit)
		}
		if q.Page != 1 {
			t.Errorf("expected normalized page 1, got %d", q.Page)
		}
		if q.SortOrder != "asc" {
			t.Errorf("expected default sort order asc, got %q", q.SortOrder)
		}
	})

	t.Run("reads search, sort, and pagination", func(t *testing.T) {
		q := ParseQuery(url.Values{
			"search":    {"pizza"},
			"sortBy":    {"name"},
			"sortOrder": {"desc"},
			"page":      {"3"},
			"limit":     {"5"},
		})
		if q.Search != "pizza" || q.SortBy != "name" || q.SortOrder != "desc" {
			t.Errorf("unexpected query: %+v", q)
		}
		if q.Page != 3 || q.Limit != 5 {
			t.Errorf("unexpected pagination: page=%d limit=%d", q.Page, q.Limit)
		}
		if q.Offset() != 10 {
			t.Errorf("expected offset 10, got %d", q.Offset())
		}
	})

	t.Run("malformed numbers are ignored", func(t *testing.T) {
		q := ParseQuery(url.Values{"page": {"abc"}, "limit": {"-2"}})
		if q.Limit != 0 {
			t.Errorf("expected limit 0, got %d", q.Limit)
		}
	})

	t.Run("limit is capped", func(t *testing.T) {
		q := ParseQuery(url.Values{"limit": {"5000"}})
		if q.Limit != maxLimit {
			t.Errorf("expected limit %d, got %d", maxLimit, q.Limit)
		}
	})

	t.Run("page without limit implies a default page size", func(t *testing.T) {
		q := ParseQuery(url.Values{"page": {"2"}})
		if q.Limit != 10 {
			t.Errorf("expected default limit 10, got %d", q.Limit)
		}
	})
}
