package db

import "github.com/bizradar/planfinder/internal/domain/search/filter"

// PageQuery is the input for a sorted, paginated FT search.
type PageQuery struct {
	IndexName string
	Filters   filter.Expression

	// SortField is the index field to sort by; empty means backend-native
	// (relevance) order, in which case SortAsc is ignored.
	SortField string
	SortAsc   bool

	Offset int
	Limit  int

	ReturnFields []string
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search.
type SearchEntry struct {
	Key    string
	Fields map[string]string
}
