package common

import (
	"github.com/tasklink/tasklink/internal/domain/paging"
)

// ListParams are the query string parameters common to every listing
// endpoint. Out-of-range values are not errors; they get clamped downstream.
type ListParams struct {
	Page     int    `form:"page"`
	PageSize int    `form:"pageSize"`
	Sort     string `form:"sort"`
	Search   string `form:"search"`
}

func (p ListParams) ToDomainQuery() paging.Query {
	return paging.Query{
		Page:     p.Page,
		PageSize: p.PageSize,
		Sort:     p.Sort,
		Search:   p.Search,
	}
}

// Page is one page of API models plus the pagination envelope
type Page[T any] struct {
	Items    []T `json:"items"`
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
	Total    int `json:"total"`
}

// PageOf converts a domain result page into an API page
func PageOf[D any, A any](result *paging.Result[D], convert func(*D) A) Page[A] {
	items := make([]A, 0, len(result.Items))
	for i := range result.Items {
		items = append(items, convert(&result.Items[i]))
	}
	return Page[A]{
		Items:    items,
		Page:     result.Page,
		PageSize: result.PageSize,
		Total:    result.Total,
	}
}
