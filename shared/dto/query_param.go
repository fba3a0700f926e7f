package dto

import (
	"net/http"
	"slices"
	"strconv"
	"strings"

	"roomslot/shared/constant"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

type QueryParams struct {
	Page    int    `json:"page"     validate:"omitempty"`
	Limit   int    `json:"limit"    validate:"omitempty"`
	SortBy  string `json:"sort_by"  validate:"omitempty"`
	SortDir string `json:"sort_dir" validate:"omitempty,oneof=ASC DESC"`
}

// FromRequest reads page, limit, sort_by and sort_dir from the query string.
//
// SortBy ends up in ORDER BY as is, so only names listed in sortable are taken;
// anything else is dropped. Limit is capped at constant.MaxValueLimit. With
// defaultRequest set, missing page and limit fall back to the defaults.
//
//	var q dto.QueryParams
//	q.FromRequest(req, true, "created_at", "email")
func (q *QueryParams) FromRequest(r *http.Request, defaultRequest bool, sortable ...string) {
	query := r.URL.Query()

	q.Page = positive(query.Get(constant.RequestParamPage))
	q.Limit = min(positive(query.Get(constant.RequestParamLimit)), constant.MaxValueLimit)

	if sortBy := query.Get(constant.RequestParamSortBy); slices.Contains(sortable, sortBy) {
		q.SortBy = sortBy
	}

	switch dir := strings.ToUpper(query.Get(constant.RequestParamSortDir)); dir {
	case SortDirAsc, SortDirDesc:
		q.SortDir = dir
	}

	if !defaultRequest {
		return
	}

	if q.Page == 0 {
		q.Page = constant.DefaultValuePage
	}

	if q.Limit == 0 {
		q.Limit = constant.DefaultValueLimit
	}
}

// Offset is the number of rows skipped before the requested page.
func (q QueryParams) Offset() int {
	if q.Page <= 1 || q.Limit <= 0 {
		return 0
	}

	return (q.Page - 1) * q.Limit
}

// positive parses value, returning 0 for anything that is not a positive integer.
func positive(value string) int {
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return 0
	}

	return n
}
