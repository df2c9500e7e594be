package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	defaultLimit  = 10
	defaultPage   = 1
	maxQueryLimit = 100
)

type ListUserGoldRequest struct {
	Limit int `form:"limit"`
	Page  int `form:"page"`
}

func (r ListUserGoldRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Limit, validation.Min(0), validation.Max(maxQueryLimit)),
		validation.Field(&r.Page, validation.Min(0)),
	)
}

// Normalize fills in the pagination defaults (limit=10, page=1).
func (r *ListUserGoldRequest) Normalize() {
	if r.Limit <= 0 {
		r.Limit = defaultLimit
	}
	if r.Page <= 0 {
		r.Page = defaultPage
	}
}

// GoldQueryResult is the page envelope for ledger listings.
type GoldQueryResult struct {
	Results      []*UserGold `json:"results"`
	Page         int         `json:"page"`
	Limit        int         `json:"limit"`
	TotalPages   int         `json:"totalPages"`
	TotalResults int         `json:"totalResults"`
}

// NewGoldQueryResult computes totalPages = ceil(total/limit).
func NewGoldQueryResult(results []*UserGold, page, limit, total int) *GoldQueryResult {
	if results == nil {
		results = []*UserGold{}
	}

	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}

	return &GoldQueryResult{
		Results:      results,
		Page:         page,
		Limit:        limit,
		TotalPages:   totalPages,
		TotalResults: total,
	}
}
