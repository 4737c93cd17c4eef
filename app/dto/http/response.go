package http

import "time"

// ListMetadata describes a page of results: total is the post-filter count
// before pagination, returned is the length of the data slice.
type ListMetadata struct {
	Total    int               `json:"total"`
	Returned int               `json:"returned"`
	Offset   int               `json:"offset"`
	Limit    int               `json:"limit"`
	Filters  map[string]string `json:"filters"`
}

type ListResponse struct {
	Metadata ListMetadata `json:"metadata"`
	Data     interface{}  `json:"data"`
}

type UsageReport struct {
	Current        int64      `json:"current"`
	Limit          *int64     `json:"limit"`
	Remaining      *int64     `json:"remaining"`
	ValidTo        *time.Time `json:"validTo"`
	IsExpired      bool       `json:"isExpired"`
	IsLimitReached bool       `json:"isLimitReached"`
}

type UsageResponse struct {
	Usage UsageReport `json:"usage"`
}

type ContactResponse struct {
	OK bool   `json:"ok"`
	ID string `json:"id"`
}

type ContactErrorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
