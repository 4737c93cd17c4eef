package http

import (
	"errors"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

// ListRequest carries the pagination params shared by the listing endpoints.
// Limit and Offset arrive as raw query strings; non-numeric values parse to
// zero and the query engine substitutes its defaults.
type ListRequest struct {
	Limit  string
	Offset string
}

func (r *ListRequest) LimitValue() int {
	n, err := strconv.Atoi(r.Limit)
	if err != nil {
		return 0
	}
	return n
}

func (r *ListRequest) OffsetValue() int {
	n, err := strconv.Atoi(r.Offset)
	if err != nil {
		return 0
	}
	return n
}

type WorkshopListRequest struct {
	ListRequest
	Search  string
	City    string
	ZipCode string
	Concept string
}

func NewWorkshopListRequestFromContext(ctx echo.Context) *WorkshopListRequest {
	return &WorkshopListRequest{
		ListRequest: ListRequest{
			Limit:  ctx.QueryParam("limit"),
			Offset: ctx.QueryParam("offset"),
		},
		Search:  ctx.QueryParam("search"),
		City:    ctx.QueryParam("city"),
		ZipCode: ctx.QueryParam("zipCode"),
		Concept: ctx.QueryParam("concept"),
	}
}

// Filters returns the non-empty filter params for the response metadata.
func (r *WorkshopListRequest) Filters() map[string]string {
	filters := map[string]string{}
	addFilter(filters, "search", r.Search)
	addFilter(filters, "city", r.City)
	addFilter(filters, "zipCode", r.ZipCode)
	addFilter(filters, "concept", r.Concept)
	return filters
}

type ManagementChangeListRequest struct {
	ListRequest
	Search   string
	DateFrom string
	DateTo   string
}

func NewManagementChangeListRequestFromContext(ctx echo.Context) *ManagementChangeListRequest {
	return &ManagementChangeListRequest{
		ListRequest: ListRequest{
			Limit:  ctx.QueryParam("limit"),
			Offset: ctx.QueryParam("offset"),
		},
		Search:   ctx.QueryParam("search"),
		DateFrom: ctx.QueryParam("dateFrom"),
		DateTo:   ctx.QueryParam("dateTo"),
	}
}

func (r *ManagementChangeListRequest) Filters() map[string]string {
	filters := map[string]string{}
	addFilter(filters, "search", r.Search)
	addFilter(filters, "dateFrom", r.DateFrom)
	addFilter(filters, "dateTo", r.DateTo)
	return filters
}

func addFilter(filters map[string]string, name, value string) {
	if value != "" {
		filters[name] = value
	}
}

type ContactRequest struct {
	Name    string `json:"name"`
	Company string `json:"company"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

func NewContactRequestFromContext(ctx echo.Context) (*ContactRequest, error) {
	var body ContactRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}

	return &body, nil
}

func (r *ContactRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" || strings.TrimSpace(r.Email) == "" {
		return errors.New("name and email are required")
	}

	return nil
}
