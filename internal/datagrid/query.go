package datagrid

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Request carries grid view state decoded from list-endpoint query params:
// page, per_page, search, sort, order and filter.<column>=v1,v2 pairs.
type Request struct {
	Page     int
	PerPage  int
	Search   string
	Sort     string
	Desc     bool
	Filters  map[string][]string
	HasPage  bool
	HasQuery bool
}

// ParseRequest reads grid params from a request. HasQuery is false when none
// are present, in which case list handlers fall back to the plain array
// response.
func ParseRequest(c *fiber.Ctx) Request {
	req := Request{
		Page:    c.QueryInt("page", 0),
		PerPage: c.QueryInt("per_page", 15),
		Search:  c.Query("search"),
		Sort:    c.Query("sort"),
		Desc:    strings.EqualFold(c.Query("order"), "desc"),
		Filters: make(map[string][]string),
	}
	if req.Page < 0 {
		req.Page = 0
	}
	if req.PerPage <= 0 {
		req.PerPage = 15
	}

	c.Context().QueryArgs().VisitAll(func(key, value []byte) {
		k := string(key)
		if !strings.HasPrefix(k, "filter.") {
			return
		}
		column := strings.TrimPrefix(k, "filter.")
		if column == "" {
			return
		}
		req.Filters[column] = strings.Split(string(value), ",")
	})

	req.HasPage = len(c.Request().URI().QueryArgs().Peek("page")) > 0
	req.HasQuery = req.HasPage || req.Search != "" || req.Sort != "" || len(req.Filters) > 0
	return req
}

// Response is the grid-shaped list payload.
type Response[T any] struct {
	Items     []T `json:"items"`
	Total     int `json:"total"`
	Page      int `json:"page"`
	PageCount int `json:"page_count"`
}

// Window applies a Request to a grid and slices the visible page.
func Window[T any](g *Grid[T], req Request) Response[T] {
	g.SetGlobalFilter(req.Search)
	if req.Sort != "" {
		g.SetSort(req.Sort, req.Desc)
	}
	for column, values := range req.Filters {
		col, ok := g.column(column)
		if !ok || col.Filter == nil {
			continue
		}
		switch col.Filter.Kind {
		case FilterIncludes:
			g.SetColumnFilter(column, values)
		case FilterEquals:
			g.SetColumnFilter(column, values[0])
		case FilterBool:
			g.SetColumnFilter(column, values[0] == "true")
		}
	}
	g.SetPageSize(req.PerPage)
	g.SetPage(req.Page)

	return Response[T]{
		Items:     g.VisibleRows(),
		Total:     g.MatchedCount(),
		Page:      g.Page().Index,
		PageCount: g.PageCount(),
	}
}
