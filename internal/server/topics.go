package server

import (
	"log"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/snehankekre/forumtopics/internal/forum"
	"github.com/snehankekre/forumtopics/internal/render"
)

type SearchHandler struct {
	Client     *forum.Client
	DefaultTop int
	Logger     *log.Logger
}

func (h *SearchHandler) Register(g *echo.Group) {
	g.GET("/search", h.search)
}

// search builds a query from the caller's error metadata and returns the
// related forum topics plus a ready-to-display Markdown block.
func (h *SearchHandler) search(c echo.Context) error {
	d := forum.Descriptor{
		Type:    c.QueryParam("type"),
		Message: c.QueryParam("message"),
	}
	if d.Type == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "type is required")
	}

	top := h.DefaultTop
	if top == 0 {
		top = forum.DefaultTop
	}
	if v := c.QueryParam("top"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "top must be an integer")
		}
		top = n
	}

	opts := forum.Options{
		Criteria: c.QueryParam("criteria"),
		SortBy:   c.QueryParam("sortby"),
		Status:   c.QueryParam("status"),
		Top:      top,
	}
	query := forum.BuildQuery(d, opts)

	resp := SearchResponse{Query: query}

	topics, err := h.Client.Search(c.Request().Context(), query, top)
	if err != nil {
		// Degrade to a soft "no topics" outcome; only log the cause.
		searchID := uuid.NewString()
		h.logger().Printf("search %s (%q) failed: %v", searchID, query, err)
		resp.Message = "no topics found"
		return c.JSON(http.StatusOK, resp)
	}

	resp.Topics = topics
	if len(topics) == 0 {
		resp.Message = "no topics found"
		return c.JSON(http.StatusOK, resp)
	}

	var renderOpts []render.Option
	if c.QueryParam("solved_badge") == "true" {
		renderOpts = append(renderOpts, render.WithSolvedBadge())
	}
	resp.Markdown = render.Links(h.Client.BaseURL(), topics, renderOpts...)

	return c.JSON(http.StatusOK, resp)
}

func (h *SearchHandler) logger() *log.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return log.New(log.Writer(), "[SEARCH] ", log.LstdFlags)
}
