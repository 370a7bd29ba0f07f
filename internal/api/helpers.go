package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"
	"github.com/warehub/warehub/internal/domain"
	"go.uber.org/zap"
)

// parsePagination reads page/limit query params with the API defaults.
func parsePagination(c echo.Context) (int, int) {
	page := cast.ToInt(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	limit := cast.ToInt(c.QueryParam("limit"))
	if limit < 1 || limit > 500 {
		limit = 10
	}
	return page, limit
}

// listOpts builds repository list options from the query string.
func listOpts(c echo.Context, page, limit int) domain.ListOptions {
	return domain.ListOptions{
		Page:      page,
		PageSize:  limit,
		SortBy:    strings.TrimSpace(c.QueryParam("sortBy")),
		SortOrder: strings.TrimSpace(c.QueryParam("sortOrder")),
	}
}

func parseIDParam(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func fail(c echo.Context, status int, msg string) error {
	return c.JSON(status, echo.Map{"error": msg})
}

// handleValidationError flattens an echo validator failure into the API
// error shape.
func handleValidationError(c echo.Context, err error) error {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return fail(c, http.StatusBadRequest, cast.ToString(he.Message))
	}
	return fail(c, http.StatusBadRequest, err.Error())
}

// paged writes the list envelope shared by every collection endpoint.
func paged(c echo.Context, items interface{}, total int64, page, limit int) error {
	totalPages := total / int64(limit)
	if total%int64(limit) != 0 {
		totalPages++
	}
	return c.JSON(http.StatusOK, echo.Map{
		"items":       items,
		"totalPages":  totalPages,
		"currentPage": page,
		"total":       total,
	})
}

// writeError maps a domain error onto the HTTP taxonomy. primary is the
// not-found sentinel of the resource addressed by the URL: that one maps to
// 404, while a missing referenced entity (a product inside an order, say)
// maps to 400.
func writeError(c echo.Context, err error, primary error) error {
	switch {
	case primary != nil && errors.Is(err, primary):
		return fail(c, http.StatusNotFound, err.Error())
	case domain.IsNotFound(err):
		return fail(c, http.StatusBadRequest, err.Error())
	case domain.IsValidation(err), domain.IsConflict(err):
		return fail(c, http.StatusBadRequest, err.Error())
	default:
		zap.L().Error("unexpected error", zap.String("path", c.Path()), zap.Error(err))
		return fail(c, http.StatusInternalServerError, err.Error())
	}
}
