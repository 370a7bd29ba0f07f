package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

func (h *Handler) health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"status":    "OK",
		"message":   "Inventory Management API is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
