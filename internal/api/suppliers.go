package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/warehub/warehub/internal/domain"
	"github.com/warehub/warehub/internal/inventory"
)

func (h *Handler) listSuppliers(c echo.Context) error {
	page, limit := parsePagination(c)
	filter := domain.SupplierFilter{Search: c.QueryParam("search")}

	items, total, err := h.suppliers.List(c.Request().Context(), filter, listOpts(c, page, limit))
	if err != nil {
		return writeError(c, err, nil)
	}
	if items == nil {
		items = []domain.Supplier{}
	}
	return paged(c, items, total, page, limit)
}

func (h *Handler) getSupplier(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid supplier ID")
	}
	supplier, err := h.suppliers.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err, domain.ErrSupplierNotFound)
	}
	return c.JSON(http.StatusOK, supplier)
}

func (h *Handler) createSupplier(c echo.Context) error {
	var payload inventory.CreateSupplierInput
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "Unable to parse supplier")
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}
	supplier, err := h.suppliers.Create(c.Request().Context(), payload)
	if err != nil {
		return writeError(c, err, nil)
	}
	return c.JSON(http.StatusCreated, supplier)
}

func (h *Handler) updateSupplier(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid supplier ID")
	}
	var payload inventory.UpdateSupplierInput
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "Unable to parse supplier")
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}
	supplier, err := h.suppliers.Update(c.Request().Context(), id, payload)
	if err != nil {
		return writeError(c, err, domain.ErrSupplierNotFound)
	}
	return c.JSON(http.StatusOK, supplier)
}

func (h *Handler) deleteSupplier(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid supplier ID")
	}
	if err := h.suppliers.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, err, domain.ErrSupplierNotFound)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Supplier deleted successfully"})
}
