package api

import (
	"net/http"

	"github.com/gocarina/gocsv"
	"github.com/labstack/echo/v4"
	"github.com/warehub/warehub/internal/domain"
	"github.com/warehub/warehub/internal/inventory"
)

func (h *Handler) listProducts(c echo.Context) error {
	page, limit := parsePagination(c)
	filter := domain.ProductFilter{Search: c.QueryParam("search")}

	items, total, err := h.products.List(c.Request().Context(), filter, listOpts(c, page, limit))
	if err != nil {
		return writeError(c, err, nil)
	}
	if items == nil {
		items = []domain.Product{}
	}
	return paged(c, items, total, page, limit)
}

func (h *Handler) getProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid product ID")
	}
	product, err := h.products.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err, domain.ErrProductNotFound)
	}
	return c.JSON(http.StatusOK, product)
}

func (h *Handler) getProductBySKU(c echo.Context) error {
	product, err := h.products.GetBySKU(c.Request().Context(), c.Param("sku"))
	if err != nil {
		return writeError(c, err, domain.ErrProductNotFound)
	}
	return c.JSON(http.StatusOK, product)
}

func (h *Handler) createProduct(c echo.Context) error {
	var payload inventory.CreateProductInput
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "Unable to parse product")
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}
	product, err := h.products.Create(c.Request().Context(), payload)
	if err != nil {
		return writeError(c, err, nil)
	}
	return c.JSON(http.StatusCreated, product)
}

func (h *Handler) updateProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid product ID")
	}
	var payload inventory.UpdateProductInput
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "Unable to parse product")
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}
	product, err := h.products.Update(c.Request().Context(), id, payload)
	if err != nil {
		return writeError(c, err, domain.ErrProductNotFound)
	}
	return c.JSON(http.StatusOK, product)
}

func (h *Handler) deleteProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid product ID")
	}
	if err := h.products.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, err, domain.ErrProductNotFound)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Product deleted successfully"})
}

type stockPayload struct {
	Operation string `json:"operation" validate:"max=16"`
	Quantity  *int   `json:"quantity" validate:"omitempty,gte=0"`
}

func (h *Handler) adjustStock(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid product ID")
	}
	var payload stockPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "Unable to parse stock update")
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}
	product, err := h.products.AdjustStock(c.Request().Context(), id, payload.Operation, payload.Quantity)
	if err != nil {
		return writeError(c, err, domain.ErrProductNotFound)
	}
	return c.JSON(http.StatusOK, product)
}

func (h *Handler) exportProducts(c echo.Context) error {
	products, err := h.products.All(c.Request().Context())
	if err != nil {
		return writeError(c, err, nil)
	}
	csv, err := gocsv.MarshalString(&products)
	if err != nil {
		return writeError(c, err, nil)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="products.csv"`)
	return c.Blob(http.StatusOK, "text/csv", []byte(csv))
}
