package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"
	"github.com/warehub/warehub/internal/domain"
	"github.com/warehub/warehub/internal/inventory"
)

// Identifiers travel as JSON strings, so order payloads bind them as
// strings and convert before hitting the service.
type orderItemPayload struct {
	ProductID string   `json:"productId" validate:"max=32"`
	Qty       *int     `json:"qty" validate:"omitempty,min=1"`
	Price     *float64 `json:"price" validate:"omitempty,gte=0"`
}

type createOrderPayload struct {
	Items      []orderItemPayload `json:"items" validate:"omitempty,dive"`
	SupplierID string             `json:"supplierId" validate:"max=32"`
}

type updateOrderPayload struct {
	Items      []orderItemPayload `json:"items" validate:"omitempty,dive"`
	SupplierID *string            `json:"supplierId" validate:"omitempty,max=32"`
	Status     *string            `json:"status" validate:"omitempty,max=32"`
}

type statusPayload struct {
	Status string `json:"status" validate:"max=32"`
}

func toItemInputs(items []orderItemPayload) []inventory.OrderItemInput {
	if items == nil {
		return nil
	}
	out := make([]inventory.OrderItemInput, 0, len(items))
	for _, item := range items {
		out = append(out, inventory.OrderItemInput{
			ProductID: cast.ToInt64(item.ProductID),
			Qty:       item.Qty,
			Price:     item.Price,
		})
	}
	return out
}

func (h *Handler) listOrders(c echo.Context) error {
	page, limit := parsePagination(c)
	filter := domain.OrderFilter{
		Status:     domain.OrderStatus(c.QueryParam("status")),
		SupplierID: cast.ToInt64(c.QueryParam("supplierId")),
	}

	items, total, err := h.orders.List(c.Request().Context(), filter, listOpts(c, page, limit))
	if err != nil {
		return writeError(c, err, nil)
	}
	if items == nil {
		items = []inventory.OrderView{}
	}
	return paged(c, items, total, page, limit)
}

func (h *Handler) getOrder(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid order ID")
	}
	order, err := h.orders.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err, domain.ErrOrderNotFound)
	}
	return c.JSON(http.StatusOK, order)
}

func (h *Handler) createOrder(c echo.Context) error {
	var payload createOrderPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "Unable to parse order")
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}
	order, err := h.orders.Create(c.Request().Context(), inventory.CreateOrderInput{
		Items:      toItemInputs(payload.Items),
		SupplierID: cast.ToInt64(payload.SupplierID),
	})
	if err != nil {
		return writeError(c, err, nil)
	}
	return c.JSON(http.StatusCreated, order)
}

func (h *Handler) updateOrder(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid order ID")
	}
	var payload updateOrderPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "Unable to parse order")
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	in := inventory.UpdateOrderInput{
		Items:  toItemInputs(payload.Items),
		Status: payload.Status,
	}
	if payload.SupplierID != nil {
		supplierID := cast.ToInt64(*payload.SupplierID)
		in.SupplierID = &supplierID
	}

	order, err := h.orders.Update(c.Request().Context(), id, in)
	if err != nil {
		return writeError(c, err, domain.ErrOrderNotFound)
	}
	return c.JSON(http.StatusOK, order)
}

func (h *Handler) deleteOrder(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid order ID")
	}
	if err := h.orders.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, err, domain.ErrOrderNotFound)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Order deleted successfully"})
}

func (h *Handler) updateOrderStatus(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid order ID")
	}
	var payload statusPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "Unable to parse status")
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}
	order, err := h.orders.UpdateStatus(c.Request().Context(), id, payload.Status)
	if err != nil {
		return writeError(c, err, domain.ErrOrderNotFound)
	}
	return c.JSON(http.StatusOK, order)
}

func (h *Handler) processOrder(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "Invalid order ID")
	}
	if err := h.orders.Process(c.Request().Context(), id); err != nil {
		return writeError(c, err, domain.ErrOrderNotFound)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Order processed successfully. Stock updated."})
}
