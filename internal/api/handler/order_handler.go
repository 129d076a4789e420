package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/fixware/console/internal/core/domain"
	"github.com/fixware/console/internal/core/ports"
)

// OrderHandler exposes order CRUD, the status/delivery shortcuts and the
// payment registration endpoint.
type OrderHandler struct {
	orders ports.OrderService
}

func NewOrderHandler(orders ports.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

type orderItemRequest struct {
	ID          int64          `json:"id,omitempty"`
	Product     domain.Product `json:"product"`
	Quantity    int            `json:"quantity" validate:"gt=0"`
	Price       float64        `json:"price" validate:"gte=0"`
	Description string         `json:"description"`
	Service     string         `json:"service"`
	Observation string         `json:"observation"`
}

type orderRequest struct {
	ServiceDescription string             `json:"serviceDescription" validate:"required"`
	Observation        string             `json:"observation"`
	DeliveryDate       string             `json:"deliveryDate"`
	Status             domain.OrderStatus `json:"status" validate:"required,oneof=PENDING READY PAID"`
	User               domain.User        `json:"user"`
	Items              []orderItemRequest `json:"items" validate:"required,min=1,dive"`
}

type statusRequest struct {
	Status      domain.OrderStatus `json:"status" validate:"required,oneof=PENDING READY PAID"`
	Observation string             `json:"observation"`
}

type deliveryRequest struct {
	DeliveryDate string `json:"deliveryDate" validate:"required"`
}

type paymentRequest struct {
	Moment      string               `json:"moment" validate:"required"`
	Status      domain.PaymentStatus `json:"status" validate:"required,oneof=PAID CANCELED"`
	Observation string               `json:"observation"`
}

type paymentOutcomeResponse struct {
	Payment     domain.Payment `json:"payment"`
	Order       orderView      `json:"order"`
	OrderSynced bool           `json:"orderSynced"`
	SyncError   string         `json:"syncError,omitempty"`
}

func (r orderRequest) draft() ports.OrderDraft {
	items := make([]domain.OrderItem, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, domain.OrderItem{
			ID:          it.ID,
			Product:     it.Product,
			Quantity:    it.Quantity,
			Price:       it.Price,
			Description: it.Description,
			Service:     it.Service,
			Observation: it.Observation,
		})
	}
	return ports.OrderDraft{
		ServiceDescription: r.ServiceDescription,
		Observation:        r.Observation,
		DeliveryDate:       r.DeliveryDate,
		Status:             r.Status,
		User:               r.User,
		Items:              items,
	}
}

func orderID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid order id")
	}
	return id, nil
}

// Get handles GET /orders/:id.
func (h *OrderHandler) Get(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	id, err := orderID(c)
	if err != nil {
		return err
	}

	order, err := h.orders.GetOrder(c.Request().Context(), sess, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, viewOf(*order))
}

// Create handles POST /orders.
func (h *OrderHandler) Create(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req orderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	order, err := h.orders.CreateOrder(c.Request().Context(), sess, req.draft())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, viewOf(*order))
}

// Update handles PUT /orders/:id.
func (h *OrderHandler) Update(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	id, err := orderID(c)
	if err != nil {
		return err
	}

	var req orderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	order, err := h.orders.UpdateOrder(c.Request().Context(), sess, id, req.draft())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, viewOf(*order))
}

// Delete handles DELETE /orders/:id.
func (h *OrderHandler) Delete(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	id, err := orderID(c)
	if err != nil {
		return err
	}

	if err := h.orders.DeleteOrder(c.Request().Context(), sess, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// ChangeStatus handles PUT /orders/:id/status.
func (h *OrderHandler) ChangeStatus(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	id, err := orderID(c)
	if err != nil {
		return err
	}

	var req statusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	order, err := h.orders.ChangeStatus(c.Request().Context(), sess, id, req.Status, req.Observation)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, viewOf(*order))
}

// ScheduleDelivery handles PUT /orders/:id/delivery.
func (h *OrderHandler) ScheduleDelivery(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	id, err := orderID(c)
	if err != nil {
		return err
	}

	var req deliveryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	order, err := h.orders.ScheduleDelivery(c.Request().Context(), sess, id, req.DeliveryDate)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, viewOf(*order))
}

// RegisterPayment handles POST /orders/:id/payment.
//
// The response always reports whether the follow-up order update landed; a
// payment that was recorded but whose order could not be synced comes back
// with orderSynced=false and the failure reason.
func (h *OrderHandler) RegisterPayment(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	id, err := orderID(c)
	if err != nil {
		return err
	}

	var req paymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	outcome, err := h.orders.RegisterPayment(c.Request().Context(), sess, id, ports.PaymentInput{
		Moment:      req.Moment,
		Status:      req.Status,
		Observation: req.Observation,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, paymentOutcomeResponse{
		Payment:     outcome.Payment,
		Order:       viewOf(outcome.Order),
		OrderSynced: outcome.OrderSynced,
		SyncError:   outcome.SyncError,
	})
}
