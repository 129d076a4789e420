package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/fixware/console/internal/core/domain"
	"github.com/fixware/console/internal/core/ports"
)

// PaymentHandler exposes the admin payment listing and maintenance. New
// payments are registered through the order endpoint, not here.
type PaymentHandler struct {
	payments ports.PaymentService
}

func NewPaymentHandler(payments ports.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

func paymentID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid payment id")
	}
	return id, nil
}

// List handles GET /payments.
func (h *PaymentHandler) List(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	payments, err := h.payments.ListPayments(c.Request().Context(), sess)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, payments)
}

// Update handles PUT /payments/:id.
func (h *PaymentHandler) Update(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	id, err := paymentID(c)
	if err != nil {
		return err
	}

	var req domain.Payment
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	payment, err := h.payments.UpdatePayment(c.Request().Context(), sess, id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, payment)
}

// Delete handles DELETE /payments/:id.
func (h *PaymentHandler) Delete(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	id, err := paymentID(c)
	if err != nil {
		return err
	}
	if err := h.payments.DeletePayment(c.Request().Context(), sess, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
