package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/fixware/console/internal/core/billing"
	"github.com/fixware/console/internal/core/domain"
	"github.com/fixware/console/internal/core/paging"
	"github.com/fixware/console/internal/core/ports"
)

// DashboardHandler serves the console's main screen: the paginated order
// listing with payments overlaid, plus the financial summary.
type DashboardHandler struct {
	orders ports.OrderService
	log    zerolog.Logger
}

func NewDashboardHandler(orders ports.OrderService, log zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{orders: orders, log: log}
}

// orderView is the order row as the dashboard displays it. Totals are always
// recomputed from the items; the status label is the pt-BR display form.
type orderView struct {
	ID                 int64              `json:"id"`
	ClientName         string             `json:"clientName"`
	ServiceDescription string             `json:"serviceDescription"`
	Observation        string             `json:"observation,omitempty"`
	Status             domain.OrderStatus `json:"status"`
	StatusLabel        string             `json:"statusLabel"`
	DeliveryDate       string             `json:"deliveryDate,omitempty"`
	PaymentDate        string             `json:"paymentDate,omitempty"`
	Total              float64            `json:"total"`
	TotalQuantity      int                `json:"totalQuantity"`
	Items              []domain.OrderItem `json:"items"`
}

func viewOf(o domain.Order) orderView {
	return orderView{
		ID:                 o.ID,
		ClientName:         o.User.FullName(),
		ServiceDescription: o.ServiceDescription,
		Observation:        o.Observation,
		Status:             o.Status,
		StatusLabel:        billing.FormatStatus(o.Status),
		DeliveryDate:       o.DeliveryDate,
		PaymentDate:        o.PaymentDate,
		Total:              billing.OrderTotal(o.Items),
		TotalQuantity:      o.TotalQuantity(),
		Items:              o.Items,
	}
}

type dashboardResponse struct {
	Orders        []orderView     `json:"orders"`
	Pager         paging.Pager    `json:"pager"`
	TotalElements int64           `json:"totalElements"`
	Summary       billing.Summary `json:"summary"`
	// SummaryAvailable is false when the summary fetch failed and the zero
	// summary above is a placeholder, not real totals.
	SummaryAvailable bool `json:"summaryAvailable"`
}

// Index handles GET /dashboard.
//
// Query parameters mutate the session's pager before the load: size and sort
// changes reset the page to 0, page jumps are bounds-checked against the last
// known page count. q and status filter the returned page locally.
func (h *DashboardHandler) Index(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}

	if raw := c.QueryParam("size"); raw != "" {
		if size, err := strconv.Atoi(raw); err == nil {
			sess.Pager.SetSize(size)
		}
	}
	if sort := c.QueryParam("sort"); sort != "" {
		sess.Pager.SetSort(sort)
	}
	if raw := c.QueryParam("page"); raw != "" {
		if page, err := strconv.Atoi(raw); err == nil {
			sess.Pager.JumpTo(page)
		}
	}

	result, err := h.orders.ListOrders(c.Request().Context(), sess)
	if err != nil {
		return err
	}

	// A failed summary degrades to zero totals instead of failing the whole
	// screen; an expired session still propagates so the teardown runs.
	summary := &billing.Summary{}
	summaryAvailable := true
	if s, err := h.orders.FinancialSummary(c.Request().Context(), sess); err != nil {
		if errors.Is(err, domain.ErrSessionExpired) {
			return err
		}
		h.log.Warn().Err(err).Msg("financial summary unavailable")
		summaryAvailable = false
	} else {
		summary = s
	}

	orders := filterOrders(result.Orders, c.QueryParam("q"), c.QueryParam("status"))
	views := make([]orderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, viewOf(o))
	}

	return c.JSON(http.StatusOK, dashboardResponse{
		Orders:           views,
		Pager:            result.Pager,
		TotalElements:    result.TotalElements,
		Summary:          *summary,
		SummaryAvailable: summaryAvailable,
	})
}

// Summary handles GET /dashboard/summary, the financial totals on their own.
func (h *DashboardHandler) Summary(c echo.Context) error {
	sess, err := ctxSession(c)
	if err != nil {
		return err
	}
	summary, err := h.orders.FinancialSummary(c.Request().Context(), sess)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summary)
}

// filterOrders narrows the visible page by client-name substring and status.
// The status filter accepts both the API value and the display label.
func filterOrders(orders []domain.Order, q, status string) []domain.Order {
	if q == "" && status == "" {
		return orders
	}
	want := billing.ParseStatus(status)
	q = strings.ToLower(q)

	out := make([]domain.Order, 0, len(orders))
	for _, o := range orders {
		if q != "" && !strings.Contains(strings.ToLower(o.User.FullName()), q) {
			continue
		}
		if status != "" && o.Status != want {
			continue
		}
		out = append(out, o)
	}
	return out
}
