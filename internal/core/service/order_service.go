package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/fixware/console/internal/api/metrics"
	"github.com/fixware/console/internal/core/billing"
	"github.com/fixware/console/internal/core/domain"
	"github.com/fixware/console/internal/core/policy"
	"github.com/fixware/console/internal/core/ports"
)

// summaryFetchSize is the page size used to pull the full order set for the
// financial summary in one unpaginated call.
const summaryFetchSize = 9999

// OrderService implements the dashboard order use cases on top of the
// backend gateways.
type OrderService struct {
	orders   ports.OrderGateway
	payments ports.PaymentGateway
	sessions ports.SessionStore
	log      zerolog.Logger
}

func NewOrderService(orders ports.OrderGateway, payments ports.PaymentGateway, sessions ports.SessionStore, log zerolog.Logger) *OrderService {
	return &OrderService{orders: orders, payments: payments, sessions: sessions, log: log}
}

// loadPage fetches one order page scoped by the session user's account
// kind. Admins read the unscoped full listing; clients and standard users
// are always scoped to their own ID, including any unrecognized role
// combination, which deliberately falls back to the scoped path.
func (s *OrderService) loadPage(ctx context.Context, sess *ports.Session, q ports.ListQuery) (*ports.OrderPage, error) {
	switch policy.KindOf(sess.User) {
	case policy.KindAdmin:
		return s.orders.ListAll(ctx, sess.Token, q)
	case policy.KindClient, policy.KindStandard:
		q.UserID = sess.User.ID
		return s.orders.List(ctx, sess.Token, q)
	default:
		q.UserID = sess.User.ID
		return s.orders.List(ctx, sess.Token, q)
	}
}

// overlayPayments fetches the payment list and applies it to the given
// orders. A failed payment fetch is tolerated (orders render without the
// overlay) unless the failure is an expired session, which must propagate.
func (s *OrderService) overlayPayments(ctx context.Context, sess *ports.Session, orders []domain.Order) ([]domain.Order, error) {
	payments, err := s.payments.List(ctx, sess.Token)
	if err != nil {
		if errors.Is(err, domain.ErrSessionExpired) {
			return nil, err
		}
		s.log.Warn().Err(err).Msg("payment overlay unavailable, rendering orders as-is")
		payments = nil
	}
	return billing.ApplyPayments(orders, payments), nil
}

func (s *OrderService) ListOrders(ctx context.Context, sess *ports.Session) (*ports.OrderListResult, error) {
	page, err := s.loadPage(ctx, sess, ports.ListQuery{
		Sort: sess.Pager.Sort,
		Size: sess.Pager.Size,
		Page: sess.Pager.Page,
	})
	if err != nil {
		// A failed page load reports an empty list and zero totals rather
		// than preserving stale data.
		sess.Pager.Reload(0)
		s.persistPager(ctx, sess)
		return nil, err
	}

	orders, err := s.overlayPayments(ctx, sess, page.Content)
	if err != nil {
		return nil, err
	}

	sess.Pager.Reload(page.TotalPages)
	s.persistPager(ctx, sess)

	return &ports.OrderListResult{
		Orders:        orders,
		Pager:         sess.Pager,
		TotalElements: page.TotalElements,
	}, nil
}

// FinancialSummary aggregates over the full order set visible to the
// session user. This is a second, unsynchronized snapshot: it may diverge
// from the page the dashboard is currently showing.
func (s *OrderService) FinancialSummary(ctx context.Context, sess *ports.Session) (*billing.Summary, error) {
	page, err := s.loadPage(ctx, sess, ports.ListQuery{Size: summaryFetchSize})
	if err != nil {
		return nil, err
	}

	orders, err := s.overlayPayments(ctx, sess, page.Content)
	if err != nil {
		return nil, err
	}

	summary := billing.Summarize(orders)
	return &summary, nil
}

func (s *OrderService) GetOrder(ctx context.Context, sess *ports.Session, id int64) (*domain.Order, error) {
	return s.orders.Get(ctx, sess.Token, id)
}

func (s *OrderService) CreateOrder(ctx context.Context, sess *ports.Session, draft ports.OrderDraft) (*domain.Order, error) {
	created, err := s.orders.Create(ctx, sess.Token, buildWrite(draft))
	if err != nil {
		return nil, err
	}
	s.log.Info().Int64("order_id", created.ID).Int64("user_id", draft.User.ID).Msg("order created")
	return created, nil
}

func (s *OrderService) UpdateOrder(ctx context.Context, sess *ports.Session, id int64, draft ports.OrderDraft) (*domain.Order, error) {
	updated, err := s.orders.Update(ctx, sess.Token, id, buildWrite(draft))
	if err != nil {
		return nil, err
	}
	s.log.Info().Int64("order_id", id).Msg("order updated")
	return updated, nil
}

func (s *OrderService) DeleteOrder(ctx context.Context, sess *ports.Session, id int64) error {
	if err := s.orders.Delete(ctx, sess.Token, id); err != nil {
		return err
	}
	s.log.Info().Int64("order_id", id).Msg("order deleted")
	return nil
}

// ChangeStatus rewrites the order with a new status, keeping everything
// else and recomputing the totals from current items.
func (s *OrderService) ChangeStatus(ctx context.Context, sess *ports.Session, id int64, status domain.OrderStatus, observation string) (*domain.Order, error) {
	order, err := s.orders.Get(ctx, sess.Token, id)
	if err != nil {
		return nil, err
	}

	draft := draftOf(*order)
	draft.Status = status
	if observation != "" {
		draft.Observation = observation
	}
	return s.UpdateOrder(ctx, sess, id, draft)
}

// ScheduleDelivery rewrites the order with a delivery date.
func (s *OrderService) ScheduleDelivery(ctx context.Context, sess *ports.Session, id int64, deliveryDate string) (*domain.Order, error) {
	order, err := s.orders.Get(ctx, sess.Token, id)
	if err != nil {
		return nil, err
	}

	draft := draftOf(*order)
	draft.DeliveryDate = deliveryDate
	return s.UpdateOrder(ctx, sess, id, draft)
}

// RegisterPayment performs the dual write: the payment record is created
// first, then — only when the payment is PAID — the order is rewritten as
// PAID with freshly computed totals. There is no compensating transaction:
// when the second write fails the outcome reports the divergence and the
// caller decides whether to show an optimistic view.
func (s *OrderService) RegisterPayment(ctx context.Context, sess *ports.Session, id int64, in ports.PaymentInput) (*ports.PaymentOutcome, error) {
	order, err := s.orders.Get(ctx, sess.Token, id)
	if err != nil {
		return nil, err
	}

	// Payment is co-identified with its order.
	payment := domain.Payment{
		ID:     id,
		Moment: normalizeMoment(in.Moment),
		Status: in.Status,
		Order:  domain.PaymentOrder{ID: id},
	}
	created, err := s.payments.Create(ctx, sess.Token, payment)
	if err != nil {
		return nil, err
	}
	metrics.PaymentsRecordedTotal.WithLabelValues(string(in.Status)).Inc()
	s.log.Info().Int64("order_id", id).Str("status", string(in.Status)).Msg("payment recorded")

	outcome := &ports.PaymentOutcome{Payment: *created, OrderSynced: true}

	draft := draftOf(*order)
	if in.Observation != "" {
		draft.Observation = in.Observation
	}

	// A CANCELED payment never touches the order status.
	if in.Status != domain.PaymentPaid {
		outcome.Order = *order
		outcome.Order.Observation = draft.Observation
		outcome.Order.PaymentDate = payment.Moment
		return outcome, nil
	}

	draft.Status = domain.StatusPaid
	updated, err := s.orders.Update(ctx, sess.Token, id, buildWrite(draft))
	if err != nil {
		if errors.Is(err, domain.ErrSessionExpired) {
			return nil, err
		}
		metrics.PaymentSyncFailuresTotal.Inc()
		s.log.Error().Err(err).Int64("order_id", id).Msg("payment recorded but order update failed")

		outcome.OrderSynced = false
		outcome.SyncError = err.Error()
		outcome.Order = *order
		outcome.Order.Status = domain.StatusPaid
		outcome.Order.Observation = draft.Observation
		outcome.Order.PaymentDate = payment.Moment
		outcome.Order.Total = billing.OrderTotal(order.Items)
		return outcome, nil
	}

	outcome.Order = *updated
	outcome.Order.PaymentDate = payment.Moment
	return outcome, nil
}

// persistPager saves the session's refreshed pagination bookkeeping.
// Failure to persist is logged, not fatal: the page was already loaded.
func (s *OrderService) persistPager(ctx context.Context, sess *ports.Session) {
	if err := s.sessions.Save(ctx, sess); err != nil {
		s.log.Warn().Err(err).Str("session_id", sess.ID).Msg("failed to persist pager state")
	}
}

// draftOf converts a fetched order back into an editing draft.
func draftOf(o domain.Order) ports.OrderDraft {
	return ports.OrderDraft{
		ServiceDescription: o.ServiceDescription,
		Observation:        o.Observation,
		DeliveryDate:       o.DeliveryDate,
		Status:             o.Status,
		User:               o.User,
		Items:              o.Items,
	}
}

// buildWrite turns a draft into the upstream payload: totals recomputed from
// current items, per-item subtotals filled in, temporary item IDs stripped.
func buildWrite(draft ports.OrderDraft) ports.OrderWrite {
	items := make([]ports.OrderItemWrite, 0, len(draft.Items))
	var totalQty int
	for _, it := range draft.Items {
		w := ports.OrderItemWrite{
			Product:     it.Product,
			Quantity:    it.Quantity,
			Price:       it.Price,
			Description: it.Description,
			Service:     it.Service,
			Observation: it.Observation,
			SubTotal:    it.Subtotal(),
		}
		if it.ID != 0 && !it.HasTemporaryID() {
			w.ID = it.ID
		}
		items = append(items, w)
		totalQty += it.Quantity
	}

	return ports.OrderWrite{
		ServiceDescription: draft.ServiceDescription,
		Observation:        draft.Observation,
		DeliveryDate:       draft.DeliveryDate,
		Status:             draft.Status,
		Total:              billing.OrderTotal(draft.Items),
		TotalQuantity:      totalQty,
		User:               draft.User,
		Items:              items,
		Products:           []domain.Product{},
	}
}

// normalizeMoment accepts either a bare date or a full timestamp and
// returns an RFC 3339 instant.
func normalizeMoment(moment string) string {
	if t, err := time.Parse("2006-01-02", moment); err == nil {
		return t.UTC().Format(time.RFC3339)
	}
	if t, err := time.Parse(time.RFC3339, moment); err == nil {
		return t.UTC().Format(time.RFC3339)
	}
	return moment
}
