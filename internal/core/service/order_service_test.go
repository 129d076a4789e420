package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/fixware/console/internal/core/domain"
	"github.com/fixware/console/internal/core/paging"
	"github.com/fixware/console/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stub gateways
// ---------------------------------------------------------------------------

type stubOrderGateway struct {
	page       *ports.OrderPage
	order      *domain.Order
	listErr    error
	updateErr  error
	lastQuery  ports.ListQuery
	listAllHit bool
	listHit    bool
	lastWrite  *ports.OrderWrite
}

func (g *stubOrderGateway) List(_ context.Context, _ string, q ports.ListQuery) (*ports.OrderPage, error) {
	g.listHit = true
	g.lastQuery = q
	if g.listErr != nil {
		return nil, g.listErr
	}
	return g.page, nil
}

func (g *stubOrderGateway) ListAll(_ context.Context, _ string, q ports.ListQuery) (*ports.OrderPage, error) {
	g.listAllHit = true
	g.lastQuery = q
	if g.listErr != nil {
		return nil, g.listErr
	}
	return g.page, nil
}

func (g *stubOrderGateway) Get(_ context.Context, _ string, id int64) (*domain.Order, error) {
	if g.order == nil || g.order.ID != id {
		return nil, domain.ErrOrderNotFound
	}
	clone := *g.order
	return &clone, nil
}

func (g *stubOrderGateway) Create(_ context.Context, _ string, w ports.OrderWrite) (*domain.Order, error) {
	g.lastWrite = &w
	return &domain.Order{ID: 42, Status: w.Status, Total: w.Total}, nil
}

func (g *stubOrderGateway) Update(_ context.Context, _ string, id int64, w ports.OrderWrite) (*domain.Order, error) {
	g.lastWrite = &w
	if g.updateErr != nil {
		return nil, g.updateErr
	}
	return &domain.Order{ID: id, Status: w.Status, Total: w.Total, Observation: w.Observation}, nil
}

func (g *stubOrderGateway) Delete(_ context.Context, _ string, _ int64) error { return nil }

type stubPaymentGateway struct {
	payments  []domain.Payment
	listErr   error
	createErr error
	created   *domain.Payment
}

func (g *stubPaymentGateway) List(_ context.Context, _ string) ([]domain.Payment, error) {
	if g.listErr != nil {
		return nil, g.listErr
	}
	return g.payments, nil
}

func (g *stubPaymentGateway) Create(_ context.Context, _ string, p domain.Payment) (*domain.Payment, error) {
	if g.createErr != nil {
		return nil, g.createErr
	}
	g.created = &p
	return &p, nil
}

func (g *stubPaymentGateway) Update(_ context.Context, _ string, _ int64, p domain.Payment) (*domain.Payment, error) {
	return &p, nil
}

func (g *stubPaymentGateway) Delete(_ context.Context, _ string, _ int64) error { return nil }

type stubSessionStore struct {
	sessions map[string]*ports.Session
	saves    int
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: make(map[string]*ports.Session)}
}

func (s *stubSessionStore) Create(_ context.Context, sess *ports.Session) error {
	sess.ID = "sess-1"
	s.sessions[sess.ID] = sess
	return nil
}

func (s *stubSessionStore) Get(_ context.Context, id string) (*ports.Session, error) {
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ports.ErrSessionNotFound
	}
	return sess, nil
}

func (s *stubSessionStore) Save(_ context.Context, sess *ports.Session) error {
	s.saves++
	s.sessions[sess.ID] = sess
	return nil
}

func (s *stubSessionStore) Delete(_ context.Context, id string) error {
	delete(s.sessions, id)
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

func sessionFor(roles ...string) *ports.Session {
	u := domain.User{ID: 7, FirstName: "Rita", LastName: "Lima", Email: "rita@example.com"}
	for i, r := range roles {
		u.Roles = append(u.Roles, domain.Role{ID: int64(i + 1), Authority: r})
	}
	return &ports.Session{ID: "sess-1", Token: "tok", User: u, Pager: paging.New()}
}

func pendingOrder(id int64) domain.Order {
	return domain.Order{
		ID:     id,
		Status: domain.StatusPending,
		User:   domain.User{ID: 7},
		Items: []domain.OrderItem{
			{ID: 1, Quantity: 2, Price: 50},
			{ID: 2, Quantity: 1, Price: 30},
		},
	}
}

// ---------------------------------------------------------------------------
// ListOrders
// ---------------------------------------------------------------------------

func TestListOrders_AdminUsesFullListing(t *testing.T) {
	orders := &stubOrderGateway{page: &ports.OrderPage{
		Content:       []domain.Order{pendingOrder(1)},
		TotalElements: 1,
		TotalPages:    1,
	}}
	store := newStubSessionStore()
	svc := NewOrderService(orders, &stubPaymentGateway{}, store, discardLogger)

	sess := sessionFor(domain.RoleAdmin)
	store.sessions[sess.ID] = sess

	result, err := svc.ListOrders(context.Background(), sess)
	if err != nil {
		t.Fatalf("ListOrders: %v", err)
	}
	if !orders.listAllHit || orders.listHit {
		t.Fatalf("admin should hit the full listing only")
	}
	if orders.lastQuery.UserID != 0 {
		t.Fatalf("admin listing must be unscoped, got userId %d", orders.lastQuery.UserID)
	}
	if len(result.Orders) != 1 || result.TotalElements != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if store.saves == 0 {
		t.Fatalf("pager state not persisted")
	}
}

func TestListOrders_ClientScopedToOwnID(t *testing.T) {
	orders := &stubOrderGateway{page: &ports.OrderPage{TotalPages: 1}}
	svc := NewOrderService(orders, &stubPaymentGateway{}, newStubSessionStore(), discardLogger)

	sess := sessionFor(domain.RoleClient)
	if _, err := svc.ListOrders(context.Background(), sess); err != nil {
		t.Fatalf("ListOrders: %v", err)
	}
	if orders.listAllHit {
		t.Fatalf("client must not hit the admin listing")
	}
	if orders.lastQuery.UserID != sess.User.ID {
		t.Fatalf("client listing not scoped: userId %d", orders.lastQuery.UserID)
	}
}

// An unrecognized role combination falls back to the scoped path.
func TestListOrders_UnknownRolesFallBackToScoped(t *testing.T) {
	orders := &stubOrderGateway{page: &ports.OrderPage{TotalPages: 1}}
	svc := NewOrderService(orders, &stubPaymentGateway{}, newStubSessionStore(), discardLogger)

	sess := sessionFor("ROLE_AUDITOR")
	if _, err := svc.ListOrders(context.Background(), sess); err != nil {
		t.Fatalf("ListOrders: %v", err)
	}
	if orders.listAllHit || orders.lastQuery.UserID != sess.User.ID {
		t.Fatalf("unknown roles must be treated as standard users")
	}
}

func TestListOrders_OverlayPromotesPaid(t *testing.T) {
	orders := &stubOrderGateway{page: &ports.OrderPage{
		Content:    []domain.Order{pendingOrder(1)},
		TotalPages: 1,
	}}
	payments := &stubPaymentGateway{payments: []domain.Payment{
		{ID: 1, Moment: "2026-08-20T12:00:00Z", Status: domain.PaymentPaid, Order: domain.PaymentOrder{ID: 1}},
	}}
	svc := NewOrderService(orders, payments, newStubSessionStore(), discardLogger)

	result, err := svc.ListOrders(context.Background(), sessionFor(domain.RoleUser))
	if err != nil {
		t.Fatalf("ListOrders: %v", err)
	}
	if result.Orders[0].Status != domain.StatusPaid {
		t.Fatalf("overlay did not promote status: %s", result.Orders[0].Status)
	}
	if result.Orders[0].PaymentDate != "2026-08-20T12:00:00Z" {
		t.Fatalf("payment date not stamped")
	}
}

func TestListOrders_FailedLoadClearsPager(t *testing.T) {
	orders := &stubOrderGateway{listErr: errors.New("connection refused")}
	store := newStubSessionStore()
	svc := NewOrderService(orders, &stubPaymentGateway{}, store, discardLogger)

	sess := sessionFor(domain.RoleUser)
	sess.Pager.TotalPages = 5
	sess.Pager.JumpTo(3)

	if _, err := svc.ListOrders(context.Background(), sess); err == nil {
		t.Fatalf("expected error")
	}
	if sess.Pager.TotalPages != 0 || sess.Pager.Page != 0 {
		t.Fatalf("failed load must report zero pages, got %+v", sess.Pager)
	}
}

func TestListOrders_PaymentFetchFailureTolerated(t *testing.T) {
	orders := &stubOrderGateway{page: &ports.OrderPage{
		Content:    []domain.Order{pendingOrder(1)},
		TotalPages: 1,
	}}
	payments := &stubPaymentGateway{listErr: errors.New("timeout")}
	svc := NewOrderService(orders, payments, newStubSessionStore(), discardLogger)

	result, err := svc.ListOrders(context.Background(), sessionFor(domain.RoleUser))
	if err != nil {
		t.Fatalf("payment failure should not fail the listing: %v", err)
	}
	if result.Orders[0].Status != domain.StatusPending {
		t.Fatalf("order rendered with unexpected status")
	}
}

func TestListOrders_SessionExpiredPropagates(t *testing.T) {
	orders := &stubOrderGateway{page: &ports.OrderPage{TotalPages: 1}}
	payments := &stubPaymentGateway{listErr: domain.ErrSessionExpired}
	svc := NewOrderService(orders, payments, newStubSessionStore(), discardLogger)

	_, err := svc.ListOrders(context.Background(), sessionFor(domain.RoleUser))
	if !errors.Is(err, domain.ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// FinancialSummary
// ---------------------------------------------------------------------------

func TestFinancialSummary_PartitionAfterOverlay(t *testing.T) {
	o1 := pendingOrder(1) // 130.00, will be paid via overlay
	o2 := domain.Order{ID: 2, Status: domain.StatusReady, Items: []domain.OrderItem{{Quantity: 1, Price: 70}}}
	orders := &stubOrderGateway{page: &ports.OrderPage{Content: []domain.Order{o1, o2}, TotalPages: 1}}
	payments := &stubPaymentGateway{payments: []domain.Payment{
		{ID: 1, Status: domain.PaymentPaid, Order: domain.PaymentOrder{ID: 1}},
	}}
	svc := NewOrderService(orders, payments, newStubSessionStore(), discardLogger)

	summary, err := svc.FinancialSummary(context.Background(), sessionFor(domain.RoleAdmin))
	if err != nil {
		t.Fatalf("FinancialSummary: %v", err)
	}
	if summary.PaidTotal != 130 || summary.PaidCount != 1 {
		t.Fatalf("paid bucket wrong: %+v", summary)
	}
	if summary.UnpaidTotal != 70 || summary.UnpaidCount != 1 {
		t.Fatalf("unpaid bucket wrong: %+v", summary)
	}
	if summary.TotalCount != summary.PaidCount+summary.UnpaidCount {
		t.Fatalf("partition not exhaustive: %+v", summary)
	}
	if orders.lastQuery.Size != summaryFetchSize {
		t.Fatalf("summary must fetch unpaginated, size %d", orders.lastQuery.Size)
	}
}

// ---------------------------------------------------------------------------
// RegisterPayment
// ---------------------------------------------------------------------------

func TestRegisterPayment_PaidUpdatesOrder(t *testing.T) {
	order := pendingOrder(9)
	orders := &stubOrderGateway{order: &order}
	payments := &stubPaymentGateway{}
	svc := NewOrderService(orders, payments, newStubSessionStore(), discardLogger)

	outcome, err := svc.RegisterPayment(context.Background(), sessionFor(domain.RoleAdmin), 9, ports.PaymentInput{
		Moment: "2026-08-30",
		Status: domain.PaymentPaid,
	})
	if err != nil {
		t.Fatalf("RegisterPayment: %v", err)
	}
	if payments.created == nil || payments.created.ID != 9 || payments.created.Order.ID != 9 {
		t.Fatalf("payment not co-identified with order: %+v", payments.created)
	}
	if payments.created.Moment != "2026-08-30T00:00:00Z" {
		t.Fatalf("moment not normalized: %s", payments.created.Moment)
	}
	if !outcome.OrderSynced {
		t.Fatalf("order update should have succeeded")
	}
	if orders.lastWrite == nil || orders.lastWrite.Status != domain.StatusPaid {
		t.Fatalf("order not rewritten as PAID")
	}
	if orders.lastWrite.Total != 130 || orders.lastWrite.TotalQuantity != 3 {
		t.Fatalf("totals not recomputed: %+v", orders.lastWrite)
	}
	if outcome.Order.Status != domain.StatusPaid {
		t.Fatalf("outcome order not PAID")
	}
}

func TestRegisterPayment_CanceledLeavesOrderAlone(t *testing.T) {
	order := pendingOrder(9)
	orders := &stubOrderGateway{order: &order}
	svc := NewOrderService(orders, &stubPaymentGateway{}, newStubSessionStore(), discardLogger)

	outcome, err := svc.RegisterPayment(context.Background(), sessionFor(domain.RoleAdmin), 9, ports.PaymentInput{
		Moment: "2026-08-30",
		Status: domain.PaymentCanceled,
	})
	if err != nil {
		t.Fatalf("RegisterPayment: %v", err)
	}
	if orders.lastWrite != nil {
		t.Fatalf("CANCELED payment must not rewrite the order")
	}
	if outcome.Order.Status != domain.StatusPending {
		t.Fatalf("order status changed by CANCELED payment")
	}
}

func TestRegisterPayment_SecondWriteFailureIsExplicit(t *testing.T) {
	order := pendingOrder(9)
	orders := &stubOrderGateway{order: &order, updateErr: errors.New("backend down")}
	svc := NewOrderService(orders, &stubPaymentGateway{}, newStubSessionStore(), discardLogger)

	outcome, err := svc.RegisterPayment(context.Background(), sessionFor(domain.RoleAdmin), 9, ports.PaymentInput{
		Moment: "2026-08-30",
		Status: domain.PaymentPaid,
	})
	if err != nil {
		t.Fatalf("partial failure must be reported via the outcome, got error %v", err)
	}
	if outcome.OrderSynced || outcome.SyncError == "" {
		t.Fatalf("outcome does not report the failed order write: %+v", outcome)
	}
	// The optimistic view still reflects the user's intent.
	if outcome.Order.Status != domain.StatusPaid || outcome.Order.Total != 130 {
		t.Fatalf("optimistic order view wrong: %+v", outcome.Order)
	}
}

func TestRegisterPayment_CreateFailureAborts(t *testing.T) {
	order := pendingOrder(9)
	orders := &stubOrderGateway{order: &order}
	payments := &stubPaymentGateway{createErr: errors.New("rejected")}
	svc := NewOrderService(orders, payments, newStubSessionStore(), discardLogger)

	if _, err := svc.RegisterPayment(context.Background(), sessionFor(domain.RoleAdmin), 9, ports.PaymentInput{
		Moment: "2026-08-30",
		Status: domain.PaymentPaid,
	}); err == nil {
		t.Fatalf("expected error when payment creation fails")
	}
	if orders.lastWrite != nil {
		t.Fatalf("order must not be rewritten when payment creation fails")
	}
}

// ---------------------------------------------------------------------------
// Order mutations
// ---------------------------------------------------------------------------

func TestUpdateOrder_StripsTemporaryItemIDs(t *testing.T) {
	orders := &stubOrderGateway{}
	svc := NewOrderService(orders, &stubPaymentGateway{}, newStubSessionStore(), discardLogger)

	draft := ports.OrderDraft{
		ServiceDescription: "Troca de HD",
		Status:             domain.StatusPending,
		User:               domain.User{ID: 7},
		Items: []domain.OrderItem{
			{ID: 12, Quantity: 1, Price: 100},
			{ID: domain.NewTemporaryItemID(), Quantity: 2, Price: 25},
		},
	}

	if _, err := svc.UpdateOrder(context.Background(), sessionFor(domain.RoleAdmin), 5, draft); err != nil {
		t.Fatalf("UpdateOrder: %v", err)
	}

	w := orders.lastWrite
	if w.Items[0].ID != 12 {
		t.Fatalf("persisted item lost its ID")
	}
	if w.Items[1].ID != 0 {
		t.Fatalf("temporary item ID leaked upstream: %d", w.Items[1].ID)
	}
	if w.Items[1].SubTotal != 50 {
		t.Fatalf("item subtotal not computed: %v", w.Items[1].SubTotal)
	}
	if w.Total != 150 || w.TotalQuantity != 3 {
		t.Fatalf("totals not recomputed: total=%v qty=%d", w.Total, w.TotalQuantity)
	}
	if w.Products == nil {
		t.Fatalf("products must serialize as an empty array, not null")
	}
}

func TestChangeStatus_RecomputesTotals(t *testing.T) {
	order := pendingOrder(3)
	order.Total = 9999 // stale server echo, must be ignored
	orders := &stubOrderGateway{order: &order}
	svc := NewOrderService(orders, &stubPaymentGateway{}, newStubSessionStore(), discardLogger)

	updated, err := svc.ChangeStatus(context.Background(), sessionFor(domain.RoleAdmin), 3, domain.StatusReady, "pronto para retirada")
	if err != nil {
		t.Fatalf("ChangeStatus: %v", err)
	}
	if orders.lastWrite.Total != 130 {
		t.Fatalf("stale total trusted: %v", orders.lastWrite.Total)
	}
	if updated.Status != domain.StatusReady {
		t.Fatalf("status not applied")
	}
	if orders.lastWrite.Observation != "pronto para retirada" {
		t.Fatalf("observation not applied")
	}
}
