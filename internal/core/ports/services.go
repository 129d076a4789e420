package ports

import (
	"context"

	"github.com/fixware/console/internal/core/billing"
	"github.com/fixware/console/internal/core/domain"
	"github.com/fixware/console/internal/core/paging"
)

// AuthService owns the session lifecycle and the password-recovery flow.
type AuthService interface {
	// Login runs the OAuth2 password grant, fetches the profile and creates
	// a session. Bad credentials return domain.ErrInvalidCredentials with
	// nothing stored.
	Login(ctx context.Context, email, password string) (*Session, error)
	Logout(ctx context.Context, sessionID string) error
	RecoverPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

// OrderListResult is one loaded dashboard page: the visible orders with
// payments already overlaid, plus the refreshed pagination bookkeeping.
type OrderListResult struct {
	Orders        []domain.Order
	Pager         paging.Pager
	TotalElements int64
}

// OrderDraft is the console-side editing buffer for an order mutation.
// Items may carry temporary IDs; the service strips them before writing.
type OrderDraft struct {
	ServiceDescription string
	Observation        string
	DeliveryDate       string
	Status             domain.OrderStatus
	User               domain.User
	Items              []domain.OrderItem
}

// PaymentInput is the payment-registration form.
type PaymentInput struct {
	Moment      string
	Status      domain.PaymentStatus
	Observation string
}

// PaymentOutcome is the explicit result of the dual payment/order write.
// The payment record is always created first; the order update only runs
// when the payment is PAID. When that second write fails the outcome says
// so instead of silently patching view state, leaving the optimistic-
// display decision to the caller.
type PaymentOutcome struct {
	Payment     domain.Payment
	Order       domain.Order
	OrderSynced bool
	SyncError   string
}

// OrderService implements the dashboard's order use cases: role-scoped
// listing, financial aggregation, CRUD and the payment flow.
type OrderService interface {
	// ListOrders loads one page scoped by the session user's account kind,
	// overlays payments, and persists the refreshed pager on the session.
	ListOrders(ctx context.Context, sess *Session) (*OrderListResult, error)
	// FinancialSummary aggregates over the full unpaginated order set
	// visible to the session user. It is an independent snapshot and may
	// diverge from the visible page.
	FinancialSummary(ctx context.Context, sess *Session) (*billing.Summary, error)
	GetOrder(ctx context.Context, sess *Session, id int64) (*domain.Order, error)
	CreateOrder(ctx context.Context, sess *Session, draft OrderDraft) (*domain.Order, error)
	UpdateOrder(ctx context.Context, sess *Session, id int64, draft OrderDraft) (*domain.Order, error)
	DeleteOrder(ctx context.Context, sess *Session, id int64) error
	ChangeStatus(ctx context.Context, sess *Session, id int64, status domain.OrderStatus, observation string) (*domain.Order, error)
	ScheduleDelivery(ctx context.Context, sess *Session, id int64, deliveryDate string) (*domain.Order, error)
	RegisterPayment(ctx context.Context, sess *Session, id int64, in PaymentInput) (*PaymentOutcome, error)
}

// ProductService implements the admin product catalog use cases.
type ProductService interface {
	ListProducts(ctx context.Context, sess *Session, name string) ([]domain.Product, error)
	GetProduct(ctx context.Context, sess *Session, id int64) (*domain.Product, error)
	CreateProduct(ctx context.Context, sess *Session, w ProductWrite) (*domain.Product, error)
	UpdateProduct(ctx context.Context, sess *Session, id int64, w ProductWrite) (*domain.Product, error)
	DeleteProduct(ctx context.Context, sess *Session, id int64) error
}

// UserService implements the admin user management use cases.
type UserService interface {
	ListUsers(ctx context.Context, sess *Session) ([]domain.User, error)
	// SearchUsersByName filters the full user list locally; the backend has
	// no name-search endpoint.
	SearchUsersByName(ctx context.Context, sess *Session, name string) ([]domain.User, error)
	GetUser(ctx context.Context, sess *Session, id int64) (*domain.User, error)
	CreateUser(ctx context.Context, sess *Session, w UserWrite) (*domain.User, error)
	UpdateUser(ctx context.Context, sess *Session, id int64, w UserWrite) (*domain.User, error)
	DeleteUser(ctx context.Context, sess *Session, id int64) error
	// Roles returns the static role catalog.
	Roles() []domain.Role
}

// PaymentService exposes the admin payment listing and maintenance.
type PaymentService interface {
	ListPayments(ctx context.Context, sess *Session) ([]domain.Payment, error)
	UpdatePayment(ctx context.Context, sess *Session, id int64, p domain.Payment) (*domain.Payment, error)
	DeletePayment(ctx context.Context, sess *Session, id int64) error
}
