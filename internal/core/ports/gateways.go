package ports

import (
	"context"

	"github.com/fixware/console/internal/core/domain"
)

// ListQuery carries the pagination and scoping parameters of a list call.
// UserID == 0 means unscoped; Size == 0 lets the backend pick its default.
type ListQuery struct {
	Sort   string
	Size   int
	Page   int
	UserID int64
}

// OrderPage is the normalized shape of an order list response. Backends may
// answer a bare array or a page envelope; gateways fold both into this.
type OrderPage struct {
	Content       []domain.Order
	TotalElements int64
	TotalPages    int
}

// OrderItemWrite is one order line as sent upstream. Persisted items carry
// their ID; items with temporary IDs are sent without one.
type OrderItemWrite struct {
	ID          int64          `json:"id,omitempty"`
	Product     domain.Product `json:"product"`
	Quantity    int            `json:"quantity"`
	Price       float64        `json:"price"`
	Description string         `json:"description"`
	Service     string         `json:"service"`
	Observation string         `json:"observation"`
	SubTotal    float64        `json:"subTotal"`
}

// OrderWrite is the full order mutation payload. Total and TotalQuantity are
// always recomputed client-side before the write; the backend's stored
// figures are overwritten, never echoed back.
type OrderWrite struct {
	ServiceDescription string             `json:"serviceDescription"`
	Observation        string             `json:"observation"`
	DeliveryDate       string             `json:"deliveryDate,omitempty"`
	Status             domain.OrderStatus `json:"status"`
	Total              float64            `json:"total"`
	TotalQuantity      int                `json:"totalQuantity"`
	User               domain.User        `json:"user"`
	Items              []OrderItemWrite   `json:"items"`
	Products           []domain.Product   `json:"products"`
}

// OrderGateway is the typed client for the backend's /orders resource.
type OrderGateway interface {
	List(ctx context.Context, token string, q ListQuery) (*OrderPage, error)
	// ListAll hits the admin-only /orders/allorders listing.
	ListAll(ctx context.Context, token string, q ListQuery) (*OrderPage, error)
	Get(ctx context.Context, token string, id int64) (*domain.Order, error)
	Create(ctx context.Context, token string, w OrderWrite) (*domain.Order, error)
	Update(ctx context.Context, token string, id int64, w OrderWrite) (*domain.Order, error)
	Delete(ctx context.Context, token string, id int64) error
}

// ProductWrite is the product mutation payload.
type ProductWrite struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Brand       string  `json:"brand"`
	Price       float64 `json:"price"`
}

// ProductGateway is the typed client for the backend's /products resource.
type ProductGateway interface {
	// List optionally filters by name (?name=...).
	List(ctx context.Context, token, name string) ([]domain.Product, error)
	Get(ctx context.Context, token string, id int64) (*domain.Product, error)
	Create(ctx context.Context, token string, w ProductWrite) (*domain.Product, error)
	Update(ctx context.Context, token string, id int64, w ProductWrite) (*domain.Product, error)
	Delete(ctx context.Context, token string, id int64) error
}

// UserWrite is the user mutation payload. Password is only set on creation.
type UserWrite struct {
	FirstName string        `json:"firstName"`
	LastName  string        `json:"lastName"`
	Email     string        `json:"email"`
	Phone     string        `json:"phone"`
	Password  string        `json:"password,omitempty"`
	Roles     []domain.Role `json:"roles"`
}

// UserGateway is the typed client for the backend's /users resource.
type UserGateway interface {
	List(ctx context.Context, token string) ([]domain.User, error)
	Get(ctx context.Context, token string, id int64) (*domain.User, error)
	Create(ctx context.Context, token string, w UserWrite) (*domain.User, error)
	Update(ctx context.Context, token string, id int64, w UserWrite) (*domain.User, error)
	Delete(ctx context.Context, token string, id int64) error
}

// PaymentGateway is the typed client for the backend's /payments resource.
type PaymentGateway interface {
	List(ctx context.Context, token string) ([]domain.Payment, error)
	Create(ctx context.Context, token string, p domain.Payment) (*domain.Payment, error)
	Update(ctx context.Context, token string, id int64, p domain.Payment) (*domain.Payment, error)
	Delete(ctx context.Context, token string, id int64) error
}

// RecoverRequest is the password-recovery email dispatch payload.
type RecoverRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// AuthGateway covers token issuance and the account endpoints.
type AuthGateway interface {
	// Token performs the OAuth2 password grant using Basic client
	// credentials. It is the only backend call made without a bearer token.
	Token(ctx context.Context, username, password string) (string, error)
	// Me fetches the authenticated profile.
	Me(ctx context.Context, token string) (*domain.User, error)
	RecoverToken(ctx context.Context, req RecoverRequest) error
	NewPassword(ctx context.Context, token, newPassword string) error
}
