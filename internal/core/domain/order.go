package domain

import "time"

// OrderStatus represents the lifecycle state of a service order.
// The lifecycle is forward-biased (PENDING → READY → PAID) but the console
// does not enforce it as a state machine; the upstream backend is the
// authority on which transitions it accepts.
type OrderStatus string

const (
	StatusPending OrderStatus = "PENDING"
	StatusReady   OrderStatus = "READY"
	StatusPaid    OrderStatus = "PAID"
)

// TemporaryItemIDFloor marks the start of the sentinel range for
// client-generated order item IDs. Items with IDs at or above this value
// have not been persisted upstream and must be sent without an ID.
const TemporaryItemIDFloor int64 = 1_000_000_000_000

// OrderItem is one priced line (product or service) within an order.
// Price may diverge from the referenced product's list price: it is an
// explicit per-line override.
type OrderItem struct {
	ID          int64   `json:"id,omitempty"`
	Product     Product `json:"product"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
	Service     string  `json:"service,omitempty"`
	Observation string  `json:"observation,omitempty"`
	SubTotal    float64 `json:"subTotal,omitempty"`
}

// Subtotal returns quantity × unit price for this line.
func (i OrderItem) Subtotal() float64 {
	return float64(i.Quantity) * i.Price
}

// HasTemporaryID reports whether this item carries a client-generated
// sentinel ID rather than a persisted one.
func (i OrderItem) HasTemporaryID() bool {
	return i.ID >= TemporaryItemIDFloor
}

// NewTemporaryItemID returns a fresh ID in the sentinel range, derived from
// the current wall clock in milliseconds.
func NewTemporaryItemID() int64 {
	id := time.Now().UnixMilli()
	if id < TemporaryItemIDFloor {
		id += TemporaryItemIDFloor
	}
	return id
}

// Order is a service-order record representing repair work billed to a
// customer.
type Order struct {
	ID                 int64       `json:"id"`
	ServiceDescription string      `json:"serviceDescription"`
	Observation        string      `json:"observation"`
	DeliveryDate       string      `json:"deliveryDate,omitempty"`
	Status             OrderStatus `json:"status"`
	User               User        `json:"user"`
	Items              []OrderItem `json:"items"`
	CreatedDate        string      `json:"createdDate,omitempty"`
	LastUpdate         string      `json:"lastUpdate,omitempty"`
	PaymentDate        string      `json:"paymentDate,omitempty"`
	Total              float64     `json:"total,omitempty"`
}

// TotalQuantity returns the sum of item quantities across the order.
func (o Order) TotalQuantity() int {
	var n int
	for _, it := range o.Items {
		n += it.Quantity
	}
	return n
}
