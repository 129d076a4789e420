package domain

// PaymentStatus is the state of a recorded payment.
type PaymentStatus string

const (
	PaymentPaid     PaymentStatus = "PAID"
	PaymentCanceled PaymentStatus = "CANCELED"
)

// Payment records money received (or a canceled attempt) against an order.
// By convention a payment is co-identified with its order: payment ID equals
// the order ID.
//
// A PAID payment is the authoritative trigger that flips its order's status
// to PAID. A CANCELED payment leaves the order status untouched; the
// asymmetry is a business rule, not an oversight.
type Payment struct {
	ID     int64         `json:"id"`
	Moment string        `json:"moment"`
	Status PaymentStatus `json:"status"`
	Order  PaymentOrder  `json:"order"`
}

// PaymentOrder is the order reference embedded in a payment record.
type PaymentOrder struct {
	ID int64 `json:"id"`
}
