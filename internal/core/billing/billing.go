// Package billing holds the pure financial aggregation rules of the console:
// order totals, the payment overlay, and the unpaid/paid summary. Everything
// here operates on in-memory collections already fetched from the backend.
package billing

import "github.com/fixware/console/internal/core/domain"

// OrderTotal returns the sum of quantity × unit price over all items.
// The backend's stored total is never trusted; this value is recomputed on
// every mutation and overwrites whatever the backend echoed back.
func OrderTotal(items []domain.OrderItem) float64 {
	var total float64
	for _, it := range items {
		total += it.Subtotal()
	}
	return total
}

// ApplyPayments overlays payment records onto orders, matching by the order
// ID embedded in each payment. A PAID payment promotes the order's status to
// PAID and stamps its payment date from the payment moment. A CANCELED
// payment stamps nothing and leaves the status untouched.
//
// The input slices are not modified; a new order slice is returned.
func ApplyPayments(orders []domain.Order, payments []domain.Payment) []domain.Order {
	byOrder := make(map[int64]domain.Payment, len(payments))
	for _, p := range payments {
		byOrder[p.Order.ID] = p
	}

	out := make([]domain.Order, len(orders))
	for i, o := range orders {
		if p, ok := byOrder[o.ID]; ok {
			o.PaymentDate = p.Moment
			if p.Status == domain.PaymentPaid {
				o.Status = domain.StatusPaid
			}
		}
		out[i] = o
	}
	return out
}

// Summary aggregates the unpaid/paid split across all orders visible to the
// current user.
type Summary struct {
	UnpaidTotal float64 `json:"unpaidTotal"`
	UnpaidCount int     `json:"unpaidCount"`
	PaidTotal   float64 `json:"paidTotal"`
	PaidCount   int     `json:"paidCount"`
	GrandTotal  float64 `json:"grandTotal"`
	TotalCount  int     `json:"totalCount"`
}

// Summarize partitions orders into unpaid (status ≠ PAID) and paid groups
// and totals each side. Callers overlay payments first so that freshly paid
// orders land in the paid bucket. Totals are always recomputed from current
// items, regardless of order status.
func Summarize(orders []domain.Order) Summary {
	var s Summary
	for _, o := range orders {
		total := OrderTotal(o.Items)
		s.GrandTotal += total
		s.TotalCount++
		if o.Status == domain.StatusPaid {
			s.PaidTotal += total
			s.PaidCount++
		} else {
			s.UnpaidTotal += total
			s.UnpaidCount++
		}
	}
	return s
}

// statusLabels maps API statuses to the console's pt-BR display labels.
var statusLabels = map[domain.OrderStatus]string{
	domain.StatusPending: "Pendente",
	domain.StatusReady:   "Pronto",
	domain.StatusPaid:    "Pago",
}

// FormatStatus returns the display label for an order status. Unknown
// statuses are returned unchanged.
func FormatStatus(s domain.OrderStatus) string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return string(s)
}

// ParseStatus converts a display label back to its API status. Unknown
// labels are returned unchanged so round-tripping never loses data.
func ParseStatus(label string) domain.OrderStatus {
	for status, l := range statusLabels {
		if l == label {
			return status
		}
	}
	return domain.OrderStatus(label)
}
