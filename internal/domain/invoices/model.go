package invoices

import (
	"time"

	"vet-practice-management/internal/domain/billing"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusOverdue   Status = "overdue"
	StatusCancelled Status = "cancelled"
)

var Statuses = []string{
	string(StatusPending),
	string(StatusPaid),
	string(StatusOverdue),
	string(StatusCancelled),
}

// Outstanding: pendiente de cobro (pending u overdue).
func (s Status) Outstanding() bool {
	return s == StatusPending || s == StatusOverdue
}

// Invoice guarda los totales derivados de Items. Solo el store los escribe.
type Invoice struct {
	ID            int64
	CustomerID    int64
	PetID         *int64
	InvoiceNumber string
	Status        Status
	Items         []billing.LineItem
	Subtotal      float64
	Tax           float64
	Total         float64
	Notes         string
	Date          time.Time
}

func (inv Invoice) Clone() Invoice {
	inv.Items = CloneItems(inv.Items)
	if inv.PetID != nil {
		id := *inv.PetID
		inv.PetID = &id
	}
	return inv
}

func (inv Invoice) Totals() billing.Totals {
	return billing.Totals{Subtotal: inv.Subtotal, Tax: inv.Tax, Total: inv.Total}
}

// Patch no incluye totales: se recalculan siempre desde Items.
type Patch struct {
	InvoiceNumber *string
	Status        *Status
	Items         *[]billing.LineItem
	Notes         *string
}

func (p Patch) Apply(inv *Invoice) {
	if p.InvoiceNumber != nil {
		inv.InvoiceNumber = *p.InvoiceNumber
	}
	if p.Status != nil {
		inv.Status = *p.Status
	}
	if p.Items != nil {
		inv.Items = CloneItems(*p.Items)
	}
	if p.Notes != nil {
		inv.Notes = *p.Notes
	}
}

func CloneItems(in []billing.LineItem) []billing.LineItem {
	out := make([]billing.LineItem, len(in))
	for i, it := range in {
		if it.ServiceID != nil {
			id := *it.ServiceID
			it.ServiceID = &id
		}
		out[i] = it
	}
	return out
}
