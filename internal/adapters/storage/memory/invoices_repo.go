package memory

import (
	"context"

	"vet-practice-management/internal/domain/invoices"
)

func invoiceID(inv invoices.Invoice) int64 { return inv.ID }

// withTotals recalcula subtotal/impuesto/total desde Items.
func (s *Store) withTotals(inv invoices.Invoice) invoices.Invoice {
	t := s.calc.Compute(inv.Items)
	inv.Subtotal, inv.Tax, inv.Total = t.Subtotal, t.Tax, t.Total
	return inv
}

// AddInvoice sella fecha y status pending; los totales del llamador se ignoran.
func (s *Store) AddInvoice(ctx context.Context, inv invoices.Invoice) (invoices.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	inv = inv.Clone()
	inv.ID = s.nextID()
	inv.Date = s.now().In(s.loc)
	inv.Status = invoices.StatusPending
	inv = s.withTotals(inv)
	s.invoices = append(s.invoices, inv)
	return inv.Clone(), nil
}

func (s *Store) UpdateInvoice(ctx context.Context, id int64, p invoices.Patch) (invoices.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.invoices, id, invoiceID)
	if i < 0 {
		return invoices.Invoice{}, notFound("invoice", id)
	}
	inv := s.invoices[i].Clone()
	p.Apply(&inv)
	inv.ID = id
	inv = s.withTotals(inv)
	s.invoices[i] = inv
	return inv.Clone(), nil
}

func (s *Store) GetInvoice(ctx context.Context, id int64) (invoices.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := indexOf(s.invoices, id, invoiceID)
	if i < 0 {
		return invoices.Invoice{}, notFound("invoice", id)
	}
	return s.invoices[i].Clone(), nil
}

func (s *Store) ListInvoices(ctx context.Context) ([]invoices.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]invoices.Invoice, 0, len(s.invoices))
	for _, inv := range s.invoices {
		out = append(out, inv.Clone())
	}
	return out, nil
}
