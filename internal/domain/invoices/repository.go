package invoices

import (
	"context"
	"strings"

	"vet-practice-management/internal/domain/catalog"
	"vet-practice-management/internal/domain/customers"
	"vet-practice-management/internal/domain/pets"
)

type Repository interface {
	// AddInvoice sella fecha, fuerza status pending y calcula totales.
	AddInvoice(ctx context.Context, inv Invoice) (Invoice, error)
	UpdateInvoice(ctx context.Context, id int64, p Patch) (Invoice, error)
	GetInvoice(ctx context.Context, id int64) (Invoice, error)
	ListInvoices(ctx context.Context) ([]Invoice, error)
}

type Directory interface {
	GetCustomer(ctx context.Context, id int64) (customers.Customer, error)
	GetPet(ctx context.Context, id int64) (pets.Pet, error)
	GetService(ctx context.Context, id int64) (catalog.Service, error)
}

type ListFilter struct {
	CustomerID int64
	Status     Status
	// Query busca en número de factura y nombre del cliente.
	Query string
}

func (f ListFilter) match(inv Invoice, customerName string) bool {
	if f.CustomerID > 0 && inv.CustomerID != f.CustomerID {
		return false
	}
	if f.Status != "" && inv.Status != f.Status {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		return strings.Contains(strings.ToLower(inv.InvoiceNumber), q) ||
			strings.Contains(strings.ToLower(customerName), q)
	}
	return true
}
