package invoices

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"vet-practice-management/internal/domain/apperr"
	"vet-practice-management/internal/domain/billing"
	"vet-practice-management/internal/validation"
)

type Service struct {
	repo Repository
	dir  Directory
	calc billing.Calculator
	now  func() time.Time
}

func NewService(repo Repository, dir Directory, calc billing.Calculator) *Service {
	return &Service{
		repo: repo,
		dir:  dir,
		calc: calc,
		now:  time.Now,
	}
}

func (s *Service) Calculator() billing.Calculator { return s.calc }

type CreateInput struct {
	CustomerID    int64
	PetID         *int64
	InvoiceNumber string
	Items         []billing.LineItem
	Notes         string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Invoice, error) {
	inv := Invoice{
		CustomerID:    in.CustomerID,
		InvoiceNumber: strings.TrimSpace(in.InvoiceNumber),
		Status:        StatusPending,
		Notes:         strings.TrimSpace(in.Notes),
	}
	if in.PetID != nil && *in.PetID > 0 {
		id := *in.PetID
		inv.PetID = &id
	}
	if inv.InvoiceNumber == "" {
		inv.InvoiceNumber = fmt.Sprintf("INV-%d", s.now().UnixMilli())
	}

	v := validation.Violations{}
	items, err := s.prepareItems(ctx, in.Items, v)
	if err != nil {
		return Invoice{}, err
	}
	inv.Items = items

	if err := s.validate(ctx, inv, v); err != nil {
		return Invoice{}, err
	}
	return s.repo.AddInvoice(ctx, inv)
}

// Update permite cambiar status/notas sin tocar filas ni totales.
func (s *Service) Update(ctx context.Context, id int64, p Patch) (Invoice, error) {
	current, err := s.repo.GetInvoice(ctx, id)
	if err != nil {
		return Invoice{}, err
	}

	v := validation.Violations{}
	if p.Items != nil {
		items, err := s.prepareItems(ctx, *p.Items, v)
		if err != nil {
			return Invoice{}, err
		}
		p.Items = &items
	}
	if p.InvoiceNumber != nil {
		n := strings.TrimSpace(*p.InvoiceNumber)
		p.InvoiceNumber = &n
	}
	if p.Notes != nil {
		n := strings.TrimSpace(*p.Notes)
		p.Notes = &n
	}

	merged := current.Clone()
	p.Apply(&merged)
	if err := s.validate(ctx, merged, v); err != nil {
		return Invoice{}, err
	}
	return s.repo.UpdateInvoice(ctx, id, p)
}

func (s *Service) GetByID(ctx context.Context, id int64) (Invoice, error) {
	return s.repo.GetInvoice(ctx, id)
}

func (s *Service) List(ctx context.Context, f ListFilter) ([]Invoice, error) {
	items, err := s.repo.ListInvoices(ctx)
	if err != nil {
		return nil, err
	}
	names := map[int64]string{}
	out := make([]Invoice, 0, len(items))
	for _, inv := range items {
		name, ok := names[inv.CustomerID]
		if !ok && strings.TrimSpace(f.Query) != "" && s.dir != nil {
			if c, err := s.dir.GetCustomer(ctx, inv.CustomerID); err == nil {
				name = c.Name
			}
			names[inv.CustomerID] = name
		}
		if f.match(inv, name) {
			out = append(out, inv)
		}
	}
	return out, nil
}

// Summary son los acumulados que muestra el listado de facturas.
type Summary struct {
	Count       int
	TotalAmount float64
	Outstanding float64
}

func Summarize(list []Invoice) Summary {
	var sum Summary
	for _, inv := range list {
		sum.Count++
		sum.TotalAmount += inv.Total
		if inv.Status.Outstanding() {
			sum.Outstanding += inv.Total
		}
	}
	return sum
}

// Preview calcula totales para filas todavía no guardadas.
func (s *Service) Preview(ctx context.Context, items []billing.LineItem) ([]billing.LineItem, billing.Totals, error) {
	v := validation.Violations{}
	prepared, err := s.prepareItems(ctx, items, v)
	if err != nil {
		return nil, billing.Totals{}, err
	}
	if err := v.Err(); err != nil {
		return nil, billing.Totals{}, err
	}
	return prepared, s.calc.Compute(prepared), nil
}

// prepareItems precarga descripción/precio desde el servicio referenciado
// y descarta filas sin descripción.
func (s *Service) prepareItems(ctx context.Context, in []billing.LineItem, v validation.Violations) ([]billing.LineItem, error) {
	out := make([]billing.LineItem, 0, len(in))
	for i, it := range in {
		if it.ServiceID != nil && *it.ServiceID > 0 && s.dir != nil {
			svc, err := s.dir.GetService(ctx, *it.ServiceID)
			switch {
			case errors.Is(err, apperr.ErrNotFound):
				v.Add(fmt.Sprintf("items[%d].service_id", i), "not_found")
				continue
			case err != nil:
				return nil, err
			}
			if strings.TrimSpace(it.Description) == "" {
				it.Description = svc.Name
			}
			if it.Price == 0 {
				it.Price = svc.Price
			}
		}
		it.Description = strings.TrimSpace(it.Description)
		if it.Description == "" {
			continue
		}
		out = append(out, it)
	}
	return CloneItems(out), nil
}

func (s *Service) validate(ctx context.Context, inv Invoice, v validation.Violations) error {
	validation.RequiredID("customer_id", inv.CustomerID, v)
	validation.Required("invoice_number", inv.InvoiceNumber, v)
	validation.OneOf("status", string(inv.Status), Statuses, v)

	valid := 0
	for _, it := range inv.Items {
		if it.Quantity > 0 && it.Price >= 0 {
			valid++
		}
	}
	if valid == 0 {
		v.Add("items", "required")
	}

	if inv.CustomerID > 0 && s.dir != nil {
		if _, err := s.dir.GetCustomer(ctx, inv.CustomerID); err != nil {
			if !errors.Is(err, apperr.ErrNotFound) {
				return err
			}
			v.Add("customer_id", "not_found")
		}
	}
	if inv.PetID != nil && s.dir != nil {
		p, err := s.dir.GetPet(ctx, *inv.PetID)
		switch {
		case errors.Is(err, apperr.ErrNotFound):
			v.Add("pet_id", "not_found")
		case err != nil:
			return err
		case inv.CustomerID > 0 && p.CustomerID != inv.CustomerID:
			v.Add("pet_id", "not_owned_by_customer")
		}
	}
	return v.Err()
}
