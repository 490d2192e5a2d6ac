package memory

import (
	"context"
	"fmt"

	"vet-practice-management/internal/domain/apperr"
	"vet-practice-management/internal/domain/customers"
)

func customerID(c customers.Customer) int64 { return c.ID }

func (s *Store) AddCustomer(ctx context.Context, c customers.Customer) (customers.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.ID = s.nextID()
	s.customers = append(s.customers, c)
	return c, nil
}

func (s *Store) UpdateCustomer(ctx context.Context, id int64, p customers.Patch) (customers.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.customers, id, customerID)
	if i < 0 {
		return customers.Customer{}, notFound("customer", id)
	}
	c := s.customers[i]
	p.Apply(&c)
	c.ID = id
	s.customers[i] = c
	return c, nil
}

// DeleteCustomer borra el cliente y sus mascotas. Si el cliente o alguna de
// sus mascotas está referenciado por citas, registros o facturas devuelve
// apperr.ErrConflict sin modificar nada.
func (s *Store) DeleteCustomer(ctx context.Context, id int64) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.customers, id, customerID)
	if i < 0 {
		return nil, notFound("customer", id)
	}

	owned := make(map[int64]bool)
	for _, p := range s.pets {
		if p.CustomerID == id {
			owned[p.ID] = true
		}
	}
	if s.referencedLocked(func(customerID, petID int64) bool {
		return customerID == id || owned[petID]
	}) {
		return nil, fmt.Errorf("customer %d is referenced by appointments, records or invoices: %w", id, apperr.ErrConflict)
	}

	removed := make([]int64, 0, len(owned))
	kept := s.pets[:0]
	for _, p := range s.pets {
		if p.CustomerID == id {
			removed = append(removed, p.ID)
			continue
		}
		kept = append(kept, p)
	}
	s.pets = kept
	s.customers = removeAt(s.customers, i)
	return removed, nil
}

func (s *Store) GetCustomer(ctx context.Context, id int64) (customers.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := indexOf(s.customers, id, customerID)
	if i < 0 {
		return customers.Customer{}, notFound("customer", id)
	}
	return s.customers[i], nil
}

func (s *Store) ListCustomers(ctx context.Context) ([]customers.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]customers.Customer, len(s.customers))
	copy(out, s.customers)
	return out, nil
}

// referencedLocked recorre citas, registros y facturas. Requiere mu tomado.
func (s *Store) referencedLocked(match func(customerID, petID int64) bool) bool {
	for _, a := range s.appointments {
		if match(a.CustomerID, a.PetID) {
			return true
		}
	}
	for _, m := range s.records {
		if match(m.CustomerID, m.PetID) {
			return true
		}
	}
	for _, inv := range s.invoices {
		var petID int64
		if inv.PetID != nil {
			petID = *inv.PetID
		}
		if match(inv.CustomerID, petID) {
			return true
		}
	}
	return false
}
