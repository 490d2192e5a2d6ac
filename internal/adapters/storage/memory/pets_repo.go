package memory

import (
	"context"
	"fmt"

	"vet-practice-management/internal/domain/apperr"
	"vet-practice-management/internal/domain/pets"
)

func petID(p pets.Pet) int64 { return p.ID }

func (s *Store) AddPet(ctx context.Context, p pets.Pet) (pets.Pet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if indexOf(s.customers, p.CustomerID, customerID) < 0 {
		return pets.Pet{}, notFound("customer", p.CustomerID)
	}
	p.ID = s.nextID()
	s.pets = append(s.pets, p)
	return p, nil
}

func (s *Store) UpdatePet(ctx context.Context, id int64, patch pets.Patch) (pets.Pet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.pets, id, petID)
	if i < 0 {
		return pets.Pet{}, notFound("pet", id)
	}
	p := s.pets[i]
	patch.Apply(&p)
	if indexOf(s.customers, p.CustomerID, customerID) < 0 {
		return pets.Pet{}, notFound("customer", p.CustomerID)
	}
	// Cambiar de dueño dejaría citas, registros y facturas con un par (cliente, mascota) inválido.
	if p.CustomerID != s.pets[i].CustomerID && s.referencedLocked(func(_, pid int64) bool { return pid == id }) {
		return pets.Pet{}, fmt.Errorf("pet %d is referenced and cannot change owner: %w", id, apperr.ErrConflict)
	}
	p.ID = id
	s.pets[i] = p
	return p, nil
}

func (s *Store) DeletePet(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.pets, id, petID)
	if i < 0 {
		return notFound("pet", id)
	}
	if s.referencedLocked(func(_, pid int64) bool { return pid == id }) {
		return fmt.Errorf("pet %d is referenced by appointments, records or invoices: %w", id, apperr.ErrConflict)
	}
	s.pets = removeAt(s.pets, i)
	return nil
}

func (s *Store) GetPet(ctx context.Context, id int64) (pets.Pet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := indexOf(s.pets, id, petID)
	if i < 0 {
		return pets.Pet{}, notFound("pet", id)
	}
	return s.pets[i], nil
}

func (s *Store) ListPets(ctx context.Context) ([]pets.Pet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]pets.Pet, len(s.pets))
	copy(out, s.pets)
	return out, nil
}

func (s *Store) ListPetsByCustomer(ctx context.Context, customerID int64) ([]pets.Pet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]pets.Pet, 0)
	for _, p := range s.pets {
		if p.CustomerID == customerID {
			out = append(out, p)
		}
	}
	return out, nil
}
