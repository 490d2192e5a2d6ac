package memory

import (
	"context"

	"vet-practice-management/internal/domain/catalog"
)

func (s *Store) GetVeterinarian(ctx context.Context, id int64) (catalog.Veterinarian, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := indexOf(s.vets, id, func(v catalog.Veterinarian) int64 { return v.ID })
	if i < 0 {
		return catalog.Veterinarian{}, notFound("veterinarian", id)
	}
	return s.vets[i], nil
}

func (s *Store) ListVeterinarians(ctx context.Context) ([]catalog.Veterinarian, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]catalog.Veterinarian, len(s.vets))
	copy(out, s.vets)
	return out, nil
}

func (s *Store) GetService(ctx context.Context, id int64) (catalog.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := indexOf(s.services, id, func(v catalog.Service) int64 { return v.ID })
	if i < 0 {
		return catalog.Service{}, notFound("service", id)
	}
	return s.services[i], nil
}

func (s *Store) ListServices(ctx context.Context) ([]catalog.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]catalog.Service, len(s.services))
	copy(out, s.services)
	return out, nil
}
