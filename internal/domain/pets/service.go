package pets

import (
	"context"
	"strings"

	"vet-practice-management/internal/validation"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateInput struct {
	Name       string
	Species    string
	Breed      string
	Age        int
	Weight     string
	Allergies  string
	CustomerID int64
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Pet, error) {
	p := Pet{
		Name:       strings.TrimSpace(in.Name),
		Species:    strings.TrimSpace(in.Species),
		Breed:      strings.TrimSpace(in.Breed),
		Age:        in.Age,
		Weight:     strings.TrimSpace(in.Weight),
		Allergies:  strings.TrimSpace(in.Allergies),
		CustomerID: in.CustomerID,
	}
	if p.Allergies == "" {
		p.Allergies = NoAllergies
	}
	if err := validate(p); err != nil {
		return Pet{}, err
	}
	return s.repo.AddPet(ctx, p)
}

func (s *Service) Update(ctx context.Context, id int64, p Patch) (Pet, error) {
	current, err := s.repo.GetPet(ctx, id)
	if err != nil {
		return Pet{}, err
	}

	p = trimPatch(p)
	if p.Allergies != nil && *p.Allergies == "" {
		none := NoAllergies
		p.Allergies = &none
	}
	merged := current
	p.Apply(&merged)
	if err := validate(merged); err != nil {
		return Pet{}, err
	}
	return s.repo.UpdatePet(ctx, id, p)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.DeletePet(ctx, id)
}

func (s *Service) GetByID(ctx context.Context, id int64) (Pet, error) {
	return s.repo.GetPet(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Pet, error) {
	return s.repo.ListPets(ctx)
}

func (s *Service) ListByCustomer(ctx context.Context, customerID int64) ([]Pet, error) {
	return s.repo.ListPetsByCustomer(ctx, customerID)
}

func validate(p Pet) error {
	v := validation.Violations{}
	validation.Required("name", p.Name, v)
	validation.Required("species", p.Species, v)
	validation.NonNegativeInt("age", p.Age, v)
	validation.RequiredID("customer_id", p.CustomerID, v)
	return v.Err()
}

func trimPatch(p Patch) Patch {
	trim := func(s *string) *string {
		if s == nil {
			return nil
		}
		t := strings.TrimSpace(*s)
		return &t
	}
	p.Name = trim(p.Name)
	p.Species = trim(p.Species)
	p.Breed = trim(p.Breed)
	p.Weight = trim(p.Weight)
	p.Allergies = trim(p.Allergies)
	return p
}
