package customers

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
	Name    string
	Email   string
	Phone   string
	Address string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Customer, error) {
	c := Customer{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.TrimSpace(in.Email),
		Phone:   strings.TrimSpace(in.Phone),
		Address: strings.TrimSpace(in.Address),
	}
	if err := s.validate(ctx, c, 0, true); err != nil {
		return Customer{}, err
	}
	return s.repo.AddCustomer(ctx, c)
}

// Update valida el resultado del merge antes de mandarlo al store.
// El formato del teléfono solo se exige si el patch lo cambia: los datos
// de ejemplo traen números cortos que siguen siendo editables.
func (s *Service) Update(ctx context.Context, id int64, p Patch) (Customer, error) {
	current, err := s.repo.GetCustomer(ctx, id)
	if err != nil {
		return Customer{}, err
	}

	p = trimPatch(p)
	merged := current
	p.Apply(&merged)
	if err := s.validate(ctx, merged, id, p.Phone != nil); err != nil {
		return Customer{}, err
	}
	return s.repo.UpdateCustomer(ctx, id, p)
}

func (s *Service) Delete(ctx context.Context, id int64) ([]int64, error) {
	return s.repo.DeleteCustomer(ctx, id)
}

func (s *Service) GetByID(ctx context.Context, id int64) (Customer, error) {
	return s.repo.GetCustomer(ctx, id)
}

// List filtra por texto libre en nombre, email o teléfono.
func (s *Service) List(ctx context.Context, q string) ([]Customer, error) {
	items, err := s.repo.ListCustomers(ctx)
	if err != nil {
		return nil, err
	}
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return items, nil
	}
	out := make([]Customer, 0, len(items))
	for _, c := range items {
		if strings.Contains(strings.ToLower(c.Name), q) ||
			strings.Contains(strings.ToLower(c.Email), q) ||
			strings.Contains(c.Phone, q) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *Service) validate(ctx context.Context, c Customer, selfID int64, strictPhone bool) error {
	v := validation.Violations{}

	if validation.Required("name", c.Name, v) {
		validation.MinLen("name", c.Name, 2, v)
	}
	if validation.Required("email", c.Email, v) {
		validation.Email("email", c.Email, v)
	}
	if validation.Required("phone", c.Phone, v) && strictPhone {
		validation.Phone("phone", c.Phone, v)
	}

	if _, bad := v["email"]; !bad {
		all, err := s.repo.ListCustomers(ctx)
		if err != nil {
			return err
		}
		for _, other := range all {
			if other.ID != selfID && strings.EqualFold(other.Email, c.Email) {
				v.Add("email", "already_exists")
				break
			}
		}
	}

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
	return Patch{
		Name:    trim(p.Name),
		Email:   trim(p.Email),
		Phone:   trim(p.Phone),
		Address: trim(p.Address),
	}
}
