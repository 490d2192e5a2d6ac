package appointments

import (
	"context"
	"errors"
	"strings"
	"time"

	"vet-practice-management/internal/domain/apperr"
	"vet-practice-management/internal/validation"
)

type Service struct {
	repo Repository
	dir  Directory
	loc  *time.Location
	now  func() time.Time
}

func NewService(repo Repository, dir Directory, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		repo: repo,
		dir:  dir,
		loc:  loc,
		now:  time.Now,
	}
}

// Location es la zona horaria de la clínica (fecha de calendario).
func (s *Service) Location() *time.Location { return s.loc }

func (s *Service) Now() time.Time { return s.now().In(s.loc) }

type CreateInput struct {
	CustomerID     int64
	PetID          int64
	VeterinarianID int64
	Date           time.Time
	Duration       int
	Type           string
	Status         Status
	Notes          string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Appointment, error) {
	a := Appointment{
		CustomerID:     in.CustomerID,
		PetID:          in.PetID,
		VeterinarianID: in.VeterinarianID,
		Date:           in.Date,
		Duration:       in.Duration,
		Type:           strings.TrimSpace(in.Type),
		Status:         in.Status,
		Notes:          strings.TrimSpace(in.Notes),
	}
	if a.Duration == 0 {
		a.Duration = DefaultDuration
	}
	if a.Status == "" {
		a.Status = StatusScheduled
	}

	v := validation.Violations{}
	if !a.Date.IsZero() && a.Date.Before(s.now()) {
		// Solo al crear: editar citas pasadas está permitido.
		v.Add("date", "in_past")
	}
	if err := s.validate(ctx, a, v); err != nil {
		return Appointment{}, err
	}
	return s.repo.AddAppointment(ctx, a)
}

func (s *Service) Update(ctx context.Context, id int64, p Patch) (Appointment, error) {
	current, err := s.repo.GetAppointment(ctx, id)
	if err != nil {
		return Appointment{}, err
	}
	if p.Type != nil {
		t := strings.TrimSpace(*p.Type)
		p.Type = &t
	}

	merged := current
	p.Apply(&merged)
	if err := s.validate(ctx, merged, validation.Violations{}); err != nil {
		return Appointment{}, err
	}
	return s.repo.UpdateAppointment(ctx, id, p)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.DeleteAppointment(ctx, id)
}

func (s *Service) GetByID(ctx context.Context, id int64) (Appointment, error) {
	return s.repo.GetAppointment(ctx, id)
}

// List aplica el filtro conservando el orden de inserción.
func (s *Service) List(ctx context.Context, f ListFilter) ([]Appointment, error) {
	items, err := s.repo.ListAppointments(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Appointment, 0, len(items))
	for _, a := range items {
		if f.Match(a) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *Service) validate(ctx context.Context, a Appointment, v validation.Violations) error {
	validation.RequiredID("customer_id", a.CustomerID, v)
	validation.RequiredID("pet_id", a.PetID, v)
	validation.RequiredID("veterinarian_id", a.VeterinarianID, v)
	if a.Date.IsZero() {
		v.Add("date", "required")
	}
	if validation.Required("type", a.Type, v) {
		validation.OneOf("type", a.Type, Types, v)
	}
	validation.OneOf("status", string(a.Status), Statuses, v)
	validation.PositiveInt("duration", a.Duration, v)

	if a.PetID > 0 && s.dir != nil {
		p, err := s.dir.GetPet(ctx, a.PetID)
		switch {
		case errors.Is(err, apperr.ErrNotFound):
			v.Add("pet_id", "not_found")
		case err != nil:
			return err
		case a.CustomerID > 0 && p.CustomerID != a.CustomerID:
			v.Add("pet_id", "not_owned_by_customer")
		}
	}
	if a.VeterinarianID > 0 && s.dir != nil {
		if _, err := s.dir.GetVeterinarian(ctx, a.VeterinarianID); err != nil {
			if !errors.Is(err, apperr.ErrNotFound) {
				return err
			}
			v.Add("veterinarian_id", "not_found")
		}
	}

	return v.Err()
}
