package records

import (
	"context"
	"errors"
	"strings"

	"vet-practice-management/internal/domain/apperr"
	"vet-practice-management/internal/validation"
)

type Service struct {
	repo Repository
	dir  Directory
}

func NewService(repo Repository, dir Directory) *Service {
	return &Service{repo: repo, dir: dir}
}

type CreateInput struct {
	CustomerID     int64
	PetID          int64
	VeterinarianID int64
	Type           string
	Procedure      string
	Notes          string
	Medications    []string
	Equipment      []string
	Cost           float64
}

func (s *Service) Create(ctx context.Context, in CreateInput) (MedicalRecord, error) {
	m := MedicalRecord{
		CustomerID:     in.CustomerID,
		PetID:          in.PetID,
		VeterinarianID: in.VeterinarianID,
		Type:           strings.TrimSpace(in.Type),
		Procedure:      strings.TrimSpace(in.Procedure),
		Notes:          strings.TrimSpace(in.Notes),
		Medications:    compact(in.Medications),
		Equipment:      compact(in.Equipment),
		Cost:           in.Cost,
	}
	if err := s.validate(ctx, m); err != nil {
		return MedicalRecord{}, err
	}
	return s.repo.AddRecord(ctx, m)
}

func (s *Service) Update(ctx context.Context, id int64, p Patch) (MedicalRecord, error) {
	current, err := s.repo.GetRecord(ctx, id)
	if err != nil {
		return MedicalRecord{}, err
	}
	p.Type = trimPtr(p.Type)
	p.Procedure = trimPtr(p.Procedure)
	p.Notes = trimPtr(p.Notes)
	if p.Medications != nil {
		c := compact(*p.Medications)
		p.Medications = &c
	}
	if p.Equipment != nil {
		c := compact(*p.Equipment)
		p.Equipment = &c
	}

	merged := current.Clone()
	p.Apply(&merged)
	if err := s.validate(ctx, merged); err != nil {
		return MedicalRecord{}, err
	}
	return s.repo.UpdateRecord(ctx, id, p)
}

func (s *Service) GetByID(ctx context.Context, id int64) (MedicalRecord, error) {
	return s.repo.GetRecord(ctx, id)
}

// List devuelve el historial en orden de inserción.
func (s *Service) List(ctx context.Context, f ListFilter) ([]MedicalRecord, error) {
	items, err := s.repo.ListRecords(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]MedicalRecord, 0, len(items))
	for _, m := range items {
		if f.Match(m) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *Service) validate(ctx context.Context, m MedicalRecord) error {
	v := validation.Violations{}
	validation.RequiredID("customer_id", m.CustomerID, v)
	validation.RequiredID("pet_id", m.PetID, v)
	validation.RequiredID("veterinarian_id", m.VeterinarianID, v)
	if validation.Required("type", m.Type, v) {
		validation.OneOf("type", m.Type, Types, v)
	}
	validation.Required("procedure", m.Procedure, v)
	validation.Required("notes", m.Notes, v)
	validation.NonNegativeFloat("cost", m.Cost, v)

	if m.PetID > 0 && s.dir != nil {
		p, err := s.dir.GetPet(ctx, m.PetID)
		switch {
		case errors.Is(err, apperr.ErrNotFound):
			v.Add("pet_id", "not_found")
		case err != nil:
			return err
		case m.CustomerID > 0 && p.CustomerID != m.CustomerID:
			v.Add("pet_id", "not_owned_by_customer")
		}
	}
	if m.VeterinarianID > 0 && s.dir != nil {
		if _, err := s.dir.GetVeterinarian(ctx, m.VeterinarianID); err != nil {
			if !errors.Is(err, apperr.ErrNotFound) {
				return err
			}
			v.Add("veterinarian_id", "not_found")
		}
	}
	return v.Err()
}

// compact recorta y descarta entradas vacías (medicamentos, equipamiento).
func compact(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}
