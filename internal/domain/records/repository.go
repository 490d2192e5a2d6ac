package records

import (
	"context"

	"vet-practice-management/internal/domain/catalog"
	"vet-practice-management/internal/domain/pets"
)

type Repository interface {
	AddRecord(ctx context.Context, m MedicalRecord) (MedicalRecord, error)
	UpdateRecord(ctx context.Context, id int64, p Patch) (MedicalRecord, error)
	GetRecord(ctx context.Context, id int64) (MedicalRecord, error)
	ListRecords(ctx context.Context) ([]MedicalRecord, error)
}

type Directory interface {
	GetPet(ctx context.Context, id int64) (pets.Pet, error)
	GetVeterinarian(ctx context.Context, id int64) (catalog.Veterinarian, error)
}

type ListFilter struct {
	CustomerID     int64
	PetID          int64
	VeterinarianID int64
	Type           string
}

func (f ListFilter) Match(m MedicalRecord) bool {
	if f.CustomerID > 0 && m.CustomerID != f.CustomerID {
		return false
	}
	if f.PetID > 0 && m.PetID != f.PetID {
		return false
	}
	if f.VeterinarianID > 0 && m.VeterinarianID != f.VeterinarianID {
		return false
	}
	if f.Type != "" && m.Type != f.Type {
		return false
	}
	return true
}
