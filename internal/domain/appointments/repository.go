package appointments

import (
	"context"
	"time"

	"vet-practice-management/internal/domain/catalog"
	"vet-practice-management/internal/domain/pets"
)

type Repository interface {
	AddAppointment(ctx context.Context, a Appointment) (Appointment, error)
	UpdateAppointment(ctx context.Context, id int64, p Patch) (Appointment, error)
	DeleteAppointment(ctx context.Context, id int64) error
	GetAppointment(ctx context.Context, id int64) (Appointment, error)
	// ListAppointments devuelve en orden de inserción.
	ListAppointments(ctx context.Context) ([]Appointment, error)
}

// Directory resuelve las referencias que valida el servicio.
type Directory interface {
	GetPet(ctx context.Context, id int64) (pets.Pet, error)
	GetVeterinarian(ctx context.Context, id int64) (catalog.Veterinarian, error)
}

type ListFilter struct {
	CustomerID     int64
	PetID          int64
	VeterinarianID int64
	Statuses       []Status
	From           *time.Time
	To             *time.Time
}

func (f ListFilter) Match(a Appointment) bool {
	if f.CustomerID > 0 && a.CustomerID != f.CustomerID {
		return false
	}
	if f.PetID > 0 && a.PetID != f.PetID {
		return false
	}
	if f.VeterinarianID > 0 && a.VeterinarianID != f.VeterinarianID {
		return false
	}
	if len(f.Statuses) > 0 {
		ok := false
		for _, s := range f.Statuses {
			if a.Status == s {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	if f.From != nil && a.Date.Before(*f.From) {
		return false
	}
	if f.To != nil && a.Date.After(*f.To) {
		return false
	}
	return true
}
