package appointments

import "time"

// Appointment referencia cliente/mascota/veterinario por id.
// El store no valida esas referencias; lo hace el servicio al crear/editar.
type Appointment struct {
	ID             int64
	CustomerID     int64
	PetID          int64
	VeterinarianID int64

	Date     time.Time
	Duration int // minutos
	Type     string
	Status   Status
	Notes    string
}

func (a Appointment) End() time.Time {
	return a.Date.Add(time.Duration(a.Duration) * time.Minute)
}

type Patch struct {
	CustomerID     *int64
	PetID          *int64
	VeterinarianID *int64
	Date           *time.Time
	Duration       *int
	Type           *string
	Status         *Status
	Notes          *string
}

func (p Patch) Apply(a *Appointment) {
	if p.CustomerID != nil {
		a.CustomerID = *p.CustomerID
	}
	if p.PetID != nil {
		a.PetID = *p.PetID
	}
	if p.VeterinarianID != nil {
		a.VeterinarianID = *p.VeterinarianID
	}
	if p.Date != nil {
		a.Date = *p.Date
	}
	if p.Duration != nil {
		a.Duration = *p.Duration
	}
	if p.Type != nil {
		a.Type = *p.Type
	}
	if p.Status != nil {
		a.Status = *p.Status
	}
	if p.Notes != nil {
		a.Notes = *p.Notes
	}
}
