package records

import "time"

// Types es el vocabulario de tipos de registro clínico.
var Types = []string{
	"Consultation",
	"Surgery",
	"Vaccination",
	"Dental",
	"Diagnostic",
	"Treatment",
	"Emergency",
	"Follow-up",
	"Preventive Care",
	"Laboratory Tests",
}

// MedicalRecord: Date la sella el store al crear.
type MedicalRecord struct {
	ID             int64
	CustomerID     int64
	PetID          int64
	VeterinarianID int64

	Type        string
	Procedure   string
	Notes       string
	Medications []string
	Equipment   []string
	Cost        float64
	Date        time.Time
}

// Clone copia los slices para que el llamador no comparta memoria con el store.
func (m MedicalRecord) Clone() MedicalRecord {
	m.Medications = cloneStrings(m.Medications)
	m.Equipment = cloneStrings(m.Equipment)
	return m
}

type Patch struct {
	CustomerID     *int64
	PetID          *int64
	VeterinarianID *int64
	Type           *string
	Procedure      *string
	Notes          *string
	Medications    *[]string
	Equipment      *[]string
	Cost           *float64
}

func (p Patch) Apply(m *MedicalRecord) {
	if p.CustomerID != nil {
		m.CustomerID = *p.CustomerID
	}
	if p.PetID != nil {
		m.PetID = *p.PetID
	}
	if p.VeterinarianID != nil {
		m.VeterinarianID = *p.VeterinarianID
	}
	if p.Type != nil {
		m.Type = *p.Type
	}
	if p.Procedure != nil {
		m.Procedure = *p.Procedure
	}
	if p.Notes != nil {
		m.Notes = *p.Notes
	}
	if p.Medications != nil {
		m.Medications = cloneStrings(*p.Medications)
	}
	if p.Equipment != nil {
		m.Equipment = cloneStrings(*p.Equipment)
	}
	if p.Cost != nil {
		m.Cost = *p.Cost
	}
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
