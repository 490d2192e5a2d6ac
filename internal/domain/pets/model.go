package pets

// NoAllergies es el valor centinela para "sin alergias".
const NoAllergies = "None"

// Pet pertenece siempre a un único cliente vivo (CustomerID).
type Pet struct {
	ID      int64
	Name    string
	Species string // Dog, Cat, ...
	Breed   string
	Age     int    // años
	Weight  string // texto libre: "65 lbs"

	Allergies  string
	CustomerID int64
}

func (p Pet) HasAllergies() bool {
	return p.Allergies != "" && p.Allergies != NoAllergies
}

// Patch para PATCH real: nil = no tocar.
type Patch struct {
	Name       *string
	Species    *string
	Breed      *string
	Age        *int
	Weight     *string
	Allergies  *string
	CustomerID *int64
}

func (p Patch) Apply(pet *Pet) {
	if p.Name != nil {
		pet.Name = *p.Name
	}
	if p.Species != nil {
		pet.Species = *p.Species
	}
	if p.Breed != nil {
		pet.Breed = *p.Breed
	}
	if p.Age != nil {
		pet.Age = *p.Age
	}
	if p.Weight != nil {
		pet.Weight = *p.Weight
	}
	if p.Allergies != nil {
		pet.Allergies = *p.Allergies
	}
	if p.CustomerID != nil {
		pet.CustomerID = *p.CustomerID
	}
}
