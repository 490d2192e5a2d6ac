package memory

import (
	"context"
	"fmt"
	"time"

	"vet-practice-management/internal/domain/appointments"
	"vet-practice-management/internal/domain/apperr"
	"vet-practice-management/internal/domain/catalog"
	"vet-practice-management/internal/domain/customers"
	"vet-practice-management/internal/domain/pets"
)

// Seed carga el dataset inicial de la clínica. Solo una vez por Store:
// la segunda llamada devuelve apperr.ErrAlreadySeeded.
// Las citas se fijan al 2024-01-15 en la zona de la clínica.
func (s *Store) Seed(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.seeded {
		return apperr.ErrAlreadySeeded
	}
	if s.lastID > 0 {
		// los ids sembrados chocarían con los ya asignados
		return fmt.Errorf("seed on non-empty store: %w", apperr.ErrConflict)
	}

	s.customers = append(s.customers,
		customers.Customer{ID: 1, Name: "John Smith", Email: "john@email.com", Phone: "555-0101", Address: "123 Main St, Anytown, ST 12345"},
		customers.Customer{ID: 2, Name: "Sarah Wilson", Email: "sarah@email.com", Phone: "555-0102", Address: "456 Oak Ave, Anytown, ST 12345"},
		customers.Customer{ID: 3, Name: "Mike Johnson", Email: "mike@email.com", Phone: "555-0103", Address: "789 Pine Rd, Anytown, ST 12345"},
	)

	s.pets = append(s.pets,
		pets.Pet{ID: 1, Name: "Buddy", Species: "Dog", Breed: "Golden Retriever", Age: 3, Weight: "65 lbs", Allergies: pets.NoAllergies, CustomerID: 1},
		pets.Pet{ID: 2, Name: "Whiskers", Species: "Cat", Breed: "Persian", Age: 2, Weight: "8 lbs", Allergies: "Chicken", CustomerID: 1},
		pets.Pet{ID: 3, Name: "Max", Species: "Dog", Breed: "German Shepherd", Age: 5, Weight: "75 lbs", Allergies: pets.NoAllergies, CustomerID: 2},
		pets.Pet{ID: 4, Name: "Luna", Species: "Cat", Breed: "Siamese", Age: 1, Weight: "6 lbs", Allergies: "Fish", CustomerID: 3},
	)

	s.vets = append(s.vets,
		catalog.Veterinarian{ID: 1, Name: "Dr. Sarah Johnson", Specialization: "General Practice", Email: "sarah.j@vetcare.com"},
		catalog.Veterinarian{ID: 2, Name: "Dr. Michael Chen", Specialization: "Surgery", Email: "michael.c@vetcare.com"},
		catalog.Veterinarian{ID: 3, Name: "Dr. Emily Rodriguez", Specialization: "Dermatology", Email: "emily.r@vetcare.com"},
	)

	s.services = append(s.services,
		catalog.Service{ID: 1, Name: "Consultation", Price: 75, Category: "Examination"},
		catalog.Service{ID: 2, Name: "Vaccination", Price: 45, Category: "Preventive"},
		catalog.Service{ID: 3, Name: "Surgery", Price: 500, Category: "Treatment"},
		catalog.Service{ID: 4, Name: "Dental Cleaning", Price: 200, Category: "Dental"},
		catalog.Service{ID: 5, Name: "X-Ray", Price: 150, Category: "Diagnostics"},
	)

	s.appointments = append(s.appointments,
		appointments.Appointment{
			ID: 1, CustomerID: 1, PetID: 1, VeterinarianID: 1,
			Date:     time.Date(2024, time.January, 15, 10, 0, 0, 0, s.loc),
			Duration: 30, Type: "Consultation", Status: appointments.StatusScheduled,
			Notes: "Annual checkup",
		},
		appointments.Appointment{
			ID: 2, CustomerID: 2, PetID: 3, VeterinarianID: 2,
			Date:     time.Date(2024, time.January, 15, 14, 0, 0, 0, s.loc),
			Duration: 60, Type: "Surgery", Status: appointments.StatusScheduled,
			Notes: "Spay surgery",
		},
	)

	// El contador arranca después del mayor id sembrado (servicios: 5).
	s.lastID = 5
	s.seeded = true
	return nil
}
