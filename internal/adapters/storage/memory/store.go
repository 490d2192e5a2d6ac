// Package memory implementa el Entity Store: única fuente de verdad en proceso
// para clientes, mascotas, catálogo, citas, registros clínicos y facturas.
//
// Un solo Store satisface los Repository de cada dominio. Todas las mutaciones
// pasan por el mismo RWMutex y los slices se copian al entrar y al salir.
package memory

import (
	"fmt"
	"sync"
	"time"

	"vet-practice-management/internal/domain/appointments"
	"vet-practice-management/internal/domain/apperr"
	"vet-practice-management/internal/domain/billing"
	"vet-practice-management/internal/domain/catalog"
	"vet-practice-management/internal/domain/customers"
	"vet-practice-management/internal/domain/invoices"
	"vet-practice-management/internal/domain/pets"
	"vet-practice-management/internal/domain/records"
)

type Options struct {
	// Calculator calcula los totales de factura. nil => billing.DefaultTaxRate;
	// una tasa 0 se elige pasando billing.NewCalculator(0).
	Calculator *billing.Calculator
	Location   *time.Location
	Now        func() time.Time
}

type Store struct {
	mu sync.RWMutex

	lastID int64
	seeded bool

	customers    []customers.Customer
	pets         []pets.Pet
	vets         []catalog.Veterinarian
	services     []catalog.Service
	appointments []appointments.Appointment
	records      []records.MedicalRecord
	invoices     []invoices.Invoice

	calc billing.Calculator
	loc  *time.Location
	now  func() time.Time
}

func New(opts Options) *Store {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	calc := billing.NewCalculator(billing.DefaultTaxRate)
	if opts.Calculator != nil {
		calc = *opts.Calculator
	}
	return &Store{
		calc: calc,
		loc:  opts.Location,
		now:  opts.Now,
	}
}

// Calculator es la única fuente de la tasa: la usan el store y los handlers de facturas.
func (s *Store) Calculator() billing.Calculator { return s.calc }

// nextID: contador único para todas las colecciones. Requiere mu tomado.
func (s *Store) nextID() int64 {
	s.lastID++
	return s.lastID
}

// Counts alimenta el dashboard y los gauges de métricas.
type Counts struct {
	Customers       int
	Pets            int
	Appointments    int
	MedicalRecords  int
	Invoices        int
	PendingInvoices int
}

func (s *Store) Counts() Counts {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c := Counts{
		Customers:      len(s.customers),
		Pets:           len(s.pets),
		Appointments:   len(s.appointments),
		MedicalRecords: len(s.records),
		Invoices:       len(s.invoices),
	}
	for _, inv := range s.invoices {
		if inv.Status == invoices.StatusPending {
			c.PendingInvoices++
		}
	}
	return c
}

func notFound(kind string, id int64) error {
	return fmt.Errorf("%s %d: %w", kind, id, apperr.ErrNotFound)
}

func indexOf[T any](list []T, id int64, idOf func(T) int64) int {
	for i, v := range list {
		if idOf(v) == id {
			return i
		}
	}
	return -1
}

func removeAt[T any](list []T, i int) []T {
	return append(list[:i], list[i+1:]...)
}

var (
	_ customers.Repository    = (*Store)(nil)
	_ pets.Repository         = (*Store)(nil)
	_ catalog.Repository      = (*Store)(nil)
	_ appointments.Repository = (*Store)(nil)
	_ appointments.Directory  = (*Store)(nil)
	_ records.Repository      = (*Store)(nil)
	_ records.Directory       = (*Store)(nil)
	_ invoices.Repository     = (*Store)(nil)
	_ invoices.Directory      = (*Store)(nil)
)
