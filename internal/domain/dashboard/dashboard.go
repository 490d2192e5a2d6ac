// Package dashboard arma las vistas derivadas de la pantalla inicial
// y la navegación por rol. Solo lectura.
package dashboard

import (
	"context"
	"sort"
	"time"

	"vet-practice-management/internal/domain/appointments"
	"vet-practice-management/internal/domain/calendar"
	"vet-practice-management/internal/domain/customers"
	"vet-practice-management/internal/domain/invoices"
	"vet-practice-management/internal/domain/pets"
)

const (
	todayPreview    = 5
	upcomingPreview = 4
	upcomingDays    = 7
)

type AppointmentLister interface {
	List(ctx context.Context, f appointments.ListFilter) ([]appointments.Appointment, error)
	Now() time.Time
}

type CustomerLister interface {
	List(ctx context.Context, q string) ([]customers.Customer, error)
}

type PetLister interface {
	List(ctx context.Context) ([]pets.Pet, error)
}

type InvoiceLister interface {
	List(ctx context.Context, f invoices.ListFilter) ([]invoices.Invoice, error)
}

type Service struct {
	appts     AppointmentLister
	customers CustomerLister
	pets      PetLister
	invoices  InvoiceLister
}

func NewService(a AppointmentLister, c CustomerLister, p PetLister, i InvoiceLister) *Service {
	return &Service{appts: a, customers: c, pets: p, invoices: i}
}

type Overview struct {
	Date            time.Time
	TodayCount      int
	Today           []appointments.Appointment // primeras 5
	Customers       int
	Pets            int
	PendingInvoices int
	UpcomingCount   int
	Upcoming        []appointments.Appointment // primeras 4
}

// Overview: citas de hoy (orden por hora), totales y próximas citas entre
// mañana 00:00 y hoy+7 días.
func (s *Service) Overview(ctx context.Context) (Overview, error) {
	now := s.appts.Now()
	all, err := s.appts.List(ctx, appointments.ListFilter{})
	if err != nil {
		return Overview{}, err
	}
	cs, err := s.customers.List(ctx, "")
	if err != nil {
		return Overview{}, err
	}
	ps, err := s.pets.List(ctx)
	if err != nil {
		return Overview{}, err
	}
	pending, err := s.invoices.List(ctx, invoices.ListFilter{Status: invoices.StatusPending})
	if err != nil {
		return Overview{}, err
	}

	today := calendar.AppointmentsOn(all, now)
	upcoming := Upcoming(all, now)

	return Overview{
		Date:            calendar.StartOfDay(now),
		TodayCount:      len(today),
		Today:           head(today, todayPreview),
		Customers:       len(cs),
		Pets:            len(ps),
		PendingInvoices: len(pending),
		UpcomingCount:   len(upcoming),
		Upcoming:        head(upcoming, upcomingPreview),
	}, nil
}

// Upcoming filtra [mañana 00:00, now+7d] y ordena por fecha.
func Upcoming(list []appointments.Appointment, now time.Time) []appointments.Appointment {
	from := calendar.StartOfDay(now).AddDate(0, 0, 1)
	to := now.AddDate(0, 0, upcomingDays)

	out := make([]appointments.Appointment, 0)
	for _, a := range list {
		if !a.Date.Before(from) && !a.Date.After(to) {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

func head(list []appointments.Appointment, n int) []appointments.Appointment {
	if len(list) > n {
		return list[:n]
	}
	return list
}
