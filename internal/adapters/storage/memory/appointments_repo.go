package memory

import (
	"context"
	"time"

	"vet-practice-management/internal/domain/appointments"
)

func appointmentID(a appointments.Appointment) int64 { return a.ID }

// normalize lleva la fecha a la zona de la clínica, al segundo.
func (s *Store) normalize(t time.Time) time.Time {
	return t.In(s.loc).Truncate(time.Second)
}

func (s *Store) AddAppointment(ctx context.Context, a appointments.Appointment) (appointments.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a.ID = s.nextID()
	a.Date = s.normalize(a.Date)
	s.appointments = append(s.appointments, a)
	return a, nil
}

func (s *Store) UpdateAppointment(ctx context.Context, id int64, p appointments.Patch) (appointments.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.appointments, id, appointmentID)
	if i < 0 {
		return appointments.Appointment{}, notFound("appointment", id)
	}
	a := s.appointments[i]
	p.Apply(&a)
	a.ID = id
	a.Date = s.normalize(a.Date)
	s.appointments[i] = a
	return a, nil
}

func (s *Store) DeleteAppointment(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.appointments, id, appointmentID)
	if i < 0 {
		return notFound("appointment", id)
	}
	s.appointments = removeAt(s.appointments, i)
	return nil
}

func (s *Store) GetAppointment(ctx context.Context, id int64) (appointments.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := indexOf(s.appointments, id, appointmentID)
	if i < 0 {
		return appointments.Appointment{}, notFound("appointment", id)
	}
	return s.appointments[i], nil
}

func (s *Store) ListAppointments(ctx context.Context) ([]appointments.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]appointments.Appointment, len(s.appointments))
	copy(out, s.appointments)
	return out, nil
}
