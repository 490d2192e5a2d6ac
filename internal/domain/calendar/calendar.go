// Package calendar proyecta las citas por día (vista semana o día).
// Es solo lectura: nunca modifica el store.
package calendar

import (
	"sort"
	"time"

	"vet-practice-management/internal/domain/appointments"
)

type Mode string

const (
	ModeWeek Mode = "week"
	ModeDay  Mode = "day"
)

func ParseMode(s string) Mode {
	if Mode(s) == ModeDay {
		return ModeDay
	}
	return ModeWeek
}

// Direction: -1 atrás, +1 adelante.
type Direction int

const (
	Prev Direction = -1
	Next Direction = 1
)

// StartOfDay devuelve la medianoche local de t (en su location).
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDate compara solo la fecha (sin hora) en la location de ref.
func SameDate(a, ref time.Time) bool {
	a = a.In(ref.Location())
	ay, am, ad := a.Date()
	ry, rm, rd := ref.Date()
	return ay == ry && am == rm && ad == rd
}

// WeekOf devuelve los 7 días desde el domingo anterior (o igual) a date.
func WeekOf(date time.Time) []time.Time {
	start := StartOfDay(date)
	start = start.AddDate(0, 0, -int(start.Weekday()))

	out := make([]time.Time, 0, 7)
	for i := 0; i < 7; i++ {
		out = append(out, start.AddDate(0, 0, i))
	}
	return out
}

// AppointmentsOn filtra por fecha y ordena por hora ascendente.
// El sort es estable: a igual hora se respeta el orden de inserción.
func AppointmentsOn(list []appointments.Appointment, date time.Time) []appointments.Appointment {
	out := make([]appointments.Appointment, 0)
	for _, a := range list {
		if SameDate(a.Date, date) {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// Navigate mueve la fecha de referencia ±7 días (semana) o ±1 día (día).
func Navigate(ref time.Time, dir Direction, mode Mode) time.Time {
	step := 1
	if mode == ModeWeek {
		step = 7
	}
	return ref.AddDate(0, 0, step*int(dir))
}

// Today resetea la referencia a la fecha actual.
func Today(now time.Time) time.Time {
	return StartOfDay(now)
}

// Days devuelve los días visibles para el modo.
func Days(ref time.Time, mode Mode) []time.Time {
	if mode == ModeDay {
		return []time.Time{StartOfDay(ref)}
	}
	return WeekOf(ref)
}

type Day struct {
	Date         time.Time
	Appointments []appointments.Appointment
}

type View struct {
	Mode      Mode
	Reference time.Time
	Days      []Day

	// Contadores globales que muestra la pantalla de agenda.
	Scheduled int
	Completed int
}

// Project arma la vista completa para la referencia y el modo.
func Project(list []appointments.Appointment, ref time.Time, mode Mode) View {
	v := View{
		Mode:      mode,
		Reference: StartOfDay(ref),
	}
	for _, d := range Days(ref, mode) {
		v.Days = append(v.Days, Day{
			Date:         d,
			Appointments: AppointmentsOn(list, d),
		})
	}
	for _, a := range list {
		switch a.Status {
		case appointments.StatusScheduled:
			v.Scheduled++
		case appointments.StatusCompleted:
			v.Completed++
		}
	}
	return v
}
