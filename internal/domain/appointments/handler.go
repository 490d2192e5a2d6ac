package appointments

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"vet-practice-management/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/appointments", func(ar chi.Router) {
		ar.Post("/", createAppointmentHandler(svc))
		ar.Get("/", listAppointmentsHandler(svc))
		ar.Get("/{appointmentID}", getAppointmentHandler(svc))
		ar.Patch("/{appointmentID}", updateAppointmentHandler(svc))
		ar.Delete("/{appointmentID}", deleteAppointmentHandler(svc))
	})
}

// createAppointmentRequest: date acepta RFC3339, o YYYY-MM-DD + time HH:MM (hora local de la clínica).
type createAppointmentRequest struct {
	CustomerID     int64  `json:"customer_id"`
	PetID          int64  `json:"pet_id"`
	VeterinarianID int64  `json:"veterinarian_id"`
	Date           string `json:"date"`
	Time           string `json:"time"`
	Duration       int    `json:"duration"`
	Type           string `json:"type" enums:"Consultation,Vaccination,Surgery,Dental Cleaning,Check-up,Emergency,Follow-up,Grooming,Spay/Neuter,X-Ray,Blood Work"`
	Status         Status `json:"status"` // opcional, default scheduled
	Notes          string `json:"notes"`
}

type updateAppointmentRequest struct {
	CustomerID     *int64  `json:"customer_id"`
	PetID          *int64  `json:"pet_id"`
	VeterinarianID *int64  `json:"veterinarian_id"`
	Date           *string `json:"date"`
	Time           *string `json:"time"`
	Duration       *int    `json:"duration"`
	Type           *string `json:"type"`
	Status         *Status `json:"status"`
	Notes          *string `json:"notes"`
}

// Response es el formato JSON de una cita.
type Response struct {
	ID             int64     `json:"id"`
	CustomerID     int64     `json:"customer_id"`
	PetID          int64     `json:"pet_id"`
	VeterinarianID int64     `json:"veterinarian_id"`
	Date           time.Time `json:"date"`
	EndsAt         time.Time `json:"ends_at"`
	Duration       int       `json:"duration"`
	Type           string    `json:"type"`
	Status         Status    `json:"status"`
	Notes          string    `json:"notes"`
}

// createAppointmentHandler godoc
// @Summary Agendar cita
// @Description Crea una cita. No se permiten fechas pasadas. La mascota debe pertenecer al cliente.
// @Tags appointments
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token de sesión"
// @Param payload body createAppointmentRequest true "Datos de la cita"
// @Success 201 {object} appointments.Response
// @Failure 400 {object} httpx.ErrorResponse "invalid json / fecha inválida"
// @Failure 422 {object} httpx.ErrorResponse "validation failed"
// @Router /appointments [post]
func createAppointmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createAppointmentRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		var when time.Time
		if strings.TrimSpace(req.Date) != "" {
			t, err := ParseWhen(req.Date, req.Time, svc.Location())
			if err != nil {
				httpx.Error(w, http.StatusBadRequest, err.Error())
				return
			}
			when = t
		}

		a, err := svc.Create(r.Context(), CreateInput{
			CustomerID:     req.CustomerID,
			PetID:          req.PetID,
			VeterinarianID: req.VeterinarianID,
			Date:           when,
			Duration:       req.Duration,
			Type:           req.Type,
			Status:         req.Status,
			Notes:          req.Notes,
		})
		if err != nil {
			httpx.WriteError(w, err, "appointment not found")
			return
		}
		httpx.JSON(w, http.StatusCreated, ToResponse(a))
	}
}

// listAppointmentsHandler godoc
// @Summary Listar citas
// @Tags appointments
// @Produce json
// @Param Authorization header string true "Bearer token de sesión"
// @Param customer_id query int false "Filtra por cliente"
// @Param pet_id query int false "Filtra por mascota"
// @Param veterinarian_id query int false "Filtra por veterinario"
// @Param status query string false "CSV de estados (scheduled,confirmed,...)"
// @Param from query string false "Desde (YYYY-MM-DD o RFC3339)"
// @Param to query string false "Hasta (YYYY-MM-DD o RFC3339)"
// @Success 200 {array} appointments.Response
// @Failure 400 {object} httpx.ErrorResponse "filtros inválidos"
// @Router /appointments [get]
func listAppointmentsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := parseListFilter(r, svc.Location())
		if err != nil {
			httpx.Error(w, http.StatusBadRequest, err.Error())
			return
		}

		items, err := svc.List(r.Context(), filter)
		if err != nil {
			httpx.Error(w, http.StatusInternalServerError, "internal error")
			return
		}
		out := make([]Response, 0, len(items))
		for _, a := range items {
			out = append(out, ToResponse(a))
		}
		httpx.JSON(w, http.StatusOK, out)
	}
}

func getAppointmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := httpx.IDParam(r, "appointmentID")
		if !ok {
			httpx.Error(w, http.StatusNotFound, "appointment not found")
			return
		}
		a, err := svc.GetByID(r.Context(), id)
		if err != nil {
			httpx.WriteError(w, err, "appointment not found")
			return
		}
		httpx.JSON(w, http.StatusOK, ToResponse(a))
	}
}

func updateAppointmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := httpx.IDParam(r, "appointmentID")
		if !ok {
			httpx.Error(w, http.StatusNotFound, "appointment not found")
			return
		}

		var req updateAppointmentRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		patch := Patch{
			CustomerID:     req.CustomerID,
			PetID:          req.PetID,
			VeterinarianID: req.VeterinarianID,
			Duration:       req.Duration,
			Type:           req.Type,
			Status:         req.Status,
			Notes:          req.Notes,
		}

		// Cambiar fecha u hora: se recompone sobre la fecha actual de la cita.
		if req.Date != nil || req.Time != nil {
			current, err := svc.GetByID(r.Context(), id)
			if err != nil {
				httpx.WriteError(w, err, "appointment not found")
				return
			}
			local := current.Date.In(svc.Location())
			date, tm := local.Format("2006-01-02"), local.Format("15:04")
			if req.Date != nil {
				date = *req.Date
			}
			if req.Time != nil {
				tm = *req.Time
			}
			when, err := ParseWhen(date, tm, svc.Location())
			if err != nil {
				httpx.Error(w, http.StatusBadRequest, err.Error())
				return
			}
			patch.Date = &when
		}

		a, err := svc.Update(r.Context(), id, patch)
		if err != nil {
			httpx.WriteError(w, err, "appointment not found")
			return
		}
		httpx.JSON(w, http.StatusOK, ToResponse(a))
	}
}

func deleteAppointmentHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := httpx.IDParam(r, "appointmentID")
		if !ok {
			httpx.Error(w, http.StatusNotFound, "appointment not found")
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			httpx.WriteError(w, err, "appointment not found")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// ParseWhen arma la fecha-hora de la cita.
// - date RFC3339 => se usa tal cual (time se ignora)
// - date YYYY-MM-DD + time HH:MM => hora local en loc
func ParseWhen(date, tm string, loc *time.Location) (time.Time, error) {
	date = strings.TrimSpace(date)
	tm = strings.TrimSpace(tm)

	if t, err := time.Parse(time.RFC3339, date); err == nil {
		return t, nil
	}
	if tm == "" {
		return time.Time{}, errors.New("time is required when date is YYYY-MM-DD")
	}
	t, err := time.ParseInLocation("2006-01-02 15:04", date+" "+tm, loc)
	if err != nil {
		return time.Time{}, errors.New("date must be RFC3339 or YYYY-MM-DD with time HH:MM")
	}
	return t, nil
}

// ParseDay acepta YYYY-MM-DD (medianoche local) o RFC3339.
func ParseDay(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation("2006-01-02", s, loc); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.In(loc), nil
}

func parseListFilter(r *http.Request, loc *time.Location) (ListFilter, error) {
	var f ListFilter
	var err error

	if f.CustomerID, err = httpx.QueryID(r, "customer_id"); err != nil {
		return ListFilter{}, err
	}
	if f.PetID, err = httpx.QueryID(r, "pet_id"); err != nil {
		return ListFilter{}, err
	}
	if f.VeterinarianID, err = httpx.QueryID(r, "veterinarian_id"); err != nil {
		return ListFilter{}, err
	}

	// status=scheduled,confirmed
	if v := strings.TrimSpace(r.URL.Query().Get("status")); v != "" {
		for _, p := range strings.Split(v, ",") {
			s := Status(strings.TrimSpace(p))
			if s == "" {
				continue
			}
			f.Statuses = append(f.Statuses, s)
		}
	}

	if v := strings.TrimSpace(r.URL.Query().Get("from")); v != "" {
		t, err := ParseDay(v, loc)
		if err != nil {
			return ListFilter{}, errors.New("from must be YYYY-MM-DD or RFC3339")
		}
		f.From = &t
	}
	if v := strings.TrimSpace(r.URL.Query().Get("to")); v != "" {
		t, err := ParseDay(v, loc)
		if err != nil {
			return ListFilter{}, errors.New("to must be YYYY-MM-DD or RFC3339")
		}
		f.To = &t
	}
	return f, nil
}

// ToResponse se reutiliza en calendario y dashboard.
func ToResponse(a Appointment) Response {
	return Response{
		ID:             a.ID,
		CustomerID:     a.CustomerID,
		PetID:          a.PetID,
		VeterinarianID: a.VeterinarianID,
		Date:           a.Date,
		EndsAt:         a.End(),
		Duration:       a.Duration,
		Type:           a.Type,
		Status:         a.Status,
		Notes:          a.Notes,
	}
}

