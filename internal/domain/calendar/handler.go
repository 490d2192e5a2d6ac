package calendar

import (
	"net/http"
	"strings"
	"time"

	"vet-practice-management/internal/domain/appointments"
	"vet-practice-management/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *appointments.Service) {
	r.Get("/calendar", calendarHandler(svc))
}

type dayResponse struct {
	Date         string                  `json:"date"` // YYYY-MM-DD
	Weekday      string                  `json:"weekday"`
	Appointments []appointments.Response `json:"appointments"`
}

type viewResponse struct {
	View      Mode          `json:"view"`
	Reference string        `json:"reference"`
	Prev      string        `json:"prev"`
	Next      string        `json:"next"`
	Today     string        `json:"today"`
	Days      []dayResponse `json:"days"`
	Scheduled int           `json:"scheduled"`
	Completed int           `json:"completed"`
}

// calendarHandler godoc
// @Summary Agenda por semana o día
// @Description Agrupa las citas por día. La semana empieza en domingo. move=prev|next|today desplaza la referencia antes de proyectar.
// @Tags appointments
// @Produce json
// @Param Authorization header string true "Bearer token de sesión"
// @Param date query string false "Fecha de referencia YYYY-MM-DD (default hoy)"
// @Param view query string false "week (default) o day"
// @Param move query string false "prev, next o today"
// @Success 200 {object} viewResponse
// @Failure 400 {object} httpx.ErrorResponse "fecha inválida"
// @Router /calendar [get]
func calendarHandler(svc *appointments.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		loc := svc.Location()
		mode := ParseMode(r.URL.Query().Get("view"))

		ref := Today(svc.Now())
		if v := strings.TrimSpace(r.URL.Query().Get("date")); v != "" {
			t, err := appointments.ParseDay(v, loc)
			if err != nil {
				httpx.Error(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
				return
			}
			ref = t
		}

		switch r.URL.Query().Get("move") {
		case "prev":
			ref = Navigate(ref, Prev, mode)
		case "next":
			ref = Navigate(ref, Next, mode)
		case "today":
			ref = Today(svc.Now())
		}

		items, err := svc.List(r.Context(), appointments.ListFilter{})
		if err != nil {
			httpx.Error(w, http.StatusInternalServerError, "internal error")
			return
		}

		httpx.JSON(w, http.StatusOK, toViewResponse(Project(items, ref, mode), svc.Now()))
	}
}

func toViewResponse(v View, now time.Time) viewResponse {
	const day = "2006-01-02"
	out := viewResponse{
		View:      v.Mode,
		Reference: v.Reference.Format(day),
		Prev:      Navigate(v.Reference, Prev, v.Mode).Format(day),
		Next:      Navigate(v.Reference, Next, v.Mode).Format(day),
		Today:     Today(now).Format(day),
		Days:      make([]dayResponse, 0, len(v.Days)),
		Scheduled: v.Scheduled,
		Completed: v.Completed,
	}
	for _, d := range v.Days {
		appts := make([]appointments.Response, 0, len(d.Appointments))
		for _, a := range d.Appointments {
			appts = append(appts, appointments.ToResponse(a))
		}
		out.Days = append(out.Days, dayResponse{
			Date:         d.Date.Format(day),
			Weekday:      d.Date.Weekday().String(),
			Appointments: appts,
		})
	}
	return out
}
