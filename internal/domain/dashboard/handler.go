package dashboard

import (
	"net/http"
	"time"

	"vet-practice-management/internal/domain/appointments"
	"vet-practice-management/internal/middleware"
	"vet-practice-management/internal/platform/httpx"
	"vet-practice-management/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/dashboard", overviewHandler(svc))
}

// RegisterNavigation va fuera de los grupos por sección: cualquier sesión válida la ve.
func RegisterNavigation(r chi.Router) {
	r.Get("/navigation", navigationHandler())
}

type overviewResponse struct {
	Date            string                  `json:"date"`
	TodayCount      int                     `json:"today_count"`
	Today           []appointments.Response `json:"today"`
	Customers       int                     `json:"customers"`
	Pets            int                     `json:"pets"`
	PendingInvoices int                     `json:"pending_invoices"`
	UpcomingCount   int                     `json:"upcoming_count"`
	Upcoming        []appointments.Response `json:"upcoming"`
}

type navItemResponse struct {
	Section string `json:"section"`
	Name    string `json:"name"`
	Href    string `json:"href"`
}

type navigationResponse struct {
	Role  string            `json:"role"`
	Items []navItemResponse `json:"items"`
}

// overviewHandler godoc
// @Summary Resumen del día
// @Tags dashboard
// @Produce json
// @Param Authorization header string true "Bearer token de sesión"
// @Success 200 {object} overviewResponse
// @Failure 401 {object} httpx.ErrorResponse "unauthorized"
// @Router /dashboard [get]
func overviewHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ov, err := svc.Overview(r.Context())
		if err != nil {
			httpx.Error(w, http.StatusInternalServerError, "internal error")
			return
		}
		httpx.JSON(w, http.StatusOK, overviewResponse{
			Date:            ov.Date.Format(time.DateOnly),
			TodayCount:      ov.TodayCount,
			Today:           toResponses(ov.Today),
			Customers:       ov.Customers,
			Pets:            ov.Pets,
			PendingInvoices: ov.PendingInvoices,
			UpcomingCount:   ov.UpcomingCount,
			Upcoming:        toResponses(ov.Upcoming),
		})
	}
}

// navigationHandler godoc
// @Summary Secciones visibles para el rol de la sesión
// @Tags auth
// @Produce json
// @Param Authorization header string true "Bearer token de sesión"
// @Success 200 {object} navigationResponse
// @Failure 401 {object} httpx.ErrorResponse "unauthorized"
// @Router /navigation [get]
func navigationHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpx.Error(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		items := auth.VisibleFor(claims.Role)
		out := navigationResponse{Role: string(claims.Role), Items: make([]navItemResponse, 0, len(items))}
		for _, it := range items {
			out.Items = append(out.Items, navItemResponse{Section: string(it.Section), Name: it.Name, Href: it.Href})
		}
		httpx.JSON(w, http.StatusOK, out)
	}
}

func toResponses(list []appointments.Appointment) []appointments.Response {
	out := make([]appointments.Response, 0, len(list))
	for _, a := range list {
		out = append(out, appointments.ToResponse(a))
	}
	return out
}
