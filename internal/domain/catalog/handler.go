package catalog

import (
	"net/http"

	"vet-practice-management/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, c *Catalog) {
	r.Get("/veterinarians", listVeterinariansHandler(c))
	r.Get("/veterinarians/{vetID}", getVeterinarianHandler(c))
	r.Get("/services", listServicesHandler(c))
	r.Get("/services/{serviceID}", getServiceHandler(c))
}

// RegisterSettingsRoutes expone la configuración de la clínica (solo admin).
func RegisterSettingsRoutes(r chi.Router, c *Catalog, taxRate float64) {
	r.Get("/settings", settingsHandler(c, taxRate))
}

type veterinarianResponse struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
	Email          string `json:"email"`
}

type serviceResponse struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
}

// listVeterinariansHandler godoc
// @Summary Listar veterinarios
// @Tags catalog
// @Produce json
// @Param Authorization header string true "Bearer token de sesión"
// @Success 200 {array} veterinarianResponse
// @Router /veterinarians [get]
func listVeterinariansHandler(c *Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := c.Veterinarians(r.Context())
		if err != nil {
			httpx.Error(w, http.StatusInternalServerError, "internal error")
			return
		}
		out := make([]veterinarianResponse, 0, len(items))
		for _, v := range items {
			out = append(out, toVeterinarianResponse(v))
		}
		httpx.JSON(w, http.StatusOK, out)
	}
}

func getVeterinarianHandler(c *Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := httpx.IDParam(r, "vetID")
		if !ok {
			httpx.Error(w, http.StatusNotFound, "veterinarian not found")
			return
		}
		v, err := c.Veterinarian(r.Context(), id)
		if err != nil {
			httpx.WriteError(w, err, "veterinarian not found")
			return
		}
		httpx.JSON(w, http.StatusOK, toVeterinarianResponse(v))
	}
}

// listServicesHandler godoc
// @Summary Listar servicios facturables
// @Tags catalog
// @Produce json
// @Param Authorization header string true "Bearer token de sesión"
// @Param category query string false "Filtra por categoría"
// @Success 200 {array} serviceResponse
// @Router /services [get]
func listServicesHandler(c *Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := c.Services(r.Context(), r.URL.Query().Get("category"))
		if err != nil {
			httpx.Error(w, http.StatusInternalServerError, "internal error")
			return
		}
		out := make([]serviceResponse, 0, len(items))
		for _, s := range items {
			out = append(out, toServiceResponse(s))
		}
		httpx.JSON(w, http.StatusOK, out)
	}
}

func getServiceHandler(c *Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := httpx.IDParam(r, "serviceID")
		if !ok {
			httpx.Error(w, http.StatusNotFound, "service not found")
			return
		}
		s, err := c.Service(r.Context(), id)
		if err != nil {
			httpx.WriteError(w, err, "service not found")
			return
		}
		httpx.JSON(w, http.StatusOK, toServiceResponse(s))
	}
}

type settingsResponse struct {
	TaxRate       float64                `json:"tax_rate"`
	Veterinarians []veterinarianResponse `json:"veterinarians"`
	Services      []serviceResponse      `json:"services"`
}

// settingsHandler godoc
// @Summary Configuración de la clínica
// @Description Tasa de impuesto vigente, veterinarios y servicios facturables.
// @Tags settings
// @Produce json
// @Param Authorization header string true "Bearer token de sesión"
// @Success 200 {object} settingsResponse
// @Failure 403 {object} httpx.ErrorResponse
// @Router /settings [get]
func settingsHandler(c *Catalog, taxRate float64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vets, err := c.Veterinarians(r.Context())
		if err != nil {
			httpx.Error(w, http.StatusInternalServerError, "internal error")
			return
		}
		services, err := c.Services(r.Context(), "")
		if err != nil {
			httpx.Error(w, http.StatusInternalServerError, "internal error")
			return
		}
		out := settingsResponse{
			TaxRate:       taxRate,
			Veterinarians: make([]veterinarianResponse, 0, len(vets)),
			Services:      make([]serviceResponse, 0, len(services)),
		}
		for _, v := range vets {
			out.Veterinarians = append(out.Veterinarians, toVeterinarianResponse(v))
		}
		for _, s := range services {
			out.Services = append(out.Services, toServiceResponse(s))
		}
		httpx.JSON(w, http.StatusOK, out)
	}
}

func toVeterinarianResponse(v Veterinarian) veterinarianResponse {
	return veterinarianResponse{ID: v.ID, Name: v.Name, Specialization: v.Specialization, Email: v.Email}
}

func toServiceResponse(s Service) serviceResponse {
	return serviceResponse{ID: s.ID, Name: s.Name, Price: s.Price, Category: s.Category}
}
