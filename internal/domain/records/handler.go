package records

import (
	"net/http"
	"strings"
	"time"

	"vet-practice-management/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/medical-records", func(mr chi.Router) {
		mr.Post("/", createRecordHandler(svc))
		mr.Get("/", listRecordsHandler(svc))
		mr.Get("/{recordID}", getRecordHandler(svc))
		mr.Patch("/{recordID}", updateRecordHandler(svc))
	})
}

type createRecordRequest struct {
	CustomerID     int64    `json:"customer_id"`
	PetID          int64    `json:"pet_id"`
	VeterinarianID int64    `json:"veterinarian_id"`
	Type           string   `json:"type"`
	Procedure      string   `json:"procedure"`
	Notes          string   `json:"notes"`
	Medications    []string `json:"medications"`
	Equipment      []string `json:"equipment"`
	Cost           float64  `json:"cost"`
}

type updateRecordRequest struct {
	CustomerID     *int64    `json:"customer_id"`
	PetID          *int64    `json:"pet_id"`
	VeterinarianID *int64    `json:"veterinarian_id"`
	Type           *string   `json:"type"`
	Procedure      *string   `json:"procedure"`
	Notes          *string   `json:"notes"`
	Medications    *[]string `json:"medications"`
	Equipment      *[]string `json:"equipment"`
	Cost           *float64  `json:"cost"`
}

type recordResponse struct {
	ID             int64     `json:"id"`
	CustomerID     int64     `json:"customer_id"`
	PetID          int64     `json:"pet_id"`
	VeterinarianID int64     `json:"veterinarian_id"`
	Type           string    `json:"type"`
	Procedure      string    `json:"procedure"`
	Notes          string    `json:"notes"`
	Medications    []string  `json:"medications"`
	Equipment      []string  `json:"equipment"`
	Cost           float64   `json:"cost"`
	Date           time.Time `json:"date"`
}

// createRecordHandler godoc
// @Summary Registrar atención clínica
// @Description La fecha la asigna el servidor. type debe pertenecer al vocabulario de registros.
// @Tags medical-records
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token de sesión"
// @Param payload body createRecordRequest true "Datos del registro"
// @Success 201 {object} recordResponse
// @Failure 400 {object} httpx.ErrorResponse "invalid json"
// @Failure 422 {object} httpx.ErrorResponse "validation failed"
// @Router /medical-records [post]
func createRecordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createRecordRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		m, err := svc.Create(r.Context(), CreateInput{
			CustomerID:     req.CustomerID,
			PetID:          req.PetID,
			VeterinarianID: req.VeterinarianID,
			Type:           req.Type,
			Procedure:      req.Procedure,
			Notes:          req.Notes,
			Medications:    req.Medications,
			Equipment:      req.Equipment,
			Cost:           req.Cost,
		})
		if err != nil {
			httpx.WriteError(w, err, "medical record not found")
			return
		}
		httpx.JSON(w, http.StatusCreated, toRecordResponse(m))
	}
}

// listRecordsHandler godoc
// @Summary Historial clínico
// @Tags medical-records
// @Produce json
// @Param Authorization header string true "Bearer token de sesión"
// @Param customer_id query int false "Filtra por cliente"
// @Param pet_id query int false "Filtra por mascota"
// @Param veterinarian_id query int false "Filtra por veterinario"
// @Param type query string false "Filtra por tipo"
// @Success 200 {array} recordResponse
// @Router /medical-records [get]
func listRecordsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var f ListFilter
		var err error
		if f.CustomerID, err = httpx.QueryID(r, "customer_id"); err != nil {
			httpx.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		if f.PetID, err = httpx.QueryID(r, "pet_id"); err != nil {
			httpx.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		if f.VeterinarianID, err = httpx.QueryID(r, "veterinarian_id"); err != nil {
			httpx.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		f.Type = strings.TrimSpace(r.URL.Query().Get("type"))

		items, err := svc.List(r.Context(), f)
		if err != nil {
			httpx.Error(w, http.StatusInternalServerError, "internal error")
			return
		}
		out := make([]recordResponse, 0, len(items))
		for _, m := range items {
			out = append(out, toRecordResponse(m))
		}
		httpx.JSON(w, http.StatusOK, out)
	}
}

func getRecordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := httpx.IDParam(r, "recordID")
		if !ok {
			httpx.Error(w, http.StatusNotFound, "medical record not found")
			return
		}
		m, err := svc.GetByID(r.Context(), id)
		if err != nil {
			httpx.WriteError(w, err, "medical record not found")
			return
		}
		httpx.JSON(w, http.StatusOK, toRecordResponse(m))
	}
}

func updateRecordHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := httpx.IDParam(r, "recordID")
		if !ok {
			httpx.Error(w, http.StatusNotFound, "medical record not found")
			return
		}
		var req updateRecordRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		m, err := svc.Update(r.Context(), id, Patch{
			CustomerID:     req.CustomerID,
			PetID:          req.PetID,
			VeterinarianID: req.VeterinarianID,
			Type:           req.Type,
			Procedure:      req.Procedure,
			Notes:          req.Notes,
			Medications:    req.Medications,
			Equipment:      req.Equipment,
			Cost:           req.Cost,
		})
		if err != nil {
			httpx.WriteError(w, err, "medical record not found")
			return
		}
		httpx.JSON(w, http.StatusOK, toRecordResponse(m))
	}
}

func toRecordResponse(m MedicalRecord) recordResponse {
	meds, equip := m.Medications, m.Equipment
	if meds == nil {
		meds = []string{}
	}
	if equip == nil {
		equip = []string{}
	}
	return recordResponse{
		ID:             m.ID,
		CustomerID:     m.CustomerID,
		PetID:          m.PetID,
		VeterinarianID: m.VeterinarianID,
		Type:           m.Type,
		Procedure:      m.Procedure,
		Notes:          m.Notes,
		Medications:    meds,
		Equipment:      equip,
		Cost:           m.Cost,
		Date:           m.Date,
	}
}
