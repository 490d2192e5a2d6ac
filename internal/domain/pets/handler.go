package pets

import (
	"net/http"

	"vet-practice-management/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Post("/", createPetHandler(svc))
		pr.Get("/", listPetsHandler(svc))
		pr.Get("/{petID}", getPetHandler(svc))
		pr.Patch("/{petID}", updatePetHandler(svc))
		pr.Delete("/{petID}", deletePetHandler(svc))
	})
}

type createPetRequest struct {
	Name       string `json:"name"`
	Species    string `json:"species"`
	Breed      string `json:"breed"`
	Age        int    `json:"age"`
	Weight     string `json:"weight"`
	Allergies  string `json:"allergies"` // vacío => "None"
	CustomerID int64  `json:"customer_id"`
}

type updatePetRequest struct {
	Name       *string `json:"name"`
	Species    *string `json:"species"`
	Breed      *string `json:"breed"`
	Age        *int    `json:"age"`
	Weight     *string `json:"weight"`
	Allergies  *string `json:"allergies"`
	CustomerID *int64  `json:"customer_id"`
}

type petResponse struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Species      string `json:"species"`
	Breed        string `json:"breed"`
	Age          int    `json:"age"`
	Weight       string `json:"weight"`
	Allergies    string `json:"allergies"`
	HasAllergies bool   `json:"has_allergies"`
	CustomerID   int64  `json:"customer_id"`
}

// createPetHandler godoc
// @Summary Registrar mascota
// @Description Crea una mascota para un cliente existente. Si customer_id no existe responde 404.
// @Tags pets
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token de sesión"
// @Param payload body createPetRequest true "Datos de la mascota"
// @Success 201 {object} petResponse
// @Failure 400 {object} httpx.ErrorResponse "invalid json"
// @Failure 404 {object} httpx.ErrorResponse "customer not found"
// @Failure 422 {object} httpx.ErrorResponse "validation failed"
// @Router /pets [post]
func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createPetRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		p, err := svc.Create(r.Context(), CreateInput{
			Name:       req.Name,
			Species:    req.Species,
			Breed:      req.Breed,
			Age:        req.Age,
			Weight:     req.Weight,
			Allergies:  req.Allergies,
			CustomerID: req.CustomerID,
		})
		if err != nil {
			httpx.WriteError(w, err, "customer not found")
			return
		}

		httpx.JSON(w, http.StatusCreated, toPetResponse(p))
	}
}

func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customerID, err := httpx.QueryID(r, "customer_id")
		if err != nil {
			httpx.Error(w, http.StatusBadRequest, err.Error())
			return
		}

		var items []Pet
		if customerID > 0 {
			items, err = svc.ListByCustomer(r.Context(), customerID)
		} else {
			items, err = svc.List(r.Context())
		}
		if err != nil {
			httpx.Error(w, http.StatusInternalServerError, "internal error")
			return
		}
		writePets(w, items)
	}
}

// ListByCustomerHandler se monta en /customers/{customerID}/pets.
func ListByCustomerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := httpx.IDParam(r, "customerID")
		if !ok {
			httpx.Error(w, http.StatusNotFound, "customer not found")
			return
		}
		items, err := svc.ListByCustomer(r.Context(), id)
		if err != nil {
			httpx.Error(w, http.StatusInternalServerError, "internal error")
			return
		}
		writePets(w, items)
	}
}

func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := httpx.IDParam(r, "petID")
		if !ok {
			httpx.Error(w, http.StatusNotFound, "pet not found")
			return
		}
		p, err := svc.GetByID(r.Context(), id)
		if err != nil {
			httpx.WriteError(w, err, "pet not found")
			return
		}
		httpx.JSON(w, http.StatusOK, toPetResponse(p))
	}
}

func updatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := httpx.IDParam(r, "petID")
		if !ok {
			httpx.Error(w, http.StatusNotFound, "pet not found")
			return
		}

		var req updatePetRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		p, err := svc.Update(r.Context(), id, Patch{
			Name:       req.Name,
			Species:    req.Species,
			Breed:      req.Breed,
			Age:        req.Age,
			Weight:     req.Weight,
			Allergies:  req.Allergies,
			CustomerID: req.CustomerID,
		})
		if err != nil {
			httpx.WriteError(w, err, "pet not found")
			return
		}
		httpx.JSON(w, http.StatusOK, toPetResponse(p))
	}
}

func deletePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := httpx.IDParam(r, "petID")
		if !ok {
			httpx.Error(w, http.StatusNotFound, "pet not found")
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			httpx.WriteError(w, err, "pet not found")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func writePets(w http.ResponseWriter, items []Pet) {
	out := make([]petResponse, 0, len(items))
	for _, p := range items {
		out = append(out, toPetResponse(p))
	}
	httpx.JSON(w, http.StatusOK, out)
}

func toPetResponse(p Pet) petResponse {
	return petResponse{
		ID:           p.ID,
		Name:         p.Name,
		Species:      p.Species,
		Breed:        p.Breed,
		Age:          p.Age,
		Weight:       p.Weight,
		Allergies:    p.Allergies,
		HasAllergies: p.HasAllergies(),
		CustomerID:   p.CustomerID,
	}
}
