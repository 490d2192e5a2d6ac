package customers

import (
	"net/http"

	"vet-practice-management/internal/platform/httpx"
	"vet-practice-management/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

// petsByCustomer lo provee el módulo pets (evita ciclos de imports).
func RegisterRoutes(r chi.Router, svc *Service, petsByCustomer http.HandlerFunc) {
	r.Route("/customers", func(cr chi.Router) {
		cr.Post("/", createCustomerHandler(svc))
		cr.Get("/", listCustomersHandler(svc))
		cr.Get("/{customerID}", getCustomerHandler(svc))
		cr.Patch("/{customerID}", updateCustomerHandler(svc))
		cr.Get("/{customerID}/pets", petsByCustomer)

		// Borra también las mascotas del cliente
		cr.Delete("/{customerID}", deleteCustomerHandler(svc))
	})
}

type customerRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// updateCustomerRequest usa punteros para PATCH real: nil = no tocar.
type updateCustomerRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

type customerResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address,omitempty"`
}

type deleteCustomerResponse struct {
	ID            int64   `json:"id"`
	DeletedPetIDs []int64 `json:"deleted_pet_ids"`
}

// createCustomerHandler godoc
// @Summary Crear cliente
// @Description Registra un cliente. Valida nombre (mín. 2), email (formato y único) y teléfono (mín. 10 dígitos).
// @Tags customers
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token de sesión"
// @Param payload body customerRequest true "Datos del cliente"
// @Success 201 {object} customerResponse
// @Failure 400 {object} httpx.ErrorResponse "invalid json"
// @Failure 422 {object} httpx.ErrorResponse "validation failed"
// @Router /customers [post]
func createCustomerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req customerRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		c, err := svc.Create(r.Context(), CreateInput{
			Name:    req.Name,
			Email:   req.Email,
			Phone:   req.Phone,
			Address: req.Address,
		})
		if err != nil {
			httpx.WriteError(w, err, "customer not found")
			return
		}

		httpx.JSON(w, http.StatusCreated, toCustomerResponse(c))
	}
}

// listCustomersHandler godoc
// @Summary Listar clientes
// @Tags customers
// @Produce json
// @Param Authorization header string true "Bearer token de sesión"
// @Param q query string false "Búsqueda por nombre, email o teléfono"
// @Success 200 {array} customerResponse
// @Router /customers [get]
func listCustomersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context(), r.URL.Query().Get("q"))
		if err != nil {
			httpx.Error(w, http.StatusInternalServerError, "internal error")
			return
		}

		out := make([]customerResponse, 0, len(items))
		for _, c := range items {
			out = append(out, toCustomerResponse(c))
		}
		httpx.JSON(w, http.StatusOK, out)
	}
}

func getCustomerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := httpx.IDParam(r, "customerID")
		if !ok {
			httpx.Error(w, http.StatusNotFound, "customer not found")
			return
		}

		c, err := svc.GetByID(r.Context(), id)
		if err != nil {
			httpx.WriteError(w, err, "customer not found")
			return
		}
		httpx.JSON(w, http.StatusOK, toCustomerResponse(c))
	}
}

func updateCustomerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := httpx.IDParam(r, "customerID")
		if !ok {
			httpx.Error(w, http.StatusNotFound, "customer not found")
			return
		}

		var req updateCustomerRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		c, err := svc.Update(r.Context(), id, Patch{
			Name:    req.Name,
			Email:   req.Email,
			Phone:   req.Phone,
			Address: req.Address,
		})
		if err != nil {
			httpx.WriteError(w, err, "customer not found")
			return
		}
		httpx.JSON(w, http.StatusOK, toCustomerResponse(c))
	}
}

// deleteCustomerHandler godoc
// @Summary Borrar cliente
// @Description Borra el cliente y sus mascotas. Si el cliente o sus mascotas tienen citas, historias clínicas o facturas responde 409 y no borra nada.
// @Tags customers
// @Produce json
// @Param Authorization header string true "Bearer token de sesión"
// @Param customerID path int true "ID del cliente"
// @Success 200 {object} deleteCustomerResponse
// @Failure 404 {object} httpx.ErrorResponse "customer not found"
// @Failure 409 {object} httpx.ErrorResponse "referenced"
// @Router /customers/{customerID} [delete]
func deleteCustomerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := httpx.IDParam(r, "customerID")
		if !ok {
			httpx.Error(w, http.StatusNotFound, "customer not found")
			return
		}

		petIDs, err := svc.Delete(r.Context(), id)
		if err != nil {
			httpx.WriteError(w, err, "customer not found")
			return
		}

		logger.FromContext(r.Context()).Info("customer deleted", map[string]any{
			"customer_id":  id,
			"pets_removed": len(petIDs),
		})
		httpx.JSON(w, http.StatusOK, deleteCustomerResponse{ID: id, DeletedPetIDs: petIDs})
	}
}

func toCustomerResponse(c Customer) customerResponse {
	return customerResponse{
		ID:      c.ID,
		Name:    c.Name,
		Email:   c.Email,
		Phone:   c.Phone,
		Address: c.Address,
	}
}
