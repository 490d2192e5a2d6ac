package invoices

import (
	"net/http"
	"strings"
	"time"

	"vet-practice-management/internal/domain/billing"
	"vet-practice-management/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/invoices", func(ir chi.Router) {
		ir.Post("/", createInvoiceHandler(svc))
		ir.Get("/", listInvoicesHandler(svc))
		ir.Post("/preview", previewInvoiceHandler(svc))
		ir.Get("/summary", summaryHandler(svc))
		ir.Get("/{invoiceID}", getInvoiceHandler(svc))
		ir.Patch("/{invoiceID}", updateInvoiceHandler(svc))
	})
}

type itemRequest struct {
	ServiceID   *int64  `json:"service_id"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Price       float64 `json:"price"`
}

type createInvoiceRequest struct {
	CustomerID    int64         `json:"customer_id"`
	PetID         *int64        `json:"pet_id"`
	InvoiceNumber string        `json:"invoice_number"` // opcional, default INV-<millis>
	Items         []itemRequest `json:"items"`
	Notes         string        `json:"notes"`
}

type updateInvoiceRequest struct {
	InvoiceNumber *string        `json:"invoice_number"`
	Status        *Status        `json:"status" enums:"pending,paid,overdue,cancelled"`
	Items         *[]itemRequest `json:"items"`
	Notes         *string        `json:"notes"`
}

type previewRequest struct {
	Items []itemRequest `json:"items"`
}

type itemResponse struct {
	ServiceID   *int64  `json:"service_id,omitempty"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Price       float64 `json:"price"`
	LineTotal   float64 `json:"line_total"`
}

type totalsResponse struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
	TaxRate  float64 `json:"tax_rate"`
	// Display: los mismos montos redondeados a 2 decimales.
	Display map[string]string `json:"display"`
}

type invoiceResponse struct {
	ID            int64          `json:"id"`
	CustomerID    int64          `json:"customer_id"`
	PetID         *int64         `json:"pet_id"`
	InvoiceNumber string         `json:"invoice_number"`
	Status        Status         `json:"status"`
	Items         []itemResponse `json:"items"`
	Notes         string         `json:"notes"`
	Date          time.Time      `json:"date"`
	totalsResponse
}

type previewResponse struct {
	Items []itemResponse `json:"items"`
	totalsResponse
}

type summaryResponse struct {
	Count       int     `json:"count"`
	TotalAmount float64 `json:"total_amount"`
	Outstanding float64 `json:"outstanding"`
}

// createInvoiceHandler godoc
// @Summary Emitir factura
// @Description Filas sin descripción se descartan. service_id precarga descripción y precio. La factura nace pending y los totales los calcula el servidor.
// @Tags invoices
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token de sesión"
// @Param payload body createInvoiceRequest true "Datos de la factura"
// @Success 201 {object} invoiceResponse
// @Failure 400 {object} httpx.ErrorResponse "invalid json"
// @Failure 422 {object} httpx.ErrorResponse "validation failed"
// @Router /invoices [post]
func createInvoiceHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createInvoiceRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		inv, err := svc.Create(r.Context(), CreateInput{
			CustomerID:    req.CustomerID,
			PetID:         req.PetID,
			InvoiceNumber: req.InvoiceNumber,
			Items:         toLineItems(req.Items),
			Notes:         req.Notes,
		})
		if err != nil {
			httpx.WriteError(w, err, "invoice not found")
			return
		}
		httpx.JSON(w, http.StatusCreated, toInvoiceResponse(inv, svc.Calculator().Rate))
	}
}

// listInvoicesHandler godoc
// @Summary Listar facturas
// @Tags invoices
// @Produce json
// @Param Authorization header string true "Bearer token de sesión"
// @Param customer_id query int false "Filtra por cliente"
// @Param status query string false "pending, paid, overdue o cancelled"
// @Param q query string false "Busca en número de factura y nombre del cliente"
// @Success 200 {array} invoiceResponse
// @Router /invoices [get]
func listInvoicesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, ok := parseFilter(w, r)
		if !ok {
			return
		}
		items, err := svc.List(r.Context(), f)
		if err != nil {
			httpx.Error(w, http.StatusInternalServerError, "internal error")
			return
		}
		out := make([]invoiceResponse, 0, len(items))
		for _, inv := range items {
			out = append(out, toInvoiceResponse(inv, svc.Calculator().Rate))
		}
		httpx.JSON(w, http.StatusOK, out)
	}
}

// summaryHandler godoc
// @Summary Acumulados del listado
// @Description Usa los mismos filtros que el listado. outstanding suma pending y overdue.
// @Tags invoices
// @Produce json
// @Param Authorization header string true "Bearer token de sesión"
// @Success 200 {object} summaryResponse
// @Router /invoices/summary [get]
func summaryHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, ok := parseFilter(w, r)
		if !ok {
			return
		}
		items, err := svc.List(r.Context(), f)
		if err != nil {
			httpx.Error(w, http.StatusInternalServerError, "internal error")
			return
		}
		sum := Summarize(items)
		httpx.JSON(w, http.StatusOK, summaryResponse{
			Count:       sum.Count,
			TotalAmount: sum.TotalAmount,
			Outstanding: sum.Outstanding,
		})
	}
}

// previewInvoiceHandler godoc
// @Summary Previsualizar totales
// @Description Calcula subtotal, impuesto y total sin guardar nada.
// @Tags invoices
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token de sesión"
// @Param payload body previewRequest true "Filas"
// @Success 200 {object} previewResponse
// @Router /invoices/preview [post]
func previewInvoiceHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req previewRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		items, totals, err := svc.Preview(r.Context(), toLineItems(req.Items))
		if err != nil {
			httpx.WriteError(w, err, "service not found")
			return
		}
		httpx.JSON(w, http.StatusOK, previewResponse{
			Items:          toItemResponses(items),
			totalsResponse: toTotalsResponse(totals, svc.Calculator().Rate),
		})
	}
}

func getInvoiceHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := httpx.IDParam(r, "invoiceID")
		if !ok {
			httpx.Error(w, http.StatusNotFound, "invoice not found")
			return
		}
		inv, err := svc.GetByID(r.Context(), id)
		if err != nil {
			httpx.WriteError(w, err, "invoice not found")
			return
		}
		httpx.JSON(w, http.StatusOK, toInvoiceResponse(inv, svc.Calculator().Rate))
	}
}

// updateInvoiceHandler godoc
// @Summary Actualizar factura
// @Description Campos ausentes no se tocan. Si cambian las filas se recalculan los totales.
// @Tags invoices
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token de sesión"
// @Param invoiceID path int true "Invoice ID"
// @Param payload body updateInvoiceRequest true "Cambios"
// @Success 200 {object} invoiceResponse
// @Failure 404 {object} httpx.ErrorResponse "invoice not found"
// @Failure 422 {object} httpx.ErrorResponse "validation failed"
// @Router /invoices/{invoiceID} [patch]
func updateInvoiceHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := httpx.IDParam(r, "invoiceID")
		if !ok {
			httpx.Error(w, http.StatusNotFound, "invoice not found")
			return
		}
		var req updateInvoiceRequest
		if err := httpx.Decode(r, &req); err != nil {
			httpx.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		p := Patch{
			InvoiceNumber: req.InvoiceNumber,
			Status:        req.Status,
			Notes:         req.Notes,
		}
		if req.Items != nil {
			items := toLineItems(*req.Items)
			p.Items = &items
		}

		inv, err := svc.Update(r.Context(), id, p)
		if err != nil {
			httpx.WriteError(w, err, "invoice not found")
			return
		}
		httpx.JSON(w, http.StatusOK, toInvoiceResponse(inv, svc.Calculator().Rate))
	}
}

func parseFilter(w http.ResponseWriter, r *http.Request) (ListFilter, bool) {
	customerID, err := httpx.QueryID(r, "customer_id")
	if err != nil {
		httpx.Error(w, http.StatusBadRequest, err.Error())
		return ListFilter{}, false
	}
	status := Status(strings.TrimSpace(r.URL.Query().Get("status")))
	if status == "all" {
		status = ""
	}
	return ListFilter{
		CustomerID: customerID,
		Status:     status,
		Query:      r.URL.Query().Get("q"),
	}, true
}

func toLineItems(in []itemRequest) []billing.LineItem {
	out := make([]billing.LineItem, 0, len(in))
	for _, it := range in {
		out = append(out, billing.LineItem{
			ServiceID:   it.ServiceID,
			Description: it.Description,
			Quantity:    it.Quantity,
			Price:       it.Price,
		})
	}
	return out
}

func toItemResponses(items []billing.LineItem) []itemResponse {
	out := make([]itemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, itemResponse{
			ServiceID:   it.ServiceID,
			Description: it.Description,
			Quantity:    it.Quantity,
			Price:       it.Price,
			LineTotal:   billing.LineTotal(it),
		})
	}
	return out
}

func toTotalsResponse(t billing.Totals, rate float64) totalsResponse {
	return totalsResponse{
		Subtotal: t.Subtotal,
		Tax:      t.Tax,
		Total:    t.Total,
		TaxRate:  rate,
		Display: map[string]string{
			"subtotal": billing.Display(t.Subtotal),
			"tax":      billing.Display(t.Tax),
			"total":    billing.Display(t.Total),
		},
	}
}

func toInvoiceResponse(inv Invoice, rate float64) invoiceResponse {
	return invoiceResponse{
		ID:             inv.ID,
		CustomerID:     inv.CustomerID,
		PetID:          inv.PetID,
		InvoiceNumber:  inv.InvoiceNumber,
		Status:         inv.Status,
		Items:          toItemResponses(inv.Items),
		Notes:          inv.Notes,
		Date:           inv.Date,
		totalsResponse: toTotalsResponse(inv.Totals(), rate),
	}
}
