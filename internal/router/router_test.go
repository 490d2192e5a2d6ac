package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	mem "vet-practice-management/internal/adapters/storage/memory"
	"vet-practice-management/internal/domain/session"
	"vet-practice-management/internal/router"

	"golang.org/x/crypto/bcrypt"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	store := mem.New(mem.Options{Location: time.UTC})
	if err := store.Seed(context.Background()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	sessions, err := session.NewService(
		session.DefaultUsers(),
		mem.NewSessionStore(),
		session.NewTokens("test-secret", time.Hour),
		bcrypt.MinCost,
	)
	if err != nil {
		t.Fatalf("sessions: %v", err)
	}

	ts := httptest.NewServer(router.NewRouter(router.Options{
		Store:    store,
		Sessions: sessions,
		Location: time.UTC,
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestHTTP_LoginSessionLogout(t *testing.T) {
	ts := newServer(t)

	st, _ := doReq(t, ts.URL, "POST", "/auth/login", "", map[string]any{"username": "admin", "password": "nope"})
	if st != http.StatusUnauthorized {
		t.Fatalf("expected 401 on bad password, got %d", st)
	}

	token := login(t, ts.URL, "admin", "admin")

	st, body := doReq(t, ts.URL, "GET", "/auth/session", token, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 restoring session, got %d body=%s", st, string(body))
	}
	var sess struct {
		User struct {
			Username string `json:"username"`
			Role     string `json:"role"`
		} `json:"user"`
	}
	mustDecode(t, body, &sess)
	if sess.User.Username != "admin" || sess.User.Role != "admin" {
		t.Fatalf("unexpected session user: %+v", sess.User)
	}

	if st, _ := doReq(t, ts.URL, "POST", "/auth/logout", token, nil); st != http.StatusNoContent {
		t.Fatalf("expected 204 on logout, got %d", st)
	}
	if st, _ := doReq(t, ts.URL, "GET", "/auth/session", token, nil); st != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", st)
	}
	if st, _ := doReq(t, ts.URL, "GET", "/customers", token, nil); st != http.StatusUnauthorized {
		t.Fatalf("expected 401 on customers after logout, got %d", st)
	}
}

func TestHTTP_NavigationAndSections(t *testing.T) {
	ts := newServer(t)

	if st, _ := doReq(t, ts.URL, "GET", "/customers", "", nil); st != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", st)
	}

	cases := []struct {
		user string
		want []string
	}{
		{"admin", []string{"dashboard", "customers", "appointments", "medical-records", "invoices", "settings"}},
		{"vet", []string{"dashboard", "appointments", "medical-records"}},
		{"reception", []string{"dashboard", "customers", "appointments", "invoices"}},
	}
	for _, tc := range cases {
		token := login(t, ts.URL, tc.user, tc.user)
		st, body := doReq(t, ts.URL, "GET", "/navigation", token, nil)
		if st != http.StatusOK {
			t.Fatalf("%s: expected 200 navigation, got %d", tc.user, st)
		}
		var nav struct {
			Items []struct {
				Section string `json:"section"`
			} `json:"items"`
		}
		mustDecode(t, body, &nav)
		if len(nav.Items) != len(tc.want) {
			t.Fatalf("%s: expected %d items, got %s", tc.user, len(tc.want), string(body))
		}
		for i, it := range nav.Items {
			if it.Section != tc.want[i] {
				t.Fatalf("%s: item %d expected %s, got %s", tc.user, i, tc.want[i], it.Section)
			}
		}
	}

	vet := login(t, ts.URL, "vet", "vet")
	if st, _ := doReq(t, ts.URL, "GET", "/invoices", vet, nil); st != http.StatusForbidden {
		t.Fatalf("expected 403 for vet on invoices, got %d", st)
	}
	// lectura de clientes abierta, escritura no
	if st, _ := doReq(t, ts.URL, "GET", "/customers/1", vet, nil); st != http.StatusOK {
		t.Fatalf("expected 200 for vet reading a customer, got %d", st)
	}
	st, _ := doReq(t, ts.URL, "POST", "/customers", vet, map[string]any{
		"name": "Vet Made", "email": "vm@email.com", "phone": "5550001234",
	})
	if st != http.StatusForbidden {
		t.Fatalf("expected 403 for vet creating a customer, got %d", st)
	}

	reception := login(t, ts.URL, "reception", "reception")
	if st, _ := doReq(t, ts.URL, "GET", "/medical-records", reception, nil); st != http.StatusForbidden {
		t.Fatalf("expected 403 for reception on medical records, got %d", st)
	}

	// cada entrada del menú tiene ruta: settings solo para admin
	if st, _ := doReq(t, ts.URL, "GET", "/settings", reception, nil); st != http.StatusForbidden {
		t.Fatalf("expected 403 for reception on settings, got %d", st)
	}
	admin := login(t, ts.URL, "admin", "admin")
	st, body := doReq(t, ts.URL, "GET", "/settings", admin, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 for admin on settings, got %d", st)
	}
	var settings struct {
		TaxRate       float64 `json:"tax_rate"`
		Veterinarians []struct {
			ID int64 `json:"id"`
		} `json:"veterinarians"`
		Services []struct {
			ID int64 `json:"id"`
		} `json:"services"`
	}
	mustDecode(t, body, &settings)
	if settings.TaxRate != 0.08 || len(settings.Veterinarians) != 3 || len(settings.Services) != 5 {
		t.Fatalf("unexpected settings: %s", string(body))
	}
}

func TestHTTP_CustomersAndPets(t *testing.T) {
	ts := newServer(t)
	token := login(t, ts.URL, "admin", "admin")

	st, body := doReq(t, ts.URL, "POST", "/customers", token, map[string]any{
		"name": "A", "email": "bad", "phone": "123",
	})
	if st != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 on invalid customer, got %d body=%s", st, string(body))
	}
	var verr struct {
		Details map[string]string `json:"details"`
	}
	mustDecode(t, body, &verr)
	if verr.Details["email"] != "invalid_email" || verr.Details["phone"] != "invalid_phone" {
		t.Fatalf("unexpected details: %#v", verr.Details)
	}

	st, _ = doReq(t, ts.URL, "POST", "/customers", token, map[string]any{
		"name": "Dup", "email": "JOHN@email.com", "phone": "(555) 010-9999",
	})
	if st != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 on duplicated email, got %d", st)
	}

	st, body = doReq(t, ts.URL, "POST", "/customers", token, map[string]any{
		"name": "Ana Torres", "email": "ana@email.com", "phone": "(555) 010-2000",
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 creating customer, got %d body=%s", st, string(body))
	}
	var created struct {
		ID int64 `json:"id"`
	}
	mustDecode(t, body, &created)
	if created.ID <= 5 {
		t.Fatalf("new ids must not collide with seed ids, got %d", created.ID)
	}

	// datos de ejemplo con teléfono corto: editar otro campo no debe fallar
	st, body = doReq(t, ts.URL, "PATCH", "/customers/1", token, map[string]any{"address": "1 New St"})
	if st != http.StatusOK {
		t.Fatalf("expected 200 patching seeded customer, got %d body=%s", st, string(body))
	}

	st, body = doReq(t, ts.URL, "POST", "/pets", token, map[string]any{
		"name": "Toby", "species": "Dog", "breed": "Beagle", "age": 2, "weight": "20 lbs", "customer_id": created.ID,
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 creating pet, got %d body=%s", st, string(body))
	}
	var pet struct {
		Allergies string `json:"allergies"`
	}
	mustDecode(t, body, &pet)
	if pet.Allergies != "None" {
		t.Fatalf("expected default allergies None, got %q", pet.Allergies)
	}

	st, _ = doReq(t, ts.URL, "POST", "/pets", token, map[string]any{
		"name": "Ghost", "species": "Cat", "breed": "x", "age": 1, "weight": "1 lbs", "customer_id": 9999,
	})
	if st != http.StatusNotFound {
		t.Fatalf("expected 404 creating pet for unknown customer, got %d", st)
	}

	st, body = doReq(t, ts.URL, "DELETE", "/customers/3", token, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 deleting customer 3, got %d body=%s", st, string(body))
	}
	var del struct {
		DeletedPetIDs []int64 `json:"deleted_pet_ids"`
	}
	mustDecode(t, body, &del)
	if len(del.DeletedPetIDs) != 1 || del.DeletedPetIDs[0] != 4 {
		t.Fatalf("expected pet 4 cascaded, got %v", del.DeletedPetIDs)
	}
	if st, _ := doReq(t, ts.URL, "GET", "/pets/4", token, nil); st != http.StatusNotFound {
		t.Fatalf("expected 404 for cascaded pet, got %d", st)
	}

	// cliente 1 tiene citas, historial y facturas
	if st, _ := doReq(t, ts.URL, "DELETE", "/customers/1", token, nil); st != http.StatusConflict {
		t.Fatalf("expected 409 deleting referenced customer, got %d", st)
	}
	if st, _ := doReq(t, ts.URL, "DELETE", "/customers/9999", token, nil); st != http.StatusNotFound {
		t.Fatalf("expected 404 deleting unknown customer, got %d", st)
	}
}

func TestHTTP_Invoices(t *testing.T) {
	ts := newServer(t)
	token := login(t, ts.URL, "reception", "reception")

	st, body := doReq(t, ts.URL, "POST", "/invoices", token, map[string]any{
		"customer_id": 3,
		"pet_id":      4,
		"items": []map[string]any{
			{"service_id": 1, "quantity": 2},
			{"description": "Vaccination", "quantity": 1, "price": 45},
			{"description": "", "quantity": 9, "price": 9},
		},
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 creating invoice, got %d body=%s", st, string(body))
	}
	var inv struct {
		ID            int64   `json:"id"`
		InvoiceNumber string  `json:"invoice_number"`
		Status        string  `json:"status"`
		Subtotal      float64 `json:"subtotal"`
		Total         float64 `json:"total"`
		Items         []struct {
			Description string `json:"description"`
		} `json:"items"`
		Display map[string]string `json:"display"`
	}
	mustDecode(t, body, &inv)
	if inv.Status != "pending" || inv.InvoiceNumber == "" {
		t.Fatalf("unexpected new invoice: %+v", inv)
	}
	if len(inv.Items) != 2 || inv.Items[0].Description != "Consultation" {
		t.Fatalf("expected blank row dropped and service prefilled, got %+v", inv.Items)
	}
	if inv.Subtotal != 195 || inv.Display["total"] != "210.60" {
		t.Fatalf("unexpected totals: subtotal=%v display=%v", inv.Subtotal, inv.Display)
	}

	st, body = doReq(t, ts.URL, "PATCH", "/invoices/"+itoa(inv.ID), token, map[string]any{"status": "paid"})
	if st != http.StatusOK {
		t.Fatalf("expected 200 marking invoice paid, got %d body=%s", st, string(body))
	}
	mustDecode(t, body, &inv)
	if inv.Status != "paid" || inv.Subtotal != 195 {
		t.Fatalf("status update must keep items, got %+v", inv)
	}

	st, _ = doReq(t, ts.URL, "PATCH", "/invoices/"+itoa(inv.ID), token, map[string]any{"status": "refunded"})
	if st != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 on unknown status, got %d", st)
	}
	if st, _ := doReq(t, ts.URL, "PATCH", "/invoices/9999", token, map[string]any{"status": "paid"}); st != http.StatusNotFound {
		t.Fatalf("expected 404 updating unknown invoice, got %d", st)
	}

	// pet 1 es de John, no de Mike
	st, _ = doReq(t, ts.URL, "POST", "/invoices", token, map[string]any{
		"customer_id": 3, "pet_id": 1,
		"items": []map[string]any{{"description": "X", "quantity": 1, "price": 1}},
	})
	if st != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for pet of another customer, got %d", st)
	}

	st, body = doReq(t, ts.URL, "GET", "/invoices?status=paid", token, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 listing invoices, got %d", st)
	}
	var list []struct {
		Status string `json:"status"`
	}
	mustDecode(t, body, &list)
	for _, it := range list {
		if it.Status != "paid" {
			t.Fatalf("status filter leaked %q", it.Status)
		}
	}
}

func TestHTTP_CalendarWeek(t *testing.T) {
	ts := newServer(t)
	token := login(t, ts.URL, "vet", "vet")

	st, body := doReq(t, ts.URL, "GET", "/calendar?date=2024-01-15", token, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 calendar, got %d body=%s", st, string(body))
	}
	var view struct {
		View string `json:"view"`
		Days []struct {
			Date string `json:"date"`
		} `json:"days"`
	}
	mustDecode(t, body, &view)
	if view.View != "week" || len(view.Days) != 7 {
		t.Fatalf("expected week of 7 days, got %s", string(body))
	}
	if view.Days[0].Date != "2024-01-14" || view.Days[6].Date != "2024-01-20" {
		t.Fatalf("week must run Sunday to Saturday, got %s..%s", view.Days[0].Date, view.Days[6].Date)
	}
}

func TestHTTP_HealthAndDocs(t *testing.T) {
	ts := newServer(t)

	if st, _ := doReq(t, ts.URL, "GET", "/health", "", nil); st != http.StatusOK {
		t.Fatalf("expected 200 health, got %d", st)
	}
	if st, _ := doReq(t, ts.URL, "GET", "/swagger/doc.json", "", nil); st != http.StatusOK {
		t.Fatalf("expected 200 swagger doc, got %d", st)
	}
}

func login(t *testing.T, baseURL, username, password string) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/auth/login", "", map[string]any{
		"username": username,
		"password": password,
	})
	if st != http.StatusOK {
		t.Fatalf("login %s: expected 200, got %d body=%s", username, st, string(body))
	}
	var out struct {
		Token string `json:"token"`
	}
	mustDecode(t, body, &out)
	if out.Token == "" {
		t.Fatalf("login %s: empty token", username)
	}
	return out.Token
}

func mustDecode(t *testing.T, body []byte, v any) {
	t.Helper()
	if err := json.Unmarshal(body, v); err != nil {
		t.Fatalf("decode %s: %v", string(body), err)
	}
}

func itoa(id int64) string {
	b, _ := json.Marshal(id)
	return string(b)
}

func doReq(t *testing.T, baseURL, method, path, token string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
