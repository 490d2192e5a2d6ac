package router

import (
	"net/http"
	"time"

	"vet-practice-management/internal/adapters/auth/jwtsession"
	mem "vet-practice-management/internal/adapters/storage/memory"
	"vet-practice-management/internal/domain/appointments"
	"vet-practice-management/internal/domain/calendar"
	"vet-practice-management/internal/domain/catalog"
	"vet-practice-management/internal/domain/customers"
	"vet-practice-management/internal/domain/dashboard"
	"vet-practice-management/internal/domain/invoices"
	"vet-practice-management/internal/domain/pets"
	"vet-practice-management/internal/domain/records"
	"vet-practice-management/internal/domain/session"
	"vet-practice-management/internal/middleware"
	"vet-practice-management/internal/platform/logger"
	"vet-practice-management/internal/platform/metrics"
	"vet-practice-management/internal/ports/auth"

	_ "vet-practice-management/internal/docs"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	// Store es el Entity Store ya construido (y sembrado si corresponde).
	Store    *mem.Store
	Sessions *session.Service

	Location *time.Location

	Logger       logger.Logger           // nil => Nop
	Metrics      *metrics.Metrics        // nil => sin /metrics
	LoginLimiter *middleware.RateLimiter // nil => sin límite
}

func NewRouter(opts Options) http.Handler {
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware)
	}
	r.Use(middleware.AuthContext(jwtsession.NewVerifier(opts.Sessions)))
	r.Use(middleware.RequestLog(opts.Logger))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// Services por módulo; el mismo Store cumple todos los Repository.
	store := opts.Store
	customersSvc := customers.NewService(store)
	petsSvc := pets.NewService(store)
	catalogSvc := catalog.NewCatalog(store)
	apptsSvc := appointments.NewService(store, store, opts.Location)
	recordsSvc := records.NewService(store, store)
	invoicesSvc := invoices.NewService(store, store, store.Calculator())
	dashSvc := dashboard.NewService(apptsSvc, customersSvc, petsSvc, invoicesSvc)

	var sessionOpts session.RouteOptions
	if opts.LoginLimiter != nil {
		sessionOpts.LoginLimiter = opts.LoginLimiter.Limit(func() { opts.Metrics.LoginAttempt("limited") })
	}
	if opts.Metrics != nil {
		sessionOpts.OnLogin = opts.Metrics.LoginAttempt
	}
	session.RegisterRoutes(r, opts.Sessions, sessionOpts)

	// Rutas con sesión; cada grupo exige la sección del menú.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		dashboard.RegisterNavigation(r)
		catalog.RegisterRoutes(r, catalogSvc)
	})
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireSection(auth.SectionDashboard))
		dashboard.RegisterRoutes(r, dashSvc)
	})
	r.Group(func(r chi.Router) {
		// vets y recepción necesitan leer clientes/mascotas para agenda e historial
		r.Use(middleware.RequireSectionForWrites(auth.SectionCustomers))
		customers.RegisterRoutes(r, customersSvc, pets.ListByCustomerHandler(petsSvc))
		pets.RegisterRoutes(r, petsSvc)
	})
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireSection(auth.SectionAppointments))
		appointments.RegisterRoutes(r, apptsSvc)
		calendar.RegisterRoutes(r, apptsSvc)
	})
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireSection(auth.SectionMedicalRecords))
		records.RegisterRoutes(r, recordsSvc)
	})
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireSection(auth.SectionInvoices))
		invoices.RegisterRoutes(r, invoicesSvc)
	})
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireSection(auth.SectionSettings))
		catalog.RegisterSettingsRoutes(r, catalogSvc, store.Calculator().Rate)
	})

	return r
}
