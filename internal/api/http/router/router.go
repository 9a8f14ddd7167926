package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/parishkeeper/parish-server/internal/api/http/handler"
	"github.com/parishkeeper/parish-server/internal/api/http/middleware"
	"github.com/parishkeeper/parish-server/internal/logger"
	"github.com/parishkeeper/parish-server/internal/metrics"
	"github.com/parishkeeper/parish-server/internal/model"
)

// Services bundles what the HTTP handlers depend on.
type Services struct {
	Auth          handler.AuthService
	Identity      middleware.IdentityResolver
	Users         handler.UserService
	Members       handler.MemberService
	Sacraments    handler.SacramentService
	Donations     handler.DonationService
	Events        handler.EventService
	Attendance    handler.AttendanceService
	Districts     handler.DistrictService
	Announcements handler.AnnouncementService
	DB            handler.Pinger
}

// Options tunes transport behaviour.
type Options struct {
	AllowedOrigins []string
	RequestTimeout time.Duration
	MaxUploadBytes int64
}

// Router builds the chi route tree of the parish API.
type Router struct {
	services       Services
	options        Options
	contextManager model.ContextManager
	metrics        *metrics.Metrics
	logger         *logger.Logger
}

// New creates new HTTP Router instance.
func New(
	services Services,
	options Options,
	contextManager model.ContextManager,
	metrics *metrics.Metrics,
	logger *logger.Logger,
) *Router {
	return &Router{
		services:       services,
		options:        options,
		contextManager: contextManager,
		metrics:        metrics,
		logger:         logger,
	}
}

// Register returns the root handler with middleware and every route mounted.
func (rt *Router) Register() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLogging(rt.logger).Handle)
	r.Use(middleware.NewMetrics(rt.metrics).Handle)
	r.Use(middleware.NewRecoverer(rt.logger).Handle)
	if rt.options.RequestTimeout > 0 {
		r.Use(chimiddleware.Timeout(rt.options.RequestTimeout))
	}

	r.Get("/healthz", handler.NewHealth(rt.services.DB, rt.logger).Check)
	r.Method(http.MethodGet, "/metrics", rt.metrics.Handler())

	authenticate := middleware.NewAuthenticate(rt.services.Identity, rt.contextManager, rt.logger).Handle
	admin := middleware.RequireRole(rt.contextManager, rt.logger, model.RoleAdmin)
	adminOrStaff := middleware.RequireRole(rt.contextManager, rt.logger, model.RoleAdmin, model.RoleStaff)

	r.Route("/auth", func(r chi.Router) {
		h := handler.NewAuth(rt.services.Auth, rt.contextManager, rt.logger)
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.With(authenticate).Get("/me", h.Me)
		r.With(authenticate).Post("/link", h.Link)
	})

	r.Route("/users", func(r chi.Router) {
		h := handler.NewUser(rt.services.Users, rt.logger)
		r.Use(authenticate, admin)
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.Put("/{id}/role", h.UpdateRole)
		r.Delete("/{id}", h.Delete)
	})

	r.Route("/members", func(r chi.Router) {
		h := handler.NewMember(rt.services.Members, rt.logger)
		r.Use(authenticate)
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.Group(func(r chi.Router) {
			r.Use(admin)
			r.Post("/", h.Create)
			r.Put("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
			r.Post("/{id}/claim-code", h.IssueClaimCode)
			r.Get("/{id}/claim-events", h.ClaimEvents)
		})
	})

	r.Route("/sacraments", func(r chi.Router) {
		h := handler.NewSacrament(rt.services.Sacraments, rt.contextManager, rt.options.MaxUploadBytes, rt.logger)
		r.Use(authenticate)
		r.Get("/", h.List)
		r.Get("/my", h.ListMine)
		r.Post("/", h.Create)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
		r.Put("/{id}/certificate", h.UploadCertificate)
		r.Get("/{id}/certificate", h.DownloadCertificate)
		r.With(admin).Post("/admin/add", h.AdminCreate)
		r.With(admin).Delete("/admin/{id}", h.AdminDelete)
	})

	r.Route("/donations", func(r chi.Router) {
		h := handler.NewDonation(rt.services.Donations, rt.contextManager, rt.logger)
		r.Use(authenticate)
		r.With(adminOrStaff).Get("/", h.List)
		r.Get("/my-donations", h.ListMine)
		r.Post("/", h.Create)
		r.Delete("/{id}", h.Delete)
		r.With(admin).Put("/{id}", h.Update)
		r.With(admin).Post("/admin/add", h.AdminCreate)
		r.With(admin).Delete("/admin/{id}", h.AdminDelete)
	})

	r.Route("/events", func(r chi.Router) {
		h := handler.NewEvent(rt.services.Events, rt.logger)
		r.Use(authenticate)
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.Group(func(r chi.Router) {
			r.Use(adminOrStaff)
			r.Post("/", h.Create)
			r.Put("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
		})
	})

	r.Route("/attendance", func(r chi.Router) {
		h := handler.NewAttendance(rt.services.Attendance, rt.logger)
		r.Use(authenticate, adminOrStaff)
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.Post("/", h.Create)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})

	r.Route("/districts", func(r chi.Router) {
		h := handler.NewDistrict(rt.services.Districts, rt.logger)
		r.Use(authenticate)
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.Group(func(r chi.Router) {
			r.Use(admin)
			r.Post("/", h.Create)
			r.Put("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
		})
	})

	r.Route("/announcements", func(r chi.Router) {
		h := handler.NewAnnouncement(rt.services.Announcements, rt.logger)
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)
		r.Group(func(r chi.Router) {
			r.Use(authenticate, admin)
			r.Post("/", h.Create)
			r.Put("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
		})
	})

	return cors.New(cors.Options{
		AllowedOrigins:   rt.options.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler(r)
}
