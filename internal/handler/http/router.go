package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/cmlabs-hris/attendance-backend/internal/config"
	"github.com/cmlabs-hris/attendance-backend/internal/handler/http/middleware"
	"github.com/cmlabs-hris/attendance-backend/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// Handlers groups the HTTP handlers mounted by NewRouter.
type Handlers struct {
	Auth       AuthHandler
	Attendance AttendanceHandler
	Settings   SettingsHandler
	Shift      ShiftHandler
	Schedule   ScheduleHandler
}

// NewRouter mounts the API under /api/v1. uploadsDir, when set, is served
// read-only under /uploads so proof photo URLs from local storage resolve.
func NewRouter(cfg *config.Config, JWTService jwt.Service, h Handlers, uploadsDir string) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(cfg.App.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
		Level:       cfg.SlogLevel(),
	})).With(
		slog.String("app", cfg.Telemetry.ServiceName),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.App.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))

	if uploadsDir != "" {
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadsDir))))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", h.Auth.Login)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/clock-in", h.Attendance.ClockIn)
				r.Post("/clock-out", h.Attendance.ClockOut)
				r.Get("/today", h.Attendance.Today)
				r.Get("/history", h.Attendance.History)
			})

			// Admin only
			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.AdminOnly)

				r.Route("/settings", func(r chi.Router) {
					r.Get("/", h.Settings.GetSettings)
					r.Put("/", h.Settings.UpdateSettings)
					r.Post("/test-location", h.Settings.TestLocation)
				})

				r.Route("/shifts", func(r chi.Router) {
					r.Post("/", h.Shift.CreateShift)
					r.Get("/{id}", h.Shift.GetShift)
					r.Put("/{id}", h.Shift.UpdateShift)
					r.Delete("/{id}", h.Shift.DeleteShift)
				})

				r.Route("/shift-schedules", func(r chi.Router) {
					r.Get("/user/{userID}", h.Schedule.GetUserSchedule)
					r.Post("/", h.Schedule.SetSchedule)
					r.Post("/bulk", h.Schedule.BulkSetSchedule)
					r.Delete("/{id}", h.Schedule.DeleteSchedule)
				})

				r.Route("/attendance", func(r chi.Router) {
					r.Post("/manual-entry", h.Attendance.ManualEntry)
					r.Put("/{id}/manual-update", h.Attendance.ManualUpdate)
					r.Get("/{id}", h.Attendance.Get)
					r.Delete("/{id}", h.Attendance.Delete)
				})
			})
		})
	})
	return r
}
