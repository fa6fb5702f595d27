package http

import (
	"log/slog"
	"os"

	"github.com/collable/pointage-backend/internal/domain/apikey"
	"github.com/collable/pointage-backend/internal/handler/http/middleware"
	"github.com/collable/pointage-backend/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type Handlers struct {
	Auth       AuthHandler
	Agent      AgentHandler
	Attendance AttendanceHandler
	Tracking   TrackingHandler
	Payroll    PayrollHandler
	QRCode     QRCodeHandler
	Holiday    HolidayHandler
	Bonus      BonusHandler
	APIKey     APIKeyHandler
	Report     ReportHandler
}

func NewRouter(jwtService jwt.Service, apikeyService apikey.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "pointage-backend"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-API-Key"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)

			// Requires authentication
			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
				r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

				r.Get("/me", h.Auth.Me)
				r.Post("/change-password", h.Auth.ChangePassword)
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Post("/scan", h.Attendance.Scan)
			r.Get("/scans/my", h.Attendance.MyScans)
			r.Get("/tracking/my", h.Tracking.MyTracking)
			r.Get("/payroll/my", h.Payroll.MyPayslip)

			// Admin only
			r.Group(func(r chi.Router) {
				r.Use(middleware.AdminOnly)

				r.Route("/agents", func(r chi.Router) {
					r.Post("/", h.Agent.Create)
					r.Get("/", h.Agent.List)
					r.Get("/{agentID}", h.Agent.Get)
					r.Put("/{agentID}", h.Agent.Update)
					r.Delete("/{agentID}", h.Agent.Deactivate)

					r.Get("/{agentID}/scans", h.Attendance.AgentScans)
					r.Get("/{agentID}/tracking", h.Tracking.AgentTracking)
					r.Get("/{agentID}/tracking/export", h.Report.ExportTracking)
					r.Get("/{agentID}/payroll", h.Payroll.AgentPayslip)
				})

				r.Route("/scans", func(r chi.Router) {
					r.Post("/{eventID}/cancel", h.Attendance.CancelEvent)
				})

				r.Route("/qrcode", func(r chi.Router) {
					r.Get("/", h.QRCode.Active)
					r.Post("/rotate", h.QRCode.Rotate)
				})

				r.Route("/holidays", func(r chi.Router) {
					r.Post("/", h.Holiday.Create)
					r.Get("/", h.Holiday.List)
					r.Get("/check", h.Holiday.Check)
					r.Post("/generate/{year}", h.Holiday.Generate)
					r.Put("/{holidayID}", h.Holiday.Update)
					r.Delete("/{holidayID}", h.Holiday.Delete)

					r.Route("/exceptions", func(r chi.Router) {
						r.Post("/", h.Holiday.CreateException)
						r.Get("/", h.Holiday.ListExceptions)
						r.Delete("/{exceptionID}", h.Holiday.DeleteException)
					})
				})

				r.Route("/bonuses", func(r chi.Router) {
					r.Post("/", h.Bonus.Create)
					r.Get("/", h.Bonus.List)
					r.Put("/{bonusID}", h.Bonus.Update)
					r.Delete("/{bonusID}", h.Bonus.Delete)
				})

				r.Route("/api-keys", func(r chi.Router) {
					r.Post("/", h.APIKey.Create)
					r.Get("/", h.APIKey.List)
					r.Delete("/{keyID}", h.APIKey.Deactivate)
				})

				r.Route("/reports", func(r chi.Router) {
					r.Get("/daily", h.Report.Daily)
					r.Get("/payroll", h.Payroll.BatchPayroll)
					r.Get("/payroll/export", h.Report.ExportPayroll)
				})
			})
		})
	})

	// External read-only API, keyed by X-API-Key
	r.Route("/external/v1", func(r chi.Router) {
		r.Use(middleware.APIKeyRequired(apikeyService))

		r.Get("/reports/daily", h.Report.Daily)
		r.Get("/agents/{agentID}/tracking", h.Tracking.AgentTracking)
	})

	return r
}
