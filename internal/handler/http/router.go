package http

import (
	"log/slog"
	"os"

	"github.com/cmlabs-hris/timebank-backend-go/internal/config"
	"github.com/cmlabs-hris/timebank-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/timebank-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

const appVersion = "v1.0.0"

// Handlers groups the HTTP handlers mounted by NewRouter
type Handlers struct {
	Employee   EmployeeHandler
	Schedule   ScheduleHandler
	Attendance AttendanceHandler
	Payroll    PayrollHandler
	Bank       BankHandler
	Holiday    HolidayHandler
}

func NewRouter(cfg *config.Config, JWTService jwt.Service, h Handlers) *chi.Mux {
	app := cfg.App
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(app.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "timebank"),
		slog.String("version", appVersion),
		slog.String("env", app.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   app.CORSAllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  cfg.SlogLevel(),
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
		r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

		r.Get("/holidays", h.Holiday.ListHolidays)
		r.Get("/statistics", h.Payroll.GetCompanySummary)

		r.Route("/employees", func(r chi.Router) {
			r.Get("/", h.Employee.ListEmployees)
			r.Post("/", h.Employee.CreateEmployee)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.Employee.GetEmployee)
				r.Put("/", h.Employee.UpdateEmployee)
				r.Post("/archive", h.Employee.ArchiveEmployee)
				r.Post("/restore", h.Employee.RestoreEmployee)
				r.With(middleware.AdminOnly).Delete("/", h.Employee.DeleteEmployee)

				r.Route("/schedule", func(r chi.Router) {
					r.Get("/", h.Schedule.GetTemplate)
					r.Get("/resolve", h.Schedule.ResolveDay)
				})

				r.Route("/attendances", func(r chi.Router) {
					r.Get("/", h.Attendance.GetMonth)
					r.Put("/", h.Attendance.SaveDays)
					r.Post("/autofill", h.Attendance.FillEmptyDays)
					r.Delete("/{date}", h.Attendance.DeleteDay)
				})

				r.Get("/statistics", h.Payroll.GetMonthlyStatistics)

				r.Route("/bank", func(r chi.Router) {
					r.Get("/movements", h.Bank.ListMovements)
					r.Post("/movements", h.Bank.AppendMovement)
					r.Post("/transfers", h.Bank.TransferOvertime)
					r.Get("/consistency", h.Bank.VerifyConsistency)
					r.With(middleware.AdminOnly).Post("/reconcile", h.Bank.Reconcile)
				})
			})
		})
	})

	return r
}
