package http

import (
	"io"
	"log/slog"
	"os"

	"github.com/cmlabs-hris/hrms-lite-console/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hrms-lite-console/internal/pkg/notice"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

type RouterOptions struct {
	AppName        string
	Env            string
	LogLevel       slog.Level
	AllowedOrigins []string
	// LogOutput defaults to stdout
	LogOutput io.Writer
}

// NewLogger builds the ECS-formatted JSON logger used for requests and
// as the process default.
func NewLogger(opts RouterOptions) *slog.Logger {
	out := opts.LogOutput
	if out == nil {
		out = os.Stdout
	}
	logFormat := httplog.SchemaECS.Concise(false)
	return slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level:       opts.LogLevel,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", opts.AppName),
		slog.String("env", opts.Env),
	)
}

func NewRouter(
	opts RouterOptions,
	notices notice.Service,
	dashboardHandler DashboardHandler,
	employeeHandler EmployeeHandler,
	attendanceHandler AttendanceHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logger := NewLogger(opts)

	r.Use(chiMiddleware.RequestID)
	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  opts.LogLevel,
		Schema: httplog.SchemaECS,
	}))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/healthz"))

	// Console screens
	r.Group(func(r chi.Router) {
		r.Use(middleware.NoStore)
		r.Use(middleware.Notice(notices))

		r.Get("/", dashboardHandler.Page)

		r.Route("/employees", func(r chi.Router) {
			r.Get("/", employeeHandler.Directory)
			r.Post("/", employeeHandler.Create)
			r.Get("/new", employeeHandler.NewForm)
			r.Route("/{employee_id}", func(r chi.Router) {
				r.Get("/", employeeHandler.Detail)
				r.Get("/delete", employeeHandler.ConfirmDelete)
				r.Post("/delete", employeeHandler.Delete)
			})
		})

		r.Route("/attendance", func(r chi.Router) {
			r.Get("/", attendanceHandler.Page)
			r.Post("/toggle", attendanceHandler.Toggle)
			r.Post("/mark", attendanceHandler.Mark)
			r.Get("/export", attendanceHandler.Export)
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   opts.AllowedOrigins,
			AllowCredentials: false,
			AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders:   []string{"X-Request-ID"},
			MaxAge:           300,
		}))
		r.Use(chiMiddleware.AllowContentType("application/json"))

		r.Get("/dashboard", dashboardHandler.GetDashboard)

		r.Route("/employees", func(r chi.Router) {
			r.Get("/", employeeHandler.ListEmployees)
			r.Post("/", employeeHandler.CreateEmployee)
			r.Get("/next-id", employeeHandler.NextID)
			r.Get("/{employee_id}", employeeHandler.GetEmployee)
			r.Delete("/{employee_id}", employeeHandler.DeleteEmployee)
		})

		r.Route("/attendance", func(r chi.Router) {
			r.Get("/sheet", attendanceHandler.GetSheet)
			r.Post("/toggle", attendanceHandler.ToggleAttendance)
			r.Post("/mark", attendanceHandler.MarkAttendance)
		})
	})

	return r
}
