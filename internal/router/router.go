// Package router assembles the HTTP routes of the service.
package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jmoiron/sqlx"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/sbilibin2017/gw-employee-service/internal/handlers"
	"github.com/sbilibin2017/gw-employee-service/internal/logger"
	"github.com/sbilibin2017/gw-employee-service/internal/middlewares"
	"github.com/sbilibin2017/gw-employee-service/internal/models"
)

// AuthService is what the user routes need.
type AuthService interface {
	handlers.Signuper
	handlers.Loginer
}

// EmployeeService is what the employee routes need.
type EmployeeService interface {
	handlers.EmployeeLister
	handlers.EmployeeSearcher
	handlers.EmployeeCreator
	handlers.EmployeeGetter
	handlers.EmployeeUpdater
	handlers.EmployeeDeleter
	handlers.PhotoUploader
}

// Deps lists everything New wires together.
type Deps struct {
	// ContextPath prefixes every API route. "" mounts them at the root.
	ContextPath    string
	SwaggerURL     string
	MaxUploadBytes int64
	// AllowedOrigins is the CORS origin list. Empty allows any origin.
	AllowedOrigins []string

	// DB opens one transaction per write request. nil disables it.
	DB        *sqlx.DB
	Tokener   middlewares.Tokener
	Auth      AuthService
	Employees EmployeeService

	// Uploads serves locally stored photos. nil when photos live in object storage.
	Uploads http.Handler
}

// New returns the root handler.
func New(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware(logger.Log))
	r.Use(corsHandler(d.AllowedOrigins))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSONError(w, http.StatusNotFound, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	write := func(r chi.Router) chi.Router {
		if d.DB == nil {
			return r
		}
		return r.With(middlewares.TxMiddleware(d.DB))
	}

	api := func(r chi.Router) {
		r.Get("/health", handlers.NewHealthHandler())

		r.Route("/user", func(r chi.Router) {
			r.Post("/signup", handlers.NewSignupHandler(d.Auth))
			r.Post("/login", handlers.NewLoginHandler(d.Auth))
		})

		if d.Uploads != nil {
			r.Handle("/uploads/*", http.StripPrefix(d.ContextPath+"/uploads", d.Uploads))
		}

		r.Route("/emp", func(r chi.Router) {
			r.Use(middlewares.AuthMiddleware(d.Tokener))

			r.Get("/employees", handlers.NewListEmployeesHandler(d.Employees))
			r.Get("/employees/search", handlers.NewSearchEmployeesHandler(d.Employees))
			r.Get("/employees/{eid}", handlers.NewGetEmployeeHandler(d.Employees))

			write(r).Post("/employees", handlers.NewCreateEmployeeHandler(d.Employees))
			write(r).Put("/employees/{eid}", handlers.NewUpdateEmployeeHandler(d.Employees))
			write(r).Delete("/employees", handlers.NewDeleteEmployeeHandler(d.Employees))
			write(r).Post("/employees/{eid}/photo", handlers.NewUploadPhotoHandler(d.Employees, d.MaxUploadBytes))
		})
	}

	if d.ContextPath == "" {
		r.Group(api)
	} else {
		r.Route(d.ContextPath, api)
	}

	if d.SwaggerURL != "" {
		r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(d.SwaggerURL)))
	}

	return r
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(models.ErrorResponse{Status: false, Message: message})
}

// corsHandler answers browser preflights before routing, so OPTIONS never reaches the auth gate.
func corsHandler(origins []string) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"Authorization", "X-Request-ID"},
		MaxAge:         300,
	})
}
