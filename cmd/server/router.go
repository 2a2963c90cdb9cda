package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/phrazzld/taskboard-api/internal/api/middleware"
)

// newRouter lays out the HTTP surface. Everything except health,
// registration, and login requires a bearer token; the websocket endpoint
// does its own credential check during the handshake.
func (a *application) newRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.TraceMiddleware)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", a.authHandler.Register)
		r.Post("/auth/login", a.authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(a.authMiddleware.Authenticate)

			r.Get("/months", a.monthHandler.List)
			r.Post("/months", a.monthHandler.Create)
			r.Get("/months/{id}", a.monthHandler.Get)
			r.Delete("/months/{id}", a.monthHandler.Delete)
			r.Get("/months/{id}/tasks", a.taskHandler.ListByMonth)

			r.Post("/tasks", a.taskHandler.Create)
			r.Get("/tasks/{id}", a.taskHandler.Get)
			r.Put("/tasks/{id}", a.taskHandler.Update)
			r.Delete("/tasks/{id}", a.taskHandler.Delete)

			r.Get("/users", a.userHandler.List)
			r.Get("/users/{id}", a.userHandler.Get)

			r.Get("/deliverables", a.deliverableHandler.List)
			r.Post("/deliverables", a.deliverableHandler.Create)
			r.Put("/deliverables/{id}", a.deliverableHandler.Update)
			r.Delete("/deliverables/{id}", a.deliverableHandler.Delete)

			r.Get("/reporters", a.reporterHandler.List)
			r.Post("/reporters", a.reporterHandler.Create)
			r.Put("/reporters/{id}", a.reporterHandler.Update)
			r.Delete("/reporters/{id}", a.reporterHandler.Delete)

			r.Get("/team-days-off", a.daysOffHandler.List)
			r.Post("/team-days-off", a.daysOffHandler.Create)
			r.Put("/team-days-off/{id}", a.daysOffHandler.Update)
			r.Delete("/team-days-off/{id}", a.daysOffHandler.Delete)
		})
	})

	r.Get("/ws", a.wsHandler.ServeHTTP)

	return r
}
