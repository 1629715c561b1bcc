package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// routes sets up the HTTP router for the reusable content server.
func (app *application) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/api/reusable-content", func(r chi.Router) {
		r.Get("/", app.listHandler)
		r.Post("/sync", app.syncHandler)
		r.Get("/{title}", app.getHandler)
		r.Put("/{title}", app.putHandler)
		r.Delete("/{title}", app.deleteHandler)
		r.Get("/{title}/path", app.pathHandler)
	})

	r.Get("/ribbon", app.ribbonHandler)
	r.Get("/preview/{title}", app.previewHandler)

	return r
}
