// Package server assembles the HTTP router of the webpages application.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/atinyakov/go-webpages/internal/app/handler"
	"github.com/atinyakov/go-webpages/internal/app/service"
	"github.com/atinyakov/go-webpages/internal/middleware"
)

// Deps is what the router serves.
type Deps struct {
	Logger        *zap.Logger
	Service       service.WebpageServiceIface
	Auth          service.AuthIface
	Dashboard     handler.Dashboard
	Notifications handler.Notifications
	TrustedSubnet string
	// Pprof mounts the profiler under /debug.
	Pprof bool
}

// Init builds the router. The dashboard routes are only mounted when a
// Dashboard is given.
func Init(d Deps) *chi.Mux {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	get := handler.NewGet(d.Service, logger)
	post := handler.NewPost(d.Service, logger)
	del := handler.NewDelete(d.Service, logger)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(middleware.WithRequestLogging(logger))
	r.Use(middleware.WithGzip)

	r.Get("/ping", get.PingDB)

	r.Group(func(r chi.Router) {
		r.Use(middleware.WithSubnet(d.TrustedSubnet))
		r.Get("/api/internal/stats", get.Stats)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.WithJWT(d.Auth))

		r.Get("/api/inspect", get.Inspect)
		r.Route("/api/webpages", func(r chi.Router) {
			r.Get("/", get.List)
			r.Post("/", post.Create)
			r.Delete("/", del.DeleteBatch)
			r.Get("/{id}", get.ByID)
			r.Put("/{id}", post.Update)
			r.Delete("/{id}", del.ByID)
		})

		if d.Dashboard != nil {
			dash := handler.NewDashboard(d.Dashboard, d.Notifications, logger)
			r.Route("/dashboard", func(r chi.Router) {
				r.Get("/webpages", dash.Table)
				r.Post("/webpages", dash.Save)
				r.Delete("/webpages/{id}", dash.Delete)
				r.Post("/refresh", dash.Refresh)
				r.Get("/activity", dash.Activity)
				r.Get("/notifications", dash.Notifications)
				r.Delete("/notifications/{id}", dash.DismissNotification)
			})
		}
	})

	if d.Pprof {
		r.Mount("/debug", chimw.Profiler())
	}

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Route not found", http.StatusNotFound)
	})

	return r
}
