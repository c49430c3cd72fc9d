// Package server assembles all HTTP handlers and starts the server.
package server

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/buildy/tablemaker/internal/cache"
	"github.com/buildy/tablemaker/internal/event"
	"github.com/buildy/tablemaker/internal/handler"
	"github.com/buildy/tablemaker/internal/jsonio"
	"github.com/buildy/tablemaker/internal/store"
)

// Config holds server wiring. Bus may be nil; handlers then skip event
// publishing.
type Config struct {
	Port  int
	Store store.Store
	Cache cache.Cache
	Bus   event.Publisher
}

// Run starts the HTTP server with all routes registered and shuts it
// down when ctx is cancelled.
func Run(ctx context.Context, cfg Config) error {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	th := handler.NewTableHandler(cfg.Store, cfg.Bus)
	r.Post("/v1/tables", th.CreateTable)
	r.Get("/v1/tables", th.ListTables)
	r.Get("/v1/tables/{id}", th.GetTable)
	r.Get("/v1/tables/{id}/grid", th.LoadGrid)
	r.Post("/v1/tables/{id}/columns", th.AddColumn)
	r.Post("/v1/tables/{id}/rows", th.AddRow)
	r.Delete("/v1/rows/{id}", th.DeleteRow)
	r.Put("/v1/cells", th.UpdateCell)

	jh := handler.NewJSONIOHandler(jsonio.New(cfg.Store), cfg.Cache, cfg.Bus)
	r.Get("/v1/tables/{id}/export", jh.ExportNormalized)
	r.Get("/v1/tables/{id}/export/legacy", jh.ExportLegacy)
	r.Post("/v1/import", jh.ImportNormalized)
	r.Post("/v1/import/legacy", jh.ImportLegacy)

	r.Post("/v1/generate", handler.GenerateHandler{}.Generate)

	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Printf("starting server on %s", addr)

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
	}

	go func() {
		<-ctx.Done()
		srv.Shutdown(context.Background())
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
