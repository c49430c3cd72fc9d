package handler

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/buildy/tablemaker/internal/cache"
	"github.com/buildy/tablemaker/internal/event"
	"github.com/buildy/tablemaker/internal/jsonio"
)

// JSONIOHandler serves normalized and legacy import/export.
type JSONIOHandler struct {
	service *jsonio.Service
	cache   cache.Cache
	bus     event.Publisher
}

// NewJSONIOHandler creates a JSONIOHandler. The cache may be nil, in
// which case legacy exports are not mirrored anywhere; the bus may be
// nil, in which case no events are published.
func NewJSONIOHandler(service *jsonio.Service, c cache.Cache, bus event.Publisher) *JSONIOHandler {
	return &JSONIOHandler{service: service, cache: c, bus: bus}
}

func (h *JSONIOHandler) publish(r *http.Request, evt event.DomainEvent) {
	if h.bus != nil {
		h.bus.Publish(r.Context(), evt)
	}
}

// ExportNormalized handles GET /v1/tables/{id}/export.
func (h *JSONIOHandler) ExportNormalized(w http.ResponseWriter, r *http.Request) {
	bundle, err := h.service.ExportNormalized(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, bundle)
}

// ExportLegacy handles GET /v1/tables/{id}/export/legacy. The exported
// payload is also written to the payload cache under its fixed key.
func (h *JSONIOHandler) ExportLegacy(w http.ResponseWriter, r *http.Request) {
	payload, err := h.service.ExportLegacyPayload(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	if h.cache != nil {
		if err := h.cache.Save(r.Context(), payload); err != nil {
			respondError(w, r, err)
			return
		}
	}
	respond(w, r, http.StatusOK, payload)
}

// ImportNormalized handles POST /v1/import.
func (h *JSONIOHandler) ImportNormalized(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		badRequest(w, r, err)
		return
	}
	bundle, err := jsonio.DecodeNormalizedBundle(body)
	if err != nil {
		respondError(w, r, err)
		return
	}
	table, err := h.service.ImportNormalized(r.Context(), bundle)
	if err != nil {
		respondError(w, r, err)
		return
	}
	h.publish(r, event.NewBundleImported(event.BundleImportedPayload{
		TableID: table.ID,
		Name:    table.Name,
		Format:  "normalized",
		Rows:    len(bundle.Rows),
	}))
	respond(w, r, http.StatusCreated, table)
}

// ImportLegacy handles POST /v1/import/legacy.
func (h *JSONIOHandler) ImportLegacy(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		badRequest(w, r, err)
		return
	}
	payload, err := jsonio.DecodeLegacyPayload(body)
	if err != nil {
		respondError(w, r, err)
		return
	}
	table, err := h.service.ImportLegacyPayload(r.Context(), payload)
	if err != nil {
		respondError(w, r, err)
		return
	}
	h.publish(r, event.NewBundleImported(event.BundleImportedPayload{
		TableID: table.ID,
		Name:    table.Name,
		Format:  "legacy",
		Rows:    len(payload.Rows),
	}))
	respond(w, r, http.StatusCreated, table)
}
