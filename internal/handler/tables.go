// Package handler implements the HTTP surface of the CRUD application.
package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/buildy/tablemaker/internal/event"
	"github.com/buildy/tablemaker/internal/gridquery"
	"github.com/buildy/tablemaker/internal/store"
	"github.com/buildy/tablemaker/internal/usecase"
)

// TableHandler serves table, column, row and cell operations.
type TableHandler struct {
	store store.Store
	grid  *gridquery.Service
	bus   event.Publisher
}

// NewTableHandler creates a TableHandler over the given store. bus may be
// nil; no events are published then.
func NewTableHandler(s store.Store, bus event.Publisher) *TableHandler {
	return &TableHandler{store: s, grid: gridquery.NewFromStore(s), bus: bus}
}

func (h *TableHandler) publish(r *http.Request, evt event.DomainEvent) {
	if h.bus != nil {
		h.bus.Publish(r.Context(), evt)
	}
}

// CreateTable handles POST /v1/tables.
func (h *TableHandler) CreateTable(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		badRequest(w, r, err)
		return
	}
	table, err := usecase.CreateTable{Tables: h.store}.Execute(r.Context(), req.Name)
	if err != nil {
		respondError(w, r, err)
		return
	}
	h.publish(r, event.NewTableCreated(event.TableCreatedPayload{TableID: table.ID, Name: table.Name}))
	respond(w, r, http.StatusCreated, table)
}

// ListTables handles GET /v1/tables.
func (h *TableHandler) ListTables(w http.ResponseWriter, r *http.Request) {
	tables, err := h.store.ListTables(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, tables)
}

// GetTable handles GET /v1/tables/{id}.
func (h *TableHandler) GetTable(w http.ResponseWriter, r *http.Request) {
	table, err := h.store.TableByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, table)
}

// LoadGrid handles GET /v1/tables/{id}/grid?limit=&offset=.
func (h *TableHandler) LoadGrid(w http.ResponseWriter, r *http.Request) {
	page := gridquery.Page{}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			page.Limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			page.Offset = n
		}
	}
	g, err := usecase.LoadGrid{Grid: h.grid}.Execute(r.Context(), chi.URLParam(r, "id"), page)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, g)
}

// AddColumn handles POST /v1/tables/{id}/columns.
func (h *TableHandler) AddColumn(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Key      string `json:"key"`
		Name     string `json:"name"`
		Type     string `json:"type"`
		Position int    `json:"position"`
	}
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		badRequest(w, r, err)
		return
	}
	col, err := usecase.AddColumn{Columns: h.store}.Execute(
		r.Context(), chi.URLParam(r, "id"), req.Key, req.Name, req.Position, req.Type)
	if err != nil {
		respondError(w, r, err)
		return
	}
	h.publish(r, event.NewColumnAdded(event.ColumnAddedPayload{
		TableID:  col.TableID,
		ColumnID: col.ID,
		Key:      col.Key,
		Type:     col.Type,
		Position: col.Position,
	}))
	respond(w, r, http.StatusCreated, col)
}

// AddRow handles POST /v1/tables/{id}/rows.
func (h *TableHandler) AddRow(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Position int `json:"position"`
	}
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		badRequest(w, r, err)
		return
	}
	row, err := usecase.AddRow{Rows: h.store}.Execute(r.Context(), chi.URLParam(r, "id"), req.Position)
	if err != nil {
		respondError(w, r, err)
		return
	}
	h.publish(r, event.NewRowAdded(event.RowAddedPayload{TableID: row.TableID, RowID: row.ID, Position: row.Position}))
	respond(w, r, http.StatusCreated, row)
}

// DeleteRow handles DELETE /v1/rows/{id}.
func (h *TableHandler) DeleteRow(w http.ResponseWriter, r *http.Request) {
	rowID := chi.URLParam(r, "id")
	if err := (usecase.DeleteRow{Rows: h.store}).Execute(r.Context(), rowID); err != nil {
		respondError(w, r, err)
		return
	}
	h.publish(r, event.NewRowDeleted(event.RowDeletedPayload{RowID: rowID}))
	respond(w, r, http.StatusOK, map[string]string{"status": "deleted"})
}

// UpdateCell handles PUT /v1/cells. Upserts are keyed on the
// (row_id, column_id) pair; last write wins.
func (h *TableHandler) UpdateCell(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RowID    string `json:"row_id"`
		ColumnID string `json:"column_id"`
		Value    any    `json:"value"`
	}
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		badRequest(w, r, err)
		return
	}
	err := usecase.UpdateCell{Cells: h.store}.Execute(r.Context(), req.RowID, req.ColumnID, req.Value)
	if err != nil {
		respondError(w, r, err)
		return
	}
	h.publish(r, event.NewCellUpdated(event.CellUpdatedPayload{RowID: req.RowID, ColumnID: req.ColumnID}))
	respond(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
