package handler

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/buildy/tablemaker/internal/builder"
	"github.com/buildy/tablemaker/internal/codegen"
)

// GenerateHandler exposes the code generators to the builder UI.
type GenerateHandler struct{}

// Artifacts are the three generated sources for one config.
type Artifacts struct {
	UI    string `json:"ui"`
	Types string `json:"types"`
	SQL   string `json:"sql"`
}

// Generate handles POST /v1/generate: accepts a BuilderConfig and returns
// all three artifacts.
func (GenerateHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var cfg builder.BuilderConfig
	if err := render.DecodeJSON(r.Body, &cfg); err != nil {
		badRequest(w, r, err)
		return
	}
	if err := cfg.Validate(); err != nil {
		respondError(w, r, err)
		return
	}
	ui, err := codegen.GenerateUI(cfg)
	if err != nil {
		respondError(w, r, err)
		return
	}
	types, err := codegen.GenerateTypes(cfg)
	if err != nil {
		respondError(w, r, err)
		return
	}
	sqlText, err := codegen.GenerateSQL(cfg)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respond(w, r, http.StatusOK, Artifacts{UI: ui, Types: types, SQL: sqlText})
}
