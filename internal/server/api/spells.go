package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/ayusman/sigil/internal/app"
	"github.com/ayusman/sigil/internal/geometry"
	"github.com/ayusman/sigil/internal/spell"
	"github.com/ayusman/sigil/internal/store"
)

// SpellHandler handles HTTP requests for spells. The "current" ID refers to
// the spell being built from live strokes.
type SpellHandler struct {
	app *app.App
}

// NewSpellHandler creates a new SpellHandler backed by the given app.
func NewSpellHandler(a *app.App) *SpellHandler {
	return &SpellHandler{app: a}
}

// ServeHTTP implements the http.Handler interface and routes requests to appropriate methods.
func (h *SpellHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Expected paths: /api/spells, /api/spells/current or /api/spells/{id}
	path := strings.TrimPrefix(r.URL.Path, "/api/spells")
	path = strings.TrimPrefix(path, "/")

	if path == "current" {
		h.current(w, r)
		return
	}

	if h.app.Store() == nil {
		writeError(w, http.StatusServiceUnavailable, "No store configured")
		return
	}

	if path == "" {
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		case http.MethodPost:
			h.create(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	id := path
	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Request and response types

type layerRequest struct {
	Name    string            `json:"name"`
	Strokes []geometry.Stroke `json:"strokes"`
}

type createSpellRequest struct {
	Name            string         `json:"name"`
	Layers          []layerRequest `json:"layers"`
	GlobalModifiers []string       `json:"global_modifiers"`
}

type listSpellsResponse struct {
	Spells []*store.SpellRecord `json:"spells"`
}

// list handles GET /api/spells and returns spells without their layers.
func (h *SpellHandler) list(w http.ResponseWriter, r *http.Request) {
	spells, err := h.app.Store().Spells().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list spells")
		return
	}

	response := listSpellsResponse{Spells: spells}
	if response.Spells == nil {
		response.Spells = []*store.SpellRecord{}
	}
	writeJSON(w, http.StatusOK, response)
}

// get handles GET /api/spells/{id}
func (h *SpellHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	rec, err := h.app.Store().Spells().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Spell not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get spell")
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

// create handles POST /api/spells. The first layer starts the spell; an
// empty spell name gets a random one.
func (h *SpellHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createSpellRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if len(req.Layers) == 0 {
		writeError(w, http.StatusBadRequest, "At least one layer is required")
		return
	}
	for _, l := range req.Layers {
		if len(l.Strokes) == 0 {
			writeError(w, http.StatusBadRequest, "Every layer needs at least one stroke")
			return
		}
	}

	b := spell.NewBuilder()
	b.BuildNew(req.Layers[0].Strokes, req.Name)
	for _, l := range req.Layers[1:] {
		b.AddLayer(l.Strokes, l.Name)
	}

	sp := b.Current()
	sp.ID = uuid.New().String()
	if req.GlobalModifiers != nil {
		sp.GlobalModifiers = req.GlobalModifiers
	}

	rec, err := h.app.Store().Spells().Create(&sp)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create spell")
		return
	}

	writeJSON(w, http.StatusCreated, rec)
}

// delete handles DELETE /api/spells/{id}
func (h *SpellHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.app.Store().Spells().Delete(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Spell not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete spell")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// current handles /api/spells/current: GET returns it, POST saves it and
// DELETE discards it.
func (h *SpellHandler) current(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, h.app.CurrentSpell())
	case http.MethodPost:
		if len(h.app.CurrentSpell().Layers) == 0 {
			writeError(w, http.StatusConflict, "No spell in progress")
			return
		}
		rec, err := h.app.SaveSpell()
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusCreated, rec)
	case http.MethodDelete:
		h.app.ClearSpell()
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
