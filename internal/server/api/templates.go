// Package api provides HTTP API handlers for templates, recognition, analysis and spells.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/ayusman/sigil/internal/app"
	"github.com/ayusman/sigil/internal/geometry"
	"github.com/ayusman/sigil/internal/gesture"
	"github.com/ayusman/sigil/internal/store"
)

// TemplateHandler handles HTTP requests for template resources.
type TemplateHandler struct {
	app *app.App
}

// NewTemplateHandler creates a new TemplateHandler backed by the given app.
func NewTemplateHandler(a *app.App) *TemplateHandler {
	return &TemplateHandler{app: a}
}

// ServeHTTP implements the http.Handler interface and routes requests to appropriate methods.
func (h *TemplateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Expected paths: /api/templates or /api/templates/{id}
	path := strings.TrimPrefix(r.URL.Path, "/api/templates")
	path = strings.TrimPrefix(path, "/")

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
	case http.MethodPut:
		h.update(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Request and response types

type createTemplateRequest struct {
	Name    string            `json:"name"`
	Strokes []geometry.Stroke `json:"strokes"`
}

type updateTemplateRequest struct {
	Name string `json:"name"`
}

type templateResponse struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Strokes   int               `json:"strokes"`
	Points    []geometry.Stroke `json:"points,omitempty"`
	CreatedAt string            `json:"created_at,omitempty"`
	UpdatedAt string            `json:"updated_at,omitempty"`
}

type listTemplatesResponse struct {
	Templates []templateResponse `json:"templates"`
}

type errorResponse struct {
	Error string `json:"error"`
}

const timeFormat = "2006-01-02T15:04:05Z07:00"

func toResponse(t *store.Template) templateResponse {
	return templateResponse{
		ID:        t.ID,
		Name:      t.Name,
		Strokes:   t.Strokes,
		CreatedAt: t.CreatedAt.Format(timeFormat),
		UpdatedAt: t.UpdatedAt.Format(timeFormat),
	}
}

func fromTemplate(t *gesture.Template) templateResponse {
	return templateResponse{
		ID:      t.ID,
		Name:    t.Name,
		Strokes: len(t.Strokes),
		Points:  t.Strokes,
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// list handles GET /api/templates and returns all stored templates.
func (h *TemplateHandler) list(w http.ResponseWriter, r *http.Request) {
	response := listTemplatesResponse{Templates: []templateResponse{}}

	if s := h.app.Store(); s != nil {
		templates, err := s.Templates().List()
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to list templates")
			return
		}
		for _, t := range templates {
			response.Templates = append(response.Templates, toResponse(t))
		}
	} else {
		for _, t := range h.app.Templates() {
			resp := fromTemplate(t)
			resp.Points = nil
			response.Templates = append(response.Templates, resp)
		}
	}

	writeJSON(w, http.StatusOK, response)
}

// get handles GET /api/templates/{id} and returns a template with its strokes.
func (h *TemplateHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	t, ok := h.app.Template(id)
	if !ok {
		writeError(w, http.StatusNotFound, "Template not found")
		return
	}

	resp := fromTemplate(t)
	if s := h.app.Store(); s != nil {
		stored, err := s.Templates().GetByID(id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				writeError(w, http.StatusNotFound, "Template not found")
				return
			}
			writeError(w, http.StatusInternalServerError, "Failed to get template")
			return
		}
		resp.CreatedAt = stored.CreatedAt.Format(timeFormat)
		resp.UpdatedAt = stored.UpdatedAt.Format(timeFormat)
	}

	writeJSON(w, http.StatusOK, resp)
}

// create handles POST /api/templates. The strokes are normalized before they
// are stored; an empty name becomes "Template N".
func (h *TemplateHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if len(req.Strokes) == 0 {
		writeError(w, http.StatusBadRequest, "At least one stroke is required")
		return
	}

	t, err := h.app.SaveTemplate(req.Strokes, req.Name)
	if err != nil {
		if isGeometryError(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to create template")
		return
	}

	writeJSON(w, http.StatusCreated, fromTemplate(t))
}

// update handles PUT /api/templates/{id} and renames a template.
func (h *TemplateHandler) update(w http.ResponseWriter, r *http.Request, id string) {
	var req updateTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required")
		return
	}

	if err := h.app.RenameTemplate(id, req.Name); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Template not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to update template")
		return
	}

	h.get(w, r, id)
}

// delete handles DELETE /api/templates/{id} and removes a template.
func (h *TemplateHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.app.RemoveTemplate(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Template not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete template")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func isGeometryError(err error) bool {
	return errors.Is(err, gesture.ErrInvalidSample) ||
		errors.Is(err, gesture.ErrInsufficientData) ||
		errors.Is(err, gesture.ErrDegeneratePath) ||
		errors.Is(err, gesture.ErrInvalidResolution)
}
