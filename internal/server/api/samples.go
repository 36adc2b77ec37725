package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/ayusman/sigil/internal/app"
	"github.com/ayusman/sigil/internal/store"
)

// SamplesHandler handles HTTP requests for the raw samples behind a template.
type SamplesHandler struct {
	app *app.App
}

// NewSamplesHandler creates a new SamplesHandler backed by the given app.
func NewSamplesHandler(a *app.App) *SamplesHandler {
	return &SamplesHandler{app: a}
}

// ServeHTTP implements the http.Handler interface.
// Expected paths: /api/templates/{id}/samples
func (h *SamplesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/templates/")
	parts := strings.Split(path, "/")

	if len(parts) != 2 || parts[1] != "samples" || parts[0] == "" {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}

	templateID := parts[0]

	switch r.Method {
	case http.MethodGet:
		h.list(w, r, templateID)
	case http.MethodPost:
		h.create(w, r, templateID)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Request types

type createSamplesRequest struct {
	Samples []json.RawMessage `json:"samples"`
}

// Response types

type sampleResponse struct {
	ID          int64           `json:"id"`
	TemplateID  string          `json:"template_id"`
	SampleIndex int             `json:"sample_index"`
	Data        json.RawMessage `json:"data"`
	CreatedAt   string          `json:"created_at"`
}

type listSamplesResponse struct {
	Samples []sampleResponse `json:"samples"`
}

// list handles GET /api/templates/{id}/samples
func (h *SamplesHandler) list(w http.ResponseWriter, r *http.Request, templateID string) {
	s := h.app.Store()
	if s == nil {
		writeJSON(w, http.StatusOK, listSamplesResponse{Samples: []sampleResponse{}})
		return
	}

	samples, err := s.Samples().GetByTemplateID(templateID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list samples")
		return
	}

	response := listSamplesResponse{
		Samples: make([]sampleResponse, 0, len(samples)),
	}

	for _, s := range samples {
		response.Samples = append(response.Samples, sampleResponse{
			ID:          s.ID,
			TemplateID:  s.TemplateID,
			SampleIndex: s.SampleIndex,
			Data:        s.Data,
			CreatedAt:   s.CreatedAt.Format(timeFormat),
		})
	}

	writeJSON(w, http.StatusOK, response)
}

// create handles POST /api/templates/{id}/samples. The samples replace the
// stored ones and the template is retrained from them.
func (h *SamplesHandler) create(w http.ResponseWriter, r *http.Request, templateID string) {
	var req createSamplesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if len(req.Samples) == 0 {
		writeError(w, http.StatusBadRequest, "At least one sample is required")
		return
	}

	t, err := h.app.RetrainTemplate(templateID, req.Samples)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Template not found")
			return
		}
		if isGeometryError(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to save samples")
		return
	}

	writeJSON(w, http.StatusCreated, fromTemplate(t))
}
