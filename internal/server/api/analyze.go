package api

import (
	"net/http"

	"github.com/ayusman/sigil/internal/app"
	"github.com/ayusman/sigil/internal/geometry"
)

// AnalyzeHandler reports the geometric features of a submitted stroke.
type AnalyzeHandler struct {
	app *app.App
}

// NewAnalyzeHandler creates a new AnalyzeHandler backed by the given app.
func NewAnalyzeHandler(a *app.App) *AnalyzeHandler {
	return &AnalyzeHandler{app: a}
}

// ServeHTTP handles POST /api/analyze.
func (h *AnalyzeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	points, ok := decodeStroke(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, h.app.Analyze(geometry.NewStroke(points)))
}
