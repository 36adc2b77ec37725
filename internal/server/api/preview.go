package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/ayusman/sigil/internal/app"
	"github.com/ayusman/sigil/internal/render"
)

const maxPreviewSize = 1024

// PreviewHandler renders a template's normalized strokes as a PNG.
type PreviewHandler struct {
	app *app.App
}

// NewPreviewHandler creates a new PreviewHandler backed by the given app.
func NewPreviewHandler(a *app.App) *PreviewHandler {
	return &PreviewHandler{app: a}
}

// ServeHTTP implements the http.Handler interface.
// Expected paths: /api/templates/{id}/preview?size=N
func (h *PreviewHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/templates/")
	parts := strings.Split(path, "/")

	if len(parts) != 2 || parts[1] != "preview" {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	size := render.PreviewSize
	if v := r.URL.Query().Get("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 16 || n > maxPreviewSize {
			writeError(w, http.StatusBadRequest, "Invalid size")
			return
		}
		size = n
	}

	t, ok := h.app.Template(parts[0])
	if !ok {
		writeError(w, http.StatusNotFound, "Template not found")
		return
	}

	data, err := render.PNG(t.Strokes, nil, size)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to render preview")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
