package api

import (
	"encoding/json"
	"net/http"

	"github.com/ayusman/sigil/internal/app"
	"github.com/ayusman/sigil/internal/geometry"
	"github.com/ayusman/sigil/internal/gesture"
)

// RecognizeHandler matches a submitted stroke against the template library.
type RecognizeHandler struct {
	app *app.App
}

// NewRecognizeHandler creates a new RecognizeHandler backed by the given app.
func NewRecognizeHandler(a *app.App) *RecognizeHandler {
	return &RecognizeHandler{app: a}
}

type strokeRequest struct {
	Points []geometry.Point2D `json:"points"`
}

type matchResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Distance float64 `json:"distance"`
	Score    float64 `json:"score"`
}

type recognizeResponse struct {
	Match      *matchResponse  `json:"match"`
	Candidates []matchResponse `json:"candidates"`
}

func toMatchResponse(m gesture.Match) matchResponse {
	return matchResponse{
		ID:       m.Template.ID,
		Name:     m.Template.Name,
		Distance: m.Distance,
		Score:    m.Score,
	}
}

func decodeStroke(w http.ResponseWriter, r *http.Request) ([]geometry.Point2D, bool) {
	var req strokeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return nil, false
	}
	if len(req.Points) < 2 {
		writeError(w, http.StatusBadRequest, "At least 2 points are required")
		return nil, false
	}
	return req.Points, true
}

// ServeHTTP handles POST /api/recognize. The match is null when no template
// is within the configured distance; candidates always lists every template
// closest first.
func (h *RecognizeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	points, ok := decodeStroke(w, r)
	if !ok {
		return
	}

	ranked, m := h.app.RankAndRecognize(points)
	response := recognizeResponse{Candidates: []matchResponse{}}
	for _, c := range ranked {
		response.Candidates = append(response.Candidates, toMatchResponse(c))
	}
	if m != nil {
		mr := toMatchResponse(*m)
		response.Match = &mr
	}

	writeJSON(w, http.StatusOK, response)
}
