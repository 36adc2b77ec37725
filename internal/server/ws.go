package server

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/ayusman/sigil/internal/app"
	"github.com/ayusman/sigil/internal/geometry"
	"github.com/ayusman/sigil/internal/gesture"
	"github.com/ayusman/sigil/internal/spell"
	"github.com/ayusman/sigil/internal/store"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// Message types exchanged on /api/strokes.
const (
	MessagePoint  = "point"
	MessageEnd    = "end"
	MessageClear  = "clear"
	MessageSave   = "save"
	MessageResult = "result"
	MessageSaved  = "saved"
	MessageError  = "error"
)

// strokeMessage is sent by the client. Point messages carry X and Y; an end
// message with Layer set adds the stroke to the spell in progress.
type strokeMessage struct {
	Type  string  `json:"type"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Layer bool    `json:"layer,omitempty"`
}

// MatchMessage describes a recognized template.
type MatchMessage struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Distance float64 `json:"distance"`
	Score    float64 `json:"score"`
}

type resultMessage struct {
	Type     string             `json:"type"`
	Match    *MatchMessage      `json:"match"`
	Analysis *geometry.Report   `json:"analysis,omitempty"`
	Spell    *spell.Spell       `json:"spell,omitempty"`
	Saved    *store.SpellRecord `json:"saved,omitempty"`
	Error    string             `json:"error,omitempty"`
}

func newMatchMessage(m gesture.Match) *MatchMessage {
	return &MatchMessage{
		ID:       m.Template.ID,
		Name:     m.Template.Name,
		Distance: m.Distance,
		Score:    m.Score,
	}
}

// StrokesHandler buffers live pointer input per connection and recognizes
// each stroke when the client ends it.
type StrokesHandler struct {
	app *app.App
}

// NewStrokesHandler creates a new StrokesHandler backed by the given app.
func NewStrokesHandler(a *app.App) *StrokesHandler {
	return &StrokesHandler{app: a}
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *StrokesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	session := h.app.NewSession()
	for {
		var msg strokeMessage
		if err := conn.ReadJSON(&msg); err != nil {
			break
		}

		reply := h.handle(session, msg)
		if reply == nil {
			continue
		}
		if err := conn.WriteJSON(reply); err != nil {
			log.Printf("websocket write error: %v", err)
			break
		}
	}
}

func (h *StrokesHandler) handle(session *app.Session, msg strokeMessage) *resultMessage {
	switch msg.Type {
	case MessagePoint:
		session.AddPoint(geometry.Pt(msg.X, msg.Y))
		return nil
	case MessageClear:
		session.Clear()
		return nil
	case MessageEnd:
		stroke := session.End()
		if stroke.Len() < 2 {
			return &resultMessage{Type: MessageError, Error: "stroke needs at least 2 points"}
		}

		reply := &resultMessage{Type: MessageResult}
		m := h.app.Recognize(stroke.Points)
		if m != nil {
			reply.Match = newMatchMessage(*m)
		}
		report := h.app.Analyze(stroke)
		reply.Analysis = &report
		sp := h.app.Cast(stroke, m, msg.Layer)
		reply.Spell = &sp
		return reply
	case MessageSave:
		rec, err := h.app.SaveSpell()
		if err != nil {
			return &resultMessage{Type: MessageError, Error: err.Error()}
		}
		return &resultMessage{Type: MessageSaved, Saved: rec}
	default:
		return &resultMessage{Type: MessageError, Error: "unknown message type: " + msg.Type}
	}
}
