// Package bridge connects a sandboxed preview frame to the composer. The
// shim inside the frame reports navigation intents via postMessage; the
// host page forwards them over a WebSocket handled here, and receives
// freshly composed documents in return.
package bridge

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/sitewright/sitewright/internal/compose"
	"github.com/sitewright/sitewright/internal/project"
)

// Message types exchanged with the preview surface. The inbound names
// mirror what the navigation shim posts from inside the frame.
const (
	TypeNavigateToPage    = "NAVIGATE_TO_PAGE"
	TypeNavigateToSection = "NAVIGATE_TO_SECTION"
	TypePageDocument      = "PAGE_DOCUMENT"
	TypeError             = "ERROR"
)

// navRequest is the incoming WebSocket message format.
type navRequest struct {
	Type       string `json:"type"`
	TargetFile string `json:"targetFile,omitempty"`
	Hash       string `json:"hash,omitempty"`
}

// pageDocument is the outgoing WebSocket message carrying a composed
// document for the host to swap into the frame.
type pageDocument struct {
	Type       string   `json:"type"`
	TargetFile string   `json:"targetFile"`
	Document   string   `json:"document"`
	Pages      []string `json:"pages"`
}

type errorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// FileSource loads the current file set of a project.
type FileSource interface {
	FileSet(ctx context.Context, projectID string) (*project.FileSet, error)
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handler serves the navigation WebSocket for preview sessions.
type Handler struct {
	source   FileSource
	composer *compose.Composer
}

// NewHandler creates a bridge handler backed by the given file source.
func NewHandler(source FileSource, composer *compose.Composer) *Handler {
	if composer == nil {
		composer = compose.New()
	}
	return &Handler{source: source, composer: composer}
}

// ServeProject upgrades the request and runs the navigation loop for one
// preview session. The file set is loaded once per connection; edits made
// while a session is open show up on the next connection.
func (h *Handler) ServeProject(w http.ResponseWriter, r *http.Request, projectID string) {
	fs, err := h.source.FileSet(r.Context(), projectID)
	if err != nil {
		log.Printf("bridge: loading project %s: %v", projectID, err)
		http.Error(w, "project not found", http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("bridge: websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	// Opening handshake: the entry document, so the host has something
	// to render before the first click.
	current := ""
	if res := h.composer.Compose(fs, ""); !res.Empty() {
		current = res.Target
		h.sendDocument(conn, res)
	} else {
		h.sendError(conn, "project has no previewable content")
	}

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("bridge: websocket read: %v", err)
			}
			return
		}

		var req navRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			h.sendError(conn, "invalid message format")
			continue
		}

		switch req.Type {
		case TypeNavigateToPage:
			target, ok := cleanTarget(req.TargetFile)
			if !ok {
				h.sendError(conn, "invalid target file: "+req.TargetFile)
				continue
			}
			if target == current {
				continue
			}
			res := h.composer.Compose(fs, target)
			if res.Empty() || res.Target != target {
				h.sendError(conn, "no such page: "+target)
				continue
			}
			current = res.Target
			h.sendDocument(conn, res)
		case TypeNavigateToSection:
			// Section jumps happen entirely inside the frame; nothing
			// to recompose.
		default:
			log.Printf("bridge: dropping unknown message type %q", req.Type)
		}
	}
}

func (h *Handler) sendDocument(conn *websocket.Conn, res compose.Result) {
	out := pageDocument{
		Type:       TypePageDocument,
		TargetFile: res.Target,
		Document:   res.Document,
		Pages:      res.Pages,
	}
	if err := conn.WriteJSON(out); err != nil {
		log.Printf("bridge: websocket write: %v", err)
	}
}

func (h *Handler) sendError(conn *websocket.Conn, message string) {
	if err := conn.WriteJSON(errorMessage{Type: TypeError, Message: message}); err != nil {
		log.Printf("bridge: websocket write error: %v", err)
	}
}

// cleanTarget validates a shim-supplied target path. Anything remote,
// absolute, or escaping the project root is rejected.
func cleanTarget(target string) (string, bool) {
	target = strings.TrimSpace(target)
	if target == "" || strings.Contains(target, "://") {
		return "", false
	}
	target = strings.TrimPrefix(target, "./")
	if strings.HasPrefix(target, "/") || strings.HasPrefix(target, "\\") {
		return "", false
	}
	for _, seg := range strings.Split(target, "/") {
		if seg == ".." {
			return "", false
		}
	}
	return target, true
}
