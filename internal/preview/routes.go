// Package preview serves composed site previews: a raw document endpoint,
// the host page, and the navigation bridge WebSocket.
package preview

import (
	"html/template"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sitewright/sitewright/internal/bridge"
	"github.com/sitewright/sitewright/internal/compose"
	"github.com/sitewright/sitewright/internal/store"
)

var hostTmpl = template.Must(template.New("host").Parse(hostPage))

// RegisterRoutes mounts the preview routes.
func RegisterRoutes(r chi.Router, st *store.Store, composer *compose.Composer) {
	if composer == nil {
		composer = compose.New()
	}
	bridgeHandler := bridge.NewHandler(st, composer)

	r.Get("/preview/{id}", handleHostPage(st))
	r.Get("/api/projects/{id}/preview", handleDocument(st, composer))
	r.Get("/api/projects/{id}/bridge", func(w http.ResponseWriter, req *http.Request) {
		bridgeHandler.ServeProject(w, req, chi.URLParam(req, "id"))
	})
}

// handleHostPage serves the embedding page that owns the iframe and the
// bridge connection.
func handleHostPage(st *store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		p, err := st.Get(r.Context(), id)
		if err != nil {
			http.Error(w, "loading project", http.StatusInternalServerError)
			return
		}
		if p == nil {
			http.Error(w, "project not found", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := hostTmpl.Execute(w, map[string]string{
			"ProjectID": p.ID,
			"Name":      p.Name,
		}); err != nil {
			log.Printf("preview: rendering host page: %v", err)
		}
	}
}

// handleDocument serves a single composed document. An optional target
// query parameter selects the page; the default is the entry page.
func handleDocument(st *store.Store, composer *compose.Composer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		fs, err := st.FileSet(r.Context(), id)
		if err != nil {
			http.Error(w, "project not found", http.StatusNotFound)
			return
		}

		res := composer.Compose(fs, r.URL.Query().Get("target"))
		if res.Empty() {
			http.Error(w, "project has no previewable content", http.StatusUnprocessableEntity)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(res.Document))
	}
}
