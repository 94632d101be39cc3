package preview

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/sitewright/sitewright/internal/db"
	"github.com/sitewright/sitewright/internal/project"
	"github.com/sitewright/sitewright/internal/store"
)

func newTestRouter(t *testing.T) (chi.Router, *store.Project) {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory() error: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	st := store.NewStore(database)
	ctx := context.Background()
	p, err := st.Create(ctx, store.Project{Name: "shop"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	fs := project.NewFileSet(
		project.NewFile("index.html", "<html><head><title>Shop</title></head><body><h1>Shop</h1></body></html>"),
		project.NewFile("about.html", "<html><body><h2>About the shop</h2></body></html>"),
	)
	if err := st.ReplaceFiles(ctx, p.ID, fs); err != nil {
		t.Fatalf("ReplaceFiles failed: %v", err)
	}

	r := chi.NewRouter()
	RegisterRoutes(r, st, nil)
	return r, p
}

func TestPreviewDocument(t *testing.T) {
	r, p := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/projects/"+p.ID+"/preview", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	doc := w.Body.String()
	if !strings.Contains(doc, "<h1>Shop</h1>") {
		t.Error("entry page content missing")
	}
	if !strings.Contains(doc, "NAVIGATE_TO_PAGE") {
		t.Error("navigation shim missing from composed document")
	}
}

func TestPreviewDocumentTarget(t *testing.T) {
	r, p := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/projects/"+p.ID+"/preview?target=about.html", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "About the shop") {
		t.Error("target page content missing")
	}
}

func TestPreviewUnknownProject(t *testing.T) {
	r, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/projects/ghost/preview", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestHostPage(t *testing.T) {
	r, p := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/preview/"+p.ID, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, `sandbox="allow-scripts"`) {
		t.Error("iframe must be sandboxed")
	}
	if !strings.Contains(body, "/api/projects/"+p.ID+"/bridge") {
		t.Error("host page missing bridge URL")
	}
	if !strings.Contains(body, "PAGE_DOCUMENT") {
		t.Error("host page missing document handler")
	}
}

func TestHostPageUnknownProject(t *testing.T) {
	r, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/preview/ghost", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}
