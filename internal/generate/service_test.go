package generate

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/sitewright/sitewright/internal/config"
	"github.com/sitewright/sitewright/internal/db"
	"github.com/sitewright/sitewright/internal/llm"
	"github.com/sitewright/sitewright/internal/project"
	"github.com/sitewright/sitewright/internal/store"
)

type mockProvider struct {
	calls    []llm.CompletionRequest
	response *llm.CompletionResponse
	err      error
}

func (m *mockProvider) Name() string { return "mock" }

func (m *mockProvider) Complete(_ context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	m.calls = append(m.calls, req)
	if m.err != nil {
		return nil, m.err
	}
	return m.response, nil
}

// streamingMock additionally implements StreamingProvider.
type streamingMock struct {
	mockProvider
	streamed bool
}

func (m *streamingMock) CompleteStream(ctx context.Context, req llm.CompletionRequest, handler llm.StreamHandler) (*llm.CompletionResponse, error) {
	m.streamed = true
	resp, err := m.Complete(ctx, req)
	if err != nil {
		return nil, err
	}
	if handler != nil {
		handler(resp.Content)
	}
	return resp, nil
}

func siteResponse(t *testing.T, files map[string]string) *llm.CompletionResponse {
	t.Helper()
	type payloadFile struct {
		Path    string `json:"path"`
		Content string `json:"content"`
	}
	var payload struct {
		Files []payloadFile `json:"files"`
	}
	for path, content := range files {
		payload.Files = append(payload.Files, payloadFile{Path: path, Content: content})
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatal(err)
	}
	return &llm.CompletionResponse{
		Content:      string(raw),
		InputTokens:  100,
		OutputTokens: 500,
		Model:        "mock-model",
		FinishReason: "stop",
	}
}

func newTestService(t *testing.T, provider llm.Provider) (*Service, *store.Store) {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory() error: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	st := store.NewStore(database)
	cfg := config.DefaultConfig()
	return NewService(provider, st, nil, cfg), st
}

func TestGenerateCreatesProject(t *testing.T) {
	provider := &mockProvider{response: siteResponse(t, map[string]string{
		"index.html": "<html><body>home</body></html>",
		"style.css":  "body{}",
	})}
	svc, st := newTestService(t, provider)
	ctx := context.Background()

	p, fs, err := svc.Generate(ctx, "demo", "a demo site")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if p.Name != "demo" || p.Prompt != "a demo site" {
		t.Errorf("project = %+v", p)
	}
	if fs.Len() != 2 {
		t.Fatalf("got %d files, want 2", fs.Len())
	}
	if fs.Files[0].Path != "index.html" {
		t.Errorf("first file = %q, want index.html", fs.Files[0].Path)
	}

	// Files are persisted.
	stored, err := st.FileSet(ctx, p.ID)
	if err != nil {
		t.Fatalf("FileSet failed: %v", err)
	}
	if stored.Len() != 2 {
		t.Errorf("stored %d files, want 2", stored.Len())
	}

	// Run accounting is recorded.
	gens, err := st.Generations(ctx, p.ID)
	if err != nil {
		t.Fatalf("Generations failed: %v", err)
	}
	if len(gens) != 1 {
		t.Fatalf("got %d generations, want 1", len(gens))
	}
	if gens[0].Kind != store.GenerationGenerate || gens[0].FileCount != 2 {
		t.Errorf("generation = %+v", gens[0])
	}
	if gens[0].Recovered {
		t.Error("clean JSON response should not be marked recovered")
	}
}

func TestGenerateRecoversTruncatedResponse(t *testing.T) {
	// Response cut mid-content, as if the model hit its token limit.
	truncated := `{"files": [{"path": "index.html", "content": "<html><body><h1>Big`
	provider := &mockProvider{response: &llm.CompletionResponse{
		Content: truncated, Model: "mock-model", FinishReason: "length",
	}}
	svc, st := newTestService(t, provider)
	ctx := context.Background()

	p, fs, err := svc.Generate(ctx, "big", "a big site")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if fs.Empty() {
		t.Fatal("recovery produced an empty set")
	}
	if _, ok := fs.Get("index.html"); !ok {
		t.Errorf("index.html not recovered: %v", fs.Paths())
	}

	gens, _ := st.Generations(ctx, p.ID)
	if len(gens) != 1 || !gens[0].Recovered {
		t.Errorf("truncated response should be marked recovered: %+v", gens)
	}
}

func TestGenerateRequestShape(t *testing.T) {
	provider := &mockProvider{response: siteResponse(t, map[string]string{"index.html": "<html></html>"})}
	svc, _ := newTestService(t, provider)

	if _, _, err := svc.Generate(context.Background(), "x", "a bakery site"); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if len(provider.calls) != 1 {
		t.Fatalf("got %d calls, want 1", len(provider.calls))
	}
	req := provider.calls[0]
	if !req.JSONMode {
		t.Error("expected JSON mode")
	}
	if len(req.Messages) != 2 || req.Messages[0].Role != llm.RoleSystem {
		t.Errorf("messages = %+v", req.Messages)
	}
	if !strings.Contains(req.Messages[1].Content, "a bakery site") {
		t.Error("user prompt missing from request")
	}
}

func TestGeneratePrefersStreaming(t *testing.T) {
	provider := &streamingMock{mockProvider: mockProvider{
		response: siteResponse(t, map[string]string{"index.html": "<html></html>"}),
	}}
	svc, _ := newTestService(t, provider)

	var chunks []string
	svc.OnChunk = func(chunk string) { chunks = append(chunks, chunk) }

	if _, _, err := svc.Generate(context.Background(), "x", "site"); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !provider.streamed {
		t.Error("streaming provider was not used")
	}
	if len(chunks) == 0 {
		t.Error("OnChunk received nothing")
	}
}

func TestGenerateNonRetryableError(t *testing.T) {
	provider := &mockProvider{err: errors.New("invalid api key")}
	svc, _ := newTestService(t, provider)

	if _, _, err := svc.Generate(context.Background(), "x", "site"); err == nil {
		t.Fatal("expected error")
	}
	if len(provider.calls) != 1 {
		t.Errorf("non-retryable error should not retry, got %d calls", len(provider.calls))
	}
}

func TestModifyReplacesFiles(t *testing.T) {
	provider := &mockProvider{response: siteResponse(t, map[string]string{
		"index.html": "<html><body>v1</body></html>",
		"old.html":   "<html><body>old</body></html>",
	})}
	svc, st := newTestService(t, provider)
	ctx := context.Background()

	p, _, err := svc.Generate(ctx, "site", "make a site")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	provider.response = siteResponse(t, map[string]string{
		"index.html": "<html><body>v2</body></html>",
	})
	fs, err := svc.Modify(ctx, p.ID, "drop the old page")
	if err != nil {
		t.Fatalf("Modify failed: %v", err)
	}
	if _, ok := fs.Get("old.html"); ok {
		t.Error("removed file still in result")
	}

	stored, _ := st.FileSet(ctx, p.ID)
	if _, ok := stored.Get("old.html"); ok {
		t.Error("removed file still persisted")
	}
	f, _ := stored.Get("index.html")
	if !strings.Contains(f.Content, "v2") {
		t.Error("updated content not persisted")
	}

	// The modify prompt carries the then-current files.
	modifyReq := provider.calls[1]
	if !strings.Contains(modifyReq.Messages[1].Content, "old.html") {
		t.Error("current files missing from modify prompt")
	}
}

func TestModifyUnknownProject(t *testing.T) {
	provider := &mockProvider{response: siteResponse(t, map[string]string{"index.html": "<html></html>"})}
	svc, _ := newTestService(t, provider)

	if _, err := svc.Modify(context.Background(), "ghost", "change it"); err == nil {
		t.Fatal("expected error for unknown project")
	}
	if len(provider.calls) != 0 {
		t.Error("should not call the model for an unknown project")
	}
}

func TestRoutes(t *testing.T) {
	provider := &mockProvider{response: siteResponse(t, map[string]string{"index.html": "<html></html>"})}
	svc, _ := newTestService(t, provider)

	r := chi.NewRouter()
	RegisterRoutes(r, svc)

	body := strings.NewReader(`{"name": "api-site", "prompt": "a site"}`)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/projects", body))
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp generateResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Project == nil || resp.Project.Name != "api-site" {
		t.Errorf("project = %+v", resp.Project)
	}
	if len(resp.Files) != 1 {
		t.Errorf("files = %+v", resp.Files)
	}

	// Missing prompt is rejected.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/projects", strings.NewReader(`{"name": "x"}`)))
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing prompt status = %d", w.Code)
	}

	// Modify through the API.
	provider.response = siteResponse(t, map[string]string{"index.html": "<html><body>new</body></html>"})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/projects/"+resp.Project.ID+"/modify",
		strings.NewReader(`{"prompt": "update it"}`)))
	if w.Code != http.StatusOK {
		t.Fatalf("modify status = %d, body = %s", w.Code, w.Body.String())
	}
	var files []project.File
	if err := json.NewDecoder(w.Body).Decode(&files); err != nil {
		t.Fatalf("decoding modify response: %v", err)
	}
	if len(files) != 1 || files[0].Path != "index.html" {
		t.Errorf("files = %+v", files)
	}
}
