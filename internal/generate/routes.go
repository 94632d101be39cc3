package generate

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sitewright/sitewright/internal/project"
	"github.com/sitewright/sitewright/internal/store"
)

// RegisterRoutes mounts the generation API routes.
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Post("/api/projects", handleGenerate(svc))
	r.Post("/api/projects/{id}/modify", handleModify(svc))
}

type generateRequest struct {
	Name   string `json:"name"`
	Prompt string `json:"prompt"`
}

type generateResponse struct {
	Project *store.Project `json:"project"`
	Files   []project.File `json:"files"`
}

func handleGenerate(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}
		if req.Prompt == "" {
			http.Error(w, `{"error":"prompt is required"}`, http.StatusBadRequest)
			return
		}
		if req.Name == "" {
			req.Name = "untitled"
		}

		p, fs, err := svc.Generate(r.Context(), req.Name, req.Prompt)
		if err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(generateResponse{Project: p, Files: fs.Files})
	}
}

type modifyRequest struct {
	Prompt string `json:"prompt"`
}

func handleModify(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		var req modifyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}
		if req.Prompt == "" {
			http.Error(w, `{"error":"prompt is required"}`, http.StatusBadRequest)
			return
		}

		fs, err := svc.Modify(r.Context(), id, req.Prompt)
		if err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(fs.Files)
	}
}
