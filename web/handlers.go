package web

import (
	"Explainer/core"
	"Explainer/lib/sl"
	"Explainer/storage"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
)

const (
	maxBodyBytes        = 1 << 20
	defaultJournalLimit = 20
	maxJournalLimit     = 100
)

//go:embed templates/index.html
var templatesFS embed.FS

type Handler struct {
	svc      core.ExplainService
	journal  storage.Journal
	page     *template.Template
	examples []Example
	log      *slog.Logger
}

func NewHandler(svc core.ExplainService, journal storage.Journal, log *slog.Logger) (*Handler, error) {
	page, err := template.ParseFS(templatesFS, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}
	examples, err := LoadExamples()
	if err != nil {
		return nil, err
	}
	return &Handler{
		svc:      svc,
		journal:  journal,
		page:     page,
		examples: examples,
		log:      log.With(sl.Module("web")),
	}, nil
}

type pageData struct {
	Code        string
	Level       string
	Model       string
	Levels      []string
	Models      []string
	Explanation template.HTML
	Error       string
	Examples    []Example
}

func (h *Handler) newPage() pageData {
	levels := h.svc.Levels()
	models := h.svc.Models()
	data := pageData{
		Levels:   levels,
		Models:   models,
		Examples: h.examples,
	}
	if len(levels) > 0 {
		data.Level = levels[0]
	}
	if len(models) > 0 {
		data.Model = models[0]
	}
	return data
}

// Index renders an empty form, ?example=N preloads a gallery snippet
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	data := h.newPage()
	if raw := r.URL.Query().Get("example"); raw != "" {
		i, err := strconv.Atoi(raw)
		if err != nil || i < 0 || i >= len(h.examples) {
			http.Error(w, "unknown example", http.StatusNotFound)
			return
		}
		data.Code = h.examples[i].Code
		data.Level = h.examples[i].Level
	}
	h.render(w, http.StatusOK, data)
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	data := h.newPage()
	data.Code = r.PostForm.Get("code")
	if level := r.PostForm.Get("expertise_level"); level != "" {
		data.Level = level
	}
	if model := r.PostForm.Get("model"); model != "" {
		data.Model = model
	}

	outcome := h.svc.Explain(r.Context(), data.Code, data.Level, data.Model)
	if outcome.IsError() {
		data.Error = outcome.String()
	} else {
		data.Explanation = renderMarkdown(outcome.Explanation)
	}
	h.render(w, http.StatusOK, data)
}

func (h *Handler) render(w http.ResponseWriter, status int, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.page.Execute(w, data); err != nil {
		h.log.Error("rendering page", sl.Err(err))
	}
}

type explainRequest struct {
	Code           string `json:"code"`
	ExpertiseLevel string `json:"expertise_level"`
	Model          string `json:"model"`
}

type explainResponse struct {
	Explanation string `json:"explanation,omitempty"`
	Error       string `json:"error,omitempty"`
	Kind        string `json:"kind,omitempty"`
}

func (h *Handler) Explain(w http.ResponseWriter, r *http.Request) {
	var req explainRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, explainResponse{
			Error: "Error: invalid request body",
			Kind:  string(core.InvalidInput),
		})
		return
	}

	outcome := h.svc.Explain(r.Context(), req.Code, req.ExpertiseLevel, req.Model)
	if !outcome.IsError() {
		writeJSON(w, http.StatusOK, explainResponse{Explanation: outcome.Explanation})
		return
	}
	writeJSON(w, statusFor(outcome.Kind), explainResponse{
		Error: outcome.String(),
		Kind:  string(outcome.Kind),
	})
}

func statusFor(kind core.ErrorKind) int {
	switch kind {
	case core.InvalidInput, core.UnsupportedModel:
		return http.StatusBadRequest
	default:
		return http.StatusBadGateway
	}
}

func (h *Handler) Models(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{
		"models": h.svc.Models(),
		"levels": h.svc.Levels(),
	})
}

func (h *Handler) Journal(w http.ResponseWriter, r *http.Request) {
	limit := defaultJournalLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "limit must be a positive number"})
			return
		}
		limit = min(n, maxJournalLimit)
	}

	entries := []storage.Entry{}
	if h.journal != nil {
		var err error
		entries, err = h.journal.Recent(limit)
		if err != nil {
			h.log.Error("reading journal", sl.Err(err))
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "journal unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}
