package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/sightshare/reflections/internal/services"
)

type Router struct {
	reflections *services.ReflectionService
	stats       *services.StatsService
	assistant   *services.AssistantService
}

func NewRouter(store Store, assistant *services.AssistantService) *Router {
	adapter := newReflectionStoreAdapter(store)
	return &Router{
		reflections: services.NewReflectionService(adapter),
		stats:       services.NewStatsService(adapter),
		assistant:   assistant,
	}
}

func (rt *Router) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/reflections", rt.handleReflections) // POST, GET, DELETE
	mux.HandleFunc("/api/summary", rt.handleSummary)         // GET
	mux.HandleFunc("/api/chat", rt.handleChat)               // POST
}

type submitRequest struct {
	Rating            int      `json:"rating"`
	Organization      string   `json:"organization"`
	VolunteerDate     string   `json:"volunteer_date"`
	StudentType       string   `json:"student_type"`
	FirstTime         string   `json:"first_time"`
	Duration          string   `json:"duration"`
	CommunicationEase string   `json:"communication_ease"`
	Tasks             []string `json:"tasks"`
	Experience        string   `json:"experience"`
	Suggestions       string   `json:"suggestions"`
}

func (rt *Router) handleReflections(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		rt.handleSubmit(w, r)
	case http.MethodGet:
		rt.handleList(w)
	case http.MethodDelete:
		rt.handleClear(w)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// POST /api/reflections: validate, persist, and answer with the stored
// record plus its advisory blocks.
func (rt *Router) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	stored, err := rt.reflections.Submit(services.SubmitReflectionRequest{
		Rating:            req.Rating,
		Organization:      req.Organization,
		VolunteerDate:     req.VolunteerDate,
		StudentType:       req.StudentType,
		FirstTime:         req.FirstTime,
		Duration:          req.Duration,
		CommunicationEase: req.CommunicationEase,
		Tasks:             req.Tasks,
		Experience:        req.Experience,
		Suggestions:       req.Suggestions,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]any{
		"reflection":  stored,
		"suggestions": services.Suggest(stored),
	})
}

// GET /api/reflections: the collection, newest first.
func (rt *Router) handleList(w http.ResponseWriter) {
	rs, err := rt.reflections.List()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]any{"reflections": rs, "total": len(rs)})
}

// DELETE /api/reflections: irreversible bulk delete.
func (rt *Router) handleClear(w http.ResponseWriter) {
	if err := rt.reflections.Clear(); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, map[string]any{"ok": true})
}

// GET /api/summary: aggregate statistics plus the narrative from the
// resolution pipeline. Empty collection is a 404, not an empty summary.
func (rt *Router) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	sum, err := rt.stats.Summary()
	if err != nil {
		writeError(w, err)
		return
	}
	narrative := rt.assistant.SummaryNarrative(r.Context(), sum)
	writeJSON(w, map[string]any{"stats": sum, "narrative": narrative})
}

// POST /api/chat: resolve one utterance; the reply never fails outward.
func (rt *Router) handleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		http.Error(w, "message required", http.StatusBadRequest)
		return
	}
	writeJSON(w, map[string]any{"reply": rt.assistant.Chat(r.Context(), req.Message)})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	if se, ok := services.AsServiceError(err); ok {
		switch se.Code {
		case services.ErrorInvalid:
			http.Error(w, se.Message, http.StatusBadRequest)
		case services.ErrorNotFound:
			http.Error(w, se.Message, http.StatusNotFound)
		case services.ErrorBadGateway:
			http.Error(w, se.Message, http.StatusBadGateway)
		default:
			http.Error(w, se.Message, http.StatusInternalServerError)
		}
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}
