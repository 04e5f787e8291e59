// Package web exposes the report wizard over HTTP: report persistence,
// completeness analysis, document download, and a chat relay.
package web

import (
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/xeipuuv/gojsonschema"

	"github.com/jkleczar/wypadek/internal/chat"
	"github.com/jkleczar/wypadek/internal/db"
	"github.com/jkleczar/wypadek/internal/render"
	"github.com/jkleczar/wypadek/internal/report"
)

//go:embed schema/report.json
var schemaFS embed.FS

// Server provides the HTTP handlers and chat session state.
type Server struct {
	store      *db.Store
	newBackend func() chat.Backend

	mu       sync.Mutex
	sessions map[string]*chat.Engine

	schema *gojsonschema.Schema
}

// NewServer creates a server. newBackend is called once per chat
// session, so a stateful backend gets its own history per session; it
// may be nil, which turns the /chat endpoint off.
func NewServer(store *db.Store, newBackend func() chat.Backend) (*Server, error) {
	raw, err := schemaFS.ReadFile("schema/report.json")
	if err != nil {
		return nil, fmt.Errorf("read report schema: %w", err)
	}
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("compile report schema: %w", err)
	}
	return &Server{
		store:      store,
		newBackend: newBackend,
		sessions:   make(map[string]*chat.Engine),
		schema:     schema,
	}, nil
}

// Routes returns the router for the API.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("POST /report", s.handleSaveReport)
	mux.HandleFunc("GET /report/{id}", s.handleGetReport)
	mux.HandleFunc("DELETE /report/{id}", s.handleDeleteReport)
	mux.HandleFunc("GET /report/{id}/document", s.handleDocument)
	mux.HandleFunc("GET /reports", s.handleListReports)
	mux.HandleFunc("POST /chat", s.handleChat)
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSaveReport(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		writeError(w, http.StatusBadRequest, "read body: "+err.Error())
		return
	}

	result, err := s.schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		writeError(w, http.StatusBadRequest, strings.Join(msgs, "; "))
		return
	}

	rec := report.New()
	if err := json.Unmarshal(body, rec); err != nil {
		writeError(w, http.StatusBadRequest, "decode report: "+err.Error())
		return
	}
	report.Analyze(rec).WriteBack(rec)

	id, err := s.store.SaveReport(r.Context(), rec)
	if err != nil {
		log.Error().Err(err).Msg("save report")
		writeError(w, http.StatusInternalServerError, "save failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"id":        id,
		"createdAt": rec.CreatedAt,
		"updatedAt": rec.UpdatedAt,
		"progress":  report.Progress(rec),
		"complete":  len(rec.MissingElements) == 0,
	})
}

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.GetReport(r.Context(), r.PathValue("id"))
	if err != nil {
		log.Error().Err(err).Msg("get report")
		writeError(w, http.StatusInternalServerError, "load failed")
		return
	}
	if rec == nil {
		writeError(w, http.StatusNotFound, "report not found")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDeleteReport(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteReport(r.Context(), r.PathValue("id")); err != nil {
		log.Error().Err(err).Msg("delete report")
		writeError(w, http.StatusInternalServerError, "delete failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	list, err := s.store.ListReports(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("list reports")
		writeError(w, http.StatusInternalServerError, "list failed")
		return
	}
	if list == nil {
		list = []db.Summary{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.GetReport(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "load failed")
		return
	}
	if rec == nil {
		writeError(w, http.StatusNotFound, "report not found")
		return
	}

	switch format := r.URL.Query().Get("format"); format {
	case "", "text":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = io.WriteString(w, render.Text(rec))
	case "md", "markdown":
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		_, _ = io.WriteString(w, render.Markdown(rec))
	case "pdf":
		data, err := render.PDF(rec)
		if err != nil {
			log.Error().Err(err).Msg("render pdf")
			writeError(w, http.StatusInternalServerError, "render failed")
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="`+render.FileName(rec)+`"`)
		_, _ = w.Write(data)
	default:
		writeError(w, http.StatusBadRequest, "unknown format "+format)
	}
}

type chatRequest struct {
	SessionID string `json:"sessionId"`
	Message   string `json:"message"`
}

type chatResponse struct {
	SessionID string         `json:"sessionId"`
	Reply     chat.Turn      `json:"reply"`
	Record    *report.Record `json:"record"`
	State     int            `json:"state"`
}

// handleChat runs one conversational turn. An empty sessionId opens a
// new session and returns the greeting; the message is then processed
// against the session's record.
func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	if s.newBackend == nil {
		writeError(w, http.StatusServiceUnavailable, "chat is not configured")
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "decode request: "+err.Error())
		return
	}

	engine, sessionID, fresh := s.session(req.SessionID)
	if engine == nil {
		if fresh {
			writeError(w, http.StatusServiceUnavailable, "chat is not available")
		} else {
			writeError(w, http.StatusNotFound, "unknown session")
		}
		return
	}

	if fresh && strings.TrimSpace(req.Message) == "" {
		writeJSON(w, http.StatusOK, chatResponse{
			SessionID: sessionID,
			Reply:     engine.Greet(),
			Record:    engine.Record(),
			State:     engine.State(),
		})
		return
	}

	turn, err := engine.Send(r.Context(), req.Message)
	if err != nil {
		log.Error().Err(err).Msg("chat turn")
		writeError(w, http.StatusBadGateway, "assistant unavailable, try again")
		return
	}
	writeJSON(w, http.StatusOK, chatResponse{
		SessionID: sessionID,
		Reply:     turn,
		Record:    engine.Record(),
		State:     engine.State(),
	})
}

// session returns the engine for an id, creating one when the id is
// empty. fresh reports whether the session was just created.
func (s *Server) session(id string) (*chat.Engine, string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id == "" {
		backend := s.newBackend()
		if backend == nil {
			return nil, "", true
		}
		id = uuid.NewString()
		engine := chat.NewEngine(backend, report.New())
		s.sessions[id] = engine
		return engine, id, true
	}
	engine := s.sessions[id]
	return engine, id, false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("encode response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
