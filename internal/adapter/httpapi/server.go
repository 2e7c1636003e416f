package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"agent-pipeline/internal/application/port/output"
	"agent-pipeline/internal/domain/entity"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog"
)

// Pipeline is what the HTTP front end needs from the orchestrator.
type Pipeline interface {
	Execute(ctx context.Context, wf entity.Workflow, topic string) (*entity.PipelineResult, error)
	Agents() []string
}

type Config struct {
	Addr            string
	DefaultLanguage string
	ServiceName     string
}

type Server struct {
	pipeline Pipeline
	logger   output.LoggerPort
	config   Config
	http     *http.Server
}

type runRequest struct {
	Topic    string `json:"topic"`
	Language string `json:"language,omitempty"`
}

type stageResponse struct {
	Stage  string `json:"stage"`
	Agent  string `json:"agent"`
	Status string `json:"status"`
	Output string `json:"output"`
	Error  string `json:"error,omitempty"`
}

type runResponse struct {
	RunID      string          `json:"run_id"`
	Workflow   string          `json:"workflow"`
	Status     string          `json:"status"`
	Succeeded  bool            `json:"succeeded"`
	Stages     []stageResponse `json:"stages"`
	StartedAt  time.Time       `json:"started_at"`
	FinishedAt time.Time       `json:"finished_at"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func New(pipeline Pipeline, logger output.LoggerPort, cfg Config) *Server {
	if cfg.ServiceName == "" {
		cfg.ServiceName = "agent-pipeline"
	}
	s := &Server{
		pipeline: pipeline,
		logger:   logger.Named("http"),
		config:   cfg,
	}
	s.http = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) Routes() http.Handler {
	requestLogger := httplog.NewLogger(s.config.ServiceName, httplog.Options{JSON: true}).
		Output(&requestLogWriter{log: s.logger.Named("request")})

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(httplog.RequestLogger(requestLogger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/v1/agents", s.handleAgents)
	r.Post("/v1/workflows", s.handleRunWorkflow)

	return r
}

func (s *Server) ListenAndServe() error {
	s.logger.Info("HTTP server listening", "addr", s.config.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleAgents(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"agents": s.pipeline.Agents()})
}

func (s *Server) handleRunWorkflow(w http.ResponseWriter, r *http.Request) {
	var req runRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body: " + err.Error()})
		return
	}
	if strings.TrimSpace(req.Topic) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: entity.ErrEmptyTopic.Error()})
		return
	}

	language := req.Language
	if language == "" {
		language = s.config.DefaultLanguage
	}

	result, err := s.pipeline.Execute(r.Context(), entity.DefaultWorkflow(language), req.Topic)
	if err != nil {
		s.logger.Error("Workflow rejected", "error", err)
		writeJSON(w, statusFor(err), errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, toResponse(result))
}

func statusFor(err error) int {
	if errors.Is(err, entity.ErrEmptyTopic) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func toResponse(result *entity.PipelineResult) runResponse {
	stages := make([]stageResponse, 0, len(result.Stages))
	for _, s := range result.Stages {
		sr := stageResponse{
			Stage:  s.Stage,
			Agent:  s.Agent,
			Status: string(s.Status),
			Output: s.Output,
		}
		if s.Err != nil {
			sr.Error = s.Err.Error()
		}
		stages = append(stages, sr)
	}

	return runResponse{
		RunID:      result.RunID,
		Workflow:   result.Workflow,
		Status:     string(result.Status),
		Succeeded:  result.Succeeded(),
		Stages:     stages,
		StartedAt:  result.StartedAt,
		FinishedAt: result.FinishedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
