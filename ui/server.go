package ui

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"anonsurvey/app"
	"anonsurvey/domain/core"
	"anonsurvey/domain/survey"
	"anonsurvey/internal/errors"
	"anonsurvey/ports"
)

const maxUploadBytes = 32 << 20

// Server exposes archived runs and on-demand analysis over HTTP. It is a
// read-mostly surface around the pipeline; file persistence stays with
// the CLI adapters.
type Server struct {
	router   *chi.Mux
	pipeline *app.Pipeline
	store    ports.RunStore
	surveys  ports.TableSource
	scoring  ports.ScoringSource
	opts     app.Options
	port     string
}

// Config holds server configuration
type Config struct {
	Port    string
	Options app.Options
	// Surveys and Scoring parse uploaded workbooks for POST /analyze.
	// When either is nil the upload route returns 404.
	Surveys ports.TableSource
	Scoring ports.ScoringSource
}

// NewServer creates a new server instance. The store may be nil when no
// run archive is configured; archive routes then return 404.
func NewServer(pipeline *app.Pipeline, store ports.RunStore, config Config) *Server {
	s := &Server{
		router:   chi.NewRouter(),
		pipeline: pipeline,
		store:    store,
		surveys:  config.Surveys,
		scoring:  config.Scoring,
		opts:     config.Options,
		port:     config.Port,
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)

	s.router.Get("/healthz", s.handleHealth)
	s.router.Post("/analyze", s.handleAnalyze)
	s.router.Route("/runs", func(r chi.Router) {
		r.Get("/", s.handleListRuns)
		r.Get("/{runID}", s.handleGetRun)
		r.Get("/{runID}/report", s.handleRunReport)
	})
}

// Router exposes the configured mux.
func (s *Server) Router() http.Handler { return s.router }

// Start runs the HTTP server on the configured port.
func (s *Server) Start() error {
	log.Printf("[Server] listening on :%s", s.port)
	return http.ListenAndServe(":"+s.port, s.router)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleAnalyze runs the pipeline over uploaded workbooks. The multipart
// form carries "pre", "scoring" and optionally "post"; a missing post
// survey yields a structural error once alignment finds nothing to pair.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if s.surveys == nil || s.scoring == nil {
		http.Error(w, "uploads not configured", http.StatusNotFound)
		return
	}
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "invalid multipart form", http.StatusBadRequest)
		return
	}

	dir, err := os.MkdirTemp("", "anonsurvey-upload-")
	if err != nil {
		http.Error(w, "upload storage unavailable", http.StatusInternalServerError)
		return
	}
	defer os.RemoveAll(dir)

	prePath, err := saveUpload(r, "pre", dir)
	if err != nil {
		http.Error(w, "pre survey upload required", http.StatusBadRequest)
		return
	}
	scoringPath, err := saveUpload(r, "scoring", dir)
	if err != nil {
		http.Error(w, "scoring upload required", http.StatusBadRequest)
		return
	}

	rawPre, err := s.surveys.ReadSurvey(prePath)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	rawPost := survey.NewRawTable(rawPre.Questions)
	if postPath, perr := saveUpload(r, "post", dir); perr == nil {
		if rawPost, err = s.surveys.ReadSurvey(postPath); err != nil {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
	}
	scoring, err := s.scoring.ReadScoring(scoringPath)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	_, result, err := s.pipeline.Run(rawPre, rawPost, scoring, s.opts)
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	if s.store != nil {
		payload, merr := json.Marshal(result)
		if merr == nil {
			merr = s.store.SaveRun(r.Context(), ports.RunRecord{
				ID:      result.RunID,
				Folder:  "upload",
				PreFile: "pre.xlsx",
				Payload: payload,
			})
		}
		if merr != nil {
			log.Printf("[Server] failed to archive uploaded run: %v", merr)
		}
	}

	writeJSON(w, http.StatusOK, result)
}

// saveUpload copies one multipart file field into dir and returns its path.
func saveUpload(r *http.Request, field, dir string) (string, error) {
	file, _, err := r.FormFile(field)
	if err != nil {
		return "", err
	}
	defer file.Close()

	path := filepath.Join(dir, field+".xlsx")
	out, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, file); err != nil {
		return "", err
	}
	return path, nil
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		http.Error(w, "run archive not configured", http.StatusNotFound)
		return
	}
	records, err := s.store.ListRuns(r.Context(), 50)
	if err != nil {
		log.Printf("[Server] list runs failed: %v", err)
		http.Error(w, errors.CodeOf(err), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	record, ok := s.loadRun(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (s *Server) handleRunReport(w http.ResponseWriter, r *http.Request) {
	record, ok := s.loadRun(w, r)
	if !ok {
		return
	}

	var result app.AnalysisResult
	if err := json.Unmarshal(record.Payload, &result); err != nil {
		log.Printf("[Server] run %s payload unreadable: %v", record.ID, err)
		http.Error(w, "run payload unreadable", http.StatusInternalServerError)
		return
	}

	html := RenderReportHTML(BuildReport(result))
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(html)
}

func (s *Server) loadRun(w http.ResponseWriter, r *http.Request) (*ports.RunRecord, bool) {
	if s.store == nil {
		http.Error(w, "run archive not configured", http.StatusNotFound)
		return nil, false
	}
	runID := chi.URLParam(r, "runID")
	record, err := s.store.GetRun(r.Context(), core.RunID(runID))
	if err != nil {
		http.Error(w, "run not found", http.StatusNotFound)
		return nil, false
	}
	return record, true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[Server] failed to encode response: %v", err)
	}
}
