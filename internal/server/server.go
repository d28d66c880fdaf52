package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"news_monitor/internal/export"
	"news_monitor/internal/logger"
	"news_monitor/internal/metrics"
	"news_monitor/internal/models"
	"news_monitor/internal/webui"
)

// Error messages returned to clients.
const (
	listErrorMessage   = webui.ListErrorMessage
	exportErrorMessage = "No se pudo generar el archivo de Excel."
)

// NewsSource supplies the current list of news items.
// It fails with an error instead of returning a partial list.
type NewsSource interface {
	FetchNews(ctx context.Context) ([]models.NewsItem, error)
}

// ListResponse is the body of GET /api/news.
type ListResponse struct {
	Items []models.NewsItem `json:"items"`
	Count int               `json:"count"`
}

// ErrorResponse is the body of every failed API call.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Server holds the dependencies of the HTTP handlers.
type Server struct {
	source  NewsSource
	metrics *metrics.Metrics
	loc     *time.Location
	now     func() time.Time
	build   func([]models.NewsItem) (*bytes.Buffer, error)
}

// NewServer creates a Server reading news from source. m may be nil.
func NewServer(source NewsSource, m *metrics.Metrics, loc *time.Location) *Server {
	if loc == nil {
		loc = time.Local
	}
	return &Server{source: source, metrics: m, loc: loc, now: time.Now, build: export.Workbook}
}

// Routes registers the handlers on a new mux.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET "+webui.ListURL, s.ListNews)
	mux.HandleFunc("GET "+webui.ExportURL, s.ExportNews)
	mux.HandleFunc("GET /health", s.HealthCheck)
	mux.Handle("GET "+webui.StaticURL, webui.Static())
	mux.HandleFunc("GET /{$}", s.Index)
	if s.metrics != nil {
		mux.Handle("GET /metrics", s.metrics.Handler())
	}
	return mux
}

// HealthCheck always answers 200 OK: the service keeps no state to check.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("OK"))
}

// ListNews returns the current news as {"items": [...], "count": n}.
func (s *Server) ListNews(w http.ResponseWriter, r *http.Request) {
	items, err := s.fetch(r.Context())
	if err != nil {
		logger.FromContext(r.Context()).WithError(err).Error("Failed to fetch news")
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: listErrorMessage})
		return
	}

	writeJSON(w, http.StatusOK, ListResponse{Items: items, Count: len(items)})
}

// ExportNews returns the current news as an xlsx attachment.
func (s *Server) ExportNews(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	items, err := s.fetch(r.Context())
	if err != nil {
		log.WithError(err).Error("Failed to export news")
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: exportErrorMessage})
		return
	}

	buf, err := s.build(items)
	if err != nil {
		log.WithError(err).Error("Failed to export news")
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: exportErrorMessage})
		return
	}
	if s.metrics != nil {
		s.metrics.ObserveExport(buf.Len())
	}

	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FileName))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.WithError(err).Warn("Failed to write workbook")
	}
}

// Index renders the page in the state reached on mount; the page script then
// loads the news. With ?render=server the news are loaded before rendering,
// for browsers without JavaScript.
func (s *Server) Index(w http.ResponseWriter, r *http.Request) {
	state := webui.Initial().Load()

	if r.URL.Query().Get("render") == "server" {
		items, err := s.fetch(r.Context())
		if err != nil {
			logger.FromContext(r.Context()).WithError(err).Error("Failed to fetch news")
			state, _ = state.Reject(listErrorMessage)
		} else {
			state, _ = state.Resolve(items, s.now())
		}
	}

	page := &bytes.Buffer{}
	if err := webui.Render(page, state, s.loc); err != nil {
		logger.FromContext(r.Context()).WithError(err).Error("Failed to render page")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(page.Bytes())
}

func (s *Server) fetch(ctx context.Context) ([]models.NewsItem, error) {
	items, err := s.source.FetchNews(ctx)
	if s.metrics != nil {
		s.metrics.ObserveFetch(len(items), err)
	}
	if err != nil {
		return nil, fmt.Errorf("fetch news: %w", err)
	}
	if items == nil {
		items = []models.NewsItem{}
	}
	return items, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.WithError(err).Warn("Failed to encode response")
	}
}
