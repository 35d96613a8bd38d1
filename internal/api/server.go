package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/vidgrab/vidgrab/internal/cache"
	"github.com/vidgrab/vidgrab/internal/download"
	"github.com/vidgrab/vidgrab/internal/extract"
	"github.com/vidgrab/vidgrab/internal/log"
	"github.com/vidgrab/vidgrab/internal/ytmusic"
)

// Server is the HTTP boundary. It serializes core results and owns no
// orchestration logic of its own.
type Server struct {
	router    *chi.Mux
	extractor *extract.Extractor
	manager   *download.Manager
	cache     *cache.Manager
	catalog   *ytmusic.Client
	upgrader  websocket.Upgrader
	logger    zerolog.Logger
}

// New wires the HTTP boundary over the core components.
func New(extractor *extract.Extractor, manager *download.Manager, artifactCache *cache.Manager, catalog *ytmusic.Client) *Server {
	s := &Server{
		router:    chi.NewRouter(),
		extractor: extractor,
		manager:   manager,
		cache:     artifactCache,
		catalog:   catalog,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: log.WithComponent("api"),
	}
	s.registerRoutes()
	return s
}

// Router returns the configured handler.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) registerRoutes() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(s.corsMiddleware)

	s.router.Route("/api", func(r chi.Router) {
		r.Use(httprate.LimitByIP(120, time.Minute))

		r.Post("/extract", s.extractInfo)
		r.Get("/recommend", s.recommendFormats)

		r.Post("/download", s.startDownload)
		r.Get("/download/{taskID}", s.getTask)
		r.Delete("/download/{taskID}", s.cancelTask)
		r.Get("/download/{taskID}/ws", s.taskProgressWS)

		r.Route("/ytmusic", func(r chi.Router) {
			r.Get("/search", s.searchSongs)
			r.Get("/song/{videoID}", s.getSong)
			r.Get("/stream/{videoID}", s.streamStatus)
			r.Get("/audio/{videoID}", s.serveAudio)
		})
	})

	s.router.Get("/health", s.health)
	s.router.Handle("/metrics", promhttp.Handler())
}

func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "vidgrab",
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, map[string]string{"error": message})
}
