package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/vidgrab/vidgrab/internal/cache"
	"github.com/vidgrab/vidgrab/internal/download"
	"github.com/vidgrab/vidgrab/internal/extract"
	"github.com/vidgrab/vidgrab/internal/recommend"
)

type extractRequest struct {
	URL string `json:"url"`
}

type downloadRequest struct {
	URL       string `json:"url"`
	FormatID  string `json:"format_id,omitempty"`
	AudioOnly bool   `json:"audio_only,omitempty"`
}

func (s *Server) extractInfo(w http.ResponseWriter, r *http.Request) {
	var req extractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
		writeError(w, http.StatusBadRequest, "url is required")
		return
	}

	info, err := s.extractor.Extract(r.Context(), req.URL)
	if err != nil {
		var extractionErr *extract.ExtractionError
		if errors.As(err, &extractionErr) {
			writeError(w, http.StatusBadGateway, extractionErr.Message)
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (s *Server) recommendFormats(w http.ResponseWriter, r *http.Request) {
	url := r.URL.Query().Get("url")
	if url == "" {
		writeError(w, http.StatusBadRequest, "url query parameter is required")
		return
	}

	info, err := s.extractor.Extract(r.Context(), url)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"video_info":      info,
		"recommendations": recommend.Recommend(info),
	})
}

func (s *Server) startDownload(w http.ResponseWriter, r *http.Request) {
	var req downloadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
		writeError(w, http.StatusBadRequest, "url is required")
		return
	}

	task := s.manager.Start(req.URL, download.Plan{
		FormatID:  req.FormatID,
		AudioOnly: req.AudioOnly,
	})
	writeJSON(w, http.StatusAccepted, task)
}

func (s *Server) getTask(w http.ResponseWriter, r *http.Request) {
	task, err := s.manager.Get(chi.URLParam(r, "taskID"))
	if err != nil {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (s *Server) cancelTask(w http.ResponseWriter, r *http.Request) {
	taskID := chi.URLParam(r, "taskID")
	if _, err := s.manager.Get(taskID); err != nil {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{
		"cancelled": s.manager.Cancel(taskID),
	})
}

func (s *Server) searchSongs(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, http.StatusBadRequest, "query parameter q is required")
		return
	}

	filter := r.URL.Query().Get("filter")
	if filter == "" {
		filter = "songs"
	}
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	songs, err := s.catalog.Search(r.Context(), query, filter, limit)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": songs})
}

func (s *Server) getSong(w http.ResponseWriter, r *http.Request) {
	song, err := s.catalog.Song(r.Context(), chi.URLParam(r, "videoID"))
	if err != nil {
		writeError(w, http.StatusNotFound, "song not found")
		return
	}
	writeJSON(w, http.StatusOK, song)
}

// streamStatus reports whether a cached artifact is ready for the video,
// kicking off a background audio download on a cache miss.
func (s *Server) streamStatus(w http.ResponseWriter, r *http.Request) {
	videoID := chi.URLParam(r, "videoID")

	if _, err := s.cache.Lookup(videoID); err == nil {
		writeJSON(w, http.StatusOK, map[string]any{
			"ready": true,
			"url":   "/api/ytmusic/audio/" + videoID,
		})
		return
	}

	task := s.startAudioDownload(videoID)
	writeJSON(w, http.StatusOK, map[string]any{
		"ready":   false,
		"status":  task.Status,
		"task_id": task.ID,
	})
}

func (s *Server) serveAudio(w http.ResponseWriter, r *http.Request) {
	videoID := chi.URLParam(r, "videoID")

	path, err := s.cache.Lookup(videoID)
	if errors.Is(err, cache.ErrNotFound) {
		task := s.startAudioDownload(videoID)
		writeJSON(w, http.StatusAccepted, map[string]any{
			"message": "download started, try again shortly",
			"task_id": task.ID,
		})
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", audioContentType(path))
	// ServeFile handles range requests for in-browser seeking.
	http.ServeFile(w, r, path)
}

func (s *Server) startAudioDownload(videoID string) downloadTaskRef {
	task := s.manager.Start("https://music.youtube.com/watch?v="+videoID, download.Plan{
		AudioOnly:     true,
		CacheArtifact: true,
		MediaID:       videoID,
	})
	return downloadTaskRef{ID: task.ID, Status: string(task.Status)}
}

type downloadTaskRef struct {
	ID     string
	Status string
}

var audioContentTypes = map[string]string{
	".mp3":  "audio/mpeg",
	".m4a":  "audio/mp4",
	".webm": "audio/webm",
	".opus": "audio/opus",
	".ogg":  "audio/ogg",
}

func audioContentType(path string) string {
	if ct, ok := audioContentTypes[strings.ToLower(filepath.Ext(path))]; ok {
		return ct
	}
	return "audio/mpeg"
}
