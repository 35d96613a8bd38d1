package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

const progressPushInterval = 500 * time.Millisecond

// taskProgressWS streams task snapshots to the client until the task reaches
// a terminal state or the client goes away.
func (s *Server) taskProgressWS(w http.ResponseWriter, r *http.Request) {
	taskID := chi.URLParam(r, "taskID")
	if _, err := s.manager.Get(taskID); err != nil {
		writeError(w, http.StatusNotFound, "task not found")
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer func() { _ = conn.Close() }()

	ticker := time.NewTicker(progressPushInterval)
	defer ticker.Stop()

	for {
		task, err := s.manager.Get(taskID)
		if err != nil {
			return
		}
		if err := conn.WriteJSON(task); err != nil {
			return
		}
		if task.Status.IsTerminal() {
			return
		}

		select {
		case <-ticker.C:
		case <-r.Context().Done():
			return
		}
	}
}
