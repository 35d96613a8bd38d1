package model

import (
	"strings"
	"time"
)

// DownloadTask is the mutable record of one in-flight or completed download
// operation. Fields are written only by the task's own execution goroutine
// plus the single cancellation toggle; callers receive copies.
type DownloadTask struct {
	ID         string         `json:"task_id"`
	URL        string         `json:"url"`
	Status     DownloadStatus `json:"status"`
	Progress   float64        `json:"progress"`       // 0 to 100
	Speed      string         `json:"speed,omitempty"` // human readable, e.g. "1.2 MB/s"
	ETA        string         `json:"eta,omitempty"`
	OutputPath string         `json:"output_path,omitempty"`
	FileSize   *int64         `json:"file_size,omitempty"`
	Error      string         `json:"error,omitempty"`
	Info       *VideoInfo     `json:"video_info,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	FinishedAt time.Time      `json:"finished_at,omitzero"`
}

// Filename returns the base name of the output path, or "".
func (t *DownloadTask) Filename() string {
	if t.OutputPath == "" {
		return ""
	}
	parts := strings.FieldsFunc(t.OutputPath, func(r rune) bool {
		return r == '/' || r == '\\'
	})
	if len(parts) == 0 {
		return ""
	}
	return parts[len(parts)-1]
}

// DisplayTitle returns the resolved title, the output filename, or the URL,
// in order of preference.
func (t *DownloadTask) DisplayTitle() string {
	if t.Info != nil && t.Info.Title != "" && !strings.HasPrefix(t.Info.Title, "http") {
		return t.Info.Title
	}

	if name := t.Filename(); name != "" {
		if idx := strings.LastIndex(name, "."); idx > 0 {
			name = name[:idx]
		}
		return name
	}

	return t.URL
}
