package model

import "fmt"

// VideoInfo is the normalized metadata for one media item. It is built once
// per successful extraction and never mutated afterwards; a fresh extraction
// supersedes it.
type VideoInfo struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	SourceURL    string        `json:"source_url"`
	Thumbnail    string        `json:"thumbnail,omitempty"`
	Duration     *int          `json:"duration,omitempty"` // seconds
	Uploader     string        `json:"uploader,omitempty"`
	UploaderURL  string        `json:"uploader_url,omitempty"`
	ViewCount    *int64        `json:"view_count,omitempty"`
	LikeCount    *int64        `json:"like_count,omitempty"`
	Description  string        `json:"description,omitempty"`
	UploadDate   string        `json:"upload_date,omitempty"`
	Extractor    string        `json:"extractor,omitempty"`
	CanonicalURL string        `json:"webpage_url"`
	Formats      []MediaFormat `json:"formats"`
	IsLive       bool          `json:"is_live"`
}

// FormatByID returns the format with the given identifier, or nil.
func (v *VideoInfo) FormatByID(formatID string) *MediaFormat {
	for i := range v.Formats {
		if v.Formats[i].FormatID == formatID {
			return &v.Formats[i]
		}
	}
	return nil
}

// DurationString returns the duration formatted as h:mm:ss or m:ss, or
// "Unknown" when the duration is not known.
func (v *VideoInfo) DurationString() string {
	if v.Duration == nil || *v.Duration <= 0 {
		return "Unknown"
	}

	total := *v.Duration
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

// ViewCountString returns a compact view counter ("1.2M views"), or "Unknown".
func (v *VideoInfo) ViewCountString() string {
	if v.ViewCount == nil || *v.ViewCount <= 0 {
		return "Unknown"
	}

	count := *v.ViewCount
	switch {
	case count >= 1_000_000:
		return fmt.Sprintf("%.1fM views", float64(count)/1_000_000)
	case count >= 1_000:
		return fmt.Sprintf("%.1fK views", float64(count)/1_000)
	default:
		return fmt.Sprintf("%d views", count)
	}
}
