package model

import "fmt"

// MediaFormat represents one downloadable or streamable variant of a media
// item. A format carries at least one of a video or an audio stream; entries
// with neither are filtered out during normalization.
type MediaFormat struct {
	FormatID       string   `json:"format_id"`
	Ext            string   `json:"ext"`
	Resolution     string   `json:"resolution,omitempty"` // "WxH", empty when height is unknown
	Width          int      `json:"width,omitempty"`
	Height         int      `json:"height,omitempty"`
	Filesize       *int64   `json:"filesize,omitempty"`
	FilesizeApprox *int64   `json:"filesize_approx,omitempty"`
	VideoCodec     string   `json:"vcodec,omitempty"`
	AudioCodec     string   `json:"acodec,omitempty"`
	FPS            *float64 `json:"fps,omitempty"`
	Bitrate        *float64 `json:"tbr,omitempty"`
	QualityLabel   string   `json:"quality_label"`
	IsAudioOnly    bool     `json:"is_audio_only"`
	IsVideoOnly    bool     `json:"is_video_only"`
}

// BitrateValue returns the total bitrate or 0 when unknown.
func (f *MediaFormat) BitrateValue() float64 {
	if f.Bitrate == nil {
		return 0
	}
	return *f.Bitrate
}

// SizeBytes returns the exact size if known, otherwise the approximate one,
// otherwise 0.
func (f *MediaFormat) SizeBytes() int64 {
	if f.Filesize != nil {
		return *f.Filesize
	}
	if f.FilesizeApprox != nil {
		return *f.FilesizeApprox
	}
	return 0
}

// SizeString returns a human readable size, or "Unknown size".
func (f *MediaFormat) SizeString() string {
	size := f.SizeBytes()
	if size <= 0 {
		return "Unknown size"
	}

	value := float64(size)
	for _, unit := range []string{"B", "KB", "MB", "GB"} {
		if value < 1024 {
			return fmt.Sprintf("%.1f %s", value, unit)
		}
		value /= 1024
	}
	return fmt.Sprintf("%.1f TB", value)
}
