package normalize

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vidgrab/vidgrab/internal/engine"
	"github.com/vidgrab/vidgrab/internal/model"
)

// Container extensions that never hold playable media.
var nonMediaExts = map[string]bool{
	"mhtml": true,
	"html":  true,
	"json":  true,
	"none":  true,
}

// Info converts a raw engine metadata record into an immutable VideoInfo.
// sourceURL is the URL the caller originally requested.
func Info(raw *engine.RawInfo, sourceURL string) *model.VideoInfo {
	info := &model.VideoInfo{
		ID:           raw.ID,
		Title:        raw.Title,
		SourceURL:    sourceURL,
		Thumbnail:    bestThumbnail(raw),
		Uploader:     firstNonEmpty(raw.Uploader, raw.Channel),
		UploaderURL:  firstNonEmpty(raw.UploaderURL, raw.ChannelURL),
		ViewCount:    raw.ViewCount,
		LikeCount:    raw.LikeCount,
		Description:  raw.Description,
		UploadDate:   raw.UploadDate,
		Extractor:    raw.Extractor,
		CanonicalURL: firstNonEmpty(raw.WebpageURL, sourceURL),
		Formats:      Formats(raw.Formats),
		IsLive:       raw.IsLive,
	}

	if info.Title == "" {
		info.Title = "Unknown Title"
	}
	if raw.Duration != nil {
		seconds := int(*raw.Duration)
		info.Duration = &seconds
	}

	return info
}

// Formats filters, derives, and ranks a raw format list. The result is
// deterministic for identical input: the sort is stable and ties keep their
// original relative order.
func Formats(raw []engine.RawFormat) []model.MediaFormat {
	formats := make([]model.MediaFormat, 0, len(raw))

	for _, f := range raw {
		if f.FormatID == "" {
			continue
		}
		if strings.Contains(strings.ToLower(f.FormatNote), "storyboard") {
			continue
		}
		if nonMediaExts[strings.ToLower(f.Ext)] {
			continue
		}

		vcodec := codec(f.VCodec)
		acodec := codec(f.ACodec)
		if vcodec == "" && acodec == "" {
			continue
		}

		isVideoOnly := vcodec != "" && acodec == ""
		isAudioOnly := vcodec == "" && acodec != ""

		height := 0
		if f.Height != nil {
			height = *f.Height
		}
		// Tiny renditions are thumbnail tracks, not watchable video.
		if height > 0 && height < 144 && !isAudioOnly {
			continue
		}

		width := 0
		if f.Width != nil {
			width = *f.Width
		}

		mf := model.MediaFormat{
			FormatID:       f.FormatID,
			Ext:            f.Ext,
			Width:          width,
			Height:         height,
			Filesize:       f.Filesize,
			FilesizeApprox: f.FilesizeApprox,
			VideoCodec:     vcodec,
			AudioCodec:     acodec,
			FPS:            f.FPS,
			Bitrate:        f.TBR,
			QualityLabel:   qualityLabel(f, height, isAudioOnly),
			IsAudioOnly:    isAudioOnly,
			IsVideoOnly:    isVideoOnly,
		}
		if height > 0 {
			if width > 0 {
				mf.Resolution = fmt.Sprintf("%dx%d", width, height)
			} else {
				mf.Resolution = fmt.Sprintf("?x%d", height)
			}
		}

		formats = append(formats, mf)
	}

	// Combined/video formats first, then higher resolution, then higher
	// bitrate; pure-audio entries sort last.
	sort.SliceStable(formats, func(i, j int) bool {
		a, b := &formats[i], &formats[j]
		if a.IsAudioOnly != b.IsAudioOnly {
			return !a.IsAudioOnly
		}
		if a.Height != b.Height {
			return a.Height > b.Height
		}
		return a.BitrateValue() > b.BitrateValue()
	})

	return formats
}

func qualityLabel(f engine.RawFormat, height int, isAudioOnly bool) string {
	if height > 0 {
		switch {
		case height >= 2160:
			return "4K"
		case height >= 1440:
			return "2K"
		case height >= 1080:
			return "1080p HD"
		case height >= 720:
			return "720p HD"
		case height >= 480:
			return "480p"
		case height >= 360:
			return "360p"
		case height >= 240:
			return "240p"
		default:
			return fmt.Sprintf("%dp", height)
		}
	}

	if isAudioOnly {
		if f.ABR != nil && *f.ABR > 0 {
			return fmt.Sprintf("Audio %dkbps", int(*f.ABR))
		}
		return "Audio"
	}

	if f.FormatNote != "" {
		return f.FormatNote
	}
	return "Unknown"
}

// bestThumbnail picks the candidate with the highest (preference, width)
// pair, falling back to the single default thumbnail field.
func bestThumbnail(raw *engine.RawInfo) string {
	best := ""
	bestPref, bestWidth := 0, 0
	for _, t := range raw.Thumbnails {
		if t.URL == "" {
			continue
		}
		pref, width := 0, 0
		if t.Preference != nil {
			pref = *t.Preference
		}
		if t.Width != nil {
			width = *t.Width
		}
		if best == "" || pref > bestPref || (pref == bestPref && width > bestWidth) {
			best = t.URL
			bestPref, bestWidth = pref, width
		}
	}
	if best != "" {
		return best
	}
	return raw.Thumbnail
}

func codec(v string) string {
	if v == "" || v == "none" {
		return ""
	}
	return v
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
