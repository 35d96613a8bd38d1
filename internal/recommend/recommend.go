package recommend

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vidgrab/vidgrab/internal/model"
)

// Recommendation is one curated quality choice. FormatID is stable and can
// drive a download start.
type Recommendation struct {
	FormatID    string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`
	Type        string `json:"type"` // "video" or "audio"
	Badge       string `json:"badge,omitempty"`
	Height      int    `json:"height,omitempty"`
	Filesize    *int64 `json:"filesize,omitempty"`
}

// Quality ladder scanned after the best-quality entry, with a small height
// tolerance per step.
var (
	qualityTargets = []int{2160, 1440, 1080, 720, 480, 360, 240}
	qualityLabels  = map[int]string{
		2160: "4K Ultra HD",
		1440: "2K QHD",
		1080: "1080p Full HD",
		720:  "720p HD",
		480:  "480p SD",
		360:  "360p",
		240:  "240p Low",
	}
)

const heightTolerance = 20

// Recommend derives a small user-facing list of quality choices from the
// normalized format list. It is a pure function of info; empty input yields
// empty output.
func Recommend(info *model.VideoInfo) []Recommendation {
	var recs []Recommendation
	if info == nil {
		return recs
	}

	var allVideo []*model.MediaFormat
	var audioOnly []*model.MediaFormat
	for i := range info.Formats {
		f := &info.Formats[i]
		if f.IsAudioOnly {
			audioOnly = append(audioOnly, f)
		} else {
			allVideo = append(allVideo, f)
		}
	}

	if best := bestVideo(allVideo); best != nil {
		recs = append(recs, Recommendation{
			FormatID:    best.FormatID,
			Label:       "Best Quality - " + best.QualityLabel,
			Description: describe(best),
			Type:        "video",
			Badge:       badge(best.Height),
			Height:      best.Height,
			Filesize:    sizePtr(best),
		})
	}

	seen := make(map[int]bool)
	for _, target := range qualityTargets {
		for _, f := range allVideo {
			if seen[target] {
				break
			}
			if abs(f.Height-target) <= heightTolerance {
				seen[target] = true
				label := qualityLabels[target]
				if label == "" {
					label = f.QualityLabel
				}
				recs = append(recs, Recommendation{
					FormatID:    f.FormatID,
					Label:       label,
					Description: describe(f),
					Type:        "video",
					Height:      f.Height,
					Filesize:    sizePtr(f),
				})
			}
		}
	}

	if len(audioOnly) > 0 {
		sorted := make([]*model.MediaFormat, len(audioOnly))
		copy(sorted, audioOnly)
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].BitrateValue() > sorted[j].BitrateValue()
		})

		best := sorted[0]
		recs = append(recs, Recommendation{
			FormatID:    best.FormatID,
			Label:       "Audio - Best Quality",
			Description: describeAudio(best),
			Type:        "audio",
			Filesize:    sizePtr(best),
		})

		if len(sorted) > 2 {
			mid := sorted[len(sorted)/2]
			recs = append(recs, Recommendation{
				FormatID:    mid.FormatID,
				Label:       "Audio - Medium Quality",
				Description: describeAudio(mid),
				Type:        "audio",
				Filesize:    sizePtr(mid),
			})
		}
	}

	return recs
}

// bestVideo picks the max by (height, bitrate) among combined and video-only
// formats.
func bestVideo(formats []*model.MediaFormat) *model.MediaFormat {
	var best *model.MediaFormat
	for _, f := range formats {
		if best == nil ||
			f.Height > best.Height ||
			(f.Height == best.Height && f.BitrateValue() > best.BitrateValue()) {
			best = f
		}
	}
	return best
}

func badge(height int) string {
	switch {
	case height >= 2160:
		return "4K"
	case height >= 1440:
		return "2K"
	case height >= 720:
		return "HD"
	default:
		return "SD"
	}
}

func describe(f *model.MediaFormat) string {
	res := f.Resolution
	if res == "" {
		res = f.QualityLabel
	}
	return fmt.Sprintf("%s • %s • %s", res, strings.ToUpper(f.Ext), f.SizeString())
}

func describeAudio(f *model.MediaFormat) string {
	return fmt.Sprintf("%s • %s • %s", f.QualityLabel, strings.ToUpper(f.Ext), f.SizeString())
}

func sizePtr(f *model.MediaFormat) *int64 {
	if size := f.SizeBytes(); size > 0 {
		return &size
	}
	return nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
