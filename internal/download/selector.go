package download

import (
	"fmt"

	"github.com/vidgrab/vidgrab/internal/model"
	"github.com/vidgrab/vidgrab/internal/strategy"
)

// Format selector chains. H.264 (avc1) is forced for the default video path
// because VP9 and AV1 break playback in common browser video elements.
const (
	audioSelector        = "bestaudio[ext=m4a]/bestaudio[ext=mp3]/bestaudio/best"
	combinedBestSelector = "best[ext=mp4]/bestvideo[ext=mp4]+bestaudio[ext=m4a]/bestvideo+bestaudio/best"
	avc1BestSelector     = "bestvideo[ext=mp4][vcodec^=avc1]+bestaudio[ext=m4a]/bestvideo[vcodec^=avc1]+bestaudio/best[ext=mp4][vcodec^=avc1]/best[ext=mp4]/best"
)

// resolveSelector maps a download plan onto the engine format selector.
// A video-only format is merged with the best matching audio; the "best"
// default is platform aware: platforms serving split streams get the
// combined-container chain, everything else the browser-compatible chain.
func resolveSelector(url string, plan Plan, info *model.VideoInfo) (string, error) {
	if plan.AudioOnly {
		return audioSelector, nil
	}

	if plan.FormatID != "" && plan.FormatID != "best" {
		format := info.FormatByID(plan.FormatID)
		if format == nil {
			return "", fmt.Errorf("%w: %q", ErrFormatNotFound, plan.FormatID)
		}
		if format.IsVideoOnly {
			return fmt.Sprintf("%s+bestaudio[ext=m4a]/%s+bestaudio/%s", plan.FormatID, plan.FormatID, plan.FormatID), nil
		}
		return fmt.Sprintf("%s/best[ext=mp4][vcodec^=avc1]/best[ext=mp4]/best", plan.FormatID), nil
	}

	if strategy.PlatformFor(url) == strategy.PlatformInstagram {
		return combinedBestSelector, nil
	}
	return avc1BestSelector, nil
}
