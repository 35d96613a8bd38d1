package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/lrstanley/go-ytdlp"
	"github.com/rs/zerolog"

	"github.com/vidgrab/vidgrab/internal/log"
)

// Baseline engine configuration applied to every call regardless of strategy.
const (
	socketTimeoutSeconds = 60
	engineRetries        = "5"
	progressInterval     = 500 * time.Millisecond

	headerUserAgent      = "User-Agent:Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	headerAccept         = "Accept:text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8"
	headerAcceptLanguage = "Accept-Language:en-US,en;q=0.9"
)

// YTDLP drives the yt-dlp binary through github.com/lrstanley/go-ytdlp.
type YTDLP struct {
	cookieFile string
	logger     zerolog.Logger
}

// NewYTDLP returns an engine backed by the yt-dlp binary. cookieFile may be
// empty when no exported cookies are available.
func NewYTDLP(cookieFile string) *YTDLP {
	return &YTDLP{
		cookieFile: cookieFile,
		logger:     log.WithComponent("engine"),
	}
}

// ExtractMetadata implements Engine.
func (e *YTDLP) ExtractMetadata(ctx context.Context, url string, opts Options) (*RawInfo, error) {
	cmd := e.build(opts).
		SkipDownload().
		DumpSingleJSON()

	result, err := cmd.Run(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("extract metadata: %w", err)
	}
	return decodeInfo(result.Stdout)
}

// Download implements Engine. The engine prints the final metadata record to
// stdout while still performing the download.
func (e *YTDLP) Download(ctx context.Context, url, formatSelector, outputTemplate string, opts Options, onProgress ProgressFunc) (*RawInfo, error) {
	cmd := e.build(opts).
		Format(formatSelector).
		Output(outputTemplate).
		ForceOverwrites().
		RestrictFilenames().
		DumpSingleJSON().
		NoSimulate()

	if strings.Contains(formatSelector, "+") {
		cmd = cmd.MergeOutputFormat("mp4")
	}

	if onProgress != nil {
		cmd = cmd.ProgressFunc(progressInterval, func(update ytdlp.ProgressUpdate) {
			onProgress(translateProgress(update))
		})
	}

	result, err := cmd.Run(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("download: %w", err)
	}
	return decodeInfo(result.Stdout)
}

// build assembles the per-call command from the baseline options plus the
// strategy overrides.
func (e *YTDLP) build(opts Options) *ytdlp.Command {
	cmd := ytdlp.New().
		NoPlaylist().
		NoCheckCertificates().
		SocketTimeout(socketTimeoutSeconds).
		Retries(engineRetries)

	if !opts.StripHeaders {
		cmd = cmd.
			AddHeaders(headerUserAgent).
			AddHeaders(headerAccept).
			AddHeaders(headerAcceptLanguage)
	}

	if e.cookieFile != "" {
		cmd = cmd.Cookies(e.cookieFile)
	}
	if opts.CookiesFromBrowser != "" {
		cmd = cmd.CookiesFromBrowser(opts.CookiesFromBrowser)
	}

	if opts.PlayerClient != "" {
		cmd = cmd.ExtractorArgs("youtube:player_client=" + opts.PlayerClient)
	}
	if opts.InstagramAPI != "" {
		cmd = cmd.ExtractorArgs("instagram:api=" + opts.InstagramAPI)
	}
	if opts.TikTokAPIHost != "" {
		cmd = cmd.ExtractorArgs("tiktok:api_hostname=" + opts.TikTokAPIHost)
	}
	if opts.TwitterLegacyAPI {
		cmd = cmd.ExtractorArgs("twitter:legacy_api=true")
	}

	if opts.GeoBypassCountry != "" {
		cmd = cmd.GeoBypassCountry(opts.GeoBypassCountry)
	}

	return cmd
}

func decodeInfo(stdout string) (*RawInfo, error) {
	var info RawInfo
	if err := json.Unmarshal([]byte(stdout), &info); err != nil {
		return nil, fmt.Errorf("decode engine metadata: %w", err)
	}
	if info.ID == "" && len(info.Formats) == 0 {
		return nil, fmt.Errorf("engine returned empty metadata")
	}
	return &info, nil
}

func translateProgress(update ytdlp.ProgressUpdate) Progress {
	p := Progress{
		DownloadedBytes: int64(update.DownloadedBytes),
		TotalBytes:      int64(update.TotalBytes),
	}

	switch update.Status {
	case ytdlp.ProgressStatusFinished, ytdlp.ProgressStatusPostProcessing:
		p.Phase = PhaseFinished
	default:
		p.Phase = PhaseDownloading
	}

	if !update.Started.IsZero() {
		elapsed := time.Since(update.Started)
		if elapsed.Seconds() > 0 && update.DownloadedBytes > 0 {
			bytesPerSecond := float64(update.DownloadedBytes) / elapsed.Seconds()
			p.Speed = fmt.Sprintf("%.1f MB/s", bytesPerSecond/1024/1024)
		}
	}

	if eta := update.ETA(); eta > 0 {
		p.ETA = fmt.Sprintf("%ds", int(eta.Seconds()))
	}

	if update.Info != nil && update.Info.Filename != nil {
		p.Filename = *update.Info.Filename
	}

	return p
}
