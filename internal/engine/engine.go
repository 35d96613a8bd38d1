package engine

import "context"

// Phase tags a progress event.
type Phase string

const (
	// PhaseDownloading is emitted while bytes are being transferred.
	PhaseDownloading Phase = "downloading"

	// PhaseFinished is emitted once the transfer is done and the engine
	// moves on to post-processing.
	PhaseFinished Phase = "finished"
)

// Progress is one progress event reported by the engine during a download.
type Progress struct {
	Phase           Phase
	DownloadedBytes int64
	TotalBytes      int64 // 0 when unknown
	Speed           string
	ETA             string
	Filename        string
}

// ProgressFunc consumes progress events. It is called from the engine's
// reporting goroutine; implementations must be safe for that.
type ProgressFunc func(Progress)

// Options is the per-strategy engine configuration. The zero value selects
// the engine defaults for every knob.
type Options struct {
	// PlayerClient selects an alternate client identity for the youtube
	// extractor ("web", "android", "ios", "tv_embedded").
	PlayerClient string

	// InstagramAPI selects the instagram extractor API transport.
	InstagramAPI string

	// TikTokAPIHost overrides the tiktok API hostname.
	TikTokAPIHost string

	// TwitterLegacyAPI forces the legacy twitter API.
	TwitterLegacyAPI bool

	// CookiesFromBrowser loads cookies from the named browser.
	CookiesFromBrowser string

	// StripHeaders drops the browser-like request headers sent by default.
	StripHeaders bool

	// GeoBypassCountry fakes the request origin country.
	GeoBypassCountry string
}

// Engine is the external extraction/download engine boundary. Both calls
// block until the engine returns; cancellation is cooperative through ctx.
type Engine interface {
	// ExtractMetadata retrieves raw metadata for url without downloading.
	ExtractMetadata(ctx context.Context, url string, opts Options) (*RawInfo, error)

	// Download retrieves the media selected by formatSelector into
	// outputTemplate, reporting progress through onProgress, and returns
	// the raw metadata of the downloaded item.
	Download(ctx context.Context, url, formatSelector, outputTemplate string, opts Options, onProgress ProgressFunc) (*RawInfo, error)
}
