package strategy

import (
	"strings"

	"github.com/vidgrab/vidgrab/internal/engine"
)

// Platform classifies a URL by its hosting platform.
type Platform string

const (
	PlatformYouTube   Platform = "youtube"
	PlatformInstagram Platform = "instagram"
	PlatformTikTok    Platform = "tiktok"
	PlatformTwitter   Platform = "twitter"
	PlatformGeneric   Platform = "generic"
)

// Strategy is one named engine configuration override tried during fallback.
type Strategy struct {
	Name string
	Opts engine.Options
}

// PlatformFor classifies url by substring match against known domains.
func PlatformFor(url string) Platform {
	lower := strings.ToLower(url)
	switch {
	case strings.Contains(lower, "youtube.com") || strings.Contains(lower, "youtu.be"):
		return PlatformYouTube
	case strings.Contains(lower, "instagram.com") || strings.Contains(lower, "instagr.am"):
		return PlatformInstagram
	case strings.Contains(lower, "tiktok.com"):
		return PlatformTikTok
	case strings.Contains(lower, "twitter.com") || strings.Contains(lower, "x.com"):
		return PlatformTwitter
	default:
		return PlatformGeneric
	}
}

// Select returns the ordered fallback list for url, most reliable first.
// The list is never empty; callers try strategies in order and stop at the
// first success.
func Select(url string) []Strategy {
	switch PlatformFor(url) {
	case PlatformYouTube:
		// Alternate player clients bypass sign-in walls on cloud hosts.
		return []Strategy{
			{Name: "Web Client", Opts: engine.Options{PlayerClient: "web"}},
			{Name: "Android Client", Opts: engine.Options{PlayerClient: "android"}},
			{Name: "iOS Client", Opts: engine.Options{PlayerClient: "ios"}},
			{Name: "TV Embedded", Opts: engine.Options{PlayerClient: "tv_embedded"}},
			{Name: "Default", Opts: engine.Options{}},
		}
	case PlatformInstagram:
		return []Strategy{
			{Name: "GraphQL API", Opts: engine.Options{InstagramAPI: "graphql"}},
			{Name: "Default", Opts: engine.Options{}},
			{Name: "Browser Cookies", Opts: engine.Options{CookiesFromBrowser: "chrome"}},
		}
	case PlatformTikTok:
		return []Strategy{
			{Name: "API Host", Opts: engine.Options{TikTokAPIHost: "api22-normal-c-useast2a.tiktokv.com"}},
			{Name: "Default", Opts: engine.Options{}},
		}
	case PlatformTwitter:
		return []Strategy{
			{Name: "Legacy API", Opts: engine.Options{TwitterLegacyAPI: true}},
			{Name: "Default", Opts: engine.Options{}},
		}
	default:
		return []Strategy{
			{Name: "Default", Opts: engine.Options{}},
			{Name: "No Browser Headers", Opts: engine.Options{StripHeaders: true}},
			{Name: "Geo Bypass", Opts: engine.Options{GeoBypassCountry: "US"}},
		}
	}
}
