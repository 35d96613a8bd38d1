package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlatformFor(t *testing.T) {
	tests := []struct {
		url      string
		expected Platform
	}{
		{"https://www.youtube.com/watch?v=abc", PlatformYouTube},
		{"https://youtu.be/abc", PlatformYouTube},
		{"https://music.youtube.com/watch?v=abc", PlatformYouTube},
		{"https://www.instagram.com/reel/abc/", PlatformInstagram},
		{"https://instagr.am/p/abc", PlatformInstagram},
		{"https://www.tiktok.com/@user/video/1", PlatformTikTok},
		{"https://twitter.com/user/status/1", PlatformTwitter},
		{"https://x.com/user/status/1", PlatformTwitter},
		{"https://vimeo.com/12345", PlatformGeneric},
		{"https://example.com/video.mp4", PlatformGeneric},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, PlatformFor(test.url), "url %s", test.url)
	}
}

func TestSelect_NeverEmpty(t *testing.T) {
	urls := []string{
		"https://www.youtube.com/watch?v=abc",
		"https://www.instagram.com/reel/abc/",
		"https://www.tiktok.com/@user/video/1",
		"https://x.com/user/status/1",
		"https://example.com/anything",
		"",
	}

	for _, url := range urls {
		strategies := Select(url)
		require.NotEmpty(t, strategies, "url %q", url)
		for _, s := range strategies {
			assert.NotEmpty(t, s.Name)
		}
	}
}

func TestSelect_YouTubeOrder(t *testing.T) {
	strategies := Select("https://www.youtube.com/watch?v=abc")
	require.Len(t, strategies, 5)

	names := make([]string, len(strategies))
	for i, s := range strategies {
		names[i] = s.Name
	}
	assert.Equal(t, []string{"Web Client", "Android Client", "iOS Client", "TV Embedded", "Default"}, names)

	assert.Equal(t, "web", strategies[0].Opts.PlayerClient)
	assert.Equal(t, "android", strategies[1].Opts.PlayerClient)
	assert.Empty(t, strategies[4].Opts.PlayerClient)
}

func TestSelect_GenericFallbacks(t *testing.T) {
	strategies := Select("https://example.com/clip")
	require.Len(t, strategies, 3)

	assert.Equal(t, "Default", strategies[0].Name)
	assert.True(t, strategies[1].Opts.StripHeaders)
	assert.Equal(t, "US", strategies[2].Opts.GeoBypassCountry)
}

func TestSelect_Stateless(t *testing.T) {
	url := "https://www.youtube.com/watch?v=abc"
	require.Equal(t, Select(url), Select(url))
}
