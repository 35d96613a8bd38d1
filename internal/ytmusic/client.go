package ytmusic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/vidgrab/vidgrab/internal/log"
)

const (
	baseURL       = "https://music.youtube.com/youtubei/v1"
	clientName    = "WEB_REMIX"
	clientVersion = "1.20240101.01.00"

	// Pre-encoded search params per result filter.
	paramsSongs  = "EgWKAQIIAWoKEAkQBRAKEAMQBA%3D%3D"
	paramsAlbums = "EgWKAQIYAWoKEAkQBRAKEAMQBA%3D%3D"
	paramsVideos = "EgWKAQIQAWoKEAkQBRAKEAMQBA%3D%3D"
)

// Song is one shaped search or lookup result.
type Song struct {
	ID        string `json:"id"`
	VideoID   string `json:"videoId"`
	Title     string `json:"name"`
	Duration  int    `json:"duration"` // seconds
	Artist    string `json:"artist"`
	ArtistID  string `json:"artistId,omitempty"`
	Album     string `json:"album,omitempty"`
	AlbumID   string `json:"albumId,omitempty"`
	Thumbnail string `json:"thumbnail"`
}

// Client is a thin, unauthenticated client for the YouTube Music catalog.
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     zerolog.Logger
}

// NewClient returns a ready catalog client.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
		logger:     log.WithComponent("ytmusic"),
	}
}

// Search queries the catalog and returns up to limit shaped results.
// filter selects the result class ("songs", "albums", "videos").
func (c *Client) Search(ctx context.Context, query, filter string, limit int) ([]Song, error) {
	if limit <= 0 {
		limit = 20
	}

	body := map[string]any{
		"context": innertubeContext(),
		"query":   query,
		"params":  searchParams(filter),
	}

	var payload map[string]any
	if err := c.post(ctx, "/search", body, &payload); err != nil {
		return nil, err
	}

	songs := make([]Song, 0, limit)
	for _, renderer := range collectSongRenderers(payload) {
		if len(songs) >= limit {
			break
		}
		if song, ok := shapeSong(renderer); ok {
			songs = append(songs, song)
		}
	}
	return songs, nil
}

// Song looks up one item by its video ID.
func (c *Client) Song(ctx context.Context, videoID string) (*Song, error) {
	body := map[string]any{
		"context": innertubeContext(),
		"videoId": videoID,
	}

	var payload struct {
		VideoDetails struct {
			VideoID       string `json:"videoId"`
			Title         string `json:"title"`
			Author        string `json:"author"`
			LengthSeconds string `json:"lengthSeconds"`
		} `json:"videoDetails"`
	}
	if err := c.post(ctx, "/player", body, &payload); err != nil {
		return nil, err
	}
	if payload.VideoDetails.VideoID == "" {
		return nil, fmt.Errorf("ytmusic: song %s not found", videoID)
	}

	duration, _ := strconv.Atoi(payload.VideoDetails.LengthSeconds)
	return &Song{
		ID:        "ytm_" + payload.VideoDetails.VideoID,
		VideoID:   payload.VideoDetails.VideoID,
		Title:     payload.VideoDetails.Title,
		Duration:  duration,
		Artist:    payload.VideoDetails.Author,
		Thumbnail: ThumbnailURL(payload.VideoDetails.VideoID),
	}, nil
}

// ThumbnailURL returns the maximum resolution thumbnail for a video ID.
func ThumbnailURL(videoID string) string {
	return fmt.Sprintf("https://i.ytimg.com/vi/%s/maxresdefault.jpg", videoID)
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	encoded, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("ytmusic: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("ytmusic: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", "https://music.youtube.com")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ytmusic: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ytmusic: %s returned status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("ytmusic: decode %s response: %w", path, err)
	}
	return nil
}

func innertubeContext() map[string]any {
	return map[string]any{
		"client": map[string]any{
			"clientName":    clientName,
			"clientVersion": clientVersion,
			"hl":            "en",
		},
	}
}

func searchParams(filter string) string {
	switch filter {
	case "albums":
		return paramsAlbums
	case "videos":
		return paramsVideos
	default:
		return paramsSongs
	}
}

// collectSongRenderers walks the response tree and gathers every
// musicResponsiveListItemRenderer node, preserving document order.
func collectSongRenderers(node any) []map[string]any {
	var out []map[string]any
	walk(node, func(m map[string]any) {
		if renderer, ok := m["musicResponsiveListItemRenderer"].(map[string]any); ok {
			out = append(out, renderer)
		}
	})
	return out
}

func walk(node any, visit func(map[string]any)) {
	switch v := node.(type) {
	case map[string]any:
		visit(v)
		for _, child := range v {
			walk(child, visit)
		}
	case []any:
		for _, child := range v {
			walk(child, visit)
		}
	}
}

// shapeSong converts one list item renderer into a Song. Items without a
// playable video ID are dropped.
func shapeSong(renderer map[string]any) (Song, bool) {
	videoID := findString(renderer, "videoId")
	if videoID == "" {
		return Song{}, false
	}

	columns, _ := renderer["flexColumns"].([]any)
	var runs []columnRun
	for _, col := range columns {
		runs = append(runs, columnRuns(col)...)
	}
	if len(runs) == 0 {
		return Song{}, false
	}

	song := Song{
		ID:        "ytm_" + videoID,
		VideoID:   videoID,
		Title:     runs[0].text,
		Artist:    "Unknown Artist",
		Thumbnail: ThumbnailURL(videoID),
	}

	for _, run := range runs[1:] {
		switch {
		case run.pageType == "MUSIC_PAGE_TYPE_ARTIST" || (song.Artist == "Unknown Artist" && run.browseID == "" && looksLikeName(run.text)):
			if song.Artist == "Unknown Artist" {
				song.Artist = run.text
				song.ArtistID = run.browseID
			}
		case run.pageType == "MUSIC_PAGE_TYPE_ALBUM":
			if song.Album == "" {
				song.Album = run.text
				song.AlbumID = run.browseID
			}
		case durationPattern(run.text):
			song.Duration = parseDuration(run.text)
		}
	}

	return song, true
}

type columnRun struct {
	text     string
	browseID string
	pageType string
}

func columnRuns(col any) []columnRun {
	m, ok := col.(map[string]any)
	if !ok {
		return nil
	}
	renderer, ok := m["musicResponsiveListItemFlexColumnRenderer"].(map[string]any)
	if !ok {
		return nil
	}
	text, ok := renderer["text"].(map[string]any)
	if !ok {
		return nil
	}
	rawRuns, _ := text["runs"].([]any)

	var out []columnRun
	for _, raw := range rawRuns {
		rm, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		run := columnRun{}
		run.text, _ = rm["text"].(string)
		if nav, ok := rm["navigationEndpoint"].(map[string]any); ok {
			if browse, ok := nav["browseEndpoint"].(map[string]any); ok {
				run.browseID, _ = browse["browseId"].(string)
				run.pageType = findString(browse, "pageType")
			}
		}
		if run.text != "" && run.text != " • " {
			out = append(out, run)
		}
	}
	return out
}

// findString returns the first string value stored under key anywhere in the
// subtree.
func findString(node any, key string) string {
	found := ""
	walk(node, func(m map[string]any) {
		if found != "" {
			return
		}
		if v, ok := m[key].(string); ok {
			found = v
		}
	})
	return found
}

func looksLikeName(s string) bool {
	return s != "" && !durationPattern(s) && !strings.HasPrefix(s, "•")
}

func durationPattern(s string) bool {
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return false
	}
	for _, p := range parts {
		if _, err := strconv.Atoi(p); err != nil {
			return false
		}
	}
	return true
}

// parseDuration converts "m:ss" or "h:mm:ss" to seconds; malformed input
// yields 0.
func parseDuration(s string) int {
	parts := strings.Split(s, ":")
	total := 0
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return 0
		}
		total = total*60 + n
	}
	return total
}
