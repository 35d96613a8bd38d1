package ytmusic

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(server *httptest.Server) *Client {
	c := NewClient()
	c.httpClient = server.Client()
	c.baseURL = server.URL
	return c
}

func flexColumn(runs ...map[string]any) map[string]any {
	raw := make([]any, len(runs))
	for i, r := range runs {
		raw[i] = r
	}
	return map[string]any{
		"musicResponsiveListItemFlexColumnRenderer": map[string]any{
			"text": map[string]any{"runs": raw},
		},
	}
}

func textRun(text string) map[string]any {
	return map[string]any{"text": text}
}

func browseRun(text, browseID, pageType string) map[string]any {
	return map[string]any{
		"text": text,
		"navigationEndpoint": map[string]any{
			"browseEndpoint": map[string]any{
				"browseId": browseID,
				"browseEndpointContextSupportedConfigs": map[string]any{
					"browseEndpointContextMusicConfig": map[string]any{
						"pageType": pageType,
					},
				},
			},
		},
	}
}

func songRenderer(videoID, title string, columns ...map[string]any) map[string]any {
	cols := make([]any, len(columns))
	for i, c := range columns {
		cols[i] = c
	}
	return map[string]any{
		"musicResponsiveListItemRenderer": map[string]any{
			"playlistItemData": map[string]any{"videoId": videoID},
			"flexColumns": append([]any{
				flexColumn(textRun(title)),
			}, cols...),
		},
	}
}

func TestSearch(t *testing.T) {
	payload := map[string]any{
		"contents": map[string]any{
			"sectionList": []any{
				songRenderer("vid1", "First Song",
					flexColumn(
						browseRun("Artist One", "UCartist1", "MUSIC_PAGE_TYPE_ARTIST"),
						textRun(" • "),
						browseRun("Album One", "MPREalbum1", "MUSIC_PAGE_TYPE_ALBUM"),
						textRun(" • "),
						textRun("3:45"),
					),
				),
				songRenderer("vid2", "Second Song",
					flexColumn(textRun("Artist Two"), textRun("12:05")),
				),
				// No video ID, must be dropped.
				map[string]any{"musicResponsiveListItemRenderer": map[string]any{
					"flexColumns": []any{flexColumn(textRun("Shelf Header"))},
				}},
			},
		},
	}

	var gotPath string
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		require.NoError(t, json.NewEncoder(w).Encode(payload))
	}))
	defer server.Close()

	songs, err := testClient(server).Search(context.Background(), "first song", "songs", 20)
	require.NoError(t, err)

	assert.Equal(t, "/search", gotPath)
	assert.Equal(t, "first song", gotBody["query"])
	assert.Equal(t, paramsSongs, gotBody["params"])

	require.Len(t, songs, 2)

	assert.Equal(t, "ytm_vid1", songs[0].ID)
	assert.Equal(t, "vid1", songs[0].VideoID)
	assert.Equal(t, "First Song", songs[0].Title)
	assert.Equal(t, "Artist One", songs[0].Artist)
	assert.Equal(t, "UCartist1", songs[0].ArtistID)
	assert.Equal(t, "Album One", songs[0].Album)
	assert.Equal(t, "MPREalbum1", songs[0].AlbumID)
	assert.Equal(t, 225, songs[0].Duration)
	assert.Equal(t, ThumbnailURL("vid1"), songs[0].Thumbnail)

	assert.Equal(t, "Artist Two", songs[1].Artist)
	assert.Equal(t, 725, songs[1].Duration)
	assert.Empty(t, songs[1].Album)
}

func TestSearch_LimitAndFilters(t *testing.T) {
	items := make([]any, 5)
	for i, id := range []string{"a", "b", "c", "d", "e"} {
		items[i] = songRenderer(id, "Song "+id, flexColumn(textRun("Artist"), textRun("1:00")))
	}
	payload := map[string]any{"contents": items}

	var gotParams string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		gotParams, _ = body["params"].(string)
		require.NoError(t, json.NewEncoder(w).Encode(payload))
	}))
	defer server.Close()

	client := testClient(server)

	songs, err := client.Search(context.Background(), "q", "albums", 2)
	require.NoError(t, err)
	assert.Len(t, songs, 2)
	assert.Equal(t, paramsAlbums, gotParams)

	_, err = client.Search(context.Background(), "q", "videos", 0)
	require.NoError(t, err)
	assert.Equal(t, paramsVideos, gotParams)
}

func TestSearch_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := testClient(server).Search(context.Background(), "q", "songs", 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestSong(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/player", r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "vid9", body["videoId"])

		require.NoError(t, json.NewEncoder(w).Encode(map[string]any{
			"videoDetails": map[string]any{
				"videoId":       "vid9",
				"title":         "Track Title",
				"author":        "The Artist",
				"lengthSeconds": "241",
			},
		}))
	}))
	defer server.Close()

	song, err := testClient(server).Song(context.Background(), "vid9")
	require.NoError(t, err)

	assert.Equal(t, "ytm_vid9", song.ID)
	assert.Equal(t, "Track Title", song.Title)
	assert.Equal(t, "The Artist", song.Artist)
	assert.Equal(t, 241, song.Duration)
	assert.Equal(t, "https://i.ytimg.com/vi/vid9/maxresdefault.jpg", song.Thumbnail)
}

func TestSong_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewEncoder(w).Encode(map[string]any{"videoDetails": map[string]any{}}))
	}))
	defer server.Close()

	_, err := testClient(server).Song(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSong_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Second)
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := testClient(server).Song(ctx, "vid9")
	require.Error(t, err)
}

func TestDurationPattern(t *testing.T) {
	valid := []string{"0:30", "3:45", "12:05", "1:02:03"}
	for _, s := range valid {
		assert.True(t, durationPattern(s), s)
	}

	invalid := []string{"", "345", "3:45:12:01", "live", "3:4x"}
	for _, s := range invalid {
		assert.False(t, durationPattern(s), s)
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		input    string
		expected int
	}{
		{"0:30", 30},
		{"3:45", 225},
		{"1:02:03", 3723},
		{"garbage", 0},
	}

	for _, test := range tests {
		assert.Equal(t, test.expected, parseDuration(test.input), test.input)
	}
}
