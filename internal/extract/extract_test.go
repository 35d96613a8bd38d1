package extract

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidgrab/vidgrab/internal/engine"
	"github.com/vidgrab/vidgrab/internal/strategy"
)

// stubEngine fails a configured number of extraction calls before returning
// info, recording every call it sees.
type stubEngine struct {
	mu       sync.Mutex
	failures int
	calls    int
	optsSeen []engine.Options
	info     *engine.RawInfo
}

func (s *stubEngine) ExtractMetadata(_ context.Context, _ string, opts engine.Options) (*engine.RawInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.optsSeen = append(s.optsSeen, opts)
	if s.calls <= s.failures {
		return nil, errors.New("simulated engine failure")
	}
	return s.info, nil
}

func (s *stubEngine) Download(context.Context, string, string, string, engine.Options, engine.ProgressFunc) (*engine.RawInfo, error) {
	return nil, errors.New("not implemented")
}

func rawInfo(formats ...engine.RawFormat) *engine.RawInfo {
	return &engine.RawInfo{ID: "vid1", Title: "Clip", Formats: formats}
}

func TestExtract_FirstStrategySucceeds(t *testing.T) {
	eng := &stubEngine{info: rawInfo(engine.RawFormat{FormatID: "22", Ext: "mp4", VCodec: "avc1", ACodec: "mp4a"})}
	extractor := New(eng)

	info, err := extractor.Extract(context.Background(), "https://www.youtube.com/watch?v=vid1")
	require.NoError(t, err)
	assert.Equal(t, "vid1", info.ID)
	assert.Equal(t, 1, eng.calls, "remaining strategies must not be tried after a success")
}

func TestExtract_FallsThroughToLaterStrategy(t *testing.T) {
	url := "https://www.youtube.com/watch?v=vid1"
	eng := &stubEngine{
		failures: 2,
		info:     rawInfo(engine.RawFormat{FormatID: "22", Ext: "mp4", VCodec: "avc1", ACodec: "mp4a"}),
	}
	extractor := New(eng)

	info, attempts, err := extractor.ExtractDetailed(context.Background(), url)
	require.NoError(t, err)
	assert.Equal(t, "vid1", info.ID)
	assert.Equal(t, 3, eng.calls)
	assert.Len(t, attempts, 2)
}

func TestExtract_AllStrategiesAttemptedBeforeFailure(t *testing.T) {
	url := "https://www.youtube.com/watch?v=vid1"
	total := len(strategy.Select(url))
	eng := &stubEngine{failures: total + 1}
	extractor := New(eng)

	_, err := extractor.Extract(context.Background(), url)
	require.Error(t, err)
	assert.Equal(t, total, eng.calls, "every strategy must be attempted before giving up")

	var extractionErr *ExtractionError
	require.ErrorAs(t, err, &extractionErr)
	assert.Len(t, extractionErr.Attempts, total)
}

func TestExtract_StrategyOptionsPropagate(t *testing.T) {
	url := "https://www.youtube.com/watch?v=vid1"
	eng := &stubEngine{failures: 1, info: rawInfo(engine.RawFormat{FormatID: "22", Ext: "mp4", VCodec: "avc1", ACodec: "mp4a"})}
	extractor := New(eng)

	_, err := extractor.Extract(context.Background(), url)
	require.NoError(t, err)

	require.Len(t, eng.optsSeen, 2)
	assert.Equal(t, "web", eng.optsSeen[0].PlayerClient)
	assert.Equal(t, "android", eng.optsSeen[1].PlayerClient)
}

func TestExtract_StoryboardScenario(t *testing.T) {
	// Strategies A and B fail, C succeeds with 5 raw formats of which 2 are
	// storyboards: the result has exactly 3 formats and the failure log
	// holds 2 entries.
	eng := &stubEngine{
		failures: 2,
		info: rawInfo(
			engine.RawFormat{FormatID: "22", Ext: "mp4", VCodec: "avc1", ACodec: "mp4a"},
			engine.RawFormat{FormatID: "sb0", Ext: "mhtml", FormatNote: "storyboard", VCodec: "none", ACodec: "none"},
			engine.RawFormat{FormatID: "sb1", Ext: "mhtml", FormatNote: "storyboard", VCodec: "none", ACodec: "none"},
			engine.RawFormat{FormatID: "18", Ext: "mp4", VCodec: "avc1", ACodec: "mp4a"},
			engine.RawFormat{FormatID: "140", Ext: "m4a", VCodec: "none", ACodec: "mp4a"},
		),
	}
	extractor := New(eng)

	info, attempts, err := extractor.ExtractDetailed(context.Background(), "https://www.youtube.com/watch?v=vid1")
	require.NoError(t, err)
	assert.Len(t, info.Formats, 3)
	assert.Len(t, attempts, 2)
}

func TestFriendlyMessage(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			"sign-in wall",
			"ERROR: Sign in to confirm you're not a bot",
			"The platform requires authentication. Please check the cookie file.",
		},
		{
			"bot detection",
			"blocked: suspected bot traffic",
			"The platform requires authentication. Please check the cookie file.",
		},
		{
			"format unavailable",
			"Requested Format is not available",
			"Requested format not available. Trying alternative...",
		},
		{
			"unrecognized passes through",
			"connection reset by peer",
			"connection reset by peer",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, FriendlyMessage(test.input))
		})
	}
}
