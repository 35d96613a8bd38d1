package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/vidgrab/vidgrab/internal/engine"
	"github.com/vidgrab/vidgrab/internal/log"
	"github.com/vidgrab/vidgrab/internal/metrics"
	"github.com/vidgrab/vidgrab/internal/model"
	"github.com/vidgrab/vidgrab/internal/normalize"
	"github.com/vidgrab/vidgrab/internal/strategy"
)

// Attempt records one failed strategy during an extraction run.
type Attempt struct {
	Strategy string
	Err      string
}

// ExtractionError is returned once every strategy has been attempted and
// failed. Message is safe to show to callers; Attempts carries the failure
// log, most recent last.
type ExtractionError struct {
	Message  string
	Attempts []Attempt
}

func (e *ExtractionError) Error() string {
	return e.Message
}

// Extractor drives the strategy selector against the engine until one
// strategy yields metadata.
type Extractor struct {
	engine engine.Engine
	logger zerolog.Logger
}

// New returns an orchestrator over eng.
func New(eng engine.Engine) *Extractor {
	return &Extractor{
		engine: eng,
		logger: log.WithComponent("extract"),
	}
}

// Extract resolves url into normalized metadata. Strategies are tried
// strictly in selector order, one at a time; the first non-empty engine
// response wins. The error is an *ExtractionError only after every strategy
// failed.
func (e *Extractor) Extract(ctx context.Context, url string) (*model.VideoInfo, error) {
	info, _, err := e.run(ctx, url)
	return info, err
}

// ExtractDetailed is Extract plus the per-strategy failure log of the run.
func (e *Extractor) ExtractDetailed(ctx context.Context, url string) (*model.VideoInfo, []Attempt, error) {
	return e.run(ctx, url)
}

func (e *Extractor) run(ctx context.Context, url string) (*model.VideoInfo, []Attempt, error) {
	strategies := strategy.Select(url)
	attempts := make([]Attempt, 0, len(strategies))

	for _, s := range strategies {
		raw, err := e.engine.ExtractMetadata(ctx, url, s.Opts)
		if err == nil && raw != nil {
			e.logger.Info().
				Str("url", url).
				Str("strategy", s.Name).
				Int("failed_attempts", len(attempts)).
				Msg("extraction succeeded")
			metrics.ExtractionsTotal.WithLabelValues("success").Inc()
			return normalize.Info(raw, url), attempts, nil
		}

		if err == nil {
			err = fmt.Errorf("engine returned no metadata")
		}
		attempts = append(attempts, Attempt{Strategy: s.Name, Err: err.Error()})
		metrics.StrategyFailuresTotal.Inc()
		e.logger.Warn().
			Str("url", url).
			Str("strategy", s.Name).
			Err(err).
			Msg("strategy failed")

		if ctx.Err() != nil {
			break
		}
	}

	metrics.ExtractionsTotal.WithLabelValues("failure").Inc()

	last := "all extraction methods failed"
	if len(attempts) > 0 {
		last = attempts[len(attempts)-1].Err
	}
	return nil, attempts, &ExtractionError{
		Message:  FriendlyMessage(last),
		Attempts: attempts,
	}
}

// FriendlyMessage maps known engine error signals to stable, user-safe text.
// Unrecognized errors pass through unchanged.
func FriendlyMessage(errMsg string) string {
	if strings.Contains(errMsg, "Sign in") || strings.Contains(errMsg, "bot") {
		return "The platform requires authentication. Please check the cookie file."
	}
	if strings.Contains(strings.ToLower(errMsg), "format") {
		return "Requested format not available. Trying alternative..."
	}
	return errMsg
}
