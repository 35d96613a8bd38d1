// Package metrics exposes the service-level Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ExtractionsTotal counts finished extraction calls by outcome
	// ("success" or "failure").
	ExtractionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vidgrab_extractions_total",
		Help: "Completed metadata extractions by outcome.",
	}, []string{"outcome"})

	// StrategyFailuresTotal counts individual strategy attempts that failed
	// before the orchestrator moved on to the next strategy.
	StrategyFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vidgrab_strategy_failures_total",
		Help: "Failed per-strategy engine attempts.",
	})

	// DownloadsTotal counts download tasks that reached a terminal state.
	DownloadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vidgrab_downloads_total",
		Help: "Download tasks by terminal status.",
	}, []string{"status"})

	// CacheEvictionsTotal counts files removed by cache eviction.
	CacheEvictionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vidgrab_cache_evictions_total",
		Help: "Files removed from the artifact cache.",
	})
)
