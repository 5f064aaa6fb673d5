package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AniListRequests counts GraphQL calls by query and outcome
	// ("ok", "not_found", "api_error", "transport_error").
	AniListRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "anilistbot_anilist_requests_total",
		Help: "GraphQL requests issued to AniList",
	}, []string{"query", "outcome"})

	AniListLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "anilistbot_anilist_request_duration_seconds",
		Help:    "Latency of AniList GraphQL requests",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	}, []string{"query"})

	// Commands counts handled interactions by command or component kind.
	Commands = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "anilistbot_interactions_total",
		Help: "Discord interactions handled",
	}, []string{"name", "outcome"})

	WatchlistOps = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "anilistbot_watchlist_operations_total",
		Help: "Watchlist store operations",
	}, []string{"op", "backend"})
)
