package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	ReasonNetwork   = "network"
	ReasonStatus    = "status"
	ReasonMalformed = "malformed"
	ReasonTimeout   = "timeout"
)

var (
	LookupsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "address_search_lookups_total",
		Help: "Total geocoder lookups issued after debounce",
	})
	LookupDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "address_search_lookup_duration_ms",
		Help:    "Geocoder lookup duration in milliseconds",
		Buckets: []float64{10, 50, 100, 200, 500, 1000, 2000, 5000},
	})
	LookupFailuresTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "address_search_lookup_failures_total",
		Help: "Total failed lookups by reason",
	}, []string{"reason"})
	StaleResponsesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "address_search_stale_responses_total",
		Help: "Total lookup responses discarded as stale",
	})
	ShortQueriesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "address_search_short_queries_total",
		Help: "Total inputs skipped because the query was too short",
	})
	SelectionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "address_search_selections_total",
		Help: "Total selection events forwarded to the host",
	}, []string{"kind"})
	ActiveSessions = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "address_search_active_sessions",
		Help: "Search sessions currently held in memory",
	})
	ConsumedEventsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "address_search_consumed_events_total",
		Help: "Selection stream messages handled by the worker",
	}, []string{"result"})
)

func init() {
	prometheus.MustRegister(LookupsTotal)
	prometheus.MustRegister(LookupDurationMs)
	prometheus.MustRegister(LookupFailuresTotal)
	prometheus.MustRegister(StaleResponsesTotal)
	prometheus.MustRegister(ShortQueriesTotal)
	prometheus.MustRegister(SelectionsTotal)
	prometheus.MustRegister(ActiveSessions)
	prometheus.MustRegister(ConsumedEventsTotal)
}
