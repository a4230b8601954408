package metrics

import (
	"context"
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"go2/internal/models"
)

// Load outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

var (
	keywordClicksDesc = prometheus.NewDesc(
		"go2_keyword_clicks_total",
		"Total redirects through each keyword",
		[]string{"keyword"},
		nil,
	)

	keywordLinksDesc = prometheus.NewDesc(
		"go2_keyword_links",
		"Number of links registered under each keyword",
		[]string{"keyword"},
		nil,
	)

	keywordLoads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "go2_keyword_loads_total",
			Help: "Keyword browser index loads by outcome",
		},
		[]string{"outcome"},
	)
)

// IndexSource provides the keyword index to export.
type IndexSource interface {
	GetKeywordIndex(ctx context.Context) (models.KeywordIndex, error)
}

// KeywordCollector is a custom Prometheus collector that reads keyword click
// counts from the link database on each scrape.
type KeywordCollector struct {
	source IndexSource
}

// NewKeywordCollector creates a collector over source.
func NewKeywordCollector(source IndexSource) *KeywordCollector {
	return &KeywordCollector{source: source}
}

// Describe sends the metric descriptors to the channel.
func (c *KeywordCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- keywordClicksDesc
	ch <- keywordLinksDesc
}

// Collect queries the store for all keywords and emits their counters.
func (c *KeywordCollector) Collect(ch chan<- prometheus.Metric) {
	index, err := c.source.GetKeywordIndex(context.Background())
	if err != nil {
		slog.Error("failed to collect keyword metrics", "error", err)
		return
	}
	for keyword, list := range index {
		ch <- prometheus.MustNewConstMetric(
			keywordClicksDesc,
			prometheus.CounterValue,
			float64(list.Clicks),
			keyword,
		)
		ch <- prometheus.MustNewConstMetric(
			keywordLinksDesc,
			prometheus.GaugeValue,
			float64(len(list.Links)),
			keyword,
		)
	}
}

var initOnce sync.Once

// Init registers the collectors with the default registry.
// Must be called once at startup.
func Init(source IndexSource) {
	initOnce.Do(func() {
		prometheus.MustRegister(NewKeywordCollector(source), keywordLoads)
	})
}

// RecordKeywordLoad counts a keyword browser load by outcome.
func RecordKeywordLoad(ok bool) {
	outcome := OutcomeSuccess
	if !ok {
		outcome = OutcomeFailure
	}
	keywordLoads.WithLabelValues(outcome).Inc()
}
