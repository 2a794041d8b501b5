package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/defunctec/crowncoin/module"
)

// RegistryCollector reports the protocol registry metrics to the
// default prometheus registerer.
type RegistryCollector struct {
	cacheEntries        *prometheus.GaugeVec
	cacheHits           *prometheus.CounterVec
	cacheNotFounds      *prometheus.CounterVec
	cacheMisses         *prometheus.CounterVec
	protocolsRegistered prometheus.Counter
	protocolsRetired    prometheus.Counter
	totalProtocols      prometheus.Gauge
	blockTipHeight      prometheus.Gauge
}

var _ module.RegistryMetrics = (*RegistryCollector)(nil)

func NewRegistryCollector() *RegistryCollector {

	rc := &RegistryCollector{

		cacheEntries: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name:      "entries_total",
			Namespace: namespaceCrown,
			Subsystem: subsystemCache,
			Help:      "the number of entries in the cache",
		}, []string{LabelResource}),

		cacheHits: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:      "hits_total",
			Namespace: namespaceCrown,
			Subsystem: subsystemCache,
			Help:      "the number of hits for the cache",
		}, []string{LabelResource}),

		cacheNotFounds: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:      "notfounds_total",
			Namespace: namespaceCrown,
			Subsystem: subsystemCache,
			Help:      "the number of times the queried item was not found in either cache or database",
		}, []string{LabelResource}),

		cacheMisses: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:      "misses_total",
			Namespace: namespaceCrown,
			Subsystem: subsystemCache,
			Help:      "the number of times the queried item was not found in the cache, but found in the database",
		}, []string{LabelResource}),

		protocolsRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name:      "protocols_registered_total",
			Namespace: namespaceCrown,
			Subsystem: subsystemRegistry,
			Help:      "the number of NFT protocol registrations accepted",
		}),

		protocolsRetired: promauto.NewCounter(prometheus.CounterOpts{
			Name:      "protocols_retired_total",
			Namespace: namespaceCrown,
			Subsystem: subsystemRegistry,
			Help:      "the number of NFT protocols removed from the registry",
		}),

		totalProtocols: promauto.NewGauge(prometheus.GaugeOpts{
			Name:      "protocols_total",
			Namespace: namespaceCrown,
			Subsystem: subsystemRegistry,
			Help:      "the current total of registered NFT protocols",
		}),

		blockTipHeight: promauto.NewGauge(prometheus.GaugeOpts{
			Name:      "block_tip_height",
			Namespace: namespaceCrown,
			Subsystem: subsystemRegistry,
			Help:      "the height of the best block known to the registry",
		}),
	}

	return rc
}

func (rc *RegistryCollector) CacheEntries(resource string, entries uint) {
	rc.cacheEntries.With(prometheus.Labels{LabelResource: resource}).Set(float64(entries))
}

func (rc *RegistryCollector) CacheHit(resource string) {
	rc.cacheHits.With(prometheus.Labels{LabelResource: resource}).Inc()
}

func (rc *RegistryCollector) CacheNotFound(resource string) {
	rc.cacheNotFounds.With(prometheus.Labels{LabelResource: resource}).Inc()
}

func (rc *RegistryCollector) CacheMiss(resource string) {
	rc.cacheMisses.With(prometheus.Labels{LabelResource: resource}).Inc()
}

func (rc *RegistryCollector) ProtocolRegistered() {
	rc.protocolsRegistered.Inc()
}

func (rc *RegistryCollector) ProtocolRetired() {
	rc.protocolsRetired.Inc()
}

func (rc *RegistryCollector) TotalProtocols(count uint64) {
	rc.totalProtocols.Set(float64(count))
}

func (rc *RegistryCollector) BlockTip(height int64) {
	rc.blockTipHeight.Set(float64(height))
}
