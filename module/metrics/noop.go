package metrics

import (
	"github.com/defunctec/crowncoin/module"
)

type NoopCollector struct{}

var _ module.RegistryMetrics = (*NoopCollector)(nil)

func NewNoopCollector() *NoopCollector {
	nc := &NoopCollector{}
	return nc
}

func (nc *NoopCollector) CacheEntries(resource string, entries uint) {}
func (nc *NoopCollector) CacheHit(resource string)                   {}
func (nc *NoopCollector) CacheNotFound(resource string)              {}
func (nc *NoopCollector) CacheMiss(resource string)                  {}
func (nc *NoopCollector) ProtocolRegistered()                        {}
func (nc *NoopCollector) ProtocolRetired()                           {}
func (nc *NoopCollector) TotalProtocols(count uint64)                {}
func (nc *NoopCollector) BlockTip(height int64)                      {}
