package module

type CacheMetrics interface {
	// CacheEntries report the total number of cached items
	CacheEntries(resource string, entries uint)
	// CacheHit report the number of times the queried item is found in the cache
	CacheHit(resource string)
	// CacheNotFound records the number of times the queried item was not found in either cache or database.
	CacheNotFound(resource string)
	// CacheMiss report the number of times the queried item is not found in the cache, but found in the database.
	CacheMiss(resource string)
}

// RegistryMetrics covers the protocol registry: registration and
// retirement events, the persisted total and the tracked chain tip,
// plus the cache behaviour of the in-memory index.
type RegistryMetrics interface {
	CacheMetrics

	// ProtocolRegistered is called once for every protocol registration accepted by the registry.
	ProtocolRegistered()
	// ProtocolRetired is called once for every protocol removed from the registry.
	ProtocolRetired()
	// TotalProtocols reports the current total protocol count.
	TotalProtocols(count uint64)
	// BlockTip reports the height of the best block known to the registry.
	BlockTip(height int64)
}
