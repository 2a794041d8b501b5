// Package registry tracks the NFT protocols registered on the chain:
// which protocol IDs exist, who owns them, and at which block height
// each one was registered. The in-memory multi-key index is the
// authoritative view; a persistent store backs it across restarts.
package registry

import (
	"errors"
	"fmt"
	"sync"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/rs/zerolog"
	"golang.org/x/exp/slices"

	"github.com/defunctec/crowncoin/model/chain"
	"github.com/defunctec/crowncoin/model/nftoken"
	"github.com/defunctec/crowncoin/module"
	"github.com/defunctec/crowncoin/module/metrics"
	"github.com/defunctec/crowncoin/storage"
)

// ProtocolRegistry is the stateful core of the protocol layer. One
// instance exists per running node and is handed to every consumer.
//
// A single non-reentrant mutex serializes all public operations:
// uniqueness checks, store writes and counter updates must appear as
// one atomic step to callers. Store access stays inside the lock; the
// store is local and fast, and the simplicity is worth the serialized
// I/O.
type ProtocolRegistry struct {
	mu        sync.Mutex
	log       zerolog.Logger
	metrics   module.RegistryMetrics
	protocols storage.Protocols

	index        *protoIndexSet
	totalCount   uint64 // covers exactly the entries in index
	tipHeight    int64
	tipBlockHash chainhash.Hash
}

// NewProtocolRegistry restores the registry from the given store: it
// reads the persisted counter, streams every persisted entry into the
// in-memory index, and repairs the counter if it disagrees with the
// entry set. No other method may be called before construction
// returns.
func NewProtocolRegistry(log zerolog.Logger, collector module.RegistryMetrics, protocols storage.Protocols) (*ProtocolRegistry, error) {

	r := &ProtocolRegistry{
		log:       log.With().Str("component", "protocol_registry").Logger(),
		metrics:   collector,
		protocols: protocols,
		index:     newProtoIndexSet(),
	}

	count, err := protocols.ReadTotalProtocolCount()
	if err != nil {
		return nil, fmt.Errorf("could not read total protocol count: %w", err)
	}
	r.totalCount = count

	err = protocols.ProcessAllProtoIndexes(func(disk *nftoken.ProtoDiskIndex) bool {
		if !r.index.insert(disk.ProtoIndex()) {
			r.log.Warn().
				Uint64("protocol_id", uint64(disk.ProtocolID())).
				Msg("skipping persisted proto index with colliding protocol ID")
		}
		return true
	})
	if err != nil {
		return nil, fmt.Errorf("could not load persisted proto indexes: %w", err)
	}

	// a crash between an entry write and the counter write leaves the
	// persisted counter behind the entry set; the scanned set wins
	if size := uint64(r.index.size()); size != r.totalCount {
		r.log.Warn().
			Uint64("persisted_count", r.totalCount).
			Uint64("scanned_count", size).
			Msg("total protocol count disagrees with persisted entries, repairing")
		r.totalCount = size
		err = protocols.WriteTotalProtocolCount(size)
		if err != nil {
			return nil, fmt.Errorf("could not repair total protocol count: %w", err)
		}
	}

	r.metrics.TotalProtocols(r.totalCount)
	r.metrics.BlockTip(r.tipHeight)
	r.metrics.CacheEntries(metrics.ResourceNftProtoIndex, uint(r.index.size()))

	return r, nil
}

// AddProtocol registers the given protocol as of the given block and
// registration transaction. It returns false if a protocol with the
// same ID is already registered, leaving all state untouched. On
// success the entry and the incremented counter are written through to
// the store before the call returns.
//
// The descriptor, transaction and block arguments must be valid;
// violations are programming errors and panic.
func (r *ProtocolRegistry) AddProtocol(proto *nftoken.Protocol, tx chain.TxRef, block chain.BlockRef) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if proto == nil {
		panic("registry: adding nil protocol")
	}
	if proto.ID == nftoken.UnknownProtocolID {
		panic("registry: adding protocol with reserved ID")
	}
	if proto.Owner.IsNull() {
		panic("registry: adding protocol without owner")
	}
	if block == nil {
		panic("registry: adding protocol without block reference")
	}
	if tx == nil || tx.Hash() == (chainhash.Hash{}) {
		panic("registry: adding protocol without registration tx hash")
	}

	// the registry keeps its own copy of the descriptor; the index
	// entry and the persisted record share it and never mutate it
	owned := &nftoken.Protocol{
		ID:       proto.ID,
		Owner:    proto.Owner,
		Metadata: slices.Clone(proto.Metadata),
	}

	// the in-memory insert decides uniqueness; a duplicate never
	// touches the store
	entry := nftoken.NewProtoIndex(block, tx.Hash(), owned)
	if !r.index.insert(entry) {
		return false
	}

	err := r.protocols.WriteProtoIndex(nftoken.NewProtoDiskIndex(entry))
	if err != nil {
		// memory stays authoritative until restart
		r.log.Error().Err(err).
			Uint64("protocol_id", uint64(proto.ID)).
			Msg("could not persist proto index")
	}
	r.totalCount++
	err = r.protocols.WriteTotalProtocolCount(r.totalCount)
	if err != nil {
		r.log.Error().Err(err).Msg("could not persist total protocol count")
	}

	r.metrics.ProtocolRegistered()
	r.metrics.TotalProtocols(r.totalCount)
	r.metrics.CacheEntries(metrics.ResourceNftProtoIndex, uint(r.index.size()))

	return true
}

// Contains reports whether the protocol is registered and visible at
// the current tip height.
func (r *ProtocolRegistry) Contains(protocolID nftoken.ProtocolID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.containsAt(protocolID, r.tipHeight)
}

// ContainsAt reports whether the protocol is registered and visible at
// the given height: the registration height must be <= height.
func (r *ProtocolRegistry) ContainsAt(protocolID nftoken.ProtocolID, height int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if height < 0 {
		panic("registry: containment query with negative height")
	}
	return r.containsAt(protocolID, height)
}

func (r *ProtocolRegistry) containsAt(protocolID nftoken.ProtocolID, height int64) bool {
	entry := r.lookup(protocolID)
	if entry.IsNull() {
		return false
	}
	return entry.Height() <= height
}

// Lookup returns the index entry registered under the given protocol
// ID, or nil if the protocol is unknown. A miss in the in-memory index
// falls back to the store; an entry found there re-enters the index
// and the running counter. An unknown protocol is logged at warning
// level.
func (r *ProtocolRegistry) Lookup(protocolID nftoken.ProtocolID) *nftoken.ProtoIndex {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.lookup(protocolID)
}

func (r *ProtocolRegistry) lookup(protocolID nftoken.ProtocolID) *nftoken.ProtoIndex {
	if protocolID == nftoken.UnknownProtocolID {
		panic("registry: lookup of reserved protocol ID")
	}

	if entry := r.index.find(protocolID); entry != nil {
		r.metrics.CacheHit(metrics.ResourceNftProtoIndex)
		return entry
	}

	disk, err := r.protocols.ReadProtoIndex(protocolID)
	if errors.Is(err, storage.ErrNotFound) {
		r.metrics.CacheNotFound(metrics.ResourceNftProtoIndex)
		r.log.Warn().
			Uint64("protocol_id", uint64(protocolID)).
			Msg("proto index not found in the database")
		return nil
	}
	if err != nil {
		// a failed read is observably the same as not found
		r.metrics.CacheNotFound(metrics.ResourceNftProtoIndex)
		r.log.Warn().Err(err).
			Uint64("protocol_id", uint64(protocolID)).
			Msg("could not read proto index from the database")
		return nil
	}

	entry := disk.ProtoIndex()
	if !r.index.insert(entry) {
		// the lock excludes a concurrent insert for the same ID
		panic(fmt.Sprintf("registry: backfill collision for protocol %d", protocolID))
	}

	// a record resurfacing from the store is uncounted: it was written
	// behind the registry's back or left behind by a delete whose
	// erase failed
	r.totalCount++
	err = r.protocols.WriteTotalProtocolCount(r.totalCount)
	if err != nil {
		r.log.Error().Err(err).Msg("could not persist total protocol count")
	}

	r.metrics.CacheMiss(metrics.ResourceNftProtoIndex)
	r.metrics.TotalProtocols(r.totalCount)
	r.metrics.CacheEntries(metrics.ResourceNftProtoIndex, uint(r.index.size()))
	return entry
}

// OwnerOf returns the owner key of the given protocol. The protocol
// must be known to exist; an unknown ID is a contract violation and
// panics.
func (r *ProtocolRegistry) OwnerOf(protocolID nftoken.ProtocolID) nftoken.KeyID {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry := r.lookup(protocolID)
	if entry.IsNull() {
		panic(fmt.Sprintf("registry: owner of unknown protocol %d", protocolID))
	}
	return entry.Proto.Owner
}

// Delete retracts the registration of the given protocol if it is
// confirmed at the current tip height. It returns false if the
// protocol is unknown or not yet confirmed.
func (r *ProtocolRegistry) Delete(protocolID nftoken.ProtocolID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.remove(protocolID, r.tipHeight)
}

// DeleteAt retracts the registration of the given protocol if its
// registration height is <= the given height. Only registrations that
// are already confirmed as of that height may be retracted.
func (r *ProtocolRegistry) DeleteAt(protocolID nftoken.ProtocolID, height int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if height < 0 {
		panic("registry: delete with negative height")
	}
	return r.remove(protocolID, height)
}

// remove consults only the in-memory index for existence; after
// construction the index holds every persisted entry.
func (r *ProtocolRegistry) remove(protocolID nftoken.ProtocolID, height int64) bool {
	if protocolID == nftoken.UnknownProtocolID {
		panic("registry: delete of reserved protocol ID")
	}

	entry := r.index.find(protocolID)
	if entry == nil || entry.Height() > height {
		return false
	}

	r.index.erase(protocolID)
	err := r.protocols.EraseProtoIndex(protocolID)
	if err != nil {
		r.log.Error().Err(err).
			Uint64("protocol_id", uint64(protocolID)).
			Msg("could not erase proto index")
	}
	r.totalCount--
	err = r.protocols.WriteTotalProtocolCount(r.totalCount)
	if err != nil {
		r.log.Error().Err(err).Msg("could not persist total protocol count")
	}

	r.metrics.ProtocolRetired()
	r.metrics.TotalProtocols(r.totalCount)
	r.metrics.CacheEntries(metrics.ResourceNftProtoIndex, uint(r.index.size()))

	return true
}

// UpdateBlockTip records the new best block. This is the only way tip
// state changes; registrations never move it.
func (r *ProtocolRegistry) UpdateBlockTip(block chain.BlockRef) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if block == nil {
		panic("registry: tip update without block reference")
	}
	r.tipHeight = block.Height()
	r.tipBlockHash = block.Hash()
	r.metrics.BlockTip(r.tipHeight)
}

// ProcessFullRange invokes visit once for every entry, in ascending
// protocol ID order. A false return is logged as a soft failure and
// iteration continues; every entry is visited exactly once.
//
// The visitor runs under the registry lock and must not call back into
// the registry.
func (r *ProtocolRegistry) ProcessFullRange(visit func(*nftoken.ProtoIndex) bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.index.ascend(func(entry *nftoken.ProtoIndex) bool {
		if !visit(entry) {
			r.log.Warn().
				Uint64("protocol_id", uint64(entry.ProtocolID())).
				Msg("proto index processing failed")
		}
		return true
	})
}

// ProcessRangeByHeight pages through the entries registered at or
// below the given height. Pages anchor at the most recent end:
// startFrom skips that many newest entries, count bounds the page
// size, and the page is emitted in ascending height order. A page that
// would reach past the oldest entry slides forward so it stays full;
// skipping past the whole range yields no visits. Soft visitor
// failures are logged and iteration continues.
//
// The visitor runs under the registry lock and must not call back into
// the registry.
func (r *ProtocolRegistry) ProcessRangeByHeight(visit func(*nftoken.ProtoIndex) bool, height int64, count int, startFrom int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if startFrom < 0 {
		startFrom = 0
	}

	n := 0
	r.index.ascendHeight(height, func(*nftoken.ProtoIndex) bool {
		n++
		return true
	})

	if count <= 0 || startFrom >= n {
		return
	}

	offsetFromEnd := startFrom + count
	if offsetFromEnd > n {
		offsetFromEnd = n
	}
	dropFromEnd := offsetFromEnd - count
	if dropFromEnd < 0 {
		dropFromEnd = 0
	}
	begin := n - offsetFromEnd
	end := n - dropFromEnd

	idx := 0
	r.index.ascendHeight(height, func(entry *nftoken.ProtoIndex) bool {
		if idx >= begin {
			if !visit(entry) {
				r.log.Warn().
					Uint64("protocol_id", uint64(entry.ProtocolID())).
					Msg("proto index processing failed")
			}
		}
		idx++
		return idx < end
	})
}

// TipHeight returns the height of the best block known to the
// registry.
func (r *ProtocolRegistry) TipHeight() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.tipHeight
}

// TipHash returns the hash of the best block known to the registry.
func (r *ProtocolRegistry) TipHash() chainhash.Hash {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.tipBlockHash
}

// TotalProtocolCount returns the running registration counter.
func (r *ProtocolRegistry) TotalProtocolCount() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.totalCount
}

// Size returns the number of entries in the in-memory index.
func (r *ProtocolRegistry) Size() uint {
	r.mu.Lock()
	defer r.mu.Unlock()

	return uint(r.index.size())
}
