package storage

import (
	"github.com/defunctec/crowncoin/model/nftoken"
)

// Protocols represents persistent storage for registered NFT protocol
// index entries and the total registration counter. It is the durable
// side of the protocol registry; the registry keeps the authoritative
// in-memory index and uses this interface to survive restarts.
type Protocols interface {

	// WriteProtoIndex persists the given record keyed by its protocol ID.
	// Expected errors during normal operations:
	//   - storage.ErrAlreadyExists if a record for the same protocol ID is already stored.
	WriteProtoIndex(disk *nftoken.ProtoDiskIndex) error

	// ReadProtoIndex returns the persisted record for the given protocol ID.
	// Expected errors during normal operations:
	//   - storage.ErrNotFound if no record for the protocol ID is known.
	ReadProtoIndex(protocolID nftoken.ProtocolID) (*nftoken.ProtoDiskIndex, error)

	// EraseProtoIndex removes the persisted record for the given protocol ID.
	// Expected errors during normal operations:
	//   - storage.ErrNotFound if no record for the protocol ID is known.
	EraseProtoIndex(protocolID nftoken.ProtocolID) error

	// ProcessAllProtoIndexes calls visit once for every persisted record,
	// in ascending protocol ID order. Returning false from visit stops
	// the scan early without error.
	ProcessAllProtoIndexes(visit func(*nftoken.ProtoDiskIndex) bool) error

	// ReadTotalProtocolCount returns the persisted registration counter,
	// or 0 if the counter was never written.
	ReadTotalProtocolCount() (uint64, error)

	// WriteTotalProtocolCount overwrites the persisted registration counter.
	WriteTotalProtocolCount(count uint64) error
}
