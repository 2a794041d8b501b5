package badger

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v2"

	"github.com/defunctec/crowncoin/model/nftoken"
	"github.com/defunctec/crowncoin/storage"
	"github.com/defunctec/crowncoin/storage/badger/operation"
)

// errStopIteration signals an early visitor stop to the traversal; it
// never escapes this package.
var errStopIteration = errors.New("stop iteration")

// Protocols implements storage.Protocols on a badger key-value store.
// Methods are synchronous and safe for concurrent use; the registry
// additionally serializes them behind its own lock.
type Protocols struct {
	db *badger.DB
}

var _ storage.Protocols = (*Protocols)(nil)

func NewProtocols(db *badger.DB) *Protocols {
	p := Protocols{
		db: db,
	}
	return &p
}

func (p *Protocols) WriteProtoIndex(disk *nftoken.ProtoDiskIndex) error {
	err := p.db.Update(operation.InsertProtoIndex(disk))
	if err != nil {
		return fmt.Errorf("could not insert proto index: %w", err)
	}
	return nil
}

func (p *Protocols) ReadProtoIndex(protocolID nftoken.ProtocolID) (*nftoken.ProtoDiskIndex, error) {
	var disk nftoken.ProtoDiskIndex
	err := p.db.View(operation.RetrieveProtoIndex(protocolID, &disk))
	if err != nil {
		return nil, fmt.Errorf("could not retrieve proto index: %w", err)
	}
	return &disk, nil
}

func (p *Protocols) EraseProtoIndex(protocolID nftoken.ProtocolID) error {
	err := p.db.Update(operation.RemoveProtoIndex(protocolID))
	if err != nil {
		return fmt.Errorf("could not remove proto index: %w", err)
	}
	return nil
}

func (p *Protocols) ProcessAllProtoIndexes(visit func(*nftoken.ProtoDiskIndex) bool) error {
	err := p.db.View(operation.TraverseProtoIndexes(func(disk *nftoken.ProtoDiskIndex) error {
		if !visit(disk) {
			return errStopIteration
		}
		return nil
	}))
	if errors.Is(err, errStopIteration) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("could not traverse proto indexes: %w", err)
	}
	return nil
}

func (p *Protocols) ReadTotalProtocolCount() (uint64, error) {
	var count uint64
	err := p.db.View(operation.RetrieveTotalProtocolCount(&count))
	if errors.Is(err, storage.ErrNotFound) {
		// the counter has never been written
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("could not retrieve total protocol count: %w", err)
	}
	return count, nil
}

func (p *Protocols) WriteTotalProtocolCount(count uint64) error {
	err := p.db.Update(operation.UpsertTotalProtocolCount(count))
	if err != nil {
		return fmt.Errorf("could not upsert total protocol count: %w", err)
	}
	return nil
}
