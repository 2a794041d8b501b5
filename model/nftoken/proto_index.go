package nftoken

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/defunctec/crowncoin/model/chain"
)

// ProtoIndex records one protocol registration event: which transaction
// registered the protocol, in which block, and at what height.
//
// Block is a non-owning reference into chain state. It is set when the
// entry is built during block connection and left nil when the entry is
// loaded back from disk; it is used only to re-derive the registration
// height. The registry never outlives referenced chain state: callers
// remove entries before the chain discards the corresponding block.
type ProtoIndex struct {
	RegTxHash   chainhash.Hash
	BlockHeight int64
	BlockHash   chainhash.Hash
	Block       chain.BlockRef
	Proto       *Protocol
}

// NewProtoIndex builds the index entry for a registration observed in
// block at txHash.
func NewProtoIndex(block chain.BlockRef, txHash chainhash.Hash, proto *Protocol) *ProtoIndex {
	return &ProtoIndex{
		RegTxHash:   txHash,
		BlockHeight: block.Height(),
		BlockHash:   block.Hash(),
		Block:       block,
		Proto:       proto,
	}
}

// IsNull returns true for an entry that carries no descriptor, i.e. the
// result of a failed lookup. Callers must check IsNull before touching
// Proto.
func (pi *ProtoIndex) IsNull() bool {
	return pi == nil || pi.Proto == nil
}

// ProtocolID returns the identifier of the registered protocol, or
// UnknownProtocolID for a null entry.
func (pi *ProtoIndex) ProtocolID() ProtocolID {
	if pi.IsNull() {
		return UnknownProtocolID
	}
	return pi.Proto.ID
}

// Height returns the registration height. When the entry still holds
// its chain reference the height is re-derived from it; entries loaded
// from disk fall back to the recorded height.
func (pi *ProtoIndex) Height() int64 {
	if pi.Block != nil {
		return pi.Block.Height()
	}
	return pi.BlockHeight
}

// ProtoDiskIndex is the persisted shape of a ProtoIndex. The height is
// stored explicitly so the registry can be rebuilt without access to
// the block index.
type ProtoDiskIndex struct {
	BlockHash   chainhash.Hash
	RegTxHash   chainhash.Hash
	BlockHeight int64
	Proto       *Protocol
}

// NewProtoDiskIndex derives the persisted record for pi.
func NewProtoDiskIndex(pi *ProtoIndex) *ProtoDiskIndex {
	return &ProtoDiskIndex{
		BlockHash:   pi.BlockHash,
		RegTxHash:   pi.RegTxHash,
		BlockHeight: pi.Height(),
		Proto:       pi.Proto,
	}
}

// ProtocolID returns the identifier of the recorded protocol, or
// UnknownProtocolID if the record carries no descriptor.
func (d *ProtoDiskIndex) ProtocolID() ProtocolID {
	if d == nil || d.Proto == nil {
		return UnknownProtocolID
	}
	return d.Proto.ID
}

// ProtoIndex rebuilds the in-memory entry from the persisted record.
// The chain reference is not recoverable from disk and stays nil.
func (d *ProtoDiskIndex) ProtoIndex() *ProtoIndex {
	return &ProtoIndex{
		RegTxHash:   d.RegTxHash,
		BlockHeight: d.BlockHeight,
		BlockHash:   d.BlockHash,
		Proto:       d.Proto,
	}
}
