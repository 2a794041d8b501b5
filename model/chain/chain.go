// Package chain declares the read-only views of chain state that the
// platform layer consumes. The platform never constructs, mutates or
// frees chain state; it only observes references handed to it by the
// block-connection logic, and the caller guarantees that a referenced
// block outlives every index entry that points at it.
package chain

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// BlockRef is a non-owning reference to a node in the block index. The
// same reference stays valid for the lifetime of the block within the
// active chain, so height can be re-derived from it at any time.
type BlockRef interface {
	// Height returns the block's height in the chain, >= 0.
	Height() int64
	// Hash returns the block's hash.
	Hash() chainhash.Hash
}

// TxRef is a non-owning reference to a transaction.
type TxRef interface {
	// Hash returns the transaction's hash.
	Hash() chainhash.Hash
}
