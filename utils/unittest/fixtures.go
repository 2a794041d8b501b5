package unittest

import (
	crand "crypto/rand"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"go.uber.org/atomic"

	"github.com/defunctec/crowncoin/model/chain"
	"github.com/defunctec/crowncoin/model/nftoken"
)

// protocolIDCounter makes fixture protocol IDs unique within a test binary,
// so indexes keyed by protocol ID never collide by accident. Starts at 1
// because 0 is nftoken.UnknownProtocolID.
var protocolIDCounter = atomic.NewUint64(0)

func ProtocolIDFixture() nftoken.ProtocolID {
	return nftoken.ProtocolID(protocolIDCounter.Inc())
}

func HashFixture() chainhash.Hash {
	var h chainhash.Hash
	_, _ = crand.Read(h[:])
	return h
}

func KeyIDFixture() nftoken.KeyID {
	var key nftoken.KeyID
	_, _ = crand.Read(key[:])
	return key
}

func ProtocolFixture() *nftoken.Protocol {
	id := ProtocolIDFixture()
	return &nftoken.Protocol{
		ID:       id,
		Owner:    KeyIDFixture(),
		Metadata: []byte(fmt.Sprintf("protocol-metadata-%d", id)),
	}
}

// Block is a fixed-value stand-in for a chain block reference.
type Block struct {
	BlockHeight int64
	BlockHash   chainhash.Hash
}

var _ chain.BlockRef = (*Block)(nil)

func (b *Block) Height() int64 {
	return b.BlockHeight
}

func (b *Block) Hash() chainhash.Hash {
	return b.BlockHash
}

func BlockFixture(height int64) *Block {
	return &Block{
		BlockHeight: height,
		BlockHash:   HashFixture(),
	}
}

// Tx is a fixed-value stand-in for a chain transaction reference.
type Tx struct {
	TxHash chainhash.Hash
}

var _ chain.TxRef = (*Tx)(nil)

func (t *Tx) Hash() chainhash.Hash {
	return t.TxHash
}

func TxFixture() *Tx {
	return &Tx{TxHash: HashFixture()}
}

func ProtoIndexFixture(height int64) *nftoken.ProtoIndex {
	return nftoken.NewProtoIndex(BlockFixture(height), TxFixture().Hash(), ProtocolFixture())
}

func ProtoDiskIndexFixture(height int64) *nftoken.ProtoDiskIndex {
	return nftoken.NewProtoDiskIndex(ProtoIndexFixture(height))
}
