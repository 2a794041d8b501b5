package nftoken

import (
	"encoding/hex"
)

// ProtocolID identifies a registered NFT protocol. IDs are assigned by
// the registration transaction and are unique across the chain.
type ProtocolID uint64

// UnknownProtocolID is the reserved zero value. It marks an
// unknown/invalid protocol and must never be stored or queried.
const UnknownProtocolID ProtocolID = 0

// KeyIDLength is the byte length of an owner key identifier.
const KeyIDLength = 20

// KeyID is the fixed-size identifier of an owner key (the hash of the
// owner's public key).
type KeyID [KeyIDLength]byte

// IsNull returns true if the key identifier is the zero value.
func (k KeyID) IsNull() bool {
	return k == KeyID{}
}

// String returns the hex representation of the key identifier.
func (k KeyID) String() string {
	return hex.EncodeToString(k[:])
}

// BytesToKeyID converts b to a KeyID. If b is longer than KeyIDLength
// only the leading bytes are used; if shorter, the remainder is zero.
func BytesToKeyID(b []byte) KeyID {
	var k KeyID
	copy(k[:], b)
	return k
}

// Protocol describes one registered NFT protocol: its identifier, the
// key that owns it, and opaque protocol-specific metadata.
//
// A Protocol is immutable after construction. The same instance is
// shared by pointer between the in-memory index entry and the record
// written to disk at registration time; no holder may modify it.
type Protocol struct {
	ID       ProtocolID
	Owner    KeyID
	Metadata []byte
}
