package operation

import (
	"github.com/dgraph-io/badger/v2"

	"github.com/defunctec/crowncoin/model/nftoken"
)

func InsertProtoIndex(disk *nftoken.ProtoDiskIndex) func(*badger.Txn) error {
	return insert(makePrefix(codeNftProtoIndex, disk.ProtocolID()), disk)
}

func RetrieveProtoIndex(protocolID nftoken.ProtocolID, disk *nftoken.ProtoDiskIndex) func(*badger.Txn) error {
	return retrieve(makePrefix(codeNftProtoIndex, protocolID), disk)
}

func RemoveProtoIndex(protocolID nftoken.ProtocolID) func(*badger.Txn) error {
	return remove(makePrefix(codeNftProtoIndex, protocolID))
}

// TraverseProtoIndexes iterates over all persisted protocol records.
// Keys are big-endian protocol IDs, so badger visits them in ascending
// protocol ID order.
func TraverseProtoIndexes(process func(*nftoken.ProtoDiskIndex) error) func(*badger.Txn) error {
	return traverse(makePrefix(codeNftProtoIndex), withProtoIndexes(process))
}

// withProtoIndexes builds the iteration that decodes each traversed
// value as a protocol record and feeds it to process.
func withProtoIndexes(process func(*nftoken.ProtoDiskIndex) error) iterationFunc {
	return func() (checkFunc, createFunc, handleFunc) {
		check := func(key []byte) bool {
			return true
		}
		var disk nftoken.ProtoDiskIndex
		create := func() interface{} {
			return &disk
		}
		handle := func() error {
			return process(&disk)
		}
		return check, create, handle
	}
}

func UpsertTotalProtocolCount(count uint64) func(*badger.Txn) error {
	return upsert(makePrefix(codeTotalProtoCount), count)
}

func RetrieveTotalProtocolCount(count *uint64) func(*badger.Txn) error {
	return retrieve(makePrefix(codeTotalProtoCount), count)
}
