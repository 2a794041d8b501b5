package operation

import (
	"encoding/binary"
	"fmt"

	"github.com/defunctec/crowncoin/model/nftoken"
)

const (

	// codes for chain-global state
	codeTotalProtoCount = 1 // persisted count of all registered protocols

	// codes for indexed protocol records
	codeNftProtoIndex = 10 // protocol registration record, keyed by protocol ID
)

func makePrefix(code byte, keys ...interface{}) []byte {
	prefix := make([]byte, 1)
	prefix[0] = code
	for _, key := range keys {
		prefix = append(prefix, b(key)...)
	}
	return prefix
}

// b encodes a single key part. Integral parts are encoded big-endian so
// that lexicographic key order matches numeric order during iteration.
func b(v interface{}) []byte {
	switch i := v.(type) {
	case uint64:
		val := make([]byte, 8)
		binary.BigEndian.PutUint64(val, i)
		return val
	case nftoken.ProtocolID:
		return b(uint64(i))
	default:
		panic(fmt.Sprintf("unsupported type to convert (%T)", v))
	}
}
