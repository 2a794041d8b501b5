package registry

import (
	"math"

	"github.com/google/btree"

	"github.com/defunctec/crowncoin/model/nftoken"
)

// protoIndexItem is the element stored in both index orderings. The
// registration height is captured at insertion time so the height
// ordering stays stable even when an entry later re-derives its height
// from chain state; seq stamps insertion order to keep equal-height
// entries distinct (their relative order is not contractual).
type protoIndexItem struct {
	id     nftoken.ProtocolID
	height int64
	seq    uint64
	entry  *nftoken.ProtoIndex
}

// heightPivot sorts strictly after every stored item at the given
// height, since stored seq values never reach MaxUint64.
func heightPivot(height int64) protoIndexItem {
	return protoIndexItem{height: height, seq: math.MaxUint64}
}

// protoIndexSet is the in-memory multi-key index over protocol index
// entries: unique by protocol ID, non-unique by registration height.
// Both orderings always hold exactly the same entries. It is not safe
// for concurrent use; the registry serializes access.
type protoIndexSet struct {
	byID     *btree.BTreeG[protoIndexItem]
	byHeight *btree.BTreeG[protoIndexItem]
	nextSeq  uint64
}

func newProtoIndexSet() *protoIndexSet {
	return &protoIndexSet{
		byID: btree.NewG(32, func(a, b protoIndexItem) bool {
			return a.id < b.id
		}),
		byHeight: btree.NewG(32, func(a, b protoIndexItem) bool {
			return a.height < b.height || (a.height == b.height && a.seq < b.seq)
		}),
	}
}

// insert adds the entry to both orderings. It returns false and
// mutates nothing if an entry with the same protocol ID is present.
func (s *protoIndexSet) insert(entry *nftoken.ProtoIndex) bool {
	item := protoIndexItem{
		id:     entry.ProtocolID(),
		height: entry.Height(),
		seq:    s.nextSeq,
		entry:  entry,
	}
	if _, ok := s.byID.Get(protoIndexItem{id: item.id}); ok {
		return false
	}
	s.byID.ReplaceOrInsert(item)
	s.byHeight.ReplaceOrInsert(item)
	s.nextSeq++
	return true
}

// erase removes the entry with the given protocol ID from both
// orderings. It returns false if no such entry is present.
func (s *protoIndexSet) erase(protocolID nftoken.ProtocolID) bool {
	item, ok := s.byID.Delete(protoIndexItem{id: protocolID})
	if !ok {
		return false
	}
	// the deleted item carries the exact (height, seq) key
	s.byHeight.Delete(item)
	return true
}

// find returns the entry registered under the given protocol ID, or
// nil if there is none.
func (s *protoIndexSet) find(protocolID nftoken.ProtocolID) *nftoken.ProtoIndex {
	item, ok := s.byID.Get(protoIndexItem{id: protocolID})
	if !ok {
		return nil
	}
	return item.entry
}

// ascend visits all entries in ascending protocol ID order until visit
// returns false.
func (s *protoIndexSet) ascend(visit func(*nftoken.ProtoIndex) bool) {
	s.byID.Ascend(func(item protoIndexItem) bool {
		return visit(item.entry)
	})
}

// ascendHeight visits all entries with registration height <= height,
// ordered by ascending (height, insertion), until visit returns false.
func (s *protoIndexSet) ascendHeight(height int64, visit func(*nftoken.ProtoIndex) bool) {
	s.byHeight.AscendLessThan(heightPivot(height), func(item protoIndexItem) bool {
		return visit(item.entry)
	})
}

// size returns the number of entries.
func (s *protoIndexSet) size() int {
	return s.byID.Len()
}
