package registry_test

import (
	"sort"
	"testing"

	"github.com/dgraph-io/badger/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/defunctec/crowncoin/model/nftoken"
	"github.com/defunctec/crowncoin/utils/unittest"
)

func TestRegistryProcessFullRange(t *testing.T) {
	unittest.RunWithBadgerDB(t, func(db *badger.DB) {
		reg, _ := newRegistry(t, db)

		var ids []nftoken.ProtocolID
		for i := 0; i < 5; i++ {
			proto := unittest.ProtocolFixture()
			require.True(t, reg.AddProtocol(proto, unittest.TxFixture(), unittest.BlockFixture(int64(i+1))))
			ids = append(ids, proto.ID)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

		var visited []nftoken.ProtocolID
		reg.ProcessFullRange(func(entry *nftoken.ProtoIndex) bool {
			visited = append(visited, entry.ProtocolID())
			return true
		})
		assert.Equal(t, ids, visited)

		// a failing visitor does not stop the scan
		visits := 0
		reg.ProcessFullRange(func(*nftoken.ProtoIndex) bool {
			visits++
			return false
		})
		assert.Equal(t, len(ids), visits)
	})
}

func TestRegistryProcessRangeByHeight(t *testing.T) {
	unittest.RunWithBadgerDB(t, func(db *badger.DB) {
		reg, _ := newRegistry(t, db)
		for h := int64(1); h <= 5; h++ {
			require.True(t, reg.AddProtocol(unittest.ProtocolFixture(), unittest.TxFixture(), unittest.BlockFixture(h)))
		}

		collect := func(height int64, count int, startFrom int) []int64 {
			var heights []int64
			reg.ProcessRangeByHeight(func(entry *nftoken.ProtoIndex) bool {
				heights = append(heights, entry.Height())
				return true
			}, height, count, startFrom)
			return heights
		}

		// pages anchor at the newest entry and are emitted oldest-first
		assert.Equal(t, []int64{4, 5}, collect(5, 2, 0))
		assert.Equal(t, []int64{2, 3}, collect(5, 2, 2))

		// a page past the oldest entry slides forward to stay full
		assert.Equal(t, []int64{1, 2}, collect(5, 2, 4))

		// skipping the whole range yields nothing
		assert.Empty(t, collect(5, 2, 10))

		// an oversized page returns everything
		assert.Equal(t, []int64{1, 2, 3, 4, 5}, collect(5, 50, 0))

		// the height bound trims the newest entries first
		assert.Equal(t, []int64{2, 3}, collect(3, 2, 0))

		assert.Empty(t, collect(0, 2, 0))
		assert.Empty(t, collect(5, 0, 0))
		assert.Empty(t, collect(5, -1, 0))

		// a negative start is treated as zero
		assert.Equal(t, []int64{4, 5}, collect(5, 2, -7))
	})
}

// referenceRange restates the paging contract in its newest-first form:
// order the visible heights newest first, skip startFrom, take count
// (clamping the page into range), then report the page oldest-first.
func referenceRange(heights []int64, limit int64, count, startFrom int) []int64 {
	var newestFirst []int64
	for _, h := range heights {
		if h <= limit {
			newestFirst = append(newestFirst, h)
		}
	}
	sort.Slice(newestFirst, func(i, j int) bool { return newestFirst[i] > newestFirst[j] })

	if startFrom < 0 {
		startFrom = 0
	}
	if count <= 0 || startFrom >= len(newestFirst) {
		return nil
	}
	end := startFrom + count
	if end > len(newestFirst) {
		end = len(newestFirst)
		startFrom = end - count
		if startFrom < 0 {
			startFrom = 0
		}
	}

	page := newestFirst[startFrom:end]
	oldestFirst := make([]int64, 0, len(page))
	for i := len(page) - 1; i >= 0; i-- {
		oldestFirst = append(oldestFirst, page[i])
	}
	return oldestFirst
}

// TestRegistryProcessRangeByHeightRapid cross-checks the ascending
// two-pass paging against the newest-first reference over arbitrary
// height sets and page parameters.
func TestRegistryProcessRangeByHeightRapid(t *testing.T) {
	unittest.RunWithBadgerDB(t, func(db *badger.DB) {
		reg, _ := newRegistry(t, db)

		rapid.Check(t, func(t *rapid.T) {
			heights := rapid.SliceOfN(rapid.Int64Range(1, 12), 0, 10).Draw(t, "heights")
			limit := rapid.Int64Range(0, 12).Draw(t, "limit")
			count := rapid.IntRange(-2, 12).Draw(t, "count")
			startFrom := rapid.IntRange(-2, 12).Draw(t, "start-from")

			var ids []nftoken.ProtocolID
			for _, h := range heights {
				proto := unittest.ProtocolFixture()
				require.True(t, reg.AddProtocol(proto, unittest.TxFixture(), unittest.BlockFixture(h)))
				ids = append(ids, proto.ID)
			}

			var got []int64
			reg.ProcessRangeByHeight(func(entry *nftoken.ProtoIndex) bool {
				got = append(got, entry.Height())
				return true
			}, limit, count, startFrom)

			require.Equal(t, referenceRange(heights, limit, count, startFrom), got)

			for _, id := range ids {
				require.True(t, reg.DeleteAt(id, 12))
			}
		})
	})
}
