package recon_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"facturo/internal/domain"
	"facturo/internal/recon"
)

func alloc(amount string) domain.Allocation {
	return domain.Allocation{Amount: decimal.RequireFromString(amount)}
}

// assertPartition checks that every item index appears in exactly one
// allocation's index list.
func assertPartition(t *testing.T, n int, lists []domain.IndexList) {
	t.Helper()
	seen := make(map[int]int)
	for _, list := range lists {
		for _, idx := range list {
			seen[idx]++
		}
	}
	assert.Len(t, seen, n)
	for idx := 0; idx < n; idx++ {
		assert.Equal(t, 1, seen[idx], "index %d", idx)
	}
}

func TestReallocate_EndToEndScenario(t *testing.T) {
	items := []domain.LineItem{
		item("Tomates", "10", "2", "20"),
		item("tomates", "10", "2", "20"),
		item("Oignons", "5", "1", "5"),
	}

	deduped := recon.Deduplicate(items)
	require.Len(t, deduped.Unique, 2)
	assert.Equal(t, "25.00", recon.TotalNetAmount(deduped.Unique).StringFixed(2))

	allocations := []domain.Allocation{alloc("20"), alloc("5")}
	lists, err := recon.Reallocate(deduped.Unique, allocations)
	require.NoError(t, err)

	// First allocation's target is 20/25 of 25.00 = 20.00, reached with the
	// Tomates line alone; the Oignons line falls to the last allocation.
	assert.Equal(t, domain.IndexList{0}, lists[0])
	assert.Equal(t, domain.IndexList{1}, lists[1])
}

func TestReallocate_EmptyAllocationsIsNoOp(t *testing.T) {
	items := []domain.LineItem{item("A", "1", "1", "1")}

	lists, err := recon.Reallocate(items, nil)

	assert.NoError(t, err)
	assert.Nil(t, lists)
}

func TestReallocate_NegativeAmountFailsFast(t *testing.T) {
	items := []domain.LineItem{item("A", "1", "1", "1")}

	lists, err := recon.Reallocate(items, []domain.Allocation{alloc("10"), alloc("-1")})

	assert.ErrorIs(t, err, domain.ErrInvalidAllocationAmount)
	assert.Nil(t, lists)
}

func TestReallocate_SingleAllocationTakesEverything(t *testing.T) {
	items := []domain.LineItem{
		item("A", "1", "1", "1"),
		item("B", "2", "2", "4"),
		item("C", "1", "3", "3"),
	}

	lists, err := recon.Reallocate(items, []domain.Allocation{alloc("8")})
	require.NoError(t, err)

	assert.Equal(t, domain.IndexList{0, 1, 2}, lists[0])
}

func TestReallocate_LastAllocationAbsorbsRemainder(t *testing.T) {
	items := []domain.LineItem{
		item("A", "1", "10", "10"),
		item("B", "1", "10", "10"),
		item("C", "1", "10", "10"),
		item("D", "1", "10", "10"),
	}

	// First allocation is entitled to 75%: greedy fill takes three items.
	lists, err := recon.Reallocate(items, []domain.Allocation{alloc("30"), alloc("10")})
	require.NoError(t, err)

	assert.Equal(t, domain.IndexList{0, 1, 2}, lists[0])
	assert.Equal(t, domain.IndexList{3}, lists[1])
	assertPartition(t, len(items), lists)
}

func TestReallocate_UndershootTolerance(t *testing.T) {
	// Target for the first allocation is 9.60; one 9.50 item is within the
	// 5% tolerance, so the second item is not pulled in.
	items := []domain.LineItem{
		item("A", "1", "9.50", "9.50"),
		item("B", "1", "2.50", "2.50"),
	}

	lists, err := recon.Reallocate(items, []domain.Allocation{alloc("9.60"), alloc("2.40")})
	require.NoError(t, err)

	assert.Equal(t, domain.IndexList{0}, lists[0])
	assert.Equal(t, domain.IndexList{1}, lists[1])
}

func TestReallocate_ZeroTotalAllocatedSendsItemsToLast(t *testing.T) {
	items := []domain.LineItem{
		item("A", "1", "1", "1"),
		item("B", "1", "2", "2"),
	}

	lists, err := recon.Reallocate(items, []domain.Allocation{alloc("0"), alloc("0"), alloc("0")})
	require.NoError(t, err)

	assert.Empty(t, lists[0])
	assert.Empty(t, lists[1])
	assert.Equal(t, domain.IndexList{0, 1}, lists[2])
	assertPartition(t, len(items), lists)
}

func TestReallocate_MoreAllocationsThanItems(t *testing.T) {
	items := []domain.LineItem{item("A", "1", "5", "5")}
	allocations := []domain.Allocation{alloc("2"), alloc("2"), alloc("1")}

	lists, err := recon.Reallocate(items, allocations)
	require.NoError(t, err)

	// Earlier-created allocations take precedence; later ones are starved.
	assert.Equal(t, domain.IndexList{0}, lists[0])
	assert.Empty(t, lists[1])
	assert.Empty(t, lists[2])
	assertPartition(t, len(items), lists)
}

func TestReallocate_MinimumOneItemForEntitledAllocation(t *testing.T) {
	// The first allocation's target share is tiny, but it is positive and the
	// pool is non-empty, so it still receives one item.
	items := []domain.LineItem{
		item("A", "1", "50", "50"),
		item("B", "1", "50", "50"),
	}

	lists, err := recon.Reallocate(items, []domain.Allocation{alloc("0.01"), alloc("99.99")})
	require.NoError(t, err)

	assert.Equal(t, domain.IndexList{0}, lists[0])
	assert.Equal(t, domain.IndexList{1}, lists[1])
}

func TestReallocate_PartitionHoldsAcrossShapes(t *testing.T) {
	amounts := [][]string{
		{"10"},
		{"10", "5"},
		{"0", "10"},
		{"1", "1", "1", "1"},
		{"100", "0.5", "0.5"},
	}
	itemSets := [][]domain.LineItem{
		{},
		{item("A", "1", "1", "1")},
		{item("A", "2", "3", "6"), item("B", "1", "4", "4"), item("C", "5", "0.2", "1")},
		{item("A", "1", "10", "10"), item("B", "1", "0.01", "0.01"), item("C", "1", "5", "5"), item("D", "1", "2", "2"), item("E", "1", "8", "8")},
	}

	for _, amts := range amounts {
		allocations := make([]domain.Allocation, len(amts))
		for i, a := range amts {
			allocations[i] = alloc(a)
		}
		for _, items := range itemSets {
			lists, err := recon.Reallocate(items, allocations)
			require.NoError(t, err)
			require.Len(t, lists, len(allocations))
			assertPartition(t, len(items), lists)
		}
	}
}

func TestReallocate_OrderSensitiveButAlwaysPartitions(t *testing.T) {
	items := []domain.LineItem{
		item("A", "1", "12", "12"),
		item("B", "1", "8", "8"),
		item("C", "1", "5", "5"),
	}

	forward, err := recon.Reallocate(items, []domain.Allocation{alloc("20"), alloc("5")})
	require.NoError(t, err)
	reversed, err := recon.Reallocate(items, []domain.Allocation{alloc("5"), alloc("20")})
	require.NoError(t, err)

	assertPartition(t, len(items), forward)
	assertPartition(t, len(items), reversed)
	// Reordering the allocations changes which one each item lands in.
	assert.NotEqual(t, forward[0], reversed[1])
}

func TestReallocate_IndicesSortedAscending(t *testing.T) {
	items := []domain.LineItem{
		item("A", "1", "1", "1"),
		item("B", "1", "1", "1"),
		item("C", "1", "1", "1"),
		item("D", "1", "1", "1"),
	}

	lists, err := recon.Reallocate(items, []domain.Allocation{alloc("2"), alloc("2")})
	require.NoError(t, err)

	for _, list := range lists {
		for i := 1; i < len(list); i++ {
			assert.Less(t, list[i-1], list[i])
		}
	}
}
