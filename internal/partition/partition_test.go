package partition_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"gauss-seidel/internal/partition"
)

func TestNewRejectsInvalidInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		workers, n int
		want       error
	}{
		{"zero workers", 0, 4, partition.ErrInvalidWorkers},
		{"negative workers", -2, 4, partition.ErrInvalidWorkers},
		{"zero size", 3, 0, partition.ErrInvalidSize},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			_, err := partition.New(tc.workers, tc.n)
			require.Error(t, err)
			require.Truef(t, errors.Is(err, tc.want), "expected errors.Is(%v, %v)", err, tc.want)
		})
	}
}

func TestNewKnownTables(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		workers, n int
		block      int
		want       []partition.Range
	}{
		{"single worker", 1, 5, 5, []partition.Range{{0, 5}}},
		{"even split", 2, 6, 3, []partition.Range{{0, 3}, {3, 6}}},
		{"short last", 4, 10, 3, []partition.Range{{0, 3}, {3, 6}, {6, 9}, {9, 10}}},
		{"more workers than unknowns", 5, 2, 1, []partition.Range{{0, 1}, {1, 2}, {2, 2}, {2, 2}, {2, 2}}},
		{"trailing idle with W <= n", 7, 10, 2, []partition.Range{{0, 2}, {2, 4}, {4, 6}, {6, 8}, {8, 10}, {10, 10}, {10, 10}}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			table, err := partition.New(tc.workers, tc.n)
			require.NoError(t, err)
			require.Equal(t, tc.block, table.Block)
			require.Equal(t, tc.want, table.Ranges)
			require.Equal(t, tc.workers, table.Workers())
			require.Equal(t, tc.block*tc.workers, table.GatherLen())
		})
	}
}

// TestNewCoversIndexSpace checks that ranges are disjoint, ordered and cover
// [0, n) exactly for every small (W, n) pair.
func TestNewCoversIndexSpace(t *testing.T) {
	t.Parallel()

	for workers := 1; workers <= 24; workers++ {
		for n := 1; n <= 40; n++ {
			table, err := partition.New(workers, n)
			require.NoError(t, err)

			seen := make([]int, n)
			next := 0
			for rank, r := range table.Ranges {
				require.LessOrEqual(t, r.Lo, r.Hi, "W=%d n=%d rank=%d", workers, n, rank)
				require.LessOrEqual(t, r.Len(), table.Block)
				require.Equal(t, next, r.Lo, "gap or overlap at W=%d n=%d rank=%d", workers, n, rank)
				for i := r.Lo; i < r.Hi; i++ {
					seen[i]++
					require.Equal(t, rank, table.Owner(i))
				}
				next = r.Hi
			}
			require.Equal(t, n, next)
			for i, c := range seen {
				require.Equalf(t, 1, c, "index %d owned %d times (W=%d n=%d)", i, c, workers, n)
			}
			if workers > n {
				require.Equal(t, n, table.Active())
			}
		}
	}
}

func TestOwnerOutOfRange(t *testing.T) {
	t.Parallel()

	table, err := partition.New(3, 7)
	require.NoError(t, err)
	require.Equal(t, -1, table.Owner(-1))
	require.Equal(t, -1, table.Owner(7))
	require.Equal(t, 2, table.Owner(6))
}

func TestRangeHelpers(t *testing.T) {
	t.Parallel()

	r := partition.Range{Lo: 2, Hi: 5}
	require.Equal(t, 3, r.Len())
	require.False(t, r.Empty())
	require.True(t, r.Contains(2))
	require.False(t, r.Contains(5))
	require.Equal(t, "[2,5)", r.String())
	require.True(t, partition.Range{Lo: 4, Hi: 4}.Empty())
}
