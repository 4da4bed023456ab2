package schedule

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnakeDistributeNineTeamsThreePools(t *testing.T) {
	pools, err := SnakeDistribute(9, 3)
	assert.NoError(t, err)
	assert.Equal(t, [][]int{
		{1, 6, 7},
		{2, 5, 8},
		{3, 4, 9},
	}, pools)
}

func TestSnakeDistributeUnevenTeamCount(t *testing.T) {
	// 10 teams into 3 pools: the first pool takes the extra team, the
	// trailing pools stay one short.
	pools, err := SnakeDistribute(10, 3)
	assert.NoError(t, err)
	assert.Len(t, pools[0], 4)
	assert.Len(t, pools[1], 3)
	assert.Len(t, pools[2], 3)
}

func TestSnakeDistributeCoversEverySeedOnce(t *testing.T) {
	for teamCount := 1; teamCount <= 40; teamCount++ {
		maxPools := min(teamCount, MaxPools)
		for poolCount := 1; poolCount <= maxPools; poolCount++ {
			t.Run(fmt.Sprintf("%d teams %d pools", teamCount, poolCount), func(t *testing.T) {
				pools, err := SnakeDistribute(teamCount, poolCount)
				assert.NoError(t, err)
				assert.Len(t, pools, poolCount)

				seen := make(map[int]bool)
				minSize, maxSize := teamCount, 0
				for _, pool := range pools {
					if len(pool) < minSize {
						minSize = len(pool)
					}
					if len(pool) > maxSize {
						maxSize = len(pool)
					}
					for _, seed := range pool {
						assert.False(t, seen[seed], "seed %d placed twice", seed)
						seen[seed] = true
					}
				}
				assert.Len(t, seen, teamCount, "every seed should be placed exactly once")
				assert.LessOrEqual(t, maxSize-minSize, 1, "pool sizes should differ by at most one")
			})
		}
	}
}

func TestSnakeDistributeIsDeterministic(t *testing.T) {
	first, err := SnakeDistribute(17, 4)
	assert.NoError(t, err)
	second, err := SnakeDistribute(17, 4)
	assert.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSnakeDistributeRejectsBadInput(t *testing.T) {
	_, err := SnakeDistribute(0, 1)
	assert.Error(t, err)
	_, err = SnakeDistribute(5, 0)
	assert.Error(t, err)
	_, err = SnakeDistribute(5, 6)
	assert.Error(t, err)
	_, err = SnakeDistribute(100, MaxPools+1)
	assert.Error(t, err)
}
