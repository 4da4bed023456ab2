package schedule

import (
	"courtside/app_error"
)

// MaxPools is bounded by the pool naming scheme (letters a-z).
const MaxPools = 26

// SnakeDistribute places overall seeds 1..teamCount into poolCount pools in
// snake order: seed 1 to pool 1, seed 2 to pool 2, ..., then direction
// reverses at each end so the strongest pools also pick up the weakest seeds.
// When teamCount does not divide evenly, leading pools take the extra teams
// and the walk skips pools that are already full, so trailing pools end up
// one team short and sizes never differ by more than one.
//
// Pure and deterministic; repeated calls with the same inputs return the
// same placement.
func SnakeDistribute(teamCount int, poolCount int) ([][]int, error) {
	if teamCount < 1 {
		return nil, app_error.Validationf("Cannot distribute %d teams.", teamCount)
	}
	if poolCount < 1 {
		return nil, app_error.Validationf("Pool count must be at least 1.")
	}
	if poolCount > MaxPools {
		return nil, app_error.Validationf("Pool count must be at most %d; pools are lettered a-z.", MaxPools)
	}
	if poolCount > teamCount {
		return nil, app_error.Validationf("Cannot split %d teams into %d pools.", teamCount, poolCount)
	}

	capacity := make([]int, poolCount)
	for i := range capacity {
		capacity[i] = teamCount / poolCount
		if i < teamCount%poolCount {
			capacity[i]++
		}
	}

	pools := make([][]int, poolCount)
	pos, dir := 0, 1
	for seed := 1; seed <= teamCount; {
		if len(pools[pos]) < capacity[pos] {
			pools[pos] = append(pools[pos], seed)
			seed++
		}
		if pos+dir < 0 || pos+dir >= poolCount {
			dir = -dir
		} else {
			pos += dir
		}
	}
	return pools, nil
}
