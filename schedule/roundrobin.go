package schedule

import (
	"courtside/app_error"
)

// MatchSlot is one match of a pool's round robin, expressed in pool-local
// seed slots rather than team ids.
type MatchSlot struct {
	TeamA int
	TeamB int
	Ref   int
}

// Table is the fixed play and officiating order for one pool size. The
// referee rotations are hand-balanced: every team referees before anyone
// referees twice, and totals differ by at most one. Treat changes here as a
// data migration, not a code change.
type Table struct {
	Matches      []MatchSlot
	SetWinScores []int
}

var tables = map[int]Table{
	3: {
		// Three-team pools play three sets per match, third set shortened.
		SetWinScores: []int{25, 25, 15},
		Matches: []MatchSlot{
			{TeamA: 1, TeamB: 2, Ref: 3},
			{TeamA: 1, TeamB: 3, Ref: 2},
			{TeamA: 2, TeamB: 3, Ref: 1},
		},
	},
	4: {
		SetWinScores: []int{25},
		Matches: []MatchSlot{
			{TeamA: 1, TeamB: 2, Ref: 3},
			{TeamA: 3, TeamB: 4, Ref: 2},
			{TeamA: 1, TeamB: 3, Ref: 4},
			{TeamA: 2, TeamB: 4, Ref: 1},
			{TeamA: 1, TeamB: 4, Ref: 2},
			{TeamA: 2, TeamB: 3, Ref: 4},
		},
	},
	5: {
		SetWinScores: []int{21},
		Matches: []MatchSlot{
			{TeamA: 2, TeamB: 5, Ref: 3},
			{TeamA: 3, TeamB: 4, Ref: 1},
			{TeamA: 1, TeamB: 5, Ref: 4},
			{TeamA: 2, TeamB: 3, Ref: 5},
			{TeamA: 1, TeamB: 4, Ref: 2},
			{TeamA: 3, TeamB: 5, Ref: 4},
			{TeamA: 1, TeamB: 2, Ref: 3},
			{TeamA: 2, TeamB: 4, Ref: 5},
			{TeamA: 1, TeamB: 3, Ref: 2},
			{TeamA: 4, TeamB: 5, Ref: 1},
		},
	},
	6: {
		SetWinScores: []int{21},
		Matches: []MatchSlot{
			{TeamA: 1, TeamB: 6, Ref: 4},
			{TeamA: 2, TeamB: 5, Ref: 6},
			{TeamA: 3, TeamB: 4, Ref: 2},
			{TeamA: 1, TeamB: 5, Ref: 3},
			{TeamA: 4, TeamB: 6, Ref: 5},
			{TeamA: 2, TeamB: 3, Ref: 1},
			{TeamA: 1, TeamB: 4, Ref: 6},
			{TeamA: 3, TeamB: 5, Ref: 4},
			{TeamA: 2, TeamB: 6, Ref: 5},
			{TeamA: 1, TeamB: 3, Ref: 2},
			{TeamA: 2, TeamB: 4, Ref: 1},
			{TeamA: 5, TeamB: 6, Ref: 3},
			{TeamA: 1, TeamB: 2, Ref: 5},
			{TeamA: 3, TeamB: 6, Ref: 4},
			{TeamA: 4, TeamB: 5, Ref: 2},
		},
	},
	7: {
		SetWinScores: []int{15},
		Matches: []MatchSlot{
			{TeamA: 2, TeamB: 7, Ref: 1},
			{TeamA: 3, TeamB: 6, Ref: 5},
			{TeamA: 4, TeamB: 5, Ref: 6},
			{TeamA: 1, TeamB: 7, Ref: 4},
			{TeamA: 2, TeamB: 5, Ref: 3},
			{TeamA: 3, TeamB: 4, Ref: 7},
			{TeamA: 1, TeamB: 6, Ref: 2},
			{TeamA: 5, TeamB: 7, Ref: 6},
			{TeamA: 2, TeamB: 3, Ref: 1},
			{TeamA: 1, TeamB: 5, Ref: 7},
			{TeamA: 4, TeamB: 6, Ref: 2},
			{TeamA: 3, TeamB: 7, Ref: 5},
			{TeamA: 1, TeamB: 4, Ref: 3},
			{TeamA: 3, TeamB: 5, Ref: 4},
			{TeamA: 2, TeamB: 6, Ref: 5},
			{TeamA: 1, TeamB: 3, Ref: 4},
			{TeamA: 2, TeamB: 4, Ref: 6},
			{TeamA: 6, TeamB: 7, Ref: 1},
			{TeamA: 1, TeamB: 2, Ref: 7},
			{TeamA: 4, TeamB: 7, Ref: 3},
			{TeamA: 5, TeamB: 6, Ref: 2},
		},
	},
}

// TableForSize returns the fixed round-robin table for a pool size. Sizes
// outside 3..7 have no fair officiated rotation, so lookup is a hard error
// rather than a fallback.
func TableForSize(size int) (*Table, error) {
	table, ok := tables[size]
	if !ok {
		return nil, app_error.Validationf("Invalid pool size %d; expected 3, 4, 5, 6, or 7.", size)
	}
	return &table, nil
}
