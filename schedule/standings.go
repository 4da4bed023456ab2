package schedule

import (
	"courtside/app_error"
	"courtside/repository"
	"sort"
)

type TeamStanding struct {
	TeamId            int `json:"team_id"`
	Wins              int `json:"wins"`
	Losses            int `json:"losses"`
	SetsWon           int `json:"sets_won"`
	SetsLost          int `json:"sets_lost"`
	PointDifferential int `json:"point_differential"`
	Rank              int `json:"rank"`
}

// CalculateStandings ranks a pool's teams from its completed matches.
// Ordering: match wins, then head-to-head when exactly two teams are tied,
// then aggregate point differential, then division seed. Returns nil when no
// match in the pool has been completed; partially played pools rank with
// whatever results exist. Errors only on structurally broken data.
func CalculateStandings(poolTeams []*repository.PoolTeam, matches []*repository.PoolMatch) (map[int]*TeamStanding, error) {
	standings := make(map[int]*TeamStanding)
	divisionSeed := make(map[int]int)
	for _, poolTeam := range poolTeams {
		standings[poolTeam.TeamId] = &TeamStanding{TeamId: poolTeam.TeamId}
		seed := 1 << 30
		if poolTeam.Team != nil && poolTeam.Team.Seed != nil {
			seed = *poolTeam.Team.Seed
		}
		divisionSeed[poolTeam.TeamId] = seed
	}

	// winnerOf[a][b] = winner of the completed match between a and b
	winnerOf := make(map[int]map[int]int)
	completed := 0
	for _, match := range matches {
		for _, set := range match.Sets {
			if set.TeamAScore == nil || set.TeamBScore == nil {
				continue
			}
			if *set.TeamAScore == *set.TeamBScore {
				return nil, app_error.Integrityf("set %d of match %d is scored but has no winner", set.SetNumber, match.Id)
			}
			teamA, okA := standings[match.TeamAId]
			teamB, okB := standings[match.TeamBId]
			if !okA || !okB {
				return nil, app_error.Integrityf("match %d references a team outside the pool", match.Id)
			}
			teamA.PointDifferential += *set.TeamAScore - *set.TeamBScore
			teamB.PointDifferential += *set.TeamBScore - *set.TeamAScore
			if *set.TeamAScore > *set.TeamBScore {
				teamA.SetsWon++
				teamB.SetsLost++
			} else {
				teamB.SetsWon++
				teamA.SetsLost++
			}
		}

		if match.Status == repository.MatchStatusCompleted && match.WinnerId == nil {
			return nil, app_error.Integrityf("match %d is completed but has no winner", match.Id)
		}
		if match.WinnerId == nil {
			continue
		}
		winner, ok := standings[*match.WinnerId]
		if !ok {
			return nil, app_error.Integrityf("match %d was won by a team outside the pool", match.Id)
		}
		loserId := match.TeamAId
		if *match.WinnerId == match.TeamAId {
			loserId = match.TeamBId
		}
		loser, ok := standings[loserId]
		if !ok {
			return nil, app_error.Integrityf("match %d references a team outside the pool", match.Id)
		}
		winner.Wins++
		loser.Losses++
		if winnerOf[match.TeamAId] == nil {
			winnerOf[match.TeamAId] = make(map[int]int)
		}
		if winnerOf[match.TeamBId] == nil {
			winnerOf[match.TeamBId] = make(map[int]int)
		}
		winnerOf[match.TeamAId][match.TeamBId] = *match.WinnerId
		winnerOf[match.TeamBId][match.TeamAId] = *match.WinnerId
		completed++
	}

	if completed == 0 {
		return nil, nil
	}

	ranked := make([]*TeamStanding, 0, len(standings))
	for _, standing := range standings {
		ranked = append(ranked, standing)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Wins != ranked[j].Wins {
			return ranked[i].Wins > ranked[j].Wins
		}
		if ranked[i].PointDifferential != ranked[j].PointDifferential {
			return ranked[i].PointDifferential > ranked[j].PointDifferential
		}
		return divisionSeed[ranked[i].TeamId] < divisionSeed[ranked[j].TeamId]
	})

	// Head-to-head applies only to exactly-two-way win ties; a mini-table of
	// three or more tied teams can be cyclic, so larger groups keep the
	// differential ordering.
	for start := 0; start < len(ranked); {
		end := start
		for end+1 < len(ranked) && ranked[end+1].Wins == ranked[start].Wins {
			end++
		}
		if end == start+1 {
			upper, lower := ranked[start], ranked[end]
			if winner, ok := winnerOf[upper.TeamId][lower.TeamId]; ok && winner == lower.TeamId {
				ranked[start], ranked[end] = lower, upper
			}
		}
		start = end + 1
	}

	for i, standing := range ranked {
		standing.Rank = i + 1
	}
	return standings, nil
}

// Ranked flattens a standings map into rank order.
func Ranked(standings map[int]*TeamStanding) []*TeamStanding {
	ranked := make([]*TeamStanding, 0, len(standings))
	for _, standing := range standings {
		ranked = append(ranked, standing)
	}
	sort.Slice(ranked, func(i, j int) bool {
		return ranked[i].Rank < ranked[j].Rank
	})
	return ranked
}
