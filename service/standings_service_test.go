package service

import (
	"courtside/repository"
	"testing"

	"github.com/stretchr/testify/assert"
)

// winMatch records a straight two-set win for the given team.
func winMatch(t *testing.T, matchService *MatchService, match *repository.PoolMatch, winnerId int) {
	scoreA, scoreB := 25, 20
	if winnerId == match.TeamBId {
		scoreA, scoreB = 20, 25
	}
	_, err := matchService.RecordSetScore(match.Id, 1, scoreA, scoreB)
	assert.NoError(t, err)
	updated, err := matchService.RecordSetScore(match.Id, 2, scoreA, scoreB)
	assert.NoError(t, err)
	assert.Equal(t, repository.MatchStatusCompleted, updated.Status)
}

func teamIdBySeed(t *testing.T, divisionId int, seed int) int {
	team, err := repository.NewTeamRepository(db).GetTeamBySeed(divisionId, seed)
	if err != nil {
		t.Fatalf("Error loading team at seed %d: %v", seed, err)
	}
	return team.Id
}

func matchBetween(t *testing.T, matches []*repository.PoolMatch, teamOne int, teamTwo int) *repository.PoolMatch {
	for _, match := range matches {
		if (match.TeamAId == teamOne && match.TeamBId == teamTwo) ||
			(match.TeamAId == teamTwo && match.TeamBId == teamOne) {
			return match
		}
	}
	t.Fatalf("No match between teams %d and %d", teamOne, teamTwo)
	return nil
}

func TestGetPoolStandingsEmptyBeforePlay(t *testing.T) {
	division := SetUp(16, 0, 6)
	defer TearDown()

	poolService := NewPoolService(db)
	pools, err := poolService.BuildPools(division.Id, 2, false)
	assert.NoError(t, err)
	matchService := NewMatchService(db)
	_, err = matchService.ScheduleTournament(division.TournamentId, false)
	assert.NoError(t, err)

	standingsService := NewStandingsService(db)
	standings, err := standingsService.GetPoolStandings(pools[0].Id)
	assert.NoError(t, err)
	assert.Empty(t, standings)
}

func TestGetPoolStandingsRanksPlayedPool(t *testing.T) {
	division := SetUp(16, 0, 6)
	defer TearDown()

	poolService := NewPoolService(db)
	pools, err := poolService.BuildPools(division.Id, 2, false)
	assert.NoError(t, err)
	matchService := NewMatchService(db)
	_, err = matchService.ScheduleTournament(division.TournamentId, false)
	assert.NoError(t, err)

	// pool a holds division seeds 1, 4, 5
	seedOne := teamIdBySeed(t, division.Id, 1)
	seedFour := teamIdBySeed(t, division.Id, 4)
	seedFive := teamIdBySeed(t, division.Id, 5)
	matches, err := matchService.GetMatchesForPool(pools[0].Id)
	assert.NoError(t, err)
	assert.Len(t, matches, 3)

	// the underdog sweeps the pool
	winMatch(t, matchService, matchBetween(t, matches, seedOne, seedFour), seedFour)
	winMatch(t, matchService, matchBetween(t, matches, seedOne, seedFive), seedOne)
	winMatch(t, matchService, matchBetween(t, matches, seedFour, seedFive), seedFour)

	standingsService := NewStandingsService(db)
	standings, err := standingsService.GetPoolStandings(pools[0].Id)
	assert.NoError(t, err)
	assert.Len(t, standings, 3)
	assert.Equal(t, seedFour, standings[0].TeamId)
	assert.Equal(t, seedOne, standings[1].TeamId)
	assert.Equal(t, seedFive, standings[2].TeamId)
	for i, standing := range standings {
		assert.Equal(t, i+1, standing.Rank)
	}
}

func TestCompleteDivisionWritesFinishes(t *testing.T) {
	division := SetUp(16, 0, 6)
	defer TearDown()

	poolService := NewPoolService(db)
	pools, err := poolService.BuildPools(division.Id, 2, false)
	assert.NoError(t, err)
	matchService := NewMatchService(db)
	_, err = matchService.ScheduleTournament(division.TournamentId, false)
	assert.NoError(t, err)

	seedOne := teamIdBySeed(t, division.Id, 1)
	seedFour := teamIdBySeed(t, division.Id, 4)
	seedFive := teamIdBySeed(t, division.Id, 5)
	matches, err := matchService.GetMatchesForPool(pools[0].Id)
	assert.NoError(t, err)
	winMatch(t, matchService, matchBetween(t, matches, seedOne, seedFour), seedOne)
	winMatch(t, matchService, matchBetween(t, matches, seedOne, seedFive), seedOne)
	winMatch(t, matchService, matchBetween(t, matches, seedFour, seedFive), seedFour)

	standingsService := NewStandingsService(db)
	finished, err := standingsService.CompleteDivision(division.Id)
	assert.NoError(t, err)
	assert.Equal(t, 3, finished, "only the played pool writes finishes")

	teamRepository := repository.NewTeamRepository(db)
	expected := map[int]int{seedOne: 1, seedFour: 2, seedFive: 3}
	for teamId, rank := range expected {
		team, err := teamRepository.GetTeamById(teamId)
		assert.NoError(t, err)
		assert.NotNil(t, team.Finish)
		assert.Equal(t, rank, *team.Finish)
	}

	// pool b never played; its teams keep a null finish
	for _, seed := range []int{2, 3, 6} {
		team, err := teamRepository.GetTeamById(teamIdBySeed(t, division.Id, seed))
		assert.NoError(t, err)
		assert.Nil(t, team.Finish)
	}
}

func TestCompleteDivisionWithoutPools(t *testing.T) {
	division := SetUp(16, 0, 6)
	defer TearDown()

	standingsService := NewStandingsService(db)
	_, err := standingsService.CompleteDivision(division.Id)
	assert.Error(t, err)
}
