package service

import (
	"courtside/repository"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScheduleTournamentFullRoundRobin(t *testing.T) {
	division := SetUp(16, 0, 10)
	defer TearDown()

	poolService := NewPoolService(db)
	pools, err := poolService.BuildPools(division.Id, 2, false)
	assert.NoError(t, err)
	assert.Len(t, pools, 2)

	matchService := NewMatchService(db)
	created, err := matchService.ScheduleTournament(division.TournamentId, false)
	assert.NoError(t, err)
	assert.Equal(t, 20, created, "two pools of five play ten matches each")

	for _, pool := range pools {
		matches, err := matchService.GetMatchesForPool(pool.Id)
		assert.NoError(t, err)
		assert.Len(t, matches, 10)
		for _, match := range matches {
			assert.Equal(t, repository.MatchStatusScheduled, match.Status)
			assert.Len(t, match.Sets, 1, "five-team pools play a single set")
			assert.Equal(t, 21, match.Sets[0].WinScore)
			assert.Len(t, match.RefTeams, 1)
			assert.NotEqual(t, match.TeamAId, match.RefTeams[0].TeamId)
			assert.NotEqual(t, match.TeamBId, match.RefTeams[0].TeamId)
			if match.MatchNumber == 1 {
				assert.NotNil(t, match.ScheduledTime, "the opener carries the division start time")
				assert.InDelta(t, division.StartTime.Unix(), match.ScheduledTime.Unix(), 1)
			} else {
				assert.Nil(t, match.ScheduledTime)
			}
		}
	}
}

func TestScheduleTournamentThreeTeamPoolsPlayThreeSets(t *testing.T) {
	division := SetUp(16, 0, 6)
	defer TearDown()

	poolService := NewPoolService(db)
	pools, err := poolService.BuildPools(division.Id, 2, false)
	assert.NoError(t, err)

	matchService := NewMatchService(db)
	created, err := matchService.ScheduleTournament(division.TournamentId, false)
	assert.NoError(t, err)
	assert.Equal(t, 6, created)

	matches, err := matchService.GetMatchesForPool(pools[0].Id)
	assert.NoError(t, err)
	assert.Len(t, matches, 3)
	for _, match := range matches {
		assert.Len(t, match.Sets, 3)
		winScores := []int{match.Sets[0].WinScore, match.Sets[1].WinScore, match.Sets[2].WinScore}
		assert.ElementsMatch(t, []int{25, 25, 15}, winScores)
	}
}

func TestScheduleTournamentRejectsUnsupportedPoolSize(t *testing.T) {
	division := SetUp(16, 0, 8)
	defer TearDown()

	poolService := NewPoolService(db)
	_, err := poolService.BuildPools(division.Id, 1, false)
	assert.NoError(t, err)

	matchService := NewMatchService(db)
	_, err = matchService.ScheduleTournament(division.TournamentId, false)
	assert.Error(t, err, "an eight-team pool has no round-robin table")

	// nothing should have been written
	matches := make([]*repository.PoolMatch, 0)
	db.Find(&matches)
	assert.Empty(t, matches)
}

func TestScheduleTournamentRequiresOverwrite(t *testing.T) {
	division := SetUp(16, 0, 10)
	defer TearDown()

	poolService := NewPoolService(db)
	pools, err := poolService.BuildPools(division.Id, 2, false)
	assert.NoError(t, err)

	matchService := NewMatchService(db)
	_, err = matchService.ScheduleTournament(division.TournamentId, false)
	assert.NoError(t, err)

	_, err = matchService.ScheduleTournament(division.TournamentId, false)
	assert.Error(t, err)

	created, err := matchService.ScheduleTournament(division.TournamentId, true)
	assert.NoError(t, err)
	assert.Equal(t, 20, created)

	for _, pool := range pools {
		matches, err := matchService.GetMatchesForPool(pool.Id)
		assert.NoError(t, err)
		assert.Len(t, matches, 10, "overwrite should replace the schedule, not extend it")
	}
}

func TestRecordSetScoreCompletesSingleSetMatch(t *testing.T) {
	division := SetUp(16, 0, 5)
	defer TearDown()

	poolService := NewPoolService(db)
	pools, err := poolService.BuildPools(division.Id, 1, false)
	assert.NoError(t, err)

	matchService := NewMatchService(db)
	_, err = matchService.ScheduleTournament(division.TournamentId, false)
	assert.NoError(t, err)

	matches, err := matchService.GetMatchesForPool(pools[0].Id)
	assert.NoError(t, err)
	match := matches[0]

	updated, err := matchService.RecordSetScore(match.Id, 1, 21, 15)
	assert.NoError(t, err)
	assert.Equal(t, repository.MatchStatusCompleted, updated.Status)
	assert.NotNil(t, updated.WinnerId)
	assert.Equal(t, match.TeamAId, *updated.WinnerId)

	stored, err := repository.NewMatchRepository(db).GetMatchById(match.Id, "Sets")
	assert.NoError(t, err)
	assert.Equal(t, repository.MatchStatusCompleted, stored.Status)
	assert.Equal(t, 21, *stored.Sets[0].TeamAScore)
	assert.Equal(t, 15, *stored.Sets[0].TeamBScore)
}

func TestRecordSetScoreBestOfThree(t *testing.T) {
	division := SetUp(16, 0, 3)
	defer TearDown()

	poolService := NewPoolService(db)
	pools, err := poolService.BuildPools(division.Id, 1, false)
	assert.NoError(t, err)

	matchService := NewMatchService(db)
	_, err = matchService.ScheduleTournament(division.TournamentId, false)
	assert.NoError(t, err)

	matches, err := matchService.GetMatchesForPool(pools[0].Id)
	assert.NoError(t, err)
	match := matches[0]

	updated, err := matchService.RecordSetScore(match.Id, 1, 25, 20)
	assert.NoError(t, err)
	assert.Equal(t, repository.MatchStatusInProgress, updated.Status)
	assert.Nil(t, updated.WinnerId)

	updated, err = matchService.RecordSetScore(match.Id, 2, 25, 18)
	assert.NoError(t, err)
	assert.Equal(t, repository.MatchStatusCompleted, updated.Status)
	assert.NotNil(t, updated.WinnerId)
	assert.Equal(t, match.TeamAId, *updated.WinnerId)
}

func TestRecordSetScoreRejectsBadInput(t *testing.T) {
	division := SetUp(16, 0, 5)
	defer TearDown()

	poolService := NewPoolService(db)
	pools, err := poolService.BuildPools(division.Id, 1, false)
	assert.NoError(t, err)

	matchService := NewMatchService(db)
	_, err = matchService.ScheduleTournament(division.TournamentId, false)
	assert.NoError(t, err)
	matches, err := matchService.GetMatchesForPool(pools[0].Id)
	assert.NoError(t, err)
	match := matches[0]

	_, err = matchService.RecordSetScore(match.Id, 1, 21, 21)
	assert.Error(t, err, "a set cannot end in a tie")
	_, err = matchService.RecordSetScore(match.Id, 1, -1, 21)
	assert.Error(t, err)
	_, err = matchService.RecordSetScore(match.Id, 2, 21, 15)
	assert.Error(t, err, "five-team pools play a single set")
}

func TestAbandonRefWithReplacement(t *testing.T) {
	division := SetUp(16, 0, 5)
	defer TearDown()

	poolService := NewPoolService(db)
	pools, err := poolService.BuildPools(division.Id, 1, false)
	assert.NoError(t, err)

	matchService := NewMatchService(db)
	_, err = matchService.ScheduleTournament(division.TournamentId, false)
	assert.NoError(t, err)
	matches, err := matchService.GetMatchesForPool(pools[0].Id)
	assert.NoError(t, err)
	match := matches[0]
	originalRef := match.RefTeams[0].TeamId

	// some pool team that is neither playing nor currently refereeing
	pool, err := repository.NewPoolRepository(db).GetPoolById(pools[0].Id, "Teams")
	assert.NoError(t, err)
	var replacementId int
	for _, poolTeam := range pool.Teams {
		if poolTeam.TeamId != match.TeamAId && poolTeam.TeamId != match.TeamBId && poolTeam.TeamId != originalRef {
			replacementId = poolTeam.TeamId
			break
		}
	}
	assert.NotZero(t, replacementId)

	// a playing team cannot take over
	_, err = matchService.AbandonRef(match.Id, &match.TeamAId)
	assert.Error(t, err)

	replacement, err := matchService.AbandonRef(match.Id, &replacementId)
	assert.NoError(t, err)
	assert.Equal(t, replacementId, replacement.TeamId)
	assert.False(t, replacement.Abandoned)

	active, err := repository.NewMatchRepository(db).GetActiveRefTeam(match.Id)
	assert.NoError(t, err)
	assert.Equal(t, replacementId, active.TeamId)
}

func TestAbandonRefWithoutReplacement(t *testing.T) {
	division := SetUp(16, 0, 4)
	defer TearDown()

	poolService := NewPoolService(db)
	pools, err := poolService.BuildPools(division.Id, 1, false)
	assert.NoError(t, err)

	matchService := NewMatchService(db)
	_, err = matchService.ScheduleTournament(division.TournamentId, false)
	assert.NoError(t, err)
	matches, err := matchService.GetMatchesForPool(pools[0].Id)
	assert.NoError(t, err)
	match := matches[0]

	abandoned, err := matchService.AbandonRef(match.Id, nil)
	assert.NoError(t, err)
	assert.True(t, abandoned.Abandoned)

	_, err = matchService.AbandonRef(match.Id, nil)
	assert.Error(t, err, "no active assignment remains")
}
