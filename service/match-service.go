package service

import (
	"errors"
	"fmt"
	"time"

	"courtside/app_error"
	"courtside/metrics"
	"courtside/repository"
	"courtside/schedule"

	"gorm.io/gorm"
)

type MatchService struct {
	db                   *gorm.DB
	tournamentRepository *repository.TournamentRepository
	poolRepository       *repository.PoolRepository
	matchRepository      *repository.MatchRepository
	eventService         *EventService
}

func NewMatchService(db *gorm.DB) *MatchService {
	return &MatchService{
		db:                   db,
		tournamentRepository: repository.NewTournamentRepository(db),
		poolRepository:       repository.NewPoolRepository(db),
		matchRepository:      repository.NewMatchRepository(db),
		eventService:         NewEventService(),
	}
}

// ScheduleTournament writes the full round-robin schedule for every pool in
// every division of the tournament: matches, their sets, and referee
// assignments, all in one transaction so no division is left half-scheduled.
func (s *MatchService) ScheduleTournament(tournamentId int, overwrite bool) (int, error) {
	start := time.Now()
	tournament, err := s.tournamentRepository.GetTournamentById(tournamentId,
		"Divisions", "Divisions.Pools", "Divisions.Pools.Teams", "Divisions.Pools.Matches")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, app_error.NotFoundf("Tournament %d not found.", tournamentId)
		}
		return 0, err
	}

	matchCount := 0
	err = s.db.Transaction(func(tx *gorm.DB) error {
		matchRepository := repository.NewMatchRepository(tx)
		for _, division := range tournament.Divisions {
			if len(division.Pools) == 0 {
				return app_error.Validationf("Division %q has no pools; build pools before scheduling.", division.Name)
			}
			poolIds := make([]int, 0, len(division.Pools))
			scheduled := 0
			for _, pool := range division.Pools {
				poolIds = append(poolIds, pool.Id)
				scheduled += len(pool.Matches)
			}
			if scheduled > 0 {
				if !overwrite {
					return app_error.Validationf("Division %q is already scheduled; request overwrite to rebuild.", division.Name)
				}
				if err := matchRepository.DeleteMatchesForPools(poolIds); err != nil {
					return err
				}
			}
			for _, pool := range division.Pools {
				created, err := s.schedulePool(matchRepository, division, pool)
				if err != nil {
					return err
				}
				matchCount += created
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	metrics.MatchesScheduledCounter.Add(float64(matchCount))
	metrics.ScheduleBuildDuration.WithLabelValues(fmt.Sprint(tournamentId)).Set(time.Since(start).Seconds())
	s.eventService.Publish(tournamentId, EventSchedulePublished, 0)
	return matchCount, nil
}

func (s *MatchService) schedulePool(matchRepository *repository.MatchRepository, division *repository.TournamentDivision, pool *repository.Pool) (int, error) {
	table, err := schedule.TableForSize(len(pool.Teams))
	if err != nil {
		return 0, err
	}
	teamBySlot := make(map[int]int, len(pool.Teams))
	for _, poolTeam := range pool.Teams {
		teamBySlot[poolTeam.Seed] = poolTeam.TeamId
	}

	matches := make([]*repository.PoolMatch, 0, len(table.Matches))
	refTeamIds := make([]int, 0, len(table.Matches))
	for i, slot := range table.Matches {
		teamAId, okA := teamBySlot[slot.TeamA]
		teamBId, okB := teamBySlot[slot.TeamB]
		refId, okRef := teamBySlot[slot.Ref]
		if !okA || !okB || !okRef {
			return 0, app_error.Integrityf("pool %q of division %q has no team for a scheduled seed slot", pool.Name, division.Name)
		}
		match := &repository.PoolMatch{
			PoolId:      pool.Id,
			MatchNumber: i + 1,
			TeamAId:     teamAId,
			TeamBId:     teamBId,
			Status:      repository.MatchStatusScheduled,
		}
		// only the opener gets a time; courts and later slots are assigned
		// by hand at the venue
		if i == 0 && !division.StartTime.IsZero() {
			startTime := division.StartTime
			match.ScheduledTime = &startTime
		}
		matches = append(matches, match)
		refTeamIds = append(refTeamIds, refId)
	}
	if err := matchRepository.CreateMatches(matches); err != nil {
		return 0, err
	}

	sets := make([]*repository.MatchSet, 0, len(matches)*len(table.SetWinScores))
	refTeams := make([]*repository.MatchRefTeam, 0, len(matches))
	for i, match := range matches {
		for setIndex, winScore := range table.SetWinScores {
			sets = append(sets, &repository.MatchSet{
				PoolMatchId: match.Id,
				SetNumber:   setIndex + 1,
				WinScore:    winScore,
			})
		}
		refTeams = append(refTeams, &repository.MatchRefTeam{
			PoolMatchId: match.Id,
			TeamId:      refTeamIds[i],
		})
	}
	if err := matchRepository.CreateSets(sets); err != nil {
		return 0, err
	}
	if err := matchRepository.CreateRefTeams(refTeams); err != nil {
		return 0, err
	}
	return len(matches), nil
}

func (s *MatchService) GetMatchesForPool(poolId int) ([]*repository.PoolMatch, error) {
	return s.matchRepository.GetMatchesForPool(poolId, "Sets", "RefTeams")
}

// RecordSetScore enters a final set score and rolls the result up to the
// match: once a side has the majority of sets, the match is completed and
// its winner recorded.
func (s *MatchService) RecordSetScore(matchId int, setNumber int, teamAScore int, teamBScore int) (*repository.PoolMatch, error) {
	if teamAScore < 0 || teamBScore < 0 {
		return nil, app_error.Validationf("Scores must be non-negative.")
	}
	if teamAScore == teamBScore {
		return nil, app_error.Validationf("A set cannot end in a tie.")
	}
	match, err := s.matchRepository.GetMatchById(matchId, "Sets")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, app_error.NotFoundf("Match %d not found.", matchId)
		}
		return nil, err
	}
	var target *repository.MatchSet
	for _, set := range match.Sets {
		if set.SetNumber == setNumber {
			target = set
			break
		}
	}
	if target == nil {
		return nil, app_error.Validationf("Match %d has no set %d.", matchId, setNumber)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		matchRepository := repository.NewMatchRepository(tx)
		target.TeamAScore = &teamAScore
		target.TeamBScore = &teamBScore
		winnerId := match.TeamAId
		if teamBScore > teamAScore {
			winnerId = match.TeamBId
		}
		target.WinnerId = &winnerId
		if _, err := matchRepository.SaveSet(target); err != nil {
			return err
		}

		setsA, setsB := 0, 0
		for _, set := range match.Sets {
			if set.WinnerId == nil {
				continue
			}
			if *set.WinnerId == match.TeamAId {
				setsA++
			} else {
				setsB++
			}
		}
		switch {
		case setsA*2 > len(match.Sets):
			match.WinnerId = &match.TeamAId
			match.Status = repository.MatchStatusCompleted
		case setsB*2 > len(match.Sets):
			match.WinnerId = &match.TeamBId
			match.Status = repository.MatchStatusCompleted
		default:
			match.Status = repository.MatchStatusInProgress
		}
		_, err := matchRepository.SaveMatch(match)
		return err
	})
	if err != nil {
		return nil, err
	}
	return match, nil
}

// AbandonRef marks the active referee assignment as abandoned and, when a
// replacement is given, installs it as the single active assignment.
func (s *MatchService) AbandonRef(matchId int, replacementTeamId *int) (*repository.MatchRefTeam, error) {
	active, err := s.matchRepository.GetActiveRefTeam(matchId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, app_error.NotFoundf("Match %d has no active referee assignment.", matchId)
		}
		return nil, err
	}

	var replacement *repository.MatchRefTeam
	if replacementTeamId != nil {
		match, err := s.matchRepository.GetMatchById(matchId)
		if err != nil {
			return nil, err
		}
		pool, err := s.poolRepository.GetPoolById(match.PoolId, "Teams")
		if err != nil {
			return nil, err
		}
		inPool := false
		for _, poolTeam := range pool.Teams {
			if poolTeam.TeamId == *replacementTeamId {
				inPool = true
				break
			}
		}
		if !inPool {
			return nil, app_error.Validationf("Replacement team %d does not play in this pool.", *replacementTeamId)
		}
		if *replacementTeamId == match.TeamAId || *replacementTeamId == match.TeamBId {
			return nil, app_error.Validationf("A team cannot referee its own match.")
		}
		replacement = &repository.MatchRefTeam{PoolMatchId: matchId, TeamId: *replacementTeamId}
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		matchRepository := repository.NewMatchRepository(tx)
		active.Abandoned = true
		if _, err := matchRepository.SaveRefTeam(active); err != nil {
			return err
		}
		if replacement != nil {
			if _, err := matchRepository.SaveRefTeam(replacement); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if replacement != nil {
		return replacement, nil
	}
	return active, nil
}
