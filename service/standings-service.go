package service

import (
	"errors"

	"courtside/app_error"
	"courtside/repository"
	"courtside/schedule"

	"gorm.io/gorm"
)

type StandingsService struct {
	db                 *gorm.DB
	divisionRepository *repository.DivisionRepository
	poolRepository     *repository.PoolRepository
	eventService       *EventService
}

func NewStandingsService(db *gorm.DB) *StandingsService {
	return &StandingsService{
		db:                 db,
		divisionRepository: repository.NewDivisionRepository(db),
		poolRepository:     repository.NewPoolRepository(db),
		eventService:       NewEventService(),
	}
}

// GetPoolStandings returns the live ranking for one pool without writing
// anything back. Empty slice while no match has been completed.
func (s *StandingsService) GetPoolStandings(poolId int) ([]*schedule.TeamStanding, error) {
	pool, err := s.poolRepository.GetPoolById(poolId, "Teams", "Teams.Team", "Matches", "Matches.Sets")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, app_error.NotFoundf("Pool %d not found.", poolId)
		}
		return nil, err
	}
	standings, err := schedule.CalculateStandings(pool.Teams, pool.Matches)
	if err != nil {
		return nil, err
	}
	if standings == nil {
		return []*schedule.TeamStanding{}, nil
	}
	return schedule.Ranked(standings), nil
}

// CompleteDivision computes final pool ranks and records them as each team's
// finish, for every pool in the division with at least one completed match,
// in a single transaction. Pools with no completed matches are skipped, not
// failed, so a division can be closed out with an unplayed pool left behind.
func (s *StandingsService) CompleteDivision(divisionId int) (int, error) {
	division, err := s.divisionRepository.GetDivisionById(divisionId,
		"Pools", "Pools.Teams", "Pools.Teams.Team", "Pools.Matches", "Pools.Matches.Sets")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, app_error.NotFoundf("Division %d not found.", divisionId)
		}
		return 0, err
	}
	if len(division.Pools) == 0 {
		return 0, app_error.Validationf("Division %q has no pools.", division.Name)
	}

	finishes := make(map[int]int)
	for _, pool := range division.Pools {
		standings, err := schedule.CalculateStandings(pool.Teams, pool.Matches)
		if err != nil {
			return 0, err
		}
		if standings == nil {
			continue
		}
		for teamId, standing := range standings {
			finishes[teamId] = standing.Rank
		}
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		teamRepository := repository.NewTeamRepository(tx)
		for teamId, rank := range finishes {
			if err := teamRepository.UpdateFinish(teamId, rank); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	s.eventService.Publish(division.TournamentId, EventDivisionCompleted, divisionId)
	return len(finishes), nil
}
