package service

import (
	"errors"

	"courtside/app_error"
	"courtside/metrics"
	"courtside/repository"
	"courtside/schedule"

	"gorm.io/gorm"
)

type PoolService struct {
	db                 *gorm.DB
	divisionRepository *repository.DivisionRepository
	teamRepository     *repository.TeamRepository
	poolRepository     *repository.PoolRepository
	eventService       *EventService
}

func NewPoolService(db *gorm.DB) *PoolService {
	return &PoolService{
		db:                 db,
		divisionRepository: repository.NewDivisionRepository(db),
		teamRepository:     repository.NewTeamRepository(db),
		poolRepository:     repository.NewPoolRepository(db),
		eventService:       NewEventService(),
	}
}

// BuildPools distributes a division's seeded teams into poolCount pools via
// snake draft. Overwrite tears down the existing pools first; everything
// hanging off them goes too. The rebuild is a single transaction, so readers
// never see a partial pool set.
func (s *PoolService) BuildPools(divisionId int, poolCount int, overwrite bool) ([]*repository.Pool, error) {
	division, err := s.divisionRepository.GetDivisionById(divisionId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, app_error.NotFoundf("Division %d not found.", divisionId)
		}
		return nil, err
	}
	if poolCount > schedule.MaxPools {
		return nil, app_error.Capacityf("A division holds at most %d pools.", schedule.MaxPools)
	}

	existing, err := s.poolRepository.GetPoolsForDivision(divisionId)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 && !overwrite {
		return nil, app_error.Validationf("Division %q already has pools; request overwrite to rebuild them.", division.Name)
	}

	var pools []*repository.Pool
	err = s.db.Transaction(func(tx *gorm.DB) error {
		pools, err = s.buildPools(tx, division, poolCount)
		return err
	})
	if err != nil {
		return nil, err
	}
	metrics.PoolsRebuiltCounter.Inc()
	s.eventService.Publish(division.TournamentId, EventPoolsRebuilt, divisionId)
	return pools, nil
}

// buildPools runs inside the caller's transaction so waitlist promotion can
// fold a full rebuild into its own atomic operation.
func (s *PoolService) buildPools(tx *gorm.DB, division *repository.TournamentDivision, poolCount int) ([]*repository.Pool, error) {
	teamRepository := repository.NewTeamRepository(tx)
	poolRepository := repository.NewPoolRepository(tx)

	teams, err := teamRepository.GetSeededTeamsForDivision(division.Id)
	if err != nil {
		return nil, err
	}
	if len(teams) == 0 {
		return nil, app_error.Validationf("Division %q has no registered teams.", division.Name)
	}
	for _, team := range teams {
		if team.Seed == nil {
			return nil, app_error.Validationf("Team %q has no seed; seed the division before building pools.", team.Name)
		}
	}

	distribution, err := schedule.SnakeDistribute(len(teams), poolCount)
	if err != nil {
		return nil, err
	}

	if err := poolRepository.DeletePoolsForDivision(division.Id); err != nil {
		return nil, err
	}

	pools := make([]*repository.Pool, poolCount)
	for i := range pools {
		pools[i] = &repository.Pool{
			DivisionId: division.Id,
			Name:       string(rune('a' + i)),
		}
	}
	if err := poolRepository.CreatePools(pools); err != nil {
		return nil, err
	}

	poolTeams := make([]*repository.PoolTeam, 0, len(teams))
	for poolIndex, positions := range distribution {
		for localIndex, position := range positions {
			// positions index the seed-ordered team list, so pool-local
			// seed 1 is always the pool's strongest division seed
			poolTeams = append(poolTeams, &repository.PoolTeam{
				PoolId: pools[poolIndex].Id,
				TeamId: teams[position-1].Id,
				Seed:   localIndex + 1,
			})
		}
	}
	if err := poolRepository.CreatePoolTeams(poolTeams); err != nil {
		return nil, err
	}
	return pools, nil
}

func (s *PoolService) GetPoolsForDivision(divisionId int) ([]*repository.Pool, error) {
	return s.poolRepository.GetPoolsForDivision(divisionId, "Teams", "Teams.Team")
}

func (s *PoolService) AssignCourt(poolId int, court string) (*repository.Pool, error) {
	pool, err := s.poolRepository.GetPoolById(poolId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, app_error.NotFoundf("Pool %d not found.", poolId)
		}
		return nil, err
	}
	pool.Court = &court
	return s.poolRepository.Save(pool)
}
