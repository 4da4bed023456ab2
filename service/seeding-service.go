package service

import (
	"errors"

	"courtside/app_error"
	"courtside/repository"

	"gorm.io/gorm"
)

type SeedingService struct {
	db                 *gorm.DB
	teamRepository     *repository.TeamRepository
	divisionRepository *repository.DivisionRepository
	poolRepository     *repository.PoolRepository
	poolService        *PoolService
}

func NewSeedingService(db *gorm.DB) *SeedingService {
	return &SeedingService{
		db:                 db,
		teamRepository:     repository.NewTeamRepository(db),
		divisionRepository: repository.NewDivisionRepository(db),
		poolRepository:     repository.NewPoolRepository(db),
		poolService:        NewPoolService(db),
	}
}

// ReseedTeam moves a team to a seed another team currently holds and gives
// that team the vacated seed. Seeds are unique per division, so the swap runs
// in two phases inside one transaction: the holder parks on a sentinel seed
// (negative of the target, which can never collide with a live seed) until
// the mover has taken its place.
func (s *SeedingService) ReseedTeam(teamId int, newSeed int) (*repository.Team, error) {
	if newSeed < 1 {
		return nil, app_error.Validationf("Seed must be a positive integer.")
	}
	team, err := s.teamRepository.GetTeamById(teamId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, app_error.NotFoundf("Team %d not found.", teamId)
		}
		return nil, err
	}
	if team.Status == repository.TeamStatusWaitlisted {
		return nil, app_error.Validationf("Waitlisted teams hold no seed; promote the team first.")
	}
	if team.Seed == nil {
		return nil, app_error.Validationf("Team %q has not been seeded yet.", team.Name)
	}
	if *team.Seed == newSeed {
		return team, nil
	}

	holder, err := s.teamRepository.GetTeamBySeed(team.DivisionId, newSeed)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, app_error.Validationf("No team holds seed %d in this division; seeds cannot have gaps.", newSeed)
		}
		return nil, err
	}

	oldSeed := *team.Seed
	err = s.db.Transaction(func(tx *gorm.DB) error {
		teamRepository := repository.NewTeamRepository(tx)
		sentinel := -newSeed
		if err := teamRepository.UpdateSeed(holder.Id, &sentinel); err != nil {
			return err
		}
		if err := teamRepository.UpdateSeed(team.Id, &newSeed); err != nil {
			return err
		}
		return teamRepository.UpdateSeed(holder.Id, &oldSeed)
	})
	if err != nil {
		return nil, err
	}
	team.Seed = &newSeed
	return team, nil
}

// MoveSeedUp swaps the team with its next-better-seeded neighbor.
func (s *SeedingService) MoveSeedUp(teamId int) (*repository.Team, error) {
	team, err := s.seededTeam(teamId)
	if err != nil {
		return nil, err
	}
	if *team.Seed == 1 {
		return nil, app_error.Validationf("Team %q already holds seed 1.", team.Name)
	}
	return s.ReseedTeam(teamId, *team.Seed-1)
}

// MoveSeedDown swaps the team with its next-worse-seeded neighbor.
func (s *SeedingService) MoveSeedDown(teamId int) (*repository.Team, error) {
	team, err := s.seededTeam(teamId)
	if err != nil {
		return nil, err
	}
	maxSeed, err := s.teamRepository.MaxSeed(team.DivisionId)
	if err != nil {
		return nil, err
	}
	if *team.Seed >= maxSeed {
		return nil, app_error.Validationf("Team %q already holds the last seed.", team.Name)
	}
	return s.ReseedTeam(teamId, *team.Seed+1)
}

func (s *SeedingService) seededTeam(teamId int) (*repository.Team, error) {
	team, err := s.teamRepository.GetTeamById(teamId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, app_error.NotFoundf("Team %d not found.", teamId)
		}
		return nil, err
	}
	if team.Seed == nil {
		return nil, app_error.Validationf("Team %q has not been seeded yet.", team.Name)
	}
	return team, nil
}

type PromotionOptions struct {
	// Automatic re-seeds and rebuilds the whole division's pools.
	Automatic bool `json:"automatic"`
	// Manual mode: explicit division seed; next available when nil.
	Seed *int `json:"seed"`
	// Manual mode: drop the team straight into a pool.
	PoolId   *int `json:"pool_id"`
	PoolSeed *int `json:"pool_seed"`
}

// PromoteFromWaitlist confirms a waitlisted team. Automatic mode appends the
// team to the seed order and reruns the pool builder over the division;
// manual mode takes an explicit or next-available seed and optionally places
// the team into a pool directly.
func (s *SeedingService) PromoteFromWaitlist(teamId int, options PromotionOptions) (*repository.Team, error) {
	team, err := s.teamRepository.GetTeamById(teamId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, app_error.NotFoundf("Team %d not found.", teamId)
		}
		return nil, err
	}
	if team.Status != repository.TeamStatusWaitlisted {
		return nil, app_error.Validationf("Team %q is not on the waitlist.", team.Name)
	}
	division, err := s.divisionRepository.GetDivisionById(team.DivisionId)
	if err != nil {
		return nil, err
	}
	confirmed, err := s.teamRepository.CountByStatus(division.Id,
		repository.TeamStatusRegistered, repository.TeamStatusConfirmed)
	if err != nil {
		return nil, err
	}
	if confirmed >= int64(division.Capacity) {
		return nil, app_error.Capacityf("Division %q is at capacity (%d teams).", division.Name, division.Capacity)
	}

	maxSeed, err := s.teamRepository.MaxSeed(division.Id)
	if err != nil {
		return nil, err
	}

	seed := maxSeed + 1
	if !options.Automatic && options.Seed != nil {
		if *options.Seed < 1 {
			return nil, app_error.Validationf("Seed must be a positive integer.")
		}
		_, err := s.teamRepository.GetTeamBySeed(division.Id, *options.Seed)
		if err == nil {
			return nil, app_error.Validationf("Seed %d is already taken in this division.", *options.Seed)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		seed = *options.Seed
	}

	pools, err := s.poolRepository.GetPoolsForDivision(division.Id, "Teams")
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		teamRepository := repository.NewTeamRepository(tx)
		team.Status = repository.TeamStatusConfirmed
		team.Seed = &seed
		if _, err := teamRepository.Save(team); err != nil {
			return err
		}

		if options.Automatic {
			if len(pools) == 0 {
				return nil
			}
			_, err := s.poolService.buildPools(tx, division, len(pools))
			return err
		}

		if options.PoolId == nil {
			return nil
		}
		return s.placeInPool(tx, team, division, pools, *options.PoolId, options.PoolSeed)
	})
	if err != nil {
		return nil, err
	}
	return team, nil
}

func (s *SeedingService) placeInPool(tx *gorm.DB, team *repository.Team, division *repository.TournamentDivision, pools []*repository.Pool, poolId int, poolSeed *int) error {
	var pool *repository.Pool
	for _, candidate := range pools {
		if candidate.Id == poolId {
			pool = candidate
			break
		}
	}
	if pool == nil {
		return app_error.Validationf("Pool %d does not belong to division %q.", poolId, division.Name)
	}
	localSeed := len(pool.Teams) + 1
	if poolSeed != nil {
		if *poolSeed < 1 || *poolSeed > len(pool.Teams)+1 {
			return app_error.Validationf("Pool seed %d would leave a gap; pool %q holds seeds 1-%d.", *poolSeed, pool.Name, len(pool.Teams))
		}
		for _, poolTeam := range pool.Teams {
			if poolTeam.Seed == *poolSeed {
				return app_error.Validationf("Pool seed %d is already taken in pool %q.", *poolSeed, pool.Name)
			}
		}
		localSeed = *poolSeed
	}
	poolRepository := repository.NewPoolRepository(tx)
	return poolRepository.CreatePoolTeams([]*repository.PoolTeam{{
		PoolId: pool.Id,
		TeamId: team.Id,
		Seed:   localSeed,
	}})
}
