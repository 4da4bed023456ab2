package service

import (
	"errors"

	"courtside/app_error"
	"courtside/repository"

	"gorm.io/gorm"
)

type TeamService struct {
	db                 *gorm.DB
	teamRepository     *repository.TeamRepository
	divisionRepository *repository.DivisionRepository
}

func NewTeamService(db *gorm.DB) *TeamService {
	return &TeamService{
		db:                 db,
		teamRepository:     repository.NewTeamRepository(db),
		divisionRepository: repository.NewDivisionRepository(db),
	}
}

// RegisterTeam adds a team to a division, spilling onto the waitlist once the
// division is full. The capacity check and the insert share a transaction so
// two racing registrations cannot both take the last spot.
func (s *TeamService) RegisterTeam(divisionId int, name string) (*repository.Team, error) {
	if name == "" {
		return nil, app_error.Validationf("Team name is required.")
	}
	division, err := s.divisionRepository.GetDivisionById(divisionId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, app_error.NotFoundf("Division %d not found.", divisionId)
		}
		return nil, err
	}

	var team *repository.Team
	err = s.db.Transaction(func(tx *gorm.DB) error {
		teamRepository := repository.NewTeamRepository(tx)
		active, err := teamRepository.CountByStatus(divisionId,
			repository.TeamStatusRegistered, repository.TeamStatusConfirmed)
		if err != nil {
			return err
		}
		status := repository.TeamStatusRegistered
		if active >= int64(division.Capacity) {
			waitlisted, err := teamRepository.CountByStatus(divisionId, repository.TeamStatusWaitlisted)
			if err != nil {
				return err
			}
			if waitlisted >= int64(division.WaitlistCapacity) {
				return app_error.Capacityf("Division %q and its waitlist are full.", division.Name)
			}
			status = repository.TeamStatusWaitlisted
		}
		team = &repository.Team{
			DivisionId: divisionId,
			Name:       name,
			Status:     status,
		}
		_, err = teamRepository.Save(team)
		return err
	})
	if err != nil {
		return nil, err
	}
	return team, nil
}

func (s *TeamService) ConfirmTeam(teamId int) (*repository.Team, error) {
	team, err := s.teamRepository.GetTeamById(teamId)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, app_error.NotFoundf("Team %d not found.", teamId)
		}
		return nil, err
	}
	if team.Status == repository.TeamStatusWaitlisted {
		return nil, app_error.Validationf("Waitlisted teams must be promoted, not confirmed.")
	}
	team.Status = repository.TeamStatusConfirmed
	return s.teamRepository.Save(team)
}

func (s *TeamService) GetTeamsForDivision(divisionId int) ([]*repository.Team, error) {
	return s.teamRepository.GetTeamsForDivision(divisionId)
}

// SeedByRegistrationOrder assigns seeds 1..N to the division's non-waitlisted
// teams in registration order, keeping any seeds already assigned by hand.
func (s *TeamService) SeedByRegistrationOrder(divisionId int) ([]*repository.Team, error) {
	teams, err := s.teamRepository.GetSeededTeamsForDivision(divisionId)
	if err != nil {
		return nil, err
	}
	if len(teams) == 0 {
		return nil, app_error.Validationf("Division %d has no registered teams.", divisionId)
	}

	taken := make(map[int]bool)
	for _, team := range teams {
		if team.Seed != nil {
			if taken[*team.Seed] {
				return nil, app_error.Integrityf("division %d has two teams at seed %d", divisionId, *team.Seed)
			}
			taken[*team.Seed] = true
		}
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		teamRepository := repository.NewTeamRepository(tx)
		next := 1
		for _, team := range teams {
			if team.Seed != nil {
				continue
			}
			for taken[next] {
				next++
			}
			seed := next
			taken[seed] = true
			if err := teamRepository.UpdateSeed(team.Id, &seed); err != nil {
				return err
			}
			team.Seed = &seed
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return teams, nil
}
