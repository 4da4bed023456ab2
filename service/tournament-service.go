package service

import (
	"errors"

	"courtside/app_error"
	"courtside/repository"

	"gorm.io/gorm"
)

type TournamentService struct {
	tournamentRepository *repository.TournamentRepository
	divisionRepository   *repository.DivisionRepository
}

func NewTournamentService(db *gorm.DB) *TournamentService {
	return &TournamentService{
		tournamentRepository: repository.NewTournamentRepository(db),
		divisionRepository:   repository.NewDivisionRepository(db),
	}
}

func (s *TournamentService) GetTournaments() ([]*repository.Tournament, error) {
	return s.tournamentRepository.FindAll()
}

func (s *TournamentService) GetTournamentById(tournamentId int) (*repository.Tournament, error) {
	tournament, err := s.tournamentRepository.GetTournamentById(tournamentId, "Venue", "Divisions")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, app_error.NotFoundf("Tournament %d not found.", tournamentId)
		}
		return nil, err
	}
	return tournament, nil
}

func (s *TournamentService) SaveTournament(tournament *repository.Tournament) (*repository.Tournament, error) {
	if tournament.Name == "" {
		return nil, app_error.Validationf("Tournament name is required.")
	}
	return s.tournamentRepository.Save(tournament)
}

func (s *TournamentService) DeleteTournament(tournamentId int) error {
	return s.tournamentRepository.Delete(tournamentId)
}

func (s *TournamentService) SaveDivision(division *repository.TournamentDivision) (*repository.TournamentDivision, error) {
	if division.Name == "" {
		return nil, app_error.Validationf("Division name is required.")
	}
	if division.Capacity < 1 {
		return nil, app_error.Validationf("Division capacity must be positive.")
	}
	if division.WaitlistCapacity < 0 {
		return nil, app_error.Validationf("Waitlist capacity cannot be negative.")
	}
	if _, err := s.tournamentRepository.GetTournamentById(division.TournamentId); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, app_error.NotFoundf("Tournament %d not found.", division.TournamentId)
		}
		return nil, err
	}
	return s.divisionRepository.Save(division)
}

func (s *TournamentService) GetDivisionsForTournament(tournamentId int) ([]*repository.TournamentDivision, error) {
	return s.divisionRepository.GetDivisionsForTournament(tournamentId)
}
