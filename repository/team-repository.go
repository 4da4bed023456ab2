package repository

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

type TeamStatus string

const (
	TeamStatusRegistered TeamStatus = "REGISTERED"
	TeamStatusConfirmed  TeamStatus = "CONFIRMED"
	TeamStatusWaitlisted TeamStatus = "WAITLISTED"
)

type Team struct {
	Id         int        `gorm:"primaryKey"`
	DivisionId int        `gorm:"not null;index;uniqueIndex:udx_division_seed,where:seed IS NOT NULL"`
	Name       string     `gorm:"not null"`
	Status     TeamStatus `gorm:"type:league.team_status;not null"`
	// Division-wide seed; null until seeding begins.
	Seed *int `gorm:"uniqueIndex:udx_division_seed,where:seed IS NOT NULL"`
	// Pool rank, written once by pool completion.
	Finish       *int      `gorm:"null"`
	RegisteredAt time.Time `gorm:"not null;autoCreateTime"`
}

type TeamRepository struct {
	DB *gorm.DB
}

func NewTeamRepository(db *gorm.DB) *TeamRepository {
	return &TeamRepository{DB: db}
}

func (r *TeamRepository) GetTeamById(teamId int) (*Team, error) {
	var team Team
	result := r.DB.First(&team, teamId)
	if result.Error != nil {
		return nil, result.Error
	}
	return &team, nil
}

func (r *TeamRepository) Save(team *Team) (*Team, error) {
	result := r.DB.Save(team)
	if result.Error != nil {
		return nil, result.Error
	}
	return team, nil
}

// GetSeededTeamsForDivision returns non-waitlisted teams ordered by division
// seed ascending, unseeded teams last.
func (r *TeamRepository) GetSeededTeamsForDivision(divisionId int) ([]*Team, error) {
	timer := prometheus.NewTimer(queryDuration.WithLabelValues("GetSeededTeamsForDivision"))
	defer timer.ObserveDuration()
	teams := make([]*Team, 0)
	result := r.DB.
		Where("division_id = ? AND status IN ?", divisionId, []TeamStatus{TeamStatusRegistered, TeamStatusConfirmed}).
		Order("seed ASC NULLS LAST, registered_at ASC, id ASC").
		Find(&teams)
	if result.Error != nil {
		return nil, result.Error
	}
	return teams, nil
}

func (r *TeamRepository) GetTeamsForDivision(divisionId int) ([]*Team, error) {
	teams := make([]*Team, 0)
	result := r.DB.Order("seed ASC NULLS LAST, registered_at ASC").Find(&teams, &Team{DivisionId: divisionId})
	if result.Error != nil {
		return nil, result.Error
	}
	return teams, nil
}

func (r *TeamRepository) GetTeamBySeed(divisionId int, seed int) (*Team, error) {
	var team Team
	result := r.DB.Where("division_id = ? AND seed = ?", divisionId, seed).First(&team)
	if result.Error != nil {
		return nil, result.Error
	}
	return &team, nil
}

func (r *TeamRepository) CountByStatus(divisionId int, statuses ...TeamStatus) (int64, error) {
	var count int64
	result := r.DB.Model(&Team{}).
		Where("division_id = ? AND status IN ?", divisionId, statuses).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

func (r *TeamRepository) MaxSeed(divisionId int) (int, error) {
	var maxSeed *int
	result := r.DB.Model(&Team{}).
		Where("division_id = ?", divisionId).
		Select("MAX(seed)").
		Scan(&maxSeed)
	if result.Error != nil {
		return 0, result.Error
	}
	if maxSeed == nil {
		return 0, nil
	}
	return *maxSeed, nil
}

func (r *TeamRepository) UpdateSeed(teamId int, seed *int) error {
	result := r.DB.Model(&Team{}).Where("id = ?", teamId).Update("seed", seed)
	return result.Error
}

func (r *TeamRepository) UpdateFinish(teamId int, finish int) error {
	result := r.DB.Model(&Team{}).Where("id = ?", teamId).Update("finish", finish)
	return result.Error
}
