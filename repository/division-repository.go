package repository

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type TournamentDivision struct {
	Id               int            `gorm:"primaryKey"`
	TournamentId     int            `gorm:"not null;index"`
	Name             string         `gorm:"not null"`
	SkillLevels      pq.StringArray `gorm:"type:text[]"`
	Capacity         int            `gorm:"not null"`
	WaitlistCapacity int            `gorm:"not null;default:0"`
	StartTime        time.Time      `gorm:"null"`
	Teams            []*Team        `gorm:"foreignKey:DivisionId;constraint:OnDelete:CASCADE"`
	Pools            []*Pool        `gorm:"foreignKey:DivisionId;constraint:OnDelete:CASCADE"`
}

type DivisionRepository struct {
	DB *gorm.DB
}

func NewDivisionRepository(db *gorm.DB) *DivisionRepository {
	return &DivisionRepository{DB: db}
}

func (r *DivisionRepository) GetDivisionById(divisionId int, preloads ...string) (*TournamentDivision, error) {
	var division TournamentDivision
	query := r.DB
	for _, preload := range preloads {
		query = query.Preload(preload)
	}
	result := query.First(&division, divisionId)
	if result.Error != nil {
		return nil, result.Error
	}
	return &division, nil
}

func (r *DivisionRepository) GetDivisionsForTournament(tournamentId int, preloads ...string) ([]*TournamentDivision, error) {
	divisions := make([]*TournamentDivision, 0)
	query := r.DB
	for _, preload := range preloads {
		query = query.Preload(preload)
	}
	result := query.Order("name ASC").Find(&divisions, &TournamentDivision{TournamentId: tournamentId})
	if result.Error != nil {
		return nil, result.Error
	}
	return divisions, nil
}

func (r *DivisionRepository) Save(division *TournamentDivision) (*TournamentDivision, error) {
	result := r.DB.Save(division)
	if result.Error != nil {
		return nil, result.Error
	}
	return division, nil
}

func (r *DivisionRepository) Delete(divisionId int) error {
	result := r.DB.Delete(&TournamentDivision{}, divisionId)
	return result.Error
}
