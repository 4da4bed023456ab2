package repository

import (
	"time"

	"gorm.io/gorm"
)

type Venue struct {
	Id      int    `gorm:"primaryKey"`
	Name    string `gorm:"not null"`
	Address string `gorm:"null"`
	Courts  int    `gorm:"not null;default:1"`
}

type Tournament struct {
	Id        int                   `gorm:"primaryKey"`
	Name      string                `gorm:"not null"`
	VenueId   *int                  `gorm:"null"`
	Venue     *Venue                `gorm:"foreignKey:VenueId;references:Id"`
	StartTime time.Time             `gorm:"null"`
	EndTime   time.Time             `gorm:"null"`
	Divisions []*TournamentDivision `gorm:"foreignKey:TournamentId;constraint:OnDelete:CASCADE"`
}

type TournamentRepository struct {
	DB *gorm.DB
}

func NewTournamentRepository(db *gorm.DB) *TournamentRepository {
	return &TournamentRepository{DB: db}
}

func (r *TournamentRepository) GetTournamentById(tournamentId int, preloads ...string) (*Tournament, error) {
	var tournament Tournament
	query := r.DB
	for _, preload := range preloads {
		query = query.Preload(preload)
	}
	result := query.First(&tournament, tournamentId)
	if result.Error != nil {
		return nil, result.Error
	}
	return &tournament, nil
}

func (r *TournamentRepository) Save(tournament *Tournament) (*Tournament, error) {
	result := r.DB.Save(tournament)
	if result.Error != nil {
		return nil, result.Error
	}
	return tournament, nil
}

func (r *TournamentRepository) Delete(tournamentId int) error {
	result := r.DB.Delete(&Tournament{}, tournamentId)
	return result.Error
}

func (r *TournamentRepository) FindAll() ([]*Tournament, error) {
	tournaments := make([]*Tournament, 0)
	result := r.DB.Preload("Venue").Order("start_time ASC").Find(&tournaments)
	if result.Error != nil {
		return nil, result.Error
	}
	return tournaments, nil
}

func (r *TournamentRepository) SaveVenue(venue *Venue) (*Venue, error) {
	result := r.DB.Save(venue)
	if result.Error != nil {
		return nil, result.Error
	}
	return venue, nil
}
