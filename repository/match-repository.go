package repository

import (
	"time"

	"gorm.io/gorm"
)

type MatchStatus string

const (
	MatchStatusScheduled  MatchStatus = "SCHEDULED"
	MatchStatusInProgress MatchStatus = "IN_PROGRESS"
	MatchStatusCompleted  MatchStatus = "COMPLETED"
	MatchStatusForfeited  MatchStatus = "FORFEITED"
)

type PoolMatch struct {
	Id     int `gorm:"primaryKey"`
	PoolId int `gorm:"not null;index"`
	// 1-based, ordering defined by the round-robin table.
	MatchNumber   int             `gorm:"not null"`
	TeamAId       int             `gorm:"not null"`
	TeamBId       int             `gorm:"not null"`
	ScheduledTime *time.Time      `gorm:"null"`
	Status        MatchStatus     `gorm:"type:league.match_status;not null;default:SCHEDULED"`
	WinnerId      *int            `gorm:"null"`
	Sets          []*MatchSet     `gorm:"foreignKey:PoolMatchId;constraint:OnDelete:CASCADE"`
	RefTeams      []*MatchRefTeam `gorm:"foreignKey:PoolMatchId;constraint:OnDelete:CASCADE"`
}

type MatchSet struct {
	Id          int `gorm:"primaryKey"`
	PoolMatchId int `gorm:"not null;index"`
	SetNumber   int `gorm:"not null"`
	// Rally point target from the round-robin table.
	WinScore   int  `gorm:"not null"`
	TeamAScore *int `gorm:"null"`
	TeamBScore *int `gorm:"null"`
	WinnerId   *int `gorm:"null"`
}

type MatchRefTeam struct {
	Id          int  `gorm:"primaryKey"`
	PoolMatchId int  `gorm:"not null;index"`
	TeamId      int  `gorm:"not null"`
	Abandoned   bool `gorm:"not null;default:false"`
}

type MatchRepository struct {
	DB *gorm.DB
}

func NewMatchRepository(db *gorm.DB) *MatchRepository {
	return &MatchRepository{DB: db}
}

func (r *MatchRepository) GetMatchById(matchId int, preloads ...string) (*PoolMatch, error) {
	var match PoolMatch
	query := r.DB
	for _, preload := range preloads {
		query = query.Preload(preload)
	}
	result := query.First(&match, matchId)
	if result.Error != nil {
		return nil, result.Error
	}
	return &match, nil
}

func (r *MatchRepository) GetMatchesForPool(poolId int, preloads ...string) ([]*PoolMatch, error) {
	matches := make([]*PoolMatch, 0)
	query := r.DB
	for _, preload := range preloads {
		query = query.Preload(preload)
	}
	result := query.Order("match_number ASC").Find(&matches, &PoolMatch{PoolId: poolId})
	if result.Error != nil {
		return nil, result.Error
	}
	return matches, nil
}

func (r *MatchRepository) DeleteMatchesForPools(poolIds []int) error {
	if len(poolIds) == 0 {
		return nil
	}
	result := r.DB.Where("pool_id IN ?", poolIds).Delete(&PoolMatch{})
	return result.Error
}

func (r *MatchRepository) CreateMatches(matches []*PoolMatch) error {
	if len(matches) == 0 {
		return nil
	}
	result := r.DB.CreateInBatches(matches, len(matches))
	return result.Error
}

func (r *MatchRepository) CreateSets(sets []*MatchSet) error {
	if len(sets) == 0 {
		return nil
	}
	result := r.DB.CreateInBatches(sets, len(sets))
	return result.Error
}

func (r *MatchRepository) CreateRefTeams(refTeams []*MatchRefTeam) error {
	if len(refTeams) == 0 {
		return nil
	}
	result := r.DB.CreateInBatches(refTeams, len(refTeams))
	return result.Error
}

func (r *MatchRepository) SaveMatch(match *PoolMatch) (*PoolMatch, error) {
	result := r.DB.Save(match)
	if result.Error != nil {
		return nil, result.Error
	}
	return match, nil
}

func (r *MatchRepository) SaveSet(set *MatchSet) (*MatchSet, error) {
	result := r.DB.Save(set)
	if result.Error != nil {
		return nil, result.Error
	}
	return set, nil
}

func (r *MatchRepository) GetActiveRefTeam(matchId int) (*MatchRefTeam, error) {
	var refTeam MatchRefTeam
	result := r.DB.Where("pool_match_id = ? AND abandoned = false", matchId).First(&refTeam)
	if result.Error != nil {
		return nil, result.Error
	}
	return &refTeam, nil
}

func (r *MatchRepository) SaveRefTeam(refTeam *MatchRefTeam) (*MatchRefTeam, error) {
	result := r.DB.Save(refTeam)
	if result.Error != nil {
		return nil, result.Error
	}
	return refTeam, nil
}
