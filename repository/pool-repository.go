package repository

import (
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

type Pool struct {
	Id         int          `gorm:"primaryKey"`
	DivisionId int          `gorm:"not null;index"`
	Name       string       `gorm:"not null"`
	Court      *string      `gorm:"null"`
	Teams      []*PoolTeam  `gorm:"foreignKey:PoolId;constraint:OnDelete:CASCADE"`
	Matches    []*PoolMatch `gorm:"foreignKey:PoolId;constraint:OnDelete:CASCADE"`
}

type PoolTeam struct {
	PoolId int   `gorm:"primaryKey"`
	TeamId int   `gorm:"primaryKey"`
	Team   *Team `gorm:"foreignKey:TeamId;references:Id;constraint:OnDelete:CASCADE"`
	// Pool-local seed, 1..N within the pool.
	Seed int `gorm:"not null"`
}

type PoolRepository struct {
	DB *gorm.DB
}

func NewPoolRepository(db *gorm.DB) *PoolRepository {
	return &PoolRepository{DB: db}
}

func (r *PoolRepository) GetPoolById(poolId int, preloads ...string) (*Pool, error) {
	var pool Pool
	query := r.DB
	for _, preload := range preloads {
		query = query.Preload(preload)
	}
	result := query.First(&pool, poolId)
	if result.Error != nil {
		return nil, result.Error
	}
	return &pool, nil
}

func (r *PoolRepository) GetPoolsForDivision(divisionId int, preloads ...string) ([]*Pool, error) {
	timer := prometheus.NewTimer(queryDuration.WithLabelValues("GetPoolsForDivision"))
	defer timer.ObserveDuration()
	pools := make([]*Pool, 0)
	query := r.DB
	for _, preload := range preloads {
		query = query.Preload(preload)
	}
	result := query.Order("name ASC").Find(&pools, &Pool{DivisionId: divisionId})
	if result.Error != nil {
		return nil, result.Error
	}
	return pools, nil
}

// DeletePoolsForDivision removes the division's pools; pool teams, matches,
// sets and ref assignments go with them via the cascade constraints.
func (r *PoolRepository) DeletePoolsForDivision(divisionId int) error {
	result := r.DB.Where("division_id = ?", divisionId).Delete(&Pool{})
	return result.Error
}

func (r *PoolRepository) CreatePools(pools []*Pool) error {
	if len(pools) == 0 {
		return nil
	}
	result := r.DB.Create(pools)
	return result.Error
}

func (r *PoolRepository) CreatePoolTeams(poolTeams []*PoolTeam) error {
	if len(poolTeams) == 0 {
		return nil
	}
	result := r.DB.CreateInBatches(poolTeams, len(poolTeams))
	return result.Error
}

func (r *PoolRepository) Save(pool *Pool) (*Pool, error) {
	result := r.DB.Save(pool)
	if result.Error != nil {
		return nil, result.Error
	}
	return pool, nil
}
