package controller

import (
	"strconv"
	"time"

	"courtside/app_error"
	"courtside/auth"
	"courtside/service"

	"github.com/gin-contrib/cache"
	"github.com/gin-contrib/cache/persistence"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type StandingsController struct {
	standingsService *service.StandingsService
}

func NewStandingsController(db *gorm.DB) *StandingsController {
	return &StandingsController{
		standingsService: service.NewStandingsService(db),
	}
}

func setupStandingsController(db *gorm.DB, cacheStore persistence.CacheStore) []RouteInfo {
	e := NewStandingsController(db)
	routes := []RouteInfo{
		// standings are recomputed on every score entry screen refresh,
		// cache briefly
		{Method: "GET", Path: "/pools/:pool_id/standings", HandlerFunc: cache.CachePage(cacheStore, 10*time.Second, e.getStandingsHandler())},
		{Method: "POST", Path: "/divisions/:division_id/complete", HandlerFunc: e.completeDivisionHandler(), Authenticated: true, RoleRequired: []string{auth.RoleAdmin}},
	}
	return routes
}

// @Summary Live standings for a pool
// @Tags standings
// @Produce json
// @Success 200 {array} schedule.TeamStanding
// @Router /pools/{pool_id}/standings [get]
func (e *StandingsController) getStandingsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		poolId, err := strconv.Atoi(c.Param("pool_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		standings, err := e.standingsService.GetPoolStandings(poolId)
		if err != nil {
			app_error.WithHTTPStatus(c, err)
			return
		}
		c.JSON(200, standings)
	}
}

func (e *StandingsController) completeDivisionHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		divisionId, err := strconv.Atoi(c.Param("division_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		updated, err := e.standingsService.CompleteDivision(divisionId)
		if err != nil {
			app_error.WithHTTPStatus(c, err)
			return
		}
		c.JSON(200, gin.H{"teams_ranked": updated})
	}
}
