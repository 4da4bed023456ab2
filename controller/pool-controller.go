package controller

import (
	"strconv"

	"courtside/app_error"
	"courtside/auth"
	"courtside/repository"
	"courtside/service"
	"courtside/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PoolController struct {
	poolService *service.PoolService
}

func NewPoolController(db *gorm.DB) *PoolController {
	return &PoolController{
		poolService: service.NewPoolService(db),
	}
}

func setupPoolController(db *gorm.DB) []RouteInfo {
	e := NewPoolController(db)
	admin := []string{auth.RoleAdmin}
	routes := []RouteInfo{
		{Method: "GET", Path: "/divisions/:division_id/pools", HandlerFunc: e.getPoolsHandler()},
		{Method: "POST", Path: "/divisions/:division_id/pools", HandlerFunc: e.buildPoolsHandler(), Authenticated: true, RoleRequired: admin},
		{Method: "PUT", Path: "/pools/:pool_id/court", HandlerFunc: e.assignCourtHandler(), Authenticated: true, RoleRequired: admin},
	}
	return routes
}

type BuildPoolsRequest struct {
	PoolCount int  `json:"pool_count" binding:"required"`
	Overwrite bool `json:"overwrite"`
}

type PoolTeamResponse struct {
	TeamId int    `json:"team_id"`
	Name   string `json:"name"`
	Seed   int    `json:"seed"`
}

type PoolResponse struct {
	Id         int                 `json:"id"`
	DivisionId int                 `json:"division_id"`
	Name       string              `json:"name"`
	Court      *string             `json:"court"`
	Teams      []*PoolTeamResponse `json:"teams"`
}

func toPoolResponse(pool *repository.Pool) *PoolResponse {
	return &PoolResponse{
		Id:         pool.Id,
		DivisionId: pool.DivisionId,
		Name:       pool.Name,
		Court:      pool.Court,
		Teams: utils.Map(pool.Teams, func(poolTeam *repository.PoolTeam) *PoolTeamResponse {
			response := &PoolTeamResponse{TeamId: poolTeam.TeamId, Seed: poolTeam.Seed}
			if poolTeam.Team != nil {
				response.Name = poolTeam.Team.Name
			}
			return response
		}),
	}
}

func (e *PoolController) getPoolsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		divisionId, err := strconv.Atoi(c.Param("division_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		pools, err := e.poolService.GetPoolsForDivision(divisionId)
		if err != nil {
			app_error.WithHTTPStatus(c, err)
			return
		}
		c.JSON(200, utils.Map(pools, toPoolResponse))
	}
}

// @Summary Build a division's pools by snake draft
// @Tags pool
// @Accept json
// @Produce json
// @Param request body BuildPoolsRequest true "pool count and overwrite flag"
// @Success 201 {array} PoolResponse
// @Router /divisions/{division_id}/pools [post]
func (e *PoolController) buildPoolsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		divisionId, err := strconv.Atoi(c.Param("division_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		var request BuildPoolsRequest
		if err := c.BindJSON(&request); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		pools, err := e.poolService.BuildPools(divisionId, request.PoolCount, request.Overwrite)
		if err != nil {
			app_error.WithHTTPStatus(c, err)
			return
		}
		c.JSON(201, utils.Map(pools, toPoolResponse))
	}
}

type AssignCourtRequest struct {
	Court string `json:"court" binding:"required"`
}

func (e *PoolController) assignCourtHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		poolId, err := strconv.Atoi(c.Param("pool_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		var request AssignCourtRequest
		if err := c.BindJSON(&request); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		pool, err := e.poolService.AssignCourt(poolId, request.Court)
		if err != nil {
			app_error.WithHTTPStatus(c, err)
			return
		}
		c.JSON(200, toPoolResponse(pool))
	}
}
