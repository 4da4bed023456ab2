package controller

import (
	"strconv"

	"courtside/app_error"
	"courtside/auth"
	"courtside/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SeedingController struct {
	seedingService *service.SeedingService
}

func NewSeedingController(db *gorm.DB) *SeedingController {
	return &SeedingController{
		seedingService: service.NewSeedingService(db),
	}
}

func setupSeedingController(db *gorm.DB) []RouteInfo {
	e := NewSeedingController(db)
	admin := []string{auth.RoleAdmin}
	routes := []RouteInfo{
		{Method: "PATCH", Path: "/teams/:team_id/seed", HandlerFunc: e.reseedHandler(), Authenticated: true, RoleRequired: admin},
		{Method: "POST", Path: "/teams/:team_id/seed/up", HandlerFunc: e.seedUpHandler(), Authenticated: true, RoleRequired: admin},
		{Method: "POST", Path: "/teams/:team_id/seed/down", HandlerFunc: e.seedDownHandler(), Authenticated: true, RoleRequired: admin},
		{Method: "POST", Path: "/teams/:team_id/promote", HandlerFunc: e.promoteHandler(), Authenticated: true, RoleRequired: admin},
	}
	return routes
}

type ReseedRequest struct {
	Seed int `json:"seed" binding:"required"`
}

// @Summary Re-seed a team by swapping with the current seed holder
// @Tags seeding
// @Accept json
// @Produce json
// @Param seed body ReseedRequest true "target seed"
// @Success 200 {object} TeamResponse
// @Router /teams/{team_id}/seed [patch]
func (e *SeedingController) reseedHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		teamId, err := strconv.Atoi(c.Param("team_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		var request ReseedRequest
		if err := c.BindJSON(&request); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		team, err := e.seedingService.ReseedTeam(teamId, request.Seed)
		if err != nil {
			app_error.WithHTTPStatus(c, err)
			return
		}
		c.JSON(200, toTeamResponse(team))
	}
}

func (e *SeedingController) seedUpHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		teamId, err := strconv.Atoi(c.Param("team_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		team, err := e.seedingService.MoveSeedUp(teamId)
		if err != nil {
			app_error.WithHTTPStatus(c, err)
			return
		}
		c.JSON(200, toTeamResponse(team))
	}
}

func (e *SeedingController) seedDownHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		teamId, err := strconv.Atoi(c.Param("team_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		team, err := e.seedingService.MoveSeedDown(teamId)
		if err != nil {
			app_error.WithHTTPStatus(c, err)
			return
		}
		c.JSON(200, toTeamResponse(team))
	}
}

func (e *SeedingController) promoteHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		teamId, err := strconv.Atoi(c.Param("team_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		var options service.PromotionOptions
		if err := c.BindJSON(&options); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		team, err := e.seedingService.PromoteFromWaitlist(teamId, options)
		if err != nil {
			app_error.WithHTTPStatus(c, err)
			return
		}
		c.JSON(200, toTeamResponse(team))
	}
}
