package controller

import (
	"strconv"
	"time"

	"courtside/app_error"
	"courtside/auth"
	"courtside/repository"
	"courtside/service"
	"courtside/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type TeamController struct {
	teamService *service.TeamService
}

func NewTeamController(db *gorm.DB) *TeamController {
	return &TeamController{
		teamService: service.NewTeamService(db),
	}
}

func setupTeamController(db *gorm.DB) []RouteInfo {
	e := NewTeamController(db)
	routes := []RouteInfo{
		{Method: "GET", Path: "/divisions/:division_id/teams", HandlerFunc: e.getTeamsHandler()},
		{Method: "POST", Path: "/divisions/:division_id/teams", HandlerFunc: e.registerTeamHandler()},
		{Method: "POST", Path: "/divisions/:division_id/teams/seed", HandlerFunc: e.seedDivisionHandler(), Authenticated: true, RoleRequired: []string{auth.RoleAdmin}},
		{Method: "POST", Path: "/teams/:team_id/confirm", HandlerFunc: e.confirmTeamHandler(), Authenticated: true, RoleRequired: []string{auth.RoleAdmin}},
	}
	return routes
}

type TeamRegister struct {
	Name string `json:"name" binding:"required"`
}

type TeamResponse struct {
	Id           int                   `json:"id"`
	DivisionId   int                   `json:"division_id"`
	Name         string                `json:"name"`
	Status       repository.TeamStatus `json:"status"`
	Seed         *int                  `json:"seed"`
	Finish       *int                  `json:"finish"`
	RegisteredAt time.Time             `json:"registered_at"`
}

func toTeamResponse(team *repository.Team) *TeamResponse {
	return &TeamResponse{
		Id:           team.Id,
		DivisionId:   team.DivisionId,
		Name:         team.Name,
		Status:       team.Status,
		Seed:         team.Seed,
		Finish:       team.Finish,
		RegisteredAt: team.RegisteredAt,
	}
}

func (e *TeamController) getTeamsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		divisionId, err := strconv.Atoi(c.Param("division_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		teams, err := e.teamService.GetTeamsForDivision(divisionId)
		if err != nil {
			app_error.WithHTTPStatus(c, err)
			return
		}
		c.JSON(200, utils.Map(teams, toTeamResponse))
	}
}

// @Summary Register a team
// @Tags team
// @Accept json
// @Produce json
// @Param team body TeamRegister true "team"
// @Success 201 {object} TeamResponse
// @Failure 409 {object} map[string]string "division and waitlist full"
// @Router /divisions/{division_id}/teams [post]
func (e *TeamController) registerTeamHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		divisionId, err := strconv.Atoi(c.Param("division_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		var registration TeamRegister
		if err := c.BindJSON(&registration); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		team, err := e.teamService.RegisterTeam(divisionId, registration.Name)
		if err != nil {
			app_error.WithHTTPStatus(c, err)
			return
		}
		c.JSON(201, toTeamResponse(team))
	}
}

func (e *TeamController) seedDivisionHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		divisionId, err := strconv.Atoi(c.Param("division_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		teams, err := e.teamService.SeedByRegistrationOrder(divisionId)
		if err != nil {
			app_error.WithHTTPStatus(c, err)
			return
		}
		c.JSON(200, utils.Map(teams, toTeamResponse))
	}
}

func (e *TeamController) confirmTeamHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		teamId, err := strconv.Atoi(c.Param("team_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		team, err := e.teamService.ConfirmTeam(teamId)
		if err != nil {
			app_error.WithHTTPStatus(c, err)
			return
		}
		c.JSON(200, toTeamResponse(team))
	}
}
