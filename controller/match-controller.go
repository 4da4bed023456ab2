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

type MatchController struct {
	matchService *service.MatchService
}

func NewMatchController(db *gorm.DB) *MatchController {
	return &MatchController{
		matchService: service.NewMatchService(db),
	}
}

func setupMatchController(db *gorm.DB) []RouteInfo {
	e := NewMatchController(db)
	routes := []RouteInfo{
		{Method: "POST", Path: "/tournaments/:tournament_id/schedule", HandlerFunc: e.scheduleTournamentHandler(), Authenticated: true, RoleRequired: []string{auth.RoleAdmin}},
		{Method: "GET", Path: "/pools/:pool_id/matches", HandlerFunc: e.getMatchesHandler()},
		{Method: "PUT", Path: "/matches/:match_id/sets/:set_number/score", HandlerFunc: e.recordScoreHandler(), Authenticated: true, RoleRequired: []string{auth.RoleAdmin, auth.RoleScorekeeper}},
		{Method: "POST", Path: "/matches/:match_id/ref/abandon", HandlerFunc: e.abandonRefHandler(), Authenticated: true, RoleRequired: []string{auth.RoleAdmin, auth.RoleScorekeeper}},
	}
	return routes
}

type ScheduleRequest struct {
	Overwrite bool `json:"overwrite"`
}

type MatchSetResponse struct {
	SetNumber  int  `json:"set_number"`
	WinScore   int  `json:"win_score"`
	TeamAScore *int `json:"team_a_score"`
	TeamBScore *int `json:"team_b_score"`
	WinnerId   *int `json:"winner_id"`
}

type MatchResponse struct {
	Id            int                    `json:"id"`
	PoolId        int                    `json:"pool_id"`
	MatchNumber   int                    `json:"match_number"`
	TeamAId       int                    `json:"team_a_id"`
	TeamBId       int                    `json:"team_b_id"`
	ScheduledTime *time.Time             `json:"scheduled_time"`
	Status        repository.MatchStatus `json:"status"`
	WinnerId      *int                   `json:"winner_id"`
	RefTeamId     *int                   `json:"ref_team_id"`
	Sets          []*MatchSetResponse    `json:"sets"`
}

func toMatchResponse(match *repository.PoolMatch) *MatchResponse {
	response := &MatchResponse{
		Id:            match.Id,
		PoolId:        match.PoolId,
		MatchNumber:   match.MatchNumber,
		TeamAId:       match.TeamAId,
		TeamBId:       match.TeamBId,
		ScheduledTime: match.ScheduledTime,
		Status:        match.Status,
		WinnerId:      match.WinnerId,
		Sets: utils.Map(match.Sets, func(set *repository.MatchSet) *MatchSetResponse {
			return &MatchSetResponse{
				SetNumber:  set.SetNumber,
				WinScore:   set.WinScore,
				TeamAScore: set.TeamAScore,
				TeamBScore: set.TeamBScore,
				WinnerId:   set.WinnerId,
			}
		}),
	}
	for _, refTeam := range match.RefTeams {
		if !refTeam.Abandoned {
			teamId := refTeam.TeamId
			response.RefTeamId = &teamId
		}
	}
	return response
}

// @Summary Schedule every pool of a tournament
// @Tags match
// @Accept json
// @Produce json
// @Param request body ScheduleRequest true "overwrite flag"
// @Success 201 {object} map[string]int
// @Router /tournaments/{tournament_id}/schedule [post]
func (e *MatchController) scheduleTournamentHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		tournamentId, err := strconv.Atoi(c.Param("tournament_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		var request ScheduleRequest
		if err := c.BindJSON(&request); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		matchCount, err := e.matchService.ScheduleTournament(tournamentId, request.Overwrite)
		if err != nil {
			app_error.WithHTTPStatus(c, err)
			return
		}
		c.JSON(201, gin.H{"matches": matchCount})
	}
}

func (e *MatchController) getMatchesHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		poolId, err := strconv.Atoi(c.Param("pool_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		matches, err := e.matchService.GetMatchesForPool(poolId)
		if err != nil {
			app_error.WithHTTPStatus(c, err)
			return
		}
		c.JSON(200, utils.Map(matches, toMatchResponse))
	}
}

type SetScoreRequest struct {
	TeamAScore *int `json:"team_a_score" binding:"required"`
	TeamBScore *int `json:"team_b_score" binding:"required"`
}

func (e *MatchController) recordScoreHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		matchId, err := strconv.Atoi(c.Param("match_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		setNumber, err := strconv.Atoi(c.Param("set_number"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		var request SetScoreRequest
		if err := c.BindJSON(&request); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		match, err := e.matchService.RecordSetScore(matchId, setNumber, *request.TeamAScore, *request.TeamBScore)
		if err != nil {
			app_error.WithHTTPStatus(c, err)
			return
		}
		c.JSON(200, toMatchResponse(match))
	}
}

type AbandonRefRequest struct {
	ReplacementTeamId *int `json:"replacement_team_id"`
}

func (e *MatchController) abandonRefHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		matchId, err := strconv.Atoi(c.Param("match_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		var request AbandonRefRequest
		if err := c.BindJSON(&request); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		refTeam, err := e.matchService.AbandonRef(matchId, request.ReplacementTeamId)
		if err != nil {
			app_error.WithHTTPStatus(c, err)
			return
		}
		c.JSON(200, gin.H{
			"ref_team_id": refTeam.TeamId,
			"abandoned":   refTeam.Abandoned,
		})
	}
}
