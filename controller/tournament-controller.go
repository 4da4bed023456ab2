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
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type TournamentController struct {
	tournamentService *service.TournamentService
}

func NewTournamentController(db *gorm.DB) *TournamentController {
	return &TournamentController{
		tournamentService: service.NewTournamentService(db),
	}
}

func setupTournamentController(db *gorm.DB) []RouteInfo {
	e := NewTournamentController(db)
	routes := []RouteInfo{
		{Method: "GET", Path: "/tournaments", HandlerFunc: e.getTournamentsHandler()},
		{Method: "POST", Path: "/tournaments", HandlerFunc: e.createTournamentHandler(), Authenticated: true, RoleRequired: []string{auth.RoleAdmin}},
		{Method: "GET", Path: "/tournaments/:tournament_id", HandlerFunc: e.getTournamentHandler()},
		{Method: "DELETE", Path: "/tournaments/:tournament_id", HandlerFunc: e.deleteTournamentHandler(), Authenticated: true, RoleRequired: []string{auth.RoleAdmin}},
		{Method: "GET", Path: "/tournaments/:tournament_id/divisions", HandlerFunc: e.getDivisionsHandler()},
		{Method: "POST", Path: "/tournaments/:tournament_id/divisions", HandlerFunc: e.createDivisionHandler(), Authenticated: true, RoleRequired: []string{auth.RoleAdmin}},
	}
	return routes
}

type TournamentCreate struct {
	Name      string    `json:"name" binding:"required"`
	VenueId   *int      `json:"venue_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

func (t *TournamentCreate) toModel() *repository.Tournament {
	return &repository.Tournament{
		Name:      t.Name,
		VenueId:   t.VenueId,
		StartTime: t.StartTime,
		EndTime:   t.EndTime,
	}
}

type TournamentResponse struct {
	Id        int       `json:"id"`
	Name      string    `json:"name"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	Venue     *string   `json:"venue"`
}

func toTournamentResponse(tournament *repository.Tournament) *TournamentResponse {
	response := &TournamentResponse{
		Id:        tournament.Id,
		Name:      tournament.Name,
		StartTime: tournament.StartTime,
		EndTime:   tournament.EndTime,
	}
	if tournament.Venue != nil {
		response.Venue = &tournament.Venue.Name
	}
	return response
}

type DivisionCreate struct {
	Name             string    `json:"name" binding:"required"`
	SkillLevels      []string  `json:"skill_levels"`
	Capacity         int       `json:"capacity" binding:"required"`
	WaitlistCapacity int       `json:"waitlist_capacity"`
	StartTime        time.Time `json:"start_time"`
}

type DivisionResponse struct {
	Id               int       `json:"id"`
	TournamentId     int       `json:"tournament_id"`
	Name             string    `json:"name"`
	SkillLevels      []string  `json:"skill_levels"`
	Capacity         int       `json:"capacity"`
	WaitlistCapacity int       `json:"waitlist_capacity"`
	StartTime        time.Time `json:"start_time"`
}

func toDivisionResponse(division *repository.TournamentDivision) *DivisionResponse {
	return &DivisionResponse{
		Id:               division.Id,
		TournamentId:     division.TournamentId,
		Name:             division.Name,
		SkillLevels:      division.SkillLevels,
		Capacity:         division.Capacity,
		WaitlistCapacity: division.WaitlistCapacity,
		StartTime:        division.StartTime,
	}
}

// @Summary List tournaments
// @Tags tournament
// @Produce json
// @Success 200 {array} TournamentResponse
// @Router /tournaments [get]
func (e *TournamentController) getTournamentsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		tournaments, err := e.tournamentService.GetTournaments()
		if err != nil {
			app_error.WithHTTPStatus(c, err)
			return
		}
		c.JSON(200, utils.Map(tournaments, toTournamentResponse))
	}
}

// @Summary Create a tournament
// @Tags tournament
// @Accept json
// @Produce json
// @Param tournament body TournamentCreate true "tournament"
// @Success 201 {object} TournamentResponse
// @Router /tournaments [post]
func (e *TournamentController) createTournamentHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		var tournament TournamentCreate
		if err := c.BindJSON(&tournament); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		saved, err := e.tournamentService.SaveTournament(tournament.toModel())
		if err != nil {
			app_error.WithHTTPStatus(c, err)
			return
		}
		c.JSON(201, toTournamentResponse(saved))
	}
}

func (e *TournamentController) getTournamentHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		tournamentId, err := strconv.Atoi(c.Param("tournament_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		tournament, err := e.tournamentService.GetTournamentById(tournamentId)
		if err != nil {
			app_error.WithHTTPStatus(c, err)
			return
		}
		c.JSON(200, toTournamentResponse(tournament))
	}
}

func (e *TournamentController) deleteTournamentHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		tournamentId, err := strconv.Atoi(c.Param("tournament_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		if err := e.tournamentService.DeleteTournament(tournamentId); err != nil {
			app_error.WithHTTPStatus(c, err)
			return
		}
		c.JSON(204, nil)
	}
}

func (e *TournamentController) getDivisionsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		tournamentId, err := strconv.Atoi(c.Param("tournament_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		divisions, err := e.tournamentService.GetDivisionsForTournament(tournamentId)
		if err != nil {
			app_error.WithHTTPStatus(c, err)
			return
		}
		c.JSON(200, utils.Map(divisions, toDivisionResponse))
	}
}

func (e *TournamentController) createDivisionHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		tournamentId, err := strconv.Atoi(c.Param("tournament_id"))
		if err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		var division DivisionCreate
		if err := c.BindJSON(&division); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		saved, err := e.tournamentService.SaveDivision(&repository.TournamentDivision{
			TournamentId:     tournamentId,
			Name:             division.Name,
			SkillLevels:      pq.StringArray(division.SkillLevels),
			Capacity:         division.Capacity,
			WaitlistCapacity: division.WaitlistCapacity,
			StartTime:        division.StartTime,
		})
		if err != nil {
			app_error.WithHTTPStatus(c, err)
			return
		}
		c.JSON(201, toDivisionResponse(saved))
	}
}
