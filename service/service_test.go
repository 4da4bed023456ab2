package service

import (
	"courtside/repository"
	"fmt"
	"log"
	"sort"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/postgres"
	_ "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"

	"github.com/lib/pq"
	"github.com/ory/dockertest/v3"
)

var db *gorm.DB
var enumQueries = []string{
	`CREATE TYPE league.team_status AS ENUM ('REGISTERED', 'CONFIRMED', 'WAITLISTED')`,
	`CREATE TYPE league.match_status AS ENUM ('SCHEDULED', 'IN_PROGRESS', 'COMPLETED', 'FORFEITED')`,
}

func TestMain(m *testing.M) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Fatalf("Could not construct pool: %s", err)
	}

	// uses pool to try to connect to Docker
	err = pool.Client.Ping()
	if err != nil {
		log.Fatalf("Could not connect to Docker: %s", err)
	}

	// pulls an image, creates a container based on it and runs it
	resource, err := pool.Run("postgres", "17.2-alpine", []string{"POSTGRES_USER=postgres", "POSTGRES_PASSWORD=postgres", "DATABASE_NAME=postgres"})
	if err != nil {
		log.Fatalf("Could not start resource: %s", err)
	}
	resource.Expire(600) // Tell docker to hard kill the container in 10 minutes
	sqlInfo := fmt.Sprintf(
		"host=localhost port=%s user=postgres password=postgres dbname=postgres sslmode=disable search_path=league",
		resource.GetPort("5432/tcp"))

	// exponential backoff-retry, because the application in the container might not be ready to accept connections yet
	if err := pool.Retry(func() error {
		var err error
		db, err = gorm.Open(postgres.Open(sqlInfo), &gorm.Config{
			NamingStrategy: schema.NamingStrategy{
				TablePrefix:   "league.",
				SingularTable: false,
			},
			Logger: logger.Default.LogMode(logger.Silent),
		})

		if err != nil {
			return err
		}
		db.Exec(`CREATE SCHEMA IF NOT EXISTS league`)
		for _, query := range enumQueries {
			x := db.Exec(query)
			if x.Error != nil {
				if strings.Contains(x.Error.Error(), "already exists") {
					continue
				}
			}
		}
		return db.AutoMigrate(
			&repository.Venue{},
			&repository.Tournament{},
			&repository.TournamentDivision{},
			&repository.Team{},
			&repository.Pool{},
			&repository.PoolTeam{},
			&repository.PoolMatch{},
			&repository.MatchSet{},
			&repository.MatchRefTeam{},
		)

	}); err != nil {
		log.Fatalf("Could not connect to database: %s", err)
	}

	defer func() {
		if err := pool.Purge(resource); err != nil {
			log.Fatalf("Could not purge resource: %s", err)
		}

	}()
	m.Run()
}

func TearDown() {
	db.Exec("DELETE FROM league.match_ref_teams")
	db.Exec("DELETE FROM league.match_sets")
	db.Exec("DELETE FROM league.pool_matches")
	db.Exec("DELETE FROM league.pool_teams")
	db.Exec("DELETE FROM league.pools")
	db.Exec("DELETE FROM league.teams")
	db.Exec("DELETE FROM league.tournament_divisions")
	db.Exec("DELETE FROM league.tournaments")
	db.Exec("DELETE FROM league.venues")
}

// SetUp creates a tournament with one division holding seededTeams confirmed
// teams at seeds 1..seededTeams.
func SetUp(capacity int, waitlistCapacity int, seededTeams int) *repository.TournamentDivision {
	tournament := &repository.Tournament{
		Name:      "spring classic",
		StartTime: time.Now(),
		EndTime:   time.Now().Add(12 * time.Hour),
	}
	if err := db.Create(tournament).Error; err != nil {
		log.Fatalf("Error creating tournament: %v", err)
	}
	division := &repository.TournamentDivision{
		TournamentId:     tournament.Id,
		Name:             "coed a",
		SkillLevels:      pq.StringArray{"A", "BB"},
		Capacity:         capacity,
		WaitlistCapacity: waitlistCapacity,
		StartTime:        time.Now().Add(24 * time.Hour),
	}
	if err := db.Create(division).Error; err != nil {
		log.Fatalf("Error creating division: %v", err)
	}
	for i := 1; i <= seededTeams; i++ {
		seed := i
		team := &repository.Team{
			DivisionId: division.Id,
			Name:       fmt.Sprintf("team%d", i),
			Status:     repository.TeamStatusConfirmed,
			Seed:       &seed,
		}
		if err := db.Create(team).Error; err != nil {
			log.Fatalf("Error creating team: %v", err)
		}
	}
	return division
}

func waitlistedTeam(divisionId int, name string) *repository.Team {
	team := &repository.Team{
		DivisionId: divisionId,
		Name:       name,
		Status:     repository.TeamStatusWaitlisted,
	}
	if err := db.Create(team).Error; err != nil {
		log.Fatalf("Error creating waitlisted team: %v", err)
	}
	return team
}

// divisionSeeds returns each pool's team division seeds keyed by pool name.
func divisionSeeds(t *testing.T, divisionId int) map[string][]int {
	pools, err := repository.NewPoolRepository(db).GetPoolsForDivision(divisionId, "Teams", "Teams.Team")
	if err != nil {
		t.Fatalf("Error loading pools: %v", err)
	}
	seeds := make(map[string][]int)
	for _, pool := range pools {
		for _, poolTeam := range pool.Teams {
			seeds[pool.Name] = append(seeds[pool.Name], *poolTeam.Team.Seed)
		}
		sort.Ints(seeds[pool.Name])
	}
	return seeds
}
