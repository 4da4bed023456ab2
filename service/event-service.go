package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"courtside/config"
	"courtside/utils"

	"github.com/segmentio/kafka-go"
)

// LeagueEvent is the lifecycle notification emitted for the external
// notification service. Delivery is best effort; the engine's transactions
// never depend on the broker.
type LeagueEvent struct {
	Type         string    `json:"type"`
	TournamentId int       `json:"tournament_id"`
	DivisionId   int       `json:"division_id,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

const (
	EventPoolsRebuilt      = "pools.rebuilt"
	EventSchedulePublished = "schedule.published"
	EventDivisionCompleted = "division.completed"
)

type EventService struct{}

func NewEventService() *EventService {
	return &EventService{}
}

func (s *EventService) Publish(tournamentId int, eventType string, divisionId int) {
	event := LeagueEvent{
		Type:         eventType,
		TournamentId: tournamentId,
		DivisionId:   divisionId,
		Timestamp:    time.Now(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("could not serialize %s event: %v", eventType, err)
		return
	}
	writer, err := config.GetWriter(tournamentId)
	if err != nil {
		log.Printf("could not reach event broker: %v", err)
		return
	}
	defer utils.Closer(writer)()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err = writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(eventType),
		Value: payload,
	})
	if err != nil {
		log.Printf("could not publish %s event: %v", eventType, err)
	}
}
