package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/Pc-CraftGroup/sky-haven-manager/internal/model"
	"github.com/Pc-CraftGroup/sky-haven-manager/internal/repository"
)

// EventService records notable game events for the public feed and mirrors
// them to Discord.
type EventService struct {
	eventRepo *repository.EventRepository
	webhooks  *DiscordWebhookService
}

func NewEventService(eventRepo *repository.EventRepository, webhooks *DiscordWebhookService) *EventService {
	return &EventService{
		eventRepo: eventRepo,
		webhooks:  webhooks,
	}
}

// RecordCrash saves a crash event and sends it to the crash-feed webhook.
func (s *EventService) RecordCrash(ctx context.Context, playerID, username, aircraftModel, registration, reason string) {
	detail := fmt.Sprintf("%s crashed: %s", registration, reason)
	if _, err := s.eventRepo.Create(ctx, playerID, username, "crash", aircraftModel, registration, detail); err != nil {
		log.Error().Err(err).Str("player_id", playerID).Msg("record crash event failed")
	}
	s.webhooks.SendCrashFeed(username, registration, aircraftModel, reason)
}

// RecordPurchase saves an aircraft purchase to the feed.
func (s *EventService) RecordPurchase(ctx context.Context, playerID, username string, plane model.Aircraft) {
	detail := fmt.Sprintf("%s joined the fleet as %s", plane.Model, plane.Registration)
	if _, err := s.eventRepo.Create(ctx, playerID, username, "purchase", plane.Model, plane.Registration, detail); err != nil {
		log.Error().Err(err).Str("player_id", playerID).Msg("record purchase event failed")
	}
}

// RecordLongHaul saves a completed long-distance flight and sends a milestone
// embed. Short legs stay out of the feed.
func (s *EventService) RecordLongHaul(ctx context.Context, playerID, username string, n model.Notification) {
	detail := fmt.Sprintf("%s landed in %s (%.0f revenue)", n.Registration, n.Location, n.Revenue)
	if _, err := s.eventRepo.Create(ctx, playerID, username, "flight_completed", n.Model, n.Registration, detail); err != nil {
		log.Error().Err(err).Str("player_id", playerID).Msg("record flight event failed")
	}
	s.webhooks.SendGameEvent("flight_completed", "🛬 Long-haul completed", username+": "+detail)
}

// Recent returns the newest feed entries.
func (s *EventService) Recent(ctx context.Context, limit int) ([]model.GameEvent, error) {
	return s.eventRepo.ListRecent(ctx, limit)
}

// RecentByType returns the newest feed entries of one type.
func (s *EventService) RecentByType(ctx context.Context, eventType string, limit int) ([]model.GameEvent, error) {
	return s.eventRepo.ListByType(ctx, eventType, limit)
}
