package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Pc-CraftGroup/sky-haven-manager/internal/repository"
	"github.com/Pc-CraftGroup/sky-haven-manager/internal/service"
)

type PublicHandler struct {
	playerRepo *repository.PlayerRepository
	gameRepo   *repository.GameRepository
	flightRepo *repository.FlightRepository
	eventRepo  *repository.EventRepository
	wsHub      *service.WSHub
}

func NewPublicHandler(playerRepo *repository.PlayerRepository, gameRepo *repository.GameRepository, flightRepo *repository.FlightRepository, eventRepo *repository.EventRepository, wsHub *service.WSHub) *PublicHandler {
	return &PublicHandler{
		playerRepo: playerRepo,
		gameRepo:   gameRepo,
		flightRepo: flightRepo,
		eventRepo:  eventRepo,
		wsHub:      wsHub,
	}
}

func (h *PublicHandler) Stats(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 3*time.Second)
	defer cancel()

	totalPlayers, _ := h.playerRepo.CountTotal(ctx)
	_, totalFlights, totalRevenue, _ := h.gameRepo.GlobalStats(ctx)
	online := h.wsHub.OnlineCount()

	result := fiber.Map{
		"players_total":  totalPlayers,
		"players_online": online,
		"flights_total":  totalFlights,
		"revenue_total":  totalRevenue,
		"server_status":  "online",
	}

	// Try to fetch the last notable event (crash)
	events, err := h.eventRepo.ListByType(ctx, "crash", 1)
	if err == nil && len(events) > 0 {
		e := events[0]
		result["last_event"] = fiber.Map{
			"event_type":   e.EventType,
			"username":     e.Username,
			"registration": e.Registration,
			"detail":       e.Detail,
			"created_at":   e.CreatedAt,
		}
	}

	return c.JSON(result)
}

// Leaderboard ranks airlines by total revenue.
func (h *PublicHandler) Leaderboard(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 3*time.Second)
	defer cancel()

	limit := c.QueryInt("limit", 25)
	entries, err := h.gameRepo.Leaderboard(ctx, limit)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to load leaderboard"})
	}
	return c.JSON(fiber.Map{"leaderboard": entries})
}

// ActiveFlights lists everyone's in-flight aircraft for the public live map.
func (h *PublicHandler) ActiveFlights(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 3*time.Second)
	defer cancel()

	limit := c.QueryInt("limit", 100)
	flights, err := h.flightRepo.ListActive(ctx, limit)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to load active flights"})
	}
	return c.JSON(fiber.Map{"flights": flights})
}

// Events returns the newest public feed entries.
func (h *PublicHandler) Events(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 3*time.Second)
	defer cancel()

	limit := c.QueryInt("limit", 20)
	events, err := h.eventRepo.ListRecent(ctx, limit)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to load events"})
	}
	return c.JSON(fiber.Map{"events": events})
}

// Profile is the public view of one player.
func (h *PublicHandler) Profile(c *fiber.Ctx) error {
	profile, err := h.playerRepo.GetProfile(c.Context(), c.Params("id"))
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "player not found"})
	}
	return c.JSON(profile)
}
