package handler

import (
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Pc-CraftGroup/sky-haven-manager/internal/model"
	"github.com/Pc-CraftGroup/sky-haven-manager/internal/repository"
	"github.com/Pc-CraftGroup/sky-haven-manager/internal/service"
)

type AdminHandler struct {
	playerRepo *repository.PlayerRepository
	gameRepo   *repository.GameRepository
	flightRepo *repository.FlightRepository
	gameSvc    *service.GameService
	wsHub      *service.WSHub
}

func NewAdminHandler(playerRepo *repository.PlayerRepository, gameRepo *repository.GameRepository, flightRepo *repository.FlightRepository, gameSvc *service.GameService, wsHub *service.WSHub) *AdminHandler {
	return &AdminHandler{playerRepo: playerRepo, gameRepo: gameRepo, flightRepo: flightRepo, gameSvc: gameSvc, wsHub: wsHub}
}

func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	totalPlayers, _ := h.playerRepo.CountTotal(c.Context())
	_, totalFlights, totalRevenue, _ := h.gameRepo.GlobalStats(c.Context())

	return c.JSON(fiber.Map{
		"players_total":   totalPlayers,
		"players_online":  h.wsHub.OnlineCount(),
		"sessions_loaded": h.gameSvc.OnlinePlayers(),
		"flights_total":   totalFlights,
		"revenue_total":   totalRevenue,
	})
}

func (h *AdminHandler) Announce(c *fiber.Ctx) error {
	var req model.WSAnnounce
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
	}

	if req.Message == "" {
		return c.Status(400).JSON(fiber.Map{"error": "message is required"})
	}

	data, _ := json.Marshal(req)
	h.wsHub.Broadcast(&model.WSEvent{
		Type: "server:announce",
		Data: data,
	})

	return c.JSON(fiber.Map{"ok": true, "online": h.wsHub.OnlineCount()})
}

// PruneFlights drops mirror rows that stopped updating.
func (h *AdminHandler) PruneFlights(c *fiber.Ctx) error {
	minutes := c.QueryInt("older_than_min", 10)
	n, err := h.flightRepo.DeleteStale(c.Context(), time.Duration(minutes)*time.Minute)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to prune flights"})
	}
	return c.JSON(fiber.Map{"ok": true, "deleted": n})
}
