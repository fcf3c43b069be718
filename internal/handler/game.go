package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Pc-CraftGroup/sky-haven-manager/internal/cabin"
	"github.com/Pc-CraftGroup/sky-haven-manager/internal/catalog"
	"github.com/Pc-CraftGroup/sky-haven-manager/internal/geo"
	"github.com/Pc-CraftGroup/sky-haven-manager/internal/model"
	"github.com/Pc-CraftGroup/sky-haven-manager/internal/service"
	"github.com/Pc-CraftGroup/sky-haven-manager/internal/sim"
)

type GameHandler struct {
	gameSvc *service.GameService
}

func NewGameHandler(gameSvc *service.GameService) *GameHandler {
	return &GameHandler{gameSvc: gameSvc}
}

// GetState returns the player's snapshot, ticked up to now.
func (h *GameHandler) GetState(c *fiber.Ctx) error {
	playerID := c.Locals("player_id").(string)

	snap, err := h.gameSvc.State(c.Context(), playerID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to load game state"})
	}
	return c.JSON(snap)
}

// Reset wipes the player's game and starts over.
func (h *GameHandler) Reset(c *fiber.Ctx) error {
	playerID := c.Locals("player_id").(string)

	snap, err := h.gameSvc.Reset(c.Context(), playerID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to reset game"})
	}
	return c.JSON(snap)
}

// GetFleet returns the fleet with positions projected to the wall clock.
func (h *GameHandler) GetFleet(c *fiber.Ctx) error {
	playerID := c.Locals("player_id").(string)

	fleet, err := h.gameSvc.LiveFleet(c.Context(), playerID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to load fleet"})
	}
	return c.JSON(fiber.Map{"fleet": fleet})
}

type purchaseRequest struct {
	ModelID      string `json:"model_id"`
	Registration string `json:"registration"`
}

func (h *GameHandler) PurchaseAircraft(c *fiber.Ctx) error {
	playerID := c.Locals("player_id").(string)

	var req purchaseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.ModelID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "model_id is required"})
	}

	plane, err := h.gameSvc.Purchase(c.Context(), playerID, req.ModelID, req.Registration)
	if err != nil {
		return gameError(c, err)
	}
	return c.Status(201).JSON(plane)
}

type startFlightRequest struct {
	Destination string `json:"destination"`
}

func (h *GameHandler) StartFlight(c *fiber.Ctx) error {
	playerID := c.Locals("player_id").(string)
	aircraftID := c.Params("id")

	var req startFlightRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
	}
	if req.Destination == "" {
		return c.Status(400).JSON(fiber.Map{"error": "destination is required"})
	}

	plane, err := h.gameSvc.StartFlight(c.Context(), playerID, aircraftID, req.Destination)
	if err != nil {
		return gameError(c, err)
	}
	return c.JSON(plane)
}

func (h *GameHandler) Refuel(c *fiber.Ctx) error {
	playerID := c.Locals("player_id").(string)
	aircraftID := c.Params("id")

	cost, err := h.gameSvc.Refuel(c.Context(), playerID, aircraftID)
	if err != nil {
		return gameError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true, "cost": cost})
}

func (h *GameHandler) PerformMaintenance(c *fiber.Ctx) error {
	playerID := c.Locals("player_id").(string)
	aircraftID := c.Params("id")

	cost, err := h.gameSvc.PerformMaintenance(c.Context(), playerID, aircraftID)
	if err != nil {
		return gameError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true, "cost": cost})
}

func (h *GameHandler) SellAircraft(c *fiber.Ctx) error {
	playerID := c.Locals("player_id").(string)
	aircraftID := c.Params("id")

	salvage, err := h.gameSvc.Sell(c.Context(), playerID, aircraftID)
	if err != nil {
		return gameError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true, "salvage": salvage})
}

func (h *GameHandler) ConfigureCabin(c *fiber.Ctx) error {
	playerID := c.Locals("player_id").(string)
	aircraftID := c.Params("id")

	var cfg model.CabinConfiguration
	if err := c.BodyParser(&cfg); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
	}

	if err := h.gameSvc.ConfigureCabin(c.Context(), playerID, aircraftID, cfg); err != nil {
		return gameError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (h *GameHandler) SetDefaultCabin(c *fiber.Ctx) error {
	playerID := c.Locals("player_id").(string)

	var cfg model.CabinConfiguration
	if err := c.BodyParser(&cfg); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
	}

	if err := h.gameSvc.SetDefaultCabin(c.Context(), playerID, cfg); err != nil {
		return gameError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (h *GameHandler) UpdateSettings(c *fiber.Ctx) error {
	playerID := c.Locals("player_id").(string)

	var settings model.Settings
	if err := c.BodyParser(&settings); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
	}

	if err := h.gameSvc.UpdateSettings(c.Context(), playerID, settings); err != nil {
		return gameError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

// GetCatalog returns the purchasable aircraft archetypes.
func (h *GameHandler) GetCatalog(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"models": catalog.Models})
}

// GetAirports returns the world airport table.
func (h *GameHandler) GetAirports(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"airports": geo.Airports})
}

func gameError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, sim.ErrInsufficientFunds):
		return c.Status(402).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, sim.ErrAircraftNotFound):
		return c.Status(404).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, sim.ErrAircraftUnavailable):
		return c.Status(409).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, sim.ErrInsufficientFuel),
		errors.Is(err, sim.ErrRouteTooLong),
		errors.Is(err, sim.ErrUnknownAirport),
		errors.Is(err, sim.ErrInvalidDestination),
		errors.Is(err, sim.ErrUnknownModel),
		errors.Is(err, sim.ErrInvalidSettings),
		errors.Is(err, cabin.ErrInvalidSplit):
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(500).JSON(fiber.Map{"error": "internal server error"})
	}
}
