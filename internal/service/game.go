package service

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"

	"github.com/Pc-CraftGroup/sky-haven-manager/internal/model"
	"github.com/Pc-CraftGroup/sky-haven-manager/internal/repository"
	"github.com/Pc-CraftGroup/sky-haven-manager/internal/sim"
)

const (
	sessionIdleTimeout = 30 * time.Minute
	staleFlightMaxAge  = 10 * time.Minute
	// completed flights below this payout stay off the public feed
	longHaulMinRevenue = 50_000
)

// liveSession is one player's in-memory game wrapped with bookkeeping for
// eviction and mirror sync.
type liveSession struct {
	sim      *sim.Session
	username string
	airline  string
	lastSeen time.Time
}

// GameService owns all live player sessions. It loads snapshots on demand,
// drives the periodic economic tick and the cosmetic position push, and
// persists state back best-effort.
type GameService struct {
	gameRepo   *repository.GameRepository
	playerRepo *repository.PlayerRepository
	flightRepo *repository.FlightRepository
	events     *EventService
	hub        *WSHub

	mu       sync.Mutex
	sessions map[string]*liveSession

	tickInterval time.Duration
	posInterval  time.Duration
	saveInterval time.Duration

	done chan struct{}
	wg   sync.WaitGroup
}

func NewGameService(
	gameRepo *repository.GameRepository,
	playerRepo *repository.PlayerRepository,
	flightRepo *repository.FlightRepository,
	events *EventService,
	hub *WSHub,
	tickInterval, posInterval, saveInterval time.Duration,
) *GameService {
	return &GameService{
		gameRepo:     gameRepo,
		playerRepo:   playerRepo,
		flightRepo:   flightRepo,
		events:       events,
		hub:          hub,
		sessions:     make(map[string]*liveSession),
		tickInterval: tickInterval,
		posInterval:  posInterval,
		saveInterval: saveInterval,
		done:         make(chan struct{}),
	}
}

// Start launches the background tick, position and save loops.
func (s *GameService) Start() {
	s.wg.Add(2)
	go s.tickLoop()
	go s.positionLoop()
}

// Stop halts the loops and saves every live session.
func (s *GameService) Stop(ctx context.Context) {
	close(s.done)
	s.wg.Wait()
	s.SaveAll(ctx)
}

// session returns the live session for a player, loading (or seeding) their
// snapshot on first touch.
func (s *GameService) session(ctx context.Context, playerID string) (*liveSession, error) {
	s.mu.Lock()
	if sess, ok := s.sessions[playerID]; ok {
		sess.lastSeen = time.Now()
		s.mu.Unlock()
		return sess, nil
	}
	s.mu.Unlock()

	// Load outside the lock; a racing second load just loses the insert.
	player, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return nil, err
	}

	snap, err := s.gameRepo.Load(ctx, playerID)
	if errors.Is(err, pgx.ErrNoRows) {
		snap = model.NewSnapshot(time.Now())
		if err := s.gameRepo.CreateInitial(ctx, playerID, snap); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	sess := &liveSession{
		sim:      sim.NewSession(snap, time.Now, rand.New(rand.NewSource(time.Now().UnixNano()))),
		username: player.Username,
		airline:  player.AirlineName,
		lastSeen: time.Now(),
	}

	s.mu.Lock()
	if existing, ok := s.sessions[playerID]; ok {
		sess = existing
		sess.lastSeen = time.Now()
	} else {
		s.sessions[playerID] = sess
	}
	s.mu.Unlock()
	return sess, nil
}

// State ticks the player's simulation up to now and returns the snapshot.
func (s *GameService) State(ctx context.Context, playerID string) (model.GameSnapshot, error) {
	sess, err := s.session(ctx, playerID)
	if err != nil {
		return model.GameSnapshot{}, err
	}
	snap, notifs := sess.sim.Tick()
	s.handleNotifications(ctx, playerID, sess, snap, notifs)
	return snap, nil
}

// Reset starts the player over and persists the fresh snapshot immediately.
func (s *GameService) Reset(ctx context.Context, playerID string) (model.GameSnapshot, error) {
	sess, err := s.session(ctx, playerID)
	if err != nil {
		return model.GameSnapshot{}, err
	}
	snap := sess.sim.Reset()
	if err := s.gameRepo.Save(ctx, playerID, snap); err != nil {
		return model.GameSnapshot{}, err
	}
	s.syncFlights(ctx, playerID, sess, snap)
	return snap, nil
}

// Purchase buys an aircraft for the player.
func (s *GameService) Purchase(ctx context.Context, playerID, modelID, registration string) (model.Aircraft, error) {
	sess, err := s.session(ctx, playerID)
	if err != nil {
		return model.Aircraft{}, err
	}
	s.tickSession(ctx, playerID, sess)

	plane, err := sess.sim.Purchase(modelID, registration, sess.airline)
	if err != nil {
		return model.Aircraft{}, err
	}
	s.events.RecordPurchase(ctx, playerID, sess.username, plane)
	s.persistAsync(playerID, sess)
	return plane, nil
}

// StartFlight dispatches one of the player's aircraft.
func (s *GameService) StartFlight(ctx context.Context, playerID, aircraftID, destination string) (model.Aircraft, error) {
	sess, err := s.session(ctx, playerID)
	if err != nil {
		return model.Aircraft{}, err
	}
	s.tickSession(ctx, playerID, sess)

	plane, err := sess.sim.StartFlight(aircraftID, destination)
	if err != nil {
		return model.Aircraft{}, err
	}
	s.syncFlights(ctx, playerID, sess, sess.sim.Snapshot())
	s.persistAsync(playerID, sess)
	return plane, nil
}

// Refuel tops up an aircraft and returns the cost charged.
func (s *GameService) Refuel(ctx context.Context, playerID, aircraftID string) (float64, error) {
	sess, err := s.session(ctx, playerID)
	if err != nil {
		return 0, err
	}
	s.tickSession(ctx, playerID, sess)

	cost, err := sess.sim.Refuel(aircraftID)
	if err != nil {
		return 0, err
	}
	s.persistAsync(playerID, sess)
	return cost, nil
}

// PerformMaintenance sends an aircraft into the shop and returns the cost.
func (s *GameService) PerformMaintenance(ctx context.Context, playerID, aircraftID string) (float64, error) {
	sess, err := s.session(ctx, playerID)
	if err != nil {
		return 0, err
	}
	s.tickSession(ctx, playerID, sess)

	cost, err := sess.sim.PerformMaintenance(aircraftID)
	if err != nil {
		return 0, err
	}
	s.persistAsync(playerID, sess)
	return cost, nil
}

// Sell removes an aircraft and returns the salvage credited.
func (s *GameService) Sell(ctx context.Context, playerID, aircraftID string) (float64, error) {
	sess, err := s.session(ctx, playerID)
	if err != nil {
		return 0, err
	}
	s.tickSession(ctx, playerID, sess)

	salvage, err := sess.sim.Sell(aircraftID)
	if err != nil {
		return 0, err
	}
	s.syncFlights(ctx, playerID, sess, sess.sim.Snapshot())
	s.persistAsync(playerID, sess)
	return salvage, nil
}

// ConfigureCabin sets one aircraft's service-class split.
func (s *GameService) ConfigureCabin(ctx context.Context, playerID, aircraftID string, cfg model.CabinConfiguration) error {
	sess, err := s.session(ctx, playerID)
	if err != nil {
		return err
	}
	if err := sess.sim.ConfigureCabin(aircraftID, cfg); err != nil {
		return err
	}
	s.persistAsync(playerID, sess)
	return nil
}

// SetDefaultCabin sets the player's default split for future purchases.
func (s *GameService) SetDefaultCabin(ctx context.Context, playerID string, cfg model.CabinConfiguration) error {
	sess, err := s.session(ctx, playerID)
	if err != nil {
		return err
	}
	if err := sess.sim.SetDefaultCabin(cfg); err != nil {
		return err
	}
	s.persistAsync(playerID, sess)
	return nil
}

// UpdateSettings replaces the player's simulation settings.
func (s *GameService) UpdateSettings(ctx context.Context, playerID string, settings model.Settings) error {
	sess, err := s.session(ctx, playerID)
	if err != nil {
		return err
	}
	s.tickSession(ctx, playerID, sess)

	if err := sess.sim.UpdateSettings(settings); err != nil {
		return err
	}
	s.persistAsync(playerID, sess)
	return nil
}

// LiveFleet returns the fleet with in-flight positions projected to the wall
// clock for display.
func (s *GameService) LiveFleet(ctx context.Context, playerID string) ([]model.Aircraft, error) {
	sess, err := s.session(ctx, playerID)
	if err != nil {
		return nil, err
	}
	return sess.sim.LiveFleet(), nil
}

// OnlinePlayers is the number of currently loaded sessions.
func (s *GameService) OnlinePlayers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// SaveAll persists every live session. Used on shutdown.
func (s *GameService) SaveAll(ctx context.Context) {
	for playerID, sess := range s.snapshotSessions() {
		if err := s.gameRepo.Save(ctx, playerID, sess.sim.Snapshot()); err != nil {
			log.Error().Err(err).Str("player_id", playerID).Msg("save on shutdown failed")
		}
	}
}

func (s *GameService) tickLoop() {
	defer s.wg.Done()
	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()
	lastSave := time.Now()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			save := time.Since(lastSave) >= s.saveInterval
			if save {
				lastSave = time.Now()
			}
			for playerID, sess := range s.snapshotSessions() {
				snap, notifs := sess.sim.Tick()
				s.handleNotifications(ctx, playerID, sess, snap, notifs)
				if len(notifs) > 0 || save {
					s.syncFlights(ctx, playerID, sess, snap)
				}
				if save {
					if err := s.gameRepo.Save(ctx, playerID, snap); err != nil {
						log.Error().Err(err).Str("player_id", playerID).Msg("periodic save failed")
					}
				}
			}
			if save {
				s.evictIdle(ctx)
				if n, err := s.flightRepo.DeleteStale(ctx, staleFlightMaxAge); err == nil && n > 0 {
					log.Debug().Int64("rows", n).Msg("pruned stale flight mirrors")
				}
			}
			cancel()
		}
	}
}

func (s *GameService) positionLoop() {
	defer s.wg.Done()
	ticker := time.NewTicker(s.posInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			for playerID, sess := range s.snapshotSessions() {
				var updates []model.FlightPositionUpdate
				for _, plane := range sess.sim.LiveFleet() {
					if plane.Status != model.StatusInFlight || plane.CurrentRoute == nil {
						continue
					}
					updates = append(updates, model.FlightPositionUpdate{
						AircraftID:   plane.ID,
						Registration: plane.Registration,
						Lat:          plane.Position.Lat,
						Lon:          plane.Position.Lon,
						Progress:     plane.CurrentRoute.Progress,
					})
				}
				if len(updates) == 0 {
					continue
				}
				data, err := json.Marshal(updates)
				if err != nil {
					continue
				}
				s.hub.SendToPlayer(playerID, &model.WSEvent{Type: "positions", Data: data})
			}
		}
	}
}

// tickSession advances one player's simulation before a command so the
// command sees settled state.
func (s *GameService) tickSession(ctx context.Context, playerID string, sess *liveSession) {
	snap, notifs := sess.sim.Tick()
	s.handleNotifications(ctx, playerID, sess, snap, notifs)
}

func (s *GameService) handleNotifications(ctx context.Context, playerID string, sess *liveSession, snap model.GameSnapshot, notifs []model.Notification) {
	for _, n := range notifs {
		data, err := json.Marshal(n)
		if err == nil {
			s.hub.SendToPlayer(playerID, &model.WSEvent{Type: "notification", Data: data})
		}
		switch n.Type {
		case model.NotifyCrash:
			s.events.RecordCrash(ctx, playerID, sess.username, n.Model, n.Registration, n.Reason)
		case model.NotifyFlightCompleted:
			if n.Revenue >= longHaulMinRevenue {
				s.events.RecordLongHaul(ctx, playerID, sess.username, n)
			}
		}
	}
	if len(notifs) > 0 {
		if err := s.gameRepo.Save(ctx, playerID, snap); err != nil {
			log.Error().Err(err).Str("player_id", playerID).Msg("save after tick failed")
		}
	}
}

// syncFlights refreshes the shared active-flights mirror. Best effort: the
// snapshot stays authoritative, a failed sync only delays the public map.
func (s *GameService) syncFlights(ctx context.Context, playerID string, sess *liveSession, snap model.GameSnapshot) {
	if err := s.flightRepo.SyncPlayerFlights(ctx, playerID, sess.username, snap.Fleet); err != nil {
		log.Warn().Err(err).Str("player_id", playerID).Msg("flight mirror sync failed")
	}
}

func (s *GameService) persistAsync(playerID string, sess *liveSession) {
	snap := sess.sim.Snapshot()
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.gameRepo.Save(ctx, playerID, snap); err != nil {
			log.Error().Err(err).Str("player_id", playerID).Msg("async save failed")
		}
	}()
}

func (s *GameService) snapshotSessions() map[string]*liveSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]*liveSession, len(s.sessions))
	for id, sess := range s.sessions {
		out[id] = sess
	}
	return out
}

// evictIdle drops sessions untouched for a while after a final save; their
// flights keep ticking from the persisted watermark on next load.
func (s *GameService) evictIdle(ctx context.Context) {
	s.mu.Lock()
	var evict []string
	for id, sess := range s.sessions {
		if time.Since(sess.lastSeen) > sessionIdleTimeout {
			evict = append(evict, id)
		}
	}
	s.mu.Unlock()

	for _, id := range evict {
		s.mu.Lock()
		sess, ok := s.sessions[id]
		if ok {
			delete(s.sessions, id)
		}
		s.mu.Unlock()
		if !ok {
			continue
		}
		if err := s.gameRepo.Save(ctx, id, sess.sim.Snapshot()); err != nil {
			log.Error().Err(err).Str("player_id", id).Msg("save on evict failed")
		}
	}
}
