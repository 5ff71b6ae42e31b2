package server

import (
	"math/rand"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/cardroomlabs/cardroom/internal/game"
	"github.com/cardroomlabs/cardroom/internal/room"
)

// RoomService owns the rooms and bridges them to the transport. Each room
// gets an observer that routes its messages through the server's
// connection registry.
type RoomService struct {
	server *Server
	logger *log.Logger
	clock  quartz.Clock
	rng    *rand.Rand

	mu        sync.RWMutex
	rooms     map[string]*room.Room
	autoStart map[string]bool
	buyIns    map[string][2]float64
}

// NewRoomService creates an empty room service
func NewRoomService(server *Server, logger *log.Logger, seed int64, clock quartz.Clock) *RoomService {
	if clock == nil {
		clock = quartz.NewReal()
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &RoomService{
		server:    server,
		logger:    logger.WithPrefix("rooms"),
		clock:     clock,
		rng:       rand.New(rand.NewSource(seed)),
		rooms:     make(map[string]*room.Room),
		autoStart: make(map[string]bool),
		buyIns:    make(map[string][2]float64),
	}
}

// CreateRoom builds a room from its configuration and registers it
func (rs *RoomService) CreateRoom(rc RoomConfig) (*room.Room, error) {
	gameCfg, err := rc.GameConfig()
	if err != nil {
		return nil, err
	}

	rs.mu.Lock()
	defer rs.mu.Unlock()

	gameCfg.Rng = rand.New(rand.NewSource(rs.rng.Int63()))
	r, err := room.New(room.Config{
		ID:            rc.Name,
		Name:          rc.Name,
		Game:          gameCfg,
		Clock:         rs.clock,
		Logger:        rs.logger,
		ActionTimeout: time.Duration(rc.ActionTimeout) * time.Second,
	})
	if err != nil {
		return nil, err
	}
	r.SetObserver(&roomObserver{server: rs.server, roomID: rc.Name})

	rs.rooms[rc.Name] = r
	rs.autoStart[rc.Name] = rc.AutoStart
	rs.buyIns[rc.Name] = [2]float64{rc.BuyInMin, rc.BuyInMax}
	rs.logger.Info("Room created", "room", rc.Name, "variant", rc.Variant, "stakes", rc.SmallBlind, "seats", rc.Seats)
	return r, nil
}

// GetRoom retrieves a room by ID
func (rs *RoomService) GetRoom(id string) (*room.Room, bool) {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	r, ok := rs.rooms[id]
	return r, ok
}

// CheckBuyIn validates a buy-in amount against the room's limits
func (rs *RoomService) CheckBuyIn(roomID string, amount float64) error {
	rs.mu.RLock()
	limits, ok := rs.buyIns[roomID]
	rs.mu.RUnlock()
	if !ok {
		return &game.Error{Code: game.CodePlayerNotFound, Msg: "unknown room"}
	}
	if amount < limits[0] || amount > limits[1] {
		return &game.Error{Code: game.CodeInsufficientBuyIn,
			Msg: "buy-in outside room limits"}
	}
	return nil
}

// ListRooms returns a summary of every room
func (rs *RoomService) ListRooms() []room.RoomInfo {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	infos := make([]room.RoomInfo, 0, len(rs.rooms))
	for id, r := range rs.rooms {
		gs := r.Snapshot()
		infos = append(infos, room.RoomInfo{
			ID:         id,
			Name:       r.Name(),
			Variant:    string(gs.Variant),
			Limit:      gs.Structure.Limit.String(),
			SmallBlind: gs.Structure.SmallBlind,
			BigBlind:   gs.Structure.BigBlind,
			Seats:      len(gs.Table.Seats),
			Seated:     r.Seated(),
			Phase:      gs.Phase.String(),
		})
	}
	return infos
}

// MaybeStartHand starts the next hand in an auto-start room when enough
// players are seated and no hand is running. A failed start is fine; it
// just means the room is not ready yet.
func (rs *RoomService) MaybeStartHand(roomID string) {
	rs.mu.RLock()
	r, ok := rs.rooms[roomID]
	auto := rs.autoStart[roomID]
	rs.mu.RUnlock()
	if !ok || !auto {
		return
	}

	gs := r.Snapshot()
	if gs.Phase != game.PhaseWaiting && gs.Phase != game.PhaseHandComplete {
		return
	}
	if err := r.StartHand(); err != nil {
		rs.logger.Debug("Auto-start skipped", "room", roomID, "reason", err)
	}
}

// DisconnectPlayer marks a player disconnected in their room without
// standing them up; their seat survives for a reconnect.
func (rs *RoomService) DisconnectPlayer(roomID, playerID string) {
	if r, ok := rs.GetRoom(roomID); ok {
		r.Disconnect(playerID)
	}
}

// roomObserver routes room messages through the server's connections
type roomObserver struct {
	server *Server
	roomID string
}

func (o *roomObserver) Broadcast(msg *room.Message) {
	o.server.BroadcastToRoom(o.roomID, msg)
}

func (o *roomObserver) SendToPlayer(playerID string, msg *room.Message) {
	_ = o.server.SendToPlayer(playerID, msg)
}
