package room

import (
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/cardroomlabs/cardroom/internal/game"
)

// Observer delivers room protocol messages to clients. The transport layer
// implements it; the room never touches a socket directly. Implementations
// must not call back into the room from a delivery.
type Observer interface {
	SendToPlayer(playerID string, msg *Message)
	Broadcast(msg *Message)
}

// Config configures a room
type Config struct {
	ID   string
	Name string
	Game game.Config

	Clock          quartz.Clock
	Logger         *log.Logger
	ReservationTTL time.Duration
	// ActionTimeout is advertised to clients in action requests; the room
	// itself does not force-fold, the caller decides what to do on expiry.
	ActionTimeout time.Duration
}

type member struct {
	id        string
	name      string
	connected bool
}

// Room wraps one game engine behind a single mutex. All commands acquire
// the lock, so the engine only ever sees one caller at a time; reads go
// through an atomic snapshot pointer and never block on the lock.
type Room struct {
	id     string
	name   string
	logger *log.Logger
	clock  quartz.Clock

	mu           sync.Mutex
	engine       *game.Engine
	members      map[string]*member
	reservations *reservationSet
	pending      *game.ActionRequest
	observer     Observer

	snapshot atomic.Pointer[game.GameState]

	actionTimeout time.Duration
}

// New creates a room with a fresh engine
func New(cfg Config) (*Room, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	clock := cfg.Clock
	if clock == nil {
		clock = quartz.NewReal()
	}

	cfg.Game.Logger = logger
	engine, err := game.NewEngine(cfg.Game)
	if err != nil {
		return nil, err
	}

	r := &Room{
		id:            cfg.ID,
		name:          cfg.Name,
		logger:        logger.WithPrefix("room").With("room", cfg.ID),
		clock:         clock,
		engine:        engine,
		members:       make(map[string]*member),
		reservations:  newReservationSet(clock, cfg.ReservationTTL),
		actionTimeout: cfg.ActionTimeout,
	}
	r.snapshot.Store(engine.State())
	engine.Bus().Subscribe(r)
	return r, nil
}

// ID returns the room identifier
func (r *Room) ID() string {
	return r.id
}

// Name returns the room's display name
func (r *Room) Name() string {
	return r.name
}

// SetObserver attaches the delivery sink for room messages
func (r *Room) SetObserver(obs Observer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.observer = obs
}

// Snapshot returns the latest game state without taking the room lock.
// Snapshots are immutable; callers may read them freely.
func (r *Room) Snapshot() *game.GameState {
	return r.snapshot.Load()
}

// Join adds a player to the room as an observer of the game. They see the
// current state immediately and may then reserve or take a seat.
func (r *Room) Join(playerID, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if m, ok := r.members[playerID]; ok {
		m.connected = true
	} else {
		r.members[playerID] = &member{id: playerID, name: name, connected: true}
	}
	r.logger.Info("Player joined room", "player", playerID)

	r.sendToPlayer(playerID, MessageTypeWelcome, WelcomeData{PlayerID: playerID})
	r.broadcast(MessageTypePlayerConnected, PlayerConnectionData{PlayerID: playerID})
	r.sendToPlayer(playerID, MessageTypeRoomJoined, RoomJoinedData{
		RoomID:   r.id,
		RoomName: r.name,
		State:    NewStateView(r.id, r.engine.State(), playerID),
	})
	return nil
}

// Leave removes a player from the room, standing them up first if seated
func (r *Room) Leave(playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if p, _ := r.engine.State().Table.FindPlayer(playerID); p != nil {
		if err := r.standLocked(playerID); err != nil {
			return err
		}
	}
	r.reservations.releaseFor(playerID)
	delete(r.members, playerID)
	r.logger.Info("Player left room", "player", playerID)

	r.broadcast(MessageTypeRoomLeft, map[string]string{"playerId": playerID})
	return nil
}

// ReserveSeat holds a seat for a player while they complete their buy-in.
// The hold expires on its own; taking the seat consumes it.
func (r *Room) ReserveSeat(playerID string, seat int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	gs := r.engine.State()
	if seat < 0 || seat >= len(gs.Table.Seats) {
		return &game.Error{Code: game.CodeInvalidSeat, Msg: "no such seat"}
	}
	if gs.Table.Seats[seat] != nil {
		return &game.Error{Code: game.CodeSeatOccupied, Msg: "seat is occupied"}
	}
	expiresAt, ok := r.reservations.reserve(seat, playerID)
	if !ok {
		return &game.Error{Code: game.CodeSeatReserved, Msg: "seat is reserved by another player"}
	}

	r.broadcast(MessageTypeSeatReserved, SeatReservedData{
		Seat:      seat,
		PlayerID:  playerID,
		ExpiresAt: expiresAt,
	})
	return nil
}

// TakeSeat buys a player into a seat. A live reservation by someone else
// blocks the seat; the player's own reservation is consumed.
func (r *Room) TakeSeat(playerID string, seat int, buyIn float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.members[playerID]
	if !ok {
		return &game.Error{Code: game.CodePlayerNotFound, Msg: "join the room before taking a seat"}
	}
	if buyIn <= 0 {
		return &game.Error{Code: game.CodeInsufficientBuyIn, Msg: "buy-in must be positive"}
	}
	if !r.reservations.canTake(seat, playerID) {
		return &game.Error{Code: game.CodeSeatReserved, Msg: "seat is reserved by another player"}
	}

	gs, err := r.engine.SitPlayer(seat, game.NewPlayer(playerID, m.name, buyIn))
	if err != nil {
		return err
	}
	r.reservations.release(seat)
	r.storeSnapshot(gs)

	r.broadcast(MessageTypeSeatTaken, SeatTakenData{
		Seat:     seat,
		PlayerID: playerID,
		Name:     m.name,
		Chips:    buyIn,
	})
	return nil
}

// LeaveSeat stands a player up, folding them out of any hand in progress
func (r *Room) LeaveSeat(playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.standLocked(playerID)
}

func (r *Room) standLocked(playerID string) error {
	_, seat := r.engine.State().Table.FindPlayer(playerID)
	gs, err := r.engine.StandPlayer(playerID)
	if err != nil {
		return err
	}
	r.storeSnapshot(gs)
	r.refreshPending()

	r.broadcast(MessageTypeSeatLeft, SeatLeftData{Seat: seat, PlayerID: playerID})
	return nil
}

// SetSitOut toggles a player's sitting-out state
func (r *Room) SetSitOut(playerID string, sitOut bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	gs, err := r.engine.SetSitOut(playerID, sitOut)
	if err != nil {
		return err
	}
	r.storeSnapshot(gs)
	return nil
}

// StartHand starts the next hand and deals everyone in. Hole cards go to
// each player privately; the table only learns the card backs exist.
func (r *Room) StartHand() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	gs, err := r.engine.StartHand()
	if err != nil {
		return err
	}
	r.storeSnapshot(gs)

	for _, p := range gs.Table.PlayersInHand() {
		r.sendToPlayer(p.ID, MessageTypeHoleCards, HoleCardsData{
			HandID: gs.HandID,
			Cards:  p.HoleCards,
		})
	}
	r.refreshPending()
	return nil
}

// PerformAction applies a betting action on behalf of a player
func (r *Room) PerformAction(playerID string, action game.ActionType, amount float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	gs, err := r.engine.ProcessAction(playerID, action, amount)
	if err != nil {
		return err
	}
	r.storeSnapshot(gs)
	r.refreshPending()
	return nil
}

// Chat relays a chat message to the whole room
func (r *Room) Chat(playerID, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.members[playerID]
	if !ok {
		return &game.Error{Code: game.CodePlayerNotFound, Msg: "join the room before chatting"}
	}
	r.broadcast(MessageTypeChatMessage, ChatMessageData{
		PlayerID: playerID,
		Name:     m.name,
		Message:  text,
	})
	return nil
}

// Disconnect marks a player as disconnected without removing them. Their
// seat, chips and any live hand stay exactly as they are.
func (r *Room) Disconnect(playerID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if m, ok := r.members[playerID]; ok {
		m.connected = false
		r.logger.Info("Player disconnected", "player", playerID)
		r.broadcast(MessageTypePlayerDisconnected, PlayerConnectionData{PlayerID: playerID})
	}
}

// Reconnect re-syncs a returning player: a fresh state view, their hole
// cards if a hand is live, and a replay of the action request if the game
// is waiting on them.
func (r *Room) Reconnect(playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.members[playerID]
	if !ok {
		return &game.Error{Code: game.CodePlayerNotFound, Msg: "unknown player"}
	}
	m.connected = true
	r.logger.Info("Player reconnected", "player", playerID)
	r.broadcast(MessageTypePlayerConnected, PlayerConnectionData{PlayerID: playerID})

	gs := r.engine.State()
	r.sendToPlayer(playerID, MessageTypeGameState, NewStateView(r.id, gs, playerID))

	if p, _ := gs.Table.FindPlayer(playerID); p != nil && len(p.HoleCards) > 0 && p.InHand() {
		r.sendToPlayer(playerID, MessageTypeHoleCards, HoleCardsData{
			HandID: gs.HandID,
			Cards:  p.HoleCards,
		})
	}
	if r.pending != nil && r.pending.PlayerID == playerID {
		r.sendToPlayer(playerID, MessageTypeActionRequired,
			actionRequiredData(r.id, r.pending, int(r.actionTimeout/time.Second)))
	}
	return nil
}

// PendingAction returns the outstanding action request, if any
func (r *Room) PendingAction() *game.ActionRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pending
}

// Seated returns how many seats are occupied
func (r *Room) Seated() int {
	gs := r.Snapshot()
	count := 0
	for _, p := range gs.Table.Seats {
		if p != nil {
			count++
		}
	}
	return count
}

func (r *Room) storeSnapshot(gs *game.GameState) {
	r.snapshot.Store(gs)
}

// refreshPending recomputes who the game is waiting on and sends them an
// action request. Called after every state transition under the lock.
func (r *Room) refreshPending() {
	r.pending = r.engine.PendingAction()
	if r.pending == nil {
		return
	}
	r.sendToPlayer(r.pending.PlayerID, MessageTypeActionRequired,
		actionRequiredData(r.id, r.pending, int(r.actionTimeout/time.Second)))
}

// OnEvent translates engine events into protocol broadcasts. The engine
// publishes synchronously during commands, so this runs under the room
// lock.
func (r *Room) OnEvent(event game.GameEvent) {
	switch e := event.(type) {
	case game.HandStartEvent:
		r.broadcast(MessageTypeHandStart, HandStartData{
			HandID:     e.HandID,
			HandNum:    e.HandNum,
			DealerSeat: e.DealerSeat,
			Players:    e.Players,
		})

	case game.BlindPostedEvent:
		r.broadcast(MessageTypeBlindPosted, BlindPostedData{
			PlayerID: e.PlayerID,
			Seat:     e.Seat,
			Kind:     e.Kind,
			Amount:   e.Amount,
			AllIn:    e.AllIn,
		})

	case game.CardsDealtEvent:
		if len(e.Community) == 0 {
			// Hole card deal; each player gets theirs privately
			return
		}
		r.broadcast(MessageTypeStreetChange, StreetChangeData{
			Street:    e.Street.String(),
			Community: e.Community,
			PotTotal:  e.PotTotal,
		})

	case game.PlayerActionEvent:
		r.broadcast(MessageTypePlayerActed, PlayerActedData{
			PlayerID: e.PlayerID,
			Seat:     e.Seat,
			Action:   e.Action.String(),
			Amount:   e.Amount,
			PotAfter: e.PotAfter,
			Street:   e.Street.String(),
		})

	case game.HandEndEvent:
		if e.Showdown {
			data := ShowdownData{HandID: e.HandID}
			for _, h := range e.ShownHands {
				data.Hands = append(data.Hands, ShownHand{PlayerID: h.PlayerID, Seat: h.Seat, Cards: h.Cards})
			}
			r.broadcast(MessageTypeShowdown, data)
		}
		r.broadcast(MessageTypeHandEnd, HandEndData{
			HandID:   e.HandID,
			Winners:  e.Winners,
			PotSize:  e.PotSize,
			Rake:     e.Rake,
			Showdown: e.Showdown,
		})
	}
}

func (r *Room) broadcast(messageType MessageType, data interface{}) {
	if r.observer == nil {
		return
	}
	msg, err := NewMessage(messageType, data)
	if err != nil {
		r.logger.Error("Failed to create message", "type", messageType, "error", err)
		return
	}
	r.observer.Broadcast(msg)
}

func (r *Room) sendToPlayer(playerID string, messageType MessageType, data interface{}) {
	if r.observer == nil {
		return
	}
	msg, err := NewMessage(messageType, data)
	if err != nil {
		r.logger.Error("Failed to create message", "type", messageType, "error", err)
		return
	}
	r.observer.SendToPlayer(playerID, msg)
}
