package game

import (
	"time"

	"github.com/cardroomlabs/cardroom/poker"
)

// EventType identifies a game domain event
type EventType string

const (
	EventTypeHandStart    EventType = "hand_start"
	EventTypeBlindPosted  EventType = "blind_posted"
	EventTypeCardsDealt   EventType = "cards_dealt"
	EventTypePhaseChange  EventType = "phase_change"
	EventTypePlayerAction EventType = "player_action"
	EventTypeHandEnd      EventType = "hand_end"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// GameEvent is any domain event published during a hand
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// HandStartEvent is published when a new hand begins
type HandStartEvent struct {
	HandID     string
	HandNum    uint64
	DealerSeat int
	Players    []string // IDs of players dealt in, seat order
	timestamp  time.Time
}

func (e HandStartEvent) EventType() EventType { return EventTypeHandStart }
func (e HandStartEvent) Timestamp() time.Time { return e.timestamp }

// BlindPostedEvent is published for each blind or ante posted
type BlindPostedEvent struct {
	PlayerID  string
	Seat      int
	Kind      string // "small_blind", "big_blind", "ante"
	Amount    float64
	AllIn     bool
	timestamp time.Time
}

func (e BlindPostedEvent) EventType() EventType { return EventTypeBlindPosted }
func (e BlindPostedEvent) Timestamp() time.Time { return e.timestamp }

// CardsDealtEvent is published when hole or community cards are dealt.
// Community is empty for the hole-card deal; hole cards are delivered
// privately, never through the bus.
type CardsDealtEvent struct {
	Street    Phase
	Community []poker.Card
	PotTotal  float64
	timestamp time.Time
}

func (e CardsDealtEvent) EventType() EventType { return EventTypeCardsDealt }
func (e CardsDealtEvent) Timestamp() time.Time { return e.timestamp }

// PhaseChangeEvent is published on every phase transition
type PhaseChangeEvent struct {
	From      Phase
	To        Phase
	timestamp time.Time
}

func (e PhaseChangeEvent) EventType() EventType { return EventTypePhaseChange }
func (e PhaseChangeEvent) Timestamp() time.Time { return e.timestamp }

// PlayerActionEvent is published when a player's action is accepted
type PlayerActionEvent struct {
	PlayerID  string
	Seat      int
	Action    ActionType
	Amount    float64
	Street    Phase
	PotAfter  float64
	timestamp time.Time
}

func (e PlayerActionEvent) EventType() EventType { return EventTypePlayerAction }
func (e PlayerActionEvent) Timestamp() time.Time { return e.timestamp }

// HandEndEvent is published when a hand completes
type HandEndEvent struct {
	HandID  string
	Winners []Winner
	PotSize float64
	Rake    float64
	// Showdown is false if everyone else folded
	Showdown bool
	// ShownHands holds the hands revealed at showdown, in seat order
	ShownHands []ShownHand
	timestamp  time.Time
}

// ShownHand is one hand revealed at showdown
type ShownHand struct {
	PlayerID string
	Seat     int
	Cards    []poker.Card
}

func (e HandEndEvent) EventType() EventType { return EventTypeHandEnd }
func (e HandEndEvent) Timestamp() time.Time { return e.timestamp }

// EventSubscriber receives game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// EventBus manages event publishing and subscription. Each room owns its
// own bus; there is no global listener list.
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus is a basic in-memory event bus implementation
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() EventBus {
	return &SimpleEventBus{}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber from receiving events
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	for i, sub := range bus.subscribers {
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event GameEvent) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}

func now() time.Time {
	return time.Now()
}
