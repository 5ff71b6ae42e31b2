package room

import (
	"encoding/json"
	"time"

	"github.com/cardroomlabs/cardroom/internal/game"
	"github.com/cardroomlabs/cardroom/poker"
)

// MessageType represents a room protocol message type with type safety
type MessageType string

const (
	// Client to server messages
	MessageTypeJoinRoom     MessageType = "join_room"
	MessageTypeLeaveRoom    MessageType = "leave_room"
	MessageTypeReserveSeat  MessageType = "reserve_seat"
	MessageTypeTakeSeat     MessageType = "take_seat"
	MessageTypeLeaveSeat    MessageType = "leave_seat"
	MessageTypeSitOut       MessageType = "sit_out"
	MessageTypeSitIn        MessageType = "sit_in"
	MessageTypePlayerAction MessageType = "player_action"
	MessageTypeStartHand    MessageType = "start_hand"
	MessageTypeChat         MessageType = "chat"
	MessageTypeReconnect    MessageType = "reconnect"
	MessageTypeListRooms    MessageType = "list_rooms"

	// Server to client messages
	MessageTypeWelcome        MessageType = "welcome"
	MessageTypeRoomJoined     MessageType = "room_joined"
	MessageTypeRoomLeft       MessageType = "room_left"
	MessageTypeSeatReserved   MessageType = "seat_reserved"
	MessageTypeSeatTaken      MessageType = "seat_taken"
	MessageTypeSeatLeft       MessageType = "seat_left"
	MessageTypeGameState      MessageType = "game_state"
	MessageTypeHandStart      MessageType = "hand_start"
	MessageTypeBlindPosted    MessageType = "blind_posted"
	MessageTypeHoleCards      MessageType = "hole_cards"
	MessageTypeStreetChange   MessageType = "street_change"
	MessageTypeActionRequired MessageType = "action_required"
	MessageTypePlayerActed    MessageType = "player_acted"
	MessageTypeShowdown       MessageType = "showdown"
	MessageTypeHandEnd        MessageType = "hand_end"
	MessageTypeChatMessage    MessageType = "chat_message"
	MessageTypeRoomList       MessageType = "room_list"
	MessageTypeError          MessageType = "error"

	MessageTypePlayerConnected    MessageType = "player_connected"
	MessageTypePlayerDisconnected MessageType = "player_disconnected"
)

// String returns the string representation of the message type
func (mt MessageType) String() string {
	return string(mt)
}

// Message represents the base room protocol message structure
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
	RequestID string          `json:"requestId,omitempty"`
}

// NewMessage creates a new message with the current timestamp
func NewMessage(messageType MessageType, data interface{}) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: time.Now(),
	}, nil
}

// Client → Server Messages

type JoinRoomData struct {
	RoomID     string `json:"roomId"`
	PlayerName string `json:"playerName"`
}

type ReconnectData struct {
	RoomID   string `json:"roomId"`
	PlayerID string `json:"playerId"`
}

type ReserveSeatData struct {
	Seat int `json:"seat"`
}

type TakeSeatData struct {
	Seat  int     `json:"seat"`
	BuyIn float64 `json:"buyIn"`
}

type PlayerActionData struct {
	Action string  `json:"action"`
	Amount float64 `json:"amount,omitempty"`
}

type SitOutData struct {
	SitOut bool `json:"sitOut"`
}

type ChatData struct {
	Message string `json:"message"`
}

// Server → Client Messages

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type WelcomeData struct {
	PlayerID string `json:"playerId"`
}

type PlayerConnectionData struct {
	PlayerID string `json:"playerId"`
}

type RoomInfo struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Variant    string  `json:"variant"`
	Limit      string  `json:"limit"`
	SmallBlind float64 `json:"smallBlind"`
	BigBlind   float64 `json:"bigBlind"`
	Seats      int     `json:"seats"`
	Seated     int     `json:"seated"`
	Phase      string  `json:"phase"`
}

type RoomListData struct {
	Rooms []RoomInfo `json:"rooms"`
}

type RoomJoinedData struct {
	RoomID   string    `json:"roomId"`
	RoomName string    `json:"roomName"`
	State    StateView `json:"state"`
}

type SeatReservedData struct {
	Seat      int       `json:"seat"`
	PlayerID  string    `json:"playerId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type SeatTakenData struct {
	Seat     int     `json:"seat"`
	PlayerID string  `json:"playerId"`
	Name     string  `json:"name"`
	Chips    float64 `json:"chips"`
}

type SeatLeftData struct {
	Seat     int    `json:"seat"`
	PlayerID string `json:"playerId"`
}

type HandStartData struct {
	HandID     string   `json:"handId"`
	HandNum    uint64   `json:"handNum"`
	DealerSeat int      `json:"dealerSeat"`
	Players    []string `json:"players"`
}

type BlindPostedData struct {
	PlayerID string  `json:"playerId"`
	Seat     int     `json:"seat"`
	Kind     string  `json:"kind"`
	Amount   float64 `json:"amount"`
	AllIn    bool    `json:"allIn,omitempty"`
}

type HoleCardsData struct {
	HandID string       `json:"handId"`
	Cards  []poker.Card `json:"cards"`
}

type StreetChangeData struct {
	Street    string       `json:"street"`
	Community []poker.Card `json:"community"`
	PotTotal  float64      `json:"potTotal"`
}

type ValidActionInfo struct {
	Action    string  `json:"action"`
	MinAmount float64 `json:"minAmount,omitempty"`
	MaxAmount float64 `json:"maxAmount,omitempty"`
}

type ActionRequiredData struct {
	RoomID         string            `json:"roomId"`
	PlayerID       string            `json:"playerId"`
	Seat           int               `json:"seat"`
	Street         string            `json:"street"`
	ValidActions   []ValidActionInfo `json:"validActions"`
	CallAmount     float64           `json:"callAmount,omitempty"`
	PotTotal       float64           `json:"potTotal"`
	TimeoutSeconds int               `json:"timeoutSeconds,omitempty"`
}

type PlayerActedData struct {
	PlayerID string  `json:"playerId"`
	Seat     int     `json:"seat"`
	Action   string  `json:"action"`
	Amount   float64 `json:"amount"`
	PotAfter float64 `json:"potAfter"`
	Street   string  `json:"street"`
}

type ShownHand struct {
	PlayerID string       `json:"playerId"`
	Seat     int          `json:"seat"`
	Cards    []poker.Card `json:"cards"`
}

type ShowdownData struct {
	HandID string      `json:"handId"`
	Hands  []ShownHand `json:"hands"`
}

type HandEndData struct {
	HandID   string        `json:"handId"`
	Winners  []game.Winner `json:"winners"`
	PotSize  float64       `json:"potSize"`
	Rake     float64       `json:"rake"`
	Showdown bool          `json:"showdown"`
}

type ChatMessageData struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	Message  string `json:"message"`
}

// State views

// SeatView is one seat as seen by a particular viewer. Hole cards are
// present only for the viewer's own seat, or for hands shown at showdown.
type SeatView struct {
	Seat       int          `json:"seat"`
	PlayerID   string       `json:"playerId,omitempty"`
	Name       string       `json:"name,omitempty"`
	Chips      float64      `json:"chips"`
	CurrentBet float64      `json:"currentBet"`
	Status     string       `json:"status,omitempty"`
	HoleCards  []poker.Card `json:"holeCards,omitempty"`
	IsDealer   bool         `json:"isDealer,omitempty"`
	Empty      bool         `json:"empty,omitempty"`
}

// PotView is one pot layer for display
type PotView struct {
	Amount   float64  `json:"amount"`
	Eligible []string `json:"eligible,omitempty"`
	Main     bool     `json:"main,omitempty"`
}

// StateView is a redacted snapshot of the room for one viewer
type StateView struct {
	RoomID      string       `json:"roomId"`
	Variant     string       `json:"variant"`
	Phase       string       `json:"phase"`
	HandID      string       `json:"handId,omitempty"`
	HandNum     uint64       `json:"handNum"`
	DealerSeat  int          `json:"dealerSeat"`
	CurrentSeat int          `json:"currentSeat"`
	Community   []poker.Card `json:"community,omitempty"`
	Pots        []PotView    `json:"pots,omitempty"`
	PotTotal    float64      `json:"potTotal"`
	Seats       []SeatView   `json:"seats"`
}

// NewStateView builds a viewer-specific snapshot. Other players' hole cards
// are stripped unless their hand was shown at showdown.
func NewStateView(roomID string, gs *game.GameState, viewerID string) StateView {
	view := StateView{
		RoomID:      roomID,
		Variant:     string(gs.Variant),
		Phase:       gs.Phase.String(),
		HandID:      gs.HandID,
		HandNum:     gs.HandNum,
		DealerSeat:  gs.Table.DealerSeat,
		CurrentSeat: gs.CurrentSeat,
		Community:   gs.Community,
		PotTotal:    gs.PotTotal(),
		Seats:       make([]SeatView, len(gs.Table.Seats)),
	}

	for _, pot := range gs.Pots.Pots {
		view.Pots = append(view.Pots, PotView{Amount: pot.Amount, Eligible: pot.Eligible, Main: pot.Main})
	}

	for i, p := range gs.Table.Seats {
		if p == nil {
			view.Seats[i] = SeatView{Seat: i, Empty: true}
			continue
		}
		seat := SeatView{
			Seat:       i,
			PlayerID:   p.ID,
			Name:       p.Name,
			Chips:      p.Chips,
			CurrentBet: p.CurrentBet,
			Status:     p.Status.String(),
			IsDealer:   p.IsDealer,
		}
		if p.ID == viewerID || p.Showdown == game.ShowdownShown {
			seat.HoleCards = p.HoleCards
		}
		view.Seats[i] = seat
	}

	return view
}

func actionRequiredData(roomID string, req *game.ActionRequest, timeoutSeconds int) ActionRequiredData {
	data := ActionRequiredData{
		RoomID:         roomID,
		PlayerID:       req.PlayerID,
		Seat:           req.Seat,
		Street:         req.Street.String(),
		CallAmount:     req.CallAmount,
		PotTotal:       req.PotTotal,
		TimeoutSeconds: timeoutSeconds,
	}
	for _, action := range req.Legal {
		info := ValidActionInfo{Action: action.String()}
		switch action {
		case game.ActionCall:
			info.MinAmount = req.CallAmount
			info.MaxAmount = req.CallAmount
		case game.ActionBet:
			info.MinAmount = req.Limits.MinBet
			info.MaxAmount = req.Limits.MaxBet
		case game.ActionRaise:
			info.MinAmount = req.Limits.MinRaise
			info.MaxAmount = req.Limits.MaxBet
		}
		data.ValidActions = append(data.ValidActions, info)
	}
	return data
}
