package server

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/cardroomlabs/cardroom/internal/game"
	"github.com/cardroomlabs/cardroom/internal/room"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192
)

var ErrConnectionClosed = websocket.ErrCloseSent

// Connection represents a WebSocket connection to a client
type Connection struct {
	conn      *websocket.Conn
	send      chan *room.Message
	playerID  string
	roomID    string
	logger    *log.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	mu        sync.RWMutex
	closeOnce sync.Once
	service   *RoomService
}

// NewConnection creates a new connection wrapper
func NewConnection(conn *websocket.Conn, logger *log.Logger, service *RoomService) *Connection {
	ctx, cancel := context.WithCancel(context.Background())

	return &Connection{
		conn:    conn,
		send:    make(chan *room.Message, 256),
		logger:  logger.WithPrefix("conn"),
		ctx:     ctx,
		cancel:  cancel,
		service: service,
	}
}

// Start begins handling the connection
func (c *Connection) Start() {
	go c.writePump()
	go c.readPump()
}

// Close closes the connection
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		close(c.send)
		err = c.conn.Close()
	})
	return err
}

// SendMessage sends a message to the client
func (c *Connection) SendMessage(msg *room.Message) error {
	defer func() {
		if r := recover(); r != nil {
			// Channel was closed during shutdown
			c.logger.Debug("Attempted to send message on closed connection", "error", r)
		}
	}()

	select {
	case c.send <- msg:
		return nil
	case <-c.ctx.Done():
		return c.ctx.Err()
	default:
		c.logger.Warn("Connection send buffer full, closing connection")
		_ = c.Close()
		return ErrConnectionClosed
	}
}

// SetPlayer associates this connection with a player
func (c *Connection) SetPlayer(playerID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.playerID = playerID
}

// GetPlayer returns the associated player ID
func (c *Connection) GetPlayer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.playerID
}

// SetRoom associates this connection with a room
func (c *Connection) SetRoom(roomID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.roomID = roomID
}

// GetRoom returns the associated room ID
func (c *Connection) GetRoom() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.roomID
}

// readPump handles incoming messages from the client
func (c *Connection) readPump() {
	defer func() { _ = c.Close() }()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		select {
		case <-c.ctx.Done():
			return
		default:
		}

		var msg room.Message
		err := c.conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Error("WebSocket error", "error", err)
			}
			break
		}

		c.handleMessage(&msg)
	}
}

// writePump handles outgoing messages to the client
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteJSON(message); err != nil {
				c.logger.Error("Failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			return
		}
	}
}

// handleMessage processes incoming messages from the client
func (c *Connection) handleMessage(msg *room.Message) {
	c.logger.Debug("Received message", "type", msg.Type, "player", c.GetPlayer())

	switch msg.Type {
	case room.MessageTypeJoinRoom:
		var data room.JoinRoomData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse join room data")
			return
		}
		c.handleJoinRoom(data)

	case room.MessageTypeReconnect:
		var data room.ReconnectData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse reconnect data")
			return
		}
		c.handleReconnect(data)

	case room.MessageTypeLeaveRoom:
		c.handleLeaveRoom()

	case room.MessageTypeListRooms:
		c.handleListRooms()

	case room.MessageTypeReserveSeat:
		var data room.ReserveSeatData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse reserve seat data")
			return
		}
		c.withRoom(func(r *room.Room) error {
			return r.ReserveSeat(c.GetPlayer(), data.Seat)
		})

	case room.MessageTypeTakeSeat:
		var data room.TakeSeatData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse take seat data")
			return
		}
		c.handleTakeSeat(data)

	case room.MessageTypeLeaveSeat:
		c.withRoom(func(r *room.Room) error {
			return r.LeaveSeat(c.GetPlayer())
		})

	case room.MessageTypeSitOut:
		var data room.SitOutData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse sit out data")
			return
		}
		c.withRoom(func(r *room.Room) error {
			return r.SetSitOut(c.GetPlayer(), data.SitOut)
		})

	case room.MessageTypeSitIn:
		c.withRoom(func(r *room.Room) error {
			return r.SetSitOut(c.GetPlayer(), false)
		})

	case room.MessageTypeStartHand:
		c.withRoom(func(r *room.Room) error {
			return r.StartHand()
		})

	case room.MessageTypePlayerAction:
		var data room.PlayerActionData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse player action data")
			return
		}
		c.handlePlayerAction(data)

	case room.MessageTypeChat:
		var data room.ChatData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid_message", "Failed to parse chat data")
			return
		}
		c.withRoom(func(r *room.Room) error {
			return r.Chat(c.GetPlayer(), data.Message)
		})

	default:
		c.sendError("unknown_message_type", "Unknown message type: "+msg.Type.String())
	}
}

// withRoom runs a room command for an authenticated, room-associated
// connection and reports failures back to the client.
func (c *Connection) withRoom(fn func(r *room.Room) error) {
	if c.service == nil {
		c.sendError("service_unavailable", "Room service not available")
		return
	}
	if c.GetPlayer() == "" {
		c.sendError("not_authenticated", "Join a room first")
		return
	}
	r, ok := c.service.GetRoom(c.GetRoom())
	if !ok {
		c.sendError("room_not_found", "Not in a room")
		return
	}
	if err := fn(r); err != nil {
		c.sendGameError(err)
	}
}

// sendError sends an error message to the client
func (c *Connection) sendError(code, message string) {
	errorMsg, err := room.NewMessage(room.MessageTypeError, room.ErrorData{
		Code:    code,
		Message: message,
	})
	if err != nil {
		c.logger.Error("Failed to create error message", "error", err)
		return
	}

	_ = c.SendMessage(errorMsg)
}

// sendGameError maps a game error onto the wire taxonomy
func (c *Connection) sendGameError(err error) {
	var gameErr *game.Error
	if errors.As(err, &gameErr) {
		c.sendError(string(gameErr.Code), gameErr.Msg)
		return
	}
	c.sendError(string(game.CodeInternal), err.Error())
}

func (c *Connection) handleJoinRoom(data room.JoinRoomData) {
	c.logger.Info("Join room request", "roomId", data.RoomID, "player", data.PlayerName)

	if c.service == nil {
		c.sendError("service_unavailable", "Room service not available")
		return
	}
	if data.PlayerName == "" {
		c.sendError("invalid_auth", "Player name required")
		return
	}

	r, ok := c.service.GetRoom(data.RoomID)
	if !ok {
		c.sendError("room_not_found", "Room not found: "+data.RoomID)
		return
	}

	// Associate the connection before joining so the room's replies can
	// find it.
	c.SetPlayer(data.PlayerName)
	c.SetRoom(data.RoomID)
	if err := r.Join(data.PlayerName, data.PlayerName); err != nil {
		c.SetPlayer("")
		c.SetRoom("")
		c.sendGameError(err)
	}
}

func (c *Connection) handleReconnect(data room.ReconnectData) {
	c.logger.Info("Reconnect request", "roomId", data.RoomID, "player", data.PlayerID)

	if c.service == nil {
		c.sendError("service_unavailable", "Room service not available")
		return
	}
	r, ok := c.service.GetRoom(data.RoomID)
	if !ok {
		c.sendError("room_not_found", "Room not found: "+data.RoomID)
		return
	}

	c.SetPlayer(data.PlayerID)
	c.SetRoom(data.RoomID)
	if err := r.Reconnect(data.PlayerID); err != nil {
		c.sendGameError(err)
	}
}

func (c *Connection) handleLeaveRoom() {
	c.withRoom(func(r *room.Room) error {
		return r.Leave(c.GetPlayer())
	})
	c.SetRoom("")
}

func (c *Connection) handleListRooms() {
	if c.service == nil {
		c.sendError("service_unavailable", "Room service not available")
		return
	}
	response, _ := room.NewMessage(room.MessageTypeRoomList, room.RoomListData{
		Rooms: c.service.ListRooms(),
	})
	_ = c.SendMessage(response)
}

func (c *Connection) handleTakeSeat(data room.TakeSeatData) {
	if c.service == nil {
		c.sendError("service_unavailable", "Room service not available")
		return
	}
	roomID := c.GetRoom()
	if err := c.service.CheckBuyIn(roomID, data.BuyIn); err != nil {
		c.sendGameError(err)
		return
	}
	c.withRoom(func(r *room.Room) error {
		return r.TakeSeat(c.GetPlayer(), data.Seat, data.BuyIn)
	})
	c.service.MaybeStartHand(roomID)
}

func (c *Connection) handlePlayerAction(data room.PlayerActionData) {
	action, err := game.ParseActionType(data.Action)
	if err != nil {
		c.sendError(string(game.CodeIllegalAction), err.Error())
		return
	}
	c.withRoom(func(r *room.Room) error {
		return r.PerformAction(c.GetPlayer(), action, data.Amount)
	})
	if c.service != nil {
		// A completed hand rolls straight into the next one
		c.service.MaybeStartHand(c.GetRoom())
	}
}
