package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardroomlabs/cardroom/internal/room"
)

func findFreePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}

func startTestServer(t *testing.T, port int) *Server {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})

	srv := NewServer(fmt.Sprintf("127.0.0.1:%d", port), logger)
	service := NewRoomService(srv, logger, 12345, nil)
	srv.SetRoomService(service)

	rc := DefaultConfig().Rooms[0]
	rc.AutoStart = false
	_, err := service.CreateRoom(rc)
	require.NoError(t, err)

	go func() { _ = srv.Start() }()
	t.Cleanup(func() { _ = srv.Stop() })

	// Wait for the listener to come up
	healthURL := fmt.Sprintf("http://127.0.0.1:%d/health", port)
	require.Eventually(t, func() bool {
		resp, err := http.Get(healthURL)
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	return srv
}

type testClient struct {
	t    *testing.T
	name string
	conn *websocket.Conn
}

func connectClient(t *testing.T, port int, name string) *testClient {
	t.Helper()
	url := fmt.Sprintf("ws://127.0.0.1:%d/ws", port)
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return &testClient{t: t, name: name, conn: conn}
}

func (tc *testClient) send(messageType room.MessageType, data interface{}) {
	tc.t.Helper()
	msg, err := room.NewMessage(messageType, data)
	require.NoError(tc.t, err)
	require.NoError(tc.t, tc.conn.WriteJSON(msg))
}

// waitFor reads messages until one of the wanted type arrives
func (tc *testClient) waitFor(messageType room.MessageType) *room.Message {
	tc.t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	_ = tc.conn.SetReadDeadline(deadline)

	for time.Now().Before(deadline) {
		var msg room.Message
		if err := tc.conn.ReadJSON(&msg); err != nil {
			tc.t.Fatalf("waiting for %s: %v", messageType, err)
		}
		if msg.Type == messageType {
			return &msg
		}
	}
	tc.t.Fatalf("timed out waiting for %s", messageType)
	return nil
}

// waitForEither reads both connections until one receives the wanted type.
// Action requests go only to the player due to act, so the test cannot know
// up front which connection will see them.
func waitForEither(t *testing.T, a, b *testClient, messageType room.MessageType) (*testClient, *room.Message) {
	t.Helper()

	type result struct {
		client *testClient
		msg    *room.Message
	}
	found := make(chan result, 2)

	for _, tc := range []*testClient{a, b} {
		go func(tc *testClient) {
			deadline := time.Now().Add(5 * time.Second)
			_ = tc.conn.SetReadDeadline(deadline)
			for {
				var msg room.Message
				if err := tc.conn.ReadJSON(&msg); err != nil {
					return
				}
				if msg.Type == messageType {
					found <- result{tc, &msg}
					return
				}
			}
		}(tc)
	}

	select {
	case r := <-found:
		return r.client, r.msg
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for %s on either connection", messageType)
		return nil, nil
	}
}

func TestHealthEndpoint(t *testing.T) {
	port := findFreePort(t)
	startTestServer(t, port)

	resp, err := http.Get(fmt.Sprintf("http://127.0.0.1:%d/health", port))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestJoinRoomOverWebSocket(t *testing.T) {
	port := findFreePort(t)
	startTestServer(t, port)

	client := connectClient(t, port, "alice")
	client.send(room.MessageTypeJoinRoom, room.JoinRoomData{RoomID: "main", PlayerName: "alice"})

	msg := client.waitFor(room.MessageTypeRoomJoined)
	var data room.RoomJoinedData
	require.NoError(t, json.Unmarshal(msg.Data, &data))
	assert.Equal(t, "main", data.RoomID)
	assert.Equal(t, "waiting", data.State.Phase)
}

func TestListRooms(t *testing.T) {
	port := findFreePort(t)
	startTestServer(t, port)

	client := connectClient(t, port, "alice")
	client.send(room.MessageTypeListRooms, struct{}{})

	msg := client.waitFor(room.MessageTypeRoomList)
	var data room.RoomListData
	require.NoError(t, json.Unmarshal(msg.Data, &data))
	require.Len(t, data.Rooms, 1)
	assert.Equal(t, "main", data.Rooms[0].ID)
	assert.Equal(t, 6, data.Rooms[0].Seats)
}

func TestJoinUnknownRoomFails(t *testing.T) {
	port := findFreePort(t)
	startTestServer(t, port)

	client := connectClient(t, port, "alice")
	client.send(room.MessageTypeJoinRoom, room.JoinRoomData{RoomID: "nope", PlayerName: "alice"})

	msg := client.waitFor(room.MessageTypeError)
	var data room.ErrorData
	require.NoError(t, json.Unmarshal(msg.Data, &data))
	assert.Equal(t, "room_not_found", data.Code)
}

func TestBuyInLimitsEnforced(t *testing.T) {
	port := findFreePort(t)
	startTestServer(t, port)

	client := connectClient(t, port, "alice")
	client.send(room.MessageTypeJoinRoom, room.JoinRoomData{RoomID: "main", PlayerName: "alice"})
	client.waitFor(room.MessageTypeRoomJoined)

	client.send(room.MessageTypeTakeSeat, room.TakeSeatData{Seat: 0, BuyIn: 5})

	msg := client.waitFor(room.MessageTypeError)
	var data room.ErrorData
	require.NoError(t, json.Unmarshal(msg.Data, &data))
	assert.Equal(t, "insufficient_buy_in", data.Code)
}

func TestTwoPlayersPlayAHand(t *testing.T) {
	port := findFreePort(t)
	startTestServer(t, port)

	alice := connectClient(t, port, "alice")
	alice.send(room.MessageTypeJoinRoom, room.JoinRoomData{RoomID: "main", PlayerName: "alice"})
	alice.waitFor(room.MessageTypeRoomJoined)
	alice.send(room.MessageTypeTakeSeat, room.TakeSeatData{Seat: 0, BuyIn: 200})
	alice.waitFor(room.MessageTypeSeatTaken)

	bob := connectClient(t, port, "bob")
	bob.send(room.MessageTypeJoinRoom, room.JoinRoomData{RoomID: "main", PlayerName: "bob"})
	bob.waitFor(room.MessageTypeRoomJoined)
	bob.send(room.MessageTypeTakeSeat, room.TakeSeatData{Seat: 1, BuyIn: 200})
	bob.waitFor(room.MessageTypeSeatTaken)

	alice.send(room.MessageTypeStartHand, struct{}{})

	start := alice.waitFor(room.MessageTypeHandStart)
	var handStart room.HandStartData
	require.NoError(t, json.Unmarshal(start.Data, &handStart))
	assert.Len(t, handStart.Players, 2)

	holeCards := alice.waitFor(room.MessageTypeHoleCards)
	var cards room.HoleCardsData
	require.NoError(t, json.Unmarshal(holeCards.Data, &cards))
	assert.Len(t, cards.Cards, 2)

	// Whoever is due to act folds; the hand ends without a showdown
	actor, req := waitForEither(t, alice, bob, room.MessageTypeActionRequired)
	var reqData room.ActionRequiredData
	require.NoError(t, json.Unmarshal(req.Data, &reqData))
	assert.Equal(t, actor.name, reqData.PlayerID)

	actor.send(room.MessageTypePlayerAction, room.PlayerActionData{Action: "fold"})

	end := actor.waitFor(room.MessageTypeHandEnd)
	var endData room.HandEndData
	require.NoError(t, json.Unmarshal(end.Data, &endData))
	assert.False(t, endData.Showdown)
	require.Len(t, endData.Winners, 1)
}
