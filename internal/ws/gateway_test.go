package ws

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"mancala_arena/internal/domain"
	"mancala_arena/internal/service"
	"mancala_arena/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient builds a client with no underlying connection; frames land
// in the send buffer and the test reads them there.
func newTestClient(playerID string) *Client {
	return &Client{
		PlayerID: playerID,
		send:     make(chan []byte, sendBuffer),
	}
}

func recvFrame(t *testing.T, c *Client) Message {
	t.Helper()
	select {
	case data := <-c.send:
		var msg Message
		require.NoError(t, json.Unmarshal(data, &msg))
		return msg
	case <-time.After(time.Second):
		t.Fatal("no frame received")
		return Message{}
	}
}

func drainFrames(c *Client) {
	for {
		select {
		case <-c.send:
		default:
			return
		}
	}
}

func payloadField(t *testing.T, msg Message, field string) any {
	t.Helper()
	obj, ok := msg.Payload.(map[string]any)
	require.True(t, ok, "payload is not an object")
	return obj[field]
}

func newGatewayFixture(t *testing.T) (*Gateway, *Hub, *service.RoomService, *domain.Room) {
	t.Helper()
	hub := NewHub()
	svc := service.NewRoomService(store.NewMemoryStore(), hub, service.DefaultConfig())
	t.Cleanup(svc.Stop)

	room, err := svc.CreateRoom("p1", "Ana")
	require.NoError(t, err)
	_, err = svc.JoinRoom(room.Code, "p2", "Ben")
	require.NoError(t, err)

	return NewGateway(svc, hub), hub, svc, room
}

func send(g *Gateway, c *Client, event string, payload any) {
	raw, _ := json.Marshal(map[string]any{"type": event, "payload": payload})
	g.HandleMessage(c, raw)
}

func TestJoinRoomReplaysSnapshotAndStart(t *testing.T) {
	gw, _, _, room := newGatewayFixture(t)

	c := newTestClient("p1")
	send(gw, c, EventJoinRoom, JoinRoomPayload{RoomID: room.ID})

	snap := recvFrame(t, c)
	assert.Equal(t, EventRoomSnapshot, snap.Type)
	assert.Equal(t, room.Code, payloadField(t, snap, "code"))

	started := recvFrame(t, c)
	assert.Equal(t, EventGameStarted, started.Type)
	assert.NotNil(t, payloadField(t, started, "game_state"))
}

func TestJoinRoomBeforeGameStartOmitsStartEvent(t *testing.T) {
	hub := NewHub()
	svc := service.NewRoomService(store.NewMemoryStore(), hub, service.DefaultConfig())
	t.Cleanup(svc.Stop)
	room, err := svc.CreateRoom("p1", "Ana")
	require.NoError(t, err)
	gw := NewGateway(svc, hub)

	c := newTestClient("p1")
	send(gw, c, EventJoinRoom, JoinRoomPayload{RoomID: room.ID})

	snap := recvFrame(t, c)
	assert.Equal(t, EventRoomSnapshot, snap.Type)
	select {
	case data := <-c.send:
		t.Fatalf("unexpected extra frame: %s", data)
	default:
	}
}

func TestMakeMoveBroadcastsStateUpdate(t *testing.T) {
	gw, _, _, room := newGatewayFixture(t)

	c1 := newTestClient("p1")
	c2 := newTestClient("p2")
	send(gw, c1, EventJoinRoom, JoinRoomPayload{RoomID: room.ID})
	send(gw, c2, EventJoinRoom, JoinRoomPayload{RoomID: room.ID})
	drainFrames(c1)
	drainFrames(c2)

	send(gw, c1, EventMakeMove, MakeMovePayload{RoomID: room.ID, PitIndex: 0, PlayerID: "p1"})

	for _, c := range []*Client{c1, c2} {
		msg := recvFrame(t, c)
		assert.Equal(t, EventStateUpdate, msg.Type)
		assert.NotNil(t, payloadField(t, msg, "game_state"))
	}
}

func TestMakeMoveRejectionGoesToSenderOnly(t *testing.T) {
	gw, _, _, room := newGatewayFixture(t)

	c1 := newTestClient("p1")
	c2 := newTestClient("p2")
	send(gw, c1, EventJoinRoom, JoinRoomPayload{RoomID: room.ID})
	send(gw, c2, EventJoinRoom, JoinRoomPayload{RoomID: room.ID})
	drainFrames(c1)
	drainFrames(c2)

	// Player 2 moves out of turn.
	send(gw, c2, EventMakeMove, MakeMovePayload{RoomID: room.ID, PitIndex: 7, PlayerID: "p2"})

	msg := recvFrame(t, c2)
	assert.Equal(t, EventMoveRejected, msg.Type)
	assert.Contains(t, fmt.Sprint(payloadField(t, msg, "message")), "not your turn")

	select {
	case data := <-c1.send:
		t.Fatalf("rejection leaked to opponent: %s", data)
	default:
	}
}

func TestMakeMoveFallsBackToConnectionIdentity(t *testing.T) {
	gw, _, _, room := newGatewayFixture(t)

	c := newTestClient("p1")
	send(gw, c, EventJoinRoom, JoinRoomPayload{RoomID: room.ID})
	drainFrames(c)

	// No player_id in the payload; the token-derived identity applies.
	send(gw, c, EventMakeMove, MakeMovePayload{RoomID: room.ID, PitIndex: 2})

	msg := recvFrame(t, c)
	assert.Equal(t, EventStateUpdate, msg.Type)
	// Sowing pit 2 lands in the mover's store: extra turn.
	assert.Equal(t, true, payloadField(t, msg, "extra_turn"))
}

func TestMakeMoveEmitsGameOver(t *testing.T) {
	gw, _, svc, room := newGatewayFixture(t)

	// Force an endgame position: player 1's last seed empties their side.
	r, err := svc.GetRoom(room.ID)
	require.NoError(t, err)
	r.GameState.Board = [14]int{0, 0, 0, 0, 0, 1, 30, 2, 2, 2, 2, 2, 2, 5}
	r.GameState.CurrentPlayer = domain.Player1

	st := store.NewMemoryStore()
	require.NoError(t, st.Insert(r))
	hub := NewHub()
	svc2 := service.NewRoomService(st, hub, service.DefaultConfig())
	t.Cleanup(svc2.Stop)
	gw = NewGateway(svc2, hub)

	c := newTestClient("p1")
	send(gw, c, EventJoinRoom, JoinRoomPayload{RoomID: r.ID})
	drainFrames(c)

	send(gw, c, EventMakeMove, MakeMovePayload{RoomID: r.ID, PitIndex: 5, PlayerID: "p1"})

	update := recvFrame(t, c)
	assert.Equal(t, EventStateUpdate, update.Type)

	over := recvFrame(t, c)
	assert.Equal(t, EventGameOver, over.Type)
	assert.Equal(t, string(domain.WinnerPlayer1), payloadField(t, over, "winner"))
}

func TestLeaveRoomStopsDelivery(t *testing.T) {
	gw, hub, _, room := newGatewayFixture(t)

	c := newTestClient("p1")
	send(gw, c, EventJoinRoom, JoinRoomPayload{RoomID: room.ID})
	drainFrames(c)

	send(gw, c, EventLeaveRoom, LeaveRoomPayload{RoomID: room.ID})
	hub.BroadcastRoom(room.ID, EventStateUpdate, nil)

	select {
	case data := <-c.send:
		t.Fatalf("frame delivered after leave: %s", data)
	default:
	}
}

func TestMalformedMessageIsRejected(t *testing.T) {
	gw, _, _, _ := newGatewayFixture(t)

	c := newTestClient("p1")
	gw.HandleMessage(c, []byte("{not json"))

	msg := recvFrame(t, c)
	assert.Equal(t, EventMoveRejected, msg.Type)
}
