package ws

import (
	"encoding/json"
	"errors"

	"mancala_arena/internal/logger"
	"mancala_arena/internal/service"
)

// Gateway is the real-time boundary: it parses client events, asks the room
// service (the turn authority) to mutate state, and fans results out to the
// room's subscribers. Validation failures go back to the submitting client
// only; room state is never touched on a rejected move.
type Gateway struct {
	rooms *service.RoomService
	hub   *Hub
}

func NewGateway(rooms *service.RoomService, hub *Hub) *Gateway {
	return &Gateway{rooms: rooms, hub: hub}
}

func (g *Gateway) HandleMessage(c *Client, raw []byte) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		g.hub.SendTo(c, EventMoveRejected, MoveRejectedPayload{Message: "malformed message"})
		return
	}

	switch env.Type {
	case EventJoinRoom:
		g.handleJoinRoom(c, env.Payload)
	case EventLeaveRoom:
		g.handleLeaveRoom(c, env.Payload)
	case EventMakeMove:
		g.handleMakeMove(c, env.Payload)
	default:
		logger.Debug("unknown ws event", "type", env.Type)
	}
}

// handleJoinRoom subscribes the client to the room channel and replays the
// current snapshot, so a late subscriber discovers an already-started game
// without waiting for the next move.
func (g *Gateway) handleJoinRoom(c *Client, raw json.RawMessage) {
	var p JoinRoomPayload
	if err := json.Unmarshal(raw, &p); err != nil || p.RoomID == "" {
		return
	}

	g.hub.Subscribe(c, p.RoomID)

	room, err := g.rooms.GetRoom(p.RoomID)
	if err != nil {
		return
	}
	g.hub.SendTo(c, EventRoomSnapshot, room)
	if room.GameState != nil {
		g.hub.SendTo(c, EventGameStarted, GameStartedPayload{GameState: room.GameState})
	}
}

func (g *Gateway) handleLeaveRoom(c *Client, raw json.RawMessage) {
	var p LeaveRoomPayload
	if err := json.Unmarshal(raw, &p); err != nil || p.RoomID == "" {
		return
	}
	g.hub.Unsubscribe(c, p.RoomID)
}

func (g *Gateway) handleMakeMove(c *Client, raw json.RawMessage) {
	var p MakeMovePayload
	if err := json.Unmarshal(raw, &p); err != nil {
		g.hub.SendTo(c, EventMoveRejected, MoveRejectedPayload{Message: "malformed move payload"})
		return
	}

	playerID := p.PlayerID
	if playerID == "" {
		playerID = c.PlayerID
	}

	outcome, err := g.rooms.ApplyMove(service.MoveRequest{
		RoomID:   p.RoomID,
		RoomCode: p.RoomCode,
		PlayerID: playerID,
		PitIndex: p.PitIndex,
	})
	if err != nil {
		movesRejected.Inc()
		if !isClientFault(err) {
			logger.Error("move failed", "room_id", p.RoomID, "error", err)
		}
		g.hub.SendTo(c, EventMoveRejected, MoveRejectedPayload{Message: err.Error()})
		return
	}

	room := outcome.Room
	g.hub.BroadcastRoom(room.ID, EventStateUpdate, StateUpdatePayload{
		GameState: room.GameState,
		ExtraTurn: outcome.ExtraTurn,
		Captured:  outcome.Captured,
	})
	if outcome.GameOver {
		g.hub.BroadcastRoom(room.ID, EventGameOver, GameOverPayload{
			Winner:     outcome.Winner,
			FinalState: room.GameState,
		})
	}
}

func isClientFault(err error) bool {
	for _, sentinel := range []error{
		service.ErrRoomNotFound,
		service.ErrGameNotStarted,
		service.ErrPlayerNotIdentifiable,
		service.ErrNotYourTurn,
		service.ErrInvalidPit,
		service.ErrWrongPitForPlayer,
		service.ErrEmptyPit,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
