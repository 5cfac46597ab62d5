package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"mancala_arena/internal/domain"
	"mancala_arena/internal/game"
	"mancala_arena/internal/logger"
	"mancala_arena/internal/repository"
	"mancala_arena/internal/store"

	"github.com/google/uuid"
)

var (
	ErrRoomNotFound            = errors.New("room not found")
	ErrRoomFull                = errors.New("room is full")
	ErrCodeGenerationExhausted = errors.New("failed to generate unique room code")
	ErrGameNotStarted          = errors.New("game not started yet")
	ErrPlayerNotIdentifiable   = errors.New("cannot identify player")
	ErrNotYourTurn             = errors.New("not your turn")
	ErrInvalidPit              = errors.New("invalid pit index")
	ErrWrongPitForPlayer       = errors.New("pit belongs to the other player")
	ErrEmptyPit                = errors.New("pit is empty")
)

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Broadcaster pushes an event to every subscriber of a room channel. The
// websocket hub implements it; it is injected here so the synchronous join
// path can notify already-subscribed sockets without a per-request side
// channel.
type Broadcaster interface {
	BroadcastRoom(roomID, event string, payload any)
}

// Config tunes room lifecycle behavior.
type Config struct {
	CodeLength    int
	CodeAttempts  int
	Retention     time.Duration
	SweepInterval time.Duration
}

func DefaultConfig() Config {
	return Config{
		CodeLength:    6,
		CodeAttempts:  100,
		Retention:     time.Hour,
		SweepInterval: 30 * time.Minute,
	}
}

// MoveRequest is one move attempt arriving over the real-time channel.
type MoveRequest struct {
	RoomID   string
	RoomCode string // fallback lookup when the id misses
	PlayerID string
	PitIndex int
}

// MoveOutcome is the applied result of a valid move.
type MoveOutcome struct {
	Room      *domain.Room
	ExtraTurn bool
	Captured  bool
	GameOver  bool
	Winner    domain.Winner
}

// RoomService is the turn authority: the sole writer of room and game
// state. All mutations of one room run under that room's mutex, so a
// synchronous join and an asynchronous move can never interleave.
type RoomService struct {
	store       store.RoomStore
	broadcaster Broadcaster
	archive     *repository.ArchiveRepository
	cfg         Config
	genCode     func(length int) string

	locks   sync.Map // room id -> *sync.Mutex
	stopScan chan struct{}
}

func NewRoomService(st store.RoomStore, b Broadcaster, cfg Config) *RoomService {
	return &RoomService{
		store:       st,
		broadcaster: b,
		cfg:         cfg,
		genCode:     randomCode,
		stopScan:    make(chan struct{}),
	}
}

// NewRoomServiceWithCodeGen injects a code generator; tests use it to force
// collisions.
func NewRoomServiceWithCodeGen(st store.RoomStore, b Broadcaster, cfg Config, gen func(int) string) *RoomService {
	s := NewRoomService(st, b, cfg)
	s.genCode = gen
	return s
}

// SetArchive attaches the optional finished-game archive.
func (s *RoomService) SetArchive(a *repository.ArchiveRepository) {
	s.archive = a
}

// CreateRoom registers a new room for its first player. Codes are drawn at
// random and retried on collision up to the configured attempt bound.
func (s *RoomService) CreateRoom(playerID, playerName string) (*domain.Room, error) {
	for attempt := 0; attempt < s.cfg.CodeAttempts; attempt++ {
		room := &domain.Room{
			ID:           uuid.NewString(),
			Code:         s.genCode(s.cfg.CodeLength),
			Player1ID:    playerID,
			Player1Name:  playerName,
			CreatedAt:    time.Now(),
			LastActivity: time.Now(),
		}
		err := s.store.Insert(room)
		if err == nil {
			roomsCreated.Inc()
			logger.Info("room created", "room_id", room.ID, "code", room.Code)
			return room, nil
		}
		if !errors.Is(err, store.ErrCodeTaken) {
			return nil, err
		}
	}
	return nil, ErrCodeGenerationExhausted
}

// JoinRoom binds a second player to the room addressed by code and, the
// first time both seats are filled, constructs the initial game state. A
// repeat join by a player already seated returns the room unchanged.
func (s *RoomService) JoinRoom(code, playerID, playerName string) (*domain.Room, error) {
	probe, ok := s.store.GetByCode(code)
	if !ok {
		return nil, ErrRoomNotFound
	}

	unlock := s.lockRoom(probe.ID)
	defer unlock()

	// Re-read under the lock; another join may have won the race.
	room, ok := s.store.GetByID(probe.ID)
	if !ok {
		return nil, ErrRoomNotFound
	}

	if room.SeatOf(playerID) != 0 {
		return room, nil // idempotent rejoin
	}
	if room.Player2ID != "" {
		return nil, ErrRoomFull
	}

	room.Player2ID = playerID
	room.Player2Name = playerName

	// Game initialization happens at most once per room, guarded by the
	// nil game state. NewGameState is the only place the first mover is
	// decided.
	started := false
	if room.Full() && room.GameState == nil {
		room.GameState = game.NewGameState()
		started = true
	}

	if err := s.store.Update(room); err != nil {
		return nil, err
	}
	room, _ = s.store.GetByID(room.ID)

	roomsJoined.Inc()
	logger.Info("player joined room", "room_id", room.ID, "player_id", playerID, "game_started", started)

	if s.broadcaster != nil {
		s.broadcaster.BroadcastRoom(room.ID, "room-snapshot", room)
		if started {
			s.broadcaster.BroadcastRoom(room.ID, "game-started", map[string]any{"game_state": room.GameState})
		}
	}
	return room, nil
}

// GetRoom looks a room up by id.
func (s *RoomService) GetRoom(id string) (*domain.Room, error) {
	room, ok := s.store.GetByID(id)
	if !ok {
		return nil, ErrRoomNotFound
	}
	return room, nil
}

// GetRoomByCode looks a room up by its shareable code.
func (s *RoomService) GetRoomByCode(code string) (*domain.Room, error) {
	room, ok := s.store.GetByCode(code)
	if !ok {
		return nil, ErrRoomNotFound
	}
	return room, nil
}

// ApplyMove validates a move attempt end to end and, when legal, applies it
// and persists the new state. Validation failures leave the room untouched.
func (s *RoomService) ApplyMove(req MoveRequest) (*MoveOutcome, error) {
	room, ok := s.store.GetByID(req.RoomID)
	if !ok && req.RoomCode != "" {
		room, ok = s.store.GetByCode(req.RoomCode)
	}
	if !ok {
		return nil, ErrRoomNotFound
	}

	unlock := s.lockRoom(room.ID)
	defer unlock()

	room, ok = s.store.GetByID(room.ID)
	if !ok {
		return nil, ErrRoomNotFound
	}
	if room.GameState == nil {
		return nil, ErrGameNotStarted
	}

	mover := room.SeatOf(strings.TrimSpace(req.PlayerID))
	if mover == 0 {
		return nil, ErrPlayerNotIdentifiable
	}
	if mover != room.GameState.CurrentPlayer {
		return nil, fmt.Errorf("%w: current player is %d, you are player %d",
			ErrNotYourTurn, room.GameState.CurrentPlayer, mover)
	}

	if req.PitIndex < 0 || req.PitIndex >= game.BoardSize ||
		req.PitIndex == game.Store1 || req.PitIndex == game.Store2 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPit, req.PitIndex)
	}
	if !game.IsOwnPit(mover, req.PitIndex) {
		return nil, fmt.Errorf("%w: pit %d", ErrWrongPitForPlayer, req.PitIndex)
	}
	if room.GameState.Board[req.PitIndex] == 0 {
		return nil, fmt.Errorf("%w: pit %d", ErrEmptyPit, req.PitIndex)
	}

	res, err := game.ApplyMove(room.GameState, req.PitIndex)
	if err != nil {
		return nil, err
	}

	room.GameState = res.State
	if err := s.store.Update(room); err != nil {
		return nil, err
	}
	room, _ = s.store.GetByID(room.ID)

	movesApplied.Inc()
	if res.GameOver {
		gamesFinished.Inc()
		s.archiveGame(room, res.Winner)
	}

	return &MoveOutcome{
		Room:      room,
		ExtraTurn: res.ExtraTurn,
		Captured:  res.Captured,
		GameOver:  res.GameOver,
		Winner:    res.Winner,
	}, nil
}

// StartSweeper deletes inactive rooms on a fixed timer until Stop is called.
func (s *RoomService) StartSweeper() {
	go func() {
		ticker := time.NewTicker(s.cfg.SweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.SweepInactive()
			case <-s.stopScan:
				return
			}
		}
	}()
}

// Stop terminates the background sweeper.
func (s *RoomService) Stop() {
	close(s.stopScan)
}

// SweepInactive removes every room idle longer than the retention window.
func (s *RoomService) SweepInactive() int {
	expired := s.store.DeleteExpired(time.Now().Add(-s.cfg.Retention))
	for _, id := range expired {
		s.locks.Delete(id)
	}
	if len(expired) > 0 {
		logger.Info("swept inactive rooms", "count", len(expired), "remaining", s.store.Len())
	}
	return len(expired)
}

func (s *RoomService) archiveGame(room *domain.Room, winner domain.Winner) {
	if s.archive == nil {
		return
	}
	rec := &domain.GameRecord{
		RoomID:      room.ID,
		RoomCode:    room.Code,
		Player1ID:   room.Player1ID,
		Player2ID:   room.Player2ID,
		Player1Name: room.Player1Name,
		Player2Name: room.Player2Name,
		Winner:      winner,
		Store1:      room.GameState.Board[game.Store1],
		Store2:      room.GameState.Board[game.Store2],
		FinishedAt:  time.Now(),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.archive.Record(ctx, rec); err != nil {
			logger.Error("failed to archive finished game", "room_id", rec.RoomID, "error", err)
		}
	}()
}

func (s *RoomService) lockRoom(id string) func() {
	v, _ := s.locks.LoadOrStore(id, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

func randomCode(length int) string {
	buf := make([]byte, length)
	max := big.NewInt(int64(len(codeAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			n = big.NewInt(0)
		}
		buf[i] = codeAlphabet[n.Int64()]
	}
	return string(buf)
}

