package store

import (
	"errors"
	"time"

	"mancala_arena/internal/domain"
)

var (
	ErrRoomNotFound = errors.New("room not found")
	ErrCodeTaken    = errors.New("room code already taken")
)

// RoomStore owns every live Room. Implementations return defensive copies;
// callers mutate a copy and persist it back with Update.
//
// The reference backing store is in-memory and single-process. The interface
// exists so a persistent or distributed store can be swapped in without
// touching calling code.
type RoomStore interface {
	Insert(room *domain.Room) error
	GetByID(id string) (*domain.Room, bool)
	GetByCode(code string) (*domain.Room, bool)
	Update(room *domain.Room) error
	Delete(id string)
	// DeleteExpired removes every room whose last activity predates the
	// cutoff and returns the ids it removed.
	DeleteExpired(cutoff time.Time) []string
	Len() int
}
