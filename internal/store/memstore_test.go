package store

import (
	"testing"
	"time"

	"mancala_arena/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRoom(id, code string) *domain.Room {
	return &domain.Room{
		ID:           id,
		Code:         code,
		Player1ID:    "p1",
		Player1Name:  "Ana",
		CreatedAt:    time.Now(),
		LastActivity: time.Now(),
	}
}

func TestInsertAndLookup(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Insert(newRoom("r1", "ABC123")))

	got, ok := s.GetByID("r1")
	require.True(t, ok)
	assert.Equal(t, "ABC123", got.Code)

	got, ok = s.GetByCode("ABC123")
	require.True(t, ok)
	assert.Equal(t, "r1", got.ID)

	_, ok = s.GetByID("missing")
	assert.False(t, ok)
}

func TestInsertDuplicateCode(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Insert(newRoom("r1", "ABC123")))

	err := s.Insert(newRoom("r2", "ABC123"))
	assert.ErrorIs(t, err, ErrCodeTaken)
}

func TestCodeLookupIsCaseInsensitive(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Insert(newRoom("r1", "ABC123")))

	_, ok := s.GetByCode("  abc123 ")
	assert.True(t, ok)
}

func TestReadsReturnClones(t *testing.T) {
	s := NewMemoryStore()
	room := newRoom("r1", "ABC123")
	room.GameState = &domain.GameState{CurrentPlayer: domain.Player1, Status: domain.StatusPlaying}
	require.NoError(t, s.Insert(room))

	got, _ := s.GetByID("r1")
	got.Player2ID = "intruder"
	got.GameState.Board[0] = 99

	fresh, _ := s.GetByID("r1")
	assert.Empty(t, fresh.Player2ID)
	assert.Zero(t, fresh.GameState.Board[0])
}

func TestUpdateRefreshesActivity(t *testing.T) {
	s := NewMemoryStore()
	room := newRoom("r1", "ABC123")
	room.LastActivity = time.Now().Add(-time.Hour)
	require.NoError(t, s.Insert(room))

	room.Player2ID = "p2"
	require.NoError(t, s.Update(room))

	got, _ := s.GetByID("r1")
	assert.Equal(t, "p2", got.Player2ID)
	assert.WithinDuration(t, time.Now(), got.LastActivity, time.Minute)
}

func TestUpdateMissingRoom(t *testing.T) {
	s := NewMemoryStore()
	err := s.Update(newRoom("ghost", "XYZXYZ"))
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestDeleteRemovesBothIndexes(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Insert(newRoom("r1", "ABC123")))

	s.Delete("r1")

	_, ok := s.GetByID("r1")
	assert.False(t, ok)
	_, ok = s.GetByCode("ABC123")
	assert.False(t, ok)
	assert.Zero(t, s.Len())
}

func TestDeleteExpired(t *testing.T) {
	s := NewMemoryStore()

	stale := newRoom("old", "OLDOLD")
	stale.LastActivity = time.Now().Add(-2 * time.Hour)
	require.NoError(t, s.Insert(stale))
	require.NoError(t, s.Insert(newRoom("fresh", "NEWNEW")))

	expired := s.DeleteExpired(time.Now().Add(-time.Hour))

	assert.Equal(t, []string{"old"}, expired)
	assert.Equal(t, 1, s.Len())
	_, ok := s.GetByCode("OLDOLD")
	assert.False(t, ok)
}
