package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"mancala_arena/internal/domain"
	"mancala_arena/internal/game"
	"mancala_arena/internal/service"
	"mancala_arena/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	service.InitJWT()

	svc := service.NewRoomService(store.NewMemoryStore(), nil, service.DefaultConfig())
	t.Cleanup(svc.Stop)
	h := NewHandler(svc)

	r := gin.New()
	r.POST("/auth/guest", h.GuestAuth)
	r.POST("/rooms", h.CreateRoom)
	r.POST("/rooms/join", h.JoinRoom)
	r.GET("/rooms/:code", h.GetRoomByCode)
	r.POST("/game/ai-move", h.AIMove)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w, out
}

func TestGuestAuth(t *testing.T) {
	r := newTestRouter(t)

	w, out := doJSON(t, r, http.MethodPost, "/auth/guest", gin.H{"name": "Ana"})

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, out["token"])
	assert.NotEmpty(t, out["player_id"])
	assert.Equal(t, "Ana", out["name"])
}

func TestGuestAuthDefaultsName(t *testing.T) {
	r := newTestRouter(t)

	w, out := doJSON(t, r, http.MethodPost, "/auth/guest", gin.H{})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Guest", out["name"])
}

func TestCreateAndJoinRoomFlow(t *testing.T) {
	r := newTestRouter(t)

	w, out := doJSON(t, r, http.MethodPost, "/rooms", gin.H{
		"player_id": "p1", "player_name": "Ana",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	room := out["room"].(map[string]any)
	code := room["code"].(string)
	require.Len(t, code, 6)
	assert.Nil(t, room["game_state"])

	w, out = doJSON(t, r, http.MethodPost, "/rooms/join", gin.H{
		"code": code, "player_id": "p2", "player_name": "Ben",
	})
	require.Equal(t, http.StatusOK, w.Code)
	joined := out["room"].(map[string]any)
	require.NotNil(t, joined["game_state"], "second join starts the game")

	state := joined["game_state"].(map[string]any)
	assert.EqualValues(t, 1, state["current_player"])
}

func TestCreateRoomRequiresPlayer(t *testing.T) {
	r := newTestRouter(t)

	w, _ := doJSON(t, r, http.MethodPost, "/rooms", gin.H{"player_name": "Ana"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestJoinRoomErrors(t *testing.T) {
	r := newTestRouter(t)

	w, _ := doJSON(t, r, http.MethodPost, "/rooms/join", gin.H{
		"code": "NOPE99", "player_id": "p1",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	_, out := doJSON(t, r, http.MethodPost, "/rooms", gin.H{"player_id": "p1"})
	code := out["room"].(map[string]any)["code"].(string)
	doJSON(t, r, http.MethodPost, "/rooms/join", gin.H{"code": code, "player_id": "p2"})

	w, _ = doJSON(t, r, http.MethodPost, "/rooms/join", gin.H{
		"code": code, "player_id": "p3",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestGetRoomByCode(t *testing.T) {
	r := newTestRouter(t)

	_, out := doJSON(t, r, http.MethodPost, "/rooms", gin.H{"player_id": "p1"})
	code := out["room"].(map[string]any)["code"].(string)

	w, out := doJSON(t, r, http.MethodGet, "/rooms/"+code, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, code, out["room"].(map[string]any)["code"])

	w, _ = doJSON(t, r, http.MethodGet, "/rooms/GHOST1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAIMove(t *testing.T) {
	r := newTestRouter(t)

	for _, difficulty := range []string{"easy", "medium", "hard"} {
		w, out := doJSON(t, r, http.MethodPost, "/game/ai-move", gin.H{
			"game_state": game.NewGameState(), "difficulty": difficulty,
		})
		require.Equal(t, http.StatusOK, w.Code, difficulty)

		pit := int(out["pit_index"].(float64))
		assert.True(t, game.IsOwnPit(domain.Player1, pit), "pit %d for %s", pit, difficulty)
	}
}

func TestAIMoveRejectsUnknownDifficulty(t *testing.T) {
	r := newTestRouter(t)

	w, _ := doJSON(t, r, http.MethodPost, "/game/ai-move", gin.H{
		"game_state": game.NewGameState(), "difficulty": "impossible",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAIMoveNoLegalMoves(t *testing.T) {
	r := newTestRouter(t)

	state := game.NewGameState()
	state.Board = [14]int{0, 0, 0, 0, 0, 0, 24, 4, 4, 4, 4, 4, 4, 0}

	w, _ := doJSON(t, r, http.MethodPost, "/game/ai-move", gin.H{
		"game_state": state, "difficulty": "easy",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
