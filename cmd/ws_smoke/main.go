package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/websocket"
)

// Smoke test against a running server: two guests create and join a room
// over HTTP, open websocket sessions, and player 1 plays one move.
func main() {
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}
	base := fmt.Sprintf("http://127.0.0.1:%s/api/v1", port)

	guestA := guestAuth(base, "SmokeA")
	guestB := guestAuth(base, "SmokeB")

	room := postJSON(base+"/rooms", map[string]any{
		"player_id":   guestA["player_id"],
		"player_name": "SmokeA",
	})["room"].(map[string]any)
	code := room["code"].(string)
	roomID := room["id"].(string)
	log.Printf("room created: code=%s", code)

	postJSON(base+"/rooms/join", map[string]any{
		"code":        code,
		"player_id":   guestB["player_id"],
		"player_name": "SmokeB",
	})

	dialer := websocket.DefaultDialer
	connA := dial(dialer, port, guestA["token"].(string))
	defer connA.Close()
	connB := dial(dialer, port, guestB["token"].(string))
	defer connB.Close()

	join := func(conn *websocket.Conn) {
		msg := fmt.Sprintf(`{"type":"join-room","payload":{"room_id":%q}}`, roomID)
		if err := conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
			log.Fatalf("join write: %v", err)
		}
	}
	join(connA)
	join(connB)

	drainUntil(connA, "game-started")
	drainUntil(connB, "game-started")

	move := fmt.Sprintf(`{"type":"make-move","payload":{"room_id":%q,"pit_index":0,"player_id":%q}}`,
		roomID, guestA["player_id"])
	if err := connA.WriteMessage(websocket.TextMessage, []byte(move)); err != nil {
		log.Fatalf("move write: %v", err)
	}

	readOne(connA, "A")
	readOne(connB, "B")

	log.Println("smoke test finished")
}

func guestAuth(base, name string) map[string]any {
	return postJSON(base+"/auth/guest", map[string]any{"name": name})
}

func postJSON(url string, body map[string]any) map[string]any {
	data, _ := json.Marshal(body)
	res, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		log.Fatalf("POST %s: %v", url, err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		log.Fatalf("POST %s: status %d", url, res.StatusCode)
	}
	var out map[string]any
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		log.Fatalf("decode %s: %v", url, err)
	}
	return out
}

func dial(dialer *websocket.Dialer, port, token string) *websocket.Conn {
	// use 127.0.0.1 to prefer IPv4 (avoid resolving to [::1])
	url := fmt.Sprintf("ws://127.0.0.1:%s/ws?token=%s", port, token)
	conn, _, err := dialer.Dial(url, nil)
	if err != nil {
		log.Fatalf("dial: %v", err)
	}
	return conn
}

func drainUntil(conn *websocket.Conn, eventType string) {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		conn.SetReadDeadline(time.Now().Add(300 * time.Millisecond))
		_, msg, err := conn.ReadMessage()
		if err != nil {
			continue
		}
		var obj map[string]any
		_ = json.Unmarshal(msg, &obj)
		if t, ok := obj["type"].(string); ok && t == eventType {
			return
		}
	}
	log.Fatalf("never saw %s", eventType)
}

func readOne(conn *websocket.Conn, name string) {
	conn.SetReadDeadline(time.Now().Add(3 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		log.Printf("%s read error: %v", name, err)
		return
	}
	log.Printf("%s got: %s", name, string(msg))
}
