// Package websocket pushes live board updates to browser and CLI watchers.
//
// Architecture:
//
// A central Hub owns every connection. Run is the only goroutine that adds
// or removes clients; each client gets a read pump (which only keeps the
// connection alive) and a write pump that drains its send queue and pings
// the peer.
//
// Message Protocol:
//
// Clients never send commands. The server sends JSON messages:
//
//	{"session_id": "ab12", "event": "state_update", "game_state": {...}}
//	{"session_id": "ab12", "event": "win", "data": "Victory! A single peg remains."}
//
// Several queued messages may share one frame, separated by newlines.
//
// Session Integration:
//
// Clients pick a session with the ?session= query parameter. Broadcasts only
// reach clients of that session; session IDs are matched case-insensitively.
//
// Usage:
//
//	hub := websocket.NewHub(logger)
//	go hub.Run(ctx)
//
//	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
//		hub.ServeWS(w, r, r.URL.Query().Get("session"))
//	})
//
//	hub.BroadcastToSession(sessionID, state)
//
// Broadcasts never block the caller. When the queue is full the message is
// dropped and logged, and a client whose own queue is full is disconnected.
package websocket
