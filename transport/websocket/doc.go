// Package websocket pushes live game updates to browsers and other watchers.
//
// A central Hub tracks the clients subscribed to each session. Clients
// connect with the session ID as a query parameter (?session=ab12), receive
// the current state immediately, and then one JSON message per change:
//
//	{"session_id": "ab12", "event": "state_update", "game_state": {...}}
//	{"session_id": "ab12", "event": "actions", "data": [...]}
//
// Incoming client frames are read only to keep the connection alive; actions
// are submitted through the REST API. A client that falls too far behind is
// dropped.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//	defer hub.Stop()
//
//	hub.ServeWS(w, r, sessionID, currentState)
//	hub.BroadcastToSession(sessionID, newState)
package websocket
