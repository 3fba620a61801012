// Package websocket serves headless 2048 games over WebSocket.
//
// Every connection owns one game session. The high score store is shared
// between connections.
//
// Message Protocol:
//
// Clients send one JSON object per message:
//
//	{"command": "left"}
//
// Commands are up, down, left, right, undo, reset, state and debug (only
// when the server enables debug boards). debug loads the ladder board, or
// the board named by the optional "board" field:
//
//	{"command": "debug", "board": "fixture"}
//
// Unknown commands change nothing and produce an empty event list.
//
// The server answers every message, and greets every new connection, with
// the events the command produced and the resulting state:
//
//	{"session_id": "...", "events": [...], "board": [[...]], "score": 0,
//	 "high_score": 0, "over": false}
//
// Connection Lifecycle:
//
// 1. Client connects to /ws and gets a session ID
// 2. A new game is started and its state sent to the client
// 3. Client sends commands, receives state updates
// 4. Disconnection records the finished game
package websocket
