// Package api provides HTTP REST API handlers for the peg solitaire server.
//
// The api package implements:
//   - Session management endpoints
//   - Jump and bulk jump endpoints
//   - Preset listing, lookup and creation
//   - WebSocket upgrade handling
//
// Endpoints:
//
// Session Management:
//   - POST /api/sessions - Create new session ({"config_id": "classic", "size": 9})
//   - GET /api/sessions - List sessions (?sort=created|accessed&order=asc|desc&limit=N)
//   - GET /api/sessions/{id} - Get specific session
//   - DELETE /api/sessions/{id} - Delete session
//
// Game Operations:
//   - GET /api/sessions/{id}/state - Get current game state
//   - GET /api/sessions/{id}/board - Board as plain text, one row of I/E/F per line
//   - POST /api/sessions/{id}/move - Jump one peg
//   - POST /api/sessions/{id}/bulk-move - Jump a sequence of pegs
//   - POST /api/sessions/{id}/reset - Restore the initial board
//   - GET /api/sessions/{id}/history - Move history (?page=1&limit=20&order=desc)
//
// Configuration:
//   - GET /api/configs - List available presets
//   - GET /api/configs/{name} - Get one preset
//   - POST /api/configs - Save a preset
//
// A jump is sent as:
//
//	{
//	  "from": {"row": 3, "col": 1},
//	  "to":   {"row": 3, "col": 3},
//	  "reset": false
//	}
//
// A rejected jump is not an HTTP error. The response carries
// "success": false and a "failure_code" of source_not_full,
// destination_not_empty or illegal_move.
//
// Usage:
//
//	server := api.NewServer(gameService, hub, logger)
//	http.ListenAndServe(":8080", server)
//
// Error Handling:
//
// Errors are returned as JSON with a status derived from the error kind:
// 404 for unknown sessions and presets, 400 for invalid board
// configurations and 500 otherwise.
//
//	{
//	  "error": "error message"
//	}
package api
