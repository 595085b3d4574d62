// Package mcp exposes peg solitaire to Model Context Protocol clients.
//
// The Client registers one MCP tool per game operation and forwards every
// call to the REST API, so the MCP surface and the HTTP surface always see
// the same sessions.
//
// MCP Tools:
//   - create_session, list_sessions, get_session
//   - game_state, move, bulk_move, reset_game, move_history
//   - list_configs, game_instructions, describe_cell
//
// Coordinates are zero-based (row, col) pairs. Boards are rendered one row
// per line using I (illegal), E (empty) and F (full).
//
// Transport Modes:
//   - Stdio: server.ServeStdio(client.GetMCPServer())
//   - HTTP: mount the Client itself, it answers JSON-RPC posted to /mcp
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080", logger)
//	mux.Handle("/mcp", client)
package mcp
