package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"reflect"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/wricardo/pegsolitaire/game/engine"
	"github.com/wricardo/pegsolitaire/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
	logger     *zap.Logger
}

// toolArgs holds every argument any tool accepts. Tools read the fields
// they need.
type toolArgs struct {
	SessionID string        `mapstructure:"session_id"`
	ConfigID  string        `mapstructure:"config_id"`
	Size      int           `mapstructure:"size"`
	FromRow   *int          `mapstructure:"from_row"`
	FromCol   *int          `mapstructure:"from_col"`
	ToRow     *int          `mapstructure:"to_row"`
	ToCol     *int          `mapstructure:"to_col"`
	Row       *int          `mapstructure:"row"`
	Col       *int          `mapstructure:"col"`
	Moves     []engine.Move `mapstructure:"moves"`
	Reset     bool          `mapstructure:"reset"`
	Page      int           `mapstructure:"page"`
	Limit     int           `mapstructure:"limit"`
	Intent    string        `mapstructure:"intent"`
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger.Named("mcp"),
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Peg Solitaire",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Peg Solitaire - MCP Interface

This is a thin client that proxies all requests to the REST API server.

GAME OBJECTIVE:
Jump pegs over each other until exactly one peg is left on the board.

AVAILABLE TOOLS:
- create_session: Create new game session (optional preset and board size)
- list_sessions: List all active sessions
- get_session: Get session details
- game_state: Get current board and status
- move: Jump one peg (from_row, from_col, to_row, to_col)
- bulk_move: Several jumps at once
- reset_game: Restore the initial board
- move_history: View past jumps
- list_configs: List available board presets
- game_instructions: Full rules and board legend
- describe_cell: Explain a single board cell

Rows and columns are zero-based. Row 0 is the top of the board.`),
	)

	c.registerTools()
}

func sessionIDProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Session ID",
	}
}

func intProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"description": description,
	}
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new game session with optional preset and board size",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_id": map[string]interface{}{
					"type":        "string",
					"description": "Preset to use (optional, see list_configs)",
				},
				"size": intProperty("Board size override: odd, at least 7 (optional)"),
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active game sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	// Game operations
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current board and game status",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleGameState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move",
		Description: "Jump the peg at (from_row, from_col) over an adjacent peg into the empty cell (to_row, to_col), two cells away in a straight line",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"from_row":   intProperty("Row of the jumping peg"),
				"from_col":   intProperty("Column of the jumping peg"),
				"to_row":     intProperty("Row of the landing cell"),
				"to_col":     intProperty("Column of the landing cell"),
				"reset": map[string]interface{}{
					"type":        "boolean",
					"description": "Reset the board before jumping",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Why you are making this jump",
				},
			},
			Required: []string{"session_id", "from_row", "from_col", "to_row", "to_col"},
		},
	}, c.handleMove)

	position := map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"row": map[string]interface{}{"type": "integer"},
			"col": map[string]interface{}{"type": "integer"},
		},
		"required": []string{"row", "col"},
	}
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "bulk_move",
		Description: fmt.Sprintf("Execute several jumps in order, stopping at the first rejected jump (max %d)", engine.MaxBulkMoves),
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"moves": map[string]interface{}{
					"type":        "array",
					"description": "Jumps as {\"from\":{\"row\":3,\"col\":1},\"to\":{\"row\":3,\"col\":3}}",
					"items": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"from": position,
							"to":   position,
						},
						"required": []string{"from", "to"},
					},
				},
				"reset": map[string]interface{}{
					"type":        "boolean",
					"description": "Reset the board before jumping",
				},
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "What this sequence is meant to achieve",
				},
			},
			Required: []string{"session_id", "moves"},
		},
	}, c.handleBulkMove)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "reset_game",
		Description: "Restore the initial board. Move history is kept.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleReset)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "move_history",
		Description: "Get paginated move history, including rejected jumps",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"page":       intProperty("Page number (default 1)"),
				"limit":      intProperty("Entries per page (default 20, max 100)"),
			},
			Required: []string{"session_id"},
		},
	}, c.handleMoveHistory)

	// Configuration
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List available board presets",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get the rules of peg solitaire and the board legend",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "describe_cell",
		Description: "Describe a single cell of the board",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionIDProperty(),
				"row":        intProperty("Zero-based row"),
				"col":        intProperty("Zero-based column"),
			},
			Required: []string{"session_id", "row", "col"},
		},
	}, c.handleDescribeCell)
}

// GetMCPServer returns the underlying MCP server
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// ServeHTTP answers single JSON-RPC messages posted to the /mcp endpoint
func (c *Client) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	response := c.mcpServer.HandleMessage(r.Context(), body)
	if response == nil {
		// notifications carry no response
		w.WriteHeader(http.StatusAccepted)
		return
	}

	responseData, err := json.Marshal(response)
	if err != nil {
		c.logger.Error("failed to marshal mcp response", zap.Error(err))
		http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(responseData)
}

// Helper methods for API calls

func (c *Client) apiCall(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// decodeArgs converts loosely typed tool arguments. JSON numbers arrive as
// float64 and are narrowed to int only when they hold a whole number.
func decodeArgs(request mcp.CallToolRequest) (*toolArgs, error) {
	var args toolArgs
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       wholeNumberHook,
		WeaklyTypedInput: true,
		Result:           &args,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(request.GetArguments()); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	return &args, nil
}

// wholeNumberHook rejects fractional numbers bound for integer fields
func wholeNumberHook(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
	for to.Kind() == reflect.Ptr {
		to = to.Elem()
	}
	switch to.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
	default:
		return data, nil
	}

	var f float64
	switch v := data.(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	default:
		return data, nil
	}
	if f != math.Trunc(f) {
		return nil, fmt.Errorf("%v is not a whole number", f)
	}
	return data, nil
}

func sessionPath(sessionID string, suffix string) string {
	return "/api/sessions/" + url.PathEscape(sessionID) + suffix
}

// Tool handlers

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := decodeArgs(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	body := map[string]interface{}{}
	if args.ConfigID != "" {
		body["config_id"] = args.ConfigID
	}
	if args.Size != 0 {
		body["size"] = args.Size
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "POST", "/api/sessions", body, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nConfig: %s\n\n%s", session.ID, session.ConfigName, formatGameState(session.GameState))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Sessions []service.SessionInfo `json:"sessions"`
	}

	if err := c.apiCall(ctx, "GET", "/api/sessions", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Active Sessions (%d):\n\n", response.Count)
	for _, s := range response.Sessions {
		pegs := 0
		if s.GameState != nil {
			pegs = s.GameState.PiecesLeft
		}
		fmt.Fprintf(&b, "- %s (Config: %s, Pegs: %d, Created: %s)\n",
			s.ID, s.ConfigName, pegs, s.CreatedAt.Format("15:04:05"))
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := decodeArgs(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "GET", sessionPath(args.SessionID, ""), nil, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatSessionInfo(&session)), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := decodeArgs(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var state engine.GameState
	if err := c.apiCall(ctx, "GET", sessionPath(args.SessionID, "/state"), nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatGameState(&state)), nil
}

func (c *Client) handleMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := decodeArgs(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if args.FromRow == nil || args.FromCol == nil || args.ToRow == nil || args.ToCol == nil {
		return mcp.NewToolResultError("from_row, from_col, to_row and to_col are required"), nil
	}

	move := engine.Move{
		From: engine.Position{Row: *args.FromRow, Col: *args.FromCol},
		To:   engine.Position{Row: *args.ToRow, Col: *args.ToCol},
	}
	body := map[string]interface{}{
		"from":  move.From,
		"to":    move.To,
		"reset": args.Reset,
	}

	var result service.MoveResult
	if err := c.apiCall(ctx, "POST", sessionPath(args.SessionID, "/move"), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	c.logger.Debug("move", zap.String("session", args.SessionID), zap.Stringer("move", move), zap.String("intent", args.Intent))
	return mcp.NewToolResultText(formatMoveResult(&result)), nil
}

func (c *Client) handleBulkMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := decodeArgs(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(args.Moves) == 0 {
		return mcp.NewToolResultError("moves must contain at least one jump"), nil
	}

	body := map[string]interface{}{
		"moves": args.Moves,
		"reset": args.Reset,
	}

	var result service.BulkMoveResult
	if err := c.apiCall(ctx, "POST", sessionPath(args.SessionID, "/bulk-move"), body, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	c.logger.Debug("bulk move", zap.String("session", args.SessionID), zap.Int("moves", len(args.Moves)), zap.String("intent", args.Intent))
	return mcp.NewToolResultText(formatBulkMoveResult(args.SessionID, &result)), nil
}

func (c *Client) handleReset(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := decodeArgs(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var response struct {
		Message string            `json:"message"`
		State   *engine.GameState `json:"state"`
	}
	if err := c.apiCall(ctx, "POST", sessionPath(args.SessionID, "/reset"), nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("%s\n\n%s", response.Message, formatGameState(response.State))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleMoveHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := decodeArgs(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	params := url.Values{}
	if args.Page > 0 {
		params.Set("page", fmt.Sprint(args.Page))
	}
	if args.Limit > 0 {
		params.Set("limit", fmt.Sprint(args.Limit))
	}
	path := sessionPath(args.SessionID, "/history")
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var history service.HistoryResponse
	if err := c.apiCall(ctx, "GET", path, nil, &history); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	// Also fetch current segment from live state
	var state engine.GameState
	if err := c.apiCall(ctx, "GET", sessionPath(args.SessionID, "/state"), nil, &state); err != nil {
		return mcp.NewToolResultText(formatHistory(&history)), nil
	}

	return mcp.NewToolResultText(formatHistory(&history) + "\n" + formatCurrentSegment(&state)), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	if err := c.apiCall(ctx, "GET", "/api/configs", nil, &configs); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	b.WriteString("Available Configurations:\n\n")
	for _, config := range configs {
		fmt.Fprintf(&b, "• %s (config_id: %s)\n  %s\n  Board: %dx%d, Pegs: %d\n\n",
			config.Name, config.ConfigID, config.Description, config.Size, config.Size, config.Pegs)
	}

	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	instructions := fmt.Sprintf(`Peg Solitaire - Complete Instructions

GAME OBJECTIVE:
Remove pegs by jumping over them until exactly one peg remains.

THE BOARD:
The board is a square of odd size N (at least 7) shaped like a plus sign.
A 2x2 block is cut away at each of the four corners and lies outside the
board. All playable cells start with a peg except
the center cell, which starts empty.

BOARD LEGEND:
• I - Illegal (outside the board, never used)
• E - Empty hole
• F - Full (holds a peg)

Coordinates are (row, col), zero-based, with (0,0) at the top left.

A JUMP:
1. Pick a peg (F) at the source cell
2. The destination must be an empty hole (E) exactly two cells away in a
   straight line: up, down, left or right. Diagonal jumps are not allowed.
3. The cell in between must hold a peg
4. The source becomes empty, the jumped peg is removed and the destination
   gets the peg

REJECTED JUMPS:
• source_not_full - the source cell has no peg
• destination_not_empty - the destination is occupied or outside the board
• illegal_move - the geometry is wrong or the jumped cell is empty

A rejected jump leaves the board untouched but is still recorded in the
move history.

END OF GAME:
• Win - exactly one peg left
• Stalled - more than one peg left and no legal jump remains

API USAGE:
- Use bulk_move to send up to %d jumps at once. It stops at the first
  rejected jump and reports which one failed.
- reset_game restores the starting board. The move history is kept.
- Each session has a unique 4-character ID and its own board.`, engine.MaxBulkMoves)

	return mcp.NewToolResultText(instructions), nil
}

func (c *Client) handleDescribeCell(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, err := decodeArgs(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if args.Row == nil || args.Col == nil {
		return mcp.NewToolResultError("row and col are required"), nil
	}
	row, col := *args.Row, *args.Col

	var state engine.GameState
	if err := c.apiCall(ctx, "GET", sessionPath(args.SessionID, "/state"), nil, &state); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	size := len(state.Board)
	if row < 0 || row >= size || col < 0 || col >= size {
		return mcp.NewToolResultError(fmt.Sprintf("Coordinates (%d, %d) are out of bounds. Board size is %dx%d (0-%d for both row and col)",
			row, col, size, size, size-1)), nil
	}

	cell := state.Board[row][col]
	var cellType, description string
	switch cell {
	case engine.Illegal:
		cellType = "Illegal"
		description = "Outside the board. Pegs can never stand or land here."
	case engine.Empty:
		cellType = "Empty"
		description = "An empty hole. A peg can land here by jumping over a neighbor."
	case engine.Full:
		cellType = "Full"
		description = "Holds a peg. It can jump over an adjacent peg into an empty hole two cells away."
	default:
		cellType = "Unknown"
		description = "Unknown cell type"
	}

	result := fmt.Sprintf(`Cell at position (%d, %d):
━━━━━━━━━━━━━━━━━━━━━━━━
Character: %s
Type: %s
Description: %s`, row, col, cell.Symbol(), cellType, description)

	return mcp.NewToolResultText(result), nil
}

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nConfig: %s\nCreated: %s\n\n%s",
		session.ID, session.ConfigName,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		formatGameState(session.GameState))
}

// formatBoard renders the board one row per line, prefixed with the row
// number
func formatBoard(board [][]engine.Cell) string {
	var b strings.Builder
	width := len(fmt.Sprint(len(board) - 1))
	for row, cells := range board {
		fmt.Fprintf(&b, "%*d ", width, row)
		for _, cell := range cells {
			b.WriteString(cell.Symbol())
		}
		b.WriteString("\n")
	}
	return b.String()
}

func formatGameState(state *engine.GameState) string {
	if state == nil {
		return "No game state available"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Board: %dx%d | Pegs: %d | Legal jumps: %d | Moves: %d\n\n",
		state.Size, state.Size, state.PiecesLeft, state.LegalMoveCount, state.TotalMoves)
	b.WriteString(formatBoard(state.Board))

	if state.GameOver {
		if state.Win {
			b.WriteString("\n🎉 WIN!")
		} else {
			b.WriteString("\n💀 STALLED")
		}
	}

	if state.Message != "" {
		fmt.Fprintf(&b, "\nMessage: %s", state.Message)
	}

	return b.String()
}

func formatStep(s *service.StepInfo) string {
	if s.Success {
		return fmt.Sprintf("%d. %s->%s jumped %s, pegs %d→%d ✓\n",
			s.Idx, s.From, s.To, s.Jumped, s.PiecesBefore, s.PiecesAfter)
	}
	return fmt.Sprintf("%d. %s->%s ✗ %s\n", s.Idx, s.From, s.To, s.FailureCode)
}

func formatMoveResult(result *service.MoveResult) string {
	var b strings.Builder
	if result.Success {
		b.WriteString("✓ Jump successful\n")
	} else {
		fmt.Fprintf(&b, "✗ Jump rejected: %s\n", result.FailureCode)
	}

	if result.Step != nil {
		b.WriteString("Step: ")
		b.WriteString(formatStep(result.Step))
	}

	if len(result.Events) > 0 {
		b.WriteString("Events:\n")
		for _, event := range result.Events {
			fmt.Fprintf(&b, "- %s: %s\n", event.Type, event.Message)
		}
	}

	b.WriteString("\n")
	b.WriteString(formatGameState(result.GameState))
	return b.String()
}

func formatBulkMoveResult(sessionID string, result *service.BulkMoveResult) string {
	var b strings.Builder

	size := 0
	configName := ""
	if result.GameState != nil {
		size = result.GameState.Size
		configName = result.GameState.ConfigName
	}
	fmt.Fprintf(&b, "Session: %s • Config: %s • Board: %dx%d\n", sessionID, configName, size, size)

	fmt.Fprintf(&b, "Executed %d/%d jumps • Pegs %d→%d\n",
		result.MovesExecuted, result.RequestedMoves, result.StartPieces, result.EndPieces)
	if result.Truncated {
		fmt.Fprintf(&b, "Truncated to the first %d jumps\n", result.Limit)
	}
	if result.StoppedReason != "" {
		fmt.Fprintf(&b, "Stopped on jump %d: %s (%s)\n", result.StoppedOnMove, result.StoppedReason, result.StopReasonCode)
	}

	if len(result.Steps) > 0 {
		b.WriteString("\nSteps (this call):\n")
		for i := range result.Steps {
			b.WriteString(formatStep(&result.Steps[i]))
		}
	}

	if len(result.Events) > 0 {
		b.WriteString("\nEvents:\n")
		for _, event := range result.Events {
			fmt.Fprintf(&b, "- %s: %s\n", event.Type, event.Message)
		}
	}

	b.WriteString("\n")
	b.WriteString(formatGameState(result.GameState))
	return b.String()
}

func formatHistoryEntry(num int, move engine.MoveHistoryEntry) string {
	if move.Success {
		return fmt.Sprintf("%d. %s->%s ✓ [Pegs: %d]\n", num, move.From, move.To, move.PiecesLeft)
	}
	return fmt.Sprintf("%d. %s->%s ✗ %s [Pegs: %d]\n", num, move.From, move.To, move.FailureCode, move.PiecesLeft)
}

func formatHistory(history *service.HistoryResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Move History (Page %d/%d) • Total (cumulative): %d\n\n",
		history.Page, history.TotalPages, history.TotalMoves)

	for _, move := range history.Moves {
		b.WriteString(formatHistoryEntry(move.MoveNumber, move))
	}

	return b.String()
}

func formatCurrentSegment(state *engine.GameState) string {
	if state == nil {
		return "Current Segment: unavailable"
	}
	header := fmt.Sprintf("Current Move Segment • Moves: %d\n\n", state.CurrentMovesCount)
	if len(state.CurrentMoves) == 0 {
		return header + "(no moves in current segment)"
	}
	var b strings.Builder
	b.WriteString(header)
	for i, move := range state.CurrentMoves {
		b.WriteString(formatHistoryEntry(i+1, move))
	}
	return b.String()
}
