package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/wricardo/pegsolitaire/game/engine"
	"github.com/wricardo/pegsolitaire/game/service"
)

// MockSessionManager implements service.SessionManager for testing
type MockSessionManager struct {
	sessions map[string]*service.Session
}

func NewMockSessionManager() *MockSessionManager {
	return &MockSessionManager{
		sessions: make(map[string]*service.Session),
	}
}

func (m *MockSessionManager) Create(id string, config *engine.BoardConfig) (*service.Session, error) {
	// Generate ID if empty (mimics real session manager behavior)
	if id == "" {
		id = fmt.Sprintf("test_%d", len(m.sessions)+1)
	}

	if _, exists := m.sessions[id]; exists {
		return nil, errors.New("session already exists")
	}

	eng, err := engine.NewEngine(config)
	if err != nil {
		return nil, err
	}

	session := &service.Session{
		ID:             id,
		Engine:         eng,
		Config:         config,
		CreatedAt:      time.Now(),
		LastAccessedAt: time.Now(),
	}

	m.sessions[id] = session
	return session, nil
}

func (m *MockSessionManager) Get(id string) (*service.Session, error) {
	session, exists := m.sessions[id]
	if !exists {
		return nil, service.ErrSessionNotFound
	}
	return session, nil
}

func (m *MockSessionManager) GetOrCreate(id string, config *engine.BoardConfig) (*service.Session, error) {
	if session, exists := m.sessions[id]; exists {
		return session, nil
	}
	return m.Create(id, config)
}

func (m *MockSessionManager) List() []*service.Session {
	result := make([]*service.Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		result = append(result, session)
	}
	return result
}

func (m *MockSessionManager) Delete(id string) error {
	if _, exists := m.sessions[id]; !exists {
		return service.ErrSessionNotFound
	}
	delete(m.sessions, id)
	return nil
}

func (m *MockSessionManager) UpdateLastAccessed(id string) error {
	if session, exists := m.sessions[id]; exists {
		session.LastAccessedAt = time.Now()
		return nil
	}
	return service.ErrSessionNotFound
}

// MockConfigManager implements service.ConfigManager for testing
type MockConfigManager struct {
	configs map[string]*engine.BoardConfig
	saved   map[string]*engine.BoardConfig
}

func NewMockConfigManager() *MockConfigManager {
	defaultConfig := &engine.BoardConfig{
		Name:        "test",
		Description: "Test configuration",
		Size:        7,
	}
	defaultConfig.Messages.Welcome = "Welcome to test!"
	defaultConfig.Messages.Moved = "Pegs left: %d"
	defaultConfig.Messages.Win = "You won!"
	defaultConfig.Messages.Stalled = "Stuck with %d pegs"

	return &MockConfigManager{
		configs: map[string]*engine.BoardConfig{
			"test": defaultConfig,
		},
		saved: map[string]*engine.BoardConfig{},
	}
}

func (m *MockConfigManager) LoadConfig(name string) (*engine.BoardConfig, error) {
	config, exists := m.configs[name]
	if !exists {
		return nil, fmt.Errorf("%w: %s", service.ErrConfigNotFound, name)
	}
	return config, nil
}

func (m *MockConfigManager) ListConfigs() ([]*service.ConfigInfo, error) {
	result := make([]*service.ConfigInfo, 0, len(m.configs))
	for name, config := range m.configs {
		result = append(result, &service.ConfigInfo{
			Filename:    name + ".yaml",
			ConfigID:    name,
			Name:        config.Name,
			Description: config.Description,
			Size:        config.Size,
		})
	}
	return result, nil
}

func (m *MockConfigManager) GetDefault() *engine.BoardConfig {
	return m.configs["test"]
}

func (m *MockConfigManager) SaveConfig(name string, config *engine.BoardConfig) error {
	m.saved[name] = config
	return nil
}

func jump(fromRow, fromCol, toRow, toCol int) engine.Move {
	return engine.Move{
		From: engine.Position{Row: fromRow, Col: fromCol},
		To:   engine.Position{Row: toRow, Col: toCol},
	}
}

func newTestService(t *testing.T) (service.GameService, *service.SessionInfo) {
	t.Helper()
	svc := service.NewGameService(NewMockSessionManager(), NewMockConfigManager())
	info, err := svc.CreateSession(context.Background(), "test", 0)
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	return svc, info
}

// Test cases
func TestGameService_CreateSession(t *testing.T) {
	ctx := context.Background()
	sessions := NewMockSessionManager()
	configs := NewMockConfigManager()
	svc := service.NewGameService(sessions, configs)

	tests := []struct {
		name       string
		configName string
		size       int
		wantErr    error
		wantPieces int
	}{
		{
			name:       "create with default config",
			configName: "",
			wantPieces: 32,
		},
		{
			name:       "create with specific config",
			configName: "test",
			wantPieces: 32,
		},
		{
			name:       "create with size override",
			configName: "test",
			size:       9,
			wantPieces: 64,
		},
		{
			name:       "create with even size",
			configName: "test",
			size:       8,
			wantErr:    engine.ErrInvalidConfiguration,
		},
		{
			name:       "create with small size",
			configName: "",
			size:       5,
			wantErr:    engine.ErrInvalidConfiguration,
		},
		{
			name:       "create with negative size",
			configName: "",
			size:       -5,
			wantErr:    engine.ErrInvalidConfiguration,
		},
		{
			name:       "create with negative even size",
			configName: "test",
			size:       -8,
			wantErr:    engine.ErrInvalidConfiguration,
		},
		{
			name:       "create with invalid config",
			configName: "nonexistent",
			wantErr:    service.ErrConfigNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session, err := svc.CreateSession(ctx, tt.configName, tt.size)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("CreateSession() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("CreateSession() unexpected error = %v", err)
			}
			if session.GameState.PiecesLeft != tt.wantPieces {
				t.Errorf("CreateSession() pieces = %d, want %d", session.GameState.PiecesLeft, tt.wantPieces)
			}
		})
	}

	// The size override must not leak into the shared preset
	if configs.configs["test"].Size != 7 {
		t.Errorf("Preset size modified to %d", configs.configs["test"].Size)
	}
}

// finishedEngine reports every board as already won
type finishedEngine struct {
	engine.Engine
}

func (finishedEngine) IsGameOver() bool { return true }
func (finishedEngine) IsWin() bool      { return true }

func TestGameService_UsesSessionEngine(t *testing.T) {
	ctx := context.Background()
	sessions := NewMockSessionManager()
	svc := service.NewGameService(sessions, NewMockConfigManager())

	info, err := svc.CreateSession(ctx, "test", 0)
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	sess := sessions.sessions[info.ID]
	sess.Engine = finishedEngine{Engine: sess.Engine}

	result, err := svc.BulkMove(ctx, info.ID, []engine.Move{jump(3, 1, 3, 3)}, false)
	if err != nil {
		t.Fatalf("BulkMove() error = %v", err)
	}
	if result.MovesExecuted != 0 {
		t.Errorf("Expected no moves executed, got %d", result.MovesExecuted)
	}
	if result.StopReasonCode != "win" || result.StoppedOnMove != 1 {
		t.Errorf("Expected stop on move 1 with code win, got %d %q", result.StoppedOnMove, result.StopReasonCode)
	}
	if result.EndPieces != 32 {
		t.Errorf("Board should be untouched, got %d pegs", result.EndPieces)
	}
}

func TestGameService_Move(t *testing.T) {
	ctx := context.Background()
	svc, sessionInfo := newTestService(t)

	res, err := svc.Move(ctx, sessionInfo.ID, jump(3, 1, 3, 3), false)
	if err != nil {
		t.Fatalf("Move() error = %v", err)
	}
	if !res.Success || res.FailureCode != "" {
		t.Fatalf("Expected success, got %+v", res)
	}
	if res.Step == nil || res.Step.Jumped != (engine.Position{Row: 3, Col: 2}) {
		t.Errorf("Expected jumped (3,2), got %+v", res.Step)
	}
	if res.Step.PiecesBefore != 32 || res.Step.PiecesAfter != 31 {
		t.Errorf("Unexpected piece counts in step: %+v", res.Step)
	}
	if res.Message != "Pegs left: 31" {
		t.Errorf("Unexpected message %q", res.Message)
	}
	if len(res.Events) != 1 || res.Events[0].Type != "move" {
		t.Errorf("Expected a single move event, got %+v", res.Events)
	}

	// Jumping back over the now empty cell is rejected
	res, err = svc.Move(ctx, sessionInfo.ID, jump(3, 3, 3, 1), false)
	if err != nil {
		t.Fatalf("Move() error = %v", err)
	}
	if res.Success || res.FailureCode != "illegal_move" {
		t.Errorf("Expected illegal_move, got success=%v code=%s", res.Success, res.FailureCode)
	}
	if res.GameState.PiecesLeft != 31 {
		t.Errorf("Rejected move changed the board: %d pegs", res.GameState.PiecesLeft)
	}
	if len(res.Events) != 0 {
		t.Errorf("Expected no events for rejected move, got %+v", res.Events)
	}

	// Reset before moving restores the initial board
	res, err = svc.Move(ctx, sessionInfo.ID, jump(3, 1, 3, 3), true)
	if err != nil {
		t.Fatalf("Move() with reset error = %v", err)
	}
	if !res.Success || res.GameState.PiecesLeft != 31 {
		t.Errorf("Expected success after reset, got %+v", res)
	}
	if len(res.Events) != 2 || res.Events[0].Type != "reset" {
		t.Errorf("Expected reset and move events, got %+v", res.Events)
	}

	if _, err := svc.Move(ctx, "nonexistent", jump(3, 1, 3, 3), false); !errors.Is(err, service.ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}

func TestGameService_MoveFailureCodes(t *testing.T) {
	ctx := context.Background()
	svc, sessionInfo := newTestService(t)

	tests := []struct {
		name string
		move engine.Move
		code string
	}{
		{"empty source", jump(3, 3, 3, 5), "source_not_full"},
		{"illegal source", jump(0, 0, 0, 2), "source_not_full"},
		{"full destination", jump(3, 1, 3, 2), "destination_not_empty"},
		{"out of bounds", jump(3, 3, 3, 9), "illegal_move"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := svc.Move(ctx, sessionInfo.ID, tt.move, false)
			if err != nil {
				t.Fatalf("Move() error = %v", err)
			}
			if res.Success || res.FailureCode != tt.code {
				t.Errorf("Expected %s, got success=%v code=%s", tt.code, res.Success, res.FailureCode)
			}
		})
	}
}

func TestGameService_BulkMove(t *testing.T) {
	ctx := context.Background()
	svc, sessionInfo := newTestService(t)

	res, err := svc.BulkMove(ctx, sessionInfo.ID, []engine.Move{
		jump(3, 1, 3, 3),
		jump(1, 2, 3, 2),
		jump(0, 0, 0, 2),
		jump(5, 3, 3, 3),
	}, false)
	if err != nil {
		t.Fatalf("BulkMove() error = %v", err)
	}
	if res.MovesExecuted != 2 || res.RequestedMoves != 4 {
		t.Errorf("Expected 2 of 4 moves executed, got %d of %d", res.MovesExecuted, res.RequestedMoves)
	}
	if len(res.Steps) != 3 {
		t.Errorf("Expected 3 steps, got %d", len(res.Steps))
	}
	if res.Success || res.StopReasonCode != "source_not_full" || res.StoppedOnMove != 3 {
		t.Errorf("Unexpected stop: success=%v code=%s on=%d", res.Success, res.StopReasonCode, res.StoppedOnMove)
	}
	if res.StartPieces != 32 || res.EndPieces != 30 {
		t.Errorf("Expected 32 -> 30 pegs, got %d -> %d", res.StartPieces, res.EndPieces)
	}

	empty, err := svc.BulkMove(ctx, sessionInfo.ID, nil, true)
	if err != nil {
		t.Fatalf("BulkMove() with no moves error = %v", err)
	}
	if !empty.Success || empty.EndPieces != 32 {
		t.Errorf("Expected reset board with success, got %+v", empty)
	}

	if _, err := svc.BulkMove(ctx, "nonexistent", nil, false); err == nil {
		t.Error("Expected error for invalid session")
	}
}

func TestGameService_BulkMoveTruncates(t *testing.T) {
	ctx := context.Background()
	svc, sessionInfo := newTestService(t)

	moves := make([]engine.Move, engine.MaxBulkMoves+10)
	for i := range moves {
		moves[i] = jump(0, 0, 0, 2)
	}

	res, err := svc.BulkMove(ctx, sessionInfo.ID, moves, false)
	if err != nil {
		t.Fatalf("BulkMove() error = %v", err)
	}
	if !res.Truncated || res.Limit != engine.MaxBulkMoves {
		t.Errorf("Expected truncation at %d, got truncated=%v limit=%d", engine.MaxBulkMoves, res.Truncated, res.Limit)
	}
	if res.RequestedMoves != engine.MaxBulkMoves+10 {
		t.Errorf("Expected requested moves to report the original count, got %d", res.RequestedMoves)
	}
}

func TestGameService_GetMoveHistory(t *testing.T) {
	ctx := context.Background()
	svc, sessionInfo := newTestService(t)

	// Two accepted jumps followed by a rejected one
	_, err := svc.BulkMove(ctx, sessionInfo.ID, []engine.Move{
		jump(3, 1, 3, 3),
		jump(1, 2, 3, 2),
		jump(0, 0, 0, 2),
	}, false)
	if err != nil {
		t.Fatalf("Failed to make moves: %v", err)
	}

	tests := []struct {
		name      string
		sessionID string
		opts      service.HistoryOptions
		wantCount int
		wantFirst int
		wantNext  bool
		wantErr   bool
	}{
		{
			name:      "default options",
			sessionID: sessionInfo.ID,
			opts:      service.HistoryOptions{},
			wantCount: 3,
			wantFirst: 3,
		},
		{
			name:      "with pagination",
			sessionID: sessionInfo.ID,
			opts:      service.HistoryOptions{Page: 1, Limit: 2, Order: "asc"},
			wantCount: 2,
			wantFirst: 1,
			wantNext:  true,
		},
		{
			name:      "second page descending",
			sessionID: sessionInfo.ID,
			opts:      service.HistoryOptions{Page: 2, Limit: 2, Order: "desc"},
			wantCount: 1,
			wantFirst: 1,
		},
		{
			name:      "page past the end",
			sessionID: sessionInfo.ID,
			opts:      service.HistoryOptions{Page: 5, Limit: 2},
			wantCount: 0,
		},
		{
			name:      "invalid session",
			sessionID: "nonexistent",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.GetMoveHistory(ctx, tt.sessionID, tt.opts)
			if (err != nil) != tt.wantErr {
				t.Fatalf("GetMoveHistory() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if result.TotalMoves != 3 {
				t.Errorf("TotalMoves = %d, want 3", result.TotalMoves)
			}
			if len(result.Moves) != tt.wantCount {
				t.Fatalf("len(Moves) = %d, want %d", len(result.Moves), tt.wantCount)
			}
			if tt.wantCount > 0 && result.Moves[0].MoveNumber != tt.wantFirst {
				t.Errorf("first MoveNumber = %d, want %d", result.Moves[0].MoveNumber, tt.wantFirst)
			}
			if result.HasNext != tt.wantNext {
				t.Errorf("HasNext = %v, want %v", result.HasNext, tt.wantNext)
			}
		})
	}
}

func TestGameService_ListAndDeleteSessions(t *testing.T) {
	ctx := context.Background()
	svc := service.NewGameService(NewMockSessionManager(), NewMockConfigManager())

	// Create multiple sessions
	var ids []string
	for i := 0; i < 3; i++ {
		info, err := svc.CreateSession(ctx, "test", 0)
		if err != nil {
			t.Fatalf("Failed to create session %d: %v", i, err)
		}
		ids = append(ids, info.ID)
	}

	sessionList, err := svc.ListSessions(ctx)
	if err != nil {
		t.Fatalf("ListSessions() error = %v", err)
	}
	if len(sessionList) != 3 {
		t.Errorf("ListSessions() returned %d sessions, want 3", len(sessionList))
	}
	for _, info := range sessionList {
		if info.ConfigName != "test" {
			t.Errorf("Expected config id test, got %s", info.ConfigName)
		}
	}

	if err := svc.DeleteSession(ctx, ids[0]); err != nil {
		t.Fatalf("DeleteSession() error = %v", err)
	}
	if _, err := svc.GetSession(ctx, ids[0]); !errors.Is(err, service.ErrSessionNotFound) {
		t.Errorf("Expected deleted session to be gone, got %v", err)
	}
}

func TestGameService_ResetAndBoard(t *testing.T) {
	ctx := context.Background()
	svc, sessionInfo := newTestService(t)

	if _, err := svc.Move(ctx, sessionInfo.ID, jump(3, 1, 3, 3), false); err != nil {
		t.Fatalf("Failed to move: %v", err)
	}

	board, err := svc.GetBoard(ctx, sessionInfo.ID)
	if err != nil {
		t.Fatalf("GetBoard() error = %v", err)
	}
	if cell, _ := board.At(3, 3); cell != engine.Full {
		t.Errorf("Expected Full at center after jump, got %v", cell)
	}

	state, err := svc.Reset(ctx, sessionInfo.ID)
	if err != nil {
		t.Fatalf("Reset() error = %v", err)
	}
	if state.PiecesLeft != 32 || state.Message != "Welcome to test!" {
		t.Errorf("Unexpected state after reset: pegs=%d message=%q", state.PiecesLeft, state.Message)
	}

	// The board handed out earlier is a copy
	if cell, _ := board.At(3, 3); cell != engine.Full {
		t.Error("Board copy changed after reset")
	}

	current, err := svc.GetGameState(ctx, sessionInfo.ID)
	if err != nil {
		t.Fatalf("GetGameState() error = %v", err)
	}
	if current.Board[3][3] != engine.Empty {
		t.Errorf("Expected Empty center after reset, got %v", current.Board[3][3])
	}
}

func TestGameService_Configs(t *testing.T) {
	ctx := context.Background()
	configs := NewMockConfigManager()
	svc := service.NewGameService(NewMockSessionManager(), configs)

	list, err := svc.ListConfigs(ctx)
	if err != nil || len(list) != 1 {
		t.Fatalf("ListConfigs() = %d configs, err %v", len(list), err)
	}

	cfg, err := svc.LoadConfig(ctx, "test")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if err := svc.SaveConfig(ctx, "copy", cfg); err != nil {
		t.Fatalf("SaveConfig() error = %v", err)
	}
	if configs.saved["copy"] != cfg {
		t.Error("SaveConfig() did not reach the config manager")
	}
}
