package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/wricardo/pegsolitaire/game/engine"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrConfigNotFound  = errors.New("configuration not found")
)

// gameServiceImpl implements the GameService interface. Its mutex is the
// single writer lock for every engine it reaches through the sessions.
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	mu       sync.RWMutex
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
	}
}

// getConfigID returns the config_id for a given display name, used for consistent API responses
func (s *gameServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	if configName == "" {
		return "default"
	}
	return configName
}

func (s *gameServiceImpl) sessionInfo(sess *Session, configID string) *SessionInfo {
	if configID == "" {
		configID = s.getConfigID(sess.Config.Name)
	}
	return &SessionInfo{
		ID:             sess.ID,
		ConfigName:     configID,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		GameState:      sess.Engine.GetState(),
		BoardConfig:    sess.Config,
	}
}

// CreateSession creates a new game session. A size of 0 keeps the board
// size of the selected preset; any other size overrides it and must be valid.
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string, size int) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var config *engine.BoardConfig
	var err error
	if configName != "" {
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			if errors.Is(err, ErrConfigNotFound) {
				availableConfigs, listErr := s.configs.ListConfigs()
				if listErr == nil && len(availableConfigs) > 0 {
					var configIDs []string
					for _, cfg := range availableConfigs {
						configIDs = append(configIDs, cfg.ConfigID)
					}
					return nil, fmt.Errorf("%w: '%s'. Available configs: %v", ErrConfigNotFound, configName, configIDs)
				}
				return nil, fmt.Errorf("%w: '%s'. Use /api/configs to list available configurations", ErrConfigNotFound, configName)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	if size < 0 {
		return nil, fmt.Errorf("%w: board size %d", engine.ErrInvalidConfiguration, size)
	}
	if size > 0 && size != config.Size {
		resized := *config
		resized.Size = size
		if err := engine.ValidateBoardConfig(&resized); err != nil {
			return nil, err
		}
		config = &resized
	}

	session, err := s.sessions.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return s.sessionInfo(session, configName), nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	return s.sessionInfo(session, ""), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, s.sessionInfo(sess, ""))
	}

	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(sessionID)
}

// Move executes a single jump for a session. A rejected jump is reported in
// the result, not as an error.
func (s *gameServiceImpl) Move(ctx context.Context, sessionID string, move engine.Move, reset bool) (*MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	events := []GameEvent{}
	if reset {
		sess.Engine.Reset()
		events = append(events, resetEvent())
	}

	step, moveErr := applyMove(sess.Engine, move, 1)
	state := sess.Engine.GetState()

	result := &MoveResult{
		Success:     moveErr == nil,
		FailureCode: engine.FailureCode(moveErr),
		GameState:   state,
		Message:     state.Message,
		Events:      events,
		Step:        &step,
	}
	if moveErr == nil {
		result.Events = append(result.Events, moveEvents(move, state)...)
	}

	return result, nil
}

// BulkMove executes multiple jumps in sequence, stopping at the first
// rejected jump or once the game is over.
func (s *gameServiceImpl) BulkMove(ctx context.Context, sessionID string, moves []engine.Move, reset bool) (*BulkMoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	result := &BulkMoveResult{
		RequestedMoves: len(moves),
		Events:         make([]GameEvent, 0),
		Success:        true,
	}

	if reset {
		sess.Engine.Reset()
		result.Events = append(result.Events, resetEvent())
	}
	result.StartPieces = sess.Engine.PiecesLeft()

	// Limit moves to prevent abuse
	if len(moves) > engine.MaxBulkMoves {
		result.Truncated = true
		result.Limit = engine.MaxBulkMoves
		moves = moves[:engine.MaxBulkMoves]
	}

	for i, move := range moves {
		if ctx.Err() != nil {
			result.Success = false
			result.StoppedReason = ctx.Err().Error()
			result.StopReasonCode = "canceled"
			result.StoppedOnMove = i + 1
			break
		}
		if sess.Engine.IsGameOver() {
			result.StoppedReason = "game over"
			result.StopReasonCode = gameOverCode(sess.Engine)
			result.StoppedOnMove = i + 1
			break
		}

		step, moveErr := applyMove(sess.Engine, move, i+1)
		result.Steps = append(result.Steps, step)
		if moveErr != nil {
			result.Success = false
			result.StoppedReason = fmt.Sprintf("move %d rejected: %v", i+1, moveErr)
			result.StopReasonCode = step.FailureCode
			result.StoppedOnMove = i + 1
			break
		}

		result.MovesExecuted++
		result.Events = append(result.Events, moveEvents(move, sess.Engine.GetState())...)
	}

	endState := sess.Engine.GetState()
	result.GameState = endState
	result.EndPieces = endState.PiecesLeft
	result.GameOver = endState.GameOver
	result.Win = endState.Win
	result.Message = endState.Message
	if result.GameOver && result.StopReasonCode == "" {
		result.StopReasonCode = gameOverCode(sess.Engine)
	}

	return result, nil
}

// Reset resets a game session to its initial board
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	return sess.Engine.Reset(), nil
}

// GetGameState retrieves the current game state
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	return sess.Engine.GetState(), nil
}

// GetBoard returns a copy of the session's board
func (s *gameServiceImpl) GetBoard(ctx context.Context, sessionID string) (*engine.Board, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	return sess.Engine.Board(), nil
}

// GetMoveHistory returns paginated move history
func (s *gameServiceImpl) GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.getSession(sessionID)
	if err != nil {
		return nil, err
	}

	history := sess.Engine.GetMoveHistory()
	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	moves := []engine.MoveHistoryEntry{}
	if start < total {
		if opts.Order == "desc" {
			// most recent first
			for i := total - 1 - start; i >= total-end; i-- {
				moves = append(moves, history[i])
			}
		} else {
			moves = append(moves, history[start:end]...)
		}
	}

	return &HistoryResponse{
		Moves:       moves,
		TotalMoves:  total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}, nil
}

// ListConfigs returns available board presets
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific board preset
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.BoardConfig, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a board preset to disk
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.BoardConfig) error {
	return s.configs.SaveConfig(configName, config)
}

// getSession looks up a session and refreshes its access time. Callers hold
// the write lock since the refresh mutates the session.
func (s *gameServiceImpl) getSession(sessionID string) (*Session, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, err)
	}
	s.sessions.UpdateLastAccessed(sessionID)
	return sess, nil
}

// applyMove runs one jump through the engine and describes it as a step
func applyMove(eng engine.Engine, move engine.Move, idx int) (StepInfo, error) {
	before := eng.PiecesLeft()
	err := eng.Move(move)

	step := StepInfo{
		Idx:          idx,
		From:         move.From,
		To:           move.To,
		PiecesBefore: before,
		PiecesAfter:  eng.PiecesLeft(),
		Success:      err == nil,
		FailureCode:  engine.FailureCode(err),
	}
	if err == nil {
		step.Jumped = eng.GetLastMove().Jumped
	}
	return step, err
}

func resetEvent() GameEvent {
	return GameEvent{
		Type:      "reset",
		Message:   "Game reset to initial board",
		Timestamp: time.Now(),
	}
}

// moveEvents generates events for an accepted jump
func moveEvents(move engine.Move, state *engine.GameState) []GameEvent {
	now := time.Now()
	m := move
	events := []GameEvent{{
		Type:      "move",
		Message:   fmt.Sprintf("Jumped %s, %d pegs left", move, state.PiecesLeft),
		Timestamp: now,
		Move:      &m,
	}}

	switch {
	case state.Win:
		events = append(events, GameEvent{Type: "win", Message: state.Message, Timestamp: now})
	case state.Stalled:
		events = append(events, GameEvent{Type: "stalled", Message: state.Message, Timestamp: now})
	}
	return events
}

func gameOverCode(eng engine.Engine) string {
	if eng.IsWin() {
		return "win"
	}
	return "stalled"
}
