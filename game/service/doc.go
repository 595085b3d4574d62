// Package service provides the business logic layer for the peg solitaire server.
//
// The service package implements:
//   - Multi-session game management
//   - Board preset selection and size overrides
//   - Single and bulk jump processing
//   - Move history pagination
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager handles session creation, retrieval, and lifecycle.
// ConfigManager loads and saves board presets.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP) and
// the game engine. Each session owns its own engine; the service holds one
// lock that serializes every mutation so engines never see concurrent writers.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//	gameService := service.NewGameService(sessionMgr, configMgr)
//
//	sessionInfo, err := gameService.CreateSession(ctx, "classic", 0)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := gameService.Move(ctx, sessionInfo.ID, engine.Move{
//		From: engine.Position{Row: 3, Col: 1},
//		To:   engine.Position{Row: 3, Col: 3},
//	}, false)
//
// Rejected jumps are not errors at this layer: they come back in the result
// with Success false and a machine readable FailureCode.
package service
