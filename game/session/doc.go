// Package session provides in-memory session management for the peg
// solitaire server.
//
// The session package implements:
//   - Thread-safe session storage and retrieval
//   - Unique session ID generation
//   - Expiry of idle sessions
//
// Session Identifiers:
//
// Sessions use 4-character hex IDs for easy reference. Lookups are
// case-insensitive, so "AB12" and "ab12" name the same session. Generated
// IDs come from crypto/rand and are retried on collision.
//
// Concurrency:
//
// The manager guards its map with a RWMutex. It does not serialize access to
// the engines it hands out; the service layer owns that lock.
//
// Usage:
//
//	manager := session.NewManager()
//
//	sess, err := manager.Create("", config)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	sess, err = manager.Get(sess.ID)
//
//	// Drop sessions idle for more than a day
//	removed := manager.CleanupExpiredSessions(24 * time.Hour)
//
// Sessions are not persisted. Restarting the server discards them.
package session
