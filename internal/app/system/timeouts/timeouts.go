// Package timeouts provides centralized timeout values for handler operations.
//
// These timeouts are used with context.WithTimeout for database operations
// and the ingestion call in HTTP handlers. Centralized values keep the
// behavior consistent and easy to adjust.
//
// Guidelines for choosing a timeout:
//   - Ping: health checks and connectivity verification
//   - Medium: reads, list and proximity queries, toggles
//   - Long: anything that also waits on the external ingestion service
package timeouts

import "time"

const (
	ping   = 2 * time.Second
	medium = 10 * time.Second
	long   = 30 * time.Second
)

// Ping returns the timeout for health checks and connectivity verification.
func Ping() time.Duration { return ping }

// Medium returns the timeout for query and toggle operations.
func Medium() time.Duration { return medium }

// Long returns the timeout for operations that include the external
// media-ingestion call.
func Long() time.Duration { return long }
