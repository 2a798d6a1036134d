// Package lifecycle holds shared constants for component startup and shutdown.
package lifecycle

import "time"

// DefaultTimeout bounds graceful start/stop work such as DB pings and
// HTTP server shutdown.
const DefaultTimeout = 10 * time.Second
