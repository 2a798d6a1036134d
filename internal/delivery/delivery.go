// Package delivery defines the contract shared by all transport servers.
package delivery

import "context"

// Delivery is a transport-facing server that can be started by the
// application runtime.
type Delivery interface {
	Serve(ctx context.Context) error
}
