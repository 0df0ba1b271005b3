package health

import "context"

// BackendPinger checks storage backend availability.
type BackendPinger interface {
	Ping(ctx context.Context) error
}
