// Package cache persists the most recently exported legacy payload under
// a fixed key, mirroring the original app's local-storage cache. Backends:
// a local JSON file (default) and Redis.
package cache

import (
	"context"

	"github.com/buildy/tablemaker/internal/jsonio"
)

// payloadKey is the fixed key the payload is stored under.
const payloadKey = "table-maker:payload"

// Cache stores and retrieves the legacy payload verbatim. Load reports
// ok=false when nothing has been saved yet; read failures are errors, not
// silent misses.
type Cache interface {
	Load(ctx context.Context) (payload *jsonio.LegacyPayload, ok bool, err error)
	Save(ctx context.Context, payload *jsonio.LegacyPayload) error
}
