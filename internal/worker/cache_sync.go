// Package worker contains event consumers that maintain derived data.
package worker

import (
	"context"
	"errors"
	"log"

	"github.com/buildy/tablemaker/internal/cache"
	"github.com/buildy/tablemaker/internal/event"
	"github.com/buildy/tablemaker/internal/grid"
	"github.com/buildy/tablemaker/internal/jsonio"
)

// CacheSyncWorker keeps the cached legacy payload in step with table
// mutations: on any event that resolves to a table it re-exports that
// table's legacy payload and saves it to the cache. Events without a
// table id (row deletes, cell updates addressed by row id alone) are
// skipped; the next table-scoped event or explicit export refreshes the
// cache.
type CacheSyncWorker struct {
	io    *jsonio.Service
	cache cache.Cache
}

// NewCacheSyncWorker creates a worker over the given export service and
// cache backend.
func NewCacheSyncWorker(io *jsonio.Service, c cache.Cache) *CacheSyncWorker {
	return &CacheSyncWorker{io: io, cache: c}
}

// HandleEvent re-exports and caches the payload for the event's table.
func (w *CacheSyncWorker) HandleEvent(ctx context.Context, evt event.DomainEvent) error {
	if evt.TableID == "" {
		return nil
	}
	payload, err := w.io.ExportLegacyPayload(ctx, evt.TableID)
	if err != nil {
		if errors.Is(err, grid.ErrNotFound) {
			// Table vanished between the event and the export.
			log.Printf("cache_sync: table %s gone, skipping refresh", evt.TableID)
			return nil
		}
		return err
	}
	return w.cache.Save(ctx, payload)
}
