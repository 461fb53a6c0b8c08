package mcpsrv

import (
	"context"
	"time"

	"github.com/qyinm/galtui/types"
)

// StartCacheJanitor clears the source cache every interval until ctx is
// done. Sources without a cache and non-positive intervals are ignored.
func StartCacheJanitor(ctx context.Context, source types.CatalogSource, interval time.Duration) bool {
	clearable, ok := source.(cacheClearSource)
	if !ok || interval <= 0 {
		return false
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				clearable.ClearCache()
			case <-ctx.Done():
				return
			}
		}
	}()
	return true
}
