package app

import (
	"context"
	"time"
)

// fetcher is the part of the fetch controller the refresher drives.
type fetcher interface {
	Fetch()
}

// RunRefresher triggers f.Fetch every interval until ctx is done. A
// non-positive interval disables refreshing and RunRefresher just waits for
// ctx. The initial fetch is the controller's own; the first tick comes one
// interval after start.
func RunRefresher(ctx context.Context, f fetcher, interval time.Duration) error {
	if interval <= 0 {
		<-ctx.Done()
		return nil
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			f.Fetch()
		}
	}
}
