package session

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Expirer is a Store that needs expired sessions removed explicitly.
type Expirer interface {
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// StartSweeper deletes expired sessions every interval until ctx is done.
func StartSweeper(
	ctx context.Context,
	store Expirer,
	interval time.Duration,
	log *zap.Logger,
) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				removed, err := store.DeleteExpired(ctx, now)
				if err != nil {
					log.Error("failed to sweep expired sessions", zap.Error(err))
					continue
				}
				if removed > 0 {
					log.Info("swept expired sessions", zap.Int64("removed", removed))
				}
			}
		}
	}()
}
