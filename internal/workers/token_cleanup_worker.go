package workers

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Thiago-2004/ateneo-padel-reservas/internal/logger"
	"github.com/Thiago-2004/ateneo-padel-reservas/internal/repositories"
)

// TokenCleanupWorker periodically deletes password reset tokens that expired
// without being used. Purely hygienic: expired tokens are already rejected at
// use time, this just keeps the table from growing.
type TokenCleanupWorker struct {
	db        *gorm.DB
	tokenRepo repositories.PasswordResetTokenRepository
	interval  time.Duration
}

func NewTokenCleanupWorker(db *gorm.DB, tokenRepo repositories.PasswordResetTokenRepository, interval time.Duration) *TokenCleanupWorker {
	return &TokenCleanupWorker{
		db:        db,
		tokenRepo: tokenRepo,
		interval:  interval,
	}
}

// Start runs the sweep loop until ctx is cancelled. One sweep runs
// immediately so a restart does not defer cleanup by a full interval.
func (w *TokenCleanupWorker) Start(ctx context.Context) {
	logger.Info("token cleanup worker started", "interval", w.interval.String())

	w.sweep()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("token cleanup worker stopped")
			return
		case <-ticker.C:
			w.sweep()
		}
	}
}

func (w *TokenCleanupWorker) sweep() {
	deleted, err := w.tokenRepo.DeleteExpired(w.db)
	if err != nil {
		logger.WorkerLog("token_cleanup", "delete_expired", err)
		return
	}
	if deleted > 0 {
		logger.Info("expired reset tokens deleted", "count", deleted)
	}
}
