package workers_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Thiago-2004/ateneo-padel-reservas/internal/models"
	"github.com/Thiago-2004/ateneo-padel-reservas/internal/repositories"
	"github.com/Thiago-2004/ateneo-padel-reservas/internal/workers"
	"github.com/Thiago-2004/ateneo-padel-reservas/test/helpers"
)

func TestTokenCleanupWorker_DeletesOnlyExpiredUnused(t *testing.T) {
	helpers.SetTestConfig(t)
	db := helpers.OpenTestDB(t)

	now := time.Now()
	used := now.Add(-time.Hour)
	tokens := []models.PasswordResetToken{
		{UserID: 1, TokenHash: "expired-unused", ExpiresAt: now.Add(-time.Minute)},
		{UserID: 1, TokenHash: "valid-unused", ExpiresAt: now.Add(time.Hour)},
		{UserID: 1, TokenHash: "expired-used", ExpiresAt: now.Add(-time.Minute), UsedAt: &used},
	}
	require.NoError(t, db.Create(&tokens).Error)

	worker := workers.NewTokenCleanupWorker(db, repositories.NewPasswordResetTokenRepository(), time.Hour)

	// Start sweeps once immediately; cancel right after.
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(done)
	}()
	cancel()
	<-done

	var remaining []models.PasswordResetToken
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 2)
	for _, tok := range remaining {
		assert.NotEqual(t, "expired-unused", tok.TokenHash)
	}
}
