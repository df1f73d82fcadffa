package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Thiago-2004/ateneo-padel-reservas/internal/models"
	"github.com/Thiago-2004/ateneo-padel-reservas/internal/repositories"
	"github.com/Thiago-2004/ateneo-padel-reservas/internal/services"
	"github.com/Thiago-2004/ateneo-padel-reservas/pkg/apperrors"
	"github.com/Thiago-2004/ateneo-padel-reservas/test/helpers"
)

func TestPromoteToAdmin(t *testing.T) {
	helpers.SetTestConfig(t)
	db := helpers.OpenTestDB(t)

	authSvc := services.NewAuthService(
		repositories.NewUserRepository(),
		repositories.NewPasswordResetTokenRepository(),
		&fakeSender{},
	)
	userSvc := services.NewUserService(repositories.NewUserRepository())

	resp, err := authSvc.Register(db, registerReq("thiago@test.local"))
	require.NoError(t, err)

	require.NoError(t, userSvc.PromoteToAdmin(db, resp.User.ID))

	users, err := userSvc.ListUsers(db)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, models.UserRoleAdmin, users[0].Role)

	// Promoting an admin again still succeeds.
	assert.NoError(t, userSvc.PromoteToAdmin(db, resp.User.ID))
}

func TestPromoteToAdmin_UnknownUser(t *testing.T) {
	helpers.SetTestConfig(t)
	db := helpers.OpenTestDB(t)
	userSvc := services.NewUserService(repositories.NewUserRepository())

	err := userSvc.PromoteToAdmin(db, 9999)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}
