package integration

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Thiago-2004/ateneo-padel-reservas/test/helpers"
)

func TestRegisterLoginMe(t *testing.T) {
	s := helpers.NewTestServer(t)

	token, userID := s.RegisterUser("Thiago", "thiago@test.local", "secreto123")
	require.NotEmpty(t, token)

	rec := s.Request(http.MethodGet, "/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var me struct {
		User struct {
			ID    uint   `json:"id"`
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"user"`
	}
	s.DecodeJSON(rec, &me)
	assert.Equal(t, userID, me.User.ID)
	assert.Equal(t, "thiago@test.local", me.User.Email)
	assert.Equal(t, "user", me.User.Role)

	// The password hash must never appear in a response.
	assert.NotContains(t, rec.Body.String(), "password")

	rec = s.Request(http.MethodPost, "/auth/login", "", map[string]string{
		"email":    "thiago@test.local",
		"password": "secreto123",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	s := helpers.NewTestServer(t)

	s.RegisterUser("Thiago", "thiago@test.local", "secreto123")

	rec := s.Request(http.MethodPost, "/auth/register", "", map[string]string{
		"name":     "Otro",
		"email":    "thiago@test.local",
		"password": "secreto123",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRegister_ValidationErrors(t *testing.T) {
	s := helpers.NewTestServer(t)

	rec := s.Request(http.MethodPost, "/auth/register", "", map[string]string{
		"name":     "T",
		"email":    "not-an-email",
		"password": "corta",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Error struct {
			Code    string            `json:"code"`
			Details map[string]string `json:"details"`
		} `json:"error"`
	}
	s.DecodeJSON(rec, &resp)
	assert.Equal(t, "VALIDATION_FAILED", resp.Error.Code)
	assert.Contains(t, resp.Error.Details, "email")
	assert.Contains(t, resp.Error.Details, "password")
}

func TestLogin_BadCredentials(t *testing.T) {
	s := helpers.NewTestServer(t)

	s.RegisterUser("Thiago", "thiago@test.local", "secreto123")

	rec := s.Request(http.MethodPost, "/auth/login", "", map[string]string{
		"email":    "thiago@test.local",
		"password": "incorrecta",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestMe_RequiresToken(t *testing.T) {
	s := helpers.NewTestServer(t)

	rec := s.Request(http.MethodGet, "/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.Request(http.MethodGet, "/me", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestForgotAndResetOverHTTP(t *testing.T) {
	s := helpers.NewTestServer(t)

	s.RegisterUser("Thiago", "thiago@test.local", "secreto123")

	rec := s.Request(http.MethodPost, "/auth/forgot", "", map[string]string{
		"email": "thiago@test.local",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var forgot struct {
		OK           bool   `json:"ok"`
		DevResetLink string `json:"dev_reset_link"`
	}
	s.DecodeJSON(rec, &forgot)
	require.True(t, forgot.OK)
	// No SMTP configured in tests, so the link comes back in the response.
	require.Contains(t, forgot.DevResetLink, "/reset?token=")
	token := forgot.DevResetLink[strings.Index(forgot.DevResetLink, "token=")+len("token="):]

	rec = s.Request(http.MethodPost, "/auth/reset", "", map[string]string{
		"token":       token,
		"newPassword": "nuevaclave123",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.Request(http.MethodPost, "/auth/login", "", map[string]string{
		"email":    "thiago@test.local",
		"password": "nuevaclave123",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestForgot_UnknownEmailLooksIdentical(t *testing.T) {
	s := helpers.NewTestServer(t)

	rec := s.Request(http.MethodPost, "/auth/forgot", "", map[string]string{
		"email": "nadie@test.local",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var forgot struct {
		OK           bool   `json:"ok"`
		DevResetLink string `json:"dev_reset_link"`
	}
	s.DecodeJSON(rec, &forgot)
	assert.True(t, forgot.OK)
	assert.Empty(t, forgot.DevResetLink)
}
