package integration

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Thiago-2004/ateneo-padel-reservas/test/helpers"
)

func bookingBody(court int, date, startTime string) map[string]interface{} {
	return map[string]interface{}{
		"court":        court,
		"date":         date,
		"start_time":   startTime,
		"duration_min": 90,
	}
}

type reservationResponse struct {
	OK            bool   `json:"ok"`
	ReservationID uint   `json:"reservationId"`
	DepositAmount int    `json:"deposit_amount"`
	PaymentStatus string `json:"payment_status"`
	Reservation   struct {
		ID            uint   `json:"id"`
		Status        string `json:"status"`
		PaymentStatus string `json:"payment_status"`
	} `json:"reservation"`
}

func createReservation(t *testing.T, s *helpers.TestServer, token string, court int, date, startTime string) uint {
	t.Helper()
	rec := s.Request(http.MethodPost, "/reservations", token, bookingBody(court, date, startTime))
	require.Equal(t, http.StatusCreated, rec.Code, "body: %s", rec.Body.String())

	var resp reservationResponse
	s.DecodeJSON(rec, &resp)
	require.True(t, resp.OK)
	return resp.ReservationID
}

// The whole lifecycle in one pass: book, conflict, report, approve, still
// blocked, cancel, rebook.
func TestReservationLifecycle(t *testing.T) {
	s := helpers.NewTestServer(t)

	userToken, _ := s.RegisterUser("Thiago", "thiago@test.local", "secreto123")
	otherToken, _ := s.RegisterUser("Sofia", "sofia@test.local", "secreto123")
	adminToken, _ := s.CreateAdmin("Admin", "admin@test.local", "secreto123")

	rec := s.Request(http.MethodPost, "/reservations", userToken, bookingBody(1, "2026-09-01", "18:00"))
	require.Equal(t, http.StatusCreated, rec.Code)
	var created reservationResponse
	s.DecodeJSON(rec, &created)
	assert.Equal(t, 10000, created.DepositAmount)
	assert.Equal(t, "pending", created.PaymentStatus)
	id := created.ReservationID

	// Same slot is taken while the deposit is unsettled.
	rec = s.Request(http.MethodPost, "/reservations", otherToken, bookingBody(1, "2026-09-01", "18:00"))
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Owner reports the transfer.
	rec = s.Request(http.MethodPost, fmt.Sprintf("/reservations/%d/report-payment", id), userToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// It shows up in the admin review queue.
	rec = s.Request(http.MethodGet, "/admin/reservations/pending", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var queue struct {
		Reservations []struct {
			ID            uint   `json:"id"`
			PaymentStatus string `json:"payment_status"`
		} `json:"reservations"`
	}
	s.DecodeJSON(rec, &queue)
	require.Len(t, queue.Reservations, 1)
	assert.Equal(t, id, queue.Reservations[0].ID)
	assert.Equal(t, "reported", queue.Reservations[0].PaymentStatus)

	// Admin approves; the slot stays blocked and the queue empties.
	rec = s.Request(http.MethodPost, fmt.Sprintf("/admin/reservations/%d/approve", id), adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.Request(http.MethodPost, "/reservations", otherToken, bookingBody(1, "2026-09-01", "18:00"))
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = s.Request(http.MethodGet, "/admin/reservations/pending", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	s.DecodeJSON(rec, &queue)
	assert.Empty(t, queue.Reservations)

	// Cancelling frees the slot for someone else.
	rec = s.Request(http.MethodDelete, fmt.Sprintf("/reservations/%d", id), userToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.Request(http.MethodPost, "/reservations", otherToken, bookingBody(1, "2026-09-01", "18:00"))
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestRejectedPaymentFreesSlot(t *testing.T) {
	s := helpers.NewTestServer(t)

	userToken, _ := s.RegisterUser("Thiago", "thiago@test.local", "secreto123")
	otherToken, _ := s.RegisterUser("Sofia", "sofia@test.local", "secreto123")
	adminToken, _ := s.CreateAdmin("Admin", "admin@test.local", "secreto123")

	id := createReservation(t, s, userToken, 1, "2026-09-01", "18:00")

	rec := s.Request(http.MethodPost, fmt.Sprintf("/admin/reservations/%d/reject", id), adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// Slot is free again.
	rec = s.Request(http.MethodPost, "/reservations", otherToken, bookingBody(1, "2026-09-01", "18:00"))
	assert.Equal(t, http.StatusCreated, rec.Code)

	// The rejected payment cannot be re-reported.
	rec = s.Request(http.MethodPost, fmt.Sprintf("/reservations/%d/report-payment", id), userToken, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReservationAuthorization(t *testing.T) {
	s := helpers.NewTestServer(t)

	ownerToken, _ := s.RegisterUser("Thiago", "thiago@test.local", "secreto123")
	strangerToken, _ := s.RegisterUser("Sofia", "sofia@test.local", "secreto123")
	adminToken, _ := s.CreateAdmin("Admin", "admin@test.local", "secreto123")

	id := createReservation(t, s, ownerToken, 1, "2026-09-01", "18:00")
	path := fmt.Sprintf("/reservations/%d", id)

	// A stranger can neither read nor cancel nor report.
	assert.Equal(t, http.StatusForbidden, s.Request(http.MethodGet, path, strangerToken, nil).Code)
	assert.Equal(t, http.StatusForbidden, s.Request(http.MethodDelete, path, strangerToken, nil).Code)
	assert.Equal(t, http.StatusForbidden,
		s.Request(http.MethodPost, path+"/report-payment", strangerToken, nil).Code)

	// The admin can read it.
	assert.Equal(t, http.StatusOK, s.Request(http.MethodGet, path, adminToken, nil).Code)

	// Admin-only surface is closed to regular users.
	assert.Equal(t, http.StatusForbidden,
		s.Request(http.MethodGet, "/admin/reservations/pending", ownerToken, nil).Code)
	assert.Equal(t, http.StatusForbidden,
		s.Request(http.MethodPost, fmt.Sprintf("/admin/reservations/%d/approve", id), ownerToken, nil).Code)
}

func TestAdminEdit(t *testing.T) {
	s := helpers.NewTestServer(t)

	userToken, _ := s.RegisterUser("Thiago", "thiago@test.local", "secreto123")
	adminToken, _ := s.CreateAdmin("Admin", "admin@test.local", "secreto123")

	first := createReservation(t, s, userToken, 1, "2026-09-01", "18:00")
	second := createReservation(t, s, userToken, 2, "2026-09-01", "18:00")

	// Regular users cannot edit.
	rec := s.Request(http.MethodPatch, fmt.Sprintf("/reservations/%d", second), userToken,
		map[string]interface{}{"court": 1})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Moving onto an occupied slot is a conflict.
	rec = s.Request(http.MethodPatch, fmt.Sprintf("/reservations/%d", second), adminToken,
		map[string]interface{}{"court": 1})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Re-sending the same slot does not conflict with itself.
	rec = s.Request(http.MethodPatch, fmt.Sprintf("/reservations/%d", first), adminToken,
		map[string]interface{}{"court": 1, "date": "2026-09-01", "start_time": "18:00", "notes": "cambio"})
	assert.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())

	// Moving to a free slot works and frees the old one.
	rec = s.Request(http.MethodPatch, fmt.Sprintf("/reservations/%d", first), adminToken,
		map[string]interface{}{"start_time": "20:00"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.Request(http.MethodPatch, fmt.Sprintf("/reservations/%d", second), adminToken,
		map[string]interface{}{"court": 1})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateReservation_Validation(t *testing.T) {
	s := helpers.NewTestServer(t)
	token, _ := s.RegisterUser("Thiago", "thiago@test.local", "secreto123")

	cases := []struct {
		name string
		body map[string]interface{}
	}{
		{"bad court", map[string]interface{}{"court": 3, "date": "2026-09-01", "start_time": "18:00", "duration_min": 90}},
		{"bad date", map[string]interface{}{"court": 1, "date": "01/09/2026", "start_time": "18:00", "duration_min": 90}},
		{"bad time", map[string]interface{}{"court": 1, "date": "2026-09-01", "start_time": "6pm", "duration_min": 90}},
		{"bad duration", map[string]interface{}{"court": 1, "date": "2026-09-01", "start_time": "18:00", "duration_min": 45}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := s.Request(http.MethodPost, "/reservations", token, tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestListReservations(t *testing.T) {
	s := helpers.NewTestServer(t)
	token, _ := s.RegisterUser("Thiago", "thiago@test.local", "secreto123")

	createReservation(t, s, token, 1, "2026-09-01", "18:00")
	createReservation(t, s, token, 1, "2026-09-10", "18:00")

	rec := s.Request(http.MethodGet, "/reservations?dateFrom=2026-09-01&dateTo=2026-09-05", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var list struct {
		Reservations []struct {
			Date string `json:"date"`
		} `json:"reservations"`
	}
	s.DecodeJSON(rec, &list)
	require.Len(t, list.Reservations, 1)
	assert.Equal(t, "2026-09-01", list.Reservations[0].Date)

	rec = s.Request(http.MethodGet, "/reservations", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	s.DecodeJSON(rec, &list)
	assert.Len(t, list.Reservations, 2)
}
