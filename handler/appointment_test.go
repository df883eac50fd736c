package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"Petly/config"
	"Petly/internal/appointment"
	"Petly/models"
	"Petly/pkg/jwt"
	"Petly/pkg/response"
	"Petly/service"
	"Petly/types"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "handler-secret"

// stubAppointments implements only what the routes under test call.
type stubAppointments struct {
	service.IAppointmentService
	bookKey  string
	bookSess *types.Session
	err      error
}

func (s *stubAppointments) Book(_ context.Context, sess *types.Session, req *types.BookReq, key string) (*types.BookResp, error) {
	s.bookKey, s.bookSess = key, sess
	if s.err != nil {
		return nil, s.err
	}
	return &types.BookResp{BookingID: "bk1", PointsEarned: 30, Appointments: []types.AppointmentResp{{ID: 7, ServiceID: req.ServiceIDs[0]}}}, nil
}

func (s *stubAppointments) Confirm(_ context.Context, _ *types.Session, id uint64) (*types.TransitionResp, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &types.TransitionResp{Appointment: types.AppointmentResp{ID: id, Status: string(appointment.Confirmed)}}, nil
}

func newRouter(appts *stubAppointments) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := &Appointment{Config: &config.Config{Jwt: &config.Jwt{Secret: testSecret}}, AppointmentService: appts}
	h.RegisterRouter(r.Group("/api"))
	return r
}

func bearer(t *testing.T, uid uint64, role string) string {
	tok, err := jwt.GenerateToken([]byte(testSecret), uid, "u@petly.dev", role, jwt.TypeAccess, time.Hour)
	require.NoError(t, err)
	return "Bearer " + tok
}

func doJSON(r http.Handler, method, path, auth string, body any, header map[string]string) (*httptest.ResponseRecorder, response.Response) {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env response.Response
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func bookBody() map[string]any {
	return map[string]any{
		"business_id":      10,
		"pet_id":           20,
		"service_ids":      []uint64{30},
		"appointment_date": "2025-03-10T10:00:00Z",
	}
}

func TestBook_RequiresToken(t *testing.T) {
	r := newRouter(&stubAppointments{})

	w, _ := doJSON(r, http.MethodPost, "/api/v1/appointments", "", bookBody(), nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = doJSON(r, http.MethodPost, "/api/v1/appointments", "Bearer nope", bookBody(), nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBook_PassesSessionAndIdempotencyKey(t *testing.T) {
	appts := &stubAppointments{}
	r := newRouter(appts)

	w, env := doJSON(r, http.MethodPost, "/api/v1/appointments", bearer(t, 1, models.RoleUser), bookBody(),
		map[string]string{idempotencyHeader: "k-1"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, 0, env.Code)
	assert.Equal(t, "k-1", appts.bookKey)
	require.NotNil(t, appts.bookSess)
	assert.Equal(t, uint64(1), appts.bookSess.UserID)

	data := env.Data.(map[string]any)
	assert.Equal(t, "bk1", data["booking_id"])
	assert.EqualValues(t, 30, data["points_earned"])
}

func TestBook_BindingErrors(t *testing.T) {
	r := newRouter(&stubAppointments{})
	body := bookBody()
	body["service_ids"] = []uint64{}

	w, env := doJSON(r, http.MethodPost, "/api/v1/appointments", bearer(t, 1, models.RoleUser), body, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, http.StatusBadRequest, env.Code)
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{service.ErrNotFound, http.StatusNotFound},
		{service.ErrForbidden, http.StatusForbidden},
		{fmt.Errorf("confirm 7: %w", appointment.ErrInvalidTransition), http.StatusConflict},
		{appointment.ErrRecurrence, http.StatusBadRequest},
		{service.ErrInProgress, http.StatusConflict},
		{&service.InputError{Msg: "La fecha no es válida"}, http.StatusBadRequest},
		{fmt.Errorf("db down"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			r := newRouter(&stubAppointments{err: tt.err})
			w, env := doJSON(r, http.MethodPost, "/api/v1/appointments/7/confirm", bearer(t, 2, models.RoleBusiness), nil, nil)
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.status, env.Code)
			assert.NotEmpty(t, env.Msg)
		})
	}
}

func TestConfirm_BadID(t *testing.T) {
	r := newRouter(&stubAppointments{})

	w, _ := doJSON(r, http.MethodPost, "/api/v1/appointments/abc/confirm", bearer(t, 2, models.RoleBusiness), nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env := doJSON(r, http.MethodPost, "/api/v1/appointments/7/confirm", bearer(t, 2, models.RoleBusiness), nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	appt := env.Data.(map[string]any)["appointment"].(map[string]any)
	assert.Equal(t, "confirmed", appt["status"])
}
