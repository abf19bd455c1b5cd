package clinicapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/Freeeeeet/clinic_booking_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingObserver struct {
	mu    sync.Mutex
	calls []string
}

func (o *recordingObserver) ObserveAPIRequest(endpoint, status string, seconds float64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.calls = append(o.calls, endpoint+":"+status)
}

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return NewClient(ts.URL, zap.NewNop(), opts...)
}

func TestDoctorsBySpecialization_Success(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/doctors/specialization/General Medicine", r.URL.Path)
		assert.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		_, _ = w.Write([]byte(`[{"id":7,"name":"Dr. House","qualification":"MD","specialization":"General Medicine"}]`))
	})

	doctors, err := client.WithToken("tok-1").DoctorsBySpecialization(context.Background(), "General Medicine")
	require.NoError(t, err)
	require.Len(t, doctors, 1)
	assert.Equal(t, int64(7), doctors[0].ID)
	assert.Equal(t, "Dr. House (MD)", doctors[0].DisplayLabel())
}

func TestDoctorsBySpecialization_ErrorWithMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Specialization unknown"}`))
	})

	_, err := client.DoctorsBySpecialization(context.Background(), "Alchemy")
	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, apiErr.HTTPStatus)
	assert.Equal(t, "Not Found", apiErr.StatusText)
	require.NotNil(t, apiErr.Message)
	assert.Equal(t, "Specialization unknown", *apiErr.Message)
}

func TestAvailableSlots_QueryAndRawStartTime(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/doctors/42/available-slots", r.URL.Path)
		assert.Equal(t, "2024-05-01", r.URL.Query().Get("date"))
		_, _ = w.Write([]byte(`[{"startTime":"2024-05-01T09:00:00","endTime":"2024-05-01T09:30:00"}]`))
	})

	slots, err := client.AvailableSlots(context.Background(), "42", "2024-05-01")
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, "2024-05-01T09:00:00", slots[0].StartTime)
}

func TestAvailableSlots_InvalidJSON(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"startTime":`))
	})

	_, err := client.AvailableSlots(context.Background(), "42", "2024-05-01")
	require.Error(t, err)
	_, isAPI := AsAPIError(err)
	assert.False(t, isAPI)
}

func TestBookAppointment_Created(t *testing.T) {
	var got map[string]interface{}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/appointments/book", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":5,"appointmentDateTime":"2024-05-01T09:00:00","status":"PENDING"}`))
	})

	appt, err := client.BookAppointment(context.Background(), model.BookingRequest{
		DoctorID:          "42",
		RequestedDateTime: "2024-05-01T09:00:00",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), appt.ID)
	assert.Equal(t, "2024-05-01T09:00:00", got["requestedDateTime"])
	assert.Equal(t, "42", got["doctorId"])
	assert.Contains(t, got, "reason")
	assert.Nil(t, got["reason"])
}

func TestBookAppointment_OKIsNotCreated(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})

	_, err := client.BookAppointment(context.Background(), model.BookingRequest{DoctorID: "1", RequestedDateTime: "x"})
	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, apiErr.HTTPStatus)
	assert.False(t, apiErr.HasFieldErrors)
	assert.Nil(t, apiErr.Message)
}

func TestBookAppointment_ConflictFieldErrorsKeepOrder(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"errors":{"slot":"taken","reason":"too long"},"message":"ignored"}`))
	})

	_, err := client.BookAppointment(context.Background(), model.BookingRequest{DoctorID: "1", RequestedDateTime: "x"})
	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.True(t, apiErr.HasFieldErrors)
	assert.Equal(t, []string{"taken", "too long"}, apiErr.FieldMessages())
	assert.Equal(t, map[string]string{"slot": "taken", "reason": "too long"}, apiErr.FieldErrorMap())
}

func TestRegisterPatient_NonJSONBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`<html>bad gateway</html>`))
	})

	_, err := client.RegisterPatient(context.Background(), map[string]interface{}{"name": "A"})
	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.True(t, apiErr.Malformed)
}

func TestRegisterPatient_Created(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, float64(30), payload["age"])
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"message":"Patient registered successfully with ID: 9","success":true,"userType":"PATIENT","userId":9,"userName":"Ann"}`))
	})

	res, err := client.RegisterPatient(context.Background(), map[string]interface{}{"age": 30})
	require.NoError(t, err)
	require.NotNil(t, res.UserID)
	assert.Equal(t, int64(9), *res.UserID)
}

func TestLoginPatient(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/patient/login", r.URL.Path)
		_, _ = w.Write([]byte(`{"accessToken":"jwt-1","tokenType":"Bearer"}`))
	})

	token, err := client.LoginPatient(context.Background(), model.LoginRequest{Email: "a@b.c", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "jwt-1", token.AccessToken)
}

func TestCancelAppointment(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/appointments/12/cancel", r.URL.Path)
		_, _ = w.Write([]byte(`{"id":12,"status":"CANCELLED"}`))
	})

	appt, err := client.CancelAppointment(context.Background(), 12)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCancelled, appt.Status)
}

func TestTransportError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := ts.URL
	ts.Close()

	obs := &recordingObserver{}
	client := NewClient(url, zap.NewNop(), WithObserver(obs))

	_, err := client.MyAppointments(context.Background())
	require.Error(t, err)
	assert.True(t, IsTransport(err))
	assert.Equal(t, []string{"my_appointments:transport_error"}, obs.calls)
}

func TestRateLimiterRespectsContext(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}, WithRateLimit(1, 1))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.DoctorsBySpecialization(ctx, "Cardiology")
	assert.True(t, IsTransport(err))
}

func TestObserverRecordsStatus(t *testing.T) {
	obs := &recordingObserver{}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}, WithObserver(obs))

	_, err := client.AvailableSlots(context.Background(), "1", "2024-05-01")
	require.Error(t, err)
	assert.Equal(t, []string{"available_slots:500"}, obs.calls)
}
