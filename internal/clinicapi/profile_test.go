package clinicapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/Freeeeeet/clinic_booking_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatientProfile(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/profile/patient", r.URL.Path)
		assert.Equal(t, "Bearer jwt", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"id":3,"name":"Ann Smith","age":30,"dateOfBirth":"1994-02-10","address":"1 Main St","email":"ann@example.com"}`))
	})

	profile, err := client.WithToken("jwt").PatientProfile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), profile.ID)
	assert.Equal(t, "1 Main St", profile.Address)
	require.NotNil(t, profile.Age)
	assert.Equal(t, 30, *profile.Age)
}

func TestUpdatePatientProfile_SendsEditableFields(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/profile/patient", r.URL.Path)

		body, _ := io.ReadAll(r.Body)
		var got map[string]interface{}
		require.NoError(t, json.Unmarshal(body, &got))
		assert.Len(t, got, 5)
		assert.Equal(t, "2 Side St", got["address"])

		_, _ = w.Write([]byte(`{"id":3,"address":"2 Side St"}`))
	})

	profile, err := client.UpdatePatientProfile(context.Background(), model.PatientProfileUpdate{
		Address:             "2 Side St",
		PersonalNumber:      "+15551234567",
		GuardianName:        "Bob",
		GuardianRelation:    "Father",
		GuardianPhoneNumber: "+15557654321",
	})
	require.NoError(t, err)
	assert.Equal(t, "2 Side St", profile.Address)
}

func TestChangePassword_PlainTextResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/profile/change-password", r.URL.Path)
		_, _ = w.Write([]byte("Password changed successfully."))
	})

	msg, err := client.ChangePassword(context.Background(), model.PasswordChange{
		CurrentPassword: "old-secret", NewPassword: "new-secret", ConfirmNewPassword: "new-secret",
	})
	require.NoError(t, err)
	assert.Equal(t, "Password changed successfully.", msg)
}

func TestChangePassword_BadRequest(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"Incorrect current password."}`))
	})

	_, err := client.ChangePassword(context.Background(), model.PasswordChange{})
	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	require.NotNil(t, apiErr.Message)
	assert.Equal(t, "Incorrect current password.", *apiErr.Message)
}

func TestMyMedications(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/appointments/my/patient/medications", r.URL.Path)
		_, _ = w.Write([]byte(`[{"id":1,"medicationName":"Ibuprofen","dosage":"200mg","frequency":"Twice a day","prescribedDate":"2024-05-01T09:30:00","appointmentId":5,"prescribingDoctorName":"Dr. Grey"}]`))
	})

	meds, err := client.MyMedications(context.Background())
	require.NoError(t, err)
	require.Len(t, meds, 1)
	assert.Equal(t, "Ibuprofen", meds[0].MedicationName)
	require.NotNil(t, meds[0].AppointmentID)
	assert.Equal(t, int64(5), *meds[0].AppointmentID)
}
