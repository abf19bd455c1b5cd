package clinicapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/Freeeeeet/clinic_booking_bot/internal/model"
)

// PatientProfile GET /api/profile/patient
func (c *Client) PatientProfile(ctx context.Context) (*model.PatientProfile, error) {
	resp, err := c.do(ctx, "patient_profile", http.MethodGet, "/api/profile/patient", nil)
	if err != nil {
		return nil, err
	}
	if !resp.ok() {
		return nil, newAPIError(resp.status, resp.statusText, resp.body)
	}

	var profile model.PatientProfile
	if err := decode(resp, &profile); err != nil {
		return nil, fmt.Errorf("patient profile: %w", err)
	}
	return &profile, nil
}

// UpdatePatientProfile PUT /api/profile/patient
func (c *Client) UpdatePatientProfile(ctx context.Context, req model.PatientProfileUpdate) (*model.PatientProfile, error) {
	resp, err := c.do(ctx, "update_patient_profile", http.MethodPut, "/api/profile/patient", req)
	if err != nil {
		return nil, err
	}
	if !resp.ok() {
		return nil, newAPIError(resp.status, resp.statusText, resp.body)
	}

	var profile model.PatientProfile
	if err := decode(resp, &profile); err != nil {
		return nil, fmt.Errorf("update patient profile: %w", err)
	}
	return &profile, nil
}

// ChangePassword PUT /api/profile/change-password.
// Успешный ответ - простой текст, он возвращается как есть.
func (c *Client) ChangePassword(ctx context.Context, req model.PasswordChange) (string, error) {
	resp, err := c.do(ctx, "change_password", http.MethodPut, "/api/profile/change-password", req)
	if err != nil {
		return "", err
	}
	if !resp.ok() {
		return "", newAPIError(resp.status, resp.statusText, resp.body)
	}
	return strings.TrimSpace(string(resp.body)), nil
}
