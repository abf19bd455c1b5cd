package clinicapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Freeeeeet/clinic_booking_bot/internal/model"
)

// RegisterPatient POST /api/auth/patient/register.
// Тело ответа разбирается всегда: не-JSON ответ даже с 201 считается ошибкой.
func (c *Client) RegisterPatient(ctx context.Context, payload map[string]interface{}) (*model.RegistrationResult, error) {
	resp, err := c.do(ctx, "register_patient", http.MethodPost, "/api/auth/patient/register", payload)
	if err != nil {
		return nil, err
	}
	if resp.status != http.StatusCreated {
		return nil, newAPIError(resp.status, resp.statusText, resp.body)
	}

	var result model.RegistrationResult
	if err := decode(resp, &result); err != nil {
		return nil, fmt.Errorf("register patient: %w", err)
	}
	return &result, nil
}

// LoginPatient POST /api/auth/patient/login
func (c *Client) LoginPatient(ctx context.Context, req model.LoginRequest) (*model.AuthToken, error) {
	resp, err := c.do(ctx, "login_patient", http.MethodPost, "/api/auth/patient/login", req)
	if err != nil {
		return nil, err
	}
	if !resp.ok() {
		return nil, newAPIError(resp.status, resp.statusText, resp.body)
	}

	var token model.AuthToken
	if err := decode(resp, &token); err != nil {
		return nil, fmt.Errorf("login patient: %w", err)
	}
	if token.AccessToken == "" {
		return nil, fmt.Errorf("login patient: empty access token")
	}
	return &token, nil
}
