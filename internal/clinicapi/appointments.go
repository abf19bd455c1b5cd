package clinicapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Freeeeeet/clinic_booking_bot/internal/model"
)

// BookAppointment POST /api/appointments/book.
// Успехом считается только 201 Created, любой другой статус -> *APIError.
func (c *Client) BookAppointment(ctx context.Context, req model.BookingRequest) (*model.Appointment, error) {
	resp, err := c.do(ctx, "book_appointment", http.MethodPost, "/api/appointments/book", req)
	if err != nil {
		return nil, err
	}
	if resp.status != http.StatusCreated {
		return nil, newAPIError(resp.status, resp.statusText, resp.body)
	}

	var appointment model.Appointment
	if err := decode(resp, &appointment); err != nil {
		return nil, fmt.Errorf("book appointment: %w", err)
	}
	return &appointment, nil
}

// MyAppointments GET /api/appointments/my/patient
func (c *Client) MyAppointments(ctx context.Context) ([]model.Appointment, error) {
	resp, err := c.do(ctx, "my_appointments", http.MethodGet, "/api/appointments/my/patient", nil)
	if err != nil {
		return nil, err
	}
	if !resp.ok() {
		return nil, newAPIError(resp.status, resp.statusText, resp.body)
	}

	var appointments []model.Appointment
	if err := decode(resp, &appointments); err != nil {
		return nil, fmt.Errorf("my appointments: %w", err)
	}
	return appointments, nil
}

// CancelAppointment PUT /api/appointments/{id}/cancel
func (c *Client) CancelAppointment(ctx context.Context, appointmentID int64) (*model.Appointment, error) {
	path := fmt.Sprintf("/api/appointments/%d/cancel", appointmentID)

	resp, err := c.do(ctx, "cancel_appointment", http.MethodPut, path, nil)
	if err != nil {
		return nil, err
	}
	if !resp.ok() {
		return nil, newAPIError(resp.status, resp.statusText, resp.body)
	}

	var appointment model.Appointment
	if err := decode(resp, &appointment); err != nil {
		return nil, fmt.Errorf("cancel appointment: %w", err)
	}
	return &appointment, nil
}

// MyMedications GET /api/appointments/my/patient/medications
func (c *Client) MyMedications(ctx context.Context) ([]model.Medication, error) {
	resp, err := c.do(ctx, "my_medications", http.MethodGet, "/api/appointments/my/patient/medications", nil)
	if err != nil {
		return nil, err
	}
	if !resp.ok() {
		return nil, newAPIError(resp.status, resp.statusText, resp.body)
	}

	var medications []model.Medication
	if err := decode(resp, &medications); err != nil {
		return nil, fmt.Errorf("my medications: %w", err)
	}
	return medications, nil
}
