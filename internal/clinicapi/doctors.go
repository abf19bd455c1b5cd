package clinicapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Freeeeeet/clinic_booking_bot/internal/model"
)

// DoctorsBySpecialization GET /api/doctors/specialization/{spec}
func (c *Client) DoctorsBySpecialization(ctx context.Context, specialization string) ([]model.DoctorSummary, error) {
	path := "/api/doctors/specialization/" + url.PathEscape(specialization)

	resp, err := c.do(ctx, "doctors_by_specialization", http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	if !resp.ok() {
		return nil, newAPIError(resp.status, resp.statusText, resp.body)
	}

	var doctors []model.DoctorSummary
	if err := decode(resp, &doctors); err != nil {
		return nil, fmt.Errorf("doctors by specialization: %w", err)
	}
	return doctors, nil
}

// AvailableSlots GET /api/doctors/{doctorId}/available-slots?date=yyyy-mm-dd
func (c *Client) AvailableSlots(ctx context.Context, doctorID, date string) ([]model.AvailableSlot, error) {
	q := url.Values{}
	q.Set("date", date)
	path := fmt.Sprintf("/api/doctors/%s/available-slots?%s", url.PathEscape(doctorID), q.Encode())

	resp, err := c.do(ctx, "available_slots", http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	if !resp.ok() {
		return nil, newAPIError(resp.status, resp.statusText, resp.body)
	}

	var slots []model.AvailableSlot
	if err := decode(resp, &slots); err != nil {
		return nil, fmt.Errorf("available slots: %w", err)
	}
	return slots, nil
}
