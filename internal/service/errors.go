package service

import (
	"errors"

	"github.com/Freeeeeet/clinic_booking_bot/internal/clinicapi"
	"github.com/Freeeeeet/clinic_booking_bot/internal/session"
)

var (
	ErrNotLoggedIn  = errors.New("not logged in")
	ErrDateInPast   = errors.New("date is in the past")
	ErrInvalidDate  = errors.New("invalid date")
	ErrUserNotFound = errors.New("user not found")
)

// ErrorMessage текст ошибки для пользователя
func ErrorMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotLoggedIn), errors.Is(err, session.ErrNoSession):
		return "🔒 Please log in first: /login"
	case errors.Is(err, ErrDateInPast):
		return "⚠️ Please choose today or a later date."
	case errors.Is(err, ErrInvalidDate):
		return "⚠️ Invalid date."
	case errors.Is(err, ErrUserNotFound):
		return "❌ User not found. Send /start first."
	case clinicapi.IsTransport(err):
		return "❌ Clinic service is unavailable. Please try again later."
	}

	var inputErr *InputError
	if errors.As(err, &inputErr) {
		return "⚠️ " + inputErr.Message
	}

	if apiErr, ok := clinicapi.AsAPIError(err); ok {
		if apiErr.Message != nil {
			return "❌ " + *apiErr.Message
		}
		return "❌ Request failed: " + apiErr.StatusText
	}

	return "❌ Something went wrong. Please try again."
}
