package registration

import (
	"strings"

	"github.com/Freeeeeet/clinic_booking_bot/internal/clinicapi"
)

const (
	PasswordMismatchError   = "Passwords do not match"
	PasswordMismatchWarning = "Passwords do not match."
	InvalidFormWarning      = "Please fill out all required fields correctly."
	SuccessMessage          = "Registration successful! Redirecting to login..."
	GenericFailureMessage   = "Registration failed. Please try again."
	UnexpectedErrorMessage  = "An unexpected error occurred. Please try again later."
	SubmitInProgressMessage = "Registration is already being submitted."
)

// ErrorMessage текст для пользователя по ошибке регистрации.
// Ответ без JSON-тела и сетевые ошибки дают общее сообщение.
func ErrorMessage(err error) string {
	apiErr, ok := clinicapi.AsAPIError(err)
	if !ok || apiErr.Malformed {
		return UnexpectedErrorMessage
	}
	if apiErr.HasFieldErrors {
		return "Registration failed: " + strings.Join(apiErr.FieldMessages(), " ")
	}
	if apiErr.Message != nil {
		return *apiErr.Message
	}
	return GenericFailureMessage
}
