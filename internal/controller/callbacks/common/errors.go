package common

import (
	"errors"

	"github.com/Freeeeeet/clinic_booking_bot/internal/service"
)

// Общие ошибки для обработчиков
var (
	ErrNoMessage     = errors.New("no message in callback")
	ErrInvalidFormat = errors.New("invalid callback format")
	ErrStaleKeyboard = errors.New("keyboard is out of date")
	ErrFormExpired   = errors.New("form expired")
)

// ErrorMessage возвращает пользовательское сообщение для ошибки
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrNoMessage):
		return "❌ This message can no longer be edited. Please start again."
	case errors.Is(err, ErrInvalidFormat):
		return "❌ Invalid data format"
	case errors.Is(err, ErrStaleKeyboard):
		return "⚠️ These options are out of date. Please choose again."
	case errors.Is(err, ErrFormExpired):
		return "⌛ The form has expired. Please start again."
	default:
		return service.ErrorMessage(err)
	}
}
