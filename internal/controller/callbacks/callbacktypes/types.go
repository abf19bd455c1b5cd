package callbacktypes

import (
	"context"
	"time"

	"github.com/Freeeeeet/clinic_booking_bot/internal/controller/state"
	"github.com/Freeeeeet/clinic_booking_bot/internal/service"
	"go.uber.org/zap"
)

// StateManager интерфейс для управления состоянием пользователей
type StateManager interface {
	ClearState(telegramID int64)
	GetState(telegramID int64) state.UserState
	SetState(telegramID int64, state state.UserState)
	SetData(telegramID int64, key string, value interface{})
	GetData(telegramID int64, key string) (interface{}, bool)
	GetAllData(telegramID int64) map[string]interface{}
	Update(telegramID int64, fn func(*state.UserData))
}

// Scheduler отложенный запуск задач
type Scheduler interface {
	After(delay time.Duration, name string, fn func(ctx context.Context))
}

// Handler содержит общие зависимости для всех callback handlers
type Handler struct {
	UserService         *service.UserService
	BookingService      *service.BookingService
	RegistrationService *service.RegistrationService
	AuthService         *service.AuthService
	AppointmentService  *service.AppointmentService
	ProfileService      *service.ProfileService
	StateManager        StateManager
	Scheduler           Scheduler
	Logger              *zap.Logger

	// Специализации для первой стадии формы записи
	Specializations []string
	// Пауза перед приглашением войти после регистрации
	LoginRedirectDelay time.Duration
}
