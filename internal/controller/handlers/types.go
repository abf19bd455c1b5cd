package handlers

import (
	"github.com/Freeeeeet/clinic_booking_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/clinic_booking_bot/internal/service"
	"go.uber.org/zap"
)

// Handlers содержит все зависимости для обработки команд
type Handlers struct {
	userService         *service.UserService
	bookingService      *service.BookingService
	registrationService *service.RegistrationService
	authService         *service.AuthService
	appointmentService  *service.AppointmentService
	profileService      *service.ProfileService
	stateManager        callbacktypes.StateManager
	logger              *zap.Logger

	specializations []string

	// deps нужны общим экранам, которые перерисовывают сообщения callback-ов
	deps *callbacktypes.Handler
}

// NewHandlers создаёт новый обработчик команд
func NewHandlers(deps *callbacktypes.Handler) *Handlers {
	return &Handlers{
		userService:         deps.UserService,
		bookingService:      deps.BookingService,
		registrationService: deps.RegistrationService,
		authService:         deps.AuthService,
		appointmentService:  deps.AppointmentService,
		profileService:      deps.ProfileService,
		stateManager:        deps.StateManager,
		logger:              deps.Logger,
		specializations:     deps.Specializations,
		deps:                deps,
	}
}
