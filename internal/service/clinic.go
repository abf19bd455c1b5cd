package service

import (
	"context"

	"github.com/Freeeeeet/clinic_booking_bot/internal/booking"
	"github.com/Freeeeeet/clinic_booking_bot/internal/model"
)

// ClinicAPI вызовы REST API клиники, которые использует бот
type ClinicAPI interface {
	DoctorsBySpecialization(ctx context.Context, specialization string) ([]model.DoctorSummary, error)
	AvailableSlots(ctx context.Context, doctorID, date string) ([]model.AvailableSlot, error)
	BookAppointment(ctx context.Context, req model.BookingRequest) (*model.Appointment, error)
	RegisterPatient(ctx context.Context, payload map[string]interface{}) (*model.RegistrationResult, error)
	LoginPatient(ctx context.Context, req model.LoginRequest) (*model.AuthToken, error)
	MyAppointments(ctx context.Context) ([]model.Appointment, error)
	CancelAppointment(ctx context.Context, appointmentID int64) (*model.Appointment, error)
	MyMedications(ctx context.Context) ([]model.Medication, error)
	PatientProfile(ctx context.Context) (*model.PatientProfile, error)
	UpdatePatientProfile(ctx context.Context, req model.PatientProfileUpdate) (*model.PatientProfile, error)
	ChangePassword(ctx context.Context, req model.PasswordChange) (string, error)
}

// ClinicAPIFactory возвращает клиент с токеном пациента ("" - без авторизации)
type ClinicAPIFactory func(token string) ClinicAPI

// TokenSource источник bearer-токена пользователя
type TokenSource interface {
	Token(ctx context.Context, telegramID int64) (string, error)
}

// PatientLinker сохраняет связь Telegram-аккаунта с пациентом
type PatientLinker interface {
	LinkPatient(ctx context.Context, telegramID int64, patientID *int64, email string) error
}

// FlowObserver метрики исходов сценариев
type FlowObserver interface {
	ObserveFlow(flow, outcome string)
}

// BookingStates хранилище состояния формы записи по пользователю.
// UpdateBooking применяет fn атомарно и возвращает новое состояние.
type BookingStates interface {
	UpdateBooking(telegramID int64, fn func(booking.State) booking.State) booking.State
}

func observe(o FlowObserver, flow, outcome string) {
	if o != nil {
		o.ObserveFlow(flow, outcome)
	}
}
