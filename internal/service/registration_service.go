package service

import (
	"context"

	"github.com/Freeeeeet/clinic_booking_bot/internal/model"
	"github.com/Freeeeeet/clinic_booking_bot/internal/registration"
	"go.uber.org/zap"
)

// RegistrationStatus итог попытки регистрации
type RegistrationStatus int

const (
	RegistrationSucceeded RegistrationStatus = iota
	RegistrationPasswordMismatch
	RegistrationInvalid
	RegistrationFailed
	RegistrationInProgress
)

// RegistrationOutcome результат Submit для отображения
type RegistrationOutcome struct {
	Status  RegistrationStatus
	Message string
	Issues  registration.Issues
	Result  *model.RegistrationResult
}

// RegistrationService отправка формы регистрации пациента
type RegistrationService struct {
	api       ClinicAPIFactory
	validator *registration.Validator
	linker    PatientLinker
	metrics   FlowObserver
	logger    *zap.Logger
}

func NewRegistrationService(
	api ClinicAPIFactory,
	validator *registration.Validator,
	linker PatientLinker,
	metrics FlowObserver,
	logger *zap.Logger,
) *RegistrationService {
	return &RegistrationService{
		api:       api,
		validator: validator,
		linker:    linker,
		metrics:   metrics,
		logger:    logger,
	}
}

// Submit проверяет пароли, затем поля, затем отправляет снимок формы.
// Повторный Submit во время запроса отклоняется. При успехе форма очищается.
func (s *RegistrationService) Submit(ctx context.Context, telegramID int64, form *registration.Form) RegistrationOutcome {
	if !form.BeginSubmit() {
		s.logger.Info("Registration already submitting", zap.Int64("telegram_id", telegramID))
		return RegistrationOutcome{
			Status:  RegistrationInProgress,
			Message: registration.SubmitInProgressMessage,
		}
	}
	defer form.EndSubmit()

	if !form.CheckPasswordMatch() {
		return RegistrationOutcome{
			Status:  RegistrationPasswordMismatch,
			Message: registration.PasswordMismatchWarning,
		}
	}

	// правки во время запроса не влияют на отправленные данные
	snap := form.Snapshot()
	if issues := s.validator.Validate(snap); len(issues) > 0 {
		return RegistrationOutcome{
			Status:  RegistrationInvalid,
			Message: registration.InvalidFormWarning,
			Issues:  issues,
		}
	}

	email := snap.Get(registration.FieldEmail)
	result, err := s.api("").RegisterPatient(ctx, snap.Payload())
	if err != nil {
		observe(s.metrics, "registration", "failed")
		s.logger.Warn("Patient registration failed",
			zap.Int64("telegram_id", telegramID),
			zap.Error(err),
		)
		return RegistrationOutcome{
			Status:  RegistrationFailed,
			Message: registration.ErrorMessage(err),
		}
	}

	form.Reset()
	observe(s.metrics, "registration", "success")
	s.logger.Info("Patient registered",
		zap.Int64("telegram_id", telegramID),
		zap.String("email", email),
	)

	if s.linker != nil {
		if err := s.linker.LinkPatient(ctx, telegramID, result.UserID, email); err != nil {
			s.logger.Warn("Failed to link patient after registration",
				zap.Int64("telegram_id", telegramID),
				zap.Error(err),
			)
		}
	}

	return RegistrationOutcome{
		Status:  RegistrationSucceeded,
		Message: registration.SuccessMessage,
		Result:  result,
	}
}
