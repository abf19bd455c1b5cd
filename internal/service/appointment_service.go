package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/Freeeeeet/clinic_booking_bot/internal/model"
	"go.uber.org/zap"
)

// AppointmentService записи пациента
type AppointmentService struct {
	api     ClinicAPIFactory
	tokens  TokenSource
	metrics FlowObserver
	logger  *zap.Logger
}

func NewAppointmentService(api ClinicAPIFactory, tokens TokenSource, metrics FlowObserver, logger *zap.Logger) *AppointmentService {
	return &AppointmentService{
		api:     api,
		tokens:  tokens,
		metrics: metrics,
		logger:  logger,
	}
}

// List записи пациента, активные первыми
func (s *AppointmentService) List(ctx context.Context, telegramID int64) ([]model.Appointment, error) {
	token, err := s.tokens.Token(ctx, telegramID)
	if err != nil {
		return nil, err
	}

	appointments, err := s.api(token).MyAppointments(ctx)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}

	sort.SliceStable(appointments, func(i, j int) bool {
		ai, aj := appointments[i].Status.IsActive(), appointments[j].Status.IsActive()
		if ai != aj {
			return ai
		}
		return appointments[i].AppointmentDateTime < appointments[j].AppointmentDateTime
	})
	return appointments, nil
}

// Cancel отменяет запись
func (s *AppointmentService) Cancel(ctx context.Context, telegramID, appointmentID int64) (*model.Appointment, error) {
	token, err := s.tokens.Token(ctx, telegramID)
	if err != nil {
		return nil, err
	}

	appointment, err := s.api(token).CancelAppointment(ctx, appointmentID)
	if err != nil {
		observe(s.metrics, "cancel", "failed")
		return nil, fmt.Errorf("cancel appointment: %w", err)
	}

	observe(s.metrics, "cancel", "success")
	s.logger.Info("Appointment cancelled",
		zap.Int64("telegram_id", telegramID),
		zap.Int64("appointment_id", appointmentID),
	)
	return appointment, nil
}
