package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/clinic_booking_bot/internal/booking"
	"github.com/Freeeeeet/clinic_booking_bot/internal/clinicapi"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// BookingService ведёт форму записи: редьюсер + запросы к API
type BookingService struct {
	api     ClinicAPIFactory
	tokens  TokenSource
	states  BookingStates
	loc     *time.Location
	now     func() time.Time
	metrics FlowObserver
	logger  *zap.Logger
}

func NewBookingService(
	api ClinicAPIFactory,
	tokens TokenSource,
	states BookingStates,
	loc *time.Location,
	metrics FlowObserver,
	logger *zap.Logger,
) *BookingService {
	if loc == nil {
		loc = time.Local
	}
	return &BookingService{
		api:     api,
		tokens:  tokens,
		states:  states,
		loc:     loc,
		now:     time.Now,
		metrics: metrics,
		logger:  logger,
	}
}

// Location часовой пояс клиники
func (s *BookingService) Location() *time.Location {
	return s.loc
}

// Today сегодняшняя дата в часовом поясе клиники
func (s *BookingService) Today() time.Time {
	now := s.now().In(s.loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
}

// Start открывает пустую форму. Поколение продолжает расти,
// чтобы ответы от предыдущей формы отбросились.
func (s *BookingService) Start(telegramID int64) booking.State {
	return s.states.UpdateBooking(telegramID, func(cur booking.State) booking.State {
		next := booking.Initial()
		next.Generation = cur.Generation + 1
		return next
	})
}

// Current текущее состояние формы без изменений
func (s *BookingService) Current(telegramID int64) booking.State {
	return s.states.UpdateBooking(telegramID, func(cur booking.State) booking.State {
		return cur
	})
}

// Dispatch применяет событие, отрисовывает состояние и выполняет эффект.
// Результат эффекта диспатчится тем же путём, render вызывается после каждого перехода.
func (s *BookingService) Dispatch(ctx context.Context, telegramID int64, ev booking.Event, render func(booking.State)) error {
	if dc, ok := ev.(booking.DateChanged); ok {
		if err := s.checkDate(dc.Date); err != nil {
			return err
		}
	}

	for ev != nil {
		var eff booking.Effect
		st := s.states.UpdateBooking(telegramID, func(cur booking.State) booking.State {
			next, e := booking.Reduce(cur, ev)
			eff = e
			return next
		})
		if render != nil {
			render(st)
		}

		ev = nil
		if eff != nil {
			ev = s.run(ctx, telegramID, eff)
		}
	}
	return nil
}

// checkDate нижняя граница даты - сегодня
func (s *BookingService) checkDate(date string) error {
	if date == "" {
		return nil
	}
	d, err := time.ParseInLocation(dateLayout, date, s.loc)
	if err != nil {
		return ErrInvalidDate
	}
	if d.Before(s.Today()) {
		return ErrDateInPast
	}
	return nil
}

// token токен пациента, false если пациент не вошёл
func (s *BookingService) token(ctx context.Context, telegramID int64) (string, bool) {
	token, err := s.tokens.Token(ctx, telegramID)
	if errors.Is(err, ErrNotLoggedIn) {
		return "", false
	}
	if err != nil {
		s.logger.Warn("Failed to read session token",
			zap.Int64("telegram_id", telegramID),
			zap.Error(err),
		)
	}
	return token, true
}

// run выполняет эффект и возвращает событие-результат.
// Справочные запросы идут и без входа, запись требует токен.
func (s *BookingService) run(ctx context.Context, telegramID int64, eff booking.Effect) booking.Event {
	token, loggedIn := s.token(ctx, telegramID)
	api := s.api(token)

	switch e := eff.(type) {
	case booking.FetchDoctors:
		doctors, err := api.DoctorsBySpecialization(ctx, e.Specialization)
		if err != nil {
			s.logger.Warn("Failed to load doctors",
				zap.Int64("telegram_id", telegramID),
				zap.String("specialization", e.Specialization),
				zap.Error(err),
			)
			return booking.DoctorsFailed{Generation: e.Generation, Message: DoctorsFailedMessage(err)}
		}
		return booking.DoctorsLoaded{Generation: e.Generation, Doctors: doctors}

	case booking.FetchSlots:
		slots, err := api.AvailableSlots(ctx, e.DoctorID, e.Date)
		if err != nil {
			s.logger.Warn("Failed to load slots",
				zap.Int64("telegram_id", telegramID),
				zap.String("doctor_id", e.DoctorID),
				zap.String("date", e.Date),
				zap.Error(err),
			)
			return booking.SlotsFailed{Generation: e.Generation, Message: SlotsFailedMessage(err)}
		}
		return booking.SlotsLoaded{Generation: e.Generation, Slots: slots}

	case booking.SubmitBooking:
		if !loggedIn {
			s.logger.Info("Booking submit without login",
				zap.Int64("telegram_id", telegramID))
			return booking.BookingFailed{Message: LoginRequiredMessage}
		}

		appointment, err := api.BookAppointment(ctx, e.Request)
		if err != nil {
			observe(s.metrics, "booking", "failed")
			s.logger.Warn("Booking failed",
				zap.Int64("telegram_id", telegramID),
				zap.String("doctor_id", e.Request.DoctorID),
				zap.String("requested_date_time", e.Request.RequestedDateTime),
				zap.Error(err),
			)
			return booking.BookingFailed{Message: BookingFailedMessage(err)}
		}

		observe(s.metrics, "booking", "success")
		s.logger.Info("Appointment booked",
			zap.Int64("telegram_id", telegramID),
			zap.Int64("appointment_id", appointment.ID),
		)
		return booking.BookingSucceeded{Message: fmt.Sprintf(
			"Appointment successfully booked for %s! Appointment ID: %d",
			booking.LocaleDateTime(appointment.AppointmentDateTime, s.loc),
			appointment.ID,
		)}
	}

	return nil
}

// LoginRequiredMessage баннер, когда запись отправляют без входа
const LoginRequiredMessage = "Appointment booking failed. Please log in first: /login"

// DoctorsFailedMessage текст баннера при ошибке загрузки врачей
func DoctorsFailedMessage(err error) string {
	return "Could not load doctors. " + fetchErrorDetail(err, "Error fetching doctors: ")
}

// SlotsFailedMessage текст баннера при ошибке загрузки слотов
func SlotsFailedMessage(err error) string {
	return "Could not load slots. " + fetchErrorDetail(err, "Error fetching slots: ")
}

func fetchErrorDetail(err error, statusPrefix string) string {
	if apiErr, ok := clinicapi.AsAPIError(err); ok {
		if apiErr.Message != nil {
			return *apiErr.Message
		}
		return statusPrefix + apiErr.StatusText
	}
	return err.Error()
}

// BookingFailedMessage текст баннера при неуспешной записи.
// Ошибки полей важнее message, затем текст статуса.
func BookingFailedMessage(err error) string {
	detail := err.Error()
	if apiErr, ok := clinicapi.AsAPIError(err); ok {
		switch {
		case apiErr.HasFieldErrors:
			detail = "Booking failed: " + strings.Join(apiErr.FieldMessages(), "; ")
		case apiErr.Message != nil:
			detail = *apiErr.Message
		default:
			detail = "Booking failed: " + apiErr.StatusText
		}
	}
	return "Appointment booking failed. " + detail
}
