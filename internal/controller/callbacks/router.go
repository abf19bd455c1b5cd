package callbacks

import (
	"context"
	"strings"

	"github.com/Freeeeeet/clinic_booking_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/clinic_booking_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/clinic_booking_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/clinic_booking_bot/internal/controller/callbacks/patient"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// ========================
// Main Callback Router
// ========================

// Route распределяет callback query по соответствующим обработчикам
func Route(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	data := callback.Data

	h.Logger.Info("Routing callback",
		zap.String("data", data),
		zap.Int64("user_id", callback.From.ID),
		zap.String("user_name", callback.From.FirstName))

	switch {
	// ===== Common Navigation =====
	case data == keyboard.CallbackMainMenu:
		common.HandleBackToMain(ctx, b, callback, h)
	case data == keyboard.CallbackNoop:
		// No operation - просто подтверждаем callback
		common.AnswerCallback(ctx, b, callback.ID, "")

	// ===== Booking Form =====
	case strings.HasPrefix(data, common.BookingSpec):
		patient.HandleBookingSpecialization(ctx, b, callback, h)
	case strings.HasPrefix(data, common.BookingDoctor):
		patient.HandleBookingDoctor(ctx, b, callback, h)
	case strings.HasPrefix(data, common.BookingDate):
		patient.HandleBookingDate(ctx, b, callback, h)
	case strings.HasPrefix(data, common.BookingCalendar):
		patient.HandleBookingCalendar(ctx, b, callback, h)
	case strings.HasPrefix(data, common.BookingSlot):
		patient.HandleBookingSlot(ctx, b, callback, h)
	case data == common.BookingReason:
		patient.HandleBookingReason(ctx, b, callback, h)
	case data == common.BookingSubmit:
		patient.HandleBookingSubmit(ctx, b, callback, h)
	case data == common.BookingReset:
		patient.HandleBookingReset(ctx, b, callback, h)

	// ===== Registration =====
	case strings.HasPrefix(data, common.RegistrationGender):
		patient.HandleRegistrationGender(ctx, b, callback, h)
	case strings.HasPrefix(data, common.RegistrationEdit):
		patient.HandleRegistrationEdit(ctx, b, callback, h)
	case data == common.RegistrationSubmit:
		patient.HandleRegistrationSubmit(ctx, b, callback, h)
	case data == common.RegistrationRestart:
		patient.HandleRegistrationRestart(ctx, b, callback, h)
	case data == common.RegistrationCancel:
		patient.HandleRegistrationCancel(ctx, b, callback, h)

	// ===== Appointments =====
	case data == common.AppointmentList:
		patient.HandleAppointmentList(ctx, b, callback, h)
	case strings.HasPrefix(data, common.AppointmentConfirmCancel):
		patient.HandleAppointmentConfirmCancel(ctx, b, callback, h)
	case strings.HasPrefix(data, common.AppointmentCancel):
		patient.HandleAppointmentCancel(ctx, b, callback, h)

	// ===== Profile =====
	case data == common.ProfileView:
		patient.HandleProfileView(ctx, b, callback, h)
	case strings.HasPrefix(data, common.ProfileEdit):
		patient.HandleProfileEdit(ctx, b, callback, h)
	case data == common.ProfilePassword:
		patient.HandleProfilePassword(ctx, b, callback, h)
	case data == common.MedicationList:
		patient.HandleMedicationList(ctx, b, callback, h)

	// ===== Unknown Callback =====
	default:
		h.Logger.Warn("Unknown callback",
			zap.String("data", data),
			zap.Int64("user_id", callback.From.ID))
		common.AnswerCallback(ctx, b, callback.ID, "❌ Unknown command")
		return
	}

	h.Logger.Debug("Callback routed", zap.String("data", data))
}
