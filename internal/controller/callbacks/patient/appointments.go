package patient

import (
	"context"

	"github.com/Freeeeeet/clinic_booking_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/clinic_booking_bot/internal/controller/callbacks/common"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// ========================
// Appointment Handlers
// ========================

// showAppointments перерисовывает сообщение списком записей
func showAppointments(hc *common.HandlerContext) error {
	h := hc.Handler
	list, err := h.AppointmentService.List(hc.Ctx, hc.TelegramID)
	if err != nil {
		return err
	}

	text, kb := common.RenderAppointments(list, h.BookingService.Location())
	return hc.EditMessage(text, kb)
}

// HandleAppointmentList обновляет список записей
func HandleAppointmentList(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithLogin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		if err := showAppointments(hc); err != nil {
			common.HandleError(hc, err, "appointment_list")
			return
		}
		hc.Answer("")
	})
}

// HandleAppointmentCancel запрашивает подтверждение отмены: appt:cancel:<id>
func HandleAppointmentCancel(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithLogin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		id, err := common.ParseIDFromCallback(callback.Data)
		if err != nil {
			common.HandleError(hc, err, "appointment_cancel")
			return
		}

		text, kb := common.RenderCancelConfirm(id)
		hc.LogSendError(hc.EditMessage(text, kb), "appointment_cancel_confirm")
		hc.Answer("")
	})
}

// HandleAppointmentConfirmCancel отменяет запись: appt:confirm_cancel:<id>
func HandleAppointmentConfirmCancel(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithLogin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		id, err := common.ParseIDFromCallback(callback.Data)
		if err != nil {
			common.HandleError(hc, err, "appointment_confirm_cancel")
			return
		}

		if _, err := h.AppointmentService.Cancel(hc.Ctx, hc.TelegramID, id); err != nil {
			common.HandleError(hc, err, "appointment_confirm_cancel")
			return
		}

		h.Logger.Info("Appointment cancelled",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.Int64("appointment_id", id))

		if err := showAppointments(hc); err != nil {
			hc.LogSendError(err, "appointment_list_refresh")
		}
		hc.Answer("✅ Appointment cancelled")
	})
}
