package patient

import (
	"context"
	"strconv"

	"github.com/Freeeeeet/clinic_booking_bot/internal/booking"
	"github.com/Freeeeeet/clinic_booking_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/clinic_booking_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/clinic_booking_bot/internal/controller/state"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// ========================
// Booking Form Handlers
// ========================

// dispatch применяет событие к форме записи и перерисовывает сообщение callback
func dispatch(hc *common.HandlerContext, ev booking.Event) {
	h := hc.Handler
	render := common.BookingRenderer(hc.Ctx, hc.Bot, h, hc.ChatID, hc.Message.ID)

	if err := h.BookingService.Dispatch(hc.Ctx, hc.TelegramID, ev, render); err != nil {
		h.Logger.Info("Booking event rejected",
			zap.Int64("telegram_id", hc.TelegramID),
			zap.String("data", hc.Callback.Data),
			zap.Error(err))
		hc.AnswerAlert(common.ErrorMessage(err))
		return
	}
	hc.Answer("")
}

// HandleBookingSpecialization выбор специализации: bk:spec:<index>
func HandleBookingSpecialization(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithMessage(ctx, b, callback, h, func(hc *common.HandlerContext) {
		spec, err := common.SpecializationFromCallback(h.Specializations, callback.Data)
		if err != nil {
			common.HandleError(hc, err, "booking_specialization")
			return
		}
		dispatch(hc, booking.SpecializationChanged{Specialization: spec})
	})
}

// HandleBookingDoctor выбор врача: bk:doc:<id>
func HandleBookingDoctor(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithMessage(ctx, b, callback, h, func(hc *common.HandlerContext) {
		id, err := common.CallbackArg(callback.Data, common.BookingDoctor)
		if err != nil {
			common.HandleError(hc, err, "booking_doctor")
			return
		}
		dispatch(hc, booking.DoctorChanged{DoctorID: id})
	})
}

// HandleBookingDate выбор даты: bk:date:YYYY-MM-DD
func HandleBookingDate(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithMessage(ctx, b, callback, h, func(hc *common.HandlerContext) {
		date, err := common.CallbackArg(callback.Data, common.BookingDate)
		if err != nil {
			common.HandleError(hc, err, "booking_date")
			return
		}
		dispatch(hc, booking.DateChanged{Date: date})
	})
}

// HandleBookingCalendar листание календаря: bk:cal:<offset>
func HandleBookingCalendar(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithMessage(ctx, b, callback, h, func(hc *common.HandlerContext) {
		arg, err := common.CallbackArg(callback.Data, common.BookingCalendar)
		if err != nil {
			common.HandleError(hc, err, "booking_calendar")
			return
		}
		offset, err := strconv.Atoi(arg)
		if err != nil {
			common.HandleError(hc, common.ErrInvalidFormat, "booking_calendar")
			return
		}
		dispatch(hc, booking.CalendarPaged{Offset: offset})
	})
}

// HandleBookingSlot выбор слота: bk:slot:<generation>:<index>
func HandleBookingSlot(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithMessage(ctx, b, callback, h, func(hc *common.HandlerContext) {
		current := h.BookingService.Current(hc.TelegramID)

		startTime, err := common.SlotFromCallback(current, callback.Data)
		if err != nil {
			h.Logger.Info("Stale slot keyboard",
				zap.Int64("telegram_id", hc.TelegramID),
				zap.String("data", callback.Data),
				zap.Uint64("generation", current.Generation))
			// Перерисовываем актуальное состояние вместо устаревшей клавиатуры
			common.BookingRenderer(hc.Ctx, b, h, hc.ChatID, hc.Message.ID)(current)
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}
		dispatch(hc, booking.SlotSelected{StartTime: startTime})
	})
}

// HandleBookingReason запрашивает причину визита текстом
func HandleBookingReason(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithMessage(ctx, b, callback, h, func(hc *common.HandlerContext) {
		h.StateManager.Update(hc.TelegramID, func(d *state.UserData) {
			d.State = state.StateBookingReason
			d.Data[state.DataBookingChatID] = hc.ChatID
			d.Data[state.DataBookingMessageID] = hc.Message.ID
		})

		_, err := hc.SendMessage("📝 Enter the reason for your visit.\n\n"+
			"Send - to clear it, or /cancel to keep the current one.", nil)
		hc.LogSendError(err, "booking_reason_prompt")
		hc.Answer("")
	})
}

// HandleBookingSubmit отправка записи.
// Сначала проверки формы, вход проверяет сервис перед запросом к API.
func HandleBookingSubmit(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithMessage(ctx, b, callback, h, func(hc *common.HandlerContext) {
		h.Logger.Info("Booking submit requested",
			zap.Int64("telegram_id", hc.TelegramID))
		dispatch(hc, booking.SubmitRequested{})
	})
}

// HandleBookingReset открывает пустую форму в этом сообщении
func HandleBookingReset(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithLogin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		st := h.BookingService.Start(hc.TelegramID)
		common.BookingRenderer(hc.Ctx, b, h, hc.ChatID, hc.Message.ID)(st)
		hc.Answer("")
	})
}
