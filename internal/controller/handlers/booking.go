package handlers

import (
	"context"
	"strings"

	"github.com/Freeeeeet/clinic_booking_bot/internal/booking"
	"github.com/Freeeeeet/clinic_booking_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/clinic_booking_bot/internal/controller/state"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// reasonClear ответ, очищающий причину визита
const reasonClear = "-"

// HandleBook открывает новую форму записи
func (h *Handlers) HandleBook(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.requireLogin(ctx, b, update) {
		return
	}

	telegramID := update.Message.From.ID
	st := h.bookingService.Start(telegramID)

	text, kb := common.RenderBooking(st, h.specializations, h.bookingService.Today(), h.bookingService.Location())
	h.sendMessage(ctx, b, update.Message.Chat.ID, text, kb)
}

// handleBookingReason принимает причину визита и перерисовывает форму
func (h *Handlers) handleBookingReason(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID

	data := h.stateManager.GetAllData(telegramID)
	chatID, okChat := data[state.DataBookingChatID].(int64)
	messageID, okMsg := data[state.DataBookingMessageID].(int)
	h.stateManager.ClearState(telegramID)

	if !okChat || !okMsg {
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(common.ErrFormExpired))
		return
	}

	reason := strings.TrimSpace(update.Message.Text)
	if reason == reasonClear {
		reason = ""
	}

	render := common.BookingRenderer(ctx, b, h.deps, chatID, messageID)
	if err := h.bookingService.Dispatch(ctx, telegramID, booking.ReasonChanged{Reason: reason}, render); err != nil {
		h.logger.Warn("Failed to update booking reason",
			zap.Int64("telegram_id", telegramID),
			zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(err))
		return
	}

	text := "✅ Reason saved. Check the booking form above."
	if reason == "" {
		text = "✅ Reason cleared."
	}
	h.sendMessage(ctx, b, update.Message.Chat.ID, text, nil)
}
