package handlers

import (
	"context"

	"github.com/Freeeeeet/clinic_booking_bot/internal/controller/callbacks/common"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleMyAppointments обрабатывает команду /myappointments
func (h *Handlers) HandleMyAppointments(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.requireLogin(ctx, b, update) {
		return
	}

	telegramID := update.Message.From.ID
	list, err := h.appointmentService.List(ctx, telegramID)
	if err != nil {
		h.logger.Error("Failed to list appointments",
			zap.Int64("telegram_id", telegramID),
			zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(err))
		return
	}

	text, kb := common.RenderAppointments(list, h.bookingService.Location())
	h.sendMessage(ctx, b, update.Message.Chat.ID, text, kb)
}
