package handlers

import (
	"context"

	"github.com/Freeeeeet/clinic_booking_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// requireLogin проверяет, что пациент вошёл в API клиники.
// Возвращает false и отвечает пользователю, если входа нет.
func (h *Handlers) requireLogin(ctx context.Context, b *bot.Bot, update *models.Update) bool {
	if update.Message == nil {
		return false
	}

	telegramID := update.Message.From.ID
	if _, err := h.authService.Token(ctx, telegramID); err != nil {
		h.logger.Info("Command requires login",
			zap.Int64("telegram_id", telegramID),
			zap.String("command", update.Message.Text),
			zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, service.ErrorMessage(err))
		return false
	}

	return true
}
