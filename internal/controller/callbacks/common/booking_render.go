package common

import (
	"context"

	"github.com/Freeeeeet/clinic_booking_bot/internal/booking"
	"github.com/Freeeeeet/clinic_booking_bot/internal/controller/callbacks/callbacktypes"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// BookingRenderer перерисовывает экран записи в сообщении chatID/messageID
func BookingRenderer(ctx context.Context, b *bot.Bot, h *callbacktypes.Handler, chatID int64, messageID int) func(booking.State) {
	return func(st booking.State) {
		text, kb := RenderBooking(st, h.Specializations, h.BookingService.Today(), h.BookingService.Location())

		_, err := b.EditMessageText(ctx, &bot.EditMessageTextParams{
			ChatID:      chatID,
			MessageID:   messageID,
			Text:        text,
			ParseMode:   models.ParseModeHTML,
			ReplyMarkup: kb,
		})
		if err != nil && !IsMessageNotModifiedError(err) {
			h.Logger.Error("Failed to render booking screen",
				zap.Int64("chat_id", chatID),
				zap.Int("message_id", messageID),
				zap.Error(err))
		}
	}
}
