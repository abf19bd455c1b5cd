package common

import (
	"context"
	"fmt"
	"html"

	"github.com/Freeeeeet/clinic_booking_bot/internal/controller/callbacks/callbacktypes"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// MainMenuText текст главного меню
func MainMenuText(firstName string, loggedIn bool) string {
	greeting := "📋 Main menu"
	if firstName != "" {
		greeting = fmt.Sprintf("👋 Hello, %s!", html.EscapeString(firstName))
	}

	text := greeting + "\n\n" +
		"Welcome to the clinic booking bot.\n\n" +
		"Available commands:\n" +
		"/book - Book an appointment\n" +
		"/myappointments - My appointments\n" +
		"/profile - My profile\n" +
		"/medications - My medications\n" +
		"/register - Register as a patient\n"

	if loggedIn {
		text += "/logout - Log out\n"
	} else {
		text += "/login - Log in\n"
	}

	return text + "/help - Help"
}

// HandleBackToMain возвращает пользователя к главному меню
func HandleBackToMain(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	msg := GetMessageFromCallback(callback)
	if msg == nil {
		AnswerCallback(ctx, b, callback.ID, ErrorMessage(ErrNoMessage))
		return
	}
	telegramID := callback.From.ID

	// Очищаем состояние диалога, форма записи остаётся
	h.StateManager.ClearState(telegramID)

	_, err := b.EditMessageText(ctx, &bot.EditMessageTextParams{
		ChatID:    msg.Chat.ID,
		MessageID: msg.ID,
		Text:      MainMenuText("", h.AuthService.IsLoggedIn(ctx, telegramID)),
		ParseMode: models.ParseModeHTML,
	})
	if err != nil && !IsMessageNotModifiedError(err) {
		h.Logger.Error("Failed to show main menu",
			zap.Int64("telegram_id", telegramID),
			zap.Error(err))
	}

	AnswerCallback(ctx, b, callback.ID, "")
}

// Тексты диалога входа
const (
	LoginEmailPrompt    = "🔐 <b>Log in</b>\n\nEnter your email:\n\nTo cancel, use /cancel"
	LoginPasswordPrompt = "🔑 Enter your password:\n\n🔐 Your message will be deleted right after it is read."
)
