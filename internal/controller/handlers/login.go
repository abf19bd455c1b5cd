package handlers

import (
	"context"
	"html"
	"strings"

	"github.com/Freeeeeet/clinic_booking_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/clinic_booking_bot/internal/controller/state"
	"github.com/Freeeeeet/clinic_booking_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleLogin начинает диалог входа в API клиники
func (h *Handlers) HandleLogin(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID
	if h.authService.IsLoggedIn(ctx, telegramID) {
		h.sendMessage(ctx, b, update.Message.Chat.ID,
			"✅ You are already logged in.\n\nUse /logout to switch accounts.", nil)
		return
	}

	h.stateManager.ClearState(telegramID)
	h.stateManager.SetState(telegramID, state.StateLoginEmail)

	h.sendMessage(ctx, b, update.Message.Chat.ID, common.LoginEmailPrompt, nil)
}

// HandleLogout удаляет токен пользователя
func (h *Handlers) HandleLogout(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID
	if err := h.authService.Logout(ctx, telegramID); err != nil {
		h.logger.Error("Failed to log out", zap.Int64("telegram_id", telegramID), zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, service.ErrorMessage(err))
		return
	}

	h.sendMessage(ctx, b, update.Message.Chat.ID, "👋 You have been logged out.\n\nUse /login to sign in again.", nil)
}

// handleLoginEmail обрабатывает ввод email
func (h *Handlers) handleLoginEmail(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	email := strings.TrimSpace(update.Message.Text)

	if email == "" || !strings.Contains(email, "@") {
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Please enter a valid email address:")
		return
	}

	h.stateManager.Update(telegramID, func(d *state.UserData) {
		d.State = state.StateLoginPassword
		d.Data[state.DataLoginEmail] = email
	})

	h.sendMessage(ctx, b, update.Message.Chat.ID, common.LoginPasswordPrompt, nil)
}

// handleLoginPassword обрабатывает ввод пароля и выполняет вход
func (h *Handlers) handleLoginPassword(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	password := update.Message.Text

	h.deleteMessage(ctx, b, update.Message)

	v, ok := h.stateManager.GetData(telegramID, state.DataLoginEmail)
	email, _ := v.(string)
	h.stateManager.ClearState(telegramID)

	if !ok || email == "" {
		h.sendError(ctx, b, chatID, common.ErrorMessage(common.ErrFormExpired))
		return
	}

	if err := h.authService.Login(ctx, telegramID, email, password); err != nil {
		h.sendError(ctx, b, chatID, service.LoginErrorMessage(err)+"\n\nUse /login to try again.")
		return
	}

	h.sendMessage(ctx, b, chatID,
		"✅ Logged in as <b>"+html.EscapeString(email)+"</b>\n\n"+
			"/book - Book an appointment\n"+
			"/myappointments - My appointments", nil)
}
