package handlers

import (
	"context"
	"strings"

	"github.com/Freeeeeet/clinic_booking_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/clinic_booking_bot/internal/controller/state"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	user := update.Message.From

	// Регистрируем пользователя бота
	registeredUser, err := h.userService.RegisterUser(
		ctx,
		user.ID,
		user.Username,
		user.FirstName,
		user.LastName,
		user.LanguageCode,
	)
	if err != nil {
		h.logger.Error("Failed to register user", zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Something went wrong. Please try again later.")
		return
	}

	text := common.MainMenuText(registeredUser.FirstName, h.authService.IsLoggedIn(ctx, user.ID))
	h.sendMessage(ctx, b, update.Message.Chat.ID, text, nil)
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	helpText := "📚 <b>Help</b>\n\n" +
		"/start - Start the bot\n" +
		"/register - Register as a clinic patient\n" +
		"/login - Log in with your clinic account\n" +
		"/logout - Log out\n" +
		"/book - Book an appointment\n" +
		"/myappointments - View and cancel your appointments\n" +
		"/profile - View and edit your profile, change password\n" +
		"/medications - Your prescribed medications\n" +
		"/cancel - Cancel the current dialog\n\n" +
		"To book, choose a specialization, a doctor, a date and a free time slot, " +
		"then press \"" + common.BookButtonLabel + "\"."

	h.sendMessage(ctx, b, update.Message.Chat.ID, helpText, nil)
}

// HandleCancel обрабатывает команду /cancel - отмена текущего диалога
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID
	currentState := h.stateManager.GetState(telegramID)

	if currentState == state.StateNone {
		h.sendMessage(ctx, b, update.Message.Chat.ID, "❌ Nothing to cancel.", nil)
		return
	}

	// Форма записи хранится отдельно и не сбрасывается
	h.stateManager.ClearState(telegramID)

	text := "✅ Cancelled.\n\nUse /help to see the available commands."
	if currentState == state.StateBookingReason {
		text = "✅ The reason for visit was left unchanged."
	}
	h.sendMessage(ctx, b, update.Message.Chat.ID, text, nil)
}

// HandleTextMessage обрабатывает текстовые сообщения в зависимости от состояния пользователя
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}

	// Игнорируем команды (они обрабатываются другими handlers)
	if strings.HasPrefix(update.Message.Text, "/") {
		return
	}

	telegramID := update.Message.From.ID
	currentState := h.stateManager.GetState(telegramID)

	// Если нет активного состояния, игнорируем
	if currentState == state.StateNone {
		h.logger.Debug("No active state, ignoring message",
			zap.Int64("telegram_id", telegramID))
		return
	}

	// Текст не логируем: в диалогах вводятся пароли
	h.logger.Debug("Handling dialog step",
		zap.Int64("telegram_id", telegramID),
		zap.String("state", string(currentState)))

	switch currentState {
	case state.StateRegistrationField:
		h.handleRegistrationStep(ctx, b, update)
	case state.StateLoginEmail:
		h.handleLoginEmail(ctx, b, update)
	case state.StateLoginPassword:
		h.handleLoginPassword(ctx, b, update)
	case state.StateBookingReason:
		h.handleBookingReason(ctx, b, update)
	case state.StateProfileField:
		h.handleProfileField(ctx, b, update)
	case state.StatePasswordCurrent, state.StatePasswordNew, state.StatePasswordConfirm:
		h.handlePasswordStep(ctx, b, update, currentState)
	default:
		h.logger.Warn("Unknown state", zap.String("state", string(currentState)))
	}
}
