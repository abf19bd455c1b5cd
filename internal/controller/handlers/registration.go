package handlers

import (
	"context"
	"strings"

	"github.com/Freeeeeet/clinic_booking_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/clinic_booking_bot/internal/controller/state"
	"github.com/Freeeeeet/clinic_booking_bot/internal/registration"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleRegister начинает регистрацию пациента в клинике
func (h *Handlers) HandleRegister(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	telegramID := update.Message.From.ID
	h.logger.Info("Starting patient registration", zap.Int64("telegram_id", telegramID))

	first := common.StartRegistration(h.stateManager, telegramID)
	text, kb := common.RenderRegistrationPrompt(first, false)
	h.sendMessage(ctx, b, update.Message.Chat.ID, text, kb)
}

// handleRegistrationStep сохраняет ответ на текущее поле формы
func (h *Handlers) handleRegistrationStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	form, err := common.RegistrationForm(h.stateManager, telegramID)
	if err != nil {
		h.stateManager.ClearState(telegramID)
		h.sendError(ctx, b, chatID, common.ErrorMessage(err))
		return
	}

	v, _ := h.stateManager.GetData(telegramID, state.DataRegistrationField)
	key, _ := v.(string)
	field, ok := registration.FieldByKey(key)
	if !ok {
		h.logger.Warn("Unknown registration field", zap.String("field", key))
		h.stateManager.ClearState(telegramID)
		h.sendError(ctx, b, chatID, common.ErrorMessage(common.ErrFormExpired))
		return
	}

	value := update.Message.Text
	if field.Secret {
		h.deleteMessage(ctx, b, update.Message)
	} else {
		value = strings.TrimSpace(value)
	}

	if field.Key == registration.FieldGender {
		gender, ok := parseGender(value)
		if !ok {
			single, _ := h.stateManager.GetData(telegramID, common.DataRegistrationSingle)
			text, kb := common.RenderRegistrationPrompt(field, single == true)
			h.sendMessage(ctx, b, chatID, "⚠️ Please choose one of the options.\n\n"+text, kb)
			return
		}
		value = gender
	}

	var matches bool
	h.stateManager.Update(telegramID, func(d *state.UserData) {
		form.Set(field.Key, value)
		matches = form.CheckPasswordMatch()
	})

	// Живая проверка подтверждения: спрашиваем ещё раз, пока не совпадёт
	if field.Key == registration.FieldConfirmPassword && !matches {
		text, kb := common.RenderRegistrationPrompt(field, true)
		h.sendMessage(ctx, b, chatID, "⚠️ "+registration.PasswordMismatchError+"\n\n"+text, kb)
		return
	}

	next, ok := common.AdvanceRegistration(h.stateManager, telegramID, field.Key)
	text, kb := common.RegistrationNextScreen(next, ok, form)
	h.sendMessage(ctx, b, chatID, text, kb)
}

// parseGender принимает пол текстом, без учёта регистра
func parseGender(text string) (string, bool) {
	text = strings.ToUpper(strings.TrimSpace(text))
	for _, g := range registration.Genders {
		if g == text {
			return g, true
		}
	}
	return "", false
}
