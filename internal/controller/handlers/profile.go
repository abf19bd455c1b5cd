package handlers

import (
	"context"
	"errors"

	"github.com/Freeeeeet/clinic_booking_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/clinic_booking_bot/internal/controller/state"
	"github.com/Freeeeeet/clinic_booking_bot/internal/model"
	"github.com/Freeeeeet/clinic_booking_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleProfile обрабатывает команду /profile
func (h *Handlers) HandleProfile(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.requireLogin(ctx, b, update) {
		return
	}

	telegramID := update.Message.From.ID
	profile, err := h.profileService.Profile(ctx, telegramID)
	if err != nil {
		h.logger.Error("Failed to load profile",
			zap.Int64("telegram_id", telegramID),
			zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(err))
		return
	}

	text, kb := common.RenderProfile(profile)
	h.sendMessage(ctx, b, update.Message.Chat.ID, text, kb)
}

// HandleMedications обрабатывает команду /medications
func (h *Handlers) HandleMedications(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.requireLogin(ctx, b, update) {
		return
	}

	telegramID := update.Message.From.ID
	medications, err := h.profileService.Medications(ctx, telegramID)
	if err != nil {
		h.logger.Error("Failed to list medications",
			zap.Int64("telegram_id", telegramID),
			zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(err))
		return
	}

	text, kb := common.RenderMedications(medications, h.bookingService.Location())
	h.sendMessage(ctx, b, update.Message.Chat.ID, text, kb)
}

// handleProfileField сохраняет новое значение поля профиля
func (h *Handlers) handleProfileField(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID

	v, _ := h.stateManager.GetData(telegramID, state.DataProfileField)
	key, _ := v.(string)
	field, ok := service.ProfileFieldByKey(key)
	if !ok {
		h.stateManager.ClearState(telegramID)
		h.sendError(ctx, b, chatID, common.ErrorMessage(common.ErrFormExpired))
		return
	}

	profile, err := h.profileService.UpdateField(ctx, telegramID, field.Key, update.Message.Text)
	if err != nil {
		// неверное значение: остаёмся на том же поле
		var inputErr *service.InputError
		if errors.As(err, &inputErr) {
			h.sendMessage(ctx, b, chatID, common.ErrorMessage(err)+"\n\n"+common.RenderProfileFieldPrompt(field), nil)
			return
		}

		h.stateManager.ClearState(telegramID)
		h.sendError(ctx, b, chatID, common.ErrorMessage(err)+"\n\nUse /profile to try again.")
		return
	}

	h.stateManager.ClearState(telegramID)

	text, kb := common.RenderProfile(profile)
	h.sendMessage(ctx, b, chatID, "✅ "+field.Label+" updated.\n\n"+text, kb)
}

// handlePasswordStep шаги смены пароля: текущий, новый, подтверждение.
// Сообщения с паролями удаляются сразу.
func (h *Handlers) handlePasswordStep(ctx context.Context, b *bot.Bot, update *models.Update, current state.UserState) {
	telegramID := update.Message.From.ID
	chatID := update.Message.Chat.ID
	value := update.Message.Text

	h.deleteMessage(ctx, b, update.Message)

	switch current {
	case state.StatePasswordCurrent:
		h.stateManager.Update(telegramID, func(d *state.UserData) {
			d.State = state.StatePasswordNew
			d.Data[state.DataPasswordCurrent] = value
		})
		h.sendMessage(ctx, b, chatID, common.PasswordNewPrompt, nil)

	case state.StatePasswordNew:
		if err := service.CheckNewPassword(value); err != nil {
			h.sendMessage(ctx, b, chatID, common.ErrorMessage(err)+"\n\n"+common.PasswordNewPrompt, nil)
			return
		}
		h.stateManager.Update(telegramID, func(d *state.UserData) {
			d.State = state.StatePasswordConfirm
			d.Data[state.DataPasswordNew] = value
		})
		h.sendMessage(ctx, b, chatID, common.PasswordConfirmPrompt, nil)

	case state.StatePasswordConfirm:
		req, ok := takePasswordChange(h.stateManager, telegramID, value)
		if !ok {
			h.sendError(ctx, b, chatID, common.ErrorMessage(common.ErrFormExpired))
			return
		}

		msg, err := h.profileService.ChangePassword(ctx, telegramID, req)
		if err != nil {
			h.sendError(ctx, b, chatID, common.ErrorMessage(err)+"\n\nUse /profile to try again.")
			return
		}
		h.sendMessage(ctx, b, chatID, "✅ "+msg, nil)
	}
}

// takePasswordChange собирает запрос смены пароля и завершает диалог.
// Чтение и очистка идут под одной блокировкой.
func takePasswordChange(sm common.DialogStore, telegramID int64, confirm string) (model.PasswordChange, bool) {
	var req model.PasswordChange
	var ok bool

	sm.Update(telegramID, func(d *state.UserData) {
		cur, hasCur := d.Data[state.DataPasswordCurrent].(string)
		next, hasNext := d.Data[state.DataPasswordNew].(string)
		ok = hasCur && hasNext
		req = model.PasswordChange{
			CurrentPassword:    cur,
			NewPassword:        next,
			ConfirmNewPassword: confirm,
		}
		d.State = state.StateNone
		d.Data = map[string]interface{}{}
	})

	return req, ok
}
