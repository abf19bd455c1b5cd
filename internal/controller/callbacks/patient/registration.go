package patient

import (
	"context"
	"html"

	"github.com/Freeeeeet/clinic_booking_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/clinic_booking_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/clinic_booking_bot/internal/controller/state"
	"github.com/Freeeeeet/clinic_booking_bot/internal/registration"
	"github.com/Freeeeeet/clinic_booking_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// ========================
// Registration Handlers
// ========================

// HandleRegistrationGender выбор пола кнопкой: reg:gender:FEMALE
func HandleRegistrationGender(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithMessage(ctx, b, callback, h, func(hc *common.HandlerContext) {
		gender, err := common.CallbackArg(callback.Data, common.RegistrationGender)
		if err != nil {
			common.HandleError(hc, err, "registration_gender")
			return
		}

		form, err := common.RegistrationForm(h.StateManager, hc.TelegramID)
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}

		field, _ := hc.GetData(state.DataRegistrationField)
		if h.StateManager.GetState(hc.TelegramID) != state.StateRegistrationField || field != registration.FieldGender {
			hc.AnswerAlert(common.ErrorMessage(common.ErrStaleKeyboard))
			return
		}

		h.StateManager.Update(hc.TelegramID, func(d *state.UserData) {
			form.Set(registration.FieldGender, gender)
		})

		hc.LogSendError(hc.EditMessageText("📝 Gender: <b>"+html.EscapeString(gender)+"</b> ✅"), "registration_gender_edit")

		next, ok := common.AdvanceRegistration(h.StateManager, hc.TelegramID, registration.FieldGender)
		text, kb := common.RegistrationNextScreen(next, ok, form)
		_, err = hc.SendMessage(text, kb)
		hc.LogSendError(err, "registration_next")
		hc.Answer("")
	})
}

// HandleRegistrationEdit повторный ввод одного поля: reg:edit:<field>
func HandleRegistrationEdit(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithMessage(ctx, b, callback, h, func(hc *common.HandlerContext) {
		key, err := common.CallbackArg(callback.Data, common.RegistrationEdit)
		if err != nil {
			common.HandleError(hc, err, "registration_edit")
			return
		}
		if _, err := common.RegistrationForm(h.StateManager, hc.TelegramID); err != nil {
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}

		field, ok := common.FocusRegistrationField(h.StateManager, hc.TelegramID, key)
		if !ok {
			hc.AnswerAlert(common.ErrorMessage(common.ErrStaleKeyboard))
			return
		}

		text, kb := common.RenderRegistrationPrompt(field, true)
		_, err = hc.SendMessage(text, kb)
		hc.LogSendError(err, "registration_edit_prompt")
		hc.Answer("")
	})
}

// HandleRegistrationRestart начинает заполнение формы заново
func HandleRegistrationRestart(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithMessage(ctx, b, callback, h, func(hc *common.HandlerContext) {
		first := common.StartRegistration(h.StateManager, hc.TelegramID)

		hc.LogSendError(hc.EditMessageText("🔄 Registration restarted."), "registration_restart_edit")

		text, kb := common.RenderRegistrationPrompt(first, false)
		_, err := hc.SendMessage(text, kb)
		hc.LogSendError(err, "registration_restart_prompt")
		hc.Answer("")
	})
}

// HandleRegistrationCancel отменяет регистрацию
func HandleRegistrationCancel(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithMessage(ctx, b, callback, h, func(hc *common.HandlerContext) {
		hc.ClearState()
		hc.LogSendError(hc.EditMessageText("❌ Registration cancelled.\n\nUse /register to start again."), "registration_cancel")
		hc.Answer("")
	})
}

// HandleRegistrationSubmit отправляет форму в API клиники
func HandleRegistrationSubmit(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithMessage(ctx, b, callback, h, func(hc *common.HandlerContext) {
		form, err := common.RegistrationForm(h.StateManager, hc.TelegramID)
		if err != nil {
			hc.AnswerAlert(common.ErrorMessage(err))
			return
		}

		outcome := h.RegistrationService.Submit(hc.Ctx, hc.TelegramID, form)

		switch outcome.Status {
		case service.RegistrationInProgress:
			hc.AnswerAlert("⏳ " + outcome.Message)
			return

		case service.RegistrationSucceeded:
			hc.ClearState()
			hc.LogSendError(hc.EditMessageText("✅ "+html.EscapeString(outcome.Message)), "registration_success")
			scheduleLoginRedirect(h, hc.TelegramID, chatSender(b, h, hc.TelegramID, hc.ChatID))

		case service.RegistrationPasswordMismatch:
			text, kb := common.RenderRegistrationSummary(form, "⚠️ "+outcome.Message, nil)
			hc.LogSendError(hc.EditMessage(text, kb), "registration_mismatch")

			if field, ok := common.FocusRegistrationField(h.StateManager, hc.TelegramID, registration.FieldConfirmPassword); ok {
				prompt, pkb := common.RenderRegistrationPrompt(field, true)
				_, err := hc.SendMessage(prompt, pkb)
				hc.LogSendError(err, "registration_confirm_prompt")
			}

		case service.RegistrationInvalid:
			text, kb := common.RenderRegistrationSummary(form, "⚠️ "+outcome.Message, outcome.Issues)
			hc.LogSendError(hc.EditMessage(text, kb), "registration_invalid")

		default:
			text, kb := common.RenderRegistrationSummary(form, "❌ "+outcome.Message, nil)
			hc.LogSendError(hc.EditMessage(text, kb), "registration_failed")
		}

		hc.Answer("")
	})
}

// scheduleLoginRedirect через паузу предлагает войти с новым аккаунтом
func scheduleLoginRedirect(h *callbacktypes.Handler, telegramID int64, send func(ctx context.Context, text string)) {
	if h.Scheduler == nil {
		return
	}

	h.Scheduler.After(h.LoginRedirectDelay, "login_redirect", func(ctx context.Context) {
		text := "🔐 Use /login to sign in with your new account."

		// Не перебиваем диалог, начатый за время паузы
		h.StateManager.Update(telegramID, func(d *state.UserData) {
			if d.State == state.StateNone {
				d.State = state.StateLoginEmail
				text = common.LoginEmailPrompt
			}
		})

		send(ctx, text)
	})
}

// chatSender отправка текста в чат с логированием ошибки
func chatSender(b *bot.Bot, h *callbacktypes.Handler, telegramID, chatID int64) func(ctx context.Context, text string) {
	return func(ctx context.Context, text string) {
		_, err := b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:    chatID,
			Text:      text,
			ParseMode: models.ParseModeHTML,
		})
		if err != nil {
			h.Logger.Error("Failed to send login redirect",
				zap.Int64("telegram_id", telegramID),
				zap.Error(err))
		}
	}
}
