package patient

import (
	"context"

	"github.com/Freeeeeet/clinic_booking_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/clinic_booking_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/clinic_booking_bot/internal/controller/state"
	"github.com/Freeeeeet/clinic_booking_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// ========================
// Profile Handlers
// ========================

// HandleProfileView показывает профиль в сообщении callback
func HandleProfileView(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithLogin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		profile, err := h.ProfileService.Profile(hc.Ctx, hc.TelegramID)
		if err != nil {
			common.HandleError(hc, err, "profile_view")
			return
		}

		text, kb := common.RenderProfile(profile)
		hc.LogSendError(hc.EditMessage(text, kb), "profile_view")
		hc.Answer("")
	})
}

// HandleProfileEdit запрашивает новое значение поля: prof:edit:<field>
func HandleProfileEdit(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithLogin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		key, err := common.CallbackArg(callback.Data, common.ProfileEdit)
		if err != nil {
			common.HandleError(hc, err, "profile_edit")
			return
		}
		field, ok := service.ProfileFieldByKey(key)
		if !ok {
			hc.AnswerAlert(common.ErrorMessage(common.ErrStaleKeyboard))
			return
		}

		h.StateManager.Update(hc.TelegramID, func(d *state.UserData) {
			d.State = state.StateProfileField
			d.Data = map[string]interface{}{state.DataProfileField: field.Key}
		})

		_, err = hc.SendMessage(common.RenderProfileFieldPrompt(field), nil)
		hc.LogSendError(err, "profile_edit_prompt")
		hc.Answer("")
	})
}

// HandleProfilePassword начинает смену пароля
func HandleProfilePassword(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithLogin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		h.StateManager.Update(hc.TelegramID, func(d *state.UserData) {
			d.State = state.StatePasswordCurrent
			d.Data = map[string]interface{}{}
		})

		_, err := hc.SendMessage(common.PasswordCurrentPrompt, nil)
		hc.LogSendError(err, "password_prompt")
		hc.Answer("")
	})
}

// HandleMedicationList показывает назначения пациента
func HandleMedicationList(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithLogin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		medications, err := h.ProfileService.Medications(hc.Ctx, hc.TelegramID)
		if err != nil {
			common.HandleError(hc, err, "medication_list")
			return
		}

		text, kb := common.RenderMedications(medications, h.BookingService.Location())
		hc.LogSendError(hc.EditMessage(text, kb), "medication_list")
		hc.Answer("")
	})
}
