package keyboard

import (
	"github.com/go-telegram/bot/models"
)

// Общие callback для навигации
const (
	CallbackMainMenu = "menu"
	CallbackNoop     = "noop"
)

// BackToMainButton создаёт кнопку "Main menu"
func BackToMainButton() models.InlineKeyboardButton {
	return Button("🏠 Main menu", CallbackMainMenu)
}

// CancelButton создаёт кнопку "Cancel"
func CancelButton(callbackData string) models.InlineKeyboardButton {
	return Button("❌ Cancel", callbackData)
}

// ConfirmButton создаёт кнопку "Confirm"
func ConfirmButton(callbackData string) models.InlineKeyboardButton {
	return Button("✅ Confirm", callbackData)
}

// LabelButton кнопка-надпись без действия
func LabelButton(text string) models.InlineKeyboardButton {
	return Button(text, CallbackNoop)
}

// ConfirmCancelButtons создаёт ряд с кнопками Confirm/Cancel
func ConfirmCancelButtons(confirmCallback, cancelCallback string) [][]models.InlineKeyboardButton {
	return [][]models.InlineKeyboardButton{
		{
			ConfirmButton(confirmCallback),
			CancelButton(cancelCallback),
		},
	}
}

// AddBackToMainButton добавляет кнопку "Main menu" к builder
func (b *Builder) AddBackToMainButton() *Builder {
	return b.Row(BackToMainButton())
}
