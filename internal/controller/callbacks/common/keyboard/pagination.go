package keyboard

import (
	"fmt"

	"github.com/go-telegram/bot/models"
)

// WeekPagination ряд листания календаря по неделям.
// offset - смещение первого дня от сегодня, step - длина страницы в днях.
// Назад нельзя уйти раньше 0, вперёд - дальше maxOffset.
func WeekPagination(prefix string, offset, step, maxOffset int, label string) []models.InlineKeyboardButton {
	var buttons []models.InlineKeyboardButton

	if offset > 0 {
		prev := offset - step
		if prev < 0 {
			prev = 0
		}
		buttons = append(buttons, Button("◀️", fmt.Sprintf("%s%d", prefix, prev)))
	}

	buttons = append(buttons, LabelButton(label))

	if offset+step <= maxOffset {
		buttons = append(buttons, Button("▶️", fmt.Sprintf("%s%d", prefix, offset+step)))
	}

	return buttons
}
