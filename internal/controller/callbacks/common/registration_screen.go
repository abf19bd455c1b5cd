package common

import (
	"fmt"
	"html"
	"strings"

	"github.com/Freeeeeet/clinic_booking_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/clinic_booking_bot/internal/controller/state"
	"github.com/Freeeeeet/clinic_booking_bot/internal/registration"
	"github.com/go-telegram/bot/models"
)

// Callback data диалога регистрации
const (
	RegistrationGender  = "reg:gender:" // reg:gender:FEMALE
	RegistrationEdit    = "reg:edit:"   // reg:edit:<field>
	RegistrationSubmit  = "reg:submit"
	RegistrationRestart = "reg:restart"
	RegistrationCancel  = "reg:cancel"
)

// DataRegistrationSingle правка одного поля: после ввода вернуться к сводке
const DataRegistrationSingle = "registration_single"

const secretMask = "••••••"

// DialogStore данные диалога, нужные шагам регистрации
type DialogStore interface {
	GetData(telegramID int64, key string) (interface{}, bool)
	Update(telegramID int64, fn func(*state.UserData))
}

// RegistrationForm форма регистрации из состояния диалога
func RegistrationForm(sm DialogStore, telegramID int64) (*registration.Form, error) {
	v, ok := sm.GetData(telegramID, state.DataRegistrationForm)
	if !ok {
		return nil, ErrFormExpired
	}
	form, ok := v.(*registration.Form)
	if !ok || form == nil {
		return nil, ErrFormExpired
	}
	return form, nil
}

// StartRegistration создаёт пустую форму и ставит диалог на первое поле.
// Данные прошлого диалога отбрасываются.
func StartRegistration(sm DialogStore, telegramID int64) registration.Field {
	first := registration.Fields[0]
	sm.Update(telegramID, func(d *state.UserData) {
		d.State = state.StateRegistrationField
		d.Data = map[string]interface{}{
			state.DataRegistrationForm:  registration.NewForm(),
			state.DataRegistrationField: first.Key,
		}
	})
	return first
}

// RegistrationStep номер поля в форме, начиная с 1
func RegistrationStep(key string) int {
	for i, f := range registration.Fields {
		if f.Key == key {
			return i + 1
		}
	}
	return 0
}

// RenderRegistrationPrompt вопрос для поля формы
func RenderRegistrationPrompt(field registration.Field, single bool) (string, *models.InlineKeyboardMarkup) {
	var sb strings.Builder
	sb.WriteString("📝 <b>Patient Registration</b>\n\n")
	if !single {
		sb.WriteString(fmt.Sprintf("Step %d of %d: ", RegistrationStep(field.Key), len(registration.Fields)))
	}
	sb.WriteString(field.Prompt)
	if field.Secret {
		sb.WriteString("\n\n🔐 Your message will be deleted right after it is read.")
	}
	sb.WriteString("\n\nTo cancel, use /cancel")

	kb := keyboard.NewBuilder()
	if field.Key == registration.FieldGender {
		genders := make([]models.InlineKeyboardButton, 0, len(registration.Genders))
		for _, g := range registration.Genders {
			genders = append(genders, keyboard.Button(genderLabel(g), RegistrationGender+g))
		}
		kb.Row(genders...)
	}
	kb.Row(keyboard.CancelButton(RegistrationCancel))

	return sb.String(), kb.Build()
}

func genderLabel(g string) string {
	if g == "" {
		return g
	}
	return g[:1] + strings.ToLower(g[1:])
}

// RenderRegistrationSummary сводка формы перед отправкой.
// notice - предупреждение над формой, issues - ошибки отдельных полей.
func RenderRegistrationSummary(form *registration.Form, notice string, issues registration.Issues) (string, *models.InlineKeyboardMarkup) {
	byField := make(map[string]string, len(issues))
	for _, issue := range issues {
		byField[issue.Field] = issue.Message
	}

	var sb strings.Builder
	sb.WriteString("📝 <b>Patient Registration</b>\n\n")
	if notice != "" {
		sb.WriteString(html.EscapeString(notice) + "\n\n")
	}

	for _, f := range registration.Fields {
		value := form.Get(f.Key)
		shown := "not set"
		if value != "" {
			shown = html.EscapeString(value)
			if f.Secret {
				shown = secretMask
			}
		}
		sb.WriteString(fmt.Sprintf("<b>%s:</b> %s\n", f.Label, shown))

		if msg, ok := byField[f.Key]; ok {
			sb.WriteString("   ⚠️ " + html.EscapeString(msg) + "\n")
		} else if f.Key == registration.FieldConfirmPassword && form.ConfirmInvalid() {
			sb.WriteString("   ⚠️ " + registration.PasswordMismatchError + "\n")
		}
	}

	kb := keyboard.NewBuilder()
	edits := make([]models.InlineKeyboardButton, 0, len(registration.Fields))
	for _, f := range registration.Fields {
		label := "✏️ " + f.Label
		if _, bad := byField[f.Key]; bad {
			label = "⚠️ " + f.Label
		}
		edits = append(edits, keyboard.Button(label, RegistrationEdit+f.Key))
	}
	kb.Grid(2, edits...)
	kb.Row(keyboard.Button("✅ Submit", RegistrationSubmit))
	kb.Row(
		keyboard.Button("🔄 Start over", RegistrationRestart),
		keyboard.CancelButton(RegistrationCancel),
	)

	return sb.String(), kb.Build()
}

// RegistrationNextScreen вопрос следующего поля или сводка, если поля закончились
func RegistrationNextScreen(next registration.Field, ok bool, form *registration.Form) (string, *models.InlineKeyboardMarkup) {
	if ok {
		return RenderRegistrationPrompt(next, false)
	}
	return RenderRegistrationSummary(form, "", nil)
}

// AdvanceRegistration переводит диалог к следующему полю после key.
// Возвращает false, когда пора показать сводку.
func AdvanceRegistration(sm DialogStore, telegramID int64, key string) (registration.Field, bool) {
	var next registration.Field
	var ok bool

	sm.Update(telegramID, func(d *state.UserData) {
		single, _ := d.Data[DataRegistrationSingle].(bool)
		if !single {
			next, ok = registration.NextField(key)
		}
		if ok {
			d.State = state.StateRegistrationField
			d.Data[state.DataRegistrationField] = next.Key
			return
		}
		// все поля заполнены, ждём кнопку Submit
		d.State = state.StateNone
		delete(d.Data, state.DataRegistrationField)
		delete(d.Data, DataRegistrationSingle)
	})

	return next, ok
}

// FocusRegistrationField просит заново ввести одно поле и вернуться к сводке
func FocusRegistrationField(sm DialogStore, telegramID int64, key string) (registration.Field, bool) {
	field, ok := registration.FieldByKey(key)
	if !ok {
		return registration.Field{}, false
	}
	sm.Update(telegramID, func(d *state.UserData) {
		d.State = state.StateRegistrationField
		d.Data[state.DataRegistrationField] = key
		d.Data[DataRegistrationSingle] = true
	})
	return field, true
}
