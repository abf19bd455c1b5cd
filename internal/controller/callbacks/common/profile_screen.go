package common

import (
	"fmt"
	"html"
	"strconv"
	"strings"
	"time"

	"github.com/Freeeeeet/clinic_booking_bot/internal/booking"
	"github.com/Freeeeeet/clinic_booking_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/clinic_booking_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/clinic_booking_bot/internal/model"
	"github.com/Freeeeeet/clinic_booking_bot/internal/service"
	"github.com/go-telegram/bot/models"
)

// Callback data профиля и назначений
const (
	ProfileView     = "prof:view"
	ProfileEdit     = "prof:edit:" // prof:edit:<field>
	ProfilePassword = "prof:password"
	MedicationList  = "med:list"
)

// Тексты диалога смены пароля
const (
	PasswordCurrentPrompt = "🔑 <b>Change password</b>\n\nEnter your current password:\n\nTo cancel, use /cancel"
	PasswordNewPrompt     = "🔑 Enter a new password (at least 8 characters):"
	PasswordConfirmPrompt = "🔑 Confirm the new password:"
)

// RenderProfile профиль пациента с кнопками правки
func RenderProfile(p *model.PatientProfile) (string, *models.InlineKeyboardMarkup) {
	var sb strings.Builder
	sb.WriteString("👤 <b>My profile</b>\n\n")

	age := "not set"
	if p.Age != nil {
		age = strconv.Itoa(*p.Age)
	}

	rows := []struct{ label, value string }{
		{"Name", p.Name},
		{"Email", p.Email},
		{"Age", age},
		{"Date of birth", p.DateOfBirth},
		{"Gender", genderLabel(p.Gender)},
		{"Personal number", p.PersonalNumber},
		{"Address", p.Address},
		{"Guardian name", p.GuardianName},
		{"Guardian relation", p.GuardianRelation},
		{"Guardian phone", p.GuardianPhoneNumber},
	}
	for _, r := range rows {
		value := r.value
		if value == "" {
			value = "not set"
		}
		sb.WriteString(fmt.Sprintf("<b>%s:</b> %s\n", r.label, html.EscapeString(value)))
	}

	kb := keyboard.NewBuilder()
	edits := make([]models.InlineKeyboardButton, 0, len(service.ProfileFields))
	for _, f := range service.ProfileFields {
		edits = append(edits, keyboard.Button("✏️ "+f.Label, ProfileEdit+f.Key))
	}
	kb.Grid(2, edits...)
	kb.Row(keyboard.Button("🔑 Change password", ProfilePassword))
	kb.Row(keyboard.Button("💊 My medications", MedicationList))
	kb.AddBackToMainButton()

	return sb.String(), kb.Build()
}

// RenderProfileFieldPrompt вопрос для правки поля профиля
func RenderProfileFieldPrompt(field service.ProfileField) string {
	return "✏️ <b>" + field.Label + "</b>\n\n" + field.Prompt + "\n\nTo cancel, use /cancel"
}

// RenderMedications назначения пациента
func RenderMedications(medications []model.Medication, loc *time.Location) (string, *models.InlineKeyboardMarkup) {
	kb := keyboard.NewBuilder()

	if len(medications) == 0 {
		kb.Row(keyboard.Button("👤 My profile", ProfileView))
		kb.AddBackToMainButton()
		return "💊 No medications have been prescribed to you yet.", kb.Build()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("💊 <b>My medications</b> (%s)\n\n",
		formatting.Pluralize(len(medications), "medication")))

	for _, m := range medications {
		sb.WriteString(formatMedication(m, loc))
		sb.WriteString("\n")
	}

	kb.Row(keyboard.Button("🔄 Refresh", MedicationList))
	kb.Row(keyboard.Button("👤 My profile", ProfileView))
	kb.AddBackToMainButton()

	return sb.String(), kb.Build()
}

func formatMedication(m model.Medication, loc *time.Location) string {
	text := fmt.Sprintf("💊 <b>%s</b> %s\n   %s\n",
		html.EscapeString(m.MedicationName),
		html.EscapeString(m.Dosage),
		html.EscapeString(m.Frequency),
	)
	if m.Duration != "" {
		text += "   ⏳ " + html.EscapeString(m.Duration) + "\n"
	}
	if m.Instructions != "" {
		text += "   📝 " + html.EscapeString(m.Instructions) + "\n"
	}

	prescribed := "   📅 " + booking.LocaleDateTime(m.PrescribedDate, loc)
	if m.PrescribingDoctorName != "" {
		prescribed += ", " + html.EscapeString(m.PrescribingDoctorName)
	}
	if m.AppointmentID != nil {
		prescribed += fmt.Sprintf(" (appointment #%d)", *m.AppointmentID)
	}
	return text + prescribed + "\n"
}
