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
	"github.com/go-telegram/bot/models"
)

// Callback data списка записей
const (
	AppointmentList          = "appt:list"
	AppointmentCancel        = "appt:cancel:"         // appt:cancel:<id>
	AppointmentConfirmCancel = "appt:confirm_cancel:" // appt:confirm_cancel:<id>
)

// RenderAppointments список записей пациента с кнопками отмены активных
func RenderAppointments(appointments []model.Appointment, loc *time.Location) (string, *models.InlineKeyboardMarkup) {
	kb := keyboard.NewBuilder()

	if len(appointments) == 0 {
		kb.Row(keyboard.Button("📅 Book an appointment", BookingReset))
		kb.AddBackToMainButton()
		return "📅 You have no appointments yet.\n\nUse /book to make one.", kb.Build()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📅 <b>My appointments</b> (%s)\n\n",
		formatting.Pluralize(len(appointments), "appointment")))

	for _, a := range appointments {
		sb.WriteString(formatAppointment(a, loc))
		sb.WriteString("\n")

		if a.Status.IsActive() {
			id := strconv.FormatInt(a.ID, 10)
			kb.Row(keyboard.Button("❌ Cancel #"+id, AppointmentCancel+id))
		}
	}

	kb.Row(keyboard.Button("🔄 Refresh", AppointmentList))
	kb.AddBackToMainButton()

	return sb.String(), kb.Build()
}

// RenderCancelConfirm подтверждение отмены записи
func RenderCancelConfirm(appointmentID int64) (string, *models.InlineKeyboardMarkup) {
	id := strconv.FormatInt(appointmentID, 10)
	text := fmt.Sprintf("❓ Cancel appointment #%s?\n\nThis cannot be undone.", id)

	kb := keyboard.NewBuilder().
		AddRows(keyboard.ConfirmCancelButtons(AppointmentConfirmCancel+id, AppointmentList))

	return text, kb.Build()
}

func formatAppointment(a model.Appointment, loc *time.Location) string {
	status := formatting.GetAppointmentStatusDisplay(a.Status)

	doctor := a.DoctorName
	if doctor == "" {
		doctor = "Doctor #" + strconv.FormatInt(a.DoctorID, 10)
	}
	if a.DoctorSpecialization != "" {
		doctor += " (" + a.DoctorSpecialization + ")"
	}

	text := fmt.Sprintf("%s <b>#%d</b> %s\n   📅 %s\n   Status: %s\n",
		status.Emoji,
		a.ID,
		html.EscapeString(doctor),
		booking.LocaleDateTime(a.AppointmentDateTime, loc),
		status.Text,
	)
	if a.Reason != "" {
		text += "   📝 " + html.EscapeString(a.Reason) + "\n"
	}
	return text
}
