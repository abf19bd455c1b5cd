package formatting

import "github.com/Freeeeeet/clinic_booking_bot/internal/model"

// AppointmentStatusDisplay представляет отображение статуса приёма
type AppointmentStatusDisplay struct {
	Emoji string
	Text  string
}

// GetAppointmentStatusDisplay возвращает emoji и текст для статуса приёма
func GetAppointmentStatusDisplay(status model.AppointmentStatus) AppointmentStatusDisplay {
	displays := map[model.AppointmentStatus]AppointmentStatusDisplay{
		model.AppointmentStatusPending:   {"⏳", "Pending"},
		model.AppointmentStatusScheduled: {"✅", "Scheduled"},
		model.AppointmentStatusCompleted: {"✔️", "Completed"},
		model.AppointmentStatusCancelled: {"❌", "Cancelled"},
		model.AppointmentStatusRejected:  {"🚫", "Rejected"},
	}

	if display, ok := displays[status]; ok {
		return display
	}

	return AppointmentStatusDisplay{"❓", "Unknown"}
}
