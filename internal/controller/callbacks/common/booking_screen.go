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
	"github.com/go-telegram/bot/models"
)

// Callback data экрана записи
const (
	BookingSpec     = "bk:spec:" // bk:spec:<index>
	BookingDoctor   = "bk:doc:"  // bk:doc:<doctorID>
	BookingDate     = "bk:date:" // bk:date:2024-05-01
	BookingCalendar = "bk:cal:"  // bk:cal:<offset>
	BookingSlot     = "bk:slot:" // bk:slot:<generation>:<index>
	BookingReason   = "bk:reason"
	BookingSubmit   = "bk:submit"
	BookingReset    = "bk:reset"
)

// CalendarDays дней на странице календаря
const CalendarDays = 7

// Тексты заглушек стадий
const (
	DoctorPlaceholderSpecFirst = "-- Select Specialization First --"
	DoctorPlaceholderLoading   = "Loading doctors..."
	DoctorPlaceholderNone      = "-- No doctors found --"
	DoctorPlaceholderSelect    = "-- Select Doctor --"

	SlotsPlaceholderSelectFirst = "Please select a doctor and date first."
	SlotsPlaceholderLoading     = "Loading slots..."
	SlotsPlaceholderNone        = "No available slots found for this doctor on the selected date."
	SlotsPlaceholderFailed      = "Could not load slots."
	SlotsPlaceholderSelect      = "Choose a time below."

	BookButtonLabel   = "Book Appointment"
	BookButtonBusy    = "⏳ Booking..."
	DatePlaceholder   = "-- Select Doctor First --"
	DateSelectPrompt  = "Choose a date below."
	ReasonPlaceholder = "(optional)"
)

// RenderBooking экран формы записи: текст и клавиатура.
// Чистая функция от состояния, today - сегодня в часовом поясе клиники.
func RenderBooking(st booking.State, specializations []string, today time.Time, loc *time.Location) (string, *models.InlineKeyboardMarkup) {
	return bookingText(st, loc), bookingKeyboard(st, specializations, today, loc)
}

func bookingText(st booking.State, loc *time.Location) string {
	var sb strings.Builder

	sb.WriteString("🩺 <b>Book an Appointment</b>\n\n")

	switch st.Banner.Kind {
	case booking.BannerSuccess:
		sb.WriteString("✅ " + html.EscapeString(st.Banner.Text) + "\n\n")
	case booking.BannerDanger:
		sb.WriteString("❌ " + html.EscapeString(st.Banner.Text) + "\n\n")
	}

	spec := "-- Select Specialization --"
	if st.Specialization != "" {
		spec = "<b>" + html.EscapeString(st.Specialization) + "</b>"
	}
	sb.WriteString("1️⃣ Specialization: " + spec + "\n")
	sb.WriteString("2️⃣ Doctor: " + doctorLine(st) + "\n")
	sb.WriteString("3️⃣ Date: " + dateLine(st, loc) + "\n")
	sb.WriteString("4️⃣ Time: " + slotLine(st, loc) + "\n")

	reason := ReasonPlaceholder
	if r := strings.TrimSpace(st.Reason); r != "" {
		reason = html.EscapeString(r)
	}
	sb.WriteString("📝 Reason: " + reason + "\n")

	if st.SlotError != "" {
		sb.WriteString("\n⚠️ " + html.EscapeString(st.SlotError) + "\n")
	}

	return sb.String()
}

func doctorLine(st booking.State) string {
	if doctor, ok := st.SelectedDoctor(); ok {
		return "<b>" + html.EscapeString(doctor.DisplayLabel()) + "</b>"
	}
	switch st.DoctorsStatus {
	case booking.StatusLoading:
		return DoctorPlaceholderLoading
	case booking.StatusPopulated:
		if len(st.Doctors) == 0 {
			return DoctorPlaceholderNone
		}
		return DoctorPlaceholderSelect
	default:
		return DoctorPlaceholderSpecFirst
	}
}

func dateLine(st booking.State, loc *time.Location) string {
	if st.Date != "" {
		if d, err := time.ParseInLocation("2006-01-02", st.Date, loc); err == nil {
			return "<b>" + formatting.FormatDate(d) + "</b>"
		}
		return html.EscapeString(st.Date)
	}
	if st.DateEnabled() {
		return DateSelectPrompt
	}
	return DatePlaceholder
}

func slotLine(st booking.State, loc *time.Location) string {
	if st.SlotStartTime != "" {
		return "<b>" + booking.SlotLabel(st.SlotStartTime, loc) + "</b>"
	}
	switch st.SlotsStatus {
	case booking.StatusLoading:
		return SlotsPlaceholderLoading
	case booking.StatusFailed:
		return SlotsPlaceholderFailed
	case booking.StatusPopulated:
		if len(st.Slots) == 0 {
			return SlotsPlaceholderNone
		}
		return SlotsPlaceholderSelect
	default:
		return SlotsPlaceholderSelectFirst
	}
}

func bookingKeyboard(st booking.State, specializations []string, today time.Time, loc *time.Location) *models.InlineKeyboardMarkup {
	kb := keyboard.NewBuilder()

	specButtons := make([]models.InlineKeyboardButton, 0, len(specializations))
	for i, spec := range specializations {
		specButtons = append(specButtons, keyboard.SelectableButton(
			spec,
			BookingSpec+strconv.Itoa(i),
			spec == st.Specialization,
		))
	}
	kb.Grid(2, specButtons...)

	if st.DoctorEnabled() {
		for _, d := range st.Doctors {
			id := booking.DoctorValue(d)
			kb.Row(keyboard.SelectableButton(d.DisplayLabel(), BookingDoctor+id, id == st.DoctorID))
		}
	}

	if st.DateEnabled() {
		start := today.AddDate(0, 0, st.CalendarOffset)
		kb.Row(keyboard.WeekPagination(
			BookingCalendar,
			st.CalendarOffset,
			CalendarDays,
			booking.MaxCalendarOffset,
			formatting.FormatWeekRange(start, CalendarDays),
		)...)

		days := make([]models.InlineKeyboardButton, 0, CalendarDays)
		for i := 0; i < CalendarDays; i++ {
			day := start.AddDate(0, 0, i)
			value := day.In(loc).Format("2006-01-02")
			days = append(days, keyboard.SelectableButton(
				formatting.FormatDayButton(day),
				BookingDate+value,
				value == st.Date,
			))
		}
		kb.Grid(4, days...)
	}

	if st.SlotsStatus == booking.StatusPopulated && len(st.Slots) > 0 {
		slots := make([]models.InlineKeyboardButton, 0, len(st.Slots))
		for i, slot := range st.Slots {
			slots = append(slots, keyboard.SelectableButton(
				booking.SlotLabel(slot.StartTime, loc),
				fmt.Sprintf("%s%d:%d", BookingSlot, st.Generation, i),
				st.IsSlotSelected(slot),
			))
		}
		kb.Grid(3, slots...)
	}

	kb.Row(keyboard.Button("📝 Reason for visit", BookingReason))

	switch {
	case st.Submitting:
		kb.Row(keyboard.LabelButton(BookButtonBusy))
	case st.CanSubmit():
		kb.Row(keyboard.Button("📅 "+BookButtonLabel, BookingSubmit))
	default:
		kb.Row(keyboard.Button("🔒 "+BookButtonLabel, BookingSubmit))
	}

	kb.Row(
		keyboard.Button("🔄 Start over", BookingReset),
		keyboard.BackToMainButton(),
	)

	return kb.Build()
}

// ParseSlotCallback разбирает bk:slot:<generation>:<index>
func ParseSlotCallback(data string) (uint64, int, error) {
	arg, err := CallbackArg(data, BookingSlot)
	if err != nil {
		return 0, 0, err
	}
	parts := strings.Split(arg, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidFormat, data)
	}
	gen, err := strconv.ParseUint(parts[0], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidFormat, data)
	}
	idx, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidFormat, data)
	}
	return gen, idx, nil
}

// SlotFromCallback находит слот по callback. Клавиатура другого поколения отклоняется.
func SlotFromCallback(st booking.State, data string) (string, error) {
	gen, idx, err := ParseSlotCallback(data)
	if err != nil {
		return "", err
	}
	if gen != st.Generation || idx < 0 || idx >= len(st.Slots) {
		return "", ErrStaleKeyboard
	}
	return st.Slots[idx].StartTime, nil
}

// SpecializationFromCallback специализация по индексу из bk:spec:<index>
func SpecializationFromCallback(specializations []string, data string) (string, error) {
	arg, err := CallbackArg(data, BookingSpec)
	if err != nil {
		return "", err
	}
	idx, err := strconv.Atoi(arg)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidFormat, data)
	}
	if idx < 0 || idx >= len(specializations) {
		return "", ErrStaleKeyboard
	}
	return specializations[idx], nil
}
