package booking

import (
	"strings"

	"github.com/Freeeeeet/clinic_booking_bot/internal/model"
)

// StageStatus состояние стадии конвейера выбора
type StageStatus int

const (
	StatusEmpty StageStatus = iota
	StatusLoading
	StatusPopulated
	StatusFailed
)

func (s StageStatus) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusPopulated:
		return "populated"
	case StatusFailed:
		return "failed"
	default:
		return "empty"
	}
}

// BannerKind тип глобального сообщения
type BannerKind string

const (
	BannerNone    BannerKind = ""
	BannerSuccess BannerKind = "success"
	BannerDanger  BannerKind = "danger"
)

// Banner глобальное сообщение над формой
type Banner struct {
	Kind BannerKind
	Text string
}

// SlotRequiredMessage ошибка поля "слот не выбран"
const SlotRequiredMessage = "Please select an available time slot."

// State снимок формы записи.
// Значение иммутабельно: Reduce возвращает новую копию, срезы не переиспользуются.
type State struct {
	Specialization string
	DoctorID       string
	Date           string // YYYY-MM-DD
	SlotStartTime  string // ISO-строка слота в исходном виде
	Reason         string

	Doctors       []model.DoctorSummary
	DoctorsStatus StageStatus
	Slots         []model.AvailableSlot
	SlotsStatus   StageStatus

	SlotError      string
	Banner         Banner
	Submitting     bool
	CalendarOffset int

	// Generation растёт при каждом изменении верхней стадии.
	// Ответы с устаревшим поколением отбрасываются.
	Generation uint64
}

// Initial пустая форма
func Initial() State {
	return State{}
}

// CanSubmit предикат активности кнопки записи
func (s State) CanSubmit() bool {
	return s.Specialization != "" &&
		s.DoctorID != "" &&
		s.Date != "" &&
		s.SlotStartTime != "" &&
		!s.Submitting
}

// DoctorEnabled можно ли выбирать врача
func (s State) DoctorEnabled() bool {
	return s.DoctorsStatus == StatusPopulated && len(s.Doctors) > 0
}

// DateEnabled можно ли выбирать дату
func (s State) DateEnabled() bool {
	return s.DoctorID != ""
}

// SelectedDoctor выбранный врач из загруженного списка
func (s State) SelectedDoctor() (model.DoctorSummary, bool) {
	for _, d := range s.Doctors {
		if formatID(d.ID) == s.DoctorID {
			return d, true
		}
	}
	return model.DoctorSummary{}, false
}

// IsSlotSelected проверяет, выбран ли данный слот
func (s State) IsSlotSelected(slot model.AvailableSlot) bool {
	return s.SlotStartTime != "" && slot.StartTime == s.SlotStartTime
}

// BookingRequest тело запроса на запись из текущего выбора.
// Причина обрезается и превращается в null, если пустая.
func (s State) BookingRequest() model.BookingRequest {
	req := model.BookingRequest{
		DoctorID:          s.DoctorID,
		RequestedDateTime: s.SlotStartTime,
	}
	if reason := strings.TrimSpace(s.Reason); reason != "" {
		req.Reason = &reason
	}
	return req
}
