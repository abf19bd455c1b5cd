package booking

import (
	"strconv"

	"github.com/Freeeeeet/clinic_booking_bot/internal/model"
)

// MaxCalendarOffset как далеко вперёд (в днях) можно листать календарь
const MaxCalendarOffset = 84

// Event действие пользователя или результат запроса к API
type Event interface {
	event()
}

type (
	SpecializationChanged struct{ Specialization string }
	DoctorChanged         struct{ DoctorID string }
	DateChanged           struct{ Date string }
	SlotSelected          struct{ StartTime string }
	ReasonChanged         struct{ Reason string }
	CalendarPaged         struct{ Offset int }
	SubmitRequested       struct{}

	DoctorsLoaded struct {
		Generation uint64
		Doctors    []model.DoctorSummary
	}
	DoctorsFailed struct {
		Generation uint64
		Message    string
	}
	SlotsLoaded struct {
		Generation uint64
		Slots      []model.AvailableSlot
	}
	SlotsFailed struct {
		Generation uint64
		Message    string
	}

	BookingSucceeded struct{ Message string }
	BookingFailed    struct{ Message string }
)

func (SpecializationChanged) event() {}
func (DoctorChanged) event()         {}
func (DateChanged) event()           {}
func (SlotSelected) event()          {}
func (ReasonChanged) event()         {}
func (CalendarPaged) event()         {}
func (SubmitRequested) event()       {}
func (DoctorsLoaded) event()         {}
func (DoctorsFailed) event()         {}
func (SlotsLoaded) event()           {}
func (SlotsFailed) event()           {}
func (BookingSucceeded) event()      {}
func (BookingFailed) event()         {}

// Effect запрос к API, который нужно выполнить после перехода
type Effect interface {
	effect()
}

type (
	FetchDoctors struct {
		Generation     uint64
		Specialization string
	}
	FetchSlots struct {
		Generation uint64
		DoctorID   string
		Date       string
	}
	SubmitBooking struct {
		Request model.BookingRequest
	}
)

func (FetchDoctors) effect()  {}
func (FetchSlots) effect()    {}
func (SubmitBooking) effect() {}

// Reduce единственная функция переходов конвейера.
// Изменение любой стадии сбрасывает все стадии правее.
func Reduce(s State, ev Event) (State, Effect) {
	switch e := ev.(type) {
	case SpecializationChanged:
		next := s.clearMessages().resetFrom(stageDoctor)
		next.Specialization = e.Specialization
		if e.Specialization == "" {
			return next, nil
		}
		next.DoctorsStatus = StatusLoading
		return next, FetchDoctors{Generation: next.Generation, Specialization: e.Specialization}

	case DoctorsLoaded:
		if e.Generation != s.Generation || s.DoctorsStatus != StatusLoading {
			return s, nil
		}
		next := s
		next.Doctors = append([]model.DoctorSummary{}, e.Doctors...)
		next.DoctorsStatus = StatusPopulated
		return next, nil

	case DoctorsFailed:
		if e.Generation != s.Generation || s.DoctorsStatus != StatusLoading {
			return s, nil
		}
		next := s
		next.Doctors = nil
		next.DoctorsStatus = StatusFailed
		next.Banner = Banner{Kind: BannerDanger, Text: e.Message}
		return next, nil

	case DoctorChanged:
		if !s.DoctorEnabled() || (e.DoctorID != "" && !s.hasDoctor(e.DoctorID)) {
			return s, nil
		}
		next := s.clearMessages().resetFrom(stageDate)
		next.DoctorID = e.DoctorID
		return next, nil

	case DateChanged:
		if !s.DateEnabled() {
			return s, nil
		}
		next := s.clearMessages().resetFrom(stageSlot)
		next.Date = e.Date
		next.CalendarOffset = s.CalendarOffset
		if next.Date == "" {
			return next, nil
		}
		next.SlotsStatus = StatusLoading
		return next, FetchSlots{Generation: next.Generation, DoctorID: next.DoctorID, Date: next.Date}

	case SlotsLoaded:
		if e.Generation != s.Generation || s.SlotsStatus != StatusLoading {
			return s, nil
		}
		next := s
		next.Slots = append([]model.AvailableSlot{}, e.Slots...)
		next.SlotsStatus = StatusPopulated
		return next, nil

	case SlotsFailed:
		if e.Generation != s.Generation || s.SlotsStatus != StatusLoading {
			return s, nil
		}
		next := s
		next.Slots = nil
		next.SlotsStatus = StatusFailed
		next.Banner = Banner{Kind: BannerDanger, Text: e.Message}
		return next, nil

	case SlotSelected:
		if !s.hasSlot(e.StartTime) {
			return s, nil
		}
		next := s
		next.SlotStartTime = e.StartTime
		next.SlotError = ""
		return next, nil

	case ReasonChanged:
		next := s
		next.Reason = e.Reason
		return next, nil

	case CalendarPaged:
		next := s
		next.CalendarOffset = clampOffset(e.Offset)
		return next, nil

	case SubmitRequested:
		if s.Submitting {
			return s, nil
		}
		next := s.clearMessages()
		if next.SlotStartTime == "" {
			next.SlotError = SlotRequiredMessage
			return next, nil
		}
		next.Submitting = true
		return next, SubmitBooking{Request: next.BookingRequest()}

	case BookingSucceeded:
		next := Initial()
		next.Generation = s.Generation + 1
		next.Banner = Banner{Kind: BannerSuccess, Text: e.Message}
		return next, nil

	case BookingFailed:
		next := s
		next.Submitting = false
		next.Banner = Banner{Kind: BannerDanger, Text: e.Message}
		return next, nil
	}

	return s, nil
}

type stage int

const (
	stageDoctor stage = iota
	stageDate
	stageSlot
)

// resetFrom очищает стадию from и все правее, инвалидируя запросы в полёте
func (s State) resetFrom(from stage) State {
	next := s
	next.Generation++
	next.SlotStartTime = ""
	next.Slots = nil
	next.SlotsStatus = StatusEmpty
	if from <= stageDate {
		next.Date = ""
		next.CalendarOffset = 0
	}
	if from <= stageDoctor {
		next.DoctorID = ""
		next.Doctors = nil
		next.DoctorsStatus = StatusEmpty
	}
	return next
}

func (s State) clearMessages() State {
	next := s
	next.Banner = Banner{}
	next.SlotError = ""
	return next
}

func (s State) hasDoctor(id string) bool {
	for _, d := range s.Doctors {
		if formatID(d.ID) == id {
			return true
		}
	}
	return false
}

func (s State) hasSlot(startTime string) bool {
	if s.SlotsStatus != StatusPopulated || startTime == "" {
		return false
	}
	for _, slot := range s.Slots {
		if slot.StartTime == startTime {
			return true
		}
	}
	return false
}

func clampOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	if offset > MaxCalendarOffset {
		return MaxCalendarOffset
	}
	return offset
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// DoctorValue значение врача в форме (строковый ID)
func DoctorValue(d model.DoctorSummary) string {
	return formatID(d.ID)
}
