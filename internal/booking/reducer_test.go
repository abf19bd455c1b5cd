package booking

import (
	"testing"

	"github.com/Freeeeeet/clinic_booking_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testDoctors = []model.DoctorSummary{
		{ID: 42, Name: "Dr. Grey", Qualification: "MD"},
		{ID: 43, Name: "Dr. Yang", Specialization: "Cardiology"},
	}
	testSlots = []model.AvailableSlot{
		{StartTime: "2024-05-01T09:00:00", EndTime: "2024-05-01T09:30:00"},
		{StartTime: "2024-05-01T09:30:00", EndTime: "2024-05-01T10:00:00"},
	}
)

// readyState форма с выбранными специализацией, врачом, датой и слотом
func readyState(t *testing.T) State {
	t.Helper()

	s, eff := Reduce(Initial(), SpecializationChanged{Specialization: "Cardiology"})
	fd, ok := eff.(FetchDoctors)
	require.True(t, ok)

	s, _ = Reduce(s, DoctorsLoaded{Generation: fd.Generation, Doctors: testDoctors})
	s, _ = Reduce(s, DoctorChanged{DoctorID: "42"})

	s, eff = Reduce(s, DateChanged{Date: "2024-05-01"})
	fs, ok := eff.(FetchSlots)
	require.True(t, ok)

	s, _ = Reduce(s, SlotsLoaded{Generation: fs.Generation, Slots: testSlots})
	s, _ = Reduce(s, SlotSelected{StartTime: "2024-05-01T09:00:00"})
	require.True(t, s.CanSubmit())
	return s
}

func TestSpecializationChanged_FetchesDoctors(t *testing.T) {
	s, eff := Reduce(Initial(), SpecializationChanged{Specialization: "Cardiology"})

	assert.Equal(t, StatusLoading, s.DoctorsStatus)
	assert.Equal(t, FetchDoctors{Generation: s.Generation, Specialization: "Cardiology"}, eff)
	assert.False(t, s.DoctorEnabled())
	assert.False(t, s.DateEnabled())
}

func TestSpecializationChanged_EmptyClearsEverything(t *testing.T) {
	s := readyState(t)

	s, eff := Reduce(s, SpecializationChanged{Specialization: ""})
	assert.Nil(t, eff)
	assert.Equal(t, StatusEmpty, s.DoctorsStatus)
	assert.Empty(t, s.DoctorID)
	assert.Empty(t, s.Date)
	assert.Empty(t, s.SlotStartTime)
	assert.Empty(t, s.Slots)
	assert.False(t, s.CanSubmit())
}

func TestUpstreamChangeClearsDownstream(t *testing.T) {
	t.Run("specialization", func(t *testing.T) {
		s, _ := Reduce(readyState(t), SpecializationChanged{Specialization: "Neurology"})
		assert.Empty(t, s.DoctorID)
		assert.Nil(t, s.Doctors)
		assert.Empty(t, s.Date)
		assert.Empty(t, s.SlotStartTime)
		assert.Equal(t, StatusEmpty, s.SlotsStatus)
	})

	t.Run("doctor", func(t *testing.T) {
		s, eff := Reduce(readyState(t), DoctorChanged{DoctorID: "43"})
		assert.Nil(t, eff)
		assert.Equal(t, "43", s.DoctorID)
		assert.Len(t, s.Doctors, 2)
		assert.Empty(t, s.Date)
		assert.Empty(t, s.SlotStartTime)
		assert.Nil(t, s.Slots)
	})

	t.Run("date", func(t *testing.T) {
		s, eff := Reduce(readyState(t), DateChanged{Date: "2024-05-02"})
		assert.Equal(t, FetchSlots{Generation: s.Generation, DoctorID: "42", Date: "2024-05-02"}, eff)
		assert.Equal(t, StatusLoading, s.SlotsStatus)
		assert.Empty(t, s.SlotStartTime)
		assert.False(t, s.CanSubmit())
	})
}

func TestDoctorChanged_IgnoresUnknownDoctor(t *testing.T) {
	s := readyState(t)
	next, eff := Reduce(s, DoctorChanged{DoctorID: "999"})
	assert.Nil(t, eff)
	assert.Equal(t, s, next)
}

func TestDateChanged_RequiresDoctor(t *testing.T) {
	s, eff := Reduce(Initial(), DateChanged{Date: "2024-05-01"})
	assert.Nil(t, eff)
	assert.Empty(t, s.Date)
}

func TestDoctorsLoaded_EmptyListKeepsDoctorDisabled(t *testing.T) {
	s, eff := Reduce(Initial(), SpecializationChanged{Specialization: "Cardiology"})
	s, _ = Reduce(s, DoctorsLoaded{Generation: eff.(FetchDoctors).Generation})

	assert.Equal(t, StatusPopulated, s.DoctorsStatus)
	assert.False(t, s.DoctorEnabled())
}

func TestDoctorsFailed_ShowsBanner(t *testing.T) {
	s, eff := Reduce(Initial(), SpecializationChanged{Specialization: "Cardiology"})
	s, _ = Reduce(s, DoctorsFailed{Generation: eff.(FetchDoctors).Generation, Message: "Could not load doctors. boom"})

	assert.Equal(t, StatusFailed, s.DoctorsStatus)
	assert.Equal(t, Banner{Kind: BannerDanger, Text: "Could not load doctors. boom"}, s.Banner)
	assert.False(t, s.DoctorEnabled())
}

func TestStaleResponsesAreDropped(t *testing.T) {
	s, eff := Reduce(Initial(), SpecializationChanged{Specialization: "Cardiology"})
	stale := eff.(FetchDoctors).Generation

	s, eff = Reduce(s, SpecializationChanged{Specialization: "Neurology"})
	fresh := eff.(FetchDoctors).Generation
	require.NotEqual(t, stale, fresh)

	s, _ = Reduce(s, DoctorsLoaded{Generation: stale, Doctors: testDoctors})
	assert.Equal(t, StatusLoading, s.DoctorsStatus)
	assert.Nil(t, s.Doctors)

	s, _ = Reduce(s, DoctorsFailed{Generation: stale, Message: "late"})
	assert.Equal(t, BannerNone, s.Banner.Kind)

	s, _ = Reduce(s, DoctorsLoaded{Generation: fresh, Doctors: testDoctors[:1]})
	assert.Len(t, s.Doctors, 1)

	// слоты от предыдущей даты не должны перезаписать новую
	s, _ = Reduce(s, DoctorChanged{DoctorID: "42"})
	s, eff = Reduce(s, DateChanged{Date: "2024-05-01"})
	staleSlots := eff.(FetchSlots).Generation
	s, _ = Reduce(s, DateChanged{Date: "2024-05-02"})
	s, _ = Reduce(s, SlotsLoaded{Generation: staleSlots, Slots: testSlots})
	assert.Equal(t, StatusLoading, s.SlotsStatus)
	assert.Nil(t, s.Slots)
}

func TestSlotSelection_SingleAndRaw(t *testing.T) {
	s := readyState(t)

	s, _ = Reduce(s, SlotSelected{StartTime: "2024-05-01T09:30:00"})
	assert.Equal(t, "2024-05-01T09:30:00", s.SlotStartTime)

	selected := 0
	for _, slot := range s.Slots {
		if s.IsSlotSelected(slot) {
			selected++
		}
	}
	assert.Equal(t, 1, selected)

	next, _ := Reduce(s, SlotSelected{StartTime: "2024-05-01T11:00:00"})
	assert.Equal(t, s, next)
}

func TestSubmitRequested_WithoutSlot(t *testing.T) {
	s := readyState(t)
	s.SlotStartTime = ""

	s, eff := Reduce(s, SubmitRequested{})
	assert.Nil(t, eff)
	assert.Equal(t, SlotRequiredMessage, s.SlotError)
	assert.False(t, s.Submitting)

	// выбор слота убирает ошибку
	s, _ = Reduce(s, SlotSelected{StartTime: "2024-05-01T09:00:00"})
	assert.Empty(t, s.SlotError)
}

func TestSubmitRequested_SendsRawStartTimeAndNullReason(t *testing.T) {
	s := readyState(t)
	s, _ = Reduce(s, ReasonChanged{Reason: "   "})

	s, eff := Reduce(s, SubmitRequested{})
	require.IsType(t, SubmitBooking{}, eff)
	req := eff.(SubmitBooking).Request

	assert.Equal(t, "42", req.DoctorID)
	assert.Equal(t, "2024-05-01T09:00:00", req.RequestedDateTime)
	assert.Nil(t, req.Reason)
	assert.True(t, s.Submitting)
	assert.False(t, s.CanSubmit())

	// повторное нажатие во время отправки игнорируется
	again, eff := Reduce(s, SubmitRequested{})
	assert.Nil(t, eff)
	assert.Equal(t, s, again)
}

func TestSubmitRequested_TrimsReason(t *testing.T) {
	s, _ := Reduce(readyState(t), ReasonChanged{Reason: "  chest pain "})
	_, eff := Reduce(s, SubmitRequested{})
	req := eff.(SubmitBooking).Request
	require.NotNil(t, req.Reason)
	assert.Equal(t, "chest pain", *req.Reason)
}

func TestBookingSucceeded_ResetsForm(t *testing.T) {
	s, _ := Reduce(readyState(t), ReasonChanged{Reason: "checkup"})
	s, _ = Reduce(s, SubmitRequested{})
	gen := s.Generation

	s, eff := Reduce(s, BookingSucceeded{Message: "done"})
	assert.Nil(t, eff)
	assert.Equal(t, Banner{Kind: BannerSuccess, Text: "done"}, s.Banner)
	assert.Empty(t, s.Specialization)
	assert.Empty(t, s.DoctorID)
	assert.Empty(t, s.Date)
	assert.Empty(t, s.Reason)
	assert.Empty(t, s.SlotStartTime)
	assert.False(t, s.Submitting)
	assert.Greater(t, s.Generation, gen)
}

func TestBookingFailed_KeepsSelection(t *testing.T) {
	s, _ := Reduce(readyState(t), SubmitRequested{})

	s, eff := Reduce(s, BookingFailed{Message: "Appointment booking failed. Slot taken"})
	assert.Nil(t, eff)
	assert.False(t, s.Submitting)
	assert.True(t, s.CanSubmit())
	assert.Equal(t, "2024-05-01T09:00:00", s.SlotStartTime)
	assert.Equal(t, BannerDanger, s.Banner.Kind)
}

func TestBannerClearedOnNewAction(t *testing.T) {
	s, _ := Reduce(readyState(t), SubmitRequested{})
	s, _ = Reduce(s, BookingFailed{Message: "x"})

	s, _ = Reduce(s, DateChanged{Date: "2024-05-03"})
	assert.Equal(t, BannerNone, s.Banner.Kind)
}

func TestCalendarPaged_Clamped(t *testing.T) {
	s, _ := Reduce(Initial(), CalendarPaged{Offset: -7})
	assert.Equal(t, 0, s.CalendarOffset)

	s, _ = Reduce(s, CalendarPaged{Offset: 500})
	assert.Equal(t, MaxCalendarOffset, s.CalendarOffset)
}

func TestReduceDoesNotShareSlices(t *testing.T) {
	doctors := append([]model.DoctorSummary{}, testDoctors...)
	s, eff := Reduce(Initial(), SpecializationChanged{Specialization: "Cardiology"})
	s, _ = Reduce(s, DoctorsLoaded{Generation: eff.(FetchDoctors).Generation, Doctors: doctors})

	doctors[0].Name = "mutated"
	assert.Equal(t, "Dr. Grey", s.Doctors[0].Name)
}
