package service

import (
	"context"
	"sync"

	"github.com/Freeeeeet/clinic_booking_bot/internal/booking"
	"github.com/Freeeeeet/clinic_booking_bot/internal/model"
)

type fakeAPI struct {
	mu     sync.Mutex
	tokens []string

	doctors    []model.DoctorSummary
	doctorsErr error
	slots      []model.AvailableSlot
	slotsErr   error

	booked      []model.BookingRequest
	appointment *model.Appointment
	bookErr     error

	registered  []map[string]interface{}
	regResult   *model.RegistrationResult
	registerErr error
	// registerStarted и registerRelease задерживают RegisterPatient, если заданы
	registerStarted chan struct{}
	registerRelease chan struct{}

	token    *model.AuthToken
	loginErr error

	appointments []model.Appointment
	listErr      error
	cancelled    []int64
	cancelErr    error

	medications    []model.Medication
	medicationsErr error

	profile          *model.PatientProfile
	profileErr       error
	profileUpdates   []model.PatientProfileUpdate
	updateProfileErr error

	passwordChanges []model.PasswordChange
	passwordErr     error
}

func (f *fakeAPI) factory(token string) ClinicAPI {
	f.mu.Lock()
	f.tokens = append(f.tokens, token)
	f.mu.Unlock()
	return f
}

func (f *fakeAPI) DoctorsBySpecialization(ctx context.Context, specialization string) ([]model.DoctorSummary, error) {
	return f.doctors, f.doctorsErr
}

func (f *fakeAPI) AvailableSlots(ctx context.Context, doctorID, date string) ([]model.AvailableSlot, error) {
	return f.slots, f.slotsErr
}

func (f *fakeAPI) BookAppointment(ctx context.Context, req model.BookingRequest) (*model.Appointment, error) {
	f.booked = append(f.booked, req)
	return f.appointment, f.bookErr
}

func (f *fakeAPI) RegisterPatient(ctx context.Context, payload map[string]interface{}) (*model.RegistrationResult, error) {
	f.mu.Lock()
	f.registered = append(f.registered, payload)
	f.mu.Unlock()

	if f.registerStarted != nil {
		f.registerStarted <- struct{}{}
	}
	if f.registerRelease != nil {
		<-f.registerRelease
	}
	return f.regResult, f.registerErr
}

func (f *fakeAPI) LoginPatient(ctx context.Context, req model.LoginRequest) (*model.AuthToken, error) {
	return f.token, f.loginErr
}

func (f *fakeAPI) MyAppointments(ctx context.Context) ([]model.Appointment, error) {
	return f.appointments, f.listErr
}

func (f *fakeAPI) CancelAppointment(ctx context.Context, appointmentID int64) (*model.Appointment, error) {
	f.cancelled = append(f.cancelled, appointmentID)
	if f.cancelErr != nil {
		return nil, f.cancelErr
	}
	return &model.Appointment{ID: appointmentID, Status: model.AppointmentStatusCancelled}, nil
}

func (f *fakeAPI) MyMedications(ctx context.Context) ([]model.Medication, error) {
	return f.medications, f.medicationsErr
}

func (f *fakeAPI) PatientProfile(ctx context.Context) (*model.PatientProfile, error) {
	if f.profileErr != nil {
		return nil, f.profileErr
	}
	p := *f.profile
	return &p, nil
}

func (f *fakeAPI) UpdatePatientProfile(ctx context.Context, req model.PatientProfileUpdate) (*model.PatientProfile, error) {
	f.profileUpdates = append(f.profileUpdates, req)
	if f.updateProfileErr != nil {
		return nil, f.updateProfileErr
	}
	p := *f.profile
	p.Address = req.Address
	p.PersonalNumber = req.PersonalNumber
	p.GuardianName = req.GuardianName
	p.GuardianRelation = req.GuardianRelation
	p.GuardianPhoneNumber = req.GuardianPhoneNumber
	return &p, nil
}

func (f *fakeAPI) ChangePassword(ctx context.Context, req model.PasswordChange) (string, error) {
	f.passwordChanges = append(f.passwordChanges, req)
	if f.passwordErr != nil {
		return "", f.passwordErr
	}
	return "Password changed successfully.", nil
}

type fakeStates struct {
	mu     sync.Mutex
	states map[int64]booking.State
}

func newFakeStates() *fakeStates {
	return &fakeStates{states: make(map[int64]booking.State)}
}

func (f *fakeStates) UpdateBooking(telegramID int64, fn func(booking.State) booking.State) booking.State {
	f.mu.Lock()
	defer f.mu.Unlock()
	next := fn(f.states[telegramID])
	f.states[telegramID] = next
	return next
}

type fakeTokens struct {
	token string
	err   error
}

func (f fakeTokens) Token(ctx context.Context, telegramID int64) (string, error) {
	return f.token, f.err
}

type fakeLinker struct {
	telegramID int64
	patientID  *int64
	email      string
	err        error
}

func (f *fakeLinker) LinkPatient(ctx context.Context, telegramID int64, patientID *int64, email string) error {
	f.telegramID = telegramID
	f.patientID = patientID
	f.email = email
	return f.err
}

type fakeObserver struct {
	flows []string
}

func (f *fakeObserver) ObserveFlow(flow, outcome string) {
	f.flows = append(f.flows, flow+":"+outcome)
}
