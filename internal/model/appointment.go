package model

// AppointmentStatus статус приёма в API клиники
type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "PENDING"
	AppointmentStatusScheduled AppointmentStatus = "SCHEDULED"
	AppointmentStatusCompleted AppointmentStatus = "COMPLETED"
	AppointmentStatusCancelled AppointmentStatus = "CANCELLED"
	AppointmentStatusRejected  AppointmentStatus = "REJECTED"
)

// IsActive проверяет, можно ли ещё отменить приём
func (s AppointmentStatus) IsActive() bool {
	return s == AppointmentStatusPending || s == AppointmentStatusScheduled
}

// BookingRequest тело POST /api/appointments/book
type BookingRequest struct {
	DoctorID          string  `json:"doctorId"`
	RequestedDateTime string  `json:"requestedDateTime"`
	Reason            *string `json:"reason"` // nil сериализуется как null
}

// Appointment приём из ответа API
type Appointment struct {
	ID                   int64             `json:"id"`
	AppointmentDateTime  string            `json:"appointmentDateTime"`
	Reason               string            `json:"reason,omitempty"`
	Status               AppointmentStatus `json:"status,omitempty"`
	DoctorNotes          string            `json:"doctorNotes,omitempty"`
	PatientID            int64             `json:"patientId,omitempty"`
	PatientName          string            `json:"patientName,omitempty"`
	DoctorID             int64             `json:"doctorId,omitempty"`
	DoctorName           string            `json:"doctorName,omitempty"`
	DoctorSpecialization string            `json:"doctorSpecialization,omitempty"`
}
