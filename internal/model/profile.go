package model

// PatientProfile ответ GET /api/profile/patient
type PatientProfile struct {
	ID                  int64  `json:"id"`
	Name                string `json:"name"`
	Age                 *int   `json:"age"`
	DateOfBirth         string `json:"dateOfBirth"`
	Gender              string `json:"gender"`
	PersonalNumber      string `json:"personalNumber"`
	Address             string `json:"address"`
	Email               string `json:"email"`
	GuardianName        string `json:"guardianName"`
	GuardianRelation    string `json:"guardianRelation"`
	GuardianPhoneNumber string `json:"guardianPhoneNumber"`
	CreatedAt           string `json:"createdAt,omitempty"`
}

// PatientProfileUpdate тело PUT /api/profile/patient.
// Имя, email и дата рождения через профиль не меняются.
type PatientProfileUpdate struct {
	Address             string `json:"address" validate:"required,max=255"`
	PersonalNumber      string `json:"personalNumber" validate:"required,phone,max=20"`
	GuardianName        string `json:"guardianName" validate:"required,max=100"`
	GuardianRelation    string `json:"guardianRelation" validate:"required,max=50"`
	GuardianPhoneNumber string `json:"guardianPhoneNumber" validate:"required,phone,max=25"`
}

// UpdateRequest изменяемые поля текущего профиля
func (p PatientProfile) UpdateRequest() PatientProfileUpdate {
	return PatientProfileUpdate{
		Address:             p.Address,
		PersonalNumber:      p.PersonalNumber,
		GuardianName:        p.GuardianName,
		GuardianRelation:    p.GuardianRelation,
		GuardianPhoneNumber: p.GuardianPhoneNumber,
	}
}

// PasswordChange тело PUT /api/profile/change-password
type PasswordChange struct {
	CurrentPassword    string `json:"currentPassword"`
	NewPassword        string `json:"newPassword"`
	ConfirmNewPassword string `json:"confirmNewPassword"`
}

// Medication назначенный пациенту препарат
type Medication struct {
	ID                    int64  `json:"id"`
	MedicationName        string `json:"medicationName"`
	Dosage                string `json:"dosage"`
	Frequency             string `json:"frequency"`
	Duration              string `json:"duration,omitempty"`
	Instructions          string `json:"instructions,omitempty"`
	PrescribedDate        string `json:"prescribedDate"`
	AppointmentID         *int64 `json:"appointmentId"`
	PrescribingDoctorID   *int64 `json:"prescribingDoctorId"`
	PrescribingDoctorName string `json:"prescribingDoctorName,omitempty"`
}
