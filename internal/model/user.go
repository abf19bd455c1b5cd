package model

import "time"

// User пользователь бота (Telegram-аккаунт), при необходимости связанный с пациентом клиники
type User struct {
	ID           int64     `json:"id"`
	TelegramID   int64     `json:"telegram_id"`
	Username     string    `json:"username"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	LanguageCode string    `json:"language_code"`
	PatientID    *int64    `json:"patient_id"`    // ID пациента в API клиники, nil до регистрации
	PatientEmail string    `json:"patient_email"` // email, под которым пациент входит в API
	CreatedAt    time.Time `json:"created_at"`
}

// IsPatient проверяет, связан ли Telegram-аккаунт с пациентом
func (u *User) IsPatient() bool {
	return u.PatientID != nil || u.PatientEmail != ""
}
