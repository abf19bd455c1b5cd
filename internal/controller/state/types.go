package state

import "time"

// UserState представляет текущее состояние пользователя в диалоге
type UserState string

const (
	StateNone UserState = "" // Нет активного состояния

	// Регистрация пациента: текущее поле хранится в DataRegistrationField
	StateRegistrationField UserState = "registration_field"

	// Вход в API клиники
	StateLoginEmail    UserState = "login_email"
	StateLoginPassword UserState = "login_password"

	// Ввод причины визита для формы записи
	StateBookingReason UserState = "booking_reason"

	// Профиль: правка поля (ключ в DataProfileField) и смена пароля
	StateProfileField    UserState = "profile_field"
	StatePasswordCurrent UserState = "password_current"
	StatePasswordNew     UserState = "password_new"
	StatePasswordConfirm UserState = "password_confirm"
)

// Ключи временных данных диалогов
const (
	DataRegistrationForm  = "registration_form"
	DataRegistrationField = "registration_field"
	DataLoginEmail        = "login_email"
	DataBookingChatID     = "booking_chat_id"
	DataBookingMessageID  = "booking_message_id"
	DataProfileField      = "profile_field"
	DataPasswordCurrent   = "password_current"
	DataPasswordNew       = "password_new"
)

// UserData хранит временные данные пользователя во время диалога
type UserData struct {
	State   UserState
	Data    map[string]interface{} // Временные данные для текущего диалога
	Touched time.Time              // последнее обращение, для очистки
}
