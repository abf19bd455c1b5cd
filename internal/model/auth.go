package model

// LoginRequest тело POST /api/auth/patient/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthToken ответ логина
type AuthToken struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
}

// RegistrationResult ответ успешной регистрации пациента
type RegistrationResult struct {
	Message  string `json:"message"`
	Success  bool   `json:"success"`
	UserType string `json:"userType"`
	UserID   *int64 `json:"userId"`
	UserName string `json:"userName"`
}
