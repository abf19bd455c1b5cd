package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Freeeeeet/clinic_booking_bot/internal/clinicapi"
	"github.com/Freeeeeet/clinic_booking_bot/internal/model"
	"github.com/Freeeeeet/clinic_booking_bot/internal/session"
	"go.uber.org/zap"
)

// AuthService вход пациента и хранение токена
type AuthService struct {
	api      ClinicAPIFactory
	sessions session.Store
	linker   PatientLinker
	metrics  FlowObserver
	logger   *zap.Logger
}

func NewAuthService(api ClinicAPIFactory, sessions session.Store, linker PatientLinker, metrics FlowObserver, logger *zap.Logger) *AuthService {
	return &AuthService{
		api:      api,
		sessions: sessions,
		linker:   linker,
		metrics:  metrics,
		logger:   logger,
	}
}

// Login входит в API клиники и сохраняет токен в сессии
func (s *AuthService) Login(ctx context.Context, telegramID int64, email, password string) error {
	email = strings.TrimSpace(email)

	token, err := s.api("").LoginPatient(ctx, model.LoginRequest{Email: email, Password: password})
	if err != nil {
		observe(s.metrics, "login", "failed")
		s.logger.Warn("Patient login failed",
			zap.Int64("telegram_id", telegramID),
			zap.Error(err),
		)
		return fmt.Errorf("login: %w", err)
	}

	if err := s.sessions.Save(ctx, telegramID, token.AccessToken); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	if s.linker != nil {
		if err := s.linker.LinkPatient(ctx, telegramID, nil, email); err != nil {
			// вход уже состоялся, связь можно восстановить при следующем входе
			s.logger.Warn("Failed to link patient after login",
				zap.Int64("telegram_id", telegramID),
				zap.Error(err),
			)
		}
	}

	observe(s.metrics, "login", "success")
	s.logger.Info("Patient logged in", zap.Int64("telegram_id", telegramID))
	return nil
}

// Logout удаляет токен
func (s *AuthService) Logout(ctx context.Context, telegramID int64) error {
	if err := s.sessions.Delete(ctx, telegramID); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// Token токен пользователя или ErrNotLoggedIn
func (s *AuthService) Token(ctx context.Context, telegramID int64) (string, error) {
	token, err := s.sessions.Token(ctx, telegramID)
	if errors.Is(err, session.ErrNoSession) {
		return "", ErrNotLoggedIn
	}
	if err != nil {
		return "", fmt.Errorf("get token: %w", err)
	}
	return token, nil
}

// IsLoggedIn есть ли действующий токен
func (s *AuthService) IsLoggedIn(ctx context.Context, telegramID int64) bool {
	_, err := s.Token(ctx, telegramID)
	return err == nil
}

// LoginErrorMessage текст ошибки входа
func LoginErrorMessage(err error) string {
	apiErr, ok := clinicapi.AsAPIError(err)
	if !ok {
		return "❌ An unexpected error occurred. Please try again later."
	}
	if apiErr.Message != nil {
		return "❌ Login failed: " + *apiErr.Message
	}
	return "❌ Login failed: " + apiErr.StatusText
}
