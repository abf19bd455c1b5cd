package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/Freeeeeet/clinic_booking_bot/internal/model"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const minPasswordLength = 8

var phoneRegex = regexp.MustCompile(`^\+?[0-9. ()-]{7,25}$`)

// ProfileField изменяемое поле профиля пациента
type ProfileField struct {
	Key    string
	Label  string
	Prompt string
}

// ProfileFields поля, которые API разрешает менять
var ProfileFields = []ProfileField{
	{Key: "address", Label: "Address", Prompt: "Enter your new address:"},
	{Key: "personalNumber", Label: "Personal number", Prompt: "Enter your new personal (phone) number:"},
	{Key: "guardianName", Label: "Guardian name", Prompt: "Enter the guardian's name:"},
	{Key: "guardianRelation", Label: "Guardian relation", Prompt: "Enter the guardian's relation to you:"},
	{Key: "guardianPhoneNumber", Label: "Guardian phone", Prompt: "Enter the guardian's phone number:"},
}

// ProfileFieldByKey ищет изменяемое поле
func ProfileFieldByKey(key string) (ProfileField, bool) {
	for _, f := range ProfileFields {
		if f.Key == key {
			return f, true
		}
	}
	return ProfileField{}, false
}

// InputError значение, отклонённое до запроса к API
type InputError struct {
	Field   string
	Message string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

var profileMessages = map[string]map[string]string{
	"address": {
		"required": "Address cannot be blank",
		"max":      "Address too long",
	},
	"personalNumber": {
		"required": "Personal number cannot be blank",
		"phone":    "Invalid phone number format",
		"max":      "Personal number too long",
	},
	"guardianName": {
		"required": "Guardian name cannot be blank",
		"max":      "Guardian name too long",
	},
	"guardianRelation": {
		"required": "Guardian relation cannot be blank",
		"max":      "Guardian relation too long",
	},
	"guardianPhoneNumber": {
		"required": "Guardian phone number cannot be blank",
		"phone":    "Invalid phone number format",
		"max":      "Guardian phone number too long",
	},
}

// ProfileService профиль и назначения пациента
type ProfileService struct {
	api      ClinicAPIFactory
	tokens   TokenSource
	validate *validator.Validate
	metrics  FlowObserver
	logger   *zap.Logger
}

func NewProfileService(api ClinicAPIFactory, tokens TokenSource, metrics FlowObserver, logger *zap.Logger) *ProfileService {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	})
	if err := v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phoneRegex.MatchString(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("register phone validator: %v", err))
	}

	return &ProfileService{
		api:      api,
		tokens:   tokens,
		validate: v,
		metrics:  metrics,
		logger:   logger,
	}
}

// Profile профиль вошедшего пациента
func (s *ProfileService) Profile(ctx context.Context, telegramID int64) (*model.PatientProfile, error) {
	token, err := s.tokens.Token(ctx, telegramID)
	if err != nil {
		return nil, err
	}

	profile, err := s.api(token).PatientProfile(ctx)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return profile, nil
}

// UpdateField меняет одно поле профиля.
// API принимает только полный набор изменяемых полей, остальные берутся из текущего профиля.
func (s *ProfileService) UpdateField(ctx context.Context, telegramID int64, key, value string) (*model.PatientProfile, error) {
	if _, ok := ProfileFieldByKey(key); !ok {
		return nil, &InputError{Field: key, Message: "This field cannot be changed"}
	}

	token, err := s.tokens.Token(ctx, telegramID)
	if err != nil {
		return nil, err
	}
	api := s.api(token)

	current, err := api.PatientProfile(ctx)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	req := current.UpdateRequest()
	value = strings.TrimSpace(value)
	switch key {
	case "address":
		req.Address = value
	case "personalNumber":
		req.PersonalNumber = value
	case "guardianName":
		req.GuardianName = value
	case "guardianRelation":
		req.GuardianRelation = value
	case "guardianPhoneNumber":
		req.GuardianPhoneNumber = value
	}

	if err := s.check(req, key); err != nil {
		return nil, err
	}

	updated, err := api.UpdatePatientProfile(ctx, req)
	if err != nil {
		observe(s.metrics, "profile_update", "failed")
		s.logger.Warn("Profile update failed",
			zap.Int64("telegram_id", telegramID),
			zap.String("field", key),
			zap.Error(err),
		)
		return nil, fmt.Errorf("update profile: %w", err)
	}

	observe(s.metrics, "profile_update", "success")
	s.logger.Info("Profile updated",
		zap.Int64("telegram_id", telegramID),
		zap.String("field", key),
	)
	return updated, nil
}

// check проверяет запрос. Ошибка изменённого поля важнее остальных.
func (s *ProfileService) check(req model.PatientProfileUpdate, key string) error {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	first := validationErrs[0]
	for _, fe := range validationErrs {
		if fe.Field() == key {
			first = fe
			break
		}
	}

	msg := profileMessages[first.Field()][first.Tag()]
	if msg == "" {
		msg = "Invalid value"
	}
	return &InputError{Field: first.Field(), Message: msg}
}

// ChangePassword смена пароля. Простые проверки выполняются до запроса.
func (s *ProfileService) ChangePassword(ctx context.Context, telegramID int64, req model.PasswordChange) (string, error) {
	if req.CurrentPassword == "" {
		return "", &InputError{Field: "currentPassword", Message: "Current password cannot be blank"}
	}
	if err := CheckNewPassword(req.NewPassword); err != nil {
		return "", err
	}
	if req.NewPassword != req.ConfirmNewPassword {
		return "", &InputError{Field: "confirmNewPassword", Message: "New passwords do not match."}
	}

	token, err := s.tokens.Token(ctx, telegramID)
	if err != nil {
		return "", err
	}

	msg, err := s.api(token).ChangePassword(ctx, req)
	if err != nil {
		observe(s.metrics, "password_change", "failed")
		s.logger.Warn("Password change failed",
			zap.Int64("telegram_id", telegramID),
			zap.Error(err),
		)
		return "", fmt.Errorf("change password: %w", err)
	}

	observe(s.metrics, "password_change", "success")
	s.logger.Info("Password changed", zap.Int64("telegram_id", telegramID))
	if msg == "" {
		msg = "Password changed successfully."
	}
	return msg, nil
}

// CheckNewPassword требование к длине нового пароля
func CheckNewPassword(password string) error {
	if len(password) < minPasswordLength {
		return &InputError{Field: "newPassword", Message: "New password must be at least 8 characters long"}
	}
	return nil
}

// Medications назначения пациента, новые первыми
func (s *ProfileService) Medications(ctx context.Context, telegramID int64) ([]model.Medication, error) {
	token, err := s.tokens.Token(ctx, telegramID)
	if err != nil {
		return nil, err
	}

	medications, err := s.api(token).MyMedications(ctx)
	if err != nil {
		return nil, fmt.Errorf("list medications: %w", err)
	}

	sort.SliceStable(medications, func(i, j int) bool {
		return medications[i].PrescribedDate > medications[j].PrescribedDate
	})
	return medications, nil
}
