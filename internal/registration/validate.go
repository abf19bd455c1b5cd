package registration

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const dateLayout = "2006-01-02"

var guardianPhoneRegex = regexp.MustCompile(`^\+?[0-9. ()-]{7,25}$`)

// Issue ошибка одного поля
type Issue struct {
	Field   string
	Message string
}

// Issues набор ошибок валидации формы
type Issues []Issue

func (i Issues) Error() string {
	parts := make([]string, 0, len(i))
	for _, issue := range i {
		parts = append(parts, fmt.Sprintf("%s: %s", issue.Field, issue.Message))
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(parts, "; "))
}

// Messages тексты ошибок по порядку
func (i Issues) Messages() []string {
	out := make([]string, 0, len(i))
	for _, issue := range i {
		out = append(out, issue.Message)
	}
	return out
}

// input форма в виде структуры с правилами валидации
type input struct {
	Name                string `json:"name" validate:"required,min=2,max=100"`
	Age                 *int   `json:"age" validate:"required,min=0"`
	DateOfBirth         string `json:"dateOfBirth" validate:"required,datetime=2006-01-02,past_date"`
	Gender              string `json:"gender" validate:"required"`
	PersonalNumber      string `json:"personalNumber" validate:"required"`
	Address             string `json:"address" validate:"required"`
	Email               string `json:"email" validate:"required,email"`
	GuardianName        string `json:"guardianName" validate:"required"`
	GuardianRelation    string `json:"guardianRelation" validate:"required"`
	GuardianPhoneNumber string `json:"guardianPhoneNumber" validate:"required,guardian_phone"`
	Password            string `json:"password" validate:"required,min=8"`
	ConfirmPassword     string `json:"confirmPassword" validate:"required"`
}

// messages тексты ошибок по полю и правилу
var messages = map[string]map[string]string{
	FieldName: {
		"required": "Name cannot be blank",
		"min":      "Name must be between 2 and 100 characters",
		"max":      "Name must be between 2 and 100 characters",
	},
	FieldAge: {
		"required": "Age cannot be null",
		"min":      "Age must be positive",
	},
	FieldDateOfBirth: {
		"required":  "Date of birth cannot be null",
		"datetime":  "Date of birth must be a date in YYYY-MM-DD format",
		"past_date": "Date of birth must be in the past",
	},
	FieldGender:           {"required": "Gender cannot be blank"},
	FieldPersonalNumber:   {"required": "Personal number cannot be blank"},
	FieldAddress:          {"required": "Address cannot be blank"},
	FieldEmail:            {"required": "Email cannot be blank", "email": "Email should be valid"},
	FieldGuardianName:     {"required": "Guardian name cannot be blank"},
	FieldGuardianRelation: {"required": "Guardian relation cannot be blank"},
	FieldGuardianPhoneNumber: {
		"required":       "Guardian phone number cannot be blank",
		"guardian_phone": "Invalid phone number format",
	},
	FieldPassword: {
		"required": "Password cannot be blank",
		"min":      "Password must be at least 8 characters long",
	},
	FieldConfirmPassword: {"required": "Confirm password cannot be blank"},
}

// Validator проверка формы перед отправкой
type Validator struct {
	validate *validator.Validate
	now      func() time.Time
}

// NewValidator создаёт валидатор. now используется для проверки даты рождения.
func NewValidator(now func() time.Time) *Validator {
	if now == nil {
		now = time.Now
	}
	v := &Validator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      now,
	}

	v.validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Ошибки регистрации возможны только при опечатке в теге, это баг сборки
	if err := v.validate.RegisterValidation("past_date", v.validatePastDate); err != nil {
		panic(fmt.Sprintf("register past_date validator: %v", err))
	}
	if err := v.validate.RegisterValidation("guardian_phone", validateGuardianPhone); err != nil {
		panic(fmt.Sprintf("register guardian_phone validator: %v", err))
	}

	return v
}

func (v *Validator) validatePastDate(fl validator.FieldLevel) bool {
	date, err := time.ParseInLocation(dateLayout, fl.Field().String(), time.Local)
	if err != nil {
		return false
	}
	now := v.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	return date.Before(today)
}

func validateGuardianPhone(fl validator.FieldLevel) bool {
	return guardianPhoneRegex.MatchString(fl.Field().String())
}

// Validate проверяет обязательность и формат всех полей.
// Возвращает Issues в порядке полей формы или nil.
func (v *Validator) Validate(f *Form) Issues {
	in := input{
		Name:                strings.TrimSpace(f.Get(FieldName)),
		DateOfBirth:         strings.TrimSpace(f.Get(FieldDateOfBirth)),
		Gender:              strings.TrimSpace(f.Get(FieldGender)),
		PersonalNumber:      strings.TrimSpace(f.Get(FieldPersonalNumber)),
		Address:             strings.TrimSpace(f.Get(FieldAddress)),
		Email:               strings.TrimSpace(f.Get(FieldEmail)),
		GuardianName:        strings.TrimSpace(f.Get(FieldGuardianName)),
		GuardianRelation:    strings.TrimSpace(f.Get(FieldGuardianRelation)),
		GuardianPhoneNumber: strings.TrimSpace(f.Get(FieldGuardianPhoneNumber)),
		Password:            f.Get(FieldPassword),
		ConfirmPassword:     f.Get(FieldConfirmPassword),
	}
	if age, ok := ParseInt(f.Get(FieldAge)); ok {
		in.Age = &age
	}

	err := v.validate.Struct(in)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return Issues{{Field: "form", Message: err.Error()}}
	}
	return translate(validationErrs)
}

func translate(errs validator.ValidationErrors) Issues {
	byField := make(map[string]Issue, len(errs))
	for _, e := range errs {
		msg, ok := messages[e.Field()][e.Tag()]
		if !ok {
			msg = fmt.Sprintf("%s is invalid", e.Field())
		}
		byField[e.Field()] = Issue{Field: e.Field(), Message: msg}
	}

	issues := make(Issues, 0, len(byField))
	for _, field := range Fields {
		if issue, ok := byField[field.Key]; ok {
			issues = append(issues, issue)
		}
	}
	return issues
}
