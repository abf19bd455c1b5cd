package registration

import (
	"strconv"
	"strings"
	"sync"
	"unicode"
)

// Ключи полей формы, совпадают с JSON-ключами запроса регистрации
const (
	FieldName                = "name"
	FieldAge                 = "age"
	FieldDateOfBirth         = "dateOfBirth"
	FieldGender              = "gender"
	FieldPersonalNumber      = "personalNumber"
	FieldAddress             = "address"
	FieldEmail               = "email"
	FieldGuardianName        = "guardianName"
	FieldGuardianRelation    = "guardianRelation"
	FieldGuardianPhoneNumber = "guardianPhoneNumber"
	FieldPassword            = "password"
	FieldConfirmPassword     = "confirmPassword"
)

// Field описание одного поля диалога
type Field struct {
	Key    string
	Label  string
	Prompt string
	Secret bool // значение не показывается в сводке, сообщение удаляется
}

// Fields поля формы в порядке заполнения
var Fields = []Field{
	{Key: FieldName, Label: "Name", Prompt: "Enter your full name:"},
	{Key: FieldAge, Label: "Age", Prompt: "Enter your age:"},
	{Key: FieldDateOfBirth, Label: "Date of birth", Prompt: "Enter your date of birth (YYYY-MM-DD):"},
	{Key: FieldGender, Label: "Gender", Prompt: "Choose your gender:"},
	{Key: FieldPersonalNumber, Label: "Personal number", Prompt: "Enter your personal number:"},
	{Key: FieldAddress, Label: "Address", Prompt: "Enter your address:"},
	{Key: FieldEmail, Label: "Email", Prompt: "Enter your email:"},
	{Key: FieldGuardianName, Label: "Guardian name", Prompt: "Enter your guardian's name:"},
	{Key: FieldGuardianRelation, Label: "Guardian relation", Prompt: "Enter the guardian's relation to you:"},
	{Key: FieldGuardianPhoneNumber, Label: "Guardian phone", Prompt: "Enter the guardian's phone number:"},
	{Key: FieldPassword, Label: "Password", Prompt: "Enter a password (at least 8 characters):", Secret: true},
	{Key: FieldConfirmPassword, Label: "Confirm password", Prompt: "Confirm your password:", Secret: true},
}

// Genders варианты для кнопок выбора пола
var Genders = []string{"MALE", "FEMALE", "OTHER"}

// FieldByKey ищет описание поля
func FieldByKey(key string) (Field, bool) {
	for _, f := range Fields {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

// NextField поле после key, false если key последнее
func NextField(key string) (Field, bool) {
	for i, f := range Fields {
		if f.Key == key && i+1 < len(Fields) {
			return Fields[i+1], true
		}
	}
	return Field{}, false
}

// Form плоская форма регистрации.
// Обработчики Telegram выполняются параллельно, поэтому доступ к полям под mu.
type Form struct {
	mu     sync.RWMutex
	values map[string]string

	confirmInvalid bool
	submitting     bool
}

// NewForm пустая форма
func NewForm() *Form {
	return &Form{values: make(map[string]string)}
}

// Set записывает значение поля как есть
func (f *Form) Set(key, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.values == nil {
		f.values = make(map[string]string)
	}
	f.values[key] = value
}

// Get значение поля, "" если не заполнено
func (f *Form) Get(key string) string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return f.values[key]
}

// Reset очищает форму
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.values = make(map[string]string)
	f.confirmInvalid = false
}

// ConfirmInvalid поле подтверждения помечено невалидным
func (f *Form) ConfirmInvalid() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return f.confirmInvalid
}

// CheckPasswordMatch живая проверка совпадения паролей.
// Непустое подтверждение, отличное от пароля, считается несовпадением.
func (f *Form) CheckPasswordMatch() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	confirm := f.values[FieldConfirmPassword]
	f.confirmInvalid = confirm != "" && confirm != f.values[FieldPassword]
	return !f.confirmInvalid
}

// Snapshot независимая копия значений формы
func (f *Form) Snapshot() *Form {
	f.mu.RLock()
	defer f.mu.RUnlock()

	values := make(map[string]string, len(f.values))
	for k, v := range f.values {
		values[k] = v
	}
	return &Form{values: values, confirmInvalid: f.confirmInvalid}
}

// BeginSubmit занимает форму для отправки.
// false, если отправка уже идёт.
func (f *Form) BeginSubmit() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.submitting {
		return false
	}
	f.submitting = true
	return true
}

// EndSubmit освобождает форму после отправки
func (f *Form) EndSubmit() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.submitting = false
}

// Payload все поля формы плоским map.
// age приводится к целому как parseInt: ведущий знак и цифры, иначе null.
func (f *Form) Payload() map[string]interface{} {
	f.mu.RLock()
	defer f.mu.RUnlock()

	out := make(map[string]interface{}, len(Fields))
	for _, field := range Fields {
		out[field.Key] = f.values[field.Key]
	}
	if age := f.values[FieldAge]; age != "" {
		if n, ok := ParseInt(age); ok {
			out[FieldAge] = n
		} else {
			out[FieldAge] = nil
		}
	}
	return out
}

// ParseInt разбирает ведущее целое число, игнорируя хвост ("30abc" -> 30)
func ParseInt(s string) (int, bool) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0, false
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
