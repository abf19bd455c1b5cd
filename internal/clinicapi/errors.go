package clinicapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// FieldError одна ошибка валидации из поля "errors" ответа
type FieldError struct {
	Field   string
	Message string
}

// APIError неуспешный ответ API клиники.
// Собирается единообразно для любого статуса, кроме ожидаемого.
type APIError struct {
	HTTPStatus int
	StatusText string

	// FieldErrors ошибки валидации в порядке ключей из тела ответа.
	// HasFieldErrors = true, если в теле был объект "errors" (даже пустой).
	FieldErrors    []FieldError
	HasFieldErrors bool

	// Message непустое поле "message" из тела, nil если его нет
	Message *string

	// Malformed тело ответа не является JSON-объектом
	Malformed bool
}

func (e *APIError) Error() string {
	if e.Message != nil {
		return fmt.Sprintf("clinic API returned %d: %s", e.HTTPStatus, *e.Message)
	}
	return fmt.Sprintf("clinic API returned %d %s", e.HTTPStatus, e.StatusText)
}

// FieldMessages сообщения ошибок валидации в исходном порядке
func (e *APIError) FieldMessages() []string {
	out := make([]string, 0, len(e.FieldErrors))
	for _, fe := range e.FieldErrors {
		out = append(out, fe.Message)
	}
	return out
}

// FieldErrorMap ошибки валидации в виде map field -> message
func (e *APIError) FieldErrorMap() map[string]string {
	out := make(map[string]string, len(e.FieldErrors))
	for _, fe := range e.FieldErrors {
		out[fe.Field] = fe.Message
	}
	return out
}

// TransportError сетевая ошибка: запрос не дошёл или ответ не прочитан
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// AsAPIError достаёт *APIError из цепочки ошибок
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsTransport проверяет, что ошибка сетевая
func IsTransport(err error) bool {
	var tErr *TransportError
	return errors.As(err, &tErr)
}

var errNotObject = errors.New("not a JSON object")

// newAPIError разбирает тело неуспешного ответа
func newAPIError(status int, statusText string, body []byte) *APIError {
	apiErr := &APIError{HTTPStatus: status, StatusText: statusText}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil || envelope == nil {
		apiErr.Malformed = true
		return apiErr
	}

	if raw, ok := envelope["errors"]; ok {
		fields, err := decodeOrderedObject(raw)
		if err == nil {
			apiErr.FieldErrors = fields
			apiErr.HasFieldErrors = true
		}
	}

	if raw, ok := envelope["message"]; ok {
		var msg string
		if err := json.Unmarshal(raw, &msg); err == nil && msg != "" {
			apiErr.Message = &msg
		}
	}

	return apiErr
}

// decodeOrderedObject читает JSON-объект, сохраняя порядок ключей
func decodeOrderedObject(raw json.RawMessage) ([]FieldError, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errNotObject
	}

	out := []FieldError{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := keyTok.(string)

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		out = append(out, FieldError{Field: key, Message: scalarText(value)})
	}

	return out, nil
}

// scalarText текстовое представление значения как при склейке в строку
func scalarText(value json.RawMessage) string {
	var s string
	if err := json.Unmarshal(value, &s); err == nil {
		return s
	}
	trimmed := strings.TrimSpace(string(value))
	if trimmed == "null" {
		return ""
	}
	return trimmed
}
