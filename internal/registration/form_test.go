package registration

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Freeeeeet/clinic_booking_bot/internal/clinicapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filledForm() *Form {
	f := NewForm()
	f.Set(FieldName, "Ann Smith")
	f.Set(FieldAge, "30")
	f.Set(FieldDateOfBirth, "1994-02-10")
	f.Set(FieldGender, "FEMALE")
	f.Set(FieldPersonalNumber, "12345678901")
	f.Set(FieldAddress, "1 Main St")
	f.Set(FieldEmail, "ann@example.com")
	f.Set(FieldGuardianName, "Bob Smith")
	f.Set(FieldGuardianRelation, "Father")
	f.Set(FieldGuardianPhoneNumber, "+1 (555) 123-4567")
	f.Set(FieldPassword, "secret123")
	f.Set(FieldConfirmPassword, "secret123")
	return f
}

func fixedNow() time.Time {
	return time.Date(2024, 5, 1, 12, 0, 0, 0, time.Local)
}

func TestCheckPasswordMatch(t *testing.T) {
	f := NewForm()
	f.Set(FieldPassword, "abc")
	f.Set(FieldConfirmPassword, "abd")
	assert.False(t, f.CheckPasswordMatch())
	assert.True(t, f.ConfirmInvalid())

	f.Set(FieldConfirmPassword, "abc")
	assert.True(t, f.CheckPasswordMatch())
	assert.False(t, f.ConfirmInvalid())

	// пустое подтверждение ещё не ошибка
	f.Set(FieldConfirmPassword, "")
	assert.True(t, f.CheckPasswordMatch())
}

func TestSnapshot_Independent(t *testing.T) {
	f := filledForm()
	snap := f.Snapshot()

	f.Set(FieldEmail, "other@example.com")
	f.Reset()

	assert.Equal(t, "ann@example.com", snap.Get(FieldEmail))
	assert.Empty(t, f.Get(FieldName))
}

func TestBeginSubmit_SingleClaim(t *testing.T) {
	f := NewForm()

	require.True(t, f.BeginSubmit())
	assert.False(t, f.BeginSubmit())

	f.EndSubmit()
	assert.True(t, f.BeginSubmit())
}

func TestForm_ConcurrentAccess(t *testing.T) {
	f := filledForm()

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				f.Set(FieldAddress, "2 Side St")
				f.CheckPasswordMatch()
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = f.Payload()
				_ = f.Snapshot().Get(FieldAddress)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, "2 Side St", f.Get(FieldAddress))
}

func TestValidate_Valid(t *testing.T) {
	v := NewValidator(fixedNow)
	assert.Nil(t, v.Validate(filledForm()))
}

func TestValidate_Issues(t *testing.T) {
	cases := []struct {
		name  string
		field string
		value string
		want  string
	}{
		{name: "short name", field: FieldName, value: "A", want: "Name must be between 2 and 100 characters"},
		{name: "missing age", field: FieldAge, value: "", want: "Age cannot be null"},
		{name: "negative age", field: FieldAge, value: "-1", want: "Age must be positive"},
		{name: "future birth date", field: FieldDateOfBirth, value: "2030-01-01", want: "Date of birth must be in the past"},
		{name: "bad birth date", field: FieldDateOfBirth, value: "10.02.1994", want: "Date of birth must be a date in YYYY-MM-DD format"},
		{name: "bad email", field: FieldEmail, value: "not-an-email", want: "Email should be valid"},
		{name: "bad phone", field: FieldGuardianPhoneNumber, value: "12ab", want: "Invalid phone number format"},
		{name: "short password", field: FieldPassword, value: "short", want: "Password must be at least 8 characters long"},
		{name: "blank address", field: FieldAddress, value: "   ", want: "Address cannot be blank"},
	}

	v := NewValidator(fixedNow)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := filledForm()
			f.Set(tc.field, tc.value)

			issues := v.Validate(f)
			require.Len(t, issues, 1)
			assert.Equal(t, tc.field, issues[0].Field)
			assert.Equal(t, tc.want, issues[0].Message)
		})
	}
}

func TestValidate_IssuesInFormOrder(t *testing.T) {
	issues := NewValidator(fixedNow).Validate(NewForm())
	require.Len(t, issues, len(Fields))
	for i, field := range Fields {
		assert.Equal(t, field.Key, issues[i].Field)
	}
}

func TestPayload(t *testing.T) {
	f := filledForm()
	payload := f.Payload()

	assert.Equal(t, 30, payload[FieldAge])
	assert.Equal(t, "secret123", payload[FieldConfirmPassword])
	assert.Len(t, payload, len(Fields))

	f.Set(FieldAge, "42years")
	assert.Equal(t, 42, f.Payload()[FieldAge])

	f.Set(FieldAge, "abc")
	assert.Nil(t, f.Payload()[FieldAge])

	f.Set(FieldAge, "")
	assert.Equal(t, "", f.Payload()[FieldAge])
}

func TestParseInt(t *testing.T) {
	cases := map[string]struct {
		n  int
		ok bool
	}{
		"30":    {30, true},
		" 7":    {7, true},
		"-3x":   {-3, true},
		"+12":   {12, true},
		"x1":    {0, false},
		"-":     {0, false},
		"":      {0, false},
		"4.5":   {4, true},
		"12 34": {12, true},
	}
	for in, want := range cases {
		n, ok := ParseInt(in)
		assert.Equal(t, want.ok, ok, in)
		assert.Equal(t, want.n, n, in)
	}
}

func TestErrorMessage(t *testing.T) {
	msg := "Email exists"
	cases := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "message",
			err:  &clinicapi.APIError{HTTPStatus: 409, Message: &msg},
			want: "Email exists",
		},
		{
			name: "field errors",
			err: &clinicapi.APIError{HTTPStatus: 400, HasFieldErrors: true, FieldErrors: []clinicapi.FieldError{
				{Field: "email", Message: "Email should be valid"},
				{Field: "age", Message: "Age must be positive"},
			}},
			want: "Registration failed: Email should be valid Age must be positive",
		},
		{
			name: "no details",
			err:  &clinicapi.APIError{HTTPStatus: 500},
			want: GenericFailureMessage,
		},
		{
			name: "malformed body",
			err:  &clinicapi.APIError{HTTPStatus: 502, Malformed: true},
			want: UnexpectedErrorMessage,
		},
		{
			name: "transport",
			err:  &clinicapi.TransportError{Op: "register_patient", Err: errors.New("connection refused")},
			want: UnexpectedErrorMessage,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ErrorMessage(tc.err))
		})
	}
}

func TestFieldNavigation(t *testing.T) {
	next, ok := NextField(FieldName)
	require.True(t, ok)
	assert.Equal(t, FieldAge, next.Key)

	_, ok = NextField(FieldConfirmPassword)
	assert.False(t, ok)

	f, ok := FieldByKey(FieldPassword)
	require.True(t, ok)
	assert.True(t, f.Secret)
}
