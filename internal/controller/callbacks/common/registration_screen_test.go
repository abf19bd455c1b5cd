package common

import (
	"testing"

	"github.com/Freeeeeet/clinic_booking_bot/internal/controller/state"
	"github.com/Freeeeeet/clinic_booking_bot/internal/registration"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderRegistrationPrompt(t *testing.T) {
	field, _ := registration.FieldByKey(registration.FieldGender)
	text, kb := RenderRegistrationPrompt(field, false)

	assert.Contains(t, text, "Step 4 of 12")
	genders := buttonsWithPrefix(kb, RegistrationGender)
	require.Len(t, genders, len(registration.Genders))
	assert.Equal(t, "Male", genders[0].Text)
	assert.Equal(t, "reg:gender:MALE", genders[0].CallbackData)

	secret, _ := registration.FieldByKey(registration.FieldPassword)
	text, _ = RenderRegistrationPrompt(secret, true)
	assert.NotContains(t, text, "Step")
	assert.Contains(t, text, "will be deleted")
}

func TestRenderRegistrationSummary(t *testing.T) {
	form := registration.NewForm()
	form.Set(registration.FieldName, "Ann <Smith>")
	form.Set(registration.FieldPassword, "secret123")
	form.Set(registration.FieldConfirmPassword, "secret124")
	form.CheckPasswordMatch()

	issues := registration.Issues{{Field: registration.FieldEmail, Message: "Email cannot be blank"}}
	text, kb := RenderRegistrationSummary(form, registration.InvalidFormWarning, issues)

	assert.Contains(t, text, registration.InvalidFormWarning)
	assert.Contains(t, text, "Ann &lt;Smith&gt;")
	assert.NotContains(t, text, "secret123")
	assert.Contains(t, text, "⚠️ Email cannot be blank")
	assert.Contains(t, text, "⚠️ "+registration.PasswordMismatchError)

	require.Len(t, buttonsWithPrefix(kb, RegistrationSubmit), 1)
	assert.Len(t, buttonsWithPrefix(kb, RegistrationEdit), len(registration.Fields))
}

func TestAdvanceRegistration(t *testing.T) {
	sm := state.NewManager()
	sm.SetData(1, state.DataRegistrationForm, registration.NewForm())

	next, ok := AdvanceRegistration(sm, 1, registration.FieldName)
	require.True(t, ok)
	assert.Equal(t, registration.FieldAge, next.Key)
	assert.Equal(t, state.StateRegistrationField, sm.GetState(1))

	_, ok = AdvanceRegistration(sm, 1, registration.FieldConfirmPassword)
	assert.False(t, ok)
	assert.Equal(t, state.StateNone, sm.GetState(1))

	// форма переживает переход к сводке
	_, err := RegistrationForm(sm, 1)
	require.NoError(t, err)
}

func TestFocusRegistrationField(t *testing.T) {
	sm := state.NewManager()
	sm.SetData(1, state.DataRegistrationForm, registration.NewForm())

	field, ok := FocusRegistrationField(sm, 1, registration.FieldConfirmPassword)
	require.True(t, ok)
	assert.True(t, field.Secret)

	v, _ := sm.GetData(1, state.DataRegistrationField)
	assert.Equal(t, registration.FieldConfirmPassword, v)

	// после одиночной правки сразу сводка
	_, ok = AdvanceRegistration(sm, 1, registration.FieldConfirmPassword)
	assert.False(t, ok)
	_, single := sm.GetData(1, DataRegistrationSingle)
	assert.False(t, single)

	_, ok = FocusRegistrationField(sm, 1, "unknown")
	assert.False(t, ok)
}

func TestRegistrationFormExpired(t *testing.T) {
	_, err := RegistrationForm(state.NewManager(), 1)
	assert.ErrorIs(t, err, ErrFormExpired)
}

func TestStartRegistration(t *testing.T) {
	sm := state.NewManager()
	sm.SetData(1, state.DataLoginEmail, "old@example.com")

	first := StartRegistration(sm, 1)
	assert.Equal(t, registration.FieldName, first.Key)
	assert.Equal(t, state.StateRegistrationField, sm.GetState(1))

	form, err := RegistrationForm(sm, 1)
	require.NoError(t, err)
	assert.Empty(t, form.Get(registration.FieldName))

	// данные прошлого диалога не переживают новый старт
	_, ok := sm.GetData(1, state.DataLoginEmail)
	assert.False(t, ok)
}
