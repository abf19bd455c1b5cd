package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envFrom(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func baseEnv() map[string]string {
	return map[string]string{
		"DB_DSN":         "postgres://localhost/clinic",
		"TELEGRAM_TOKEN": "123:abc",
		"CLINIC_API_URL": "http://clinic.local/",
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(envFrom(baseEnv()))
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "http://clinic.local", cfg.ClinicAPIURL)
	assert.Equal(t, DefaultSpecializations, cfg.Specializations)
	assert.Equal(t, 2*time.Second, cfg.LoginRedirectDelay)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 15*time.Second, cfg.APITimeout)
	assert.Equal(t, float64(10), cfg.APIRateLimit)
	assert.Equal(t, "migrations", cfg.MigrationsDir)
}

func TestFromEnv_Overrides(t *testing.T) {
	env := baseEnv()
	env["CLINIC_SPECIALIZATIONS"] = " Cardiology , ,ENT"
	env["LOGIN_REDIRECT_DELAY"] = "5s"
	env["CLINIC_TIMEZONE"] = "UTC"
	env["API_RATE_LIMIT"] = "2.5"

	cfg, err := FromEnv(envFrom(env))
	require.NoError(t, err)

	assert.Equal(t, []string{"Cardiology", "ENT"}, cfg.Specializations)
	assert.Equal(t, 5*time.Second, cfg.LoginRedirectDelay)
	assert.Equal(t, 2.5, cfg.APIRateLimit)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
}

func TestFromEnv_Required(t *testing.T) {
	for _, key := range []string{"DB_DSN", "TELEGRAM_TOKEN", "CLINIC_API_URL"} {
		env := baseEnv()
		delete(env, key)
		_, err := FromEnv(envFrom(env))
		assert.ErrorContains(t, err, key)
	}
}

func TestFromEnv_InvalidValues(t *testing.T) {
	cases := map[string]string{
		"SESSION_TTL":     "forever",
		"API_RATE_LIMIT":  "-1",
		"CLINIC_TIMEZONE": "Mars/Olympus",
	}
	for key, value := range cases {
		env := baseEnv()
		env[key] = value
		_, err := FromEnv(envFrom(env))
		assert.Error(t, err, key)
	}
}
