package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultSpecializations специализации, если CLINIC_SPECIALIZATIONS не задан
var DefaultSpecializations = []string{
	"Cardiology",
	"Dermatology",
	"General Medicine",
	"Neurology",
	"Orthopedics",
	"Pediatrics",
}

type Config struct {
	TelegramToken string `mapstructure:"TELEGRAM_TOKEN"`
	DBDSN         string `mapstructure:"DB_DSN"`
	Environment   string `mapstructure:"ENV"`

	ClinicAPIURL    string   `mapstructure:"CLINIC_API_URL"`
	Specializations []string `mapstructure:"CLINIC_SPECIALIZATIONS"`
	Timezone        string   `mapstructure:"CLINIC_TIMEZONE"`
	APIRateLimit    float64  `mapstructure:"API_RATE_LIMIT"`
	APITimeout      time.Duration

	RedisAddr  string `mapstructure:"REDIS_ADDR"`
	SessionTTL time.Duration

	LoginRedirectDelay time.Duration
	StateIdleTimeout   time.Duration
	StatePurgeInterval time.Duration

	MetricsAddr   string `mapstructure:"METRICS_ADDR"`
	MigrationsDir string `mapstructure:"MIGRATIONS_DIR"`
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	return FromEnv(os.Getenv)
}

// FromEnv собирает конфиг из функции чтения переменных (os.Getenv в проде)
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		DBDSN:         getenv("DB_DSN"),
		TelegramToken: getenv("TELEGRAM_TOKEN"),
		Environment:   getenv("ENV"),
		ClinicAPIURL:  strings.TrimRight(getenv("CLINIC_API_URL"), "/"),
		Timezone:      getenv("CLINIC_TIMEZONE"),
		RedisAddr:     getenv("REDIS_ADDR"),
		MetricsAddr:   getenv("METRICS_ADDR"),
		MigrationsDir: getenv("MIGRATIONS_DIR"),
	}

	// Устанавливаем дефолтные значения
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.Timezone == "" {
		cfg.Timezone = "Local"
	}
	if cfg.MigrationsDir == "" {
		cfg.MigrationsDir = "migrations"
	}

	cfg.Specializations = parseList(getenv("CLINIC_SPECIALIZATIONS"))
	if len(cfg.Specializations) == 0 {
		cfg.Specializations = DefaultSpecializations
	}

	var err error
	if cfg.APIRateLimit, err = parseFloat(getenv, "API_RATE_LIMIT", 10); err != nil {
		return nil, err
	}
	if cfg.APITimeout, err = parseDuration(getenv, "API_TIMEOUT", 15*time.Second); err != nil {
		return nil, err
	}
	if cfg.SessionTTL, err = parseDuration(getenv, "SESSION_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.LoginRedirectDelay, err = parseDuration(getenv, "LOGIN_REDIRECT_DELAY", 2*time.Second); err != nil {
		return nil, err
	}
	if cfg.StateIdleTimeout, err = parseDuration(getenv, "STATE_IDLE_TIMEOUT", 30*time.Minute); err != nil {
		return nil, err
	}
	if cfg.StatePurgeInterval, err = parseDuration(getenv, "STATE_PURGE_INTERVAL", 10*time.Minute); err != nil {
		return nil, err
	}

	// Проверяем обязательные поля
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is required but not set")
	}
	if cfg.ClinicAPIURL == "" {
		return nil, fmt.Errorf("CLINIC_API_URL is required but not set")
	}

	if _, err := cfg.Location(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) GetDBDSN() string {
	return c.DBDSN
}

// Location часовой пояс клиники, в котором считается "сегодня" и показывается время
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid CLINIC_TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func parseList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseDuration(getenv func(string) string, key string, def time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(getenv(key))
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("invalid %s %q", key, raw)
	}
	return d, nil
}

func parseFloat(getenv func(string) string, key string, def float64) (float64, error) {
	raw := strings.TrimSpace(getenv(key))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("invalid %s %q", key, raw)
	}
	return v, nil
}
