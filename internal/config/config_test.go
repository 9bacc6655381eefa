package config

import (
	"bytes"
	"log"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "sqlite::memory:")
	t.Setenv("JWT_SECRET", "secret")

	cfg := Load()

	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, DefaultCookieName, cfg.CookieName)
	assert.Equal(t, DefaultCookieDomain, cfg.CookieDomain)
	assert.Equal(t, 24*time.Hour, cfg.CookieMaxAge)
	assert.Equal(t, DefaultJWTExpiration, cfg.JWTExpiration)
	assert.Equal(t, "account_events", cfg.EventsTopic)
	assert.Nil(t, cfg.KafkaBrokers)
	require.NoError(t, cfg.Validate())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/admin")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("JWT_EXPIRATION", "0")
	t.Setenv("ACCESS_TOKEN_COOKIE_NAME", "sid")
	t.Setenv("COOKIE_DOMAIN", ".example.com")
	t.Setenv("COOKIE_MAX_AGE", "60000")
	t.Setenv("ADMIN_EMAIL", " Admin@Example.com ")
	t.Setenv("ADMIN_PASSWORD", "secret")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,,")

	cfg := Load()

	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, time.Duration(0), cfg.JWTExpiration)
	assert.Equal(t, "sid", cfg.CookieName)
	assert.Equal(t, ".example.com", cfg.CookieDomain)
	assert.Equal(t, time.Minute, cfg.CookieMaxAge)
	assert.Equal(t, "admin@example.com", cfg.AdminEmail)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	require.NoError(t, cfg.Validate())
}

func TestValidate_MissingRequired(t *testing.T) {
	cfg := Config{
		ServerPort:   8080,
		CookieName:   DefaultCookieName,
		CookieMaxAge: DefaultCookieMaxAge,
		AdminEmail:   "admin@example.com",
	}

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DatabaseURL")
	assert.Contains(t, err.Error(), "JWTSecret")
	assert.Contains(t, err.Error(), "AdminPassword")
}

func TestEnvDurationDefault(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Duration
	}{
		{name: "empty", value: "", want: time.Hour},
		{name: "seconds", value: "90", want: 90 * time.Second},
		{name: "duration", value: "15m", want: 15 * time.Minute},
		{name: "garbage", value: "soon", want: time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_DURATION", tt.value)
			assert.Equal(t, tt.want, EnvDurationDefault("TEST_DURATION", time.Hour))
		})
	}
}

func TestEnvDefaults_InvalidValueLogsNotice(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	tests := []struct {
		name  string
		key   string
		value string
		read  func(key string) any
		want  any
	}{
		{
			name:  "int",
			key:   "TEST_INT",
			value: "80a",
			read:  func(key string) any { return EnvIntDefault(key, 8080) },
			want:  8080,
		},
		{
			name:  "bool",
			key:   "TEST_BOOL",
			value: "yes please",
			read:  func(key string) any { return EnvBoolDefault(key, true) },
			want:  true,
		},
		{
			name:  "duration",
			key:   "TEST_DURATION",
			value: "soon",
			read:  func(key string) any { return EnvDurationDefault(key, time.Hour) },
			want:  time.Hour,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			t.Setenv(tt.key, tt.value)

			assert.Equal(t, tt.want, tt.read(tt.key))
			assert.Contains(t, buf.String(), "notice: invalid "+tt.key)
			assert.Contains(t, buf.String(), tt.value)
		})
	}
}

func TestEnvDefaults_ValidValueIsQuiet(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	t.Setenv("TEST_INT", "9090")
	assert.Equal(t, 9090, EnvIntDefault("TEST_INT", 8080))
	assert.Empty(t, buf.String())
}
