package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/joho/godotenv"
)

const (
	DefaultCookieName    = "accessToken"
	DefaultCookieDomain  = "localhost"
	DefaultCookieMaxAge  = 86_400_000 * time.Millisecond
	DefaultJWTExpiration = 24 * time.Hour
)

type Config struct {
	ServiceName string
	ServerPort  int
	LogLevel    string

	DatabaseURL string

	JWTSecret     []byte
	JWTExpiration time.Duration

	CookieName   string
	CookieDomain string
	CookieMaxAge time.Duration
	CookieSecure bool

	AdminEmail    string
	AdminPassword string

	KafkaBrokers []string
	EventsTopic  string

	CORSOrigins []string
}

// Load reads .env (if present) and then the process environment.
func Load() Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("notice: .env file not found: %v. Using system environment variables", err)
	}

	return Config{
		ServiceName: EnvDefault("SERVICE_NAME", "accounts-admin"),
		ServerPort:  EnvIntDefault("SERVER_PORT", 8080),
		LogLevel:    EnvDefault("LOG_LEVEL", "info"),

		DatabaseURL: os.Getenv("DATABASE_URL"),

		JWTSecret:     []byte(os.Getenv("JWT_SECRET")),
		JWTExpiration: EnvDurationDefault("JWT_EXPIRATION", DefaultJWTExpiration),

		CookieName:   EnvDefault("ACCESS_TOKEN_COOKIE_NAME", DefaultCookieName),
		CookieDomain: EnvDefault("COOKIE_DOMAIN", DefaultCookieDomain),
		CookieMaxAge: time.Duration(EnvIntDefault("COOKIE_MAX_AGE", int(DefaultCookieMaxAge/time.Millisecond))) * time.Millisecond,
		CookieSecure: EnvBoolDefault("COOKIE_SECURE", false),

		AdminEmail:    strings.ToLower(strings.TrimSpace(os.Getenv("ADMIN_EMAIL"))),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),

		KafkaBrokers: CSV(os.Getenv("KAFKA_BROKERS")),
		EventsTopic:  EnvDefault("EVENTS_TOPIC", "account_events"),

		CORSOrigins: CSV(os.Getenv("CORS_ORIGINS")),
	}
}

func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.DatabaseURL, validation.Required),
		validation.Field(&c.JWTSecret, validation.Required),
		validation.Field(&c.JWTExpiration, validation.Min(time.Duration(0))),
		validation.Field(&c.CookieName, validation.Required),
		validation.Field(&c.CookieMaxAge, validation.Required, validation.Min(time.Millisecond)),
		validation.Field(&c.ServerPort, validation.Min(1), validation.Max(65535)),
		validation.Field(&c.AdminPassword, validation.By(requiredWith(c.AdminEmail))),
	)
}

func requiredWith(other string) validation.RuleFunc {
	return func(value interface{}) error {
		if other == "" {
			return nil
		}
		return validation.Validate(value, validation.Required)
	}
}

func (c Config) Addr() string {
	return ":" + strconv.Itoa(c.ServerPort)
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		invalidEnv(key, v, err, def)
		return def
	}
	return n
}

func EnvBoolDefault(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		invalidEnv(key, v, err, def)
		return def
	}
	return b
}

// EnvDurationDefault accepts plain seconds ("3600") or a Go duration ("1h").
func EnvDurationDefault(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		invalidEnv(key, v, err, def)
		return def
	}
	return d
}

func invalidEnv(key, value string, err error, def any) {
	log.Printf("notice: invalid %s=%q: %v. Using default %v", key, value, err, def)
}
