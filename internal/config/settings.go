package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Settings struct {
	Env             string        `mapstructure:"ENV"`
	Port            string        `mapstructure:"PORT"`
	LogLevel        string        `mapstructure:"LOG_LEVEL"`
	DatabaseDSN     string        `mapstructure:"DATABASE_DSN"`
	AutoMigrate     bool          `mapstructure:"AUTO_MIGRATE"`
	JWTSecret       string        `mapstructure:"JWT_SECRET"`
	TokenTTL        time.Duration `mapstructure:"TOKEN_TTL"`
	CookieDomain    string        `mapstructure:"COOKIE_DOMAIN"`
	AllowedOrigins  []string      `mapstructure:"ALLOWED_ORIGINS"`
	AttemptDuration time.Duration `mapstructure:"ATTEMPT_DURATION"`
	AttemptRetain   time.Duration `mapstructure:"ATTEMPT_RETAIN"`
	SubmitTimeout   time.Duration `mapstructure:"SUBMIT_TIMEOUT"`
	GeminiModel     string        `mapstructure:"GEMINI_MODEL"`
	GeminiAPIKey    string        `mapstructure:"GEMINI_API_KEY"`
}

var current *Settings

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", "development")
	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DATABASE_DSN", "")
	v.SetDefault("AUTO_MIGRATE", true)
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("TOKEN_TTL", "24h")
	v.SetDefault("COOKIE_DOMAIN", "")
	v.SetDefault("ALLOWED_ORIGINS", []string{"http://localhost:3000"})
	v.SetDefault("ATTEMPT_DURATION", "600s")
	v.SetDefault("ATTEMPT_RETAIN", "30m")
	v.SetDefault("SUBMIT_TIMEOUT", "10s")
	v.SetDefault("GEMINI_MODEL", "gemini-2.0-flash")
	v.SetDefault("GEMINI_API_KEY", "")
}

// Load reads config.yaml (optional) from the working directory and overrides
// every key with APTITUDE_<KEY> environment variables.
func Load() (*Settings, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix("APTITUDE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("unable to decode settings: %w", err)
	}
	if s.AttemptDuration < time.Second {
		return nil, fmt.Errorf("attempt duration must be at least one second, got %s", s.AttemptDuration)
	}
	return &s, nil
}

func Init() *Settings {
	s, err := Load()
	if err != nil {
		panic(err)
	}
	current = s
	InitLogger(s.Env, s.LogLevel)
	return s
}

// Get returns the settings loaded by Init, or the defaults if Init was never called.
func Get() *Settings {
	if current == nil {
		s, err := Load()
		if err != nil {
			panic(err)
		}
		current = s
	}
	return current
}

func (s *Settings) IsProduction() bool {
	return s.Env == "production"
}

// AttemptSeconds is the countdown every new attempt starts with.
func (s *Settings) AttemptSeconds() int {
	return int(s.AttemptDuration / time.Second)
}
