package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	DatabaseURL string

	JWTSecret       string
	Issuer          string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	// AccessTokenTTLRaw is the configured text, echoed to clients as expiresIn.
	AccessTokenTTLRaw string
	PasswordPepper    string

	RedisAddress  string
	RedisPassword string
	RedisDB       int

	HTTPAddress      string
	AllowedOrigins   []string
	AllowCredentials bool
}

var required = []string{"DATABASE_URL", "JWT_SECRET"}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(".")

	v.AutomaticEnv()
	v.SetDefault("JWT_ISSUER", "tags-service")
	v.SetDefault("ACCESS_TOKEN_TTL", "30m")
	v.SetDefault("REFRESH_TOKEN_TTL", "30d")
	v.SetDefault("HTTP_ADDRESS", ":8080")
	v.SetDefault("REDIS_DB", 0)
	for _, key := range []string{
		"DATABASE_URL", "JWT_SECRET", "PASSWORD_PEPPER",
		"REDIS_ADDRESS", "REDIS_PASSWORD",
		"ALLOWED_ORIGINS", "ALLOW_CREDENTIALS",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, err
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	for _, key := range required {
		if strings.TrimSpace(v.GetString(key)) == "" {
			return nil, fmt.Errorf("%s is not set", key)
		}
	}

	accessRaw := v.GetString("ACCESS_TOKEN_TTL")
	accessTTL, err := ParseTTL(accessRaw)
	if err != nil {
		return nil, fmt.Errorf("ACCESS_TOKEN_TTL: %w", err)
	}
	refreshTTL, err := ParseTTL(v.GetString("REFRESH_TOKEN_TTL"))
	if err != nil {
		return nil, fmt.Errorf("REFRESH_TOKEN_TTL: %w", err)
	}

	return &Config{
		DatabaseURL:       v.GetString("DATABASE_URL"),
		JWTSecret:         v.GetString("JWT_SECRET"),
		Issuer:            v.GetString("JWT_ISSUER"),
		AccessTokenTTL:    accessTTL,
		RefreshTokenTTL:   refreshTTL,
		AccessTokenTTLRaw: accessRaw,
		PasswordPepper:    v.GetString("PASSWORD_PEPPER"),
		RedisAddress:      v.GetString("REDIS_ADDRESS"),
		RedisPassword:     v.GetString("REDIS_PASSWORD"),
		RedisDB:           v.GetInt("REDIS_DB"),
		HTTPAddress:       v.GetString("HTTP_ADDRESS"),
		AllowedOrigins:    splitList(v.GetString("ALLOWED_ORIGINS")),
		AllowCredentials:  v.GetBool("ALLOW_CREDENTIALS"),
	}, nil
}

// ParseTTL accepts Go durations ("90s", "30m") and whole days ("30d").
func ParseTTL(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if days, ok := strings.CutSuffix(s, "d"); ok {
		n, err := strconv.Atoi(days)
		if err != nil || n <= 0 {
			return 0, fmt.Errorf("invalid day count %q", s)
		}
		return time.Duration(n) * 24 * time.Hour, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("ttl must be positive, got %q", s)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
