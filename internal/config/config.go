package config

import (
	"errors"
	"io/fs"

	"github.com/spf13/viper"
)

type Config struct {
	ServerPort string `mapstructure:"SERVER_PORT"`
	GinMode    string `mapstructure:"GIN_MODE"`

	DbName string `mapstructure:"POSTGRES_DB"`
	DbHost string `mapstructure:"POSTGRES_HOST"`
	DbPort string `mapstructure:"POSTGRES_PORT"`
	DbUser string `mapstructure:"POSTGRES_USER"`
	DbPas  string `mapstructure:"POSTGRES_PASSWORD"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`

	SmsEnabled    bool   `mapstructure:"SMS_ENABLED"`
	SmsAccountSID string `mapstructure:"SMS_ACCOUNT_SID"`
	SmsAuthToken  string `mapstructure:"SMS_AUTH_TOKEN"`
	SmsFromNumber string `mapstructure:"SMS_FROM_NUMBER"`
}

// LoadConfig reads .env from the given path when present, then lets the
// environment override. The error is returned rather than fatal'd, the
// caller decides whether a missing config is survivable.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path + "/.env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("POSTGRES_PORT", "5432")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("SMS_ENABLED", false)

	// AutomaticEnv alone does not surface env-only keys to Unmarshal.
	for _, key := range []string{
		"POSTGRES_DB", "POSTGRES_HOST", "POSTGRES_USER", "POSTGRES_PASSWORD",
		"REDIS_PASSWORD", "SMS_ACCOUNT_SID", "SMS_AUTH_TOKEN", "SMS_FROM_NUMBER",
	} {
		_ = v.BindEnv(key)
	}

	// A missing .env is fine, env vars still apply.
	if err := v.ReadInConfig(); err != nil {
		_, notFound := err.(viper.ConfigFileNotFoundError)
		if !notFound && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cf := &Config{}
	if err := v.Unmarshal(cf); err != nil {
		return nil, err
	}
	return cf, nil
}
