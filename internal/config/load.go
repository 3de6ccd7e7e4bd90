package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load configuration from environment variables and optionally a config file.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	// Optional config file in the working directory. Missing file is fine;
	// a malformed one is not.
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	// Environment variables: AVVAI_SERVER_PORT overrides server.port.
	v.SetEnvPrefix("AVVAI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvKeys(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Namespace(), fe.Tag()))
			}
			return nil, fmt.Errorf("invalid configuration: %s", strings.Join(fields, ", "))
		}
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 3001)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("database.path", "data/avvai.db")
	v.SetDefault("content.lessons_dir", "data/lessons")
	v.SetDefault("content.media_dir", "data/media")
	v.SetDefault("scheduler.due_limit", 30)
	v.SetDefault("auth.disabled", false)
	v.SetDefault("llm.model_name", "gemini-2.5-flash-lite")
	v.SetDefault("llm.max_retries", 3)
	v.SetDefault("llm.retry_delay_seconds", 2)
	v.SetDefault("dictionary.cache_path", "data/dictionary-cache.json")
}

// bindEnvKeys registers every config key with viper so AutomaticEnv picks up
// environment variables for keys that have no default and appear in no file.
func bindEnvKeys(v *viper.Viper) {
	keys := []string{
		"server.port",
		"server.log_level",
		"database.path",
		"content.lessons_dir",
		"content.media_dir",
		"scheduler.due_limit",
		"auth.disabled",
		"auth.jwt_secret",
		"auth.allowed_emails",
		"llm.gemini_api_key",
		"llm.model_name",
		"llm.max_retries",
		"llm.retry_delay_seconds",
		"dictionary.cache_path",
	}
	for _, key := range keys {
		// BindEnv only fails on an empty key.
		_ = v.BindEnv(key)
	}
}
