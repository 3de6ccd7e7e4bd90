package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server     ServerConfig     `mapstructure:"server" validate:"required"`
	Database   DatabaseConfig   `mapstructure:"database" validate:"required"`
	Content    ContentConfig    `mapstructure:"content" validate:"required"`
	Scheduler  SchedulerConfig  `mapstructure:"scheduler" validate:"required"`
	Auth       AuthConfig       `mapstructure:"auth"`
	LLM        LLMConfig        `mapstructure:"llm" validate:"required"`
	Dictionary DictionaryConfig `mapstructure:"dictionary" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig locates the scheduler database file.
type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

// ContentConfig locates the on-disk lesson and media directories.
type ContentConfig struct {
	LessonsDir string `mapstructure:"lessons_dir" validate:"required"`
	MediaDir   string `mapstructure:"media_dir" validate:"required"`
}

// SchedulerConfig tunes the review scheduler.
type SchedulerConfig struct {
	DueLimit int `mapstructure:"due_limit" validate:"required,gt=0"`
}

// AuthConfig contains admin authentication settings. When Disabled is true
// the admin routes accept every request, which is only suitable for local
// development.
type AuthConfig struct {
	Disabled      bool     `mapstructure:"disabled"`
	JWTSecret     string   `mapstructure:"jwt_secret" validate:"required_unless=Disabled true,omitempty,min=32"`
	AllowedEmails []string `mapstructure:"allowed_emails"`
}

// LLMConfig contains all LLM integration related settings.
type LLMConfig struct {
	GeminiAPIKey      string `mapstructure:"gemini_api_key" validate:"required"`
	ModelName         string `mapstructure:"model_name" validate:"required"`
	MaxRetries        int    `mapstructure:"max_retries" validate:"gte=0"`
	RetryDelaySeconds int    `mapstructure:"retry_delay_seconds" validate:"gte=0"`
}

// DictionaryConfig locates the persistent dictionary cache.
type DictionaryConfig struct {
	CachePath string `mapstructure:"cache_path" validate:"required"`
}
