package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	SRS      SRSConfig      `mapstructure:"srs"      validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret" validate:"required,min=32"`
}

// SRSConfig carries the per-domain scheduling tuning.
type SRSConfig struct {
	Word     DomainTuning `mapstructure:"word"     validate:"required"`
	Sentence DomainTuning `mapstructure:"sentence" validate:"required"`
	Kana     DomainTuning `mapstructure:"kana"     validate:"required"`
}

// DomainTuning is the scheduling tuning for one learning domain.
type DomainTuning struct {
	BaseIntervalMinutes int `mapstructure:"base_interval_minutes" validate:"gt=0"`
	TimeLimitSeconds    int `mapstructure:"time_limit_seconds"    validate:"gt=0"`
}
