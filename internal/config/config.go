package config

// Environment names recognized in ServerConfig.Env.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	Env      string `mapstructure:"env"       validate:"required,oneof=development production"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// IsDevelopment reports whether the server runs in development mode.
// Development mode adds stack traces to 500 responses and logs sample API
// keys at startup for manual testing.
func (c ServerConfig) IsDevelopment() bool {
	return c.Env == EnvDevelopment
}
