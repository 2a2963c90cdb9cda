package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	Realtime RealtimeConfig `mapstructure:"realtime" validate:"required"`
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
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
}

// RealtimeConfig contains settings for the WebSocket synchronization layer.
type RealtimeConfig struct {
	// SendBufferSize is the per-connection outbound queue length. When the
	// queue is full, events for that connection are dropped (best-effort
	// delivery, see internal/realtime).
	SendBufferSize int `mapstructure:"send_buffer_size" validate:"required,gt=0"`

	// MaxChannels caps the number of channels one connection may subscribe
	// to, bounding per-socket memory.
	MaxChannels int `mapstructure:"max_channels" validate:"required,gt=0"`
}
