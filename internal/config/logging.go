package config

// LoggingConfig holds log output settings
type LoggingConfig struct {
	Level  string
	Format string
}

// LoadLoggingConfig loads logging configuration from environment variables
func LoadLoggingConfig(getenv func(string) string) LoggingConfig {
	config := LoggingConfig{
		Level:  getenv("LOG_LEVEL"),
		Format: getenv("LOG_FORMAT"),
	}
	if config.Level == "" {
		config.Level = "info"
	}
	if config.Format == "" {
		config.Format = "text"
	}
	return config
}
