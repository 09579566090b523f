package logger

// Config holds configuration for the logger.
type Config struct {
	// Level is the minimum level logged (debug, info, warn, error).
	Level string `mapstructure:"level" default:"info"`
	// Format is the encoding: console for humans, json for machines.
	Format string `mapstructure:"format" default:"console"`
}
