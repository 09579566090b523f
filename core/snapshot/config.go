package snapshot

// Config holds settings for reading the source export.
type Config struct {
	// Delimiter is the field separator of the export.
	Delimiter string `mapstructure:"delimiter" default:","`
	// FallbackEncoding is tried once when the export is not valid UTF-8
	// (latin-1, windows-1252).
	FallbackEncoding string `mapstructure:"fallback_encoding" default:"latin-1"`
}
