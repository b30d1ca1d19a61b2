package audit

// Config holds configuration for the raw row dumps.
type Config struct {
	// Sink selects where dumps go (file, storage, none).
	Sink string `mapstructure:"sink" default:"file"`
	// Dir is the local directory used by the file sink.
	Dir string `mapstructure:"dir" default:"json_logs"`
	// Prefix is the object name prefix used by the storage sink.
	Prefix string `mapstructure:"prefix" default:"audit/"`
}
