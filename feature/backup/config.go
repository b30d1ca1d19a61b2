package backup

// Config holds configuration for mirror snapshots and restores.
type Config struct {
	// File is the default local backup restored when no source is given.
	File string `mapstructure:"file" default:"backup.json"`
	// Prefix is the object name prefix of snapshots in the bucket.
	Prefix string `mapstructure:"prefix" default:"snapshots/"`
	// Keep is the number of snapshots retained. Zero keeps all of them.
	Keep int `mapstructure:"keep" default:"10"`
}
