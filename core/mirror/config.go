package mirror

// Config holds configuration for the mirror document store.
type Config struct {
	// Driver selects the store implementation (firebase, memory).
	Driver string `mapstructure:"driver" default:"firebase"`
	// DatabaseURL is the realtime database URL.
	DatabaseURL string `mapstructure:"database_url" default:""`
	// CredentialsFile is the path to the service account JSON key.
	CredentialsFile string `mapstructure:"credentials_file" default:"serviceAccountKey.json"`
}
