package notify

// Config holds configuration for the downstream image notification.
type Config struct {
	// URL receives the product image list. Empty disables the notification.
	URL string `mapstructure:"url" default:""`
	// Token is sent verbatim in the Authorization header.
	Token string `mapstructure:"token" default:""`
	// TimeoutSeconds bounds the request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
