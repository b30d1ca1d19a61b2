package catalog

// Config holds configuration for the remote catalog API.
type Config struct {
	// BaseURL is the root of the catalog REST API.
	BaseURL string `mapstructure:"base_url" default:"https://api.moysklad.ru/api/remap/1.2"`
	// Token is the bearer token used for every request.
	Token string `mapstructure:"token" default:""`
	// PageLimit is the page size requested from paginated endpoints.
	PageLimit int `mapstructure:"page_limit" default:"1000"`
	// RequestsPerSecond paces outgoing requests. Zero disables pacing.
	RequestsPerSecond float64 `mapstructure:"requests_per_second" default:"5"`
	// TimeoutSeconds bounds a single HTTP request.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
