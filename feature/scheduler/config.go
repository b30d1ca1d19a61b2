package scheduler

// Config holds configuration for the sync loop.
type Config struct {
	// IntervalSeconds is the pause between the end of one cycle and the start of the next.
	IntervalSeconds int `mapstructure:"interval_seconds" default:"60"`
	// ImageCDNPrefix marks product image links that must not be overwritten.
	ImageCDNPrefix string `mapstructure:"image_cdn_prefix" default:"https://imagedelivery.net"`
}
