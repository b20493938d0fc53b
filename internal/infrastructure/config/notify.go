package config

// NotifyConfig configures the optional NATS run-finished notification.
type NotifyConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	URL     string `mapstructure:"url" validate:"required_if=Enabled true"`
	Subject string `mapstructure:"subject" validate:"required_if=Enabled true"`
}
