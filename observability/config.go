package observability

// Config configures the OpenTelemetry exporters.
type Config struct {
	// Enabled turns trace and metric export on. When false, Init installs
	// nothing and the no-op globals stay in place.
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`

	// Endpoint is the OTLP HTTP endpoint host:port (e.g. "localhost:4318").
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint"`

	// Insecure allows cleartext connections to the collector.
	Insecure bool `yaml:"insecure" mapstructure:"insecure"`

	// SampleRate is the trace sampling rate (0.0 to 1.0).
	SampleRate float64 `yaml:"sample_rate" mapstructure:"sample_rate"`

	// Interval is the metric export interval (e.g. "15s").
	Interval string `yaml:"interval" mapstructure:"interval"`

	// ServiceVersion tags exported telemetry.
	ServiceVersion string `yaml:"service_version" mapstructure:"service_version"`
}

// ApplyDefaults sets sensible defaults for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.Endpoint == "" {
		c.Endpoint = "localhost:4318"
		c.Insecure = true
	}
	if c.SampleRate == 0 {
		c.SampleRate = 1.0
	}
	if c.Interval == "" {
		c.Interval = "15s"
	}
	if c.ServiceVersion == "" {
		c.ServiceVersion = "1.0.0"
	}
}
