package store

const (
	defaultStatusIndex = "status-index"
	defaultScanLimit   = 100

	// Placeholders used when Endpoint points at a local emulator.
	localRegion          = "ca-central-1"
	localAccessKeyID     = "dummy"
	localSecretAccessKey = "dummy"
)

// Config holds configuration for the todo table.
type Config struct {
	// TableName is the DynamoDB table name. Required.
	TableName string `koanf:"table_name"`

	// Endpoint overrides the DynamoDB endpoint (e.g. "http://localhost:8000").
	// Empty means the default managed endpoint.
	Endpoint string `koanf:"endpoint"`

	// Region is the AWS region. Empty uses the SDK default chain, or
	// "ca-central-1" when Endpoint is set.
	Region string `koanf:"region"`

	// AccessKeyID and SecretAccessKey are only used when Endpoint is set.
	// Default: "dummy"
	AccessKeyID     string `koanf:"access_key_id"`
	SecretAccessKey string `koanf:"secret_access_key"`

	// StatusIndex is the name of the GSI keyed on status.
	// Default: "status-index"
	StatusIndex string `koanf:"status_index"`

	// ScanLimit bounds list results.
	// Default: 100
	ScanLimit int32 `koanf:"scan_limit"`
}

// DefaultConfig returns defaults for everything except TableName.
func DefaultConfig() Config {
	return Config{
		StatusIndex: defaultStatusIndex,
		ScanLimit:   defaultScanLimit,
	}
}

// Local reports whether the config targets an alternate endpoint.
func (c Config) Local() bool {
	return c.Endpoint != ""
}

// validate fills zero values with defaults.
func (c *Config) validate() {
	if c.StatusIndex == "" {
		c.StatusIndex = defaultStatusIndex
	}
	if c.ScanLimit < 1 {
		c.ScanLimit = defaultScanLimit
	}
	if !c.Local() {
		return
	}
	if c.Region == "" {
		c.Region = localRegion
	}
	if c.AccessKeyID == "" {
		c.AccessKeyID = localAccessKeyID
	}
	if c.SecretAccessKey == "" {
		c.SecretAccessKey = localSecretAccessKey
	}
}
