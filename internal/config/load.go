package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	env "github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// FileEnv names the environment variable holding an optional YAML config path.
const FileEnv = "CONFIG_FILE"

// envKeys maps the recognised environment variables to koanf keys. Names are
// matched exactly; anything else in the environment is ignored.
var envKeys = map[string]string{
	"TABLE_NAME":            "store.table_name",
	"DDB_ENDPOINT":          "store.endpoint",
	"AWS_REGION":            "store.region",
	"AWS_ACCESS_KEY_ID":     "store.access_key_id",
	"AWS_SECRET_ACCESS_KEY": "store.secret_access_key",
	"STATUS_INDEX":          "store.status_index",
	"SCAN_LIMIT":            "store.scan_limit",
	"LOG_LEVEL":             "log.level",
	"LOG_FORMAT":            "log.format",
	"DEV_ADDR":              "dev.addr",
}

// Option configures the Load function.
type Option func(*loadOptions)

type loadOptions struct {
	path string
}

// WithFile layers the YAML file at path between the defaults and the
// environment. It takes precedence over CONFIG_FILE.
func WithFile(path string) Option {
	return func(o *loadOptions) {
		o.path = path
	}
}

// Load reads configuration (highest precedence last):
//
//  1. Defaults
//  2. YAML file from WithFile or CONFIG_FILE, when given
//  3. Environment variables
//
// A missing TABLE_NAME is not an error here; the store reports it on first use.
func Load(opts ...Option) (*Config, error) {
	o := &loadOptions{path: os.Getenv(FileEnv)}
	for _, opt := range opts {
		opt(o)
	}

	k := koanf.New(".")

	if o.path != "" {
		if err := k.Load(file.Provider(o.path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", o.path, err)
		}
	}

	if err := k.Load(env.Provider(".", env.Opt{
		TransformFunc: func(key, value string) (string, any) {
			if value == "" {
				return "", nil
			}
			return envKeys[key], value
		},
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	cfg.Log.Format = strings.ToLower(cfg.Log.Format)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}
