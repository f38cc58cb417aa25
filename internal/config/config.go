// Package config loads studiodash configuration.
//
// Precedence (highest to lowest): explicitly set flags > STUDIODASH_ env vars >
// config file > defaults.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

const (
	// EnvPrefix prefixes every environment override. Nested keys use a
	// double underscore: STUDIODASH_HARDWARE__CPU_LIMIT.
	EnvPrefix = "STUDIODASH_"
	// FileName is looked up in the working directory when --config is unset.
	FileName = "studiodash.yaml"
)

// Hardware holds the default cloud resources for new workspaces.
type Hardware struct {
	CPULimit int `koanf:"cpu_limit" yaml:"cpu_limit"`
	Memory   int `koanf:"memory" yaml:"memory"`   // MiB
	Storage  int `koanf:"storage" yaml:"storage"` // GiB
}

// Config is the resolved configuration.
type Config struct {
	DevOrigin    string `koanf:"dev_origin" yaml:"dev_origin"`
	StudioOrigin string `koanf:"studio_origin" yaml:"studio_origin"`
	QcloudOrigin string `koanf:"qcloud_origin" yaml:"qcloud_origin"`
	// APIBase defaults to StudioOrigin + "/api".
	APIBase string `koanf:"api_base" yaml:"api_base"`
	// GlobalKey identifies the viewer; it is compared with workspace owners.
	GlobalKey string `koanf:"global_key" yaml:"global_key"`
	Locale    string `koanf:"locale" yaml:"locale"`
	// Embedded mirrors running framed inside another page: workspace URLs
	// always carry the studio origin.
	Embedded       bool          `koanf:"embedded" yaml:"embedded"`
	DebugLog       string        `koanf:"debug_log" yaml:"debug_log"`
	OTLPEndpoint   string        `koanf:"otlp_endpoint" yaml:"otlp_endpoint"`
	RequestTimeout time.Duration `koanf:"request_timeout" yaml:"request_timeout"`
	Hardware       Hardware      `koanf:"hardware" yaml:"hardware"`

	// FileUsed is the config file that was loaded, if any.
	FileUsed string `koanf:"-" yaml:"-"`
}

// Defaults returns the built-in configuration values.
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"dev_origin":        "https://dev.tencent.com",
		"studio_origin":     "https://studio.dev.tencent.com",
		"qcloud_origin":     "https://qcloud.coding.net",
		"api_base":          "",
		"global_key":        "",
		"locale":            "",
		"embedded":          false,
		"debug_log":         "",
		"otlp_endpoint":     "",
		"request_timeout":   "15s",
		"hardware.cpu_limit": 2,
		"hardware.memory":    2048,
		"hardware.storage":   2,
	}
}

// ErrInvalid is wrapped by validation failures.
var ErrInvalid = errors.New("invalid configuration")

// Load resolves configuration from defaults, file, environment and flags.
// cfgFile may be empty; flags may be nil.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	used := findConfigFile(cfgFile)
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", used, err)
		}
	}

	// STUDIODASH_API_BASE -> api_base, STUDIODASH_HARDWARE__MEMORY -> hardware.memory
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.FileUsed = used

	if cfg.Locale == "" {
		cfg.Locale = os.Getenv("LANG")
	}
	if cfg.OTLPEndpoint == "" {
		cfg.OTLPEndpoint = os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	}
	cfg.StudioOrigin = strings.TrimRight(cfg.StudioOrigin, "/")
	if cfg.APIBase == "" {
		cfg.APIBase = cfg.StudioOrigin + "/api"
	}
	cfg.APIBase = strings.TrimRight(cfg.APIBase, "/")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the fields the rest of the program relies on.
func (c *Config) Validate() error {
	for name, v := range map[string]string{"studio_origin": c.StudioOrigin, "api_base": c.APIBase} {
		u, err := url.Parse(v)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%w: %s must be an absolute URL, got %q", ErrInvalid, name, v)
		}
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("%w: request_timeout must be positive", ErrInvalid)
	}
	return nil
}

// findConfigFile picks the config file to load.
// Priority: explicit path > ./studiodash.yaml > <user config dir>/studiodash/config.yaml
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if _, err := os.Stat(FileName); err == nil {
		return FileName
	}
	if dir, err := os.UserConfigDir(); err == nil {
		candidate := filepath.Join(dir, "studiodash", "config.yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// RegisterFlags adds the flags Load understands to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("studio-origin", "", "Studio origin used for workspace URLs")
	fs.String("api-base", "", "Workspace API base URL (default: <studio-origin>/api)")
	fs.String("global-key", "", "Global key of the current user")
	fs.String("locale", "", "UI language (default: $LANG)")
	fs.Bool("embedded", false, "Always open workspaces on the studio origin")
	fs.String("debug-log", "", "Write debug logs to this file")
	fs.String("otlp-endpoint", "", "OTLP/HTTP endpoint for traces")
	fs.Duration("request-timeout", 0, "Timeout for workspace API calls")
}
