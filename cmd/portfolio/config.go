package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/eringen/portfolio"
)

const (
	configFileName = "portfolio"
	envPrefix      = "PORTFOLIO"
)

// configKeys lists every SiteConfig key so each can be set from the
// environment as PORTFOLIO_<KEY>.
var configKeys = []string{
	"name", "url", "description", "author", "addr",
	"content_backend",
	"sanity_project_id", "sanity_dataset", "sanity_api_version", "sanity_use_cdn", "sanity_token", "sanity_timeout",
	"snapshot_path",
	"resend_api_key", "contact_from", "contact_to", "contact_rate_limit",
	"session_secret", "cookie_secure",
	"log_level", "log_format",
}

// flagKeys maps command flags onto config keys. Flags win over the
// environment and the config file when set.
var flagKeys = map[string]string{
	"addr":    "addr",
	"backend": "content_backend",
	"db":      "snapshot_path",
}

// loadConfig reads configuration from, in increasing precedence, the config
// file, PORTFOLIO_* environment variables and the flags that were set.
// A missing default config file is not an error.
func loadConfig(path string, flags *pflag.FlagSet) (portfolio.SiteConfig, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	for _, key := range configKeys {
		if err := v.BindEnv(key); err != nil {
			return portfolio.SiteConfig{}, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configFileName)
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return portfolio.SiteConfig{}, fmt.Errorf("read config: %w", err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil && f.Changed {
				v.Set(key, f.Value.String())
			}
		}
	}

	var cfg portfolio.SiteConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return portfolio.SiteConfig{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}
