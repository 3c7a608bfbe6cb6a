// Package config loads the relay configuration from flags, environment and an optional file.
package config

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const envPrefix = "TRANSLAY"

type Config struct {
	Port      string        `mapstructure:"port"`
	LogLevel  string        `mapstructure:"log_level"`
	Timeout   time.Duration `mapstructure:"timeout"`
	Providers []string      `mapstructure:"providers"`

	LibreTranslate LibreTranslateConfig `mapstructure:"libretranslate"`
	MyMemory       MyMemoryConfig       `mapstructure:"mymemory"`
	Systran        SystranConfig        `mapstructure:"systran"`
	Google         GoogleConfig         `mapstructure:"google"`
	Identity       IdentityConfig       `mapstructure:"identity"`
}

type LibreTranslateConfig struct {
	URL    string `mapstructure:"url"`
	APIKey string `mapstructure:"api_key"`
}

type MyMemoryConfig struct {
	URL   string `mapstructure:"url"`
	Email string `mapstructure:"email"`
}

type SystranConfig struct {
	URL    string `mapstructure:"url"`
	APIKey string `mapstructure:"api_key"`
}

type GoogleConfig struct {
	Credentials string `mapstructure:"credentials"`
	ProjectID   string `mapstructure:"project_id"`
}

// IdentityConfig is served verbatim by GET /.
type IdentityConfig struct {
	Message   string `mapstructure:"message"`
	Student   string `mapstructure:"student"`
	Developer string `mapstructure:"developer"`
}

// SetDefaults registers every key with its default so that environment overrides
// are picked up by Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("port", "3000")
	v.SetDefault("log_level", "info")
	v.SetDefault("timeout", 10*time.Second)
	v.SetDefault("providers", []string{"libretranslate", "mymemory"})

	v.SetDefault("libretranslate.url", "https://libretranslate.com")
	v.SetDefault("libretranslate.api_key", "")
	v.SetDefault("mymemory.url", "https://api.mymemory.translated.net")
	v.SetDefault("mymemory.email", "")
	v.SetDefault("systran.url", "https://api-systran-systran-translation-v1.p.rapidapi.com")
	v.SetDefault("systran.api_key", "")
	v.SetDefault("google.credentials", "")
	v.SetDefault("google.project_id", "")

	v.SetDefault("identity.message", "Mohd Zishan Rajput Translator API is running!")
	v.SetDefault("identity.student", "Jamia Millia Islamia University")
	v.SetDefault("identity.developer", "Frontend Developer & ChatGPT Expert")
}

// Load reads configuration into a Config. configFile may be empty.
// PORT is honoured unprefixed; every other key uses TRANSLAY_<KEY> with dots as underscores.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("port", "PORT", envPrefix+"_PORT"); err != nil {
		return nil, errors.Wrap(err, "failed to bind PORT")
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read config file %s", configFile)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to decode config")
	}

	cfg.Providers = splitProviders(cfg.Providers)
	if cfg.Port == "" {
		cfg.Port = "3000"
	}
	if cfg.Timeout <= 0 {
		return nil, errors.Errorf("timeout must be positive, got %s", cfg.Timeout)
	}

	return &cfg, nil
}

// splitProviders normalises a list that may arrive as one comma-separated env value.
func splitProviders(in []string) []string {
	var out []string
	for _, item := range in {
		for _, name := range strings.Split(item, ",") {
			name = strings.ToLower(strings.TrimSpace(name))
			if name != "" {
				out = append(out, name)
			}
		}
	}
	return out
}
