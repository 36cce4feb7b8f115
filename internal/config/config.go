package config

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Compile struct {
	Endpoint     string        `mapstructure:"endpoint"`
	Timeout      time.Duration `mapstructure:"timeout"`
	ClientID     string        `mapstructure:"client_id"`
	ClientSecret string        `mapstructure:"client_secret"`
}

type Config struct {
	Mode        string        `mapstructure:"mode"`
	Port        int           `mapstructure:"port"`
	LogLevel    string        `mapstructure:"log_level"`
	ReadLimit   int64         `mapstructure:"read_limit"`
	PingPeriod  time.Duration `mapstructure:"ping_period"`
	SendBuffer  int           `mapstructure:"send_buffer"`
	CORSOrigins []string      `mapstructure:"cors_origins"`
	Compile     Compile       `mapstructure:"compile"`
}

const DefaultCompileEndpoint = "https://api.jdoodle.com/v1/execute"

func Load() (*Config, error) {
	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	return LoadFile(fmt.Sprintf("config/config.%s.yaml", env))
}

// LoadFile reads defaults, then the optional YAML file, then the environment.
func LoadFile(fileName string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(fileName)

	v.SetDefault("mode", "release")
	v.SetDefault("port", 5000)
	v.SetDefault("log_level", "info")
	v.SetDefault("read_limit", 65536)
	v.SetDefault("ping_period", "54s")
	v.SetDefault("send_buffer", 64)
	v.SetDefault("cors_origins", []string{"http://localhost:3000"})
	v.SetDefault("compile.endpoint", DefaultCompileEndpoint)
	v.SetDefault("compile.timeout", "15s")
	v.SetDefault("compile.client_id", "")
	v.SetDefault("compile.client_secret", "")

	for key, names := range map[string][]string{
		"mode":                  {"MODE"},
		"port":                  {"PORT"},
		"log_level":             {"LOG_LEVEL"},
		"compile.endpoint":      {"COMPILE_ENDPOINT"},
		"compile.client_id":     {"jDoodle_clientId", "JDOODLE_CLIENT_ID"},
		"compile.client_secret": {"jDoodle_clientSecret", "JDOODLE_CLIENT_SECRET"},
	} {
		if err := v.BindEnv(append([]string{key}, names...)...); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		log.Warn().Str("module", "config").Str("file", fileName).Msg("config file not found, using defaults")
	} else {
		log.Info().Str("module", "config").Str("file", fileName).Msg("loaded config")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port %d", cfg.Port)
	}
	if cfg.SendBuffer <= 0 {
		cfg.SendBuffer = 64
	}
	log.Info().Str("module", "config").Str("mode", cfg.Mode).Int("port", cfg.Port).Bool("compile_credentials", cfg.Compile.ClientID != "").Msg("config ready")
	return &cfg, nil
}
