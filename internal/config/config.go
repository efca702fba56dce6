package config

import "github.com/kelseyhightower/envconfig"

// Config holds all runtime settings. Values come from the environment;
// a local .env file is loaded by main before Load runs.
type Config struct {
	Addr        string `envconfig:"ADDR" default:":8080"`
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`
	JWTSecret   string `envconfig:"JWT_SECRET" required:"true"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
}

func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
