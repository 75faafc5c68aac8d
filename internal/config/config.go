package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	RunAddress    string        `yaml:"run_address"`
	APIURL        string        `yaml:"api_url"`
	SessionSecret string        `yaml:"session_secret"`
	SessionTTL    time.Duration `yaml:"session_ttl"`
	PageTTL       time.Duration `yaml:"page_ttl"`
	SecureCookie  bool          `yaml:"secure_cookie"`
}

func defaults() Config {
	return Config{
		RunAddress:    "localhost:8080",
		APIURL:        "http://localhost:5678",
		SessionSecret: "super-secret-session-key",
		SessionTTL:    24 * time.Hour,
		PageTTL:       30 * time.Minute,
	}
}

// New reads the configuration from the command line, the environment, a .env
// file and an optional YAML file. Precedence, highest first: env, explicit
// flags, YAML file, defaults.
func New(args []string) (*Config, error) {
	_ = godotenv.Load()

	cfg := defaults()
	var file string

	fs := flag.NewFlagSet("billed", flag.ContinueOnError)
	fs.StringVar(&file, "c", "", "YAML config file")
	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "server address and port")
	fs.StringVar(&cfg.APIURL, "r", cfg.APIURL, "bills API address")
	fs.StringVar(&cfg.SessionSecret, "s", cfg.SessionSecret, "session signing key")
	fs.DurationVar(&cfg.SessionTTL, "session-ttl", cfg.SessionTTL, "session lifetime")
	fs.DurationVar(&cfg.PageTTL, "t", cfg.PageTTL, "idle lifetime of an open new bill form")
	fs.BoolVar(&cfg.SecureCookie, "secure-cookie", cfg.SecureCookie, "send the session cookie over HTTPS only")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	file = getEnv("CONFIG_FILE", file)
	if file != "" {
		fromFile, err := readFile(file)
		if err != nil {
			return nil, err
		}
		explicit := make(map[string]bool)
		fs.Visit(func(f *flag.Flag) { explicit[f.Name] = true })
		merge(&cfg, fromFile, explicit)
	}

	cfg.RunAddress = getEnv("RUN_ADDRESS", cfg.RunAddress)
	cfg.APIURL = getEnv("API_URL", cfg.APIURL)
	cfg.SessionSecret = getEnv("SESSION_SECRET", cfg.SessionSecret)

	var err error
	if cfg.SessionTTL, err = getEnvDuration("SESSION_TTL", cfg.SessionTTL); err != nil {
		return nil, err
	}
	if cfg.PageTTL, err = getEnvDuration("PAGE_TTL", cfg.PageTTL); err != nil {
		return nil, err
	}
	if v, ok := os.LookupEnv("SECURE_COOKIE"); ok {
		if cfg.SecureCookie, err = strconv.ParseBool(v); err != nil {
			return nil, fmt.Errorf("invalid SECURE_COOKIE: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch {
	case c.SessionSecret == "":
		return errors.New("session secret is required")
	case c.APIURL == "":
		return errors.New("bills API address is required")
	case c.SessionTTL <= 0:
		return errors.New("session ttl must be positive")
	case c.PageTTL <= 0:
		return errors.New("page ttl must be positive")
	}
	return nil
}

func readFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("parse config file: %w", err)
	}
	return c, nil
}

func merge(cfg *Config, file Config, explicit map[string]bool) {
	if !explicit["a"] && file.RunAddress != "" {
		cfg.RunAddress = file.RunAddress
	}
	if !explicit["r"] && file.APIURL != "" {
		cfg.APIURL = file.APIURL
	}
	if !explicit["s"] && file.SessionSecret != "" {
		cfg.SessionSecret = file.SessionSecret
	}
	if !explicit["session-ttl"] && file.SessionTTL != 0 {
		cfg.SessionTTL = file.SessionTTL
	}
	if !explicit["t"] && file.PageTTL != 0 {
		cfg.PageTTL = file.PageTTL
	}
	if !explicit["secure-cookie"] && file.SecureCookie {
		cfg.SecureCookie = true
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
