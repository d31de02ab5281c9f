package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultEnv          = "local"
	DefaultPort         = 3000
	DefaultUpstreamURL  = "https://e-tongue-call-bot.onrender.com"
	DefaultCallTimeout  = 15 * time.Second
	DefaultProbeTimeout = 10 * time.Second
)

// Config holds all configuration required by the middleware process.
// Values come from env, optionally seeded by a YAML file named in CONFIG_FILE.
// No request handling code should read raw environment variables.
type Config struct {
	App      AppConfig      `yaml:"app"`
	Upstream UpstreamConfig `yaml:"upstream"`
}

type AppConfig struct {
	Env  string `yaml:"env"`
	Port int    `yaml:"port"`
}

// UpstreamConfig describes the single call-bot service requests are forwarded to.
type UpstreamConfig struct {
	BaseURL      string        `yaml:"base_url"`
	CallTimeout  time.Duration `yaml:"call_timeout"`
	ProbeTimeout time.Duration `yaml:"probe_timeout"`
}

// Default returns the configuration used when nothing is supplied.
func Default() Config {
	return Config{
		App: AppConfig{Env: DefaultEnv, Port: DefaultPort},
		Upstream: UpstreamConfig{
			BaseURL:      DefaultUpstreamURL,
			CallTimeout:  DefaultCallTimeout,
			ProbeTimeout: DefaultProbeTimeout,
		},
	}
}

func Load() (Config, error) {
	c := Default()
	var parseErrs []error

	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		if err := loadFile(path, &c); err != nil {
			return Config{}, err
		}
	}

	if v := strings.TrimSpace(os.Getenv("APP_ENV")); v != "" {
		c.App.Env = v
	}

	// PORT is what hosting platforms inject; APP_PORT is the explicit override.
	for _, key := range []string{"PORT", "APP_PORT"} {
		n, ok, err := optionalInt(key)
		if err != nil {
			parseErrs = append(parseErrs, err)
			continue
		}
		if ok {
			c.App.Port = n
		}
	}

	if v := strings.TrimSpace(os.Getenv("UPSTREAM_BASE_URL")); v != "" {
		c.Upstream.BaseURL = v
	}
	{
		d, ok, err := optionalDuration("UPSTREAM_CALL_TIMEOUT")
		parseErrs = appendParseErr(parseErrs, err)
		if ok {
			c.Upstream.CallTimeout = d
		}
	}
	{
		d, ok, err := optionalDuration("UPSTREAM_PROBE_TIMEOUT")
		parseErrs = appendParseErr(parseErrs, err)
		if ok {
			c.Upstream.ProbeTimeout = d
		}
	}

	if err := joinErrors(parseErrs); err != nil {
		return Config{}, err
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) Validate() error {
	var errs []error

	if c.App.Env == "" {
		errs = append(errs, errors.New("APP_ENV is required"))
	} else if !isValidEnv(c.App.Env) {
		errs = append(errs, fmt.Errorf("APP_ENV must be one of local, dev, staging, production, got %q", c.App.Env))
	}
	if c.App.Port <= 0 || c.App.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT must be a valid port, got %d", c.App.Port))
	}

	if c.Upstream.BaseURL == "" {
		errs = append(errs, errors.New("UPSTREAM_BASE_URL is required"))
	} else if u, err := url.Parse(c.Upstream.BaseURL); err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		errs = append(errs, fmt.Errorf("UPSTREAM_BASE_URL must be an absolute http(s) url, got %q", c.Upstream.BaseURL))
	}
	if c.Upstream.CallTimeout <= 0 {
		errs = append(errs, fmt.Errorf("UPSTREAM_CALL_TIMEOUT must be positive, got %s", c.Upstream.CallTimeout))
	}
	if c.Upstream.ProbeTimeout <= 0 {
		errs = append(errs, fmt.Errorf("UPSTREAM_PROBE_TIMEOUT must be positive, got %s", c.Upstream.ProbeTimeout))
	}

	return joinErrors(errs)
}

func (c Config) IsProduction() bool {
	return c.App.Env == "production"
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.App.Port)
}

func optionalInt(key string) (int, bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return 0, false, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false, fmt.Errorf("%s must be an integer, got %q", key, v)
	}
	return n, true, nil
}

func optionalDuration(key string) (time.Duration, bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return 0, false, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, false, fmt.Errorf("%s must be a duration, got %q", key, v)
	}
	return d, true, nil
}

func appendParseErr(errs []error, err error) []error {
	if err != nil {
		errs = append(errs, err)
	}
	return errs
}

func isValidEnv(v string) bool {
	switch v {
	case "local", "dev", "staging", "production":
		return true
	default:
		return false
	}
}

func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	if len(errs) == 1 {
		return errs[0]
	}
	var b strings.Builder
	b.WriteString("config errors:\n")
	for _, e := range errs {
		b.WriteString("- ")
		b.WriteString(e.Error())
		b.WriteString("\n")
	}
	return errors.New(strings.TrimSpace(b.String()))
}
