package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// loadFile overlays a YAML document onto c. Keys absent from the file keep
// their current values; env overrides are applied afterwards by Load.
//
// Example:
//
//	app:
//	  env: staging
//	  port: 8080
//	upstream:
//	  base_url: https://call-bot.internal
//	  call_timeout: 15s
//	  probe_timeout: 10s
func loadFile(path string, c *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
