// Package config loads client configuration from defaults, an optional
// .env file and STUDYHUB_* environment variables, in that order of
// precedence.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Config is the resolved client configuration.
type Config struct {
	AppName      string
	BaseURL      string
	HTTPTimeout  time.Duration
	StateFile    string
	PollInterval time.Duration
	Debug        bool
}

// Load builds the configuration. A missing .env file is not an error.
func Load() (*Config, error) {
	v := viper.New()
	v.SetTypeByDefaultValue(true)
	v.SetDefault("appName", "StudyHub")
	v.SetDefault("baseUrl", "http://localhost:5000/api")
	v.SetDefault("httpTimeout", 30*time.Second)
	v.SetDefault("stateFile", defaultStateFile())
	v.SetDefault("pollInterval", 30*time.Second)
	v.SetDefault("debug", false)

	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, errors.Wrap(err, "[Load] loading .env")
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrap(err, "[Load] checking .env")
	}

	v.SetEnvPrefix("STUDYHUB")
	v.AutomaticEnv()

	return &Config{
		AppName:      v.GetString("appName"),
		BaseURL:      v.GetString("baseUrl"),
		HTTPTimeout:  v.GetDuration("httpTimeout"),
		StateFile:    v.GetString("stateFile"),
		PollInterval: v.GetDuration("pollInterval"),
		Debug:        v.GetBool("debug"),
	}, nil
}

func defaultStateFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "state.json"
	}
	return filepath.Join(home, ".studyhub", "state.json")
}
