// Package config handles input from etc/*.toml files
package config

import (
	"bytes"
	"encoding/json"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/BurntSushi/toml"
)

const (
	defaultShutDownTime = 5
	defaultUploadDir    = "uploads"
	defaultMaxUpload    = 50 << 20 // 50MB
	defaultTokenExpiry  = 24 * time.Hour
	defaultDebounce     = time.Second
)

// ReadConfig from config file.
func ReadConfig(path string) (Config, error) {
	var (
		c             Config
		JSONConfigEnv string
		err           error
	)

	// Read main configuration
	if path == "" {
		path = "./etc/"
	}

	if _, err = toml.DecodeFile(path+"main.toml", &c); err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	// override it from env
	JSONConfigEnv = os.Getenv("CATERING_ADMIN_CONFIG_JSON")

	if JSONConfigEnv != "" {
		c, err = decodeAndMergeConfig(c, JSONConfigEnv)
		if err != nil {
			return c, err
		}
	}

	return c, validate(&c)
}

func decodeAndMergeConfig(c Config, configAsJSON string) (Config, error) {
	err := json.Unmarshal([]byte(configAsJSON), &c)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to read main config file")
	}

	return c, nil
}

// DumpConfig config as TOML String.
func DumpConfig(c Config) (string, error) {
	var buffer bytes.Buffer
	t := toml.NewEncoder(&buffer)

	if err := t.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// validate minimal config settings and fill in defaults.
func validate(c *Config) error {
	invalidErrMessage := "invalid config"

	// validate webserver listening port
	if c.Webserver.Port == 0 {
		return errors.Wrap(ErrWebServerPortCanNotBeZero, invalidErrMessage)
	}

	// validate externally visible base url, upload URLs depend on it
	if c.Webserver.URL == "" {
		return errors.Wrap(ErrEmptyURL, invalidErrMessage)
	}

	// tokens can not be signed with an empty secret
	if c.Auth.JWTSecret == "" {
		return errors.Wrap(ErrEmptyJWTSecret, invalidErrMessage)
	}

	if c.Webserver.ShutDownTime == 0 {
		c.Webserver.ShutDownTime = defaultShutDownTime
	}

	if c.Auth.TokenExpiry == 0 {
		c.Auth.TokenExpiry = defaultTokenExpiry
	}

	if c.Auth.AdminUsername == "" {
		c.Auth.AdminUsername = "admin"
	}

	if c.Upload.Dir == "" {
		c.Upload.Dir = defaultUploadDir
	}

	if c.Upload.MaxSize == 0 {
		c.Upload.MaxSize = defaultMaxUpload
	}

	if c.Sync.Debounce == 0 {
		c.Sync.Debounce = defaultDebounce
	}

	return nil
}
