package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

const (
	BaseURL   = "base_url"
	Timeout   = "timeout"
	ResultDir = "result_dir"
	LogLevel  = "log_level"
	NotifyTTL = "notify_ttl"

	fileName  = ".revwhoix"
	envPrefix = "REVWHOIX"
)

var defaults = map[string]any{
	BaseURL:   "http://localhost:5000/api",
	Timeout:   "30s",
	ResultDir: "result",
	LogLevel:  "warn",
	NotifyTTL: "3s",
}

// Keys lists the settable configuration keys.
func Keys() []string {
	keys := make([]string, 0, len(defaults))
	for k := range defaults {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// InitConfig initializes the configuration
func InitConfig() {
	for k, v := range defaults {
		viper.SetDefault(k, v)
	}

	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
	} else {
		fmt.Fprintf(os.Stderr, "Warning: cannot locate home directory: %v\n", err)
	}
	viper.SetConfigType("yaml")
	viper.SetConfigName(fileName)

	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		log.WithField("file", viper.ConfigFileUsed()).Debug("using config file")
	}
}

// Set validates value for key and writes it to the configuration file.
func Set(key, value string) (string, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	if _, ok := defaults[key]; !ok {
		return "", fmt.Errorf("unknown config key %q (valid keys: %s)", key, strings.Join(Keys(), ", "))
	}
	if err := validate(key, value); err != nil {
		return "", err
	}
	viper.Set(key, value)

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	configPath := filepath.Join(home, fileName+".yaml")
	return configPath, viper.WriteConfigAs(configPath)
}

func validate(key, value string) error {
	switch key {
	case Timeout, NotifyTTL:
		d, err := cast.ToDurationE(value)
		if err != nil || d <= 0 {
			return fmt.Errorf("%s must be a positive duration such as 30s, got %q", key, value)
		}
	case LogLevel:
		if _, err := log.ParseLevel(value); err != nil {
			return err
		}
	case BaseURL:
		if !strings.HasPrefix(value, "http://") && !strings.HasPrefix(value, "https://") {
			return fmt.Errorf("%s must start with http:// or https://", key)
		}
	}
	return nil
}

// Get returns the effective value of key as text.
func Get(key string) (string, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	if _, ok := defaults[key]; !ok {
		return "", fmt.Errorf("unknown config key %q", key)
	}
	return viper.GetString(key), nil
}

func GetBaseURL() string {
	return strings.TrimRight(viper.GetString(BaseURL), "/")
}

func GetTimeout() time.Duration {
	return durationOr(Timeout, 30*time.Second)
}

func GetNotifyTTL() time.Duration {
	return durationOr(NotifyTTL, 3*time.Second)
}

func GetResultDir() string {
	return viper.GetString(ResultDir)
}

// GetLogLevel falls back to warn on an unparsable level.
func GetLogLevel() log.Level {
	lvl, err := log.ParseLevel(viper.GetString(LogLevel))
	if err != nil {
		return log.WarnLevel
	}
	return lvl
}

func durationOr(key string, def time.Duration) time.Duration {
	d, err := cast.ToDurationE(viper.Get(key))
	if err != nil || d <= 0 {
		return def
	}
	return d
}
