// Package config loads and validates the server's configuration from a
// config.yml file, a .env file, and environment variables, in increasing
// order of precedence.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// FileSystem abstracts file operations so tests can inject fixtures.
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
}

// RealFileSystem implements FileSystem using actual file operations.
type RealFileSystem struct{}

func (rfs *RealFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (rfs *RealFileSystem) LoadEnv(path string) error {
	return godotenv.Load(path)
}

// LoaderConfig holds dependencies and optional file overrides.
type LoaderConfig struct {
	FileSystem FileSystem
	ConfigFile string
	EnvFile    string
}

// LoaderOption is a functional option for Load.
type LoaderOption func(*LoaderConfig)

// WithFileSystem sets a custom filesystem for the loader.
func WithFileSystem(fs FileSystem) LoaderOption {
	return func(lc *LoaderConfig) { lc.FileSystem = fs }
}

// WithConfigFile sets an explicit config file path.
func WithConfigFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

var configSearchPaths = []string{
	"./config.yml",
	"./config/config.yml",
	"./cmd/web-app-auth-server/config.yml",
}

var envSearchPaths = []string{
	"./.env",
	"./config/.env",
	"./cmd/web-app-auth-server/.env",
}

// load fills cfg from config.yml, the .env file, and the process
// environment. Missing files are not an error: everything can come from the
// environment.
func load(cfg interface{}, lc LoaderConfig) error {
	if lc.FileSystem == nil {
		lc.FileSystem = &RealFileSystem{}
	}
	configFile := resolve(lc.ConfigFile, configSearchPaths, lc.FileSystem)
	envFile := resolve(lc.EnvFile, envSearchPaths, lc.FileSystem)

	v := viper.New()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("config: read %s: %w", configFile, err)
		}
	}

	if envFile != "" {
		if err := lc.FileSystem.LoadEnv(envFile); err != nil {
			return fmt.Errorf("config: load %s: %w", envFile, err)
		}
	}

	v.AutomaticEnv()
	bindEnvVars(v)

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("config: unmarshal: %w", err)
	}
	return nil
}

// resolve returns the explicit path when given, otherwise the first search
// path that exists.
func resolve(explicit string, search []string, fs FileSystem) string {
	if explicit != "" {
		return explicit
	}
	for _, path := range search {
		if fs.Exists(path) {
			return path
		}
	}
	return ""
}

// bindEnvVars maps UPPER_SNAKE environment variables onto viper's nested
// keys: JWT_SECRET binds to both "jwt_secret" and "jwt.secret", so flat env
// vars reach nested config sections.
func bindEnvVars(v *viper.Viper) {
	for _, env := range os.Environ() {
		pair := strings.SplitN(env, "=", 2)
		if len(pair) != 2 {
			continue
		}
		key := strings.ToLower(pair[0])
		value := pair[1]

		v.Set(key, value)
		if strings.Contains(key, "_") {
			v.Set(strings.ReplaceAll(key, "_", "."), value)
			// First segment as section, remainder as one key:
			// DATABASE_MAX_OPEN_CONNS -> database.max_open_conns
			parts := strings.SplitN(key, "_", 2)
			v.Set(parts[0]+"."+parts[1], value)
		}
	}
}
