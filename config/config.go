// Package config contains code to set the default values and read
// config files to be used throughout the whole application
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/pflag"
	v "github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	configDir      = pflag.String("config-dir", ".", "Directory to search for the config.toml file")
	validLogLevels = []string{"debug", "info", "warn", "error", "fatal"}
)

func genSecret() string {
	b := make([]byte, 64)
	rand.Read(b)
	return hex.EncodeToString(b)
}

// Setup prepares everything config-related so that the app can
// start working. Function will return an error if something
// is critically wrong and the application can't run because of
// that.
func Setup() error {
	pflag.Parse()
	v.BindPFlags(pflag.CommandLine)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(*configDir)

	v.AutomaticEnv()

	//
	// ENVS
	//
	v.BindEnv("app.log_level", "app_log_level")

	v.BindEnv("host.port", "host_port")
	v.BindEnv("host.domain", "host_domain")
	v.BindEnv("host.ssl.enabled", "host_ssl_enabled")

	v.BindEnv("jwt.secret", "jwt_secret")

	v.BindEnv("db.path", "db_path")

	v.BindEnv("storage.total_capacity", "storage_total_capacity")

	v.BindEnv("upload.max_size", "upload_max_size")

	v.BindEnv("admin.email", "admin_email")
	v.BindEnv("admin.password", "admin_password")

	//
	// Defaults
	//
	v.SetDefault("app.log_level", "info")

	v.SetDefault("host.port", 8080)
	v.SetDefault("host.domain", "localhost")
	v.SetDefault("host.ssl.enabled", false)

	v.SetDefault("db.path", "database.db")

	// Both are in MiB and converted to bytes at the end
	v.SetDefault("storage.total_capacity", 1024)
	v.SetDefault("upload.max_size", 50)

	v.SetDefault("admin.email", "admin@localhost")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(v.ConfigFileNotFoundError); ok {
			return errors.New("config.toml file is missing")
		}

		return fmt.Errorf("failed to read config file, %w", err)
	}

	if !slices.Contains(validLogLevels, v.GetString("app.log_level")) {
		return errors.New("invalid log level provided")
	}

	if v.GetInt("host.port") <= 0 {
		return errors.New("invalid port provided")
	}

	if v.GetString("jwt.secret") == "" {
		fmt.Println("WARNING: You haven't set a JWT secret, so it has been generated for you. Please set it as an environment variable or in the config.toml file.\nYour random JWT secret:\n\n" + genSecret() + "\n\nPaste it into your config.toml file.")
		os.Exit(0)
	}

	if v.GetInt64("storage.total_capacity") <= 0 {
		return errors.New("storage.total_capacity must be bigger than 0")
	}

	if v.GetInt64("upload.max_size") <= 0 {
		return errors.New("upload.max_size must be bigger than 0")
	}

	if v.GetString("admin.password") == "" {
		zap.L().Warn("No admin.password set, the initial admin account won't be seeded")
	}

	v.Set("storage.total_capacity", v.GetInt64("storage.total_capacity")<<20)
	v.Set("upload.max_size", v.GetInt64("upload.max_size")<<20)
	return nil
}
