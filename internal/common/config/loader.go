// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func Load() (*Config, error) {
	loadEnvFile()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../../configs")
	viper.AddConfigPath(".")

	// Enable ENV override like NOTION_TOKEN
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	// Environment-specific overlay, ignored when absent
	envConfigFile := fmt.Sprintf("config.%s", env)
	viper.SetConfigName(envConfigFile)
	_ = viper.MergeInConfig()

	expandEnvVars(viper.GetViper())

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// loadEnvFile loads .env from the first location that has one, so the
// service behaves the same whether started from the repo root or a subdir.
func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// findProjectRoot walks up directories looking for go.mod.
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// expandEnvVars resolves ${VAR} placeholders in string config values.
func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		val := v.Get(key)

		if strVal, ok := val.(string); ok {
			if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
				expanded := os.ExpandEnv(strVal)
				if expanded != strVal && expanded != "" {
					v.Set(key, expanded)
				}
			}
		}
	}
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "notion-pdf-service"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}
	if cfg.Server.Address == "" {
		cfg.Server.Address = ":8080"
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15000
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 60000
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10000
	}
	if cfg.Notion.BaseURL == "" {
		cfg.Notion.BaseURL = "https://api.notion.com/v1"
	}
	if cfg.Notion.APIVersion == "" {
		cfg.Notion.APIVersion = "2022-06-28"
	}
	if cfg.Notion.Timeout == 0 {
		cfg.Notion.Timeout = 30000
	}
	if cfg.Templates.Dir == "" {
		cfg.Templates.Dir = "./templates"
	}
	if cfg.Templates.CatalogPath == "" {
		cfg.Templates.CatalogPath = "./configs/templates.yaml"
	}
	if cfg.Cache.TTL == 0 {
		cfg.Cache.TTL = 3600
	}
	if cfg.Logging.Level == "" {
		if cfg.App.Environment == "development" {
			cfg.Logging.Level = "debug"
		} else {
			cfg.Logging.Level = "info"
		}
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}
}

// Direct override if config values are still empty after expansion
func overrideEmptyConfig(cfg *Config) {
	if cfg.Notion.Token == "" {
		if val := os.Getenv("NOTION_SECRET"); val != "" {
			cfg.Notion.Token = val
		}
	}
	if cfg.Drive.FolderID == "" {
		if val := os.Getenv("GOOGLE_DRIVE_FOLDER_ID"); val != "" {
			cfg.Drive.FolderID = val
		}
	}
}

// validateConfig fails fast on settings the pipeline cannot run without.
func validateConfig(cfg *Config) error {
	if cfg.Notion.Token == "" {
		return fmt.Errorf("notion token is required (NOTION_SECRET)")
	}
	if _, err := os.Stat(cfg.Templates.Dir); err != nil {
		return fmt.Errorf("templates directory not found: %s", cfg.Templates.Dir)
	}
	if _, err := os.Stat(cfg.Templates.CatalogPath); err != nil {
		return fmt.Errorf("template catalog not found: %s", cfg.Templates.CatalogPath)
	}
	if cfg.Drive.Enabled {
		if cfg.Drive.FolderID == "" {
			return fmt.Errorf("drive folder id is required when drive upload is enabled")
		}
		if _, err := os.Stat(cfg.Drive.CredentialsFile); err != nil {
			return fmt.Errorf("drive credentials file not found: %s", cfg.Drive.CredentialsFile)
		}
	}
	if cfg.Notifications.Email.Enabled {
		if cfg.Notifications.Email.FromEmail == "" || cfg.Notifications.Email.ToEmail == "" {
			return fmt.Errorf("email notification requires from_email and to_email")
		}
	}
	return nil
}
