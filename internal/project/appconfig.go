package project

import (
	"os"
	"path/filepath"

	"github.com/bytedance/sonic"

	"github.com/piwi3910/BlockFit/internal/model"
)

// ConfigEnv names the environment variable that overrides the config path.
const ConfigEnv = "BLOCKFIT_CONFIG"

// DefaultConfigDir returns the default directory for application configuration.
// On all platforms this is ~/.blockfit/
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".blockfit")
}

// DefaultConfigPath returns the default path for the application config file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// ConfigPathFromEnv returns the path set in BLOCKFIT_CONFIG, falling back
// to DefaultConfigPath.
func ConfigPathFromEnv() string {
	if path := os.Getenv(ConfigEnv); path != "" {
		return path
	}
	return DefaultConfigPath()
}

// SaveAppConfig persists an AppConfig to the given path as JSON.
// It creates any missing parent directories automatically.
func SaveAppConfig(path string, config model.AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := sonic.ConfigStd.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadAppConfig reads an AppConfig from the given path.
// If the file does not exist, it returns DefaultAppConfig with no error.
// Fields missing from the file keep their default values.
func LoadAppConfig(path string) (model.AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.DefaultAppConfig(), nil
		}
		return model.AppConfig{}, err
	}
	config := model.DefaultAppConfig()
	if err := sonic.ConfigStd.Unmarshal(data, &config); err != nil {
		return model.AppConfig{}, err
	}
	return config, nil
}
