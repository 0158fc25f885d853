package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const EnvPrefix = "VISUALEARN"

// Settings are the process-wide knobs, as opposed to per-scene Config.
type Settings struct {
	DataDir  string
	LogLevel string
	FPS      int
	Theme    string
	Addr     string
	Sound    bool
}

// NewViper returns a viper instance with defaults, VISUALEARN_* environment
// overrides, and an optional visualearn.yaml from the user config dir.
func NewViper() *viper.Viper {
	v := viper.New()

	v.SetTypeByDefaultValue(true)
	v.SetDefault("data", ".visualearn")
	v.SetDefault("log-level", "warn")
	v.SetDefault("fps", DefaultFPS)
	v.SetDefault("theme", "default")
	v.SetDefault("addr", ":8080")
	v.SetDefault("sound", false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("visualearn")
	v.SetConfigType("yaml")
	if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, "visualearn"))
	}
	v.AddConfigPath(".")
	return v
}

// ReadSettingsFile loads the optional settings file. A missing file is not
// an error.
func ReadSettingsFile(v *viper.Viper) error {
	err := v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if err != nil && !errors.As(err, &notFound) {
		return err
	}
	return nil
}

func LoadSettings(v *viper.Viper) Settings {
	return Settings{
		DataDir:  v.GetString("data"),
		LogLevel: v.GetString("log-level"),
		FPS:      v.GetInt("fps"),
		Theme:    v.GetString("theme"),
		Addr:     v.GetString("addr"),
		Sound:    v.GetBool("sound"),
	}
}
