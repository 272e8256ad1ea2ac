// Package settings loads the runtime settings of wdiorun. Values are taken from the environment first, then
// from an optional settings file in the working directory, then from the defaults.
package settings

import (
	"fmt"
	"path/filepath"
	"time"

	"dario.cat/mergo"
	"github.com/caarlos0/env/v11"
	"github.com/mitchellh/mapstructure"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/saucelabs/wdiorun/internal/msg"
	"github.com/saucelabs/wdiorun/internal/resolver"
	iviper "github.com/saucelabs/wdiorun/internal/viper"
)

// FileName is the name of the settings file, without extension.
const FileName = ".wdiorun"

// Settings represents the runtime settings.
type Settings struct {
	// Target selects the configuration to run. Environment only.
	Target string `env:"TARGET" mapstructure:"-"`
	// DevicePoolARN is set by AWS Device Farm on its hosts. Environment only.
	DevicePoolARN string `env:"DEVICEFARM_DEVICE_POOL_ARN" mapstructure:"-"`

	ConfigDir    string         `env:"WDIO_CONFIG_DIR" mapstructure:"configDir"`
	Mode         string         `env:"WDIO_MODE" mapstructure:"mode"`
	Launcher     []string       `env:"WDIO_LAUNCHER" envSeparator:" " mapstructure:"launcher"`
	StartupDelay *time.Duration `env:"WDIO_STARTUP_DELAY" mapstructure:"startupDelay"`
	Appium       Appium         `envPrefix:"APPIUM_" mapstructure:"appium"`
}

// Appium represents the settings of the optional appium readiness check.
type Appium struct {
	StatusURL string        `env:"STATUS_URL" mapstructure:"statusURL"`
	Timeout   time.Duration `env:"TIMEOUT" mapstructure:"timeout"`
}

// Delay returns the startup delay. A nil delay is treated as zero.
func (s Settings) Delay() time.Duration {
	if s.StartupDelay == nil {
		return 0
	}
	return *s.StartupDelay
}

// Defaults returns the settings used for anything not set otherwise.
func Defaults() Settings {
	delay := 5 * time.Second
	return Settings{
		ConfigDir:    resolver.DefaultConfigDir,
		Mode:         string(resolver.ModeAuto),
		Launcher:     []string{"npx", "wdio", "run"},
		StartupDelay: &delay,
		Appium: Appium{
			Timeout: 30 * time.Second,
		},
	}
}

// Load returns the settings for a process running in workDir.
func Load(workDir string) (Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return Settings{}, fmt.Errorf("error getting env settings: %w", err)
	}

	f, err := fromFile(workDir)
	if err != nil {
		return Settings{}, err
	}

	// mergo treats an explicit zero delay as empty and would replace it with the default.
	delay := s.StartupDelay
	if delay == nil {
		delay = f.StartupDelay
	}
	s.StartupDelay, f.StartupDelay = nil, nil

	for _, layer := range []Settings{f, Defaults()} {
		if err := mergo.Merge(&s, layer); err != nil {
			return Settings{}, fmt.Errorf("error merging settings: %w", err)
		}
	}
	if delay != nil {
		s.StartupDelay = delay
	}

	if !filepath.IsAbs(s.ConfigDir) && workDir != "" {
		s.ConfigDir = filepath.Join(workDir, s.ConfigDir)
	}

	return s, nil
}

func fromFile(workDir string) (Settings, error) {
	v := iviper.New()
	v.SetConfigName(FileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(workDir)

	found, err := iviper.ReadOptional(v)
	if err != nil {
		return Settings{}, fmt.Errorf("%s: %w", msg.InvalidSettings, err)
	}
	if !found {
		return Settings{}, nil
	}
	log.Debug().Str("file", v.ConfigFileUsed()).Msg("Loaded settings.")

	var s Settings
	err = v.Unmarshal(&s, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(" "),
	)))
	if err != nil {
		return Settings{}, fmt.Errorf("%s: %w", msg.InvalidSettings, err)
	}

	return s, nil
}
