package bootstrap

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"suntzu/internal/domain/board"
	"suntzu/internal/domain/game"
)

const envPrefix = "SUNTZU"

var supportedBoardSizes = []int{9, 13, 19}

type Config struct {
	BoardSize     int     `mapstructure:"BOARD_SIZE"`
	Komi          float64 `mapstructure:"KOMI"`
	KomiSide      string  `mapstructure:"KOMI_SIDE"`
	CaptureCredit string  `mapstructure:"CAPTURE_CREDIT"`
	LogLevel      string  `mapstructure:"LOG_LEVEL"`
	Color         bool    `mapstructure:"COLOR"`
}

// flag name -> config key
var flagKeys = map[string]string{
	"size":      "BOARD_SIZE",
	"komi":      "KOMI",
	"komi-side": "KOMI_SIDE",
	"credit":    "CAPTURE_CREDIT",
	"log-level": "LOG_LEVEL",
}

// Flags registers the command line flags understood by Setup.
func Flags(fs *pflag.FlagSet) {
	fs.String("config", "", "path to a config file (.env, .yaml, .toml, .json)")
	fs.Int("size", 19, "board size: 9, 13 or 19")
	fs.Float64("komi", 6.5, "starting compensation")
	fs.String("komi-side", "white", "side receiving komi")
	fs.String("credit", string(game.CreditCapturer), "who is credited for captures: capturer or owner")
	fs.String("log-level", "info", "log level")
	fs.Bool("no-color", false, "disable colored board output")
}

// Setup reads the configuration. Flags win over env, env over the file, the file over defaults.
// cfgPath may be empty, a named file that does not exist is an error.
func Setup(cfgPath string, fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetDefault("BOARD_SIZE", 19)
	v.SetDefault("KOMI", 6.5)
	v.SetDefault("KOMI_SIDE", "white")
	v.SetDefault("CAPTURE_CREDIT", string(game.CreditCapturer))
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("COLOR", true)

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config %s", cfgPath)
		}
	}

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil && f.Changed {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, errors.Wrapf(err, "bind flag %s", name)
				}
			}
		}
		if f := fs.Lookup("no-color"); f != nil && f.Changed {
			noColor, err := fs.GetBool("no-color")
			if err != nil {
				return nil, errors.Wrap(err, "read flag no-color")
			}
			v.Set("COLOR", !noColor)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var result *multierror.Error

	supported := false
	for _, n := range supportedBoardSizes {
		if c.BoardSize == n {
			supported = true
		}
	}
	if !supported {
		result = multierror.Append(result, fmt.Errorf("BOARD_SIZE %d is not one of %v", c.BoardSize, supportedBoardSizes))
	}
	if c.Komi < 0 {
		result = multierror.Append(result, fmt.Errorf("KOMI %v must not be negative", c.Komi))
	}
	if _, err := board.ParseSide(c.KomiSide); err != nil {
		result = multierror.Append(result, errors.Wrap(err, "KOMI_SIDE"))
	}
	if _, err := game.ParseCreditPolicy(c.CaptureCredit); err != nil {
		result = multierror.Append(result, errors.Wrap(err, "CAPTURE_CREDIT"))
	}
	if _, err := c.Level(); err != nil {
		result = multierror.Append(result, errors.Wrap(err, "LOG_LEVEL"))
	}

	return result.ErrorOrNil()
}

func (c Config) Level() (zapcore.Level, error) {
	var lvl zapcore.Level
	err := lvl.UnmarshalText([]byte(strings.ToLower(c.LogLevel)))
	return lvl, err
}

// GameOptions converts a validated config into game options.
func (c Config) GameOptions() (game.Options, error) {
	side, err := board.ParseSide(c.KomiSide)
	if err != nil {
		return game.Options{}, err
	}
	credit, err := game.ParseCreditPolicy(c.CaptureCredit)
	if err != nil {
		return game.Options{}, err
	}
	return game.Options{
		BoardSize: c.BoardSize,
		Komi:      c.Komi,
		KomiSide:  side,
		Credit:    credit,
	}, nil
}
