package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Configuration represents the totality of configuration knobs and dials for
// the tool.
type Configuration struct {
	LogLevel            string `yaml:"logLevel"`
	LogFile             string `yaml:"logFile"`
	ConfigFile          string `yaml:"configFile"`
	ImageFile           string `yaml:"imageFile"`
	MaxAttempts         int64  `yaml:"maxAttempts"`
	Prefix              string `yaml:"prefix"`
	StopOnFailure       bool   `yaml:"stopOnFailure"`
	ShowOutputOnFailure bool   `yaml:"showOutputOnFailure"`
	ShowOutputOnSuccess bool   `yaml:"showOutputOnSuccess"`
	SingularityExe      string `yaml:"singularityExe"`
	UseDigest           bool   `yaml:"useDigest"`
}

// FromCmdLine has a flag for every command-line option. The parsing code
// sets the flag to true if the option was explicitly provided on the command
// line by the user.
type FromCmdLine struct {
	Command             string
	LogLevel            bool
	LogFile             bool
	ConfigFile          bool
	ImageFile           bool
	MaxAttempts         bool
	Prefix              bool
	StopOnFailure       bool
	ShowOutputOnFailure bool
	ShowOutputOnSuccess bool
	SingularityExe      bool
	UseDigest           bool
}

var config Configuration

func GetLogLevel() string {
	return config.LogLevel
}

func GetLogFile() string {
	return config.LogFile
}

func GetConfigFile() string {
	return config.ConfigFile
}

func GetImageFile() string {
	return config.ImageFile
}

func GetMaxAttempts() int64 {
	return config.MaxAttempts
}

func GetPrefix() string {
	return config.Prefix
}

func GetStopOnFailure() bool {
	return config.StopOnFailure
}

func GetShowOutputOnFailure() bool {
	return config.ShowOutputOnFailure
}

func GetShowOutputOnSuccess() bool {
	return config.ShowOutputOnSuccess
}

func GetSingularityExe() string {
	return config.SingularityExe
}

func GetUseDigest() bool {
	return config.UseDigest
}

// Load loads the passed configuration file into the configuration struct
func Load(configFile string) error {
	if _, err := os.Stat(configFile); err != nil {
		return fmt.Errorf("unable to stat configuration file: %s", configFile)
	}
	if contents, err := os.ReadFile(configFile); err != nil {
		return fmt.Errorf("error reading configuration file: %s", configFile)
	} else if err := SetConfigFromStr(contents); err != nil {
		return fmt.Errorf("error parsing configuration file: %s, the error was: %s", configFile, err)
	}
	return nil
}

// Merge takes a struct indicating which configuration options have been provided on the command
// line, as well as a configuration struct parsed from the command line which ALSO includes defaults
// that the user didn't specify. For example the default max attempts is 3 and if you don't specify
// that on the command line - it gets defaulted into the parsed configuration struct. So:
//
//  1. User provided a value: overwrite current config using the user's value
//  2. User did not provide a value, current config is unspecified: use the default in the parsed config
//  3. User did not provide a value, current config is specified: leave the current config untouched
func Merge(fromCmdline FromCmdLine, cfg Configuration) {
	if fromCmdline.LogLevel || config.LogLevel == "" {
		config.LogLevel = cfg.LogLevel
	}
	if fromCmdline.LogFile || config.LogFile == "" {
		config.LogFile = cfg.LogFile
	}
	if fromCmdline.ConfigFile || config.ConfigFile == "" {
		config.ConfigFile = cfg.ConfigFile
	}
	if fromCmdline.ImageFile || config.ImageFile == "" {
		config.ImageFile = cfg.ImageFile
	}
	if fromCmdline.MaxAttempts || config.MaxAttempts == 0 {
		config.MaxAttempts = cfg.MaxAttempts
	}
	if fromCmdline.Prefix || config.Prefix == "" {
		config.Prefix = cfg.Prefix
	}
	if fromCmdline.StopOnFailure || !config.StopOnFailure {
		config.StopOnFailure = cfg.StopOnFailure
	}
	if fromCmdline.ShowOutputOnFailure || !config.ShowOutputOnFailure {
		config.ShowOutputOnFailure = cfg.ShowOutputOnFailure
	}
	if fromCmdline.ShowOutputOnSuccess || !config.ShowOutputOnSuccess {
		config.ShowOutputOnSuccess = cfg.ShowOutputOnSuccess
	}
	if fromCmdline.SingularityExe || config.SingularityExe == "" {
		config.SingularityExe = cfg.SingularityExe
	}
	if fromCmdline.UseDigest || !config.UseDigest {
		config.UseDigest = cfg.UseDigest
	}
}

// Get gets the current configuration
func Get() Configuration {
	return config
}

// Set replaces the configuration with the passed configuration
func Set(cfg Configuration) {
	config = cfg
}

// SetConfigFromStr parses the yaml input and sets the configuration from it
func SetConfigFromStr(configBytes []byte) error {
	var cfg Configuration
	if err := yaml.Unmarshal(configBytes, &cfg); err != nil {
		return err
	} else {
		config = cfg
	}
	return nil
}
