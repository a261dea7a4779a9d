package app

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/betaox/pkg/constants"
	"github.com/agentstation/betaox/pkg/errors"
)

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string `validate:"omitempty,oneof=table json yaml wide"`

	// Config file
	ConfigFile string

	// Run configuration
	Tolerance     float64 `validate:"gt=0"`
	XRayFile      string
	BetaXFile     string
	OpticalFile   string
	FrequencyFile string
	OutputDir     string `validate:"required"`
	Plot          bool
	DeltaBeta     bool
	Interactive   bool

	// Logging configuration
	LogLevel  string
	LogFormat string `validate:"omitempty,oneof=auto json console pretty"`
	LogOutput string
}

// configValidator checks struct tags on Config.
var configValidator = validator.New()

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables prefixed with BETAOX_
// 3. .env files
// 4. Config file (~/.betaox.yaml or ./.betaox.yaml)
// 5. Defaults
func LoadConfig() (*Config, error) {
	return LoadConfigFile("")
}

// LoadConfigFile loads configuration like LoadConfig, reading configFile
// instead of searching the standard locations when it is non-empty.
func LoadConfigFile(configFile string) (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix(constants.EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	v.SetDefault("tolerance", constants.DefaultTolerance)
	v.SetDefault("output_dir", constants.DefaultOutputDir)

	if configFile == "" {
		configFile = v.GetString("config")
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(constants.DefaultConfigName)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.NewConfigError("config file", err.Error(), err)
		}
	}

	config := &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no_color"),
		Format:  v.GetString("format"),

		ConfigFile: v.ConfigFileUsed(),

		Tolerance:     v.GetFloat64("tolerance"),
		XRayFile:      v.GetString("xray_file"),
		BetaXFile:     v.GetString("beta_x_file"),
		OpticalFile:   v.GetString("optical_file"),
		FrequencyFile: v.GetString("frequency_file"),
		OutputDir:     v.GetString("output_dir"),
		Plot:          v.GetBool("plot"),
		DeltaBeta:     v.GetBool("delta_beta"),
		Interactive:   v.GetBool("interactive"),

		LogLevel:  getEnvOrDefault("LOG_LEVEL", v.GetString("log_level")),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput: getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the configuration values against their constraints.
func (c *Config) Validate() error {
	err := configValidator.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		msg := fmt.Sprintf("failed %q constraint", fe.Tag())
		if fe.Param() != "" {
			msg = fmt.Sprintf("failed %q constraint (%s)", fe.Tag(), fe.Param())
		}
		return errors.NewValidationError(fe.Field(), fe.Value(), msg)
	}
	return errors.NewValidationError("", nil, err.Error())
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// loadEnvFiles loads environment variables from .env files.
// godotenv never overrides a set variable, so .env.local is loaded first.
func loadEnvFiles() {
	envFiles := []string{
		".env.local",
		".env",
	}

	for _, envFile := range envFiles {
		_ = godotenv.Load(envFile)
	}
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
