// Package config defines the data structures related to configuration and
// includes functions for loading and checking the YAML scenario file.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/iwvelando/mortgage-calculator/pkg/constants"
	"github.com/iwvelando/mortgage-calculator/pkg/format"
	"github.com/iwvelando/mortgage-calculator/pkg/validation"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for mortgage-calculator.
type Configuration struct {
	Currency  string               `yaml:"currency,omitempty"`
	Common    validation.LoanInput `yaml:"common,omitempty"`
	Scenarios []Scenario           `yaml:"scenarios"`
	Logging   LoggingConfig        `yaml:"logging,omitempty"`
	Output    OutputConfig         `yaml:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format    string `yaml:"format,omitempty"` // pretty, csv, json
	ExportDir string `yaml:"exportDir,omitempty"`
	PDF       bool   `yaml:"pdf,omitempty"`   // write one PDF report per scenario
	Chart     bool   `yaml:"chart,omitempty"` // include the bar chart in pretty output
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	if _, err := os.Stat(configPath); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config file %s not found, %s is a starting point: %w",
			configPath, constants.ExampleConfigFile, err)
	}

	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	return decode(v)
}

// LoadConfigurationFromReader loads YAML configuration from r, e.g. an
// uploaded file or an embedded example.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config, %s", err)
	}

	return decode(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")

	// Defaults double as the key set AutomaticEnv can override,
	// e.g. MORTGAGE_CURRENCY or MORTGAGE_OUTPUT_FORMAT.
	v.SetDefault("currency", constants.DefaultCurrency)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("output.format", constants.OutputFormatPretty)
	v.SetDefault("output.exportDir", constants.DefaultExportDir)
	v.SetDefault("output.pdf", false)
	v.SetDefault("output.chart", true)

	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	return &configuration, nil
}

// ActiveScenarios returns the scenarios flagged active, in file order.
func (c *Configuration) ActiveScenarios() []Scenario {
	var active []Scenario
	for _, scenario := range c.Scenarios {
		if scenario.Active {
			active = append(active, scenario)
		}
	}
	return active
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if len(c.Scenarios) == 0 {
		return append(warnings, "no scenarios defined; nothing will be calculated")
	}

	if err := validation.ValidateCurrency(c.Currency); err != nil {
		warnings = append(warnings, fmt.Sprintf("%s; it will be shown as-is", err))
	}

	seen := make(map[string]bool, len(c.Scenarios))
	active := 0
	for i, scenario := range c.Scenarios {
		if scenario.Name == "" {
			warnings = append(warnings, fmt.Sprintf("scenario %d has no name", i+1))
		} else if seen[scenario.Name] {
			warnings = append(warnings, fmt.Sprintf("scenario name %q is used more than once", scenario.Name))
		}
		seen[scenario.Name] = true

		if !scenario.Active {
			continue
		}
		active++

		loan := scenario.LoanInput(c.Common)
		if strings.TrimSpace(loan.LoanSeeking) == "" {
			warnings = append(warnings, fmt.Sprintf("scenario %q has no loanSeeking amount", scenario.Name))
		}
		if strings.TrimSpace(loan.PrincipalPayment) == "" {
			warnings = append(warnings, fmt.Sprintf("scenario %q has no principalPayment; the payoff projection will be skipped", scenario.Name))
		}
	}

	if active == 0 {
		warnings = append(warnings, "no active scenarios; nothing will be calculated")
	}

	return warnings
}

// CurrencySymbol returns the configured display symbol, or the default.
func (c *Configuration) CurrencySymbol() string {
	if c.Currency == "" {
		return constants.DefaultCurrency
	}
	return format.Symbol(c.Currency)
}
