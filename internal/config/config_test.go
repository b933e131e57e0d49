package config

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iwvelando/mortgage-calculator/pkg/constants"
)

func TestLoadConfigurationMissingFilePointsAtExample(t *testing.T) {
	_, err := LoadConfiguration(filepath.Join(t.TempDir(), "config.yaml"))
	if err == nil {
		t.Fatalf("LoadConfiguration() expected an error for a missing file")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("LoadConfiguration() error = %v, expected it to wrap fs.ErrNotExist", err)
	}
	if !strings.Contains(err.Error(), constants.ExampleConfigFile) {
		t.Errorf("LoadConfiguration() error = %v, expected a hint naming %s", err, constants.ExampleConfigFile)
	}
}

func TestLoadConfiguration(t *testing.T) {
	tests := []struct {
		name       string
		configPath string
		wantError  bool
	}{
		{
			name:       "Non-existent config file",
			configPath: "nonexistent.yaml",
			wantError:  true,
		},
		{
			name:       "Test data config file",
			configPath: "testdata/config.yaml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := LoadConfiguration(tt.configPath)
			if tt.wantError {
				if err == nil {
					t.Errorf("LoadConfiguration() expected error but got none")
				}
				return
			}
			if err != nil {
				t.Errorf("LoadConfiguration() error = %v", err)
				return
			}
			if config == nil {
				t.Errorf("LoadConfiguration() returned nil config")
			}
		})
	}
}

func TestLoadConfigurationStructure(t *testing.T) {
	config, err := LoadConfiguration("testdata/config.yaml")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if config.Currency != "kr" {
		t.Errorf("Expected Currency = kr, got %q", config.Currency)
	}
	if config.Common.InterestRate != "4,5" {
		t.Errorf("Expected common InterestRate = 4,5, got %q", config.Common.InterestRate)
	}
	// Numeric YAML values are decoded into the string inputs.
	if config.Common.TermYears != "30" {
		t.Errorf("Expected common TermYears = 30, got %q", config.Common.TermYears)
	}
	if config.Common.DownPayment != "30000" {
		t.Errorf("Expected common DownPayment = 30000, got %q", config.Common.DownPayment)
	}

	expectedScenarios := []struct {
		name   string
		active bool
	}{
		{"baseline", true},
		{"with extra principal", true},
		{"shorter term", false},
	}
	if len(config.Scenarios) != len(expectedScenarios) {
		t.Fatalf("Expected %d scenarios, got %d", len(expectedScenarios), len(config.Scenarios))
	}
	for i, expected := range expectedScenarios {
		if config.Scenarios[i].Name != expected.name {
			t.Errorf("Expected scenario name %s, got %s", expected.name, config.Scenarios[i].Name)
		}
		if config.Scenarios[i].Active != expected.active {
			t.Errorf("Expected scenario %s active = %v", expected.name, expected.active)
		}
	}
	if config.Scenarios[1].Loan.ExtraPayment != "300" {
		t.Errorf("Expected extra payment 300, got %q", config.Scenarios[1].Loan.ExtraPayment)
	}

	if config.Logging.Level != "warn" || config.Logging.Format != "console" {
		t.Errorf("Unexpected logging config: %+v", config.Logging)
	}
	if config.Output.Format != constants.OutputFormatCSV || config.Output.ExportDir != "reports" || !config.Output.PDF {
		t.Errorf("Unexpected output config: %+v", config.Output)
	}
	if !config.Output.Chart {
		t.Errorf("Expected chart to default to true")
	}
}

func TestLoadConfigurationFromReaderDefaults(t *testing.T) {
	yaml := `
scenarios:
  - name: minimal
    active: true
    loan:
      loanSeeking: "150000"
`
	config, err := LoadConfigurationFromReader(strings.NewReader(yaml))
	if err != nil {
		t.Fatalf("LoadConfigurationFromReader() error = %v", err)
	}

	if config.Currency != constants.DefaultCurrency {
		t.Errorf("Expected default currency %s, got %s", constants.DefaultCurrency, config.Currency)
	}
	if config.Output.Format != constants.OutputFormatPretty {
		t.Errorf("Expected default output format pretty, got %s", config.Output.Format)
	}
	if config.Output.ExportDir != constants.DefaultExportDir {
		t.Errorf("Expected default export dir %s, got %s", constants.DefaultExportDir, config.Output.ExportDir)
	}
	if config.Logging.Level != "info" || config.Logging.Format != "json" {
		t.Errorf("Unexpected default logging config: %+v", config.Logging)
	}
}

func TestLoadConfigurationFromReaderInvalid(t *testing.T) {
	if _, err := LoadConfigurationFromReader(strings.NewReader("scenarios: [unclosed")); err == nil {
		t.Errorf("LoadConfigurationFromReader() expected error for malformed YAML")
	}
}

func TestLoadConfigurationEnvOverride(t *testing.T) {
	t.Setenv("MORTGAGE_CURRENCY", "€")
	t.Setenv("MORTGAGE_OUTPUT_FORMAT", "json")

	config, err := LoadConfiguration("testdata/config.yaml")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if config.Currency != "€" {
		t.Errorf("Expected env currency €, got %s", config.Currency)
	}
	if config.Output.Format != constants.OutputFormatJSON {
		t.Errorf("Expected env output format json, got %s", config.Output.Format)
	}
}

func TestActiveScenarios(t *testing.T) {
	config, err := LoadConfiguration("testdata/config.yaml")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	active := config.ActiveScenarios()
	if len(active) != 2 {
		t.Fatalf("Expected 2 active scenarios, got %d", len(active))
	}
	for _, scenario := range active {
		if scenario.Name == "shorter term" {
			t.Errorf("Inactive scenario returned as active")
		}
	}
}

func TestCurrencySymbol(t *testing.T) {
	tests := []struct {
		currency string
		expected string
	}{
		{"", "kr"},
		{"kr", "kr"},
		{"USD", "$"},
		{"gbp", "£"},
		{"CHF", "CHF"},
	}

	for _, tt := range tests {
		c := Configuration{Currency: tt.currency}
		if got := c.CurrencySymbol(); got != tt.expected {
			t.Errorf("CurrencySymbol(%q) = %q, expected %q", tt.currency, got, tt.expected)
		}
	}
}
