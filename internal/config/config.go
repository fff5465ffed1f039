// Package config defines the data structures related to configuration and
// includes functions for loading, parsing and validating the config.
package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/lease-forecast/pkg/constants"
	"github.com/iwvelando/lease-forecast/pkg/validation"
	"github.com/spf13/viper"
)

// DateLayout is the format expected in config files and is also the output
// date format.
const DateLayout = constants.DateLayout

// Configuration holds all configuration for lease-forecast.
type Configuration struct {
	Logging   LoggingConfig `yaml:"logging,omitempty" mapstructure:"logging"`
	Output    OutputConfig  `yaml:"output,omitempty" mapstructure:"output"`
	Scenarios []Scenario    `yaml:"scenarios,omitempty" mapstructure:"scenarios"`
	Runout    *RunoutConfig `yaml:"runout,omitempty" mapstructure:"runout"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty" mapstructure:"level"`           // debug, info, warn, error
	Format     string `yaml:"format,omitempty" mapstructure:"format"`         // json, console
	OutputFile string `yaml:"outputFile,omitempty" mapstructure:"outputFile"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format  string `yaml:"format,omitempty" mapstructure:"format"`   // pretty, csv, json, yaml
	CSVFile string `yaml:"csvFile,omitempty" mapstructure:"csvFile"` // runout export path
}

// Scenario holds one lease projection.
type Scenario struct {
	Name     string          `yaml:"name" mapstructure:"name"`
	Active   bool            `yaml:"active" mapstructure:"active"`
	Rate     *float64        `yaml:"rate,omitempty" mapstructure:"rate"`
	Lease    LeaseConfig     `yaml:"lease,omitempty" mapstructure:"lease"`
	GoalSeek *GoalSeekConfig `yaml:"goalSeek,omitempty" mapstructure:"goalSeek"`
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()

	viper.SetConfigType("yml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	err := viper.Unmarshal(&configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r
// using a dedicated viper instance.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yml")

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config, %s", err)
	}

	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// ParseDates parses every date string in the configuration into its
// time.Time counterpart.
func (conf *Configuration) ParseDates() error {
	if conf.Runout == nil {
		return nil
	}
	if err := conf.Runout.ParseDates(); err != nil {
		return fmt.Errorf("runout: %w", err)
	}
	return nil
}

// Normalize applies defaults throughout the configuration.
func (conf *Configuration) Normalize() {
	conf.Output.Format = strings.ToLower(strings.TrimSpace(conf.Output.Format))
	if conf.Output.Format == "" {
		conf.Output.Format = constants.OutputFormatPretty
	}
	if strings.TrimSpace(conf.Output.CSVFile) == "" {
		conf.Output.CSVFile = constants.DefaultRunoutCSVFile
	}
	for i := range conf.Scenarios {
		conf.Scenarios[i].GoalSeek.Normalize()
	}
	if conf.Runout != nil {
		conf.Runout.Normalize()
	}
}

// ActiveScenarios returns the scenarios flagged active.
func (conf *Configuration) ActiveScenarios() []Scenario {
	var active []Scenario
	for _, s := range conf.Scenarios {
		if s.Active {
			active = append(active, s)
		}
	}
	return active
}

// Validate returns an error for the first setting that would make a run fail.
// Dates must have been parsed.
func (conf *Configuration) Validate() error {
	if err := validation.ValidateOutputFormat(conf.Output.Format); err != nil {
		return err
	}
	for _, scenario := range conf.Scenarios {
		if !scenario.Active {
			continue
		}
		if strings.TrimSpace(scenario.Name) == "" {
			return fmt.Errorf("every active scenario needs a name")
		}
		if scenario.Rate != nil && *scenario.Rate < 0 {
			return fmt.Errorf("scenario %s: rate cannot be negative", scenario.Name)
		}
		if err := scenario.Lease.Params().Validate(); err != nil {
			return fmt.Errorf("scenario %s: %w", scenario.Name, err)
		}
		if scenario.GoalSeek != nil {
			if err := scenario.GoalSeek.Validate(); err != nil {
				return fmt.Errorf("scenario %s: %w", scenario.Name, err)
			}
		}
	}
	if conf.Runout != nil {
		if err := conf.Runout.Validate(); err != nil {
			return fmt.Errorf("runout: %w", err)
		}
	}
	return nil
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (conf *Configuration) ValidateConfiguration() []string {
	validator := validation.ConfigValidator{}
	for _, scenario := range conf.Scenarios {
		sc := validation.ScenarioConfig{
			Name:   scenario.Name,
			Active: scenario.Active,
		}
		if scenario.GoalSeek != nil {
			sc.GoalSeekTarget = &scenario.GoalSeek.Target
		}
		validator.Scenarios = append(validator.Scenarios, sc)
	}

	if conf.Runout != nil {
		r := conf.Runout
		rc := &validation.RunoutConfig{
			ContractStartDate: warningDate(r.contractStart, r.ContractStartDate),
			ContractEndDate:   warningDate(r.contractEnd, r.ContractEndDate),
			ValuationDate:     warningDate(r.valuation, r.ValuationDate),
			RateTrendLength:   len(r.RateTrend),
			ContractYears:     r.ContractYears(),
			WarrantyRate:      r.Rates.Warranty,
		}
		for _, e := range r.Engines {
			rc.Engines = append(rc.Engines, validation.EngineConfig{
				ID:              e.ID,
				WarrantyExpDate: warningDate(e.warrantyExp, e.WarrantyExpDate),
			})
		}
		validator.Runout = rc
	}

	return validator.ValidateAll()
}
