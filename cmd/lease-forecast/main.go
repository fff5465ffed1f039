// Command lease-forecast projects engine lease profit and runs out
// maintenance reserve contracts from a YAML configuration.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/iwvelando/lease-forecast/internal/config"
	"github.com/iwvelando/lease-forecast/internal/forecast"
	"github.com/iwvelando/lease-forecast/pkg/constants"
	"github.com/iwvelando/lease-forecast/pkg/output"
	"github.com/iwvelando/lease-forecast/pkg/validation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "lease-forecast",
		Short:         "Engine lease projections and maintenance reserve runouts",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("config", constants.DefaultConfigFile, "path to configuration file")
	root.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")
	root.PersistentFlags().String("output-format", "", "output format override: pretty, csv, json, yaml")

	root.AddCommand(newProjectCmd(), newRunoutCmd(), newValidateCmd(), newVersionCmd())
	return root
}

// session is a loaded, validated configuration together with its logger.
type session struct {
	conf         *config.Configuration
	logger       *zap.Logger
	outputFormat string
}

// loadSession loads the configuration named by the persistent flags, builds
// the logger and validates everything the subcommands rely on.
func loadSession(cmd *cobra.Command) (*session, error) {
	configLocation, _ := cmd.Flags().GetString("config")
	logLevel, _ := cmd.Flags().GetString("log-level")
	outputFormatFlag, _ := cmd.Flags().GetString("output-format")

	conf, err := config.LoadConfiguration(configLocation)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration at %s: %w", configLocation, err)
	}

	logger, err := initializeLogger(conf.Logging, logLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	conf.Normalize()
	outputFormat := conf.Output.Format
	if flagFormat := strings.ToLower(strings.TrimSpace(outputFormatFlag)); flagFormat != "" {
		outputFormat = flagFormat
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		return nil, err
	}

	if err := conf.ParseDates(); err != nil {
		return nil, fmt.Errorf("failed to parse dates: %w", err)
	}
	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}
	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &session{conf: conf, logger: logger, outputFormat: outputFormat}, nil
}

func newProjectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "project",
		Short: "Project lease profit for every active scenario",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSession(cmd)
			if err != nil {
				return err
			}
			defer func() {
				_ = s.logger.Sync()
			}()

			results, err := forecast.GetForecast(s.logger, *s.conf)
			if err != nil {
				s.logger.Fatal("failed to compute forecast",
					zap.String("op", "main"),
					zap.Error(err),
				)
			}
			return output.Forecasts(cmd.OutOrStdout(), s.outputFormat, results)
		},
	}
}

func newRunoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runout",
		Short: "Run out the maintenance reserve contract and export it to CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSession(cmd)
			if err != nil {
				return err
			}
			defer func() {
				_ = s.logger.Sync()
			}()

			result, err := forecast.GetRunout(s.logger, *s.conf)
			if err != nil {
				s.logger.Fatal("failed to compute runout",
					zap.String("op", "main"),
					zap.Error(err),
				)
			}

			if err := output.Runout(cmd.OutOrStdout(), s.outputFormat, result); err != nil {
				return err
			}

			csvFile, _ := cmd.Flags().GetString("csv-file")
			if csvFile == "" {
				csvFile = s.conf.Output.CSVFile
			}
			exported := result.Result
			if result.Solved != nil {
				exported = *result.Solved
			}
			if err := output.WriteRunoutCSV(csvFile, exported); err != nil {
				return err
			}
			s.logger.Info("runout results saved",
				zap.String("op", "main"),
				zap.String("file", csvFile),
				zap.Int("periods", len(exported.Periods)),
			)
			return nil
		},
	}
	cmd.Flags().String("csv-file", "", "runout CSV export path (default from output.csvFile)")
	return cmd
}

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Load and validate the configuration, printing any warnings",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSession(cmd)
			if err != nil {
				return err
			}
			defer func() {
				_ = s.logger.Sync()
			}()

			out := cmd.OutOrStdout()
			warnings := s.conf.ValidateConfiguration()
			fmt.Fprintf(out, "configuration is valid: %d active scenario(s), runout configured: %t, %d warning(s)\n",
				len(s.conf.ActiveScenarios()), s.conf.Runout != nil, len(warnings))
			for _, warning := range warnings {
				fmt.Fprintf(out, "  warning: %s\n", warning)
			}

			if printConfig, _ := cmd.Flags().GetBool("print-config"); printConfig {
				return output.YAMLFormat(out, s.conf)
			}
			return nil
		},
	}
	cmd.Flags().Bool("print-config", false, "print the effective configuration after defaults")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "lease-forecast %s\n", version)
			fmt.Fprintf(out, "  commit:  %s\n", commit)
			fmt.Fprintf(out, "  built:   %s\n", date)
		},
	}
}
