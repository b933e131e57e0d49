package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/iwvelando/mortgage-calculator/internal/calculator"
	"github.com/iwvelando/mortgage-calculator/internal/config"
	"github.com/iwvelando/mortgage-calculator/internal/logging"
	"github.com/iwvelando/mortgage-calculator/pkg/constants"
	"github.com/iwvelando/mortgage-calculator/pkg/output"
	"github.com/iwvelando/mortgage-calculator/pkg/report"
	"github.com/iwvelando/mortgage-calculator/pkg/validation"
	"go.uber.org/zap"
)

func main() {
	// Process command line flags first to get config location
	configLocation := flag.String("config", constants.DefaultConfigFile, "path to configuration file")
	outputFormatFlag := flag.String("output-format", "", "type of output override: pretty, csv, json")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	exportPDF := flag.Bool("export-pdf", false, "write a PDF report for every calculated scenario")
	exportDir := flag.String("export-dir", "", "directory for PDF reports (default from config, then "+constants.DefaultExportDir+")")
	flag.Parse()

	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		logging.FallbackFatal("main", fmt.Sprintf("failed to load configuration at %s", *configLocation), err)
		os.Exit(1)
	}

	logger, err := logging.New(conf.Logging, *logLevel)
	if err != nil {
		logging.FallbackFatal("main", "failed to initialize logger", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// CLI overrides take precedence over config
	outputFormat := conf.Output.Format
	if *outputFormatFlag != "" {
		outputFormat = *outputFormatFlag
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		logger.Fatal(err.Error(),
			zap.String("op", "main"),
		)
	}

	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	results, err := calculator.Calculate(logger, *conf)
	if err != nil {
		logger.Fatal("failed to calculate scenarios",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	switch outputFormat {
	case constants.OutputFormatPretty:
		err = output.PrettyFormat(os.Stdout, results, output.Options{Chart: conf.Output.Chart})
	case constants.OutputFormatCSV:
		err = output.CsvFormat(os.Stdout, results)
	case constants.OutputFormatJSON:
		err = output.JSONFormat(os.Stdout, results)
	}
	if err != nil {
		logger.Fatal("failed to write output",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	if !*exportPDF && !conf.Output.PDF {
		return
	}

	dir := conf.Output.ExportDir
	if *exportDir != "" {
		dir = *exportDir
	}
	if dir == "" {
		dir = constants.DefaultExportDir
	}

	now := time.Now()
	for _, result := range results {
		path, err := report.Export(dir, result, now)
		if err != nil {
			logger.Fatal("failed to export pdf report",
				zap.String("op", "main"),
				zap.String("scenario", result.Name),
				zap.Error(err),
			)
		}
		logger.Info("exported pdf report",
			zap.String("op", "main"),
			zap.String("scenario", result.Name),
			zap.String("path", path),
		)
	}
}
