// Command loanquote prints a pre-approval, FHA or quick quote report for a
// scenario in a pre-approval document stored as a YAML or JSON file.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/loan-portal/internal/config"
	"github.com/iwvelando/loan-portal/internal/logging"
	"github.com/iwvelando/loan-portal/internal/output"
	"github.com/iwvelando/loan-portal/internal/preapproval"
	"github.com/iwvelando/loan-portal/internal/quote"
	"github.com/iwvelando/loan-portal/pkg/constants"
	"github.com/iwvelando/loan-portal/pkg/validation"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type options struct {
	configLocation string
	documentPath   string
	agentPath      string
	scenario       string
	report         string
	outputFormat   string
	logLevel       string
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("loanquote", flag.ContinueOnError)
	fs.StringVar(&opts.configLocation, "config", "", "path to configuration file")
	fs.StringVar(&opts.documentPath, "document", "", "path to a pre-approval document (YAML or JSON)")
	fs.StringVar(&opts.agentPath, "agent", "", "path to the loan officer profile printed on pre-approval letters")
	fs.StringVar(&opts.scenario, "scenario", "", "scenario id; empty selects the first scenario")
	fs.StringVar(&opts.report, "report", constants.ReportQuickQuote, "report kind: preapproval, fha, quickquote")
	fs.StringVar(&opts.outputFormat, "output-format", "", "type of output override: pretty, json, yaml")
	fs.StringVar(&opts.logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if opts.documentPath == "" {
		return options{}, fmt.Errorf("-document is required")
	}
	return opts, nil
}

// loadYAML decodes a YAML or JSON file into v through its JSON field names.
func loadYAML(path string, v interface{}) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var tree interface{}
	if err := yaml.Unmarshal(raw, &tree); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	asJSON, err := json.Marshal(tree)
	if err != nil {
		return fmt.Errorf("failed to convert %s: %w", path, err)
	}
	if err := json.Unmarshal(asJSON, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}

func selectScenario(doc *preapproval.Document, raw string) (uuid.UUID, error) {
	if raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return uuid.Nil, fmt.Errorf("invalid scenario id %q: %w", raw, err)
		}
		return id, nil
	}
	if len(doc.Scenarios) == 0 {
		return uuid.Nil, fmt.Errorf("document has no scenarios: %w", quote.ErrNotFound)
	}
	return doc.Scenarios[0].ID, nil
}

func buildReport(opts options, conf *config.Configuration, now time.Time) (interface{}, error) {
	var doc preapproval.Document
	if err := loadYAML(opts.documentPath, &doc); err != nil {
		return nil, err
	}
	quote.FillDerived(&doc)

	scenarioID, err := selectScenario(&doc, opts.scenario)
	if err != nil {
		return nil, err
	}

	switch opts.report {
	case constants.ReportPreApproval:
		var agent *preapproval.Agent
		if opts.agentPath != "" {
			agent = &preapproval.Agent{}
			if err := loadYAML(opts.agentPath, agent); err != nil {
				return nil, err
			}
			agent.Profile = conf.Assets.WithAccessToken(agent.Profile)
		}
		return quote.BuildPreApprovalReport(&doc, scenarioID, agent, now)
	case constants.ReportFHA:
		return quote.BuildFHAReport(&doc, scenarioID, now)
	default:
		return quote.BuildQuickQuote(&doc, scenarioID)
	}
}

// run executes the command and returns the process exit code.
func run(args []string, stdout io.Writer, now time.Time) int {
	opts, err := parseFlags(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"invalid arguments\", \"error\": \"%v\"}\n", err)
		return 2
	}

	conf, err := config.LoadConfiguration(opts.configLocation)
	if err != nil {
		fmt.Fprintf(os.Stderr, "{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load configuration at %s\", \"error\": \"%v\"}\n", opts.configLocation, err)
		return 1
	}

	logger, err := logging.New(conf.Logging, opts.logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		return 1
	}
	defer func() {
		_ = logger.Sync()
	}()

	// CLI override takes precedence over config.
	outputFormat := conf.Output.Format
	if opts.outputFormat != "" {
		outputFormat = opts.outputFormat
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		logger.Error(err.Error(), zap.String("op", "main"))
		return 1
	}
	if err := validation.ValidateReportKind(opts.report); err != nil {
		logger.Error(err.Error(), zap.String("op", "main"))
		return 1
	}

	report, err := buildReport(opts, conf, now)
	if err != nil {
		logger.Error("failed to build report",
			zap.String("op", "main"),
			zap.String("report", opts.report),
			zap.String("document", opts.documentPath),
			zap.Error(err),
		)
		return 1
	}

	if err := output.Write(stdout, outputFormat, report); err != nil {
		logger.Error("failed to write report", zap.String("op", "main"), zap.Error(err))
		return 1
	}
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, time.Now()))
}
