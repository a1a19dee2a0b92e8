package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"sessionreport/internal/config"
	"sessionreport/internal/gateway"
	"sessionreport/internal/logger"
	"sessionreport/internal/report"
	"sessionreport/internal/usecase"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.New(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx := logger.WithContext(context.Background(), log)

	var err error
	switch os.Args[1] {
	case "merchants":
		err = runMerchants(ctx, cfg, os.Args[2:], os.Stdout)
	case "report":
		err = runReport(ctx, cfg, os.Args[2:], os.Stdout)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("Command failed")
	}
}

func printUsage() {
	fmt.Println("Session Report")
	fmt.Println("\nUsage:")
	fmt.Println("  sessionreport <command> [options]")
	fmt.Println("\nCommands:")
	fmt.Println("  merchants  List the merchants in a statement export")
	fmt.Println("  report     Build the usage session report")
	fmt.Println("  help       Show this help message")
	fmt.Println("\nRun 'sessionreport <command> -h' for more information on a command.")
}

// newUseCase wires the application.
func newUseCase(cfg *config.Config) *usecase.AnalysisUseCase {
	csvRepo := gateway.NewCSVTransactionRepository(cfg.GatewayOptions())
	return usecase.NewAnalysisUseCase(csvRepo, cfg.UsecaseOptions())
}

func runMerchants(ctx context.Context, cfg *config.Config, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("merchants", flag.ExitOnError)
	input := fs.String("input", "", "Path to the statement CSV export (required)")
	fs.Parse(args)

	if *input == "" {
		return fmt.Errorf("-input is required")
	}

	listing, err := newUseCase(cfg).ListMerchants(ctx, *input)
	if err != nil {
		return err
	}
	return writeJSON(out, listing)
}

func runReport(ctx context.Context, cfg *config.Config, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	input := fs.String("input", "", "Path to the statement CSV export (required)")
	merchantsStr := fs.String("merchants", "", "Comma-separated merchant names (defaults to keyword matches)")
	outDir := fs.String("out", cfg.OutputDir, "Directory for the report artifact")
	format := fs.String("format", "markdown", "Output printed to stdout: markdown or json")
	fs.Parse(args)

	if *input == "" {
		return fmt.Errorf("-input is required")
	}
	if *format != "markdown" && *format != "json" {
		return fmt.Errorf("unknown format %q", *format)
	}

	rep, err := newUseCase(cfg).Analyze(ctx, *input, splitMerchants(*merchantsStr))
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	art, err := report.Write(*outDir, rep, cfg.ReportOptions())
	if err != nil {
		return err
	}
	log := logger.FromContext(ctx)
	log.Info().Str("run_id", rep.RunID).Str("dir", art.Dir).Msg("Report written")

	if *format == "json" {
		return writeJSON(out, rep)
	}
	_, err = fmt.Fprint(out, report.RenderMarkdown(rep, cfg.ReportOptions()))
	return err
}

// splitMerchants returns nil for an empty flag so the defaults apply.
func splitMerchants(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var merchants []string
	for _, m := range strings.Split(s, ",") {
		if m = strings.TrimSpace(m); m != "" {
			merchants = append(merchants, m)
		}
	}
	return merchants
}

func writeJSON(out io.Writer, v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode JSON output: %w", err)
	}
	_, err = fmt.Fprintln(out, string(output))
	return err
}
