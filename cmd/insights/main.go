package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aluiziolira/go-catalog-insights/analysis"
	"github.com/aluiziolira/go-catalog-insights/config"
	"github.com/aluiziolira/go-catalog-insights/models"
	"github.com/aluiziolira/go-catalog-insights/output"
	"github.com/aluiziolira/go-catalog-insights/report"
	"github.com/aluiziolira/go-catalog-insights/scraper"
)

func main() {
	// .env is optional; flags and real env vars win over it.
	_ = godotenv.Load()

	defaultCfg := config.DefaultConfig()
	pagesDefault := defaultCfg.MaxPages
	if value, ok, err := config.EnvInt("INSIGHTS_PAGES"); err != nil {
		fmt.Fprintf(os.Stderr, "invalid INSIGHTS_PAGES: %v\n", err)
		os.Exit(1)
	} else if ok {
		pagesDefault = value
	}
	outputDefault := defaultCfg.OutputFile
	if value, ok := config.EnvString("INSIGHTS_OUTPUT"); ok {
		outputDefault = value
	}
	metricsDefault := defaultCfg.MetricsAddr
	if value, ok := config.EnvString("INSIGHTS_METRICS_ADDR"); ok {
		metricsDefault = value
	}

	baseURL := flag.String("base-url", defaultCfg.BaseURL, "Base URL to crawl")
	maxPages := flag.Int("pages", pagesDefault, "Maximum catalog pages to crawl")
	pageDelayMs := flag.Int("page-delay", int(defaultCfg.PageDelay/time.Millisecond), "Courtesy delay between pages (milliseconds)")
	timeoutSec := flag.Int("timeout", int(defaultCfg.Timeout/time.Second), "Page-load timeout (seconds)")
	provider := flag.String("provider", defaultCfg.Provider, "Page source: http or browser")
	outputFile := flag.String("output", outputDefault, "Output file path")
	outputFormat := flag.String("format", defaultCfg.OutputFormat, "Output format: csv, json, or dual")
	reportFile := flag.String("report", "", "Write the text report to this file (default stdout)")
	metricsAddr := flag.String("metrics-addr", metricsDefault, "Prometheus metrics listen address (e.g. :9090)")
	verbose := flag.Bool("v", false, "Enable verbose logging")

	flag.Parse()

	logger, level := newLogger(*verbose)
	slog.SetDefault(logger)
	slog.SetLogLoggerLevel(level.Level())

	cfg := config.DefaultConfig()
	cfg.BaseURL = *baseURL
	cfg.MaxPages = *maxPages
	cfg.PageDelay = time.Duration(*pageDelayMs) * time.Millisecond
	cfg.Timeout = time.Duration(*timeoutSec) * time.Second
	cfg.Provider = strings.ToLower(*provider)
	cfg.OutputFile = *outputFile
	cfg.OutputFormat = strings.ToLower(*outputFormat)
	cfg.ReportFile = *reportFile
	cfg.MetricsAddr = *metricsAddr
	cfg.Verbose = *verbose

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pageSource, err := newProvider(ctx, cfg)
	if err != nil {
		slog.Error("initialising page provider", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := pageSource.Close(); err != nil {
			slog.Error("close page provider", slog.Any("error", err))
		}
	}()

	metrics := scraper.NewMetrics()
	crawler, err := scraper.NewCrawler(cfg, pageSource, metrics)
	if err != nil {
		slog.Error("initialising crawler", slog.Any("error", err))
		os.Exit(1)
	}

	var metricsServer *http.Server
	if cfg.MetricsAddr != "" {
		metricsServer = &http.Server{
			Addr:    cfg.MetricsAddr,
			Handler: promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}),
		}
		go func() {
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				slog.Error("metrics server failed", slog.Any("error", err))
			}
		}()
		slog.Info("metrics server enabled", slog.String("addr", cfg.MetricsAddr))
	}

	slog.Info("starting crawl",
		slog.String("base_url", cfg.BaseURL),
		slog.String("provider", cfg.Provider),
		slog.Int("pages", cfg.MaxPages),
	)

	result, err := crawler.Crawl(ctx)
	if err != nil {
		slog.Error("crawl failed", slog.Any("error", err))
		os.Exit(1)
	}

	summary := analysis.NewAnalyzer().Run(result.Records)

	writer, err := createWriter(cfg.OutputFormat, cfg.OutputFile)
	if err != nil {
		slog.Error("creating writer", slog.Any("error", err))
		os.Exit(1)
	}
	if err := writer.Write(result.Records); err != nil {
		slog.Error("writing records", slog.Any("error", err))
		os.Exit(1)
	}
	if err := writer.Close(); err != nil {
		slog.Error("close writer", slog.Any("error", err))
		os.Exit(1)
	}
	if err := writer.Validate(); err != nil {
		slog.Error("output validation failed", slog.Any("error", err))
		os.Exit(1)
	}

	if err := emitReport(cfg.ReportFile, summary); err != nil {
		slog.Error("writing report", slog.Any("error", err))
		os.Exit(1)
	}

	if metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("metrics server shutdown failed", slog.Any("error", err))
		}
		cancel()
	}

	printSummary(result, summary, cfg.OutputFile)
}

func newProvider(ctx context.Context, cfg *config.Config) (scraper.PageProvider, error) {
	switch cfg.Provider {
	case config.ProviderBrowser:
		return scraper.NewChromeProvider(ctx, cfg)
	case config.ProviderHTTP:
		return scraper.NewCollyProvider(cfg)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", cfg.Provider)
	}
}

func createWriter(format, filename string) (output.Writer, error) {
	switch format {
	case "json":
		return output.NewJSONWriter(filename)
	case "csv":
		return output.NewCSVWriter(filename)
	case "dual":
		jsonFilename := strings.TrimSuffix(filename, ".csv") + ".json"
		return output.NewDualWriter(filename, jsonFilename)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

func emitReport(path string, summary *models.Summary) error {
	assembler := report.NewAssembler("Catalog Insights")
	if path == "" {
		return assembler.WriteTo(os.Stdout, summary)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	defer f.Close()
	return assembler.WriteTo(f, summary)
}

func printSummary(result *models.CrawlResult, summary *models.Summary, outputFile string) {
	separator := "--------------------------------------------------"
	fmt.Println("\n" + separator)
	fmt.Println("Crawl complete")
	fmt.Printf("  Pages visited: %d\n", result.PageCount)
	fmt.Printf("  Total records: %d\n", summary.TotalRecords)
	if summary.PriceMedian != nil {
		fmt.Printf("  Median price:  %.2f\n", *summary.PriceMedian)
	}
	if len(summary.ClusterCenters) == 2 {
		fmt.Printf("  Cluster centers: %.2f / %.2f\n", summary.ClusterCenters[0], summary.ClusterCenters[1])
	}
	fmt.Printf("  Duration:      %v\n", result.EndTime.Sub(result.StartTime))
	fmt.Printf("  Output file:   %s\n", outputFile)
	fmt.Println(separator)
}

func newLogger(verbose bool) (*slog.Logger, *slog.LevelVar) {
	level := &slog.LevelVar{}
	if verbose {
		level.Set(slog.LevelDebug)
	} else {
		level.Set(slog.LevelInfo)
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if isTerminal(os.Stdout) {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return slog.New(handler), level
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
