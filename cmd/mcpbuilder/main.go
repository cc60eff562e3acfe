// Command mcpbuilder crawls API documentation and scaffolds an MCP server
// project from it.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/mcpbuilder"
	"github.com/fwojciec/mcpbuilder/crawl"
	"github.com/fwojciec/mcpbuilder/fs"
	"github.com/fwojciec/mcpbuilder/gemini"
	"github.com/fwojciec/mcpbuilder/goquery"
	mcphttp "github.com/fwojciec/mcpbuilder/http"
	"github.com/fwojciec/mcpbuilder/orchestrate"
	mcpslog "github.com/fwojciec/mcpbuilder/slog"
	"github.com/google/uuid"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Getenv looks up environment variables. Defaults to os.Getenv.
	Getenv func(string) string

	// RunID tags every log line of one invocation. Generated if empty.
	RunID string
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		Getenv: os.Getenv,
	}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("mcpbuilder"),
		kong.Description("Generate an MCP server project from API documentation"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle no arguments
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no arguments provided")
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	runID := m.RunID
	if runID == "" {
		runID = uuid.NewString()
	}
	logger := NewLogger(stderr, cli.LogFormat, cli.Verbose).With("run", runID)

	// Remote generator first: a missing credential is fatal before any crawling.
	var primary mcpbuilder.BlueprintGenerator
	var tokenCounter mcpbuilder.TokenCounter
	if !cli.Heuristic {
		getenv := m.Getenv
		if getenv == nil {
			getenv = os.Getenv
		}
		g, err := gemini.NewGenerator(ctx, getenv, gemini.WithModel(cli.Model))
		if err != nil {
			if mcpbuilder.ErrorCode(err) == mcpbuilder.EUNAUTHORIZED {
				fmt.Fprintln(stderr, "Hint: set GEMINI_API_KEY (https://aistudio.google.com/apikey) or pass --heuristic")
			}
			return err
		}
		primary = mcpslog.NewLoggingGenerator(g, "gemini", logger)

		if cli.Verbose {
			tc, err := gemini.NewTokenCounter(g.Model())
			if err != nil {
				logger.Warn("token counting disabled", "err", err)
			} else {
				tokenCounter = tc
			}
		}
	}

	fetcher := mcpslog.NewLoggingFetcher(
		mcphttp.NewFetcher(
			mcphttp.WithTimeout(cli.Timeout),
			mcphttp.WithUserAgent(cli.UserAgent),
		),
		logger,
	)
	defer fetcher.Close()

	crawler := &crawl.Crawler{
		Fetcher:     fetcher,
		Extractor:   goquery.NewExtractor(),
		Logger:      logger,
		MaxPages:    cli.MaxPages,
		Timeout:     cli.Timeout,
		Allow:       cli.Allow,
		Deny:        cli.Deny,
		Concurrency: cli.Concurrency,
	}
	if cli.Sitemap {
		crawler.Sitemaps = mcpslog.NewLoggingSitemapService(
			mcphttp.NewSitemapService(
				mcphttp.WithTimeout(cli.Timeout),
				mcphttp.WithUserAgent(cli.UserAgent),
			),
			logger,
		)
	}
	if cli.RespectRobots {
		crawler.Robots = mcphttp.NewRobotsPolicy(
			mcphttp.WithTimeout(cli.Timeout),
			mcphttp.WithUserAgent(cli.UserAgent),
		)
	}
	if cli.Retry {
		crawler.RetryDelays = crawl.DefaultRetryDelays()
	}
	if cli.RPS > 0 {
		crawler.RateLimiter = crawl.NewDomainLimiter(cli.RPS)
	}

	renderer, err := fs.NewRenderer()
	if err != nil {
		return err
	}

	orchestrator := orchestrate.NewOrchestrator(primary, logger)
	orchestrator.TokenCounter = tokenCounter

	gen := &orchestrate.Generator{
		Crawler:      crawler,
		Orchestrator: orchestrator,
		Renderer:     mcpslog.NewLoggingRenderer(renderer, logger),
		Logger:       logger,
	}
	if cli.SaveDocs != "" {
		gen.Archive = fs.NewArchive(cli.SaveDocs)
	}

	path, err := gen.Generate(ctx, cli.URL, cli.Output)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Project written to %s\n", path)
	return nil
}
