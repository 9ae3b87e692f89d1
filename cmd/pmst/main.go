package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/pmst"
	"github.com/fwojciec/pmst/goquery"
	pmsthttp "github.com/fwojciec/pmst/http"
	"github.com/fwojciec/pmst/registry"
	"github.com/fwojciec/pmst/rod"
	pmstslog "github.com/fwojciec/pmst/slog"
	"github.com/fwojciec/pmst/sqlite"
	pmstyaml "github.com/fwojciec/pmst/yaml"
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
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Fetcher retrieves registry pages. Defaults to an HTTP fetcher built
	// from the configuration; tests replace it.
	Fetcher pmst.Fetcher

	// Reports is the report store wired during Run.
	Reports pmst.ReportService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Parser: goquery.NewParser(),
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("pmst"),
		kong.Description("Extract structured data from Protected Matters Search Tool reports."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'pmst --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	deps.Config = pmst.DefaultConfig()
	if cli.ConfigFile != "" {
		cfg, err := pmstyaml.LoadConfig(cli.ConfigFile)
		if err != nil {
			fmt.Fprintf(stderr, "error: %s\n", pmst.ErrorMessage(err))
			return err
		}
		deps.Config = cfg
	}

	if needsDB(cmd, cli) {
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set PMST_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()

		m.Reports = pmstslog.NewLoggingReportService(sqlite.NewReportService(m.DB), deps.Logger)
		deps.Reports = m.Reports
	}

	if cmd == "report" && cli.Report.Fetch {
		fetcher, err := m.fetcher(cli.Report.Browser, deps.Config)
		if err != nil {
			fmt.Fprintf(stderr, "error: %s\n", pmst.ErrorMessage(err))
			return err
		}
		defer fetcher.Close()

		pages := pmstslog.NewLoggingPageFetcher(
			goquery.NewPageFetcher(pmstslog.NewLoggingFetcher(fetcher, deps.Logger)),
			deps.Logger,
		)
		entities := registry.NewFetcher(pages, deps.Config, registry.WithLogger(deps.Logger))
		deps.Enricher = registry.NewEnricher(entities, deps.Config.Rules, deps.Logger)
	}

	return kongCtx.Run(deps)
}

// fetcher returns m.Fetcher if set, else a browser or HTTP fetcher built
// from cfg.
func (m *Main) fetcher(browser bool, cfg *pmst.Config) (pmst.Fetcher, error) {
	if m.Fetcher != nil {
		return m.Fetcher, nil
	}
	if browser {
		return rod.NewFetcher(rod.WithFetchTimeout(cfg.Fetch.Timeout))
	}
	return pmsthttp.NewFetcher(
		pmsthttp.WithTimeout(cfg.Fetch.Timeout),
		pmsthttp.WithUserAgent(cfg.Fetch.UserAgent),
	), nil
}

func needsDB(cmd string, cli *CLI) bool {
	switch cmd {
	case "list", "show", "delete":
		return true
	case "report":
		return cli.Report.Save
	}
	return false
}

func defaultDBPath() string {
	if path := os.Getenv("PMST_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "pmst.db"
	}
	dir := filepath.Join(home, ".pmst")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "pmst.db")
}
