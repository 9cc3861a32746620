// Command postcollect downloads web pages, extracts their article content
// and keeps the results in a local SQLite database.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"

	"github.com/mrjoshuak/postcollect"
	"github.com/mrjoshuak/postcollect/internal/config"
	"github.com/mrjoshuak/postcollect/internal/fetch"
	"github.com/mrjoshuak/postcollect/internal/logging"
	"github.com/mrjoshuak/postcollect/internal/markdown"
	"github.com/mrjoshuak/postcollect/internal/siteconfig"
	"github.com/mrjoshuak/postcollect/internal/store/sqlite"
	"github.com/mrjoshuak/postcollect/types"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()
	m.Stdin = os.Stdin

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Config is loaded from the --config file or the environment when nil.
	Config *config.Config

	// Stdin is read by "--input -".
	Stdin io.Reader

	// SQLite database used by the article store.
	DB *sqlite.DB

	// Services for end-to-end testing. Built from Config when nil.
	Fetcher     types.Fetcher
	Collector   postcollect.Collector
	Articles    types.ArticleStore
	SiteConfigs siteconfig.Source

	closers []io.Closer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close releases the database and log file.
func (m *Main) Close() error {
	var first error
	if m.DB != nil {
		first = m.DB.Close()
		m.DB = nil
	}
	for _, c := range m.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	m.closers = nil
	return first
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:      ctx,
		Stdin:    m.Stdin,
		Stdout:   stdout,
		Stderr:   stderr,
		Markdown: markdown.NewConverter(),
	}
	if deps.Stdin == nil {
		deps.Stdin = strings.NewReader("")
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("postcollect"),
		kong.Description("Collect web pages as clean articles."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'postcollect --help' to see available commands")
	}
	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	defer m.Close()

	cfg := m.Config
	if cfg == nil {
		if cfg, err = config.Load(cli.Config); err != nil {
			return err
		}
	}
	if cli.LogLevel != "" {
		cfg.Log.Level = cli.LogLevel
	}

	logOpts := cfg.LoggingOptions()
	logOpts.Out = stderr
	logger, closer, err := logging.New(logOpts)
	if err != nil {
		return err
	}
	m.closers = append(m.closers, closer)
	deps.Logger = logger

	if m.Fetcher == nil {
		m.Fetcher = fetch.New(
			fetch.WithTimeout(cfg.Timeout),
			fetch.WithMaxRedirects(cfg.MaxRedirects),
			fetch.WithUserAgent(cfg.UserAgent),
			fetch.WithRateLimit(cfg.RateLimitRPS),
			fetch.WithLogger(logger),
		)
	}
	if m.SiteConfigs == nil {
		m.SiteConfigs = siteConfigSource(cfg, m.Fetcher)
	}
	deps.SiteConfigs = siteconfig.NewCache(m.SiteConfigs, logger)

	if m.Collector == nil {
		m.Collector = postcollect.New(collectorOptions(m.Fetcher, m.SiteConfigs, logger)...)
	}
	deps.Collector = m.Collector

	switch command := strings.Fields(kongCtx.Command())[0]; command {
	case "save", "show", "list":
		if m.Articles == nil {
			if err := m.openStore(cfg.Database, stderr); err != nil {
				return err
			}
		}
		deps.Articles = m.Articles
	}

	return kongCtx.Run(deps)
}

func (m *Main) openStore(path string, stderr io.Writer) error {
	if dir := filepath.Dir(path); dir != "." {
		_ = os.MkdirAll(dir, 0o755)
	}
	m.DB = sqlite.NewDB(path)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set %s to use a different database path\n", config.EnvDBPath)
		return fmt.Errorf("failed to open database at %q: %w", path, err)
	}
	m.Articles = sqlite.NewArticleStore(m.DB)
	return nil
}

// siteConfigSource returns the configured site config sources, local
// directory first. It returns nil when none is configured.
func siteConfigSource(cfg *config.Config, fetcher types.Fetcher) siteconfig.Source {
	var sources siteconfig.MultiSource
	if cfg.SiteConfigDir != "" {
		sources = append(sources, &siteconfig.DirSource{Dir: cfg.SiteConfigDir})
	}
	if cfg.RemoteSiteConfigs {
		sources = append(sources, siteconfig.NewHTTPSource(cfg.SiteConfigBaseURL, fetcher))
	}
	if len(sources) == 0 {
		return nil
	}
	return sources
}

func collectorOptions(fetcher types.Fetcher, source siteconfig.Source, logger zerolog.Logger) []postcollect.Option {
	opts := []postcollect.Option{
		postcollect.WithFetcher(fetcher),
		postcollect.WithLogger(logger),
	}
	if source != nil {
		opts = append(opts, postcollect.WithSiteConfigs(source))
	}
	return opts
}
