package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/supplier"
	"github.com/fwojciec/supplier/chromedp"
	"github.com/fwojciec/supplier/crawl"
	"github.com/fwojciec/supplier/fs"
	"github.com/fwojciec/supplier/gemini"
	"github.com/fwojciec/supplier/goquery"
	suphttp "github.com/fwojciec/supplier/http"
	"github.com/fwojciec/supplier/ingest"
	"github.com/fwojciec/supplier/readability"
	"github.com/fwojciec/supplier/rod"
	supslog "github.com/fwojciec/supplier/slog"
	"github.com/fwojciec/supplier/sqlite"
	"github.com/fwojciec/supplier/trafilatura"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Config is loaded from the environment by Run when nil.
	Config *Config

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	ProfileService supplier.ProfileService
}

// NewMain returns a new instance of Main.
func NewMain() *Main {
	return &Main{}
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
	if m.Config == nil {
		cfg, err := LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		m.Config = cfg
	}
	cfg := m.Config

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Logger: logger,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("supplier"),
		kong.Description("Build structured supplier profiles from company websites."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'supplier --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// An invalid request is reported before anything is started.
	if cmd == "ingest" {
		deps.Writer = fs.NewWriter("")
		req := cli.Ingest.request()
		if err := req.Validate(); err != nil {
			logger.Error("ingest failed", "code", supplier.ErrorCode(err), "err", err)
			return cli.Ingest.report(deps, supplier.NewResult(nil, err))
		}
	}

	// Only ingest without --save runs without the database.
	if cmd != "ingest" || cli.Ingest.Save {
		if err := m.openDB(stderr); err != nil {
			return err
		}
		defer m.Close()
		deps.Profiles = m.ProfileService
	}

	if cmd == "ingest" {
		closeFn, err := m.wireIngest(ctx, deps, cli.Ingest)
		if err != nil {
			return err
		}
		defer closeFn()
	}

	return kongCtx.Run(deps)
}

func (m *Main) openDB(stderr io.Writer) error {
	m.DB = sqlite.NewDB(m.Config.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set SUPPLIER_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.Config.DBPath, err)
	}
	m.ProfileService = sqlite.NewProfileService(m.DB)
	return nil
}

// wireIngest builds the ingestion pipeline from the configuration. The
// returned func releases the browser and idle connections.
func (m *Main) wireIngest(ctx context.Context, deps *Dependencies, cmd IngestCmd) (func(), error) {
	cfg := m.Config
	logger := deps.Logger

	fetcher := supslog.NewLoggingFetcher(suphttp.NewFetcher(suphttp.WithTimeout(cfg.FetchTimeout)), logger)

	extractor, err := newExtractor(cfg.Extractor)
	if err != nil {
		return nil, err
	}

	completer, err := newCompleter(ctx, cfg, deps.Stderr)
	if err != nil {
		return nil, err
	}

	renderer, err := newRenderer(cfg, fetcher)
	if err != nil {
		if cfg.Renderer != "static" {
			fmt.Fprintln(deps.Stderr, "Hint: Chrome or Chromium must be installed, or set RENDERER=static")
		}
		return nil, fmt.Errorf("failed to start renderer: %w", err)
	}

	corpus := &supplier.CorpusStats{}
	deps.Corpus = corpus
	deps.Ingester = &ingest.Service{
		Renderer: supslog.NewLoggingRenderer(renderer, logger),
		Aggregator: &crawl.Aggregator{
			Pages:       &crawl.PageFetcher{Fetcher: fetcher, Extractor: extractor},
			Concurrency: cmd.Concurrency,
			OnOutcome: func(url, _ string, err error) {
				if err != nil {
					logger.Debug("link dropped", "url", url, "err", err)
				}
			},
		},
		Extractor:        &ingest.ExtractionClient{Completer: supslog.NewLoggingCompleter(completer, logger)},
		Logger:           logger,
		RenderTimeout:    cfg.RenderTimeout,
		AggregateTimeout: cfg.AggregateTimeout,
		ExtractTimeout:   cfg.ExtractTimeout,
		OnCorpus: func(stats supplier.CorpusStats) {
			*corpus = stats
		},
	}

	if cmd.Save {
		tokens, err := gemini.NewTokenCounter(cfg.TokenizerModel)
		if err != nil {
			logger.Warn("token counter unavailable", "err", err)
		} else {
			deps.Tokens = tokens
		}
	}

	return func() {
		_ = renderer.Close()
		_ = fetcher.Close()
	}, nil
}

func newRenderer(cfg *Config, fetcher supplier.Fetcher) (supplier.Renderer, error) {
	switch cfg.Renderer {
	case "", "rod":
		manager, err := rod.NewBrowserManager(rod.WithHeadless(cfg.Headless))
		if err != nil {
			return nil, err
		}
		return rod.NewRenderer(manager,
			rod.WithRenderTimeout(cfg.RenderTimeout),
			rod.WithLoadTimeout(cfg.LoadTimeout),
		), nil
	case "chromedp":
		return chromedp.NewRenderer(
			chromedp.WithHeadless(cfg.Headless),
			chromedp.WithRenderTimeout(cfg.RenderTimeout),
			chromedp.WithLoadTimeout(cfg.LoadTimeout),
		)
	case "static":
		return goquery.NewStaticRenderer(fetcher), nil
	default:
		return nil, supplier.Errorf(supplier.EINVALID, "unknown renderer %q (want rod, chromedp or static)", cfg.Renderer)
	}
}

func newExtractor(name string) (supplier.Extractor, error) {
	switch name {
	case "", "goquery":
		return goquery.NewExtractor(), nil
	case "readability":
		return readability.NewExtractor(), nil
	case "trafilatura":
		return trafilatura.NewExtractor(), nil
	default:
		return nil, supplier.Errorf(supplier.EINVALID, "unknown extractor %q (want goquery, readability or trafilatura)", name)
	}
}

func newCompleter(ctx context.Context, cfg *Config, stderr io.Writer) (supplier.Completer, error) {
	switch cfg.Provider {
	case "", "http":
		if cfg.Endpoint == "" {
			fmt.Fprintln(stderr, "Hint: Set END_POINT, ACCESS_KEY and MODEL, or PROVIDER=gemini")
			return nil, supplier.Errorf(supplier.EINVALID, "END_POINT not set")
		}
		return suphttp.NewCompleter(cfg.Endpoint, cfg.AccessKey, cfg.Model), nil
	case "gemini":
		if cfg.GeminiAPIKey == "" {
			fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return nil, supplier.Errorf(supplier.EINVALID, "GEMINI_API_KEY not set")
		}
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cfg.GeminiAPIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		return gemini.NewCompleter(client, cfg.Model), nil
	default:
		return nil, supplier.Errorf(supplier.EINVALID, "unknown provider %q (want http or gemini)", cfg.Provider)
	}
}
