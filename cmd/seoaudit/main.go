package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/seoaudit"
	"github.com/fwojciec/seoaudit/chardet"
	"github.com/fwojciec/seoaudit/charset"
	"github.com/fwojciec/seoaudit/fs"
	"github.com/fwojciec/seoaudit/goquery"
	"github.com/fwojciec/seoaudit/report"
	"github.com/fwojciec/seoaudit/scan"
	seoslog "github.com/fwojciec/seoaudit/slog"
	"github.com/fwojciec/seoaudit/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("seoaudit"),
		kong.Description("Audit static HTML files for SEO and AI-discoverability metadata"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	formats, err := seoaudit.ParseFormats(cli.Formats)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", seoaudit.ErrorMessage(err))
		return err
	}

	concurrency := cli.Concurrency
	if concurrency <= 0 {
		concurrency = scan.DefaultConcurrency
	}

	var (
		source    seoaudit.PageSource        = fs.NewWalker()
		reader    seoaudit.PageReader        = fs.NewFileReader()
		detector  seoaudit.EncodingDetector  = chardet.NewDetector()
		extractor seoaudit.MetadataExtractor = goquery.NewExtractor()
	)

	emitters := report.Emitters()
	emitters[seoaudit.FormatSQLite] = sqlite.NewReportEmitter()
	var duplicates seoaudit.ReportEmitter = report.NewDuplicatesEmitter()

	if cli.Verbose {
		logger := slog.New(slog.NewTextHandler(stderr, nil))
		source = seoslog.NewLoggingPageSource(source, logger)
		reader = seoslog.NewLoggingPageReader(reader, logger)
		detector = seoslog.NewLoggingEncodingDetector(detector, logger)
		extractor = seoslog.NewLoggingExtractor(extractor, logger)
		for f, e := range emitters {
			emitters[f] = seoslog.NewLoggingReportEmitter(e, logger)
		}
		duplicates = seoslog.NewLoggingReportEmitter(duplicates, logger)
	}

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Source: source,
		Auditor: &scan.Auditor{
			Reader:      reader,
			Decoder:     charset.NewDecoder(detector),
			Extractor:   extractor,
			Concurrency: concurrency,
			FileTimeout: cli.Timeout,
		},
		Emitters:   emitters,
		Duplicates: duplicates,
		Store:      fs.NewReportStore(cli.Output),
	}

	cmd := &AuditCmd{
		Root:    cli.Root,
		Formats: formats,
		Verbose: cli.Verbose,
	}

	return cmd.Run(deps)
}
