package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	"github.com/chzyer/readline"
	"github.com/tliron/commonlog"

	"github.com/leonardinius/golean/internal/config"
	"github.com/leonardinius/golean/internal/leanerrors"
	"github.com/leonardinius/golean/internal/parser"
	"github.com/leonardinius/golean/internal/scanner"
)

var version = "0.0.1"

type LeanApp struct {
	err    error
	failed map[string]error
	opts   appOpts
	cfg  *config.Config
	log  commonlog.Logger
}

func NewLeanApp(options ...AppOption) *LeanApp {
	return &LeanApp{
		failed: make(map[string]error),
		opts:   newAppOpts(options...),
		cfg:    config.Default(),
		log:    commonlog.GetLogger("golean.app"),
	}
}

func (app *LeanApp) reportError(err error) {
	leanerrors.NewErrReporter(app.opts.stderr, app.reporterOptions()...).ReportError(err)
	app.err = err
}

func (app *LeanApp) reporterOptions(extra ...leanerrors.ReporterOption) []leanerrors.ReporterOption {
	return append([]leanerrors.ReporterOption{
		leanerrors.WithPrefix(app.cfg.Report.Prefix),
		leanerrors.WithExcerpt(app.cfg.Report.Excerpt),
	}, extra...)
}

// recoverPanic reports any panic value as FATAL and sets code to the
// configured exit code.
func (app *LeanApp) recoverPanic(code *int) {
	r := recover()
	if r == nil {
		return
	}
	err, ok := r.(error)
	if !ok {
		err = fmt.Errorf("%v", r)
	}
	leanerrors.NewErrReporter(app.opts.stderr).ReportPanic(err)
	*code = app.cfg.ExitCode
}

func (app *LeanApp) Main(args []string) (code int) {
	defer app.recoverPanic(&code)

	exitCode := -1
	k := kingpin.New("golean", "Check Lean source files for lexical and syntax errors.")
	k.Version(version)
	k.UsageWriter(app.opts.stderr)
	k.ErrorWriter(app.opts.stderr)
	k.Terminate(func(status int) {
		if exitCode < 0 {
			exitCode = status
		}
	})

	configPath := k.Flag("config", "YAML configuration file").Short('c').ExistingFile()
	verbose := k.Flag("verbose", "Increase log verbosity, repeat for more").Short('v').Counter()
	watch := k.Flag("watch", "Watch files for changes and check them again").Short('w').Bool()
	files := k.Arg("files", "Files to check; starts a prompt when omitted").ExistingFiles()

	_, err := k.Parse(args)
	if exitCode >= 0 {
		// --help or --version
		return exitCode
	}
	if err != nil {
		leanerrors.DefaultReportError(app.opts.stderr, err)
		return config.DefaultExitCode
	}

	if *configPath != "" {
		cfg, err := config.Load(*configPath)
		if err != nil {
			leanerrors.DefaultReportError(app.opts.stderr, err)
			return config.DefaultExitCode
		}
		app.cfg = cfg
	}
	commonlog.Configure(app.cfg.Verbosity+*verbose, nil)

	switch {
	case len(*files) == 0:
		err = app.runPrompt()
	case *watch:
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		err = app.watchFiles(ctx, *files)
	default:
		app.runFiles(*files)
	}

	if err != nil {
		app.reportError(err)
	}

	if app.hasFailed() {
		return app.cfg.ExitCode
	}

	return 0
}

// hasFailed reports whether a general error occurred or any checked file
// currently fails.
func (app *LeanApp) hasFailed() bool {
	return app.err != nil || len(app.failed) > 0
}

func (app *LeanApp) runPrompt() error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt: "> ",
		Stdin:  app.opts.stdin,
		Stdout: app.opts.stdout,
		Stderr: app.opts.stderr,
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
			return nil
		}
		if err != nil {
			return err
		}

		nodes, err := app.run(line)
		if err != nil {
			leanerrors.NewErrReporter(app.opts.stderr, app.reporterOptions(leanerrors.WithSource("", line))...).ReportError(err)
			continue
		}
		fmt.Fprintln(app.opts.stdout, parser.NewAstPrinter().Print(nodes...))
	}
}

func (app *LeanApp) runFiles(paths []string) {
	for _, path := range paths {
		app.runFile(path)
	}
}

// runFile checks scriptPath and records its latest outcome, replacing any
// earlier result for the same path.
func (app *LeanApp) runFile(scriptPath string) {
	delete(app.failed, scriptPath)

	bytes, err := os.ReadFile(scriptPath)
	if err != nil {
		leanerrors.NewErrReporter(app.opts.stderr, app.reporterOptions()...).ReportError(err)
		app.failed[scriptPath] = err
		return
	}

	app.log.Debugf("checking %s", scriptPath)
	source := string(bytes)
	if _, err := app.run(source); err != nil {
		leanerrors.NewErrReporter(app.opts.stderr, app.reporterOptions(leanerrors.WithSource(scriptPath, source))...).ReportError(err)
		app.failed[scriptPath] = err
		return
	}
	app.log.Infof("%s: ok", scriptPath)
}

func (app *LeanApp) run(input string) ([]parser.Node, error) {
	tokens, err := scanner.NewScanner(input).Scan()
	if err != nil {
		return nil, err
	}

	return parser.NewParser(tokens).Parse()
}
