package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"
	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/doxfix/internal/assets"
	"git.home.luguber.info/inful/doxfix/internal/config"
	"git.home.luguber.info/inful/doxfix/internal/doxygen"
	"git.home.luguber.info/inful/doxfix/internal/emoji"
	"git.home.luguber.info/inful/doxfix/internal/fixers"
	"git.home.luguber.info/inful/doxfix/internal/metrics"
	"git.home.luguber.info/inful/doxfix/internal/pipeline"
	"git.home.luguber.info/inful/doxfix/internal/symbols"
	"git.home.luguber.info/inful/doxfix/internal/version"
)

var CLI struct {
	Verbose bool   `short:"v" help:"Enable verbose logging"`
	Threads int    `short:"t" help:"Worker thread count (default: one per core)"`
	Metrics string `help:"Write Prometheus text metrics to this file after the run"`

	Generate struct {
		Config    string `arg:"" optional:"" help:"Configuration file or the directory containing it"`
		Mcss      string `help:"Path to the m.css checkout" default:"external/mcss"`
		Nocleanup bool   `help:"Keep the intermediate XML after generation"`
	} `cmd:"" help:"Run doxygen, preprocess its XML, render HTML and repair it"`

	Postprocess struct {
		Config string `short:"c" help:"Configuration file or the directory containing it"`
		Dir    string `arg:"" help:"Directory holding the generated HTML pages"`
	} `cmd:"" help:"Repair already generated HTML pages in place"`

	Version struct{} `cmd:"" help:"Print version information"`
}

func main() {
	ctx := kong.Parse(&CLI)

	logLevel := slog.LevelInfo
	if CLI.Verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch ctx.Command() {
	case "generate", "generate <config>":
		if err := runGenerate(runCtx, logger); err != nil {
			slog.Error("Generate failed", "error", err)
			os.Exit(1)
		}
	case "postprocess <dir>":
		if err := runPostprocess(runCtx, logger, CLI.Postprocess.Config, CLI.Postprocess.Dir); err != nil {
			slog.Error("Postprocess failed", "error", err)
			os.Exit(1)
		}
	case "version":
		fmt.Printf("doxfix %s (commit %s, built %s)\n", version.Version, version.GitCommit, version.BuildTime)
	}
}

func runGenerate(ctx context.Context, logger *slog.Logger) error {
	cfgPath, err := config.FindConfigFile(CLI.Generate.Config)
	if err != nil {
		return err
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	configDir := "."
	if cfgPath != "" {
		configDir = filepath.Dir(cfgPath)
	} else if CLI.Generate.Config != "" {
		if info, err := os.Stat(CLI.Generate.Config); err == nil && info.IsDir() {
			configDir = CLI.Generate.Config
		}
	}
	doxyfile := filepath.Join(configDir, "Doxyfile")
	if _, err := os.Stat(doxyfile); err != nil {
		return fmt.Errorf("no Doxyfile in %s: %w", configDir, err)
	}
	xmlDir := filepath.Join(configDir, "xml")
	htmlDir := filepath.Join(configDir, "html")
	mcssDir := CLI.Generate.Mcss
	script := filepath.Join(mcssDir, "documentation", "doxygen.py")
	if _, err := os.Stat(script); err != nil {
		return fmt.Errorf("no m.css generator at %s: %w", script, err)
	}

	// leftovers from a previous run
	if err := os.RemoveAll(xmlDir); err != nil {
		return err
	}
	if err := os.RemoveAll(htmlDir); err != nil {
		return err
	}

	if err := doxygen.RunDoxygen(doxyfile, configDir); err != nil {
		return err
	}

	// XML preprocessing feeds additional symbols into the sets, so the
	// classifier is compiled after it runs.
	symbolSets := setsFromConfig(cfg)
	pre := doxygen.NewPreprocessor(symbolSets, cfg)
	if err := pre.Run(xmlDir); err != nil {
		return err
	}

	if err := doxygen.RunGenerator(script, doxyfile, configDir, CLI.Verbose); err != nil {
		return err
	}
	if err := assets.Install(assetDir(), mcssDir, htmlDir); err != nil {
		return err
	}

	if err := repairDocuments(ctx, logger, cfg, symbolSets, htmlDir); err != nil {
		return err
	}

	if !CLI.Generate.Nocleanup {
		if err := os.RemoveAll(xmlDir); err != nil {
			return err
		}
	}
	return nil
}

func runPostprocess(ctx context.Context, logger *slog.Logger, configArg, htmlDir string) error {
	cfgPath, err := config.FindConfigFile(configArg)
	if err != nil {
		return err
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	return repairDocuments(ctx, logger, cfg, setsFromConfig(cfg), htmlDir)
}

// repairDocuments wires the fixer sequence and runs it over every page.
func repairDocuments(ctx context.Context, logger *slog.Logger, cfg *config.Config, symbolSets *symbols.Sets, htmlDir string) error {
	classifier, err := symbolSets.Compile()
	if err != nil {
		return err
	}
	table, err := emoji.Load(filepath.Join(assetDir(), "emojis_v2.json"))
	if err != nil {
		return err
	}
	seq, err := fixers.Defaults(fixers.Options{
		Classifier: classifier,
		Emoji:      table,
		AutoLinks:  cfg.AutoLinks,
		Badges:     cfg.Badges,
	})
	if err != nil {
		return err
	}
	recorder := resolveRecorder()
	proc := pipeline.NewProcessor(pipeline.New(seq, recorder, logger), CLI.Threads, recorder, logger)
	runErr := proc.Run(ctx, htmlDir)
	if CLI.Metrics != "" {
		if err := prom.WriteToTextfile(CLI.Metrics, runRegistry); err != nil {
			if runErr == nil {
				runErr = fmt.Errorf("writing metrics to %s: %w", CLI.Metrics, err)
			}
			logger.Error("Writing metrics failed", "path", CLI.Metrics, "error", err)
		}
	}
	return runErr
}

// runRegistry collects the metrics of a single invocation.
var runRegistry = prom.NewRegistry()

func resolveRecorder() metrics.Recorder {
	if CLI.Metrics == "" {
		return metrics.NoopRecorder{}
	}
	return metrics.NewPrometheusRecorder(runRegistry)
}

func setsFromConfig(cfg *config.Config) *symbols.Sets {
	s := symbols.NewSets()
	s.Namespaces.AddAll(cfg.Namespaces...)
	s.Types.AddAll(cfg.Types...)
	s.Enums.AddAll(cfg.Enums...)
	s.StringLiterals.AddAll(cfg.StringLiterals...)
	s.NumericLiterals.AddAll(cfg.NumericLiterals...)
	s.Macros = append(s.Macros, cfg.Macros...)
	return s
}

// assetDir is where the tool's own static files and the emoji cache live:
// next to the binary.
func assetDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}
