package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/prometheus/common/version"

	"github.com/alertscope/alertscope/internal/alertapi"
	"github.com/alertscope/alertscope/internal/config"
	"github.com/alertscope/alertscope/internal/inventory"
	"github.com/alertscope/alertscope/internal/report"
	"github.com/alertscope/alertscope/internal/session"
	"github.com/alertscope/alertscope/internal/swis"
)

func main() {
	app := kingpin.New(filepath.Base(os.Args[0]), "Reports every alert that could trigger against each monitored node, interface and volume.")
	app.HelpFlag.Short('h')
	configPath := app.Flag("config", "Path to the YAML configuration file.").Default("config.yaml").String()
	logLevel := app.Flag("log.level", "Log level, one of [debug, info, warn, error].").Default("info").Enum("debug", "info", "warn", "error")
	logFormat := app.Flag("log.format", "Log format, one of [json, text].").Default("text").Enum("json", "text")
	app.Version(version.Print("alertscope"))

	if _, err := app.Parse(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, fmt.Errorf("failed to parse commandline arguments: %w", err))
		app.Usage(os.Args[1:])
		os.Exit(2)
	}

	setupLogger(*logLevel, *logFormat)
	slog.Info("alertscope starting", "config", *configPath)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	password := cfg.Server.Password()
	if password == "" {
		slog.Error("password not found in environment", "env", cfg.Server.PasswordEnv)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	swisBase := fmt.Sprintf("https://%s:%d", cfg.Server.Host, cfg.Server.SWISPort)
	queries, err := swis.NewClient(swisBase, cfg.Server.Username, password, cfg.Server.TLS.InsecureSkipVerify)
	if err != nil {
		slog.Error("failed to build query client", "err", err)
		os.Exit(1)
	}

	// Element discovery is a prerequisite for everything after it: any of
	// the three queries failing aborts the run.
	nodes, err := queries.Nodes(ctx, cfg.Report.RowLimit)
	if err != nil {
		slog.Error("node discovery failed", "err", err)
		os.Exit(1)
	}
	interfaces, err := queries.Interfaces(ctx, cfg.Report.RowLimit)
	if err != nil {
		slog.Error("interface discovery failed", "err", err)
		os.Exit(1)
	}
	volumes, err := queries.Volumes(ctx, cfg.Report.RowLimit)
	if err != nil {
		slog.Error("volume discovery failed", "err", err)
		os.Exit(1)
	}
	slog.Info("elements discovered",
		"nodes", len(nodes),
		"interfaces", len(interfaces),
		"volumes", len(volumes),
	)

	elements := inventory.Merge(nodes, interfaces, volumes)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	elements = inventory.Arrange(elements, cfg.Report.Sample.Mode, cfg.Report.Sample.Size, rng)
	if cfg.Report.Sample.Mode == inventory.ModeRandom {
		slog.Info("random sample selected", "size", len(elements))
	}

	webBase := fmt.Sprintf("%s://%s", cfg.Server.WebScheme, cfg.Server.Host)
	sess, err := session.Establish(ctx, webBase, cfg.Server.Username, password, cfg.Server.TLS.InsecureSkipVerify)
	if err != nil {
		slog.Error("failed to establish web session", "err", err)
		os.Exit(1)
	}
	lookup := alertapi.NewClient(sess.BaseURL(), sess.Client(), cfg.Report.PageSize)

	rep, stats := report.Assemble(ctx, elements, lookup)
	slog.Info("report assembled",
		"elements", stats.Elements,
		"with_alerts", stats.WithAlerts,
		"empty", stats.Empty,
		"failed", stats.Failed,
		"records", stats.Records,
	)

	if err := writeReport(rep, cfg.Output); err != nil {
		slog.Error("failed to write report", "err", err)
		os.Exit(1)
	}
}

// setupLogger installs the default slog logger per the logging flags.
func setupLogger(level, format string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}
	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// writeReport renders the report to the configured destination.
// Empty path or "-" writes to stdout.
func writeReport(rep *report.Report, out config.OutputConfig) error {
	w := os.Stdout
	if out.Path != "" && out.Path != "-" {
		f, err := os.Create(out.Path)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		w = f
	}
	switch out.Format {
	case "json":
		return rep.WriteJSON(w)
	default:
		return rep.WriteCSV(w)
	}
}
