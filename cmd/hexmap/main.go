package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/annel0/hexboard/internal/config"
	"github.com/annel0/hexboard/internal/logging"
	"github.com/annel0/hexboard/internal/storage"
)

const defaultTimeout = 10 * time.Second

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run выполняет одну команду и возвращает код выхода.
// Все отложенные Close успевают выполниться до os.Exit.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("hexmap", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		configPath  = fs.String("config", "", "Path to YAML config (default: $HEXMAP_CONFIG)")
		command     = fs.String("cmd", "normalize", "Command: normalize, validate, parse, hex, index, position, adjacent, save, load, list, delete")
		mapString   = fs.String("map", "", "Map string")
		hexFlag     = fs.String("hex", "", "Hex in <q,r,s> form")
		index       = fs.Int("index", 0, "Spiral index")
		catalogPath = fs.String("catalog", "", "Tile catalog YAML (overrides config)")
		links       = fs.String("link", "", "Extra wormhole links for the query (comma-separated a:b pairs)")
		name        = fs.String("name", "", "Layout name")
		metrics     = fs.Bool("metrics", false, "Print layout store metrics after the command")
		verbose     = fs.Bool("v", false, "Verbose logging")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	errLog := log.New(stderr, "", 0)

	cfg, err := config.Load(*configPath)
	if err != nil {
		errLog.Printf("❌ Failed to load config: %v", err)
		return 1
	}

	level := logging.ParseLevel(cfg.Log.Level)
	if *verbose {
		level = logging.DEBUG
	}
	logging.Configure(logging.Options{Console: stderr, ConsoleLevel: level, Dir: cfg.Log.Dir, FileLevel: logging.DEBUG})
	defer logging.GetLoggerManager().CloseAll()

	if *catalogPath != "" {
		cfg.Catalog.Path = *catalogPath
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	// Выполняем команду
	switch *command {
	case "normalize":
		if err := runNormalize(stdout, *mapString); err != nil {
			errLog.Printf("❌ Normalize failed: %v", err)
			return 1
		}

	case "validate":
		if !runValidate(stdout, *mapString) {
			return 1
		}

	case "parse":
		if err := runParse(stdout, *mapString); err != nil {
			errLog.Printf("❌ Parse failed: %v", err)
			return 1
		}

	case "hex":
		if err := runHex(stdout, *index); err != nil {
			errLog.Printf("❌ Hex failed: %v", err)
			return 1
		}

	case "index":
		if err := runIndex(stdout, *hexFlag); err != nil {
			errLog.Printf("❌ Index failed: %v", err)
			return 1
		}

	case "position":
		if err := runPosition(stdout, cfg, *hexFlag); err != nil {
			errLog.Printf("❌ Position failed: %v", err)
			return 1
		}

	case "adjacent":
		if err := runAdjacent(stdout, cfg, &AdjacentOptions{
			MapString: *mapString,
			Hex:       *hexFlag,
			Links:     *links,
		}); err != nil {
			errLog.Printf("❌ Adjacent failed: %v", err)
			return 1
		}

	case "save", "load", "list", "delete":
		reg := prometheus.NewRegistry()
		repo, err := openRepo(ctx, cfg, reg)
		if err != nil {
			errLog.Printf("❌ Failed to open layout store: %v", err)
			return 1
		}
		defer repo.Close()
		if *metrics {
			defer dumpMetrics(stderr, reg)
		}

		if err := runStore(ctx, stdout, repo, *command, *name, *mapString); err != nil {
			errLog.Printf("❌ %s failed: %v", *command, err)
			return 1
		}

	default:
		fmt.Fprintf(stderr, "❌ Unknown command: %s\n", *command)
		fmt.Fprintln(stderr, "Available commands: normalize, validate, parse, hex, index, position, adjacent, save, load, list, delete")
		return 1
	}
	return 0
}

// openRepo открывает хранилище раскладок и оборачивает его метриками
func openRepo(ctx context.Context, cfg *config.Config, reg prometheus.Registerer) (storage.LayoutRepo, error) {
	repo, err := storage.Open(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}
	instrumented, err := storage.NewInstrumentedRepo(repo, cfg.Store.GetBackend(), reg)
	if err != nil {
		repo.Close()
		return nil, err
	}
	logging.GetCLILogger().Debug("хранилище раскладок: %s", cfg.Store.GetBackend())
	return instrumented, nil
}

// dumpMetrics печатает метрики в текстовом формате Prometheus
func dumpMetrics(w io.Writer, g prometheus.Gatherer) {
	families, err := g.Gather()
	if err != nil {
		fmt.Fprintf(w, "❌ Failed to gather metrics: %v\n", err)
		return
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			fmt.Fprintf(w, "❌ Failed to write metrics: %v\n", err)
			return
		}
	}
}
