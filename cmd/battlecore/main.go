// Package main is the entry point for the battlecore skirmish demo.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/samdwyer/battlecore/internal/battlelog"
	"github.com/samdwyer/battlecore/internal/config"
	"github.com/samdwyer/battlecore/internal/game"
	"github.com/samdwyer/battlecore/internal/telemetry"
	"github.com/samdwyer/battlecore/internal/ui"
)

func main() {
	os.Exit(realMain())
}

// realMain runs the command and returns the exit code, so every deferred
// cleanup has run before the process exits.
func realMain() int {
	configPath := flag.String("config", config.DefaultPath, "path to the YAML config file")
	tui := flag.Bool("tui", false, "draw each turn in the terminal")
	seed := flag.Int64("seed", 0, "override the configured random seed")
	logFile := flag.String("log-file", "battlecore.log", "where logs go in TUI mode")
	flag.Parse()

	// Load .env file for local development
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		fmt.Fprintf(os.Stderr, "Note: .env file not loaded: %v\n", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}

	out, closeLog, err := logOutput(*tui, *logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closeLog()
	setupLogger(cfg, out)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Telemetry {
		setupOTelEnv()
		shutdown, err := telemetry.Setup(ctx, telemetry.BattleInfo{
			Columns:  cfg.Columns,
			Rows:     cfg.Rows,
			Seed:     cfg.Seed,
			MaxTurns: cfg.MaxTurns,
		})
		if err != nil {
			log.Warn().Err(err).Msg("telemetry setup failed, running without traces")
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					log.Error().Err(err).Msg("shutting down telemetry")
				}
			}()
		}
	}

	if err := run(ctx, cfg, *tui); err != nil {
		log.Error().Err(err).Msg("battle failed")
		return 1
	}
	return 0
}

func run(ctx context.Context, cfg config.Config, tui bool) error {
	var screen *ui.Screen
	if tui {
		s, err := ui.NewScreen()
		if err != nil {
			return fmt.Errorf("open screen: %w", err)
		}
		screen = s
	}

	g, err := game.New(cfg, battlelog.New(log.Logger), screen)
	if err != nil {
		if screen != nil {
			screen.Close()
		}
		return fmt.Errorf("init game: %w", err)
	}

	outcome, err := g.Run(ctx)
	g.Close()
	if err != nil {
		return err
	}

	fmt.Printf("Outcome after %d turns: %s\n", g.Battle().Turn(), outcome)
	return nil
}

// logOutput picks the log sink. The terminal belongs to the screen in TUI
// mode, so logs go to a file there.
func logOutput(tui bool, path string) (io.Writer, func(), error) {
	if !tui {
		return zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}, func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return f, func() { f.Close() }, nil
}

func setupLogger(cfg config.Config, out io.Writer) {
	level, err := cfg.Level()
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(out).With().Timestamp().Logger()
	log.Info().Msgf("battlecore starting: %dx%d field, seed %d", cfg.Columns, cfg.Rows, cfg.Seed)
}

// setupOTelEnv fills the OTEL exporter variables from BATTLECORE_OTEL_*
// ones when the standard variables are unset.
func setupOTelEnv() {
	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") == "" {
		endpoint := os.Getenv("BATTLECORE_OTEL_ENDPOINT")
		if endpoint == "" {
			endpoint = "http://localhost:4318"
		}
		os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", endpoint)
	}
	if os.Getenv("OTEL_EXPORTER_OTLP_HEADERS") == "" {
		if apiKey := os.Getenv("BATTLECORE_OTEL_API_KEY"); apiKey != "" {
			os.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "x-api-key="+apiKey)
		}
	}
}
