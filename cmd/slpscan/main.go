// Command slpscan decodes replays, segments player actions and stores them
// in the configured backend.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/framelog/slp/internal/config"
	"github.com/framelog/slp/internal/logging"
	intOtel "github.com/framelog/slp/internal/otel"
	"github.com/framelog/slp/internal/worker"
)

const usage = `usage: slpscan <command> [args]

commands:
  decode <file>                         print the game summary as JSON
  actions <file> [slot]                 print the segmented actions per slot
  notes <file> [start length text]      list notes, or add one and rewrite the file
  compress <in> <out>                   write <in> as a compressed container
  store <file|dir>...                   segment replays into the storage backend`

var (
	// SessionStartTime names the session log file.
	SessionStartTime = time.Now()

	// SlogManager handles all slog-based logging
	SlogManager *logging.SlogManager
	Logger      *slog.Logger

	// ZLogger is handed to the database and influx managers.
	ZLogger zerolog.Logger

	// OTelProvider handles OpenTelemetry
	OTelProvider *intOtel.Provider

	// workerManager is set by the store command; its progress is attached
	// to every log record.
	workerManager *worker.Manager

	logFile *os.File
)

// setup loads configuration and starts logging. Logs go to a session file
// so stdout carries only command output.
func setup() error {
	configDir := os.Getenv("SLPSCAN_CONFIG_DIR")
	if configDir == "" {
		configDir = "."
	}
	configErr := config.Load(configDir)

	var logOut io.Writer = os.Stderr
	logsDir := viper.GetString("logsDir")
	if err := os.MkdirAll(logsDir, 0755); err == nil {
		path := logging.LogFilePath(logsDir, "slpscan", SessionStartTime)
		if f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666); err == nil {
			logFile = f
			logOut = f
		}
	}

	level, err := zerolog.ParseLevel(strings.ToLower(viper.GetString("logLevel")))
	if err != nil {
		level = zerolog.InfoLevel
	}
	ZLogger = zerolog.New(logOut).Level(level).With().Timestamp().Logger()

	OTelProvider, err = intOtel.New(intOtel.FromConfig(config.GetOTelConfig(), logOut, SessionStartTime))
	if err != nil {
		return fmt.Errorf("initializing OTel provider: %w", err)
	}

	SlogManager = logging.NewSlogManager()
	SlogManager.WithContext(func() []slog.Attr {
		if workerManager == nil {
			return nil
		}
		return workerManager.Progress()
	})
	opts := logging.Options{
		File:     logOut,
		Level:    viper.GetString("logLevel"),
		Provider: OTelProvider.LoggerProvider(),
	}
	if viper.GetBool("graylog.enabled") {
		opts.Graylog = viper.GetString("graylog.address")
	}
	if err := SlogManager.Setup(opts); err != nil {
		return err
	}
	Logger = SlogManager.Logger()

	if configErr != nil {
		Logger.Warn("Using default configuration", "dir", configDir, "error", configErr)
	}
	return nil
}

func shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := SlogManager.Flush(ctx); err != nil {
		Logger.Warn("Failed to flush logs", "error", err)
	}
	if OTelProvider != nil {
		if err := OTelProvider.Shutdown(ctx); err != nil {
			Logger.Warn("Failed to shut down OTel provider", "error", err)
		}
	}
	_ = SlogManager.Close()
	if logFile != nil {
		_ = logFile.Close()
	}
}

// errUsage reports bad arguments.
var errUsage = errors.New("bad arguments")

func run(ctx context.Context, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	rest := args[1:]
	switch strings.ToLower(args[0]) {
	case "decode":
		if len(rest) != 1 {
			return errUsage
		}
		return decodeCmd(rest[0], out)
	case "actions":
		if len(rest) < 1 || len(rest) > 2 {
			return errUsage
		}
		return actionsCmd(ctx, rest, out)
	case "notes":
		if len(rest) != 1 && len(rest) != 4 {
			return errUsage
		}
		return notesCmd(rest, out)
	case "compress":
		if len(rest) != 2 {
			return errUsage
		}
		return compressCmd(rest[0], rest[1], out)
	case "store":
		if len(rest) == 0 {
			return errUsage
		}
		return storeCmd(ctx, rest, out)
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
	}
}

func main() {
	if err := setup(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	err := run(context.Background(), os.Args[1:], os.Stdout)
	if err != nil {
		Logger.Error("Command failed", "args", os.Args[1:], "error", err)
	}
	shutdown()

	if errors.Is(err, errUsage) {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
