package main

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/framelog/slp/internal/config"
	"github.com/framelog/slp/internal/database"
	"github.com/framelog/slp/internal/dispatcher"
	"github.com/framelog/slp/internal/influx"
	"github.com/framelog/slp/internal/logging"
	"github.com/framelog/slp/internal/replay"
	"github.com/framelog/slp/internal/storage"
	"github.com/framelog/slp/internal/worker"
)

// replayExts are the file extensions collected from directory arguments.
var replayExts = []string{".slp", ".slpz"}

// collectReplays expands directories into the replay files below them.
func collectReplays(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		err := filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			if path == arg {
				paths = append(paths, path)
				return nil
			}
			ext := strings.ToLower(filepath.Ext(path))
			for _, e := range replayExts {
				if ext == e {
					paths = append(paths, path)
					break
				}
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("collecting replays: %w", err)
		}
	}
	return paths, nil
}

func initStorage() (storage.Backend, error) {
	storageCfg := config.GetStorageConfig()
	backend, err := storage.NewBackend(storageCfg, database.NewManager(ZLogger), Logger)
	if err != nil {
		return nil, err
	}
	if err := backend.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize %s storage: %w", storageCfg.Type, err)
	}
	Logger.Info("Storage backend initialized", "type", storageCfg.Type)
	return backend, nil
}

// initInflux returns nil when influx is disabled.
func initInflux() *influx.Manager {
	if !viper.GetBool("influx.enabled") {
		return nil
	}
	backupPath := filepath.Join(viper.GetString("logsDir"),
		fmt.Sprintf("influx_backup.%s.log.gz", SessionStartTime.Format("20060102_150405")))
	m := influx.NewManager(ZLogger, backupPath)
	if err := m.Connect(); err != nil {
		Logger.Warn("InfluxDB export disabled", "error", err)
		return nil
	}
	return m
}

func storeCmd(ctx context.Context, args []string, out io.Writer) error {
	paths, err := collectReplays(args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no replays found in %v", args)
	}

	backend, err := initStorage()
	if err != nil {
		return err
	}
	defer func() {
		if err := backend.Close(); err != nil {
			Logger.Error("Failed to close storage backend", "error", err)
		}
	}()

	im := initInflux()
	if im != nil {
		defer func() {
			if err := im.Close(); err != nil {
				Logger.Warn("Failed to close InfluxDB manager", "error", err)
			}
		}()
	}

	loader, err := replay.NewLoader(Logger)
	if err != nil {
		return err
	}
	workerManager, err = worker.NewManager(worker.Dependencies{
		Loader:      loader,
		Backend:     backend,
		Influx:      im,
		Logger:      Logger,
		Concurrency: viper.GetInt("worker.concurrency"),
	})
	if err != nil {
		return err
	}
	eventDispatcher, err := dispatcher.New(logging.NewDispatcherLogger(ZLogger))
	if err != nil {
		return fmt.Errorf("creating dispatcher: %w", err)
	}
	workerManager.RegisterHandlers(eventDispatcher)

	start := time.Now()
	Logger.Info("Processing replays", "files", len(paths))
	err = workerManager.ProcessFiles(ctx, paths, eventDispatcher)
	eventDispatcher.Close()

	if ferr := OTelProvider.Flush(ctx); ferr != nil {
		Logger.Warn("Failed to flush OTel data", "error", ferr)
	}

	stats := workerManager.Stats()
	fmt.Fprintf(out, "%d files: %d stored, %d failed in %s\n",
		len(paths), stats.Stored, stats.Failed, time.Since(start).Round(time.Millisecond))
	if exp, ok := backend.(storage.Exportable); ok && exp.ExportedFilePath() != "" {
		fmt.Fprintf(out, "last export: %s\n", exp.ExportedFilePath())
	}
	return err
}
