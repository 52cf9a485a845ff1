// Command activity-monitor prints the CPU, memory, descriptor and I/O usage
// of its own process once per interval while a number of goroutines keep
// some cores busy.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/reugn/go-perfmon/cpu"
	"github.com/reugn/go-perfmon/internal/config"
	"github.com/reugn/go-perfmon/mem"
	"github.com/reugn/go-perfmon/monitor"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
)

var (
	configPath = flag.String("config", "", "Path to a YAML config file")
	envFile    = flag.String("env-file", ".env", "Path to a dotenv file")
	interval   = flag.Duration("interval", 0, "Sampling interval (overrides config)")
	spinners   = flag.Int("spinners", -1, "Number of busy goroutines (overrides config)")
	collect    = flag.String("collect", "", "Collectors: fd,io,memory,all,none (overrides config)")
	logLevel   = flag.String("log-level", "", "Log level: debug, info, warn, error (overrides config)")
)

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "activity-monitor: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(*configPath, *envFile)
	if err != nil {
		return err
	}
	applyFlags(cfg)

	zapLog, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = zapLog.Sync() }()
	logger := zapr.NewLogger(zapLog)

	collectors, err := monitor.ParseCollectors(cfg.Collect)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < cfg.Spinners; i++ {
		g.Go(func() error {
			_ = spin(gctx)
			return nil
		})
	}
	g.Go(func() error {
		return report(gctx, cfg, collectors, logger)
	})

	logger.Info("Started", "interval", cfg.Interval, "spinners", cfg.Spinners, "collect", collectors.String())
	err = g.Wait()
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("Stopped")
	return nil
}

// applyFlags overrides the loaded configuration with explicitly set flags.
func applyFlags(cfg *config.Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "interval":
			cfg.Interval = *interval
		case "spinners":
			cfg.Spinners = *spinners
		case "collect":
			cfg.Collect = *collect
		case "log-level":
			cfg.LogLevel = *logLevel
		}
	})
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil {
		return nil, err
	}

	loggerConfig := zap.NewProductionConfig()
	if cfg.LogFormat == "console" {
		loggerConfig = zap.NewDevelopmentConfig()
	}
	loggerConfig.Level = zap.NewAtomicLevelAt(level)
	loggerConfig.OutputPaths = []string{"stderr"}
	return loggerConfig.Build()
}

// spin keeps one OS thread busy until ctx is done.
func spin(ctx context.Context) uint64 {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	var sum uint64
	for i := uint64(0); ; i++ {
		sum += i
		if i%(1<<20) == 0 && ctx.Err() != nil {
			return sum
		}
	}
}

// report samples the process through a resource monitor and the reporting
// goroutine's own OS thread, and prints one report per interval.
func report(ctx context.Context, cfg *config.Config, collectors monitor.Collectors, logger logr.Logger) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	thread, err := cpu.CurrentThread()
	if err != nil && !errors.Is(err, cpu.ErrUnsupported) {
		return fmt.Errorf("failed to sample current thread: %w", err)
	}

	monitorConfig := monitor.DefaultConfig()
	monitorConfig.SampleInterval = cfg.Interval
	monitorConfig.MaxCPUPercent = cfg.MaxCPUPercent
	monitorConfig.MaxMemoryPercent = cfg.MaxMemoryPercent
	monitorConfig.Collect = collectors
	monitorConfig.Logger = logger
	rm, err := monitor.New(monitorConfig)
	if err != nil {
		return err
	}
	defer rm.Close()

	allocations := mem.Allocations()
	allocations.Enable()
	defer allocations.Disable()

	ticker := time.NewTicker(cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		r := snapshot{
			stats:       rm.GetStats(),
			threadUsage: -1,
			allocated:   allocations.Allocated(),
			constrained: rm.IsResourceConstrained(),
			collectors:  collectors,
		}
		if thread != nil {
			if usage, err := thread.Usage(); err != nil {
				logger.Error(err, "Failed to sample thread CPU", "tid", thread.ID())
			} else {
				r.threadUsage = usage
			}
		}
		fmt.Println(r.render())
	}
}
