package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/genricoloni/mediabridge/internal/config"
	"github.com/genricoloni/mediabridge/internal/domain"
	"github.com/genricoloni/mediabridge/internal/fetcher"
	"github.com/genricoloni/mediabridge/internal/lock"
	"github.com/genricoloni/mediabridge/internal/monitor"
	"github.com/genricoloni/mediabridge/internal/output"
	"github.com/genricoloni/mediabridge/internal/poller"
	"github.com/genricoloni/mediabridge/internal/processor"
	"github.com/genricoloni/mediabridge/internal/session"
	"github.com/genricoloni/mediabridge/internal/snapshot"
	"github.com/genricoloni/mediabridge/internal/worker"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const stopTimeout = 5 * time.Second

// stdout receives the snapshot stream
var stdout io.Writer = os.Stdout

// AppOptions is the reader dependency graph. The *viper.Viper is supplied by the caller.
var AppOptions = fx.Options(
	fx.Provide(
		newLogger,
		fx.Annotate(config.NewAppConfig, fx.As(new(domain.Config))),

		// Session access
		fetcher.NewHTTPFetcher,
		fx.Annotate(fetcher.NewArtworkOpener, fx.As(new(monitor.ArtworkRefs))),
		fx.Annotate(monitor.NewProvider, fx.As(new(domain.ManagerProvider))),
		fx.Annotate(session.NewAccessor, fx.As(new(poller.SessionSource))),

		// Snapshot pipeline
		fx.Annotate(processor.NewThumbnailProcessor, fx.As(new(snapshot.Thumbnailer))),
		fx.Annotate(snapshot.NewBuilder, fx.As(new(poller.SnapshotBuilder))),
		fx.Annotate(newStdout, fx.As(new(poller.Emitter))),
		poller.NewPoller,

		worker.NewLoop,
	),
	fx.Invoke(registerHooks),
)

func main() {
	os.Exit(execute(os.Args[1:]))
}

// execute runs the reader until interrupted and returns the process exit code
func execute(args []string) int {
	var (
		configFile string
		logLevel   string
		code       int
	)

	root := &cobra.Command{
		Use:           "reader",
		Short:         "Stream the current media session as one JSON line per tick",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := config.New(configFile)
			if err != nil {
				return err
			}
			if logLevel != "" {
				v.Set(config.KeyLogLevel, logLevel)
			}

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			code = run(ctx, v)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&configFile, "config", "", "config file (yaml, json or toml)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	root.SetArgs(args)

	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return code
}

// run starts the fx application and blocks until ctx is cancelled or the
// poll loop ends on its own. opts are appended to the graph.
func run(ctx context.Context, v *viper.Viper, opts ...fx.Option) int {
	var logger *zap.Logger
	app := fx.New(
		fx.Supply(v),
		AppOptions,
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Options(opts...),
		fx.Populate(&logger),
	)

	if err := app.Start(ctx); err != nil {
		if errors.Is(err, lock.ErrAlreadyRunning) {
			if logger != nil {
				logger.Info("duplicate instance detected, exiting")
			}
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	code := 0
	select {
	case <-ctx.Done():
	case sig := <-app.Wait():
		code = sig.ExitCode
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		logger.Error("Shutdown failed", zap.Error(err))
		return 1
	}
	return code
}

// newLogger creates a production zap logger writing to stderr; stdout carries snapshots only
func newLogger(v *viper.Viper) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = config.LogLevel(v)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build()
}

func newStdout() *output.LineWriter {
	return output.NewLineWriter(stdout)
}

// registerHooks takes the single-instance lock and runs the poll loop on the worker thread
func registerHooks(
	lc fx.Lifecycle,
	shutdowner fx.Shutdowner,
	logger *zap.Logger,
	cfg domain.Config,
	loop *worker.Loop,
	p *poller.Poller,
) {
	var (
		held      lock.Lock
		stopPoll  context.CancelFunc = func() {}
		pollEnded = make(chan struct{})
	)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			l, err := lock.Acquire(cfg.GetLockName())
			if err != nil {
				_ = loop.Shutdown(ctx)
				return fmt.Errorf("single-instance lock %s: %w", cfg.GetLockName(), err)
			}
			held = l

			pollCtx, cancel := context.WithCancel(context.Background())
			stopPoll = cancel

			err = loop.Post(func() {
				defer close(pollEnded)
				if err := p.Run(pollCtx); err != nil {
					logger.Error("Poll loop ended", zap.Error(err))
					_ = shutdowner.Shutdown(fx.ExitCode(1))
					return
				}
				_ = shutdowner.Shutdown()
			})
			if err != nil {
				cancel()
				return multierr.Append(fmt.Errorf("failed to start poll loop: %w", err), held.Release())
			}

			logger.Info("Media reader started", zap.String("lock", cfg.GetLockName()))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Shutting down")
			stopPoll()

			var err error
			select {
			case <-pollEnded:
			case <-ctx.Done():
				err = multierr.Append(err, fmt.Errorf("poll loop did not stop: %w", ctx.Err()))
			}
			err = multierr.Append(err, loop.Shutdown(ctx))
			if held != nil {
				err = multierr.Append(err, held.Release())
			}
			return err
		},
	})
}
