package main

import (
	"context"
	"fmt"
	"os"

	"github.com/genricoloni/mediabridge/internal/config"
	"github.com/genricoloni/mediabridge/internal/controller"
	"github.com/genricoloni/mediabridge/internal/domain"
	"github.com/genricoloni/mediabridge/internal/executor"
	"github.com/genricoloni/mediabridge/internal/fetcher"
	"github.com/genricoloni/mediabridge/internal/focus"
	"github.com/genricoloni/mediabridge/internal/launcher"
	"github.com/genricoloni/mediabridge/internal/monitor"
	"github.com/genricoloni/mediabridge/internal/platform"
	"github.com/genricoloni/mediabridge/internal/session"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// AppOptions is the controller dependency graph
var AppOptions = fx.Options(
	fx.Provide(
		newViper,
		newLogger,
		fx.Annotate(config.NewAppConfig, fx.As(new(domain.Config))),

		// Session access
		fetcher.NewHTTPFetcher,
		fx.Annotate(fetcher.NewArtworkOpener, fx.As(new(monitor.ArtworkRefs))),
		fx.Annotate(monitor.NewProvider, fx.As(new(domain.ManagerProvider))),
		fx.Annotate(session.NewAccessor, fx.As(new(controller.SessionSource))),

		// OS primitives
		fx.Annotate(platform.NewKeyInjector, fx.As(new(domain.KeyInjector))),
		fx.Annotate(platform.NewProcessTable, fx.As(new(domain.ProcessTable))),
		newWindowController,
		fx.Annotate(executor.NewExecutor, fx.As(new(domain.URIOpener))),

		// Focus source chain
		fx.Annotate(focus.NewFocuser, fx.As(new(controller.Focuser))),
		fx.Annotate(launcher.NewLauncher, fx.As(new(controller.FallbackLauncher))),

		controller.NewDispatcher,
	),
)

func main() {
	os.Exit(execute(os.Args[1:]))
}

// execute runs one command and returns the process exit code
func execute(args []string) int {
	code := 1

	root := &cobra.Command{
		Use:   "controller <command> [args]",
		Short: "Send one media command to the current session",
		// Tokens such as "-5" belong to the command, not to cobra
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE: func(cmd *cobra.Command, tokens []string) error {
			var dispatcher *controller.Dispatcher
			app := fx.New(AppOptions, fx.NopLogger, fx.Populate(&dispatcher))

			ctx := cmd.Context()
			if err := app.Start(ctx); err != nil {
				return err
			}
			defer func() {
				_ = app.Stop(context.Background())
			}()

			code = dispatcher.Dispatch(ctx, cmd.OutOrStdout(), tokens)
			return nil
		},
	}
	root.SetArgs(args)

	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(root.OutOrStdout(), "Error: %v\n", err)
		return 1
	}
	return code
}

// newViper loads configuration from the environment only
func newViper() (*viper.Viper, error) {
	return config.New("")
}

// newLogger creates a production zap logger writing to stderr
func newLogger(v *viper.Viper) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = config.LogLevel(v)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build()
}

type closableWindows interface {
	domain.WindowController
	Close() error
}

// newWindowController provides the platform window controller and closes it on stop
func newWindowController(lc fx.Lifecycle, logger *zap.Logger) domain.WindowController {
	var windows closableWindows = platform.NewWindowController(logger)
	lc.Append(fx.StopHook(windows.Close))
	return windows
}
