package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/fredcamaral/webdeck/internal/adapters/primary/remote"
	"github.com/fredcamaral/webdeck/internal/adapters/primary/stage"
	"github.com/fredcamaral/webdeck/internal/adapters/secondary/browser"
	"github.com/fredcamaral/webdeck/internal/adapters/secondary/config"
	deckrepo "github.com/fredcamaral/webdeck/internal/adapters/secondary/deck"
	"github.com/fredcamaral/webdeck/internal/adapters/secondary/watcher"
	"github.com/fredcamaral/webdeck/internal/domain/entities"
	"github.com/fredcamaral/webdeck/internal/domain/ports"
	"github.com/fredcamaral/webdeck/internal/domain/services"
	"github.com/fredcamaral/webdeck/internal/logging"
)

var (
	// Present command flags
	stageHost string
	stagePort int
	noBrowser bool
	noWatch   bool
)

// presentCmd represents the present command
var presentCmd = &cobra.Command{
	Use:   "present [deck]",
	Short: "Present a deck of web pages",
	Long: `Load a deck file (YAML or a markdown link list) and start presenting.
The stage page displays the current slide; the remote page on port 9123
drives it from a phone on the same network.

Example:
  webdeck present talks/gophercon.yaml
  webdeck present links.md --port 8080 --no-browser`,
	Args: cobra.ExactArgs(1),
	RunE: runPresent,
}

func init() {
	rootCmd.AddCommand(presentCmd)

	presentCmd.Flags().StringVar(&stageHost, "host", "", "Host to bind the stage to (overrides config)")
	presentCmd.Flags().IntVarP(&stagePort, "port", "p", 0, "Port to serve the stage on (overrides config)")
	presentCmd.Flags().BoolVar(&noBrowser, "no-browser", false, "Don't open the stage in a browser on play")
	presentCmd.Flags().BoolVar(&noWatch, "no-watch", false, "Don't reload the deck when its file changes")
}

func runPresent(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	deckPath := args[0]

	cfg, err := loadAndMergeConfig(cmd, deckPath)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	if !cmd.Flags().Changed("verbose") {
		verbose = cfg.Logging.Verbose
	}
	logger := logging.New("present", verbose, cfg.Logging.GetLevel())

	repo := deckrepo.NewRepository()
	deck, err := repo.Load(ctx, deckPath)
	if err != nil {
		return err
	}
	logger.Info("loaded deck %q with %d slides", deck.Title, deck.SlideCount())

	// The serial context owning presentation state. Everything that mutates
	// the controller goes through it.
	dispatcher := services.NewSerialDispatcher()
	defer dispatcher.Stop()

	bus := services.NewBus()
	controller := services.NewController(deck, cfg.Zoom)

	stageServer := stage.NewServer(cfg.Stage, logger.WithComponent("stage"))

	var launcher ports.BrowserLauncher
	autoOpen := cfg.Browser.AutoOpen
	if autoOpen {
		l := browser.NewLauncher()
		if name, err := l.Detect(); err != nil {
			// Better to find out now than on the first Play.
			logger.Warn("auto-open disabled, no browser found: %v", err)
			autoOpen = false
		} else {
			logger.Debug("auto-open will use %s", name)
			launcher = l
		}
	}
	bridge := stage.NewBridge(stageServer, controller, launcher, autoOpen, logger.WithComponent("bridge"))
	bridge.Attach(bus)
	defer bridge.Detach()

	// New stage pages need the current state; the push must hop onto the
	// owning context because connects arrive on HTTP goroutines.
	stageServer.OnConnect(func() {
		dispatcher.Post(bridge.PushState)
	})

	if err := stageServer.Start(); err != nil {
		return fmt.Errorf("starting stage: %w", err)
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := stageServer.Stop(stopCtx); err != nil {
			logger.Warn("stage stop: %v", err)
		}
	}()

	remoteServer := remote.NewServer(
		fmt.Sprintf(":%d", remote.Port),
		remote.NewRouter(controller, bus),
		dispatcher,
		logger.WithComponent("remote"),
	)
	if err := remoteServer.Start(); err != nil {
		// Remote control is an optional surface: without it the deck can
		// still be driven from the stage machine.
		var bindErr *remote.BindError
		if errors.As(err, &bindErr) {
			logger.Warn("remote control disabled: %v", bindErr)
		} else {
			return err
		}
	} else {
		defer remoteServer.Stop()
	}

	if cfg.Watcher.Enabled && !noWatch {
		stopWatch, err := watchDeck(ctx, cfg.Watcher, deckPath, repo, controller, dispatcher, logger)
		if err != nil {
			logger.Warn("deck watching disabled: %v", err)
		} else {
			defer stopWatch()
		}
	}

	printAddresses(cfg, logger)

	<-ctx.Done()
	logger.Info("shutting down")
	return nil
}

// watchDeck reloads the deck on file changes and applies it on the owning
// context
func watchDeck(ctx context.Context, cfg entities.WatcherConfig, path string, repo ports.DeckRepository, controller *services.Controller, dispatcher ports.Dispatcher, logger *logging.Logger) (func(), error) {
	w := watcher.NewPollingWatcher(
		time.Duration(cfg.IntervalMs)*time.Millisecond,
		time.Duration(cfg.DebounceMs)*time.Millisecond,
		logger.WithComponent("watcher"),
	)

	events, err := w.Watch(ctx, path)
	if err != nil {
		return nil, err
	}

	go func() {
		for range events {
			reloaded, err := repo.Load(ctx, path)
			if err != nil {
				logger.Warn("deck reload failed, keeping previous deck: %v", err)
				continue
			}
			dispatcher.Post(func() {
				controller.SetDeck(reloaded)
			})
			logger.Info("deck reloaded: %d slides", reloaded.SlideCount())
		}
	}()

	return func() { _ = w.Stop() }, nil
}

// loadAndMergeConfig applies precedence: CLI flags > local config > global
// config > defaults
func loadAndMergeConfig(cmd *cobra.Command, deckPath string) (*entities.Config, error) {
	ctx := cmd.Context()
	loader := config.NewTOMLLoader()

	global, err := loader.LoadGlobal(ctx)
	if err != nil {
		return nil, err
	}

	local, err := loader.LoadLocal(ctx, filepath.Dir(deckPath))
	if err != nil {
		return nil, err
	}

	cfg := config.Merge(global, local)

	if cmd.Flags().Changed("host") {
		cfg.Stage.Host = stageHost
	}
	if cmd.Flags().Changed("port") {
		cfg.Stage.Port = stagePort
	}
	if noBrowser {
		cfg.Browser.AutoOpen = false
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// printAddresses tells the presenter where everything is
func printAddresses(cfg *entities.Config, logger *logging.Logger) {
	logger.Info("stage:  %s", cfg.Stage.URL())
	logger.Info("remote: http://<this-machine>:%d/ (open on your phone)", remote.Port)
}
