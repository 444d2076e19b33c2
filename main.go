// Command go-life runs Conway's Game of Life on a toroidal grid.
//
// By default generations are drawn in the terminal. With -serve (or
// GOL_LISTEN_ADDR) they are streamed as JSON frames over a WebSocket at /ws
// instead.
package main

import (
	"context"
	"crypto/rand"
	"flag"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/go-life/transport/websocket"
	"github.com/sheikhrachel/go-life/utils"
)

const shutdownTimeout = 5 * time.Second

var (
	configPath  = flag.String("config", "config.json", "JSON configuration file")
	envFile     = flag.String("env", ".env", "File with GOL_* environment overrides")
	seed        = flag.String("seed", "", "Initial population: random, spaceship, glider, blinker or block")
	width       = flag.Uint("width", 0, "Grid width, overrides configuration")
	height      = flag.Uint("height", 0, "Grid height, overrides configuration")
	generations = flag.Int("generations", -1, "Stop after this many generations, 0 runs forever")
	serveAddr   = flag.String("serve", "", "Stream frames over WebSocket on this address")
)

func main() {
	flag.Parse()

	config, err := loadConfiguration()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	eg, ctx := errgroup.WithContext(ctx)
	stats := utils.NewStats()

	var sink frameSink
	if config.ListenAddr != "" {
		hub := websocket.NewHub()
		startServer(ctx, eg, config.ListenAddr, hub)
		sink = &hubSink{hub: hub}
	} else {
		sink = newTerminalSink(os.Stdout, stats, true)
	}

	game := initializeGame(config, sink, stats, rand.Reader)
	displayGameInfo(config, game.grid)

	eg.Go(func() error {
		// Reaching the generation limit stops the server too
		defer cancel()
		return game.Run(ctx)
	})

	if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("Game stopped: %v", err)
	}
	log.Printf("Final stats: %s", stats.Summary())
}

// loadConfiguration layers the config file, .env and environment, then flags
func loadConfiguration() (utils.Config, error) {
	config, err := utils.LoadConfig(*configPath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return config, err
		}
		log.Printf("Using default configuration (%s not found)", *configPath)
		config = utils.DefaultConfig()
	}

	if err := utils.LoadEnv(*envFile); err != nil {
		return config, err
	}
	if config, err = utils.ApplyEnv(config); err != nil {
		return config, err
	}

	if *seed != "" {
		config.Seed = *seed
	}
	if *width > 0 {
		config.Width = uint32(*width)
	}
	if *height > 0 {
		config.Height = uint32(*height)
	}
	if *generations >= 0 {
		config.MaxGenerations = *generations
	}
	if *serveAddr != "" {
		config.ListenAddr = *serveAddr
	}

	return config, config.Validate()
}

// startServer runs the WebSocket hub and its HTTP server until ctx is done
func startServer(ctx context.Context, eg *errgroup.Group, addr string, hub *websocket.Hub) {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.ServeWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg.Go(func() error {
		hub.Run(ctx)
		return nil
	})

	eg.Go(func() error {
		log.Printf("Streaming frames on ws://%s/ws", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrapf(err, "[startServer] failed to listen on %s", addr)
		}
		return nil
	})

	eg.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
}
