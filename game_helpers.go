package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/transport/websocket"
	"github.com/sheikhrachel/go-life/utils"
)

// gameStatus describes one displayed generation
type gameStatus struct {
	Generation   int
	Living       int
	Density      float64
	State        string
	SinceRestart int
}

// frameSink receives every generation before it is advanced
type frameSink interface {
	Show(grid *model.Grid, status gameStatus)
}

// terminalSink clears the screen and prints the status lines and the grid
type terminalSink struct {
	out      io.Writer
	renderer *model.TerminalRenderer
	stats    *utils.Stats
	clear    bool
}

func newTerminalSink(out io.Writer, stats *utils.Stats, clear bool) *terminalSink {
	return &terminalSink{
		out:      out,
		renderer: model.NewTerminalRenderer(out),
		stats:    stats,
		clear:    clear,
	}
}

func (s *terminalSink) Show(grid *model.Grid, status gameStatus) {
	if s.clear {
		s.renderer.Clear()
	}
	displayGameStatus(s.out, status, s.stats)
	s.renderer.Display(grid)
}

// hubSink streams generations to WebSocket clients
type hubSink struct {
	hub *websocket.Hub
}

func (s *hubSink) Show(grid *model.Grid, status gameStatus) {
	s.hub.Broadcast(websocket.NewFrame(grid, status.Generation, status.State))
}

// Game drives repeated render and tick cycles on a single grid
type Game struct {
	config  utils.Config
	grid    *model.Grid
	history *model.History
	stats   *utils.Stats
	sink    frameSink
	entropy io.Reader

	generation     int
	stagnantCount  int
	lastRestartGen int
}

// initializeGame sets up the initial game state
func initializeGame(config utils.Config, sink frameSink, stats *utils.Stats, entropy io.Reader) *Game {
	return &Game{
		config:  config,
		grid:    seedGrid(config, entropy),
		history: model.NewHistory(0),
		stats:   stats,
		sink:    sink,
		entropy: entropy,
	}
}

// seedGrid builds the initial population named by config.Seed
func seedGrid(config utils.Config, entropy io.Reader) *model.Grid {
	switch config.Seed {
	case utils.SeedRandom:
		return model.NewGridFromSource(config.Width, config.Height, entropy)
	case model.Spaceship.Name:
		grid := model.NewEmptyGrid(config.Width, config.Height)
		for _, row := range config.SpaceshipRows() {
			grid.StampSpaceship(row)
		}
		return grid
	default:
		grid := model.NewEmptyGrid(config.Width, config.Height)
		grid.Stamp(model.Patterns[config.Seed], grid.GetWidth()/2, grid.GetHeight()/2)
		return grid
	}
}

// displayGameInfo shows the initial game information
func displayGameInfo(config utils.Config, grid *model.Grid) {
	log.Printf("Grid: %dx%d | Seed: %s | Initial living cells: %d",
		grid.GetWidth(), grid.GetHeight(), config.Seed, grid.CountLivingCells())
	log.Println("Press Ctrl+C to exit gracefully")
}

// updateGameState records the current generation and reports its status
func (g *Game) updateGameState(lastFrameTime time.Time) (gameStatus, bool) {
	livingCells := g.grid.CountLivingCells()
	density := float64(livingCells) / float64(g.grid.Len()) * 100

	g.stats.Update(g.generation, livingCells, time.Since(lastFrameTime))

	// Check before recording so the current state is compared with earlier ones
	isStagnant := g.history.IsStagnant(g.grid)
	g.history.Update(g.grid)

	state := "Active"
	if isStagnant {
		state = "Stagnant"
	}
	if livingCells == 0 {
		state = "Extinct"
	}

	return gameStatus{
		Generation:   g.generation,
		Living:       livingCells,
		Density:      density,
		State:        state,
		SinceRestart: g.generation - g.lastRestartGen,
	}, isStagnant
}

// displayGameStatus shows the current game status
func displayGameStatus(out io.Writer, status gameStatus, stats *utils.Stats) {
	fmt.Fprintf(out, "Gen: %d | Living: %d | Density: %.1f%% | Status: %s\n",
		status.Generation, status.Living, status.Density, status.State)
	fmt.Fprintf(out, "Performance: %.1f gen/sec | Avg Pop: %.1f | Runtime: %.1fs\n",
		stats.GenerationsPerSecond, stats.AveragePopulation, time.Since(stats.StartTime).Seconds())

	if status.SinceRestart > 0 {
		fmt.Fprintf(out, "Generations since restart: %d\n", status.SinceRestart)
	}
	fmt.Fprintln(out)
}

// checkRestartConditions determines if the game should restart
func checkRestartConditions(livingCells, stagnantCount int, config utils.Config) (bool, string) {
	if livingCells == 0 {
		return true, "extinction"
	}
	if stagnantCount >= config.StagnationThreshold {
		return true, "stagnation detected"
	}
	return false, ""
}

// restartGame reseeds the grid and forgets the previous run's history
func (g *Game) restartGame() {
	g.grid = seedGrid(g.config, g.entropy)
	g.history.Reset()
	g.stagnantCount = 0
	g.lastRestartGen = g.generation
	g.stats.RecordRestart()

	log.Printf("New population seeded, living cells: %d", g.grid.CountLivingCells())
}

// Run shows and advances the grid until the generation limit is reached or
// ctx is done
func (g *Game) Run(ctx context.Context) error {
	lastFrameTime := time.Now()

	for {
		frameStart := time.Now()

		status, isStagnant := g.updateGameState(lastFrameTime)
		lastFrameTime = frameStart

		if isStagnant {
			g.stagnantCount++
		} else {
			g.stagnantCount = 0
		}

		g.sink.Show(g.grid, status)

		if g.config.MaxGenerations > 0 && g.generation >= g.config.MaxGenerations {
			log.Printf("Reached maximum generations limit (%d)", g.config.MaxGenerations)
			return nil
		}

		if shouldRestart, reason := checkRestartConditions(status.Living, g.stagnantCount, g.config); shouldRestart && g.config.AutoRestart {
			log.Printf("Restarting due to %s at generation %d", reason, g.generation)
			g.restartGame()
		}

		g.grid.Tick()
		g.generation++

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(g.config.FrameRate):
		}
	}
}
