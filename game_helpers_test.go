package main

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/utils"
)

type brokenEntropy struct{}

func (brokenEntropy) Read([]byte) (int, error) {
	return 0, errors.New("no entropy")
}

// recordingSink keeps a copy of every rendered generation
type recordingSink struct {
	frames   []string
	statuses []gameStatus
}

func (s *recordingSink) Show(grid *model.Grid, status gameStatus) {
	s.frames = append(s.frames, grid.Render())
	s.statuses = append(s.statuses, status)
}

func testConfig(seed string) utils.Config {
	config := utils.DefaultConfig()
	config.Width = 8
	config.Height = 8
	config.FrameRate = 0
	config.Seed = seed
	return config
}

func TestSeedGridRandom(t *testing.T) {
	config := testConfig(utils.SeedRandom)
	grid := seedGrid(config, bytes.NewReader(make([]byte, 64)))

	if grid.CountLivingCells() != 64 {
		t.Errorf("all-even stream should fill the grid, got %d", grid.CountLivingCells())
	}
}

func TestSeedGridSpaceship(t *testing.T) {
	config := testConfig(model.Spaceship.Name)
	config.Height = 16
	config.Width = 16
	grid := seedGrid(config, nil)

	// Offsets 8, 4 and 12 give three non-overlapping spaceships
	if got := grid.CountLivingCells(); got != 27 {
		t.Errorf("expected 27 living cells, got %d", got)
	}
}

func TestSeedGridPattern(t *testing.T) {
	grid := seedGrid(testConfig(model.Block.Name), nil)

	for _, c := range [][2]uint32{{4, 4}, {5, 4}, {4, 5}, {5, 5}} {
		if !grid.Get(c[0], c[1]) {
			t.Errorf("expected block cell (%d,%d) alive", c[0], c[1])
		}
	}
	if grid.CountLivingCells() != 4 {
		t.Errorf("expected 4 living cells, got %d", grid.CountLivingCells())
	}
}

func TestCheckRestartConditions(t *testing.T) {
	config := testConfig(utils.SeedRandom)

	tests := []struct {
		name          string
		living        int
		stagnantCount int
		restart       bool
		reason        string
	}{
		{"extinct", 0, 0, true, "extinction"},
		{"stagnant", 10, config.StagnationThreshold, true, "stagnation detected"},
		{"active", 10, 1, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			restart, reason := checkRestartConditions(tt.living, tt.stagnantCount, config)
			if restart != tt.restart || reason != tt.reason {
				t.Errorf("got (%v, %q), want (%v, %q)", restart, reason, tt.restart, tt.reason)
			}
		})
	}
}

func TestGameRunStopsAtMaxGenerations(t *testing.T) {
	config := testConfig(model.Blinker.Name)
	config.MaxGenerations = 3
	sink := &recordingSink{}

	game := initializeGame(config, sink, utils.NewStats(), nil)
	if err := game.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(sink.frames) != 4 {
		t.Fatalf("expected generations 0 through 3, got %d frames", len(sink.frames))
	}
	if sink.frames[0] != sink.frames[2] || sink.frames[1] != sink.frames[3] {
		t.Error("blinker frames should alternate")
	}
	if sink.frames[0] == sink.frames[1] {
		t.Error("blinker should change between generations")
	}
	for i, status := range sink.statuses {
		if status.Generation != i {
			t.Errorf("frame %d reported generation %d", i, status.Generation)
		}
		if status.Living != 3 {
			t.Errorf("frame %d reported %d living cells", i, status.Living)
		}
	}
	if sink.statuses[3].State != "Stagnant" {
		t.Errorf("repeated blinker state should be stagnant, got %q", sink.statuses[3].State)
	}
}

func TestGameRunRestartsOnExtinction(t *testing.T) {
	config := testConfig(utils.SeedRandom)
	config.MaxGenerations = 2
	stats := utils.NewStats()
	sink := &recordingSink{}

	game := initializeGame(config, sink, stats, brokenEntropy{})
	if err := game.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if sink.statuses[0].State != "Extinct" {
		t.Errorf("failed entropy should give an empty grid, got %q", sink.statuses[0].State)
	}
	if stats.Restarts != 2 {
		t.Errorf("expected 2 restarts, got %d", stats.Restarts)
	}
}

func TestGameRunWithoutAutoRestart(t *testing.T) {
	config := testConfig(utils.SeedRandom)
	config.MaxGenerations = 2
	config.AutoRestart = false
	stats := utils.NewStats()

	game := initializeGame(config, &recordingSink{}, stats, brokenEntropy{})
	if err := game.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if stats.Restarts != 0 {
		t.Errorf("expected no restarts, got %d", stats.Restarts)
	}
}

func TestGameRunCancel(t *testing.T) {
	config := testConfig(model.Glider.Name)
	config.MaxGenerations = 0
	config.FrameRate = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	game := initializeGame(config, &recordingSink{}, utils.NewStats(), nil)

	go func() { done <- game.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestTerminalSinkShow(t *testing.T) {
	var buf bytes.Buffer
	grid := model.NewEmptyGrid(3, 1)
	grid.Set(1, 0, true)

	sink := newTerminalSink(&buf, utils.NewStats(), false)
	sink.Show(grid, gameStatus{Generation: 4, Living: 1, Density: 33.3, State: "Active", SinceRestart: 2})

	out := buf.String()
	for _, want := range []string{"Gen: 4", "Living: 1", "Status: Active", "Generations since restart: 2", "◻◼◻\n"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}
