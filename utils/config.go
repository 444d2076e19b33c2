package utils

import (
	"encoding/json"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"github.com/sheikhrachel/go-life/model"
)

// SeedRandom seeds every cell from the cryptographic random source
const SeedRandom = "random"

// Environment variables that override file configuration
const (
	EnvWidth          = "GOL_WIDTH"
	EnvHeight         = "GOL_HEIGHT"
	EnvFrameRate      = "GOL_FRAME_RATE"
	EnvMaxGenerations = "GOL_MAX_GENERATIONS"
	EnvSeed           = "GOL_SEED"
	EnvAutoRestart    = "GOL_AUTO_RESTART"
	EnvListenAddr     = "GOL_LISTEN_ADDR"
)

// Config holds the configuration for the game
type Config struct {
	Width               uint32        `json:"width"`
	Height              uint32        `json:"height"`
	FrameRate           time.Duration `json:"frame_rate"`
	AutoRestart         bool          `json:"auto_restart"`
	StagnationThreshold int           `json:"stagnation_threshold"`
	MaxGenerations      int           `json:"max_generations"`
	Seed                string        `json:"seed"`
	SpaceshipOffsets    []uint32      `json:"spaceship_offsets"`
	ListenAddr          string        `json:"listen_addr"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Width:               model.DefaultWidth,
		Height:              model.DefaultHeight,
		FrameRate:           150 * time.Millisecond,
		AutoRestart:         true,
		StagnationThreshold: 5,
		MaxGenerations:      1000,
		Seed:                SeedRandom,
	}
}

// LoadConfig loads configuration from JSON file
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	return config, nil
}

// LoadEnv loads .env files into the process environment. Missing files are
// not an error; variables already set in the environment win.
func LoadEnv(filenames ...string) error {
	if err := godotenv.Load(filenames...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return errors.Wrapf(err, "[LoadEnv] failed to load env files: %+v", filenames)
	}
	return nil
}

// ApplyEnv overrides config fields with any GOL_* environment variables set
func ApplyEnv(config Config) (Config, error) {
	if v, ok := os.LookupEnv(EnvWidth); ok {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return config, errors.Wrapf(err, "[ApplyEnv] invalid %s: %+v", EnvWidth, v)
		}
		config.Width = uint32(n)
	}
	if v, ok := os.LookupEnv(EnvHeight); ok {
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return config, errors.Wrapf(err, "[ApplyEnv] invalid %s: %+v", EnvHeight, v)
		}
		config.Height = uint32(n)
	}
	if v, ok := os.LookupEnv(EnvFrameRate); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return config, errors.Wrapf(err, "[ApplyEnv] invalid %s: %+v", EnvFrameRate, v)
		}
		config.FrameRate = d
	}
	if v, ok := os.LookupEnv(EnvMaxGenerations); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return config, errors.Wrapf(err, "[ApplyEnv] invalid %s: %+v", EnvMaxGenerations, v)
		}
		config.MaxGenerations = n
	}
	if v, ok := os.LookupEnv(EnvAutoRestart); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return config, errors.Wrapf(err, "[ApplyEnv] invalid %s: %+v", EnvAutoRestart, v)
		}
		config.AutoRestart = b
	}
	if v, ok := os.LookupEnv(EnvSeed); ok {
		config.Seed = v
	}
	if v, ok := os.LookupEnv(EnvListenAddr); ok {
		config.ListenAddr = v
	}
	return config, nil
}

// Validate reports the first invalid setting
func (c Config) Validate() error {
	if c.Width == 0 || c.Height == 0 {
		return errors.Errorf("[Validate] grid dimensions must be nonzero, got %dx%d", c.Width, c.Height)
	}
	if c.FrameRate < 0 {
		return errors.Errorf("[Validate] frame rate must not be negative, got %s", c.FrameRate)
	}
	if c.Seed != SeedRandom {
		if _, ok := model.Patterns[c.Seed]; !ok {
			return errors.Errorf("[Validate] unknown seed %q", c.Seed)
		}
	}
	for _, offset := range c.SpaceshipOffsets {
		if offset >= c.Height {
			return errors.Errorf("[Validate] spaceship offset %d is outside a grid of height %d", offset, c.Height)
		}
	}
	return nil
}

// SpaceshipRows returns the vertical offsets used by the spaceship seed,
// defaulting to the middle, top and bottom of the grid
func (c Config) SpaceshipRows() []uint32 {
	if len(c.SpaceshipOffsets) > 0 {
		return c.SpaceshipOffsets
	}
	if c.Height <= 4 {
		return []uint32{0}
	}
	return []uint32{c.Height / 2, 4, c.Height - 4}
}
