package utils

import (
	"fmt"
	"time"
)

// Stats for performance monitoring
type Stats struct {
	GenerationsPerSecond float64
	AveragePopulation    float64
	TotalGenerations     int
	Restarts             int
	StartTime            time.Time
}

func NewStats() *Stats {
	return &Stats{StartTime: time.Now()}
}

// Update records one rendered generation and how long its frame took
func (s *Stats) Update(generation int, population int, duration time.Duration) {
	s.TotalGenerations = generation
	if duration > 0 {
		s.GenerationsPerSecond = 1.0 / duration.Seconds()
	}

	// Simple moving average for population
	if s.AveragePopulation == 0 {
		s.AveragePopulation = float64(population)
	} else {
		s.AveragePopulation = (s.AveragePopulation * 0.9) + (float64(population) * 0.1)
	}
}

func (s *Stats) RecordRestart() {
	s.Restarts++
}

// Summary formats the final statistics line
func (s *Stats) Summary() string {
	return fmt.Sprintf("%d generations in %.1f seconds, %.1f gen/sec, %.1f avg population, %d restarts",
		s.TotalGenerations, time.Since(s.StartTime).Seconds(),
		s.GenerationsPerSecond, s.AveragePopulation, s.Restarts)
}
