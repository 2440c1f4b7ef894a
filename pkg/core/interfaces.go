package core

import "fmt"

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// DefaultLogger implements Logger by writing to stdout
type DefaultLogger struct{}

// Printf implements the Logger interface
func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() Logger {
	return &DefaultLogger{}
}

// NopLogger discards all output
type NopLogger struct{}

// Printf implements the Logger interface
func (NopLogger) Printf(format string, args ...interface{}) {}

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	SamplesPerPixel           int // Number of rays per pixel
	MaxDepth                  int // Maximum ray bounce depth
	RussianRouletteMinBounces int // Minimum bounces before Russian Roulette can activate

	AdaptiveMinSamples float64 // Minimum samples as fraction of the pass target (0.0-1.0)
	AdaptiveThreshold  float64 // Relative error threshold for adaptive convergence, 0 disables
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		SamplesPerPixel:           64,
		MaxDepth:                  8,
		RussianRouletteMinBounces: 4,
		AdaptiveMinSamples:        0.25,
		AdaptiveThreshold:         0.0,
	}
}
