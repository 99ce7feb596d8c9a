package config

// Config holds user preferences for bright.
type Config interface {
	// Step is the amount `bright up` and `bright down` change the level by.
	Step() float64
	// Strict rejects malformed or out-of-range levels instead of passing
	// them to the framework.
	Strict() bool

	// Load reads the configuration from the source.
	Load() error
}
