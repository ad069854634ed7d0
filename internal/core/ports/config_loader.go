package ports

import "go.trai.ch/flowd/internal/core/domain"

// ConfigLoader defines the interface for loading the service configuration.
type ConfigLoader interface {
	// Load reads the configuration from path. A missing file is not an
	// error: defaults are returned instead.
	Load(path string) (*domain.Config, error)
}
