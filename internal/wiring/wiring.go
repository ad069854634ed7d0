// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/flowd/internal/adapters/config"
	_ "go.trai.ch/flowd/internal/adapters/logger"
	// Register app and engine nodes.
	_ "go.trai.ch/flowd/internal/app"
	_ "go.trai.ch/flowd/internal/engine/analyzer"
)
