package lambda

import (
	"context"
	"fmt"
	"sync"

	"prompt-api/internal/config"
	"prompt-api/pkg/server"
)

// ConnectionManager owns the process-wide service container for Lambda functions.
// The container, and the inference client inside it, is built once at cold start
// and never mutated afterwards.
type ConnectionManager struct {
	container *server.Container
	initErr   error
	initOnce  sync.Once
}

var (
	globalConnectionManager *ConnectionManager
	connectionManagerOnce   sync.Once
)

// GetConnectionManager returns the global connection manager instance
func GetConnectionManager() *ConnectionManager {
	connectionManagerOnce.Do(func() {
		globalConnectionManager = &ConnectionManager{}
	})
	return globalConnectionManager
}

// Initialize builds the container from cfg; later calls return the first outcome
func (cm *ConnectionManager) Initialize(ctx context.Context, cfg *config.Config) error {
	cm.initOnce.Do(func() {
		if cfg == nil {
			loaded, err := config.GetOptimizedConfig()
			if err != nil {
				cm.initErr = fmt.Errorf("failed to load configuration: %w", err)
				return
			}
			cfg = loaded
		}

		container, err := server.NewContainer(ctx, cfg)
		if err != nil {
			cm.initErr = err
			return
		}
		cm.container = container
	})

	return cm.initErr
}

// GetContainer returns the service container, initializing from the environment if necessary
func (cm *ConnectionManager) GetContainer(ctx context.Context) (*server.Container, error) {
	if err := cm.Initialize(ctx, nil); err != nil {
		return nil, err
	}
	return cm.container, nil
}
