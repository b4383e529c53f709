package component

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/kbukum/socialfeed/logger"
)

const (
	// DefaultStopTimeout bounds a single component's Stop.
	DefaultStopTimeout = 10 * time.Second
	// DefaultHealthTimeout bounds a single component's Health during HealthAll.
	DefaultHealthTimeout = 2 * time.Second
)

// Registry starts components in registration order and stops them in
// reverse. Register a component after the ones it depends on.
type Registry struct {
	mu         sync.RWMutex
	components []Component
	running    map[string]bool
	log        *logger.Logger
}

// NewRegistry creates an empty registry. A nil logger discards output.
func NewRegistry(log *logger.Logger) *Registry {
	if log == nil {
		log = logger.Nop()
	}
	return &Registry{
		running: make(map[string]bool),
		log:     log.WithComponent("registry"),
	}
}

// Register appends c. Names must be unique.
func (r *Registry) Register(c Component) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := c.Name()
	if _, exists := r.running[name]; exists {
		return fmt.Errorf("component %s already registered", name)
	}
	r.components = append(r.components, c)
	r.running[name] = false

	r.log.Debug("Component registered", logger.Fields("component", name))
	return nil
}

// StartAll starts every component that is not running yet. Components can be
// registered between calls, so the HTTP server can join once routes exist.
// When one fails, those already running are stopped before the error returns.
func (r *Registry) StartAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.components {
		name := c.Name()
		if r.running[name] {
			continue
		}
		if err := c.Start(ctx); err != nil {
			r.log.Error("Component start failed", logger.Fields("component", name, "error", err.Error()))
			if stopErr := r.stopRunning(context.WithoutCancel(ctx)); stopErr != nil {
				err = errors.Join(err, stopErr)
			}
			return fmt.Errorf("failed to start %s: %w", name, err)
		}
		r.running[name] = true
		r.log.Info("Component started", logger.Fields("component", name))
	}
	return nil
}

// StopAll stops running components in reverse order and joins their errors.
func (r *Registry) StopAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stopRunning(ctx)
}

func (r *Registry) stopRunning(ctx context.Context) error {
	var errs []error
	for i := len(r.components) - 1; i >= 0; i-- {
		c := r.components[i]
		name := c.Name()
		if !r.running[name] {
			continue
		}
		stopCtx, cancel := context.WithTimeout(ctx, DefaultStopTimeout)
		err := c.Stop(stopCtx)
		cancel()
		r.running[name] = false

		if err != nil {
			errs = append(errs, fmt.Errorf("failed to stop %s: %w", name, err))
			r.log.Error("Component stop failed", logger.Fields("component", name, "error", err.Error()))
			continue
		}
		r.log.Info("Component stopped", logger.Fields("component", name))
	}
	return errors.Join(errs...)
}

// HealthAll checks every component in registration order, each under
// DefaultHealthTimeout.
func (r *Registry) HealthAll(ctx context.Context) []Health {
	r.mu.RLock()
	defer r.mu.RUnlock()

	results := make([]Health, 0, len(r.components))
	for _, c := range r.components {
		checkCtx, cancel := context.WithTimeout(ctx, DefaultHealthTimeout)
		results = append(results, c.Health(checkCtx))
		cancel()
	}
	return results
}

// Get returns the component registered under name, or nil.
func (r *Registry) Get(name string) Component {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.components {
		if c.Name() == name {
			return c
		}
	}
	return nil
}

// All returns the registered components in registration order.
func (r *Registry) All() []Component {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Component(nil), r.components...)
}
