// Package registry provides a global registry of display backends.
// Backends register themselves in init() functions, allowing the CLI to
// select a hardware variant by name without hardcoded dependencies.
package registry

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pico-snake/internal/core"
)

// Device is one hardware variant: the three engine capabilities plus the
// host side that feeds them.
type Device interface {
	core.Display
	core.Input
	core.Platform

	// Loop runs the host event loop (a UI program, a key poller) and blocks
	// until the user quits, Close is called or ctx is cancelled.
	Loop(ctx context.Context) error

	// Close releases the device and makes SleepUntil report core.ErrStopped.
	// It is safe to call more than once.
	Close() error
}

// Options are the knobs shared by every backend.
type Options struct {
	// Width and Height are the requested display size in pixels. Terminal
	// backends ignore them and use the terminal size.
	Width  int
	Height int

	DirDebounce    time.Duration
	ButtonDebounce time.Duration

	// Script is a path to an input script for headless backends.
	Script string

	Logger *log.Logger
}

// BackendInfo contains metadata about a registered backend.
type BackendInfo struct {
	Name        string
	Description string
}

// Factory creates a new device.
type Factory func(opts Options) (Device, error)

type entry struct {
	factory     Factory
	description string
}

var (
	backends = make(map[string]entry)
	mu       sync.RWMutex
)

// Register adds a backend factory to the registry.
// Typically called from a backend's init() function.
// Panics if a backend with the same name is already registered.
func Register(name, description string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := backends[name]; exists {
		panic(fmt.Sprintf("registry: backend %q already registered", name))
	}
	backends[name] = entry{factory: f, description: description}
}

// List returns all registered backends, sorted by name.
func List() []BackendInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]BackendInfo, 0, len(backends))
	for name, e := range backends {
		result = append(result, BackendInfo{Name: name, Description: e.description})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

// Create instantiates a device by backend name.
func Create(name string, opts Options) (Device, error) {
	mu.RLock()
	e, ok := backends[name]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown backend %q", name)
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	dev, err := e.factory(opts)
	if err != nil {
		return nil, fmt.Errorf("registry: create %s: %w", name, err)
	}
	return dev, nil
}

// Exists checks if a backend with the given name is registered.
func Exists(name string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := backends[name]
	return ok
}
