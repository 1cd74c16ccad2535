package engine

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/tetratelabs/wazero"
	"go.uber.org/zap"

	"github.com/dh0er/wasm-ffi/errors"
)

// Config holds configuration for engine creation.
type Config struct {
	// MemoryLimitPages sets the maximum memory per instance in pages
	// (64KB each). 0 means the wazero default.
	MemoryLimitPages uint32
}

// Engine owns a wazero runtime plus the child runtimes created for
// shim instantiations. Closing the engine closes all of them.
type Engine struct {
	runtime wazero.Runtime

	mu       sync.Mutex
	children []wazero.Runtime
	closed   bool

	memCount atomic.Uint64
}

// New creates an engine with default configuration.
func New(ctx context.Context) (*Engine, error) {
	return NewWithConfig(ctx, nil)
}

// NewWithConfig creates an engine with custom configuration.
func NewWithConfig(ctx context.Context, cfg *Config) (*Engine, error) {
	runtimeCfg := wazero.NewRuntimeConfig()
	if cfg != nil && cfg.MemoryLimitPages > 0 {
		runtimeCfg = runtimeCfg.WithMemoryLimitPages(cfg.MemoryLimitPages)
	}
	return &Engine{runtime: wazero.NewRuntimeWithConfig(ctx, runtimeCfg)}, nil
}

// Close releases the engine and every runtime it created. Exported
// callables and memories obtained from this engine are invalid
// afterwards.
func (e *Engine) Close(ctx context.Context) error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	children := e.children
	e.children = nil
	e.mu.Unlock()

	var first error
	for _, c := range children {
		if err := c.Close(ctx); err != nil && first == nil {
			first = err
		}
	}
	if err := e.runtime.Close(ctx); err != nil && first == nil {
		first = err
	}
	if first != nil {
		Logger().Warn("engine close", zap.Error(first))
	}
	return first
}

// adopt registers a child runtime for cleanup at engine close.
func (e *Engine) adopt(child wazero.Runtime) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return errors.InvalidInput(errors.PhaseHost, "engine closed")
	}
	e.children = append(e.children, child)
	return nil
}
