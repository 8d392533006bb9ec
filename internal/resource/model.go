package resource

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"offloadd/internal/device"
	"offloadd/internal/offload"
)

// RunFunc is the underlying computation bound to a Model. The registry
// guarantees placement before it runs.
type RunFunc func(ctx context.Context) error

// Model is a file-backed weight blob managed by the offload registry.
// Placement is tracked, not copied: MoveTo records the new location and the
// bound runtime is expected to honor it.
type Model struct {
	mu   sync.Mutex
	path string
	kind string
	elem string
	size uint64
	dev  device.Device
	run  RunFunc
}

// Option customizes a Model at construction.
type Option func(*Model)

// WithKind overrides the kind label derived from the file extension.
func WithKind(kind string) Option { return func(m *Model) { m.kind = kind } }

// WithElemType sets the element type label (default float16).
func WithElemType(elem string) Option { return func(m *Model) { m.elem = elem } }

// WithRun binds the underlying computation executed by Run.
func WithRun(fn RunFunc) Option { return func(m *Model) { m.run = fn } }

// Open stats the weight file at path and builds a Model resident on the
// overflow location.
func Open(path string, opts ...Option) (*Model, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat weights: %w", err)
	}
	m := &Model{
		path: path,
		kind: kindFromPath(path),
		elem: "float16",
		size: uint64(fi.Size()),
		dev:  device.CPU,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

func kindFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gguf":
		return "gguf"
	case ".safetensors":
		return "safetensors"
	default:
		return "checkpoint"
	}
}

// Path returns the backing weight file.
func (m *Model) Path() string { return m.path }

func (m *Model) Device() device.Device {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dev
}

// MoveTo relocates the model. Idempotent when already at d.
func (m *Model) MoveTo(d device.Device) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dev = d.Normalized()
	return nil
}

func (m *Model) Kind() string     { return m.kind }
func (m *Model) ElemType() string { return m.elem }

// Footprint reports the resident byte size (offload.SelfReporter).
func (m *Model) Footprint() uint64 { return m.size }

// Run executes the bound computation, if any.
func (m *Model) Run(ctx context.Context, _ ...offload.Payload) error {
	if m.run == nil {
		return nil
	}
	return m.run(ctx)
}
