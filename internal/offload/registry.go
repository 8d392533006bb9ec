package offload

import (
	"context"
	"sync"
	"time"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/rs/zerolog"

	"offloadd/internal/device"
)

// RegistryConfig encapsulates collaborators for Registry construction.
// Zero-value fields are replaced by defaults.
type RegistryConfig struct {
	Estimator Estimator
	Probe     device.MemoryProbe
	Logger    *zerolog.Logger
	Publisher EventPublisher
}

// Registry owns the ordered collection of resources and wires Interceptors
// into peer groups when auto-offload is enabled.
//
// Topology mutations and the placement phase of Invoke serialize on one
// mutex; the underlying computation runs outside it. Concurrent invocation
// of resources sharing a device is not supported: a concurrently running
// computation can have its resource evicted mid-run.
type Registry struct {
	mu        sync.Mutex
	resources *orderedmap.OrderedMap[string, Resource]
	handles   []*Handle

	enabled    bool
	autoDevice device.Device
	autoMargin float64

	est   Estimator
	probe device.MemoryProbe
	log   zerolog.Logger
	pub   EventPublisher

	evictions uint64
	startTime time.Time
}

// New constructs a Registry with default collaborators and the given probe.
func New(probe device.MemoryProbe) *Registry {
	return NewWithConfig(RegistryConfig{Probe: probe})
}

// NewWithConfig constructs a Registry from RegistryConfig.
func NewWithConfig(cfg RegistryConfig) *Registry {
	r := &Registry{
		resources: orderedmap.NewOrderedMap[string, Resource](),
		est:       cfg.Estimator,
		probe:     cfg.Probe,
		log:       zerolog.Nop(),
		pub:       cfg.Publisher,
		startTime: time.Now(),
	}
	if r.est == nil {
		r.est = SelfEstimator{}
	}
	if r.probe == nil {
		r.probe = device.NewStaticProbe()
	}
	if cfg.Logger != nil {
		r.log = *cfg.Logger
	}
	if r.pub == nil {
		r.pub = noopPublisher{}
	}
	return r
}

// Add registers res under id at the end of iteration order. Adding an id
// already present is a no-op and returns false. While auto-offload is
// active, a successful add fully rewires the peer groups.
func (r *Registry) Add(id string, res Resource) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.resources.Get(id); ok {
		r.log.Debug().Str("resource", id).Msg("already registered")
		return false, nil
	}
	r.resources.Set(id, res)
	managedResources.Set(float64(r.resources.Len()))
	if r.enabled {
		if err := r.enableLocked(r.autoDevice, r.autoMargin); err != nil {
			return true, err
		}
	}
	return true, nil
}

// Remove deletes the resource registered under id. Removing an absent id
// fails with a not-found error. While auto-offload is active, a successful
// remove fully rewires the peer groups.
func (r *Registry) Remove(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.resources.Get(id); !ok {
		return ErrNotFound(id)
	}
	r.resources.Delete(id)
	managedResources.Set(float64(r.resources.Len()))
	if r.enabled {
		return r.enableLocked(r.autoDevice, r.autoMargin)
	}
	return nil
}

// Get returns the resource registered under id.
func (r *Registry) Get(id string) (Resource, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resources.Get(id)
}

// IDs returns the registered ids in insertion order.
func (r *Registry) IDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, r.resources.Len())
	for el := r.resources.Front(); el != nil; el = el.Next() {
		out = append(out, el.Key)
	}
	return out
}

// Len returns the number of registered resources.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resources.Len()
}

// AutoOffloadEnabled reports whether auto-offload is active.
func (r *Registry) AutoOffloadEnabled() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.enabled
}

// Invoke runs the resource registered under id. When auto-offload is active
// the invocation is intercepted: the resource is placed on the target device
// (evicting peers as needed) and args are rehomed before Run executes.
func (r *Registry) Invoke(ctx context.Context, id string, args ...Payload) error {
	r.mu.Lock()
	res, ok := r.resources.Get(id)
	if !ok {
		r.mu.Unlock()
		return ErrNotFound(id)
	}
	if r.enabled {
		if h := r.handleFor(id); h != nil {
			if err := h.hook.preRun(res, args); err != nil {
				r.mu.Unlock()
				return err
			}
		}
	}
	r.mu.Unlock()
	return res.Run(ctx, args...)
}

func (r *Registry) handleFor(id string) *Handle {
	for _, h := range r.handles {
		if h.ID == id {
			return h
		}
	}
	return nil
}

func (r *Registry) noteEvictions(n int) {
	// Called with r.mu held, from the invoke path.
	r.evictions += uint64(n)
}
