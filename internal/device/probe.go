package device

import "sync"

// MemoryProbe answers capacity questions about a device and accepts
// best-effort cache release hints after evictions.
type MemoryProbe interface {
	// FreeMemory returns the current free capacity in bytes. The value may
	// change between calls.
	FreeMemory(d Device) (uint64, error)
	// ReleaseCache hints the device to reclaim cached memory. Safe to no-op.
	ReleaseCache(d Device)
}

// StaticProbe is a MemoryProbe backed by a fixed free-memory table, keyed by
// device string. Used when no live probe endpoint is configured, and by tests.
type StaticProbe struct {
	mu       sync.Mutex
	free     map[string]uint64
	releases int
}

func NewStaticProbe() *StaticProbe {
	return &StaticProbe{free: make(map[string]uint64)}
}

// SetFree pins the free capacity reported for d.
func (p *StaticProbe) SetFree(d Device, bytes uint64) {
	p.mu.Lock()
	p.free[d.String()] = bytes
	p.mu.Unlock()
}

func (p *StaticProbe) FreeMemory(d Device) (uint64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.free[d.String()], nil
}

func (p *StaticProbe) ReleaseCache(d Device) {
	p.mu.Lock()
	p.releases++
	p.mu.Unlock()
}

// Releases reports how many cache-release hints were received.
func (p *StaticProbe) Releases() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.releases
}
