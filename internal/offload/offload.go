package offload

import "offloadd/internal/device"

// EnableAutoOffload builds one Interceptor and Handle per registered
// resource against the given execution device, attaches them (forcing every
// resource to the overflow location) and links each Interceptor to all peers
// targeting the same device. One strategy instance, built from margin, is
// shared by reference across all Interceptors of this call.
//
// A negative margin selects DefaultMargin. Re-enabling while already enabled
// is equivalent to a full disable followed by a fresh enable; callers never
// observe a partially wired state.
func (r *Registry) EnableAutoOffload(d device.Device, margin float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.enableLocked(d, margin)
}

func (r *Registry) enableLocked(d device.Device, margin float64) error {
	if margin < 0 {
		margin = DefaultMargin
	}
	// Strip any previous wiring before rebuilding.
	if err := r.disableLocked(); err != nil {
		return err
	}
	d = d.Normalized()

	strat := NewAutoStrategy(margin, r.est, r.probe, r.log)
	handles := make([]*Handle, 0, r.resources.Len())
	for el := r.resources.Front(); el != nil; el = el.Next() {
		h := &Handle{
			ID:       el.Key,
			Resource: el.Value,
			hook:     &Interceptor{target: d, strategy: strat, reg: r},
		}
		if err := h.Attach(); err != nil {
			for _, built := range handles {
				built.Detach()
			}
			return err
		}
		handles = append(handles, h)
	}

	// Pairwise symmetric wiring, restricted to handles sharing a target.
	wirePeers(handles)

	r.handles = handles
	r.enabled = true
	r.autoDevice = d
	r.autoMargin = margin
	r.log.Info().
		Str("device", d.String()).
		Float64("margin", margin).
		Int("resources", len(handles)).
		Msg("auto offload enabled")
	r.pub.Publish(Event{Name: "auto_offload_enabled", Fields: map[string]any{
		"device":    d.String(),
		"resources": len(handles),
	}})
	return nil
}

// DisableAutoOffload offloads every handled resource to the overflow
// location, detaches all Interceptors and releases cached device memory once
// if at least one handle existed. Calling it while inactive is a no-op.
func (r *Registry) DisableAutoOffload() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.disableLocked()
}

func (r *Registry) disableLocked() error {
	if !r.enabled && r.handles == nil {
		return nil
	}
	var firstErr error
	for _, h := range r.handles {
		if err := h.Offload(); err != nil && firstErr == nil {
			firstErr = err
		}
		h.Detach()
	}
	if len(r.handles) > 0 {
		r.probe.ReleaseCache(r.autoDevice)
	}
	r.handles = nil
	r.enabled = false
	r.log.Info().Str("device", r.autoDevice.String()).Msg("auto offload disabled")
	r.pub.Publish(Event{Name: "auto_offload_disabled", Fields: map[string]any{
		"device": r.autoDevice.String(),
	}})
	return firstErr
}

// Handles returns the current auto-offload handles, in registry order.
// Empty while disabled.
func (r *Registry) Handles() []*Handle {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Handle, len(r.handles))
	copy(out, r.handles)
	return out
}

func wirePeers(handles []*Handle) {
	for i, h := range handles {
		for j, other := range handles {
			if i == j {
				continue
			}
			if other.hook.target == h.hook.target {
				h.AddPeer(other)
			}
		}
	}
}
