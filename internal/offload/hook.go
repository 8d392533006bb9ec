package offload

import (
	"time"

	"github.com/google/uuid"

	"offloadd/internal/device"
)

// Interceptor guards one resource's invocations. It has two states, derived
// from the resource's placement: off-device (resource at the overflow
// location) and on-device. Attach forces the resource off-device; each
// invocation transitions it on-device, evicting peers first when the device
// lacks capacity.
//
// peers contains exactly the other handles in the same registry whose
// Interceptor targets the same device. It is mutated only by the registry
// during rewiring; the Interceptor itself never changes the graph.
type Interceptor struct {
	target   device.Device
	strategy Strategy
	ownerID  string
	peers    []*Handle
	reg      *Registry
}

// Target returns the execution device this Interceptor places resources on.
func (ic *Interceptor) Target() device.Device { return ic.target }

// preRun ensures r is resident on the target device, evicting peers as
// needed, then rehomes every payload argument. Evictions complete strictly
// before the final placement move.
func (ic *Interceptor) preRun(r Resource, args []Payload) error {
	if r.Device() != ic.target {
		if err := ic.placeOnDevice(r); err != nil {
			return err
		}
	}
	for _, a := range args {
		if a == nil {
			continue
		}
		if err := a.MoveTo(ic.target); err != nil {
			return err
		}
	}
	return nil
}

func (ic *Interceptor) placeOnDevice(r Resource) error {
	var candidates []Candidate
	for _, p := range ic.peers {
		if p.Resource.Device() == ic.target {
			candidates = append(candidates, Candidate{ID: p.ID, Resource: p.Resource})
		}
	}

	selected := candidates
	if ic.strategy != nil {
		start := time.Now()
		sel, err := ic.strategy.Select(candidates, ic.ownerID, r, ic.target)
		if err != nil {
			return err
		}
		dur := time.Since(start)
		strategySeconds.WithLabelValues(ic.target.String()).Observe(dur.Seconds())
		// Wall-clock cost of selection, for observability only.
		ic.reg.log.Info().
			Str("resource", ic.ownerID).
			Dur("dur", dur).
			Msg("offload strategy applied")
		selected = sel
	}

	opID := uuid.NewString()
	for _, c := range selected {
		ic.reg.log.Info().
			Str("resource", ic.ownerID).
			Str("device", ic.target.String()).
			Str("evicted", c.ID).
			Msg("moving resource to device, offloading peer to cpu")
		h := ic.peerByID(c.ID)
		if h == nil {
			continue
		}
		if err := h.Offload(); err != nil {
			return err
		}
	}
	if len(selected) > 0 {
		// One batched release after all evictions of this invocation.
		ic.reg.probe.ReleaseCache(ic.target)
		ic.reg.noteEvictions(len(selected))
		evictionsTotal.WithLabelValues(ic.target.String()).Add(float64(len(selected)))
		ic.reg.pub.Publish(Event{
			Name:       "evicted",
			ResourceID: ic.ownerID,
			Fields:     map[string]any{"op_id": opID, "device": ic.target.String(), "count": len(selected)},
		})
	}
	return r.MoveTo(ic.target)
}

func (ic *Interceptor) peerByID(id string) *Handle {
	for _, p := range ic.peers {
		if p.ID == id {
			return p
		}
	}
	return nil
}
