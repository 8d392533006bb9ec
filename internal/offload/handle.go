package offload

import "offloadd/internal/device"

// Handle couples a resource identity, the resource itself and its
// Interceptor. It exclusively owns the Interceptor while attached.
type Handle struct {
	ID       string
	Resource Resource
	hook     *Interceptor
}

// Attach binds the Interceptor to the resource, records the owning id for
// logging and forces the resource onto the overflow location (the initial
// state is off-device).
func (h *Handle) Attach() error {
	h.hook.ownerID = h.ID
	return h.Resource.MoveTo(device.CPU)
}

// Detach uninstalls the Interceptor and clears the owning id. Detaching a
// handle never attached is a no-op.
func (h *Handle) Detach() {
	if h.hook == nil {
		return
	}
	h.hook.ownerID = ""
	h.hook.peers = nil
}

// Offload forces the bound resource onto the overflow location without
// removing the Interceptor. Used for manual offload and as the eviction
// primitive.
func (h *Handle) Offload() error {
	return h.Resource.MoveTo(device.CPU)
}

// AddPeer registers other as an eviction peer on the underlying Interceptor.
func (h *Handle) AddPeer(other *Handle) {
	h.hook.peers = append(h.hook.peers, other)
}

// Peers returns the ids of the handle's current eviction peers.
func (h *Handle) Peers() []string {
	out := make([]string, 0, len(h.hook.peers))
	for _, p := range h.hook.peers {
		out = append(out, p.ID)
	}
	return out
}
