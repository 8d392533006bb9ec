package offload

import (
	"time"

	"offloadd/pkg/types"
)

// Status builds a detailed status response for /status.
func (r *Registry) Status() types.StatusResponse {
	r.mu.Lock()
	defer r.mu.Unlock()
	resp := types.StatusResponse{
		AutoOffload:    r.enabled,
		Margin:         r.autoMargin,
		EvictionsTotal: r.evictions,
		UptimeSeconds:  int64(time.Since(r.startTime).Seconds()),
		ServerTimeUnix: time.Now().Unix(),
	}
	if r.enabled {
		resp.Device = r.autoDevice.String()
	}
	resp.Resources = make([]types.ResourceInfo, 0, r.resources.Len())
	for el := r.resources.Front(); el != nil; el = el.Next() {
		res := el.Value
		size, err := r.est.Footprint(res)
		if err != nil {
			size = 0
		}
		resp.Resources = append(resp.Resources, types.ResourceInfo{
			ID:        el.Key,
			Kind:      res.Kind(),
			Device:    res.Device().String(),
			ElemType:  res.ElemType(),
			SizeBytes: size,
		})
	}
	return resp
}
