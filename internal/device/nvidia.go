package device

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// DefaultNvidiaEndpoint is the nvidia-docker-plugin REST endpoint.
const DefaultNvidiaEndpoint = "http://127.0.0.1:3476"

// NvidiaProbe queries GPU memory through the nvidia-docker-plugin HTTP API.
// Totals are fetched once from /v1.0/gpu/info/json; free memory is derived
// per call from /v1.0/gpu/status/json (values reported in MiB).
type NvidiaProbe struct {
	base   string
	client *http.Client

	mu     sync.Mutex
	totals []uint64 // total memory per device index, bytes
}

func NewNvidiaProbe(base string) *NvidiaProbe {
	if base == "" {
		base = DefaultNvidiaEndpoint
	}
	return &NvidiaProbe{
		base:   base,
		client: &http.Client{Timeout: 5 * time.Second},
	}
}

type nvidiaInfo struct {
	Devices []struct {
		UUID   string `json:"UUID"`
		Memory struct {
			Global float64 `json:"Global"`
		} `json:"Memory"`
	} `json:"Devices"`
}

type nvidiaStatus struct {
	Devices []struct {
		Memory struct {
			GlobalUsed float64 `json:"GlobalUsed"`
		} `json:"Memory"`
	} `json:"Devices"`
}

func (p *NvidiaProbe) get(path string, out any) error {
	resp, err := p.client.Get(p.base + path)
	if err != nil {
		return fmt.Errorf("gpu probe: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("gpu probe: unexpected status %d", resp.StatusCode)
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("gpu probe: read body: %w", err)
	}
	if err := json.Unmarshal(b, out); err != nil {
		return fmt.Errorf("gpu probe: decode: %w", err)
	}
	return nil
}

func (p *NvidiaProbe) ensureTotals() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.totals != nil {
		return nil
	}
	var info nvidiaInfo
	if err := p.get("/v1.0/gpu/info/json", &info); err != nil {
		return err
	}
	totals := make([]uint64, len(info.Devices))
	for i, d := range info.Devices {
		totals[i] = uint64(d.Memory.Global) << 20
	}
	p.totals = totals
	return nil
}

func (p *NvidiaProbe) FreeMemory(d Device) (uint64, error) {
	if err := p.ensureTotals(); err != nil {
		return 0, err
	}
	var st nvidiaStatus
	if err := p.get("/v1.0/gpu/status/json", &st); err != nil {
		return 0, err
	}
	idx := d.Normalized().Index
	p.mu.Lock()
	defer p.mu.Unlock()
	if idx >= len(p.totals) || idx >= len(st.Devices) {
		return 0, fmt.Errorf("gpu probe: no device at index %d", idx)
	}
	used := uint64(st.Devices[idx].Memory.GlobalUsed) << 20
	total := p.totals[idx]
	if used >= total {
		return 0, nil
	}
	return total - used, nil
}

// ReleaseCache is a no-op: the plugin exposes no reclaim endpoint, and the
// contract only requires a best-effort hint.
func (p *NvidiaProbe) ReleaseCache(Device) {}
