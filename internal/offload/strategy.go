package offload

import (
	"sort"

	"github.com/rs/zerolog"

	"offloadd/internal/device"
)

// DefaultMargin is the fractional safety margin applied to footprint
// estimates when the caller does not choose one.
const DefaultMargin = 0.1

// Candidate is a peer resource eligible for eviction because it currently
// occupies the target device.
type Candidate struct {
	ID       string
	Resource Resource
}

// Strategy selects which candidates to evict so the invoked resource fits on
// the target device. Returning all candidates signals the evict-all fallback.
type Strategy interface {
	Select(candidates []Candidate, ownerID string, invoked Resource, target device.Device) ([]Candidate, error)
}

// AutoStrategy frees the minimum total bytes that still cover the deficit
// between required and free device memory.
//
// The search enumerates every non-empty candidate subset, so it is
// exponential in candidate count. That is a deliberate scaling boundary:
// pipelines are expected to co-host a single-digit number of large
// resources. Anything bigger should swap in a polynomial bin-covering
// heuristic behind the Strategy interface.
type AutoStrategy struct {
	Margin    float64
	Estimator Estimator
	Probe     device.MemoryProbe
	Log       zerolog.Logger
}

func NewAutoStrategy(margin float64, est Estimator, probe device.MemoryProbe, log zerolog.Logger) *AutoStrategy {
	if margin < 0 {
		margin = DefaultMargin
	}
	return &AutoStrategy{Margin: margin, Estimator: est, Probe: probe, Log: log}
}

func (s *AutoStrategy) Select(candidates []Candidate, ownerID string, invoked Resource, target device.Device) ([]Candidate, error) {
	if len(candidates) == 0 {
		return nil, nil
	}

	size, err := s.Estimator.Footprint(invoked)
	if err != nil {
		return nil, err
	}
	required := uint64(float64(size) * (1 + s.Margin))

	free, err := s.Probe.FreeMemory(target)
	if err != nil {
		return nil, err
	}
	// Common fast path: the resource fits without evicting anyone.
	if required <= free {
		return nil, nil
	}
	deficit := required - free
	s.Log.Info().
		Str("resource", ownerID).
		Str("device", target.String()).
		Float64("deficit_gib", float64(deficit)/(1<<30)).
		Msg("searching for resources to offload")

	// Weigh candidates, largest first.
	weights := make([]uint64, len(candidates))
	for i, c := range candidates {
		w, err := s.Estimator.Footprint(c.Resource)
		if err != nil {
			return nil, err
		}
		weights[i] = w
	}
	ordered := make([]int, len(candidates))
	for i := range ordered {
		ordered[i] = i
	}
	sort.SliceStable(ordered, func(a, b int) bool { return weights[ordered[a]] > weights[ordered[b]] })

	best, ok := bestCover(weights, ordered, deficit)
	if !ok {
		// No subset covers the deficit: evict everything and let the caller
		// proceed regardless. No re-check, no retry.
		s.Log.Warn().
			Str("resource", ownerID).
			Str("device", target.String()).
			Msg("no combination of resources covers the deficit, offloading all")
		fallbackTotal.WithLabelValues(target.String()).Inc()
		return candidates, nil
	}

	out := make([]Candidate, 0, len(best))
	for _, i := range best {
		out = append(out, candidates[i])
	}
	return out, nil
}

// bestCover finds the subset of indices whose total weight is >= deficit and,
// among those, has the smallest total weight. Ties resolve arbitrarily. The
// second return is false when no subset reaches the deficit.
func bestCover(weights []uint64, ordered []int, deficit uint64) ([]int, bool) {
	var (
		bestMask  uint64
		bestTotal uint64
		found     bool
	)
	n := len(ordered)
	for mask := uint64(1); mask < uint64(1)<<n; mask++ {
		var total uint64
		for i := 0; i < n; i++ {
			if mask&(uint64(1)<<i) != 0 {
				total += weights[ordered[i]]
			}
		}
		if total < deficit {
			continue
		}
		if !found || total < bestTotal {
			bestMask, bestTotal, found = mask, total, true
		}
	}
	if !found {
		return nil, false
	}
	var out []int
	for i := 0; i < n; i++ {
		if bestMask&(uint64(1)<<i) != 0 {
			out = append(out, ordered[i])
		}
	}
	return out, true
}
