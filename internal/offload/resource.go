package offload

import (
	"context"

	"offloadd/internal/device"
)

// Resource is a movable, sizeable unit of work whose placement is managed by
// the registry. The registry does not interpret resource internals; it only
// needs location, movement and the underlying computation entry point.
type Resource interface {
	// Device returns the resource's present location.
	Device() device.Device
	// MoveTo relocates the resource. Idempotent when already at d.
	MoveTo(d device.Device) error
	// Kind labels the implementation (class name equivalent).
	Kind() string
	// ElemType labels the element type of the resource's data.
	ElemType() string
	// Run executes the underlying computation. Placement of the resource and
	// its payloads is guaranteed by the caller before Run is invoked.
	Run(ctx context.Context, args ...Payload) error
}

// Payload is an invocation input that can be rehomed onto a device before
// the underlying computation runs.
type Payload interface {
	MoveTo(d device.Device) error
}

// Estimator returns the resident byte size of a resource. Implementations
// must be deterministic and side-effect free.
type Estimator interface {
	Footprint(r Resource) (uint64, error)
}

// SelfReporter is implemented by resources that know their own footprint.
type SelfReporter interface {
	Footprint() uint64
}

// SelfEstimator asks the resource itself for its footprint.
type SelfEstimator struct{}

func (SelfEstimator) Footprint(r Resource) (uint64, error) {
	if sr, ok := r.(SelfReporter); ok {
		return sr.Footprint(), nil
	}
	return 0, errNoFootprint{}
}

type errNoFootprint struct{}

func (errNoFootprint) Error() string { return "resource does not report a footprint" }
