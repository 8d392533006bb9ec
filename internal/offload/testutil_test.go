package offload

import (
	"context"
	"testing"

	"offloadd/internal/device"
)

const gib = uint64(1) << 30

// fakeResource tracks placement and run counts for assertions.
type fakeResource struct {
	dev     device.Device
	size    uint64
	kind    string
	elem    string
	moves   int
	runs    int
	moveErr error
}

func newFakeResource(sizeBytes uint64) *fakeResource {
	return &fakeResource{dev: device.CPU, size: sizeBytes}
}

func (f *fakeResource) Device() device.Device { return f.dev }

func (f *fakeResource) MoveTo(d device.Device) error {
	if f.moveErr != nil {
		return f.moveErr
	}
	f.moves++
	f.dev = d.Normalized()
	return nil
}

func (f *fakeResource) Kind() string {
	if f.kind == "" {
		return "fake"
	}
	return f.kind
}

func (f *fakeResource) ElemType() string {
	if f.elem == "" {
		return "float16"
	}
	return f.elem
}

func (f *fakeResource) Footprint() uint64 { return f.size }

func (f *fakeResource) Run(context.Context, ...Payload) error {
	f.runs++
	return nil
}

// fakePayload records where it was rehomed.
type fakePayload struct {
	dev device.Device
}

func (p *fakePayload) MoveTo(d device.Device) error {
	p.dev = d.Normalized()
	return nil
}

// errProbe fails every memory query.
type errProbe struct{ err error }

func (p errProbe) FreeMemory(device.Device) (uint64, error) { return 0, p.err }
func (p errProbe) ReleaseCache(device.Device)               {}

func mustParse(t *testing.T, s string) device.Device {
	t.Helper()
	d, err := device.Parse(s)
	if err != nil {
		t.Fatalf("parse device %q: %v", s, err)
	}
	return d
}
