package device

import (
	"fmt"
	"strconv"
	"strings"
)

// Device identifies a placement target: a type plus an ordinal index.
// Index is -1 when the caller did not specify one; Normalized resolves it.
type Device struct {
	Type  string
	Index int
}

// CPU is the overflow location. It is unconstrained and always index 0.
var CPU = Device{Type: "cpu", Index: 0}

// Parse interprets strings like "cuda", "cuda:1" or "cpu".
func Parse(s string) (Device, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Device{}, fmt.Errorf("empty device")
	}
	typ, idx, found := strings.Cut(s, ":")
	if typ == "" {
		return Device{}, fmt.Errorf("invalid device %q", s)
	}
	d := Device{Type: typ, Index: -1}
	if found {
		n, err := strconv.Atoi(idx)
		if err != nil || n < 0 {
			return Device{}, fmt.Errorf("invalid device index in %q", s)
		}
		d.Index = n
	}
	if d.Type == "cpu" && d.Index <= 0 {
		return CPU, nil
	}
	return d, nil
}

// Normalized returns the device with an explicit index. A device type alone
// is not a complete target; the missing index defaults to 0.
func (d Device) Normalized() Device {
	if d.Index < 0 {
		d.Index = 0
	}
	return d
}

// IsCPU reports whether d is the overflow location.
func (d Device) IsCPU() bool { return d.Type == "cpu" }

func (d Device) String() string {
	if d.Type == "cpu" {
		return "cpu"
	}
	if d.Index < 0 {
		return d.Type
	}
	return d.Type + ":" + strconv.Itoa(d.Index)
}
