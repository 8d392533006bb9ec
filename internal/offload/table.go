package offload

import (
	"fmt"
	"strings"
)

// Describe renders a fixed-width table of the registry contents in insertion
// order: id, kind, device, element type and size in GiB. Purely derived; no
// state is mutated.
func (r *Registry) Describe() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	idW, kindW := 15, 25
	const devW, elemW, sizeW = 10, 15, 10
	for el := r.resources.Front(); el != nil; el = el.Next() {
		if len(el.Key) > idW {
			idW = len(el.Key)
		}
		if k := el.Value.Kind(); len(k) > kindW {
			kindW = len(k)
		}
	}

	total := idW + kindW + devW + elemW + sizeW + 5*3 - 1
	sep := strings.Repeat("=", total) + "\n"
	dash := strings.Repeat("-", total) + "\n"

	var b strings.Builder
	b.WriteString("ResourceRegistry:\n")
	b.WriteString(sep)
	fmt.Fprintf(&b, "%-*s | %-*s | %-*s | %-*s | Size (GiB)\n",
		idW, "Resource ID", kindW, "Kind", devW, "Device", elemW, "Elem Type")
	b.WriteString(dash)
	for el := r.resources.Front(); el != nil; el = el.Next() {
		res := el.Value
		size, err := r.est.Footprint(res)
		if err != nil {
			size = 0
		}
		fmt.Fprintf(&b, "%-*s | %-*s | %-*s | %-*s | %.2f\n",
			idW, el.Key,
			kindW, res.Kind(),
			devW, res.Device().String(),
			elemW, res.ElemType(),
			float64(size)/(1<<30))
	}
	b.WriteString(sep)
	return b.String()
}
