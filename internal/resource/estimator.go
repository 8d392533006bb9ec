package resource

import (
	"os"

	"offloadd/internal/offload"
)

// FileEstimator sizes a resource from its backing file. Falls back to the
// resource's own report when no file path is exposed.
type FileEstimator struct{}

func (FileEstimator) Footprint(r offload.Resource) (uint64, error) {
	if p, ok := r.(interface{ Path() string }); ok {
		fi, err := os.Stat(p.Path())
		if err != nil {
			// Conservative minimum of 1MiB so an unknown size never
			// bypasses capacity checks.
			return 1 << 20, nil
		}
		return uint64(fi.Size()), nil
	}
	return offload.SelfEstimator{}.Footprint(r)
}
