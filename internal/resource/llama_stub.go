//go:build !llama

package resource

import (
	"context"

	"offloadd/internal/offload"
)

// llamaBuilt indicates this binary was compiled with real llama support.
var llamaBuilt = false

// LlamaRun is a stub when built without the llama tag.
func LlamaRun(path string, ctxSize, threads int) RunFunc {
	return func(context.Context) error {
		return offload.ErrDependencyUnavailable("offloadd built without llama support (rebuild with -tags=llama)")
	}
}
