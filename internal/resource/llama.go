//go:build llama

package resource

import (
	"context"
	"errors"
	"strings"

	llama "github.com/go-skynet/go-llama.cpp"
)

// llamaBuilt indicates this binary was compiled with real llama support.
var llamaBuilt = true

// LlamaRun returns a RunFunc that loads the gguf weights in-process and
// performs a single short prediction, validating that the weights are usable
// where the registry placed them. The model is loaded lazily on first run
// and kept for the lifetime of the RunFunc.
func LlamaRun(path string, ctxSize, threads int) RunFunc {
	var model *llama.LLama
	return func(ctx context.Context) error {
		if strings.TrimSpace(path) == "" {
			return errors.New("model path is empty")
		}
		if model == nil {
			m, err := llama.New(path, llama.SetContext(ctxSize))
			if err != nil {
				return err
			}
			model = m
		}
		model.SetTokenCallback(func(string) bool {
			select {
			case <-ctx.Done():
				return false
			default:
				return true
			}
		})
		_, err := model.Predict("", llama.SetTokens(1), llama.SetThreads(threads))
		if err != nil && ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
}
