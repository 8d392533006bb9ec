package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"offloadd/pkg/types"
)

// LoadDir scans a directory for weight files (*.gguf, *.safetensors) and
// builds resource descriptors from filenames. ID is the full filename
// (including extension); other metadata is empty.
func LoadDir(dir string) ([]types.AddResourceRequest, error) {
	base, err := expandHome(dir)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("abs path: %w", err)
	}
	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}
	var out []types.AddResourceRequest
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		low := strings.ToLower(name)
		if !strings.HasSuffix(low, ".gguf") && !strings.HasSuffix(low, ".safetensors") {
			continue
		}
		out = append(out, types.AddResourceRequest{ID: name, Path: filepath.Join(abs, name)})
	}
	return out, nil
}

// expandHome expands a leading '~' to the user's home directory.
func expandHome(path string) (string, error) {
	if path == "" {
		return path, nil
	}
	if path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home dir: %w", err)
	}
	if path == "~" {
		return home, nil
	}
	// handle cases like ~/models/llm
	return filepath.Join(home, strings.TrimPrefix(path, "~/")), nil
}
