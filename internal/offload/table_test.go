package offload

import (
	"strings"
	"testing"

	"offloadd/internal/device"
)

func TestDescribeRendersRows(t *testing.T) {
	r := New(device.NewStaticProbe())
	a := newFakeResource(5 * gib)
	a.kind = "gguf"
	a.elem = "float16"
	r.Add("text_encoder", a)
	b := newFakeResource(gib / 2)
	b.kind = "safetensors"
	r.Add("vae", b)

	out := r.Describe()
	if !strings.HasPrefix(out, "ResourceRegistry:\n") {
		t.Fatalf("missing header: %q", out)
	}
	for _, want := range []string{"Resource ID", "Kind", "Device", "Elem Type", "Size (GiB)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing column %q in:\n%s", want, out)
		}
	}
	if !strings.Contains(out, "text_encoder") || !strings.Contains(out, "5.00") {
		t.Fatalf("missing text_encoder row in:\n%s", out)
	}
	if !strings.Contains(out, "vae") || !strings.Contains(out, "0.50") {
		t.Fatalf("missing vae row in:\n%s", out)
	}
	if !strings.Contains(out, "cpu") {
		t.Fatalf("expected cpu placement in:\n%s", out)
	}

	// Insertion order: text_encoder row before vae row.
	if strings.Index(out, "text_encoder") > strings.Index(out, "vae") {
		t.Fatalf("rows out of insertion order:\n%s", out)
	}

	lines := strings.Split(out, "\n")
	var rules int
	for _, l := range lines {
		if len(l) > 0 && strings.Trim(l, "=") == "" {
			rules++
		}
	}
	if rules != 2 {
		t.Fatalf("expected 2 separator rules, got %d:\n%s", rules, out)
	}
}

func TestDescribeEmptyRegistry(t *testing.T) {
	r := New(device.NewStaticProbe())
	out := r.Describe()
	if !strings.Contains(out, "Resource ID") {
		t.Fatalf("expected header even when empty:\n%s", out)
	}
}
