package offload

import (
	"context"
	"testing"

	"offloadd/internal/device"
)

func TestAddPreservesInsertionOrder(t *testing.T) {
	r := New(device.NewStaticProbe())
	for _, id := range []string{"c", "a", "b"} {
		added, err := r.Add(id, newFakeResource(gib))
		if err != nil {
			t.Fatalf("add %s: %v", id, err)
		}
		if !added {
			t.Fatalf("expected %s added", id)
		}
	}
	ids := r.IDs()
	if len(ids) != 3 || ids[0] != "c" || ids[1] != "a" || ids[2] != "b" {
		t.Fatalf("unexpected order: %v", ids)
	}
}

func TestAddDuplicateIsNoOp(t *testing.T) {
	r := New(device.NewStaticProbe())
	first := newFakeResource(gib)
	if added, _ := r.Add("m", first); !added {
		t.Fatalf("expected first add to succeed")
	}
	added, err := r.Add("m", newFakeResource(2*gib))
	if err != nil {
		t.Fatalf("duplicate add: %v", err)
	}
	if added {
		t.Fatalf("expected duplicate add to be a no-op")
	}
	got, ok := r.Get("m")
	if !ok || got != Resource(first) {
		t.Fatalf("original resource binding changed")
	}
	if r.Len() != 1 {
		t.Fatalf("expected 1 resource, got %d", r.Len())
	}
}

func TestRemoveMissingIsNotFound(t *testing.T) {
	r := New(device.NewStaticProbe())
	err := r.Remove("missing")
	if err == nil || !IsNotFound(err) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestRemoveDeletes(t *testing.T) {
	r := New(device.NewStaticProbe())
	r.Add("m", newFakeResource(gib))
	if err := r.Remove("m"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, ok := r.Get("m"); ok {
		t.Fatalf("expected resource gone")
	}
}

func TestInvokeUnknownIsNotFound(t *testing.T) {
	r := New(device.NewStaticProbe())
	err := r.Invoke(context.Background(), "nope")
	if err == nil || !IsNotFound(err) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestInvokeDisabledRunsDirectly(t *testing.T) {
	r := New(device.NewStaticProbe())
	res := newFakeResource(gib)
	r.Add("m", res)
	if err := r.Invoke(context.Background(), "m"); err != nil {
		t.Fatalf("invoke: %v", err)
	}
	if res.runs != 1 {
		t.Fatalf("expected run once, got %d", res.runs)
	}
	if res.moves != 0 {
		t.Fatalf("expected no movement while disabled, got %d", res.moves)
	}
}

func TestStatusProjection(t *testing.T) {
	probe := device.NewStaticProbe()
	r := New(probe)
	r.Add("a", newFakeResource(2*gib))
	r.Add("b", newFakeResource(3*gib))

	st := r.Status()
	if st.AutoOffload {
		t.Fatalf("expected auto offload inactive")
	}
	if len(st.Resources) != 2 || st.Resources[0].ID != "a" || st.Resources[1].ID != "b" {
		t.Fatalf("unexpected resources: %+v", st.Resources)
	}
	if st.Resources[1].SizeBytes != 3*gib {
		t.Fatalf("unexpected size: %d", st.Resources[1].SizeBytes)
	}

	d := mustParse(t, "cuda")
	probe.SetFree(d.Normalized(), 100*gib)
	if err := r.EnableAutoOffload(d, 0.1); err != nil {
		t.Fatalf("enable: %v", err)
	}
	st = r.Status()
	if !st.AutoOffload || st.Device != "cuda:0" || st.Margin != 0.1 {
		t.Fatalf("unexpected status after enable: %+v", st)
	}
}
