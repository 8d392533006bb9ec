package device

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
)

func newFakePlugin(t *testing.T, totalMiB, usedMiB float64) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v1.0/gpu/info/json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"Devices":[{"UUID":"GPU-0","Memory":{"Global":` + formatF(totalMiB) + `}}]}`))
	})
	mux.HandleFunc("/v1.0/gpu/status/json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"Devices":[{"Memory":{"GlobalUsed":` + formatF(usedMiB) + `}}]}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func formatF(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func TestNvidiaProbeFreeMemory(t *testing.T) {
	srv := newFakePlugin(t, 8192, 2048)
	p := NewNvidiaProbe(srv.URL)
	d, _ := Parse("cuda:0")
	free, err := p.FreeMemory(d)
	if err != nil {
		t.Fatalf("free memory: %v", err)
	}
	want := uint64(8192-2048) << 20
	if free != want {
		t.Fatalf("expected %d free, got %d", want, free)
	}
}

func TestNvidiaProbeUnknownIndex(t *testing.T) {
	srv := newFakePlugin(t, 8192, 0)
	p := NewNvidiaProbe(srv.URL)
	d, _ := Parse("cuda:3")
	if _, err := p.FreeMemory(d); err == nil {
		t.Fatalf("expected error for out-of-range device index")
	}
}

func TestNvidiaProbeDown(t *testing.T) {
	p := NewNvidiaProbe("http://127.0.0.1:1")
	d, _ := Parse("cuda:0")
	if _, err := p.FreeMemory(d); err == nil {
		t.Fatalf("expected error when plugin is unreachable")
	}
}
