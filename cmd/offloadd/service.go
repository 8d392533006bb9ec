package main

import (
	"context"

	"offloadd/internal/device"
	"offloadd/internal/offload"
	"offloadd/internal/resource"
	"offloadd/pkg/types"
)

// offloadService adapts the offload registry to the HTTP Service interface,
// constructing file-backed resources from request paths.
type offloadService struct {
	reg          *offload.Registry
	runner       string
	llamaCtx     int
	llamaThreads int
}

func (s *offloadService) Status() types.StatusResponse { return s.reg.Status() }
func (s *offloadService) Describe() string             { return s.reg.Describe() }

func (s *offloadService) AddResource(req types.AddResourceRequest) (bool, error) {
	var opts []resource.Option
	if req.ElemType != "" {
		opts = append(opts, resource.WithElemType(req.ElemType))
	}
	if s.runner == "llama" {
		opts = append(opts, resource.WithRun(resource.LlamaRun(req.Path, s.llamaCtx, s.llamaThreads)))
	}
	m, err := resource.Open(req.Path, opts...)
	if err != nil {
		return false, err
	}
	return s.reg.Add(req.ID, m)
}

func (s *offloadService) RemoveResource(id string) error { return s.reg.Remove(id) }

func (s *offloadService) EnableAutoOffload(dev string, margin float64) error {
	d, err := device.Parse(dev)
	if err != nil {
		return err
	}
	return s.reg.EnableAutoOffload(d, margin)
}

func (s *offloadService) DisableAutoOffload() error { return s.reg.DisableAutoOffload() }

func (s *offloadService) Invoke(ctx context.Context, id string) error {
	return s.reg.Invoke(ctx, id)
}

func (s *offloadService) Ready() bool { return true }
