// Package offload places large resources across one capacity-constrained
// execution device and the unconstrained overflow location (host memory). It
// is structured into small files by concern:
//
//   - registry.go: core Registry type, constructor, add/remove/invoke.
//   - offload.go: enable/disable of auto-offload and peer-group wiring.
//   - handle.go: Handle binding a resource id to its Interceptor.
//   - hook.go: Interceptor placement state machine around each invocation.
//   - strategy.go: Strategy interface and the exhaustive best-cover search.
//   - resource.go: Resource/Payload/Estimator interfaces.
//   - errors.go: error types and helpers (IsNotFound, IsDependencyUnavailable).
//   - events.go: EventPublisher and the in-memory test publisher.
//   - metrics.go: Prometheus collectors for evictions and strategy cost.
//   - table.go: fixed-width listing of registry contents.
//   - status.go: StatusResponse projection.
//
// Invocations are synchronous: Invoke blocks until all eviction moves and
// the final placement move complete before the underlying computation runs.
// Concurrent invocation of resources sharing a device is unsupported.
//
// External packages should treat this package as the placement layer and use
// public methods only (New/NewWithConfig, Add, Remove, EnableAutoOffload,
// DisableAutoOffload, Invoke, Describe, Status). Internal types are subject
// to change.
package offload
