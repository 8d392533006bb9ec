package types

// AddResourceRequest is the payload for POST /resources.
type AddResourceRequest struct {
	// Identifier to register the resource under.
	// example: unet
	ID string `json:"id" example:"unet"`
	// Absolute path to the weight file backing the resource.
	// example: /home/user/models/unet.safetensors
	Path string `json:"path" example:"/home/user/models/unet.safetensors"`
	// Optional element type label.
	// example: float16
	ElemType string `json:"elem_type,omitempty" example:"float16"`
}

// EnableRequest is the payload for POST /offload/enable.
type EnableRequest struct {
	// Execution device, with optional index (defaults to 0).
	// example: cuda:0
	Device string `json:"device" example:"cuda:0"`
	// Fractional safety margin added to footprints; negative selects the default (0.1).
	// example: 0.1
	Margin float64 `json:"margin" example:"0.1"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: invalid JSON body
	Error string `json:"error" example:"invalid JSON body"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}

// ResourcesResponse wraps the list of resources returned by GET /resources.
type ResourcesResponse struct {
	// Registered resources in insertion order.
	Resources []ResourceInfo `json:"resources"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	// Registered resources in insertion order.
	Resources []ResourceInfo `json:"resources"`
	// Whether auto-offload is currently active.
	// example: true
	AutoOffload bool `json:"auto_offload" example:"true"`
	// Execution device auto-offload targets (empty when disabled).
	// example: cuda:0
	Device string `json:"device,omitempty" example:"cuda:0"`
	// Safety margin in effect.
	// example: 0.1
	Margin float64 `json:"margin" example:"0.1"`
	// Total evictions performed since start.
	// example: 5
	EvictionsTotal uint64 `json:"evictions_total" example:"5"`
	// Uptime of the server in seconds.
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds" example:"3600"`
	// Server time in unix seconds.
	// example: 1700000000
	ServerTimeUnix int64 `json:"server_time_unix" example:"1700000000"`
}
