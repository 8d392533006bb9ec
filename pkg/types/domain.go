package types

// ResourceInfo describes one registered resource for status and listings.
type ResourceInfo struct {
	// Stable identifier unique within the registry.
	// example: text_encoder
	ID string `json:"id" example:"text_encoder"`
	// Kind of the resource (implementation class equivalent).
	// example: checkpoint
	Kind string `json:"kind" example:"checkpoint"`
	// Device the resource currently resides on.
	// example: cuda:0
	Device string `json:"device" example:"cuda:0"`
	// Element type of the resource's data.
	// example: float16
	ElemType string `json:"elem_type" example:"float16"`
	// Resident footprint in bytes.
	// example: 5368709120
	SizeBytes uint64 `json:"size_bytes" example:"5368709120"`
}
