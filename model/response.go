package model

// ModelResponse is the normalized result of one provider query. It is
// produced once per successful request and never mutated afterwards.
type ModelResponse struct {
	Content      []ContentItem
	ID           string
	Model        string
	Role         Role
	StopReason   string
	StopSequence string
}
