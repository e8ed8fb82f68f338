package ai

import "context"

// Image is the photo sent to the model alongside the analysis prompt.
type Image struct {
	Data        []byte
	ContentType string
}

// Client returns the model's free-form answer for one image. It does not
// interpret the text.
type Client interface {
	Analyze(ctx context.Context, img Image) (string, error)
}
