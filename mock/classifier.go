package mock

import (
	"context"

	"github.com/fwojciec/bouncer"
)

// Compile-time interface verification.
var _ bouncer.Classifier = (*Classifier)(nil)

// Classifier is a mock implementation of bouncer.Classifier.
type Classifier struct {
	ClassifyFn func(ctx context.Context, input bouncer.ReviewInput) (*bouncer.Classification, error)
}

func (c *Classifier) Classify(ctx context.Context, input bouncer.ReviewInput) (*bouncer.Classification, error) {
	return c.ClassifyFn(ctx, input)
}
