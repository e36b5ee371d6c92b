package heuristic

import (
	"context"

	"github.com/fwojciec/bouncer"
	"go.uber.org/zap"
)

// Compile-time interface verification.
var _ bouncer.Classifier = (*Fallback)(nil)

// Fallback answers with the heuristic rules whenever the primary classifier
// fails. A cancelled caller context is returned as is.
//
// Place it outside any cache so heuristic answers are never cached.
type Fallback struct {
	primary bouncer.Classifier
	local   *Classifier
	logger  *zap.Logger
}

// NewFallback creates a Fallback around primary. A nil logger disables
// logging.
func NewFallback(primary bouncer.Classifier, logger *zap.Logger) *Fallback {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fallback{
		primary: primary,
		local:   NewClassifier(),
		logger:  logger,
	}
}

// Classify implements bouncer.Classifier.
func (f *Fallback) Classify(ctx context.Context, input bouncer.ReviewInput) (*bouncer.Classification, error) {
	result, err := f.primary.Classify(ctx, input)
	if err == nil || ctx.Err() != nil {
		return result, err
	}

	f.logger.Warn("classifier failed, using heuristic rules", zap.Error(err))
	return f.local.Classify(ctx, input)
}
