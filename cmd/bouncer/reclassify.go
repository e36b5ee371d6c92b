package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fwojciec/bouncer"
	"github.com/fwojciec/bouncer/gemini"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultMaxRetries is the default number of classification attempts per review.
const DefaultMaxRetries = 3

// Reclassifier reruns a classifier over every stored review.
type Reclassifier struct {
	Reviews    bouncer.ReviewStore
	Classifier bouncer.Classifier
	Logger     *zap.Logger
	MaxRetries int
	// Workers sets the number of parallel workers. If <= 1, runs sequentially.
	Workers int
	// BackoffFn returns the backoff duration for a given attempt (1-indexed).
	// If nil, uses exponential backoff (1s, 2s, 4s...).
	BackoffFn func(attempt int) time.Duration
}

// ReclassifyResult summarizes a reclassification run.
type ReclassifyResult struct {
	Total   int `json:"total"`
	Changed int `json:"changed"`
	Skipped int `json:"skipped"`
}

// Run classifies each review and writes all reviews back in their original
// order. Reviews that fail after max retries keep their previous
// classification and are logged as skipped.
func (r *Reclassifier) Run(ctx context.Context) (ReclassifyResult, error) {
	reviews, err := r.Reviews.List(ctx)
	if err != nil {
		return ReclassifyResult{}, fmt.Errorf("list reviews: %w", err)
	}

	maxRetries := r.MaxRetries
	if maxRetries <= 0 {
		maxRetries = DefaultMaxRetries
	}
	workers := max(r.Workers, 1)

	results := make([]*bouncer.Classification, len(reviews))
	errs := make([]error, len(reviews))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range reviews {
		input := reviews[i].Input()
		g.Go(func() error {
			results[i], errs[i] = r.classifyWithRetry(gctx, input, maxRetries)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return ReclassifyResult{}, err
	}
	if err := ctx.Err(); err != nil {
		return ReclassifyResult{}, err
	}

	res := ReclassifyResult{Total: len(reviews)}
	updated := make([]bouncer.Review, len(reviews))
	for i, review := range reviews {
		if errs[i] != nil {
			r.Logger.Warn("skipping review",
				zap.String("id", review.ID),
				zap.Int("attempts", maxRetries),
				zap.Error(errs[i]))
			res.Skipped++
			updated[i] = review
			continue
		}
		updated[i] = review.WithClassification(*results[i])
		if updated[i].Classification() != review.Classification() {
			res.Changed++
		}
	}

	if err := r.Reviews.Replace(ctx, updated); err != nil {
		return ReclassifyResult{}, fmt.Errorf("write reviews: %w", err)
	}

	r.Logger.Info("reclassified reviews",
		zap.Int("total", res.Total),
		zap.Int("changed", res.Changed),
		zap.Int("skipped", res.Skipped))

	return res, nil
}

// classifyWithRetry attempts classification with exponential backoff. API
// errors that cannot succeed on a resend end the attempts early.
func (r *Reclassifier) classifyWithRetry(ctx context.Context, input bouncer.ReviewInput, maxRetries int) (*bouncer.Classification, error) {
	backoffFn := r.BackoffFn
	if backoffFn == nil {
		backoffFn = func(attempt int) time.Duration {
			return time.Duration(1<<(attempt-1)) * time.Second
		}
	}

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		result, err := r.Classifier.Classify(ctx, input)
		if err == nil {
			return result, nil
		}
		lastErr = err
		r.Logger.Debug("classification failed", zap.Int("attempt", attempt), zap.Error(err))

		var apiErr *gemini.APIError
		if errors.As(err, &apiErr) && !apiErr.Retryable() {
			return nil, err
		}

		// Don't sleep after last attempt
		if attempt < maxRetries {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoffFn(attempt)):
			}
		}
	}
	return nil, lastErr
}
