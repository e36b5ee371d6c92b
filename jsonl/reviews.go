package jsonl

import (
	"context"
	"fmt"
	"sync"

	"github.com/fwojciec/bouncer"
)

// Compile-time interface verification.
var _ bouncer.ReviewStore = (*ReviewStore)(nil)

// ReviewStore persists reviews in a single JSONL file, one review per line.
type ReviewStore struct {
	path string
	mu   sync.Mutex
}

// NewReviewStore creates a ReviewStore backed by the file at path.
func NewReviewStore(path string) *ReviewStore {
	return &ReviewStore{path: path}
}

// Save appends review to the file.
func (s *ReviewStore) Save(ctx context.Context, review bouncer.Review) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return appendOne(s.path, review)
}

// List returns every stored review in insertion order.
func (s *ReviewStore) List(ctx context.Context) ([]bouncer.Review, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return readAll[bouncer.Review](s.path)
}

// Vote adds delta to the vote sum of the review with the given id and
// returns the new sum.
func (s *ReviewStore) Vote(ctx context.Context, id string, delta int) (int, error) {
	if err := bouncer.ValidateVote(delta); err != nil {
		return 0, err
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	reviews, err := readAll[bouncer.Review](s.path)
	if err != nil {
		return 0, err
	}

	for i := range reviews {
		if reviews[i].ID != id {
			continue
		}
		reviews[i].VoteSum += delta
		if err := writeAll(s.path, reviews); err != nil {
			return 0, err
		}
		return reviews[i].VoteSum, nil
	}

	return 0, fmt.Errorf("%w: %s", bouncer.ErrReviewNotFound, id)
}

// Replace overwrites the file with reviews.
func (s *ReviewStore) Replace(ctx context.Context, reviews []bouncer.Review) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return writeAll(s.path, reviews)
}
