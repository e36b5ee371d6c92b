package mock

import (
	"context"

	"github.com/fwojciec/bouncer"
)

// Compile-time interface verification.
var (
	_ bouncer.ReviewStore  = (*ReviewStore)(nil)
	_ bouncer.TagVoteStore = (*TagVoteStore)(nil)
)

// ReviewStore is a mock implementation of bouncer.ReviewStore.
type ReviewStore struct {
	SaveFn    func(ctx context.Context, review bouncer.Review) error
	ListFn    func(ctx context.Context) ([]bouncer.Review, error)
	VoteFn    func(ctx context.Context, id string, delta int) (int, error)
	ReplaceFn func(ctx context.Context, reviews []bouncer.Review) error
}

func (s *ReviewStore) Save(ctx context.Context, review bouncer.Review) error {
	return s.SaveFn(ctx, review)
}

func (s *ReviewStore) List(ctx context.Context) ([]bouncer.Review, error) {
	return s.ListFn(ctx)
}

func (s *ReviewStore) Vote(ctx context.Context, id string, delta int) (int, error) {
	return s.VoteFn(ctx, id, delta)
}

func (s *ReviewStore) Replace(ctx context.Context, reviews []bouncer.Review) error {
	return s.ReplaceFn(ctx, reviews)
}

// TagVoteStore is a mock implementation of bouncer.TagVoteStore.
type TagVoteStore struct {
	VoteTagFn  func(ctx context.Context, venue string, tag bouncer.Tag, userID string, delta int) (int, error)
	TagStatsFn func(ctx context.Context, venue string) ([]bouncer.TagStat, error)
}

func (s *TagVoteStore) VoteTag(ctx context.Context, venue string, tag bouncer.Tag, userID string, delta int) (int, error) {
	return s.VoteTagFn(ctx, venue, tag, userID, delta)
}

func (s *TagVoteStore) TagStats(ctx context.Context, venue string) ([]bouncer.TagStat, error) {
	return s.TagStatsFn(ctx, venue)
}
