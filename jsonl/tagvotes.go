package jsonl

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/fwojciec/bouncer"
)

// Compile-time interface verification.
var _ bouncer.TagVoteStore = (*TagVoteStore)(nil)

// TagVoteStore persists per-user tag votes in a JSONL file. Each user holds at
// most one vote per venue and tag; voting again replaces the earlier vote.
type TagVoteStore struct {
	path string
	mu   sync.Mutex
}

// NewTagVoteStore creates a TagVoteStore backed by the file at path.
func NewTagVoteStore(path string) *TagVoteStore {
	return &TagVoteStore{path: path}
}

// VoteTag records userID's vote on tag at venue and returns the tag's new net
// score for that venue.
func (s *TagVoteStore) VoteTag(ctx context.Context, venue string, tag bouncer.Tag, userID string, delta int) (int, error) {
	if err := bouncer.ValidateVote(delta); err != nil {
		return 0, err
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	votes, err := readAll[bouncer.TagVote](s.path)
	if err != nil {
		return 0, err
	}

	key := bouncer.NormalizeVenue(venue)
	votes = slices.DeleteFunc(votes, func(v bouncer.TagVote) bool {
		return v.Tag == tag && v.UserID == userID && bouncer.NormalizeVenue(v.Venue) == key
	})
	votes = append(votes, bouncer.TagVote{Venue: venue, Tag: tag, UserID: userID, Score: delta})

	if err := writeAll(s.path, votes); err != nil {
		return 0, err
	}

	net := 0
	for _, v := range votes {
		if v.Tag == tag && bouncer.NormalizeVenue(v.Venue) == key {
			net += v.Score
		}
	}
	return net, nil
}

// TagStats aggregates the votes for venue per tag, ordered by net score
// descending and then by tag.
func (s *TagVoteStore) TagStats(ctx context.Context, venue string) ([]bouncer.TagStat, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	votes, err := readAll[bouncer.TagVote](s.path)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	key := bouncer.NormalizeVenue(venue)
	byTag := make(map[bouncer.Tag]*bouncer.TagStat)
	for _, v := range votes {
		if bouncer.NormalizeVenue(v.Venue) != key {
			continue
		}
		st, ok := byTag[v.Tag]
		if !ok {
			st = &bouncer.TagStat{Tag: v.Tag}
			byTag[v.Tag] = st
		}
		st.NetScore += v.Score
		st.TotalVotes++
	}

	stats := make([]bouncer.TagStat, 0, len(byTag))
	for _, st := range byTag {
		stats = append(stats, *st)
	}
	slices.SortFunc(stats, func(a, b bouncer.TagStat) int {
		if c := cmp.Compare(b.NetScore, a.NetScore); c != 0 {
			return c
		}
		return cmp.Compare(a.Tag, b.Tag)
	})
	return stats, nil
}
