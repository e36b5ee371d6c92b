package bouncer

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Session holds one in-progress review while the reviewer fills it in.
//
// A Session has a single owner and is not safe for concurrent use.
// Finalize does not clear the draft; call Reset once the review is stored.
type Session struct {
	venue  string
	rating Rating
	tags   TagSet
	story  string
}

// NewSession begins an empty draft.
func NewSession() *Session {
	return &Session{tags: NewTagSet()}
}

// SetVenue sets the venue name.
func (s *Session) SetVenue(venue string) {
	s.venue = venue
}

// SetRating sets the rating.
func (s *Session) SetRating(r Rating) {
	s.rating = r
}

// ToggleTag adds t if absent, otherwise removes it. It reports whether t is
// selected afterwards.
func (s *Session) ToggleTag(t Tag) bool {
	if s.tags.Has(t) {
		delete(s.tags, t)
		return false
	}
	if s.tags == nil {
		s.tags = NewTagSet()
	}
	s.tags[t] = struct{}{}
	return true
}

// SetStory sets the free-text story.
func (s *Session) SetStory(story string) {
	s.story = story
}

// Venue returns the draft venue.
func (s *Session) Venue() string {
	return s.venue
}

// Input returns a snapshot of the draft as classifier input. The returned
// tag set is a copy.
func (s *Session) Input() ReviewInput {
	return ReviewInput{
		Rating: s.rating,
		Tags:   NewTagSet(s.tags.Sorted()...),
		Story:  s.story,
	}
}

// Preview classifies the draft without finalizing it.
func (s *Session) Preview(ctx context.Context, c Classifier) (*Classification, error) {
	return c.Classify(ctx, s.Input())
}

// Finalize validates the draft, classifies it and returns the review ready
// to be stored.
func (s *Session) Finalize(ctx context.Context, c Classifier, now time.Time) (*Review, error) {
	venue := strings.TrimSpace(s.venue)
	if venue == "" {
		return nil, ErrMissingVenue
	}
	if !s.rating.IsValid() {
		return nil, ErrMissingRating
	}

	input := s.Input()
	result, err := c.Classify(ctx, input)
	if err != nil {
		return nil, err
	}

	return &Review{
		ID:           uuid.NewString(),
		Venue:        venue,
		Rating:       s.rating,
		Tags:         input.Tags.Sorted(),
		Story:        s.story,
		BehaviorType: result.BehaviorType,
		SafetyScore:  result.SafetyScore,
		Tone:         result.Tone,
		Timestamp:    now.UTC(),
	}, nil
}

// Reset clears the draft for the next review.
func (s *Session) Reset() {
	s.venue = ""
	s.rating = RatingNone
	s.tags = NewTagSet()
	s.story = ""
}
