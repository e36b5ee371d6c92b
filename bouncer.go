// Package bouncer provides domain types for reviewing venue door security.
package bouncer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Domain errors.
var (
	ErrMissingVenue   = errors.New("review is missing a venue")
	ErrMissingRating  = errors.New("review is missing a rating")
	ErrInvalidRating  = errors.New("invalid rating")
	ErrUnknownTag     = errors.New("unknown tag")
	ErrInvalidVote    = errors.New("vote delta must be +1 or -1")
	ErrReviewNotFound = errors.New("review not found")
)

// Rating is the reviewer's coarse assessment of venue security.
// The zero value means no rating was given.
type Rating string

// Ratings.
const (
	RatingNone Rating = ""
	RatingGood Rating = "Good"
	RatingOkay Rating = "Okay"
	RatingBad  Rating = "Bad"
)

// IsValid reports whether r is one of the enumerated ratings.
// The absent rating is not valid.
func (r Rating) IsValid() bool {
	switch r {
	case RatingGood, RatingOkay, RatingBad:
		return true
	}
	return false
}

// ParseRating normalizes user input into a Rating. Matching is
// case-insensitive; empty input yields RatingNone.
func ParseRating(s string) (Rating, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return RatingNone, nil
	case "good":
		return RatingGood, nil
	case "okay", "ok":
		return RatingOkay, nil
	case "bad":
		return RatingBad, nil
	}
	return RatingNone, fmt.Errorf("%w: %q", ErrInvalidRating, s)
}

// BehaviorType is the classifier's verdict on the security staff's conduct.
type BehaviorType string

// Behavior types.
const (
	BehaviorDiscriminatory BehaviorType = "Discriminatory"
	BehaviorAggressive     BehaviorType = "Aggressive"
	BehaviorStrict         BehaviorType = "Strict"
	BehaviorRespectful     BehaviorType = "Respectful"
	BehaviorFair           BehaviorType = "Fair"
)

// BehaviorTypes lists every behavior type in classification priority order.
func BehaviorTypes() []BehaviorType {
	return []BehaviorType{
		BehaviorDiscriminatory,
		BehaviorAggressive,
		BehaviorStrict,
		BehaviorRespectful,
		BehaviorFair,
	}
}

// IsValid reports whether b belongs to the closed set of behavior types.
func (b BehaviorType) IsValid() bool {
	switch b {
	case BehaviorDiscriminatory, BehaviorAggressive, BehaviorStrict, BehaviorRespectful, BehaviorFair:
		return true
	}
	return false
}

// Tone is a coarse sentiment label.
type Tone string

// Tones.
const (
	TonePositive Tone = "Positive"
	ToneNegative Tone = "Negative"
	ToneMixed    Tone = "Mixed"
)

// Tones lists every tone.
func Tones() []Tone {
	return []Tone{TonePositive, ToneNegative, ToneMixed}
}

// IsValid reports whether t belongs to the closed set of tones.
func (t Tone) IsValid() bool {
	switch t {
	case TonePositive, ToneNegative, ToneMixed:
		return true
	}
	return false
}

// Safety score bounds.
const (
	MinSafetyScore = 1
	MaxSafetyScore = 5
)

// ReviewInput is what a reviewer supplies before classification.
type ReviewInput struct {
	Rating Rating
	Tags   TagSet
	Story  string
}

// Classification is the derived verdict for a review.
type Classification struct {
	BehaviorType BehaviorType `json:"behavior_type"`
	SafetyScore  int          `json:"safety_score"` // 1-5
	Tone         Tone         `json:"tone"`
}

// Review is a submitted review together with its classification.
type Review struct {
	ID           string       `json:"id"`
	Venue        string       `json:"venue"`
	Rating       Rating       `json:"rating"`
	Tags         []Tag        `json:"tags"`
	Story        string       `json:"story"`
	BehaviorType BehaviorType `json:"behavior_type"`
	SafetyScore  int          `json:"safety_score"`
	Tone         Tone         `json:"tone"`
	VoteSum      int          `json:"vote_sum"`
	Timestamp    time.Time    `json:"timestamp"`
}

// Input reconstructs the classifier input the review was built from.
func (r Review) Input() ReviewInput {
	return ReviewInput{
		Rating: r.Rating,
		Tags:   NewTagSet(r.Tags...),
		Story:  r.Story,
	}
}

// Classification returns the stored classification fields.
func (r Review) Classification() Classification {
	return Classification{
		BehaviorType: r.BehaviorType,
		SafetyScore:  r.SafetyScore,
		Tone:         r.Tone,
	}
}

// WithClassification returns a copy of r carrying c.
func (r Review) WithClassification(c Classification) Review {
	r.BehaviorType = c.BehaviorType
	r.SafetyScore = c.SafetyScore
	r.Tone = c.Tone
	return r
}

// TagVote is one user's vote on a tag describing a venue.
type TagVote struct {
	Venue  string `json:"venue"`
	Tag    Tag    `json:"tag"`
	UserID string `json:"user_id"`
	Score  int    `json:"score"`
}

// TagStat aggregates votes for a tag at a venue.
type TagStat struct {
	Tag        Tag `json:"tag"`
	NetScore   int `json:"net_score"`
	TotalVotes int `json:"total_votes"`
}

// Classifier derives a Classification from review input.
type Classifier interface {
	Classify(ctx context.Context, input ReviewInput) (*Classification, error)
}

// ReviewStore persists and retrieves reviews.
type ReviewStore interface {
	Save(ctx context.Context, review Review) error
	List(ctx context.Context) ([]Review, error)
	// Vote adds delta (+1 or -1) to a review's vote sum and returns the new sum.
	Vote(ctx context.Context, id string, delta int) (int, error)
	// Replace overwrites the stored reviews with reviews, keeping their order.
	Replace(ctx context.Context, reviews []Review) error
}

// TagVoteStore records per-user tag votes for venues.
type TagVoteStore interface {
	// VoteTag sets the user's vote on tag at venue and returns the tag's net score.
	VoteTag(ctx context.Context, venue string, tag Tag, userID string, delta int) (int, error)
	TagStats(ctx context.Context, venue string) ([]TagStat, error)
}

// Clipboard copies text to the system clipboard.
type Clipboard interface {
	Copy(content string) error
}

// ValidateVote checks a vote delta.
func ValidateVote(delta int) error {
	if delta != 1 && delta != -1 {
		return ErrInvalidVote
	}
	return nil
}
