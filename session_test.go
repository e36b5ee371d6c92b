package bouncer_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/bouncer"
	"github.com/fwojciec/bouncer/heuristic"
	"github.com/fwojciec/bouncer/mock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_ToggleTag(t *testing.T) {
	t.Parallel()

	s := bouncer.NewSession()

	assert.True(t, s.ToggleTag(bouncer.TagCalm))
	assert.True(t, s.ToggleTag(bouncer.TagDrunk))
	assert.False(t, s.ToggleTag(bouncer.TagCalm))

	assert.Equal(t, []bouncer.Tag{bouncer.TagDrunk}, s.Input().Tags.Sorted())
}

func TestSession_ZeroValue(t *testing.T) {
	t.Parallel()

	var s bouncer.Session

	assert.True(t, s.ToggleTag(bouncer.TagCalm))
	assert.False(t, s.ToggleTag(bouncer.TagCalm))
	assert.True(t, s.ToggleTag(bouncer.TagDrunk))
	assert.Equal(t, []bouncer.Tag{bouncer.TagDrunk}, s.Input().Tags.Sorted())
}

func TestSession_Input_IsSnapshot(t *testing.T) {
	t.Parallel()

	s := bouncer.NewSession()
	s.ToggleTag(bouncer.TagCalm)
	input := s.Input()

	s.ToggleTag(bouncer.TagYelled)

	assert.Equal(t, 1, input.Tags.Len())
}

func TestSession_Preview(t *testing.T) {
	t.Parallel()

	s := bouncer.NewSession()
	s.SetRating(bouncer.RatingGood)
	s.SetStory("the bouncer yelled at me")

	first, err := s.Preview(context.Background(), heuristic.NewClassifier())
	require.NoError(t, err)
	second, err := s.Preview(context.Background(), heuristic.NewClassifier())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, bouncer.BehaviorAggressive, first.BehaviorType)
	assert.Equal(t, 4, first.SafetyScore)
}

func TestSession_Finalize(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 7, 4, 1, 30, 0, 0, time.FixedZone("EST", -5*3600))

	t.Run("builds a classified review", func(t *testing.T) {
		t.Parallel()

		s := bouncer.NewSession()
		s.SetVenue("  Club X ")
		s.SetRating(bouncer.RatingBad)
		s.ToggleTag(bouncer.TagRespectful)

		review, err := s.Finalize(context.Background(), heuristic.NewClassifier(), now)

		require.NoError(t, err)
		_, err = uuid.Parse(review.ID)
		require.NoError(t, err)
		assert.Equal(t, "Club X", review.Venue)
		assert.Equal(t, bouncer.RatingBad, review.Rating)
		assert.Equal(t, []bouncer.Tag{bouncer.TagRespectful}, review.Tags)
		assert.Equal(t, bouncer.BehaviorRespectful, review.BehaviorType)
		assert.Equal(t, 2, review.SafetyScore)
		assert.Equal(t, bouncer.ToneNegative, review.Tone)
		assert.Equal(t, now.UTC(), review.Timestamp)
		assert.Equal(t, "  Club X ", s.Venue(), "draft is kept until Reset")
	})

	t.Run("requires a venue", func(t *testing.T) {
		t.Parallel()

		s := bouncer.NewSession()
		s.SetVenue("   ")
		s.SetRating(bouncer.RatingGood)

		_, err := s.Finalize(context.Background(), heuristic.NewClassifier(), now)

		assert.ErrorIs(t, err, bouncer.ErrMissingVenue)
	})

	t.Run("requires a rating", func(t *testing.T) {
		t.Parallel()

		called := false
		classifier := &mock.Classifier{
			ClassifyFn: func(ctx context.Context, input bouncer.ReviewInput) (*bouncer.Classification, error) {
				called = true
				return &bouncer.Classification{}, nil
			},
		}
		s := bouncer.NewSession()
		s.SetVenue("Club X")

		_, err := s.Finalize(context.Background(), classifier, now)

		assert.ErrorIs(t, err, bouncer.ErrMissingRating)
		assert.False(t, called, "classifier should not run for an incomplete draft")
	})

	t.Run("propagates classifier errors", func(t *testing.T) {
		t.Parallel()

		classifyErr := errors.New("model unavailable")
		classifier := &mock.Classifier{
			ClassifyFn: func(ctx context.Context, input bouncer.ReviewInput) (*bouncer.Classification, error) {
				return nil, classifyErr
			},
		}
		s := bouncer.NewSession()
		s.SetVenue("Club X")
		s.SetRating(bouncer.RatingOkay)

		_, err := s.Finalize(context.Background(), classifier, now)

		assert.Equal(t, classifyErr, err)
	})
}

func TestSession_Reset(t *testing.T) {
	t.Parallel()

	s := bouncer.NewSession()
	s.SetVenue("Club X")
	s.SetRating(bouncer.RatingGood)
	s.ToggleTag(bouncer.TagCalm)
	s.SetStory("fine")

	s.Reset()

	assert.Empty(t, s.Venue())
	input := s.Input()
	assert.Equal(t, bouncer.RatingNone, input.Rating)
	assert.Zero(t, input.Tags.Len())
	assert.Empty(t, input.Story)
}
