package bouncer_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/fwojciec/bouncer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRating(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want bouncer.Rating
	}{
		{"Good", bouncer.RatingGood},
		{" good ", bouncer.RatingGood},
		{"OKAY", bouncer.RatingOkay},
		{"ok", bouncer.RatingOkay},
		{"bad", bouncer.RatingBad},
		{"", bouncer.RatingNone},
		{"   ", bouncer.RatingNone},
	}
	for _, tt := range tests {
		got, err := bouncer.ParseRating(tt.in)
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}

	t.Run("rejects values outside the enumeration", func(t *testing.T) {
		t.Parallel()

		_, err := bouncer.ParseRating("excellent")

		require.ErrorIs(t, err, bouncer.ErrInvalidRating)
		assert.Contains(t, err.Error(), "excellent")
	})
}

func TestRating_IsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, bouncer.RatingGood.IsValid())
	assert.True(t, bouncer.RatingBad.IsValid())
	assert.False(t, bouncer.RatingNone.IsValid())
	assert.False(t, bouncer.Rating("good").IsValid())
}

func TestTagSet(t *testing.T) {
	t.Parallel()

	t.Run("drops duplicates", func(t *testing.T) {
		t.Parallel()

		s := bouncer.NewTagSet(bouncer.TagCalm, bouncer.TagCalm, bouncer.TagDrunk)

		assert.Equal(t, 2, s.Len())
		assert.True(t, s.Has(bouncer.TagCalm))
		assert.False(t, s.Has(bouncer.TagRespectful))
	})

	t.Run("sorted is order independent", func(t *testing.T) {
		t.Parallel()

		a := bouncer.NewTagSet(bouncer.TagYelled, bouncer.TagAggressive, bouncer.TagCalm)
		b := bouncer.NewTagSet(bouncer.TagCalm, bouncer.TagYelled, bouncer.TagAggressive)

		assert.Equal(t, a.Sorted(), b.Sorted())
		assert.Equal(t, []bouncer.Tag{bouncer.TagAggressive, bouncer.TagCalm, bouncer.TagYelled}, a.Sorted())
	})

	t.Run("nil set is empty", func(t *testing.T) {
		t.Parallel()

		var s bouncer.TagSet

		assert.False(t, s.Has(bouncer.TagCalm))
		assert.False(t, s.HasAny(bouncer.TagCalm, bouncer.TagDrunk))
		assert.False(t, s.Intersects(bouncer.NewTagSet(bouncer.TagCalm)))
		assert.Empty(t, s.Sorted())
	})

	t.Run("intersects", func(t *testing.T) {
		t.Parallel()

		s := bouncer.NewTagSet(bouncer.TagCalm, bouncer.TagDrunk)

		assert.True(t, s.Intersects(bouncer.NewTagSet(bouncer.TagDrunk, bouncer.TagYelled, bouncer.TagSexist)))
		assert.False(t, s.Intersects(bouncer.NewTagSet(bouncer.TagYelled)))
	})
}

func TestCatalog(t *testing.T) {
	t.Parallel()

	t.Run("lists ten tags in display order", func(t *testing.T) {
		t.Parallel()

		catalog := bouncer.Catalog()

		require.Len(t, catalog, 10)
		assert.Equal(t, bouncer.TagRespectful, catalog[0].Label)
		assert.Equal(t, bouncer.TagPreventedEntry, catalog[9].Label)
	})

	t.Run("returns a copy", func(t *testing.T) {
		t.Parallel()

		catalog := bouncer.Catalog()
		catalog[0].Label = "changed"

		assert.Equal(t, bouncer.TagRespectful, bouncer.Catalog()[0].Label)
	})

	t.Run("lookup ignores case", func(t *testing.T) {
		t.Parallel()

		opt, ok := bouncer.LookupTag("  racial PROFILING ")

		require.True(t, ok)
		assert.Equal(t, bouncer.TagRacialProfiling, opt.Label)

		_, ok = bouncer.LookupTag("Polite")
		assert.False(t, ok)
	})

	t.Run("parse tag", func(t *testing.T) {
		t.Parallel()

		tag, err := bouncer.ParseTag("protected me")
		require.NoError(t, err)
		assert.Equal(t, bouncer.TagProtectedMe, tag)

		_, err = bouncer.ParseTag("Polite")
		require.ErrorIs(t, err, bouncer.ErrUnknownTag)
		assert.Contains(t, err.Error(), `"Polite"`)
	})
}

func TestReview_JSON(t *testing.T) {
	t.Parallel()

	review := bouncer.Review{
		ID:           "r1",
		Venue:        "Club X",
		Rating:       bouncer.RatingOkay,
		Tags:         []bouncer.Tag{bouncer.TagCalm},
		BehaviorType: bouncer.BehaviorRespectful,
		SafetyScore:  3,
		Tone:         bouncer.ToneMixed,
		Timestamp:    time.Date(2025, 6, 1, 23, 0, 0, 0, time.UTC),
	}

	data, err := json.Marshal(review)
	require.NoError(t, err)

	assert.Contains(t, string(data), `"behavior_type":"Respectful"`)
	assert.Contains(t, string(data), `"safety_score":3`)
	assert.Contains(t, string(data), `"vote_sum":0`)
}

func TestReview_Classification(t *testing.T) {
	t.Parallel()

	review := bouncer.Review{Rating: bouncer.RatingGood, Tags: []bouncer.Tag{bouncer.TagCalm, bouncer.TagCalm}, Story: "fine"}
	c := bouncer.Classification{BehaviorType: bouncer.BehaviorStrict, SafetyScore: 2, Tone: bouncer.ToneNegative}

	updated := review.WithClassification(c)

	assert.Equal(t, c, updated.Classification())
	assert.Empty(t, review.Tone, "original is unchanged")
	assert.Equal(t, 1, updated.Input().Tags.Len())
	assert.Equal(t, "fine", updated.Input().Story)
}

func TestValidateVote(t *testing.T) {
	t.Parallel()

	assert.NoError(t, bouncer.ValidateVote(1))
	assert.NoError(t, bouncer.ValidateVote(-1))
	assert.ErrorIs(t, bouncer.ValidateVote(0), bouncer.ErrInvalidVote)
	assert.ErrorIs(t, bouncer.ValidateVote(2), bouncer.ErrInvalidVote)
}
