package bouncer_test

import (
	"testing"

	"github.com/fwojciec/bouncer"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func review(venue string, rating bouncer.Rating, tone bouncer.Tone, tags ...bouncer.Tag) bouncer.Review {
	return bouncer.Review{Venue: venue, Rating: rating, Tone: tone, Tags: tags}
}

func TestNormalizeVenue(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "club x", bouncer.NormalizeVenue("  Club   X "))
	assert.Equal(t, "joe's bar", bouncer.NormalizeVenue("Joe’s\tBar"))
	assert.Equal(t, bouncer.NormalizeVenue("JOE'S BAR"), bouncer.NormalizeVenue("joe’s  bar"))
}

func TestTopVenuesByRating(t *testing.T) {
	t.Parallel()

	reviews := []bouncer.Review{
		review("Club X", bouncer.RatingGood, ""),
		review("The Vault", bouncer.RatingGood, ""),
		review("club  x", bouncer.RatingGood, ""),
		review("Neon", bouncer.RatingBad, ""),
		review("The Vault", bouncer.RatingOkay, ""),
		review("", bouncer.RatingGood, ""),
		review("   ", bouncer.RatingGood, ""),
		review("Neon", bouncer.RatingGood, ""),
	}

	t.Run("merges spellings and sorts by count", func(t *testing.T) {
		t.Parallel()

		got := bouncer.TopVenuesByRating(reviews, bouncer.RatingGood, 10)

		want := []bouncer.VenueRank{
			{Venue: "Club X", Count: 2},
			{Venue: "The Vault", Count: 1},
			{Venue: "Neon", Count: 1},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("TopVenuesByRating() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("truncates to limit", func(t *testing.T) {
		t.Parallel()

		got := bouncer.TopVenuesByRating(reviews, bouncer.RatingGood, 1)

		assert.Equal(t, []bouncer.VenueRank{{Venue: "Club X", Count: 2}}, got)
	})

	t.Run("non-positive limit uses default", func(t *testing.T) {
		t.Parallel()

		got := bouncer.TopVenuesByRating(reviews, bouncer.RatingBad, 0)

		assert.Equal(t, []bouncer.VenueRank{{Venue: "Neon", Count: 1}}, got)
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, bouncer.TopVenuesByRating(nil, bouncer.RatingGood, 5))
	})
}

func TestSummarizeVenues(t *testing.T) {
	t.Parallel()

	reviews := []bouncer.Review{
		review("Neon", bouncer.RatingBad, ""),
		review("Club X", bouncer.RatingGood, ""),
		review("Neon", bouncer.RatingGood, ""),
		review("Neon", bouncer.RatingBad, ""),
		review("Club X", bouncer.RatingOkay, ""),
		review("", bouncer.RatingBad, ""),
	}

	counts := bouncer.SummarizeVenues(reviews)

	want := []bouncer.VenueCounts{
		{Name: "Neon", Total: 3, Good: 1, Bad: 2},
		{Name: "Club X", Total: 2, Good: 1, Okay: 1},
	}
	if diff := cmp.Diff(want, counts); diff != "" {
		t.Errorf("SummarizeVenues() mismatch (-want +got):\n%s", diff)
	}

	t.Run("sorts by good", func(t *testing.T) {
		t.Parallel()

		sorted := bouncer.SortVenues(counts, bouncer.RatingGood)

		assert.Equal(t, "Neon", sorted[0].Name, "ties keep input order")
		assert.Equal(t, "Neon", counts[0].Name, "input is not modified")
	})

	t.Run("sorts by bad", func(t *testing.T) {
		t.Parallel()

		sorted := bouncer.SortVenues(counts, bouncer.RatingBad)

		assert.Equal(t, []string{"Neon", "Club X"}, []string{sorted[0].Name, sorted[1].Name})
	})

	t.Run("filters by name", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, []bouncer.VenueCounts{want[1]}, bouncer.FilterVenues(counts, " club "))
		assert.Len(t, bouncer.FilterVenues(counts, ""), 2)
		assert.Empty(t, bouncer.FilterVenues(counts, "vault"))
	})
}

func TestFilterReviews(t *testing.T) {
	t.Parallel()

	reviews := []bouncer.Review{
		review("A", bouncer.RatingGood, "", bouncer.TagCalm),
		review("B", bouncer.RatingBad, "", bouncer.TagCalm, bouncer.TagYelled),
		review("C", bouncer.RatingBad, ""),
	}

	assert.Len(t, bouncer.FilterReviews(reviews, bouncer.ReviewFilter{}), 3)
	assert.Len(t, bouncer.FilterReviews(reviews, bouncer.ReviewFilter{Rating: bouncer.RatingBad}), 2)
	assert.Len(t, bouncer.FilterReviews(reviews, bouncer.ReviewFilter{Tag: bouncer.TagCalm}), 2)

	got := bouncer.FilterReviews(reviews, bouncer.ReviewFilter{Rating: bouncer.RatingBad, Tag: bouncer.TagCalm})
	assert.Equal(t, []bouncer.Review{reviews[1]}, got)
}

func TestComputeInsights(t *testing.T) {
	t.Parallel()

	t.Run("picks the most common values", func(t *testing.T) {
		t.Parallel()

		reviews := []bouncer.Review{
			review("Neon", bouncer.RatingBad, bouncer.ToneNegative, bouncer.TagYelled, bouncer.TagAggressive),
			review("Club X", bouncer.RatingGood, bouncer.TonePositive, bouncer.TagCalm),
			review("Neon", bouncer.RatingBad, bouncer.ToneNegative, bouncer.TagYelled),
			review("", bouncer.RatingOkay, ""),
		}

		got := bouncer.ComputeInsights(reviews)

		want := bouncer.Insights{
			MostReviewedVenue: "Neon",
			MostFlaggedTag:    string(bouncer.TagYelled),
			DominantTone:      string(bouncer.ToneNegative),
			TotalReviews:      4,
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("ComputeInsights() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("ties go to the first value seen", func(t *testing.T) {
		t.Parallel()

		reviews := []bouncer.Review{
			review("B", bouncer.RatingGood, bouncer.ToneMixed),
			review("A", bouncer.RatingGood, bouncer.TonePositive),
		}

		got := bouncer.ComputeInsights(reviews)

		assert.Equal(t, "B", got.MostReviewedVenue)
		assert.Equal(t, string(bouncer.ToneMixed), got.DominantTone)
	})

	t.Run("reports N/A when empty", func(t *testing.T) {
		t.Parallel()

		got := bouncer.ComputeInsights(nil)

		assert.Equal(t, bouncer.Insights{
			MostReviewedVenue: bouncer.NotAvailable,
			MostFlaggedTag:    bouncer.NotAvailable,
			DominantTone:      bouncer.NotAvailable,
		}, got)
	})
}
