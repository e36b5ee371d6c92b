package bouncer

import (
	"slices"
	"strings"
)

// NotAvailable is reported by insights when there is nothing to count.
const NotAvailable = "N/A"

// DefaultRankLimit is used by TopVenuesByRating when no limit is given.
const DefaultRankLimit = 10

// NormalizeVenue folds venue spellings so that "Club  X" and "club x" tally
// together.
func NormalizeVenue(s string) string {
	s = strings.ReplaceAll(strings.TrimSpace(s), "’", "'")
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// VenueRank is a venue's position in a rating leaderboard.
type VenueRank struct {
	Venue string `json:"venue"`
	Count int    `json:"count"`
}

// TopVenuesByRating counts reviews with the given rating per venue and
// returns the busiest venues first. Venue spellings are merged via
// NormalizeVenue; the first spelling seen is the one displayed. Blank and
// whitespace-only venues are not ranked.
func TopVenuesByRating(reviews []Review, rating Rating, limit int) []VenueRank {
	if limit <= 0 {
		limit = DefaultRankLimit
	}

	var ranks []VenueRank
	index := make(map[string]int)
	for _, r := range reviews {
		if r.Rating != rating || strings.TrimSpace(r.Venue) == "" {
			continue
		}
		key := NormalizeVenue(r.Venue)
		i, ok := index[key]
		if !ok {
			i = len(ranks)
			index[key] = i
			ranks = append(ranks, VenueRank{Venue: r.Venue})
		}
		ranks[i].Count++
	}

	slices.SortStableFunc(ranks, func(a, b VenueRank) int {
		return b.Count - a.Count
	})
	if len(ranks) > limit {
		ranks = ranks[:limit]
	}
	return ranks
}

// VenueCounts tallies reviews for one venue by rating.
type VenueCounts struct {
	Name  string `json:"name"`
	Total int    `json:"total"`
	Good  int    `json:"good"`
	Okay  int    `json:"okay"`
	Bad   int    `json:"bad"`
}

// SummarizeVenues groups reviews by exact venue name in first-seen order.
func SummarizeVenues(reviews []Review) []VenueCounts {
	var counts []VenueCounts
	index := make(map[string]int)
	for _, r := range reviews {
		if r.Venue == "" {
			continue
		}
		i, ok := index[r.Venue]
		if !ok {
			i = len(counts)
			index[r.Venue] = i
			counts = append(counts, VenueCounts{Name: r.Venue})
		}
		c := &counts[i]
		c.Total++
		switch r.Rating {
		case RatingGood:
			c.Good++
		case RatingOkay:
			c.Okay++
		case RatingBad:
			c.Bad++
		}
	}
	return counts
}

// FilterVenues keeps venues whose name contains query, ignoring case.
// An empty query keeps everything.
func FilterVenues(counts []VenueCounts, query string) []VenueCounts {
	term := strings.ToLower(strings.TrimSpace(query))
	if term == "" {
		return slices.Clone(counts)
	}
	var out []VenueCounts
	for _, c := range counts {
		if strings.Contains(strings.ToLower(c.Name), term) {
			out = append(out, c)
		}
	}
	return out
}

// SortVenues orders venues by their Good or Bad count, highest first.
// Any other rating sorts by total.
func SortVenues(counts []VenueCounts, by Rating) []VenueCounts {
	key := func(c VenueCounts) int {
		switch by {
		case RatingGood:
			return c.Good
		case RatingBad:
			return c.Bad
		case RatingOkay:
			return c.Okay
		}
		return c.Total
	}
	out := slices.Clone(counts)
	slices.SortStableFunc(out, func(a, b VenueCounts) int {
		return key(b) - key(a)
	})
	return out
}

// ReviewFilter selects reviews. Zero-valued fields match everything.
type ReviewFilter struct {
	Rating Rating
	Tag    Tag
}

// Match reports whether r satisfies every set criterion.
func (f ReviewFilter) Match(r Review) bool {
	if f.Rating != RatingNone && r.Rating != f.Rating {
		return false
	}
	if f.Tag != "" && !slices.Contains(r.Tags, f.Tag) {
		return false
	}
	return true
}

// FilterReviews returns the reviews matching f.
func FilterReviews(reviews []Review, f ReviewFilter) []Review {
	var out []Review
	for _, r := range reviews {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}

// Insights is a quick overview of all reviews.
type Insights struct {
	MostReviewedVenue string `json:"most_reviewed_venue"`
	MostFlaggedTag    string `json:"most_flagged_tag"`
	DominantTone      string `json:"dominant_tone"`
	TotalReviews      int    `json:"total_reviews"`
}

// ComputeInsights summarizes reviews.
func ComputeInsights(reviews []Review) Insights {
	var venues, tags, tones []string
	for _, r := range reviews {
		venues = append(venues, r.Venue)
		for _, t := range r.Tags {
			tags = append(tags, string(t))
		}
		tones = append(tones, string(r.Tone))
	}
	return Insights{
		MostReviewedVenue: mode(venues),
		MostFlaggedTag:    mode(tags),
		DominantTone:      mode(tones),
		TotalReviews:      len(reviews),
	}
}

// mode returns the most frequent non-empty value, preferring the earliest
// seen on ties.
func mode(values []string) string {
	counts := make(map[string]int)
	best, bestCount := NotAvailable, 0
	for _, v := range values {
		if v == "" {
			continue
		}
		counts[v]++
	}
	for _, v := range values {
		if n := counts[v]; v != "" && n > bestCount {
			best, bestCount = v, n
		}
	}
	return best
}
