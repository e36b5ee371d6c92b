package heuristic

import (
	"slices"

	"github.com/fwojciec/bouncer"
)

// Catalog holds the lookup tables the rules consult. Keywords are matched
// as substrings of the lower-cased story, so they must be lower case.
type Catalog struct {
	RedFlagTags     bouncer.TagSet
	RedFlagKeywords []string

	DiscriminatoryTags     bouncer.TagSet
	DiscriminatoryKeywords []string
	AggressiveTags         bouncer.TagSet
	AggressiveKeywords     []string
	StrictTags             bouncer.TagSet
	RespectfulTags         bouncer.TagSet

	// BonusTags raise the safety score by one.
	BonusTags bouncer.TagSet
}

// DefaultCatalog returns a fresh copy of the built-in English catalog.
func DefaultCatalog() Catalog {
	return Catalog{
		RedFlagTags: bouncer.NewTagSet(
			bouncer.TagRacialProfiling,
			bouncer.TagSexist,
			bouncer.TagAggressive,
			bouncer.TagYelled,
			bouncer.TagPreventedEntry,
		),
		RedFlagKeywords: []string{
			"racist",
			"sexist",
			"rude",
			"yell",
			"yelled",
			"aggressive",
			"garbage",
			"shout",
			"shouted",
			"scream",
			"screamed",
			"violent",
			"disrespectful",
		},

		DiscriminatoryTags:     bouncer.NewTagSet(bouncer.TagRacialProfiling, bouncer.TagSexist),
		DiscriminatoryKeywords: []string{"racist", "sexist"},
		AggressiveTags:         bouncer.NewTagSet(bouncer.TagAggressive, bouncer.TagYelled),
		AggressiveKeywords:     []string{"yell", "shout", "scream"},
		StrictTags:             bouncer.NewTagSet(bouncer.TagPreventedEntry),
		RespectfulTags:         bouncer.NewTagSet(bouncer.TagRespectful, bouncer.TagFriendly, bouncer.TagCalm),

		BonusTags: bouncer.NewTagSet(bouncer.TagRespectful, bouncer.TagProtectedMe),
	}
}

// clone deep-copies c so a Classifier never shares tables with its caller.
func (c Catalog) clone() Catalog {
	return Catalog{
		RedFlagTags:            cloneSet(c.RedFlagTags),
		RedFlagKeywords:        slices.Clone(c.RedFlagKeywords),
		DiscriminatoryTags:     cloneSet(c.DiscriminatoryTags),
		DiscriminatoryKeywords: slices.Clone(c.DiscriminatoryKeywords),
		AggressiveTags:         cloneSet(c.AggressiveTags),
		AggressiveKeywords:     slices.Clone(c.AggressiveKeywords),
		StrictTags:             cloneSet(c.StrictTags),
		RespectfulTags:         cloneSet(c.RespectfulTags),
		BonusTags:              cloneSet(c.BonusTags),
	}
}

func cloneSet(s bouncer.TagSet) bouncer.TagSet {
	return bouncer.NewTagSet(s.Sorted()...)
}
