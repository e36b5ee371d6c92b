// Package heuristic classifies reviews with fixed keyword and tag rules.
//
// Classification is deterministic and never fails: any rating (including
// none), any tag set (including empty) and any story produce a result.
package heuristic

import (
	"context"
	"strings"

	"github.com/fwojciec/bouncer"
)

// Compile-time interface verification.
var _ bouncer.Classifier = (*Classifier)(nil)

// signals are the facts about a review that the rules inspect.
type signals struct {
	tags    bouncer.TagSet
	story   string // lower-cased
	redFlag bool
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}

// behaviorRule maps a predicate to a behavior type. Rules are evaluated in
// order and the first match wins.
type behaviorRule struct {
	behavior bouncer.BehaviorType
	match    func(c *Catalog, s signals) bool
}

var behaviorRules = []behaviorRule{
	{bouncer.BehaviorDiscriminatory, func(c *Catalog, s signals) bool {
		return s.tags.Intersects(c.DiscriminatoryTags) || containsAny(s.story, c.DiscriminatoryKeywords)
	}},
	{bouncer.BehaviorAggressive, func(c *Catalog, s signals) bool {
		return s.tags.Intersects(c.AggressiveTags) || containsAny(s.story, c.AggressiveKeywords)
	}},
	{bouncer.BehaviorStrict, func(c *Catalog, s signals) bool {
		return s.tags.Intersects(c.StrictTags)
	}},
	{bouncer.BehaviorRespectful, func(c *Catalog, s signals) bool {
		return s.tags.Intersects(c.RespectfulTags)
	}},
}

// defaultBehavior applies when no rule matches.
const defaultBehavior = bouncer.BehaviorFair

// toneRule maps a predicate over the final score to a tone.
type toneRule struct {
	tone  bouncer.Tone
	match func(score int, redFlag bool) bool
}

var toneRules = []toneRule{
	{bouncer.TonePositive, func(score int, _ bool) bool { return score >= 4 }},
	{bouncer.ToneNegative, func(score int, redFlag bool) bool { return score <= 2 || redFlag }},
}

const defaultTone = bouncer.ToneMixed

var baseScores = map[bouncer.Rating]int{
	bouncer.RatingGood: 5,
	bouncer.RatingOkay: 3,
}

// floorScore is the base for Bad and for an absent rating.
const floorScore = bouncer.MinSafetyScore

// Classifier implements bouncer.Classifier with a rule table.
type Classifier struct {
	catalog Catalog
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithCatalog replaces the built-in lookup tables, e.g. for another language.
func WithCatalog(c Catalog) Option {
	return func(cl *Classifier) {
		cl.catalog = c.clone()
	}
}

// NewClassifier creates a Classifier using the default catalog unless
// overridden.
func NewClassifier(opts ...Option) *Classifier {
	c := &Classifier{catalog: DefaultCatalog()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify implements bouncer.Classifier. It never returns an error.
func (c *Classifier) Classify(_ context.Context, input bouncer.ReviewInput) (*bouncer.Classification, error) {
	result := c.classify(input.Rating, input.Tags, input.Story)
	return &result, nil
}

var defaultClassifier = NewClassifier()

// Classify derives a classification from a rating, tag set and story using
// the default catalog.
func Classify(rating bouncer.Rating, tags bouncer.TagSet, story string) bouncer.Classification {
	return defaultClassifier.classify(rating, tags, story)
}

func (c *Classifier) classify(rating bouncer.Rating, tags bouncer.TagSet, story string) bouncer.Classification {
	s := signals{tags: tags, story: strings.ToLower(story)}
	s.redFlag = s.tags.Intersects(c.catalog.RedFlagTags) || containsAny(s.story, c.catalog.RedFlagKeywords)

	score := c.score(rating, s)

	return bouncer.Classification{
		BehaviorType: c.behavior(s),
		SafetyScore:  score,
		Tone:         tone(score, s.redFlag),
	}
}

func (c *Classifier) behavior(s signals) bouncer.BehaviorType {
	for _, r := range behaviorRules {
		if r.match(&c.catalog, s) {
			return r.behavior
		}
	}
	return defaultBehavior
}

// score adjusts the rating's base score and clamps last, so Good with a red
// flag yields 4 and Bad with both adjustments stays at 1.
func (c *Classifier) score(rating bouncer.Rating, s signals) int {
	score, ok := baseScores[rating]
	if !ok {
		score = floorScore
	}
	if s.tags.Intersects(c.catalog.BonusTags) {
		score++
	}
	if s.redFlag {
		score--
	}
	return min(max(score, bouncer.MinSafetyScore), bouncer.MaxSafetyScore)
}

func tone(score int, redFlag bool) bouncer.Tone {
	for _, r := range toneRules {
		if r.match(score, redFlag) {
			return r.tone
		}
	}
	return defaultTone
}
