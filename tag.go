package bouncer

import (
	"fmt"
	"slices"
	"strings"
)

// Tag is a short label describing observed behavior.
type Tag string

// Catalog tags.
const (
	TagRespectful      Tag = "Respectful"
	TagProtectedMe     Tag = "Protected me"
	TagFriendly        Tag = "Friendly"
	TagCalm            Tag = "Calm"
	TagAggressive      Tag = "Aggressive"
	TagRacialProfiling Tag = "Racial profiling"
	TagSexist          Tag = "Sexist / inappropriate"
	TagDrunk           Tag = "Drunk"
	TagYelled          Tag = "Yelled / Power tripping"
	TagPreventedEntry  Tag = "Prevented entry for no reason"
)

// TagOption is a catalog entry as offered to reviewers.
type TagOption struct {
	Emoji string
	Label Tag
}

var catalog = []TagOption{
	{Emoji: "✅", Label: TagRespectful},
	{Emoji: "🛡️", Label: TagProtectedMe},
	{Emoji: "🙂", Label: TagFriendly},
	{Emoji: "🧘", Label: TagCalm},
	{Emoji: "😡", Label: TagAggressive},
	{Emoji: "🧍🏾", Label: TagRacialProfiling},
	{Emoji: "❌", Label: TagSexist},
	{Emoji: "🥴", Label: TagDrunk},
	{Emoji: "🔈", Label: TagYelled},
	{Emoji: "🚷", Label: TagPreventedEntry},
}

// Catalog returns the tag catalog in display order.
func Catalog() []TagOption {
	return slices.Clone(catalog)
}

// LookupTag finds the catalog entry for label. Matching ignores case and
// surrounding whitespace.
func LookupTag(label string) (TagOption, bool) {
	label = strings.TrimSpace(label)
	for _, opt := range catalog {
		if strings.EqualFold(string(opt.Label), label) {
			return opt, true
		}
	}
	return TagOption{}, false
}

// ParseTag resolves user input to a catalog tag.
func ParseTag(label string) (Tag, error) {
	opt, ok := LookupTag(label)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownTag, label)
	}
	return opt.Label, nil
}

// TagSet is an unordered set of tags.
type TagSet map[Tag]struct{}

// NewTagSet builds a set from tags, dropping duplicates.
func NewTagSet(tags ...Tag) TagSet {
	s := make(TagSet, len(tags))
	for _, t := range tags {
		s[t] = struct{}{}
	}
	return s
}

// Has reports whether t is in the set.
func (s TagSet) Has(t Tag) bool {
	_, ok := s[t]
	return ok
}

// HasAny reports whether any of tags is in the set.
func (s TagSet) HasAny(tags ...Tag) bool {
	for _, t := range tags {
		if s.Has(t) {
			return true
		}
	}
	return false
}

// Intersects reports whether s and other share a tag.
func (s TagSet) Intersects(other TagSet) bool {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	for t := range small {
		if large.Has(t) {
			return true
		}
	}
	return false
}

// Len returns the number of tags in the set.
func (s TagSet) Len() int {
	return len(s)
}

// Sorted returns the tags in lexical order.
func (s TagSet) Sorted() []Tag {
	tags := make([]Tag, 0, len(s))
	for t := range s {
		tags = append(tags, t)
	}
	slices.Sort(tags)
	return tags
}
