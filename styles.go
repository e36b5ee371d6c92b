package bouncer

// ColorPair represents a foreground and background color combination.
// Colors should be hex strings in "#RRGGBB" format (e.g., "#ff0000" for red).
// Empty strings are valid and indicate no color override (use terminal default).
type ColorPair struct {
	Foreground string
	Background string
}

// Styles contains color pairs for every element of a rendered review.
type Styles struct {
	Positive ColorPair // Positive tone and high safety scores
	Negative ColorPair // Negative tone and low safety scores
	Mixed    ColorPair // Mixed tone
	Title    ColorPair // Card titles and venue names
	Label    ColorPair // Field labels
	Muted    ColorPair // Secondary text (counts, ids)
	Border   ColorPair // Card border
}

// ToneColor returns the color pair used for tone t.
func (s Styles) ToneColor(t Tone) ColorPair {
	switch t {
	case TonePositive:
		return s.Positive
	case ToneNegative:
		return s.Negative
	default:
		return s.Mixed
	}
}

// Theme provides styles for rendering reviews.
// Different implementations can provide light/dark variants.
type Theme interface {
	Styles() Styles
}
