package bouncer

import "fmt"

// ValidationReason identifies why a Classification is invalid.
type ValidationReason string

// Validation error reasons.
const (
	ErrInvalidBehaviorType ValidationReason = "invalid_behavior_type"
	ErrScoreOutOfRange     ValidationReason = "score_out_of_range"
	ErrInvalidTone         ValidationReason = "invalid_tone"
)

// ValidationError describes a single problem with a classification.
type ValidationError struct {
	Reason ValidationReason
	Value  string // Offending value as received
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	switch e.Reason {
	case ErrInvalidBehaviorType:
		return fmt.Sprintf("behavior type %q is not one of %v", e.Value, BehaviorTypes())
	case ErrScoreOutOfRange:
		return fmt.Sprintf("safety score %s is out of range (valid: %d-%d)",
			e.Value, MinSafetyScore, MaxSafetyScore)
	case ErrInvalidTone:
		return fmt.Sprintf("tone %q is not one of %v", e.Value, Tones())
	default:
		return fmt.Sprintf("invalid classification value %q", e.Value)
	}
}

// ValidateClassification checks that every field of c lies in its closed
// set. Returns nil if c is valid.
func ValidateClassification(c *Classification) []ValidationError {
	var errors []ValidationError

	if !c.BehaviorType.IsValid() {
		errors = append(errors, ValidationError{
			Reason: ErrInvalidBehaviorType,
			Value:  string(c.BehaviorType),
		})
	}
	if c.SafetyScore < MinSafetyScore || c.SafetyScore > MaxSafetyScore {
		errors = append(errors, ValidationError{
			Reason: ErrScoreOutOfRange,
			Value:  fmt.Sprint(c.SafetyScore),
		})
	}
	if !c.Tone.IsValid() {
		errors = append(errors, ValidationError{
			Reason: ErrInvalidTone,
			Value:  string(c.Tone),
		})
	}

	return errors
}
