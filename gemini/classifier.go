package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/bouncer"
)

// Compile-time interface verification.
var _ bouncer.Classifier = (*Classifier)(nil)

// DefaultClassifyTimeout is the default timeout for a single classify call.
const DefaultClassifyTimeout = 30 * time.Second

// Classifier implements bouncer.Classifier using Google Gemini.
type Classifier struct {
	client  GenerativeClient
	model   string
	timeout time.Duration
}

// ClassifierOption configures a Classifier.
type ClassifierOption func(*Classifier)

// WithTimeout sets the timeout for API calls.
func WithTimeout(d time.Duration) ClassifierOption {
	return func(c *Classifier) {
		c.timeout = d
	}
}

// NewClassifier creates a new Classifier.
func NewClassifier(client GenerativeClient, model string, opts ...ClassifierOption) *Classifier {
	c := &Classifier{
		client:  client,
		model:   model,
		timeout: DefaultClassifyTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify asks the model for a classification. API, parse and validation
// failures are returned as errors.
func (c *Classifier) Classify(ctx context.Context, input bouncer.ReviewInput) (*bouncer.Classification, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	contents := []*Content{{
		Parts: []*Part{{Text: BuildClassificationPrompt(input)}},
	}}

	resp, err := c.client.GenerateContent(ctx, c.model, contents, BuildClassificationConfig())
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, fmt.Errorf("gemini: returned nil response")
	}

	var classification bouncer.Classification
	if err := json.Unmarshal([]byte(resp.Text), &classification); err != nil {
		return nil, fmt.Errorf("gemini: failed to parse response: %w", err)
	}

	if verrs := bouncer.ValidateClassification(&classification); len(verrs) > 0 {
		errs := make([]error, len(verrs))
		for i, v := range verrs {
			errs[i] = v
		}
		return nil, fmt.Errorf("gemini: invalid classification: %w", errors.Join(errs...))
	}

	return &classification, nil
}

// BuildClassificationPrompt creates the user prompt for a review.
func BuildClassificationPrompt(input bouncer.ReviewInput) string {
	rating := string(input.Rating)
	if rating == "" {
		rating = "(none)"
	}

	tags := "(none)"
	if input.Tags.Len() > 0 {
		labels := make([]string, 0, input.Tags.Len())
		for _, t := range input.Tags.Sorted() {
			labels = append(labels, string(t))
		}
		tags = strings.Join(labels, ", ")
	}

	story := strings.TrimSpace(input.Story)
	if story == "" {
		story = "(none)"
	}

	return fmt.Sprintf(`Classify this review of a nightclub's door security staff.

<rating>%s</rating>
<tags>%s</tags>
<story>
%s
</story>

## Task

Determine:
- **behavior_type**: the single best description of the staff's conduct, checked in this priority order:
  - Discriminatory: racial profiling, sexism, or other treatment based on who the guest is
  - Aggressive: yelling, shouting, screaming, physical intimidation, power tripping
  - Strict: refusing entry without a stated reason
  - Respectful: respectful, friendly, or calm staff
  - Fair: none of the above
- **safety_score**: an integer from 1 (unsafe) to 5 (very safe). Start from the rating (Good 5, Okay 3, Bad or none 1), add 1 if the reviewer felt protected or respected, subtract 1 for any red flag.
- **tone**: Positive if safety_score is 4 or 5; Negative if safety_score is 1 or 2 or any red flag is present; otherwise Mixed.

Respond with JSON matching this schema:
{
  "behavior_type": "Discriminatory|Aggressive|Strict|Respectful|Fair",
  "safety_score": 1,
  "tone": "Positive|Negative|Mixed"
}`, rating, tags, story)
}

// BuildClassificationConfig returns config for classification calls.
func BuildClassificationConfig() *GenerateContentConfig {
	temp := float32(0.1)
	minScore, maxScore := float64(bouncer.MinSafetyScore), float64(bouncer.MaxSafetyScore)

	behaviors := make([]string, 0, len(bouncer.BehaviorTypes()))
	for _, b := range bouncer.BehaviorTypes() {
		behaviors = append(behaviors, string(b))
	}
	tones := make([]string, 0, len(bouncer.Tones()))
	for _, t := range bouncer.Tones() {
		tones = append(tones, string(t))
	}

	return &GenerateContentConfig{
		SystemInstruction: &Content{
			Parts: []*Part{{
				Text: `You are a nightlife safety analyst. You read short reviews of venue door staff and classify the staff's behavior, how safe the reviewer felt, and the overall tone.

Be consistent: identical reviews must receive identical classifications.`,
			}},
		},
		Temperature:      &temp,
		ResponseMIMEType: "application/json",
		ResponseSchema: &Schema{
			Type: TypeObject,
			Properties: map[string]*Schema{
				"behavior_type": {Type: TypeString, Enum: behaviors},
				"safety_score":  {Type: TypeInteger, Minimum: &minScore, Maximum: &maxScore},
				"tone":          {Type: TypeString, Enum: tones},
			},
			Required:         []string{"behavior_type", "safety_score", "tone"},
			PropertyOrdering: []string{"behavior_type", "safety_score", "tone"},
		},
	}
}
