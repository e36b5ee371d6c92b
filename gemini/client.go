package gemini

import (
	"context"
	"errors"

	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used for review classification.
// Reviews are short, so a flash model is plenty.
const DefaultModel = "gemini-2.5-flash"

// Client wraps the Gemini genai.Client.
type Client struct {
	client *genai.Client
}

// NewClient creates a new Client with the given API key.
func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &Client{client: client}, nil
}

// Close is a no-op for the genai SDK (no cleanup needed).
func (c *Client) Close() error {
	return nil
}

// GenerateContent implements GenerativeClient by delegating to the genai.Client.
func (c *Client) GenerateContent(ctx context.Context, model string, contents []*Content, config *GenerateContentConfig) (*GenerateContentResponse, error) {
	genaiContents := make([]*genai.Content, len(contents))
	for i, content := range contents {
		genaiContents[i] = convertContent(content, "user")
	}

	var genaiConfig *genai.GenerateContentConfig
	if config != nil {
		genaiConfig = &genai.GenerateContentConfig{
			Temperature:       config.Temperature,
			ResponseMIMEType:  config.ResponseMIMEType,
			ResponseSchema:    convertSchema(config.ResponseSchema),
			SystemInstruction: convertContent(config.SystemInstruction, ""),
		}
	}

	result, err := c.client.Models.GenerateContent(ctx, model, genaiContents, genaiConfig)
	if err != nil {
		return nil, wrapAPIError(err)
	}

	return &GenerateContentResponse{Text: result.Text()}, nil
}

func convertContent(content *Content, role string) *genai.Content {
	if content == nil {
		return nil
	}
	parts := make([]*genai.Part, len(content.Parts))
	for i, part := range content.Parts {
		parts[i] = &genai.Part{Text: part.Text}
	}
	return &genai.Content{Parts: parts, Role: role}
}

// wrapAPIError converts genai.APIError to our APIError type for retry handling.
func wrapAPIError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return NewAPIError(apiErr.Code, apiErr.Message)
	}
	return err
}

// convertSchema recursively converts our Schema to genai.Schema.
func convertSchema(s *Schema) *genai.Schema {
	if s == nil {
		return nil
	}
	gs := &genai.Schema{
		Type:             genai.Type(s.Type),
		Enum:             s.Enum,
		Minimum:          s.Minimum,
		Maximum:          s.Maximum,
		Required:         s.Required,
		PropertyOrdering: s.PropertyOrdering,
		Description:      s.Description,
	}
	if s.Properties != nil {
		gs.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for k, v := range s.Properties {
			gs.Properties[k] = convertSchema(v)
		}
	}
	return gs
}

// Compile-time check that Client implements GenerativeClient.
var _ GenerativeClient = (*Client)(nil)
