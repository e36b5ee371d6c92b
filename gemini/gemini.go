// Package gemini classifies reviews with Google Gemini.
package gemini

import (
	"context"
	"fmt"
)

// GenerativeClient abstracts the Gemini API for testing.
type GenerativeClient interface {
	GenerateContent(ctx context.Context, model string, contents []*Content, config *GenerateContentConfig) (*GenerateContentResponse, error)
}

// Content represents a message in a Gemini conversation.
type Content struct {
	Parts []*Part
}

// Part represents a part of a message.
type Part struct {
	Text string
}

// GenerateContentConfig holds configuration for content generation.
type GenerateContentConfig struct {
	SystemInstruction *Content
	Temperature       *float32
	ResponseMIMEType  string
	ResponseSchema    *Schema
}

// Schema types.
const (
	TypeObject  = "OBJECT"
	TypeString  = "STRING"
	TypeInteger = "INTEGER"
)

// Schema represents the structure for controlled JSON generation.
type Schema struct {
	Type             string             // One of the Type constants
	Properties       map[string]*Schema // For object types
	Enum             []string           // For string enums
	Minimum          *float64           // For numeric types
	Maximum          *float64           // For numeric types
	Required         []string           // Required property names
	PropertyOrdering []string           // Order of properties in output
	Description      string             // Field description
}

// GenerateContentResponse holds the response from content generation.
type GenerateContentResponse struct {
	Text string
}

// MockGenerativeClient is a mock implementation of GenerativeClient for testing.
type MockGenerativeClient struct {
	GenerateContentFn func(ctx context.Context, model string, contents []*Content, config *GenerateContentConfig) (*GenerateContentResponse, error)
}

func (m *MockGenerativeClient) GenerateContent(ctx context.Context, model string, contents []*Content, config *GenerateContentConfig) (*GenerateContentResponse, error) {
	return m.GenerateContentFn(ctx, model, contents, config)
}

// APIError represents an error from the Gemini API with HTTP status code.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// Retryable reports whether the request may succeed if sent again.
func (e *APIError) Retryable() bool {
	return e.StatusCode == 429 || e.StatusCode >= 500
}

// NewAPIError creates a new APIError with the given status code and message.
func NewAPIError(statusCode int, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Message:    fmt.Sprintf("gemini API error (HTTP %d): %s", statusCode, message),
	}
}
