package handler

import (
	"qtirender/internal/domain"
)

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// --- Request Types ---

// RenderRequest represents the stateless render request body.
type RenderRequest struct {
	Markup string `json:"markup" binding:"required" example:"<p>The year was <input class=\"qti-text-entry-interaction\" data-response-identifier=\"RESPONSE_1\">.</p>"`
}

// CreateItemRequest represents the create item request body.
type CreateItemRequest struct {
	Title      string `json:"title" binding:"required,max=255" example:"Moon landing"`
	SourceHTML string `json:"source_html" binding:"required" example:"<p>The year was <input class=\"qti-text-entry-interaction\" data-response-identifier=\"RESPONSE_1\">.</p>"`
}

// SubmitResponseRequest represents the submit answers request body.
type SubmitResponseRequest struct {
	Answers map[string]string `json:"answers" binding:"required"`
}

// --- Response Types ---

// RenderResult is a rendered fragment plus the style tags it needs.
type RenderResult struct {
	domain.RenderedFragment
	StyleTags string `json:"style_tags" example:"<style data-style-id=\"qti-visually-hidden\">...</style>"`
}

// SnapshotResponse holds a presigned snapshot URL.
type SnapshotResponse struct {
	URL string `json:"url" example:"https://bucket.s3.amazonaws.com/items/550e8400-e29b-41d4-a716-446655440000/rendered.html?X-Amz-Signature=..."`
}

// MessageResponse represents a simple message response.
type MessageResponse struct {
	Message string `json:"message" example:"Operation completed successfully"`
}

// Response wraps a successful response.
type Response struct {
	Success bool        `json:"success" example:"true"`
	Data    interface{} `json:"data,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// ErrorResponseBody wraps an error response.
type ErrorResponseBody struct {
	Success bool      `json:"success" example:"false"`
	Error   *APIError `json:"error"`
}
