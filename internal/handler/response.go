package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"qtirender/internal/domain"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PagMeta holds pagination metadata.
type PagMeta struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondPaginated sends a 200 success response with pagination metadata.
func RespondPaginated(c *gin.Context, data interface{}, meta PagMeta) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: &meta})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrItemNotFound):
		return http.StatusNotFound, "ITEM_NOT_FOUND", "item not found"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized, "INVALID_TOKEN", "invalid or expired token"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "FORBIDDEN", "forbidden"
	case errors.Is(err, domain.ErrEmptyFragment):
		return http.StatusBadRequest, "EMPTY_FRAGMENT", "markup has no content"
	case errors.Is(err, domain.ErrFragmentTooLarge):
		return http.StatusRequestEntityTooLarge, "FRAGMENT_TOO_LARGE", "markup exceeds maximum allowed size"
	case errors.Is(err, domain.ErrItemNotRendered):
		return http.StatusConflict, "ITEM_NOT_RENDERED", "item has not been rendered yet"
	case errors.Is(err, domain.ErrEmptyResponse):
		return http.StatusBadRequest, "EMPTY_RESPONSE", "at least one answer is required"
	case errors.Is(err, domain.ErrUnknownResponseIdentifier):
		return http.StatusBadRequest, "UNKNOWN_RESPONSE_IDENTIFIER", err.Error()
	case errors.Is(err, domain.ErrInvalidExportFormat):
		return http.StatusBadRequest, "INVALID_EXPORT_FORMAT", "unsupported export format; allowed: csv, xlsx"
	case errors.Is(err, domain.ErrSnapshotFailed):
		return http.StatusInternalServerError, "SNAPSHOT_FAILED", "snapshot upload to storage failed"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] internal error: %v", requestID, err)
	}
	RespondError(c, status, code, msg)
}

// bodyOverhead leaves room for the JSON envelope and escaping around markup.
const bodyOverhead = 4 * 1024

// BodyLimit returns the request body cap for a fragment size limit. Zero
// disables it.
func BodyLimit(maxFragmentBytes int) int64 {
	if maxFragmentBytes <= 0 {
		return 0
	}
	return 2*int64(maxFragmentBytes) + bodyOverhead
}

// limitBody caps the bytes readable from the request body.
func limitBody(c *gin.Context, n int64) {
	if n > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
	}
}

func isBodyTooLarge(err error) bool {
	var mbe *http.MaxBytesError
	return errors.As(err, &mbe)
}

func respondBodyTooLarge(c *gin.Context) {
	RespondError(c, http.StatusRequestEntityTooLarge, "FRAGMENT_TOO_LARGE", "markup exceeds maximum allowed size")
}

func parsePagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return offset, limit
}
