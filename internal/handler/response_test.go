package handler_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"qtirender/internal/domain"
	"qtirender/internal/handler"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{domain.ErrItemNotFound, http.StatusNotFound, "ITEM_NOT_FOUND"},
		{domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{domain.ErrInvalidToken, http.StatusUnauthorized, "INVALID_TOKEN"},
		{domain.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{domain.ErrEmptyFragment, http.StatusBadRequest, "EMPTY_FRAGMENT"},
		{domain.ErrFragmentTooLarge, http.StatusRequestEntityTooLarge, "FRAGMENT_TOO_LARGE"},
		{domain.ErrItemNotRendered, http.StatusConflict, "ITEM_NOT_RENDERED"},
		{domain.ErrEmptyResponse, http.StatusBadRequest, "EMPTY_RESPONSE"},
		{domain.ErrInvalidExportFormat, http.StatusBadRequest, "INVALID_EXPORT_FORMAT"},
		{fmt.Errorf("wrapped: %w", domain.ErrSnapshotFailed), http.StatusInternalServerError, "SNAPSHOT_FAILED"},
		{errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.wantCode, func(t *testing.T) {
			status, code, _ := handler.MapDomainError(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, code)
		})
	}
}

func TestMapDomainError_UnknownIdentifierKeepsKey(t *testing.T) {
	err := fmt.Errorf("%w: %q", domain.ErrUnknownResponseIdentifier, "RESPONSE_9")
	status, code, msg := handler.MapDomainError(err)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "UNKNOWN_RESPONSE_IDENTIFIER", code)
	assert.Contains(t, msg, "RESPONSE_9")
}
