package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorsSetCodeAndRetryability(t *testing.T) {
	tests := []struct {
		name      string
		err       *StandardError
		wantCode  ErrorCode
		retryable bool
	}{
		{name: "invalid request", err: NewInvalidRequestError("bad body"), wantCode: ErrCodeInvalidRequest, retryable: false},
		{name: "invalid query format", err: NewInvalidQueryFormatError("lat without lng"), wantCode: ErrCodeInvalidQueryFormat, retryable: false},
		{name: "backend failed", err: NewSearchBackendFailedError("algolia", errors.New("status 500")), wantCode: ErrCodeSearchBackendFailed, retryable: true},
		{name: "timeout", err: NewSearchTimeoutError("elasticsearch"), wantCode: ErrCodeSearchTimeout, retryable: true},
		{name: "index missing", err: NewIndexNotFoundError("stapubox"), wantCode: ErrCodeIndexNotFound, retryable: false},
		{name: "cache down", err: NewCacheUnavailableError(errors.New("dial refused")), wantCode: ErrCodeCacheUnavailable, retryable: true},
		{name: "dataset", err: NewDatasetGenerationFailedError("too few records"), wantCode: ErrCodeDatasetGenerationFailed, retryable: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCode, tt.err.Code)
			assert.Equal(t, tt.retryable, tt.err.Retryable)
			assert.Equal(t, tt.retryable, IsRetryableErrorCode(tt.err.Code))
			assert.False(t, tt.err.Timestamp.IsZero())
		})
	}
}

func TestErrorStringCarriesCode(t *testing.T) {
	err := NewIndexNotFoundError("stapubox")
	assert.Equal(t, "StandardError[INDEX_NOT_FOUND]: Search index not found", err.Error())
}

func TestStandardErrorUnwrapsWithAs(t *testing.T) {
	wrapped := fmt.Errorf("search failed: %w", NewSearchTimeoutError("algolia"))

	var stdErr *StandardError
	require.True(t, errors.As(wrapped, &stdErr))
	assert.Equal(t, ErrCodeSearchTimeout, stdErr.Code)
}

func TestGetRetryCount(t *testing.T) {
	assert.Equal(t, 3, GetRetryCount(ErrCodeSearchBackendFailed))
	assert.Equal(t, 3, GetRetryCount(ErrCodeElasticsearchConnectionFailed))
	assert.Equal(t, 2, GetRetryCount(ErrCodeSearchTimeout))
	assert.Equal(t, 2, GetRetryCount(ErrCodeCacheUnavailable))
	assert.Equal(t, 0, GetRetryCount(ErrCodeInvalidRequest))
	assert.Equal(t, 0, GetRetryCount(ErrCodeDatasetGenerationFailed))
}

func TestGetErrorCategory(t *testing.T) {
	assert.Equal(t, "VALIDATION", GetErrorCategory(ErrCodeInvalidRequest))
	assert.Equal(t, "VALIDATION", GetErrorCategory(ErrCodeInvalidQueryFormat))
	assert.Equal(t, "SEARCH", GetErrorCategory(ErrCodeSearchBackendFailed))
	assert.Equal(t, "SEARCH", GetErrorCategory(ErrCodeIndexNotFound))
	assert.Equal(t, "CACHE", GetErrorCategory(ErrCodeCacheUnavailable))
	assert.Equal(t, "DATASET", GetErrorCategory(ErrCodeDatasetGenerationFailed))
	assert.Equal(t, "OTHER", GetErrorCategory("EXTERNAL_SERVICE_ERROR"))
}
