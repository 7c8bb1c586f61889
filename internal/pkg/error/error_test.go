package error

import (
	"fmt"
	"net/http"
	"testing"

	"squadhealth/internal/healthcheck"

	"github.com/stretchr/testify/assert"
)

func TestFromDomain(t *testing.T) {
	tests := []struct {
		err      error
		httpCode int
		code     int
	}{
		{err: healthcheck.ErrNotFound, httpCode: http.StatusNotFound, code: NOT_FOUND},
		{err: fmt.Errorf("walk: %w", healthcheck.ErrHierarchyCycleDetected), httpCode: http.StatusConflict, code: HIERARCHY_CYCLE_DETECTED},
		{err: healthcheck.ErrHierarchyIntegrity, httpCode: http.StatusConflict, code: HIERARCHY_INTEGRITY},
		{err: healthcheck.ErrPermissionDenied, httpCode: http.StatusForbidden, code: PERMISSION_DENIED},
		{err: healthcheck.ErrInvalidSession, httpCode: http.StatusBadRequest, code: INVALID_SUBMISSION},
		{err: healthcheck.ErrInvalidConfiguration, httpCode: http.StatusBadRequest, code: INVALID_SETTING},
		{err: fmt.Errorf("boom"), httpCode: http.StatusInternalServerError, code: INTERNAL_ERROR},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			got := FromDomain(tt.err)
			assert.Equal(t, tt.httpCode, got.HttpCode())
			assert.Equal(t, tt.code, got.ErrorCode())
		})
	}
}

func TestFromDomainKeepsAppError(t *testing.T) {
	appErr := NoData("team has no sessions")
	assert.Same(t, appErr, FromDomain(fmt.Errorf("summary: %w", appErr)))
	assert.Nil(t, FromDomain(nil))
}

func TestMapHttpStatusToError(t *testing.T) {
	assert.Equal(t, CONFLICT, MapHttpStatusToError(http.StatusConflict, "dup").ErrorCode())
	assert.Equal(t, RATE_LIMIT_EXCEEDED, MapHttpStatusToError(http.StatusTooManyRequests, "slow").ErrorCode())
	assert.Equal(t, INTERNAL_ERROR, MapHttpStatusToError(http.StatusTeapot, "tea").ErrorCode())
}
