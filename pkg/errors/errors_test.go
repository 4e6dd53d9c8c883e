package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_IsMatchesByCode(t *testing.T) {
	err := fmt.Errorf("load section: %w", ErrSectionNotFound.WithDetail("id=42"))

	assert.True(t, stderrors.Is(err, ErrSectionNotFound))
	assert.False(t, stderrors.Is(err, ErrProjectNotFound))
}

func TestAppError_WithDetailDoesNotMutateSentinel(t *testing.T) {
	_ = ErrValidationFailed.WithDetail("title is required")

	assert.Empty(t, ErrValidationFailed.Detail)
}

func TestAsAppError_UnwrapsChain(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", ErrGenerationBusy)

	appErr := AsAppError(wrapped)
	require.NotNil(t, appErr)
	assert.Equal(t, CodeGenerationBusy, appErr.Code)
	assert.Equal(t, http.StatusConflict, appErr.HTTPStatus)
}

func TestAsAppError_WrapsPlainError(t *testing.T) {
	appErr := AsAppError(stderrors.New("boom"))

	assert.Equal(t, CodeUnknown, appErr.Code)
	assert.Equal(t, http.StatusInternalServerError, appErr.HTTPStatus)
}

func TestCodeToHTTPStatus(t *testing.T) {
	cases := map[ErrorCode]int{
		CodeValidationFailed: http.StatusBadRequest,
		CodeProjectNotFound:  http.StatusNotFound,
		CodeSectionNotFound:  http.StatusNotFound,
		CodeTokenExpired:     http.StatusUnauthorized,
		CodeExportFailed:     http.StatusInternalServerError,
	}
	for code, want := range cases {
		assert.Equal(t, want, codeToHTTPStatus(code), "code %s", code)
	}
}
