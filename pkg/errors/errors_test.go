package errors_test

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voracio/sheetsense/pkg/errors"
)

func TestNew_PopulatesCodeMessageStack(t *testing.T) {
	t.Parallel()
	err := errors.New(errors.CodeDocumentUnavailable, "document has no content")
	require.NotNil(t, err)
	assert.Equal(t, errors.CodeDocumentUnavailable, err.Code)
	assert.Equal(t, "document has no content", err.Message)
	assert.NotEmpty(t, err.Stack)
}

func TestError_FormatWithAndWithoutDetail(t *testing.T) {
	t.Parallel()
	err := errors.New(errors.CodeFallbackError, "chat completion failed")
	assert.Equal(t, "[LLM_001] chat completion failed", err.Error())

	withDetail := err.WithDetail("attribute=material")
	assert.Equal(t, "[LLM_001] chat completion failed: attribute=material", withDetail.Error())
	// Original is untouched.
	assert.Empty(t, err.Detail)
}

func TestWrap_NilPassthrough(t *testing.T) {
	t.Parallel()
	assert.Nil(t, errors.Wrap(nil, errors.CodeInternal, "should vanish"))
}

func TestWrap_PreservesCodeWhenUnknown(t *testing.T) {
	t.Parallel()
	inner := errors.New(errors.CodeLLMTimeout, "deadline exceeded")
	outer := errors.Wrap(inner, errors.CodeUnknown, "fallback degraded")
	assert.Equal(t, errors.CodeLLMTimeout, outer.Code)
	assert.True(t, stderrors.Is(outer, outer))
	assert.Same(t, inner, stderrors.Unwrap(outer))
}

func TestIsCode_TraversesChain(t *testing.T) {
	t.Parallel()
	inner := errors.New(errors.CodeLLMUnauthorized, "bad api key")
	wrapped := fmt.Errorf("request failed: %w", inner)
	outer := errors.Wrap(wrapped, errors.CodeFallbackError, "fallback failed")

	assert.True(t, errors.IsCode(outer, errors.CodeLLMUnauthorized))
	assert.True(t, errors.IsCode(outer, errors.CodeFallbackError))
	assert.False(t, errors.IsCode(outer, errors.CodeNotFound))
}

func TestGetCode(t *testing.T) {
	t.Parallel()
	assert.Equal(t, errors.CodeOK, errors.GetCode(nil))
	assert.Equal(t, errors.CodeUnknown, errors.GetCode(stderrors.New("plain")))
	assert.Equal(t, errors.CodeAttributeNotFound,
		errors.GetCode(errors.New(errors.CodeAttributeNotFound, "missing")))
}

func TestWithCause(t *testing.T) {
	t.Parallel()
	cause := stderrors.New("connection refused")
	err := errors.New(errors.CodeFallbackError, "fallback failed").WithCause(cause)
	assert.Same(t, cause, stderrors.Unwrap(err))
}

func TestNilReceiverBuilders(t *testing.T) {
	t.Parallel()
	var nilErr *errors.AppError
	assert.Nil(t, nilErr.WithDetail("x"))
	assert.Nil(t, nilErr.WithCause(stderrors.New("x")))
}

func TestHTTPStatusMapping(t *testing.T) {
	t.Parallel()
	cases := []struct {
		code errors.ErrorCode
		want int
	}{
		{errors.CodeOK, http.StatusOK},
		{errors.CodeInvalidParam, http.StatusBadRequest},
		{errors.CodeDocumentUnavailable, http.StatusBadRequest},
		{errors.CodeLLMUnauthorized, http.StatusUnauthorized},
		{errors.CodeAttributeNotFound, http.StatusNotFound},
		{errors.CodeLLMTimeout, http.StatusGatewayTimeout},
		{errors.CodeFallbackError, http.StatusBadGateway},
		{errors.CodeInternal, http.StatusInternalServerError},
		{errors.ErrorCode("SOMETHING_ELSE"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.code.HTTPStatus(), "code %s", tc.code)
	}
}
