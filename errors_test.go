package aiclient

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessageIncludesCodeAndCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewResponseError(CodeAPIRequestFailed, "OpenAI API returned an error",
		map[string]any{"model": "gpt-4"}, cause)

	assert.Equal(t, "LLM_API_REQUEST_FAILED: OpenAI API returned an error: connection refused", err.Error())

	withoutCause := NewAPIKeyMissingError("OPENAI_API_KEY environment variable is not set", nil)
	assert.Equal(t, "LLM_API_KEY_MISSING: OPENAI_API_KEY environment variable is not set", withoutCause.Error())
}

func TestErrorUnwrapsToCause(t *testing.T) {
	cause := errors.New("original error")
	err := NewResponseError(CodeAPIRequestFailed, "wrapped", nil, cause)

	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestKindPredicates(t *testing.T) {
	keyErr := NewAPIKeyMissingError("missing", map[string]any{"provider": "openai"})
	respErr := NewResponseError(CodeResponseParse, "bad payload", nil, nil)
	formatErr := NewContentFormatError(CodeContentMultiBlock, "two blocks", nil)

	assert.True(t, IsAPIKeyMissing(keyErr))
	assert.False(t, IsAPIKeyMissing(respErr))

	assert.True(t, IsResponseError(respErr))
	assert.False(t, IsResponseError(formatErr))

	assert.True(t, IsContentFormatError(formatErr))
	assert.False(t, IsContentFormatError(keyErr))

	assert.False(t, IsAPIKeyMissing(errors.New("plain")))
	assert.False(t, IsAPIKeyMissing(nil))
}

func TestPredicatesSeeThroughWrapping(t *testing.T) {
	inner := NewAPIKeyMissingError("missing", nil)
	wrapped := fmt.Errorf("constructing backend: %w", inner)

	assert.True(t, IsAPIKeyMissing(wrapped))
	assert.Equal(t, CodeAPIKeyMissing, ErrorCode(wrapped))
}

func TestErrorCode(t *testing.T) {
	err := NewContentFormatError(CodeContentStrip, "empty after strip", nil)
	assert.Equal(t, CodeContentStrip, ErrorCode(err))
	assert.Equal(t, "", ErrorCode(errors.New("plain")))
	assert.Equal(t, "", ErrorCode(nil))
}

func TestMetadataCarriedUnchanged(t *testing.T) {
	meta := map[string]any{"blocks_found": 2, "response_preview": "```a"}
	err := NewContentFormatError(CodeContentMultiBlock, "two blocks", meta)

	var structured *Error
	require.True(t, errors.As(err, &structured))
	assert.Equal(t, 2, structured.Metadata["blocks_found"])
	assert.Equal(t, "```a", structured.Metadata["response_preview"])
}
