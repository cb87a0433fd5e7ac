package platform

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_IsMatchesByCode(t *testing.T) {
	err := newError(CodePostIDNotRecognised, "post id %d not recognised", 7)

	assert.ErrorIs(t, err, ErrPostIDNotRecognised)
	assert.NotErrorIs(t, err, ErrHandleNotRecognised)
	assert.Equal(t, "POST_ID_NOT_RECOGNISED: post id 7 not recognised", err.Error())
}

func TestError_Wrapped(t *testing.T) {
	cause := errors.New("disk full")
	err := fmt.Errorf("cli: %w", wrapError(CodeStorageIO, "save state.db", cause))

	assert.ErrorIs(t, err, ErrStorageIO)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, CodeStorageIO, CodeOf(err))
	assert.Contains(t, err.Error(), "disk full")
}

func TestCodeOf_NonPlatformError(t *testing.T) {
	assert.Equal(t, ErrorCode(""), CodeOf(errors.New("plain")))
	assert.Equal(t, ErrorCode(""), CodeOf(nil))
}
