package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMsg(t *testing.T) {
	assert.Equal(t, "Version not found", Msg(VersionNotFound))
	assert.Equal(t, "failed to fetch https://x/y.json", Msg(UpstreamFetch, "https://x/y.json"))
	assert.Equal(t, "SOMETHING_ELSE", Msg(Code("SOMETHING_ELSE")))
}

func TestError_IsAndUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := fmt.Errorf("resolve 1.21: %w", Wrap(UpstreamFetch, cause, "https://x/1.21.json"))

	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, New(UpstreamFetch))
	assert.NotErrorIs(t, err, New(MalformedArchive))
	assert.Equal(t, "resolve 1.21: failed to fetch https://x/1.21.json: connection refused", err.Error())

	code, ok := CodeOf(err)
	assert.True(t, ok)
	assert.Equal(t, UpstreamFetch, code)
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(New(VersionNotFound)))
	assert.True(t, IsNotFound(fmt.Errorf("wrapped: %w", New(ClientJarMissing))))
	assert.False(t, IsNotFound(New(UpstreamFetch, "u")))
	assert.False(t, IsNotFound(errors.New("plain")))
	assert.False(t, IsNotFound(nil))
}
