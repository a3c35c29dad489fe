package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsNotFound(t *testing.T) {
	assert.False(t, IsNotFound(nil))
	assert.True(t, IsNotFound(ErrNotFound))
	assert.True(t, IsNotFound(Wrap(ErrNotFound, "schema film")))
	assert.False(t, IsNotFound(New("other")))
}

func TestHintsSurviveWrapping(t *testing.T) {
	err := WithHint(New("unknown key"), "did you mean \"shot_root\"?")
	err = Wrap(err, "resolving")

	assert.Equal(t, "did you mean \"shot_root\"?", FlattenHints(err))
	assert.Contains(t, err.Error(), "resolving: unknown key")
}
