package utils

import (
	"strings"
	"testing"

	"github.com/itchan-dev/hoots/shared/config"
	"github.com/itchan-dev/hoots/shared/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentValidator(t *testing.T) {
	v := NewContentValidator(config.Public{MaxTitleLen: 5, MaxTextLen: 10, MaxCommentLen: 3})

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, v.Title("T"))
		assert.NoError(t, v.Text("X"))
		assert.NoError(t, v.CommentText("hi"))
	})

	t.Run("limits count runes", func(t *testing.T) {
		assert.NoError(t, v.Title("приве"))
		assert.NoError(t, v.CommentText("ёжи"))
	})

	t.Run("blank is required error", func(t *testing.T) {
		err := v.Title("   ")
		require.Error(t, err)
		assert.True(t, errors.IsValidation(err))
		assert.Contains(t, err.Error(), "title is required")
	})

	t.Run("too long", func(t *testing.T) {
		err := v.Text(strings.Repeat("a", 11))
		require.Error(t, err)
		assert.True(t, errors.IsValidation(err))
		assert.Contains(t, err.Error(), "text is too long")

		err = v.CommentText("hello")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "comment text is too long")
	})
}
