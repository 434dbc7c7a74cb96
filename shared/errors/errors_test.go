package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPredicates(t *testing.T) {
	assert.True(t, IsNotFound(NotFound("Hoot")))
	assert.True(t, IsForbidden(Forbidden("nope")))
	assert.True(t, IsValidation(Validation("title is required")))

	assert.False(t, IsNotFound(Forbidden("nope")))
	assert.False(t, IsForbidden(errors.New("plain")))

	wrapped := fmt.Errorf("failed to load: %w", NotFound("Comment"))
	assert.True(t, IsNotFound(wrapped), "predicates should see through wrapping")
	assert.Equal(t, "failed to load: Comment not found", wrapped.Error())
}

func TestStorage(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, Storage(nil))
	})

	t.Run("domain errors pass through", func(t *testing.T) {
		notFound := NotFound("Hoot")
		assert.Same(t, notFound, Storage(notFound))
	})

	t.Run("collaborator errors are wrapped", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := Storage(cause)

		var storageErr *StorageError
		require.ErrorAs(t, err, &storageErr)
		assert.ErrorIs(t, err, cause)
		assert.Equal(t, "storage error: connection refused", err.Error())
	})

	t.Run("already wrapped is not wrapped twice", func(t *testing.T) {
		err := Storage(errors.New("timeout"))
		assert.Same(t, err, Storage(err))
	})

	t.Run("status code is preserved", func(t *testing.T) {
		var e *ErrorWithStatusCode
		require.ErrorAs(t, Storage(Forbidden("x")), &e)
		assert.Equal(t, http.StatusForbidden, e.StatusCode)
	})
}
