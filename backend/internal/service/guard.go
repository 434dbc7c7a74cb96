package service

import (
	"fmt"

	"github.com/itchan-dev/hoots/shared/domain"
	"github.com/itchan-dev/hoots/shared/errors"
	"github.com/itchan-dev/hoots/shared/middleware/metrics"
)

const (
	resourceHoot    = "hoot"
	resourceComment = "comment"
)

// IsOwner reports whether actor is the recorded author of a hoot or a comment.
// Hoot and comment checks both go through it, so owning a hoot grants nothing over its comments.
func IsOwner(actor domain.UserId, author domain.UserId) bool {
	return actor == author
}

func authorize(actor, author domain.UserId, resource string) error {
	if IsOwner(actor, author) {
		return nil
	}
	metrics.ForbiddenMutations.WithLabelValues(resource).Inc()
	return errors.Forbidden(fmt.Sprintf("Only the author can modify this %s", resource))
}
