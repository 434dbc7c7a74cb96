package utils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/itchan-dev/hoots/shared/config"
	"github.com/itchan-dev/hoots/shared/domain"
	"github.com/itchan-dev/hoots/shared/errors"
)

// ContentValidator is the content schema of hoots and comments.
// Limits are rune counts taken from config.
type ContentValidator struct {
	validate      *validator.Validate
	maxTitleLen   int
	maxTextLen    int
	maxCommentLen int
}

func NewContentValidator(cfg config.Public) *ContentValidator {
	return &ContentValidator{
		validate:      validator.New(),
		maxTitleLen:   cfg.MaxTitleLen,
		maxTextLen:    cfg.MaxTextLen,
		maxCommentLen: cfg.MaxCommentLen,
	}
}

func (v *ContentValidator) Title(title domain.HootTitle) error {
	return v.check("title", title, v.maxTitleLen)
}

func (v *ContentValidator) Text(text domain.HootText) error {
	return v.check("text", text, v.maxTextLen)
}

func (v *ContentValidator) CommentText(text domain.CommentText) error {
	return v.check("comment text", text, v.maxCommentLen)
}

func (v *ContentValidator) check(field, value string, maxLen int) error {
	err := v.validate.Var(strings.TrimSpace(value), fmt.Sprintf("required,max=%d", maxLen))
	if err == nil {
		return nil
	}
	if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
		switch fieldErrs[0].Tag() {
		case "required":
			return errors.Validation(fmt.Sprintf("%s is required", field))
		case "max":
			return errors.Validation(fmt.Sprintf("%s is too long (max %d characters)", field, maxLen))
		}
	}
	return errors.Validation(fmt.Sprintf("%s is invalid", field))
}
