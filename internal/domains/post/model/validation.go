package model

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Content bounds, counted in Unicode code points
const (
	ContentMinLength = 1
	ContentMaxLength = 200
)

const errCodeNotEmoji = "validation_not_emoji"

var errNotEmoji = validation.NewError(errCodeNotEmoji, "Only emojis are allowed!")

// contentRules run in order and stop at the first failure, so the length
// checks always win over the emoji check.
func contentRules() []validation.Rule {
	return []validation.Rule{
		validation.Required.Error("Content cannot be empty"),
		validation.RuneLength(0, ContentMaxLength).Error("Too long!"),
		validation.By(emojiOnly),
	}
}

func emojiOnly(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if !IsEmojiOnly(s) {
		return errNotEmoji
	}
	return nil
}

// ValidateContent checks post content and returns a *PostError carrying
// field "content" and one of ReasonTooShort, ReasonTooLong, ReasonNotEmoji.
func ValidateContent(content string) error {
	err := validation.Validate(content, contentRules()...)
	if err == nil {
		return nil
	}

	var vErr validation.Error
	if !errors.As(err, &vErr) {
		return NewValidationError("content", ReasonNotEmoji, err.Error())
	}

	switch vErr.Code() {
	case validation.ErrRequired.Code():
		return NewValidationError("content", ReasonTooShort, vErr.Error())
	case validation.ErrLengthTooLong.Code():
		return NewValidationError("content", ReasonTooLong, vErr.Error())
	default:
		return NewValidationError("content", ReasonNotEmoji, vErr.Error())
	}
}

// Validate validates the create request body
func (r *CreatePostRequest) Validate() error {
	return ValidateContent(r.Content)
}
