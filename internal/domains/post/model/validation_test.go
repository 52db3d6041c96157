package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsEmojiOnly(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"single emoji", "😀", true},
		{"several emoji", "🔥🚀✨", true},
		{"skin tone modifier", "👍🏽", true},
		{"zwj family", "👨‍👩‍👧", true},
		{"flag", "🇻🇳", true},
		{"heart with variation selector", "❤️", true},
		{"keycap", "1️⃣", true},
		{"keycap without selector", "#⃣", true},
		{"empty", "", false},
		{"letters", "abc", false},
		{"bare digit", "1", false},
		{"emoji and space", "😀 😀", false},
		{"emoji then text", "😀ok", false},
		{"digit after keycap", "1️⃣2", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsEmojiOnly(tt.input))
		})
	}
}

func TestValidateContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
		reason  string
		message string
	}{
		{"empty", "", ReasonTooShort, "Content cannot be empty"},
		{"too long emoji", strings.Repeat("🙂", ContentMaxLength+1), ReasonTooLong, "Too long!"},
		{"too long text", strings.Repeat("x", ContentMaxLength+1), ReasonTooLong, "Too long!"},
		{"not emoji", "hello", ReasonNotEmoji, "Only emojis are allowed!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateContent(tt.content)

			var postErr *PostError
			require.ErrorAs(t, err, &postErr)
			assert.ErrorIs(t, err, ErrValidationFailed)
			assert.Equal(t, "content", postErr.Field)
			assert.Equal(t, tt.reason, postErr.Reason)
			assert.Equal(t, tt.message, postErr.Message)
		})
	}
}

func TestValidateContent_Valid(t *testing.T) {
	assert.NoError(t, ValidateContent("🙂"))
	assert.NoError(t, ValidateContent(strings.Repeat("🙂", ContentMaxLength)))

	req := &CreatePostRequest{Content: "🎉"}
	assert.NoError(t, req.Validate())
}

func TestParseLimit(t *testing.T) {
	limit, err := ParseLimit("")
	require.NoError(t, err)
	assert.Nil(t, limit)

	limit, err = ParseLimit(" 25 ")
	require.NoError(t, err)
	require.NotNil(t, limit)
	assert.Equal(t, 25, *limit)

	_, err = ParseLimit("ten")
	assert.ErrorIs(t, err, ErrInvalidLimit)
}

func TestListPostsQuery_ToPageRequest(t *testing.T) {
	req, err := ListPostsQuery{Limit: "5", Cursor: " abc ", AuthorID: "user_1"}.ToPageRequest()
	require.NoError(t, err)
	assert.Equal(t, 5, *req.Limit)
	assert.Equal(t, "abc", req.Cursor)
	assert.Equal(t, "user_1", req.AuthorID)

	_, err = ListPostsQuery{Limit: "1.5"}.ToPageRequest()
	assert.ErrorIs(t, err, ErrInvalidLimit)
}
