package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStruct_PostForm(t *testing.T) {
	t.Parallel()

	assert.Nil(t, Struct(&PostForm{Title: "Hello", Text: "Body"}))
	assert.Nil(t, Struct(&PostForm{Title: "Hello", Text: "Body", PubDate: "2024-05-01T10:30"}))

	fields := Struct(&PostForm{Title: strings.Repeat("x", 257), PubDate: "yesterday"})
	require.NotNil(t, fields)
	assert.Contains(t, fields["title"], "256")
	assert.Equal(t, "This field is required.", fields["text"])
	assert.Equal(t, "Enter a valid date/time.", fields["pub_date"])
}

func TestStruct_SignupForm(t *testing.T) {
	t.Parallel()

	ok := &SignupForm{Username: "alice", Email: "alice@example.com", Password: "SecurePass12!@"}
	assert.Nil(t, Struct(ok))

	fields := Struct(&SignupForm{Username: "-bad", Email: "nope", Password: "short"})
	require.NotNil(t, fields)
	assert.Equal(t, "Username cannot start or end with underscore or hyphen.", fields["username"])
	assert.Equal(t, "Invalid email format.", fields["email"])
	assert.Equal(t, "Password must be at least 12 characters long.", fields["password"])
}

func TestStruct_CategoryAndModerationForms(t *testing.T) {
	t.Parallel()

	fields := Struct(&CategoryForm{Title: "Travel", Description: "d", Slug: "bad slug"})
	require.NotNil(t, fields)
	assert.Contains(t, fields["slug"], "latin letters")

	fields = Struct(&ModerationForm{})
	require.NotNil(t, fields)
	assert.Equal(t, "This field is required.", fields["is_published"])

	published := false
	assert.Nil(t, Struct(&ModerationForm{IsPublished: &published}))
}

func TestParsePubDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want time.Time
	}{
		{"2024-05-01T10:30:00Z", time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)},
		{"2024-05-01T12:30:00+02:00", time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)},
		{"2024-05-01T10:30", time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)},
		{"2024-05-01 10:30:15", time.Date(2024, 5, 1, 10, 30, 15, 0, time.UTC)},
		{" 2024-05-01 ", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, err := ParsePubDate(tt.in)
		require.NoError(t, err, tt.in)
		assert.True(t, tt.want.Equal(got), tt.in)
		assert.Equal(t, time.UTC, got.Location())
	}

	_, err := ParsePubDate("01/05/2024")
	assert.Error(t, err)
}
