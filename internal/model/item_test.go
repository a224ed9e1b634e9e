package model

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTitleTrims(t *testing.T) {
	got, err := ValidateTitle("   Buy milk \t")
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", got)
}

func TestValidateTitleRejectsBlank(t *testing.T) {
	for _, in := range []string{"", "   ", "\t\n"} {
		_, err := ValidateTitle(in)
		assert.ErrorIs(t, err, ErrEmptyTitle, "input %q", in)
	}
}

func TestValidateTitleLengthBoundary(t *testing.T) {
	_, err := ValidateTitle(strings.Repeat("a", MaxTitleLen))
	assert.NoError(t, err)

	_, err = ValidateTitle(strings.Repeat("a", MaxTitleLen+1))
	assert.ErrorIs(t, err, ErrTitleTooLong)

	// surrounding whitespace does not count
	_, err = ValidateTitle("  " + strings.Repeat("a", MaxTitleLen) + "  ")
	assert.NoError(t, err)
}

func TestValidateTitleCountsCodePoints(t *testing.T) {
	_, err := ValidateTitle(strings.Repeat("é", MaxTitleLen))
	assert.NoError(t, err)
}

func TestValidateTitleReplacesInvalidUTF8(t *testing.T) {
	got, err := ValidateTitle("caf\xe9 au lait")
	require.NoError(t, err)
	assert.Equal(t, "caf\uFFFD au lait", got)
	assert.True(t, utf8.ValidString(got))

	_, err = ValidateTitle("\xff\xfe")
	assert.NoError(t, err)
}

func TestValidateCategory(t *testing.T) {
	assert.NoError(t, ValidateCategory("work", DefaultCategories))

	err := ValidateCategory("hobby", DefaultCategories)
	assert.ErrorIs(t, err, ErrUnknownCategory)
	assert.Contains(t, err.Error(), "hobby")
}

func TestIsValidation(t *testing.T) {
	assert.True(t, IsValidation(ErrEmptyTitle))
	assert.True(t, IsValidation(ValidateCategory("x", nil)))
	assert.False(t, IsValidation(assert.AnError))
}

func TestCreated(t *testing.T) {
	it := Item{CreatedAt: 1700000000123}
	assert.Equal(t, int64(1700000000123), it.Created().UnixMilli())
}
