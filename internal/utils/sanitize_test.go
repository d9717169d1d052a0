package utils_test

import (
	"testing"

	"github.com/aaravmahajanofficial/entity-api/internal/utils"
	"github.com/stretchr/testify/assert"
)

type sanitizeInner struct {
	Notes string `sanitize:"strict"`
}

type sanitizeSample struct {
	Title   string  `sanitize:"strict"`
	Body    string  `sanitize:"ugc"`
	Summary *string `sanitize:"strict"`
	Raw     string
	sanitizeInner
}

func TestSanitizer_Struct(t *testing.T) {
	// Arrange
	summary := `<b>bold</b> move`
	sample := &sanitizeSample{
		Title:         `<script>alert(1)</script>Quarterly`,
		Body:          `<p onclick="x()">Hello <a href="https://example.com">link</a></p>`,
		Summary:       &summary,
		Raw:           `<i>kept</i>`,
		sanitizeInner: sanitizeInner{Notes: `<em>note</em>`},
	}

	// Act
	utils.NewSanitizer().Struct(sample)

	// Assert
	assert.Equal(t, "Quarterly", sample.Title)
	assert.NotContains(t, sample.Body, "onclick")
	assert.Contains(t, sample.Body, "<p>Hello")
	assert.Equal(t, "bold move", *sample.Summary)
	assert.Equal(t, `<i>kept</i>`, sample.Raw, "untagged fields are left alone")
	assert.Equal(t, "note", sample.Notes)
}

func TestSanitizer_IgnoresNonPointers(t *testing.T) {
	sample := sanitizeSample{Title: "<b>x</b>"}

	utils.NewSanitizer().Struct(sample)

	assert.Equal(t, "<b>x</b>", sample.Title)
}
