package web

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadExamples(t *testing.T) {
	examples, err := LoadExamples()
	require.NoError(t, err)
	require.Len(t, examples, 5)

	assert.Equal(t, "beginner", examples[0].Level)
	assert.Equal(t, "def fibonacci(n):\n    a, b = 0, 1\n    for _ in range(n):\n        yield a\n        a, b = b, a+b", examples[0].Code)
	for _, ex := range examples {
		assert.Contains(t, []string{"beginner", "expert"}, ex.Level, ex.Title)
	}
}

func TestParseExamples_Invalid(t *testing.T) {
	_, err := parseExamples([]byte("- title: empty\n  level: beginner\n"))
	assert.Error(t, err)

	_, err = parseExamples([]byte("not: [a list"))
	assert.Error(t, err)
}
