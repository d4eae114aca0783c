package fingerprint

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute_Format(t *testing.T) {
	got, err := Compute(map[string]string{"full_name": "Ada"})
	require.NoError(t, err)

	// Отпечаток — 16 шестнадцатеричных символов в двойных кавычках
	assert.Regexp(t, regexp.MustCompile(`^"[0-9a-f]{16}"$`), got)
}

func TestCompute_Deterministic(t *testing.T) {
	type doc struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}

	a, err := Compute(doc{Name: "Ada", Email: "ada@example.com"})
	require.NoError(t, err)
	b, err := Compute(doc{Name: "Ada", Email: "ada@example.com"})
	require.NoError(t, err)
	c, err := Compute(doc{Name: "Ada", Email: "ada@other.com"})
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestCompute_UnsupportedValue(t *testing.T) {
	_, err := Compute(func() {})
	require.Error(t, err)
}
