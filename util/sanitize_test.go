package util

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestXSSSanitize(t *testing.T) {
	assert.Equal(t, "hello & goodbye", XSSSanitize("hello & goodbye"))
	assert.Equal(t, "hello", XSSSanitize("<script>alert(1)</script>hello"))
	assert.NotContains(t, XSSSanitize(`<img src=x onerror="alert(1)">ok`), "onerror")
}

func TestGenerateCodeName(t *testing.T) {
	for i := 0; i < 20; i++ {
		assert.True(t, strings.HasPrefix(GenerateCodeName(), "Anon "))
	}
}
