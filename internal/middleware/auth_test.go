package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractBearerToken(t *testing.T) {
	assert.Equal(t, "abc123", ExtractBearerToken("Bearer abc123"))
	assert.Equal(t, "abc123", ExtractBearerToken("bearer abc123"))
	assert.Equal(t, "abc123", ExtractBearerToken("Bearer   abc123"))

	assert.Empty(t, ExtractBearerToken(""))
	assert.Empty(t, ExtractBearerToken("abc123"))
	assert.Empty(t, ExtractBearerToken("Basic dXNlcjpwYXNz"))
}
