package httputil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateStatusCode(t *testing.T) {
	tests := []struct {
		code     string
		expected bool
	}{
		{"default", true},
		{"x-custom", true},
		{"200", true},
		{"100", true},
		{"599", true},
		{"2XX", true},
		{"4xx", true},
		{"099", false},
		{"600", false},
		{"6XX", false},
		{"0XX", false},
		{"+20", false},
		{"20", false},
		{"2000", false},
		{"abc", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateStatusCode(tt.code))
		})
	}
}

func TestIsSuccessStatus(t *testing.T) {
	for _, code := range []string{"200", "201", "204", "299", "2XX", "2xx"} {
		assert.True(t, IsSuccessStatus(code), code)
	}
	for _, code := range []string{"default", "x-200", "199", "300", "404", "2", "2a0", "20X"} {
		assert.False(t, IsSuccessStatus(code), code)
	}
}
