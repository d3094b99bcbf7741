package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"abogado@estudio.com.ar", true},
		{"a@localhost", true},
		{"ana.example.com", false},
		{"pablo", false},
		{"@estudio.com.ar", false},
		{"ana@", false},
		{"ana @estudio.com.ar", false},
		{"ana@@estudio.com.ar", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.valid, IsValidEmail(tt.email), tt.email)
	}
}

func TestIsValidColor(t *testing.T) {
	assert.True(t, IsValidColor("#E74C3C"))
	assert.True(t, IsValidColor("#e74c3c"))
	assert.False(t, IsValidColor("E74C3C"))
	assert.False(t, IsValidColor("#E74C3"))
	assert.False(t, IsValidColor("red"))
}
