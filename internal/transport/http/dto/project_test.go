package dto_test

import (
	"testing"

	"content_admin/internal/transport/http/dto"

	"github.com/stretchr/testify/assert"
)

func TestParsePriority(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"", 0},
		{"   ", 0},
		{"abc", 0},
		{"7", 7},
		{" 12 ", 12},
		{"-3", -3},
		{"1.5", 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, dto.ParsePriority(tt.raw), tt.raw)
	}
}

func TestParseTags(t *testing.T) {
	assert.Equal(t, []string{}, dto.ParseTags(""))
	assert.Equal(t, []string{}, dto.ParseTags(" , ,"))
	assert.Equal(t, []string{"water", "rural dev", "health"}, dto.ParseTags(" water,rural dev ,, health"))
}

func TestTruthy(t *testing.T) {
	assert.False(t, dto.Truthy(""))
	assert.True(t, dto.Truthy("on"))
	assert.True(t, dto.Truthy("0"))
}
