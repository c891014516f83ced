package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTimestamp(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"rfc3339 with micros", "2023-01-01T12:00:00.000000+00:00", "2023-01-01T12:00:00.000Z"},
		{"rfc3339 zulu", "2023-01-01T12:00:00Z", "2023-01-01T12:00:00.000Z"},
		{"offset converted to utc", "2023-06-15T10:30:00+03:00", "2023-06-15T07:30:00.000Z"},
		{"date only", "2023-01-01", "2023-01-01T00:00:00.000Z"},
		{"space separated", "2023-01-01 15:04:05", "2023-01-01T15:04:05.000Z"},
		{"empty", "", ""},
		{"garbage", "not-a-timestamp", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeTimestamp(tt.input))
		})
	}
}

func TestOrPlaceholder(t *testing.T) {
	assert.Equal(t, " ", OrPlaceholder(""))
	assert.Equal(t, "hello", OrPlaceholder("hello"))
}
