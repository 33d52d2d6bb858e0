package server_test

import (
	"testing"

	"dropsync/core/server"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Origins(t *testing.T) {
	tests := []struct {
		name    string
		origins string
		want    string
	}{
		{"Empty", "", server.DefaultCORSOrigins},
		{"Whitespace", "   ", server.DefaultCORSOrigins},
		{"Single", "https://app.example.com", "https://app.example.com"},
		{"List", "https://a.example.com,https://b.example.com", "https://a.example.com,https://b.example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := server.Config{CORSOrigins: tt.origins}
			assert.Equal(t, tt.want, c.Origins())
		})
	}
}
